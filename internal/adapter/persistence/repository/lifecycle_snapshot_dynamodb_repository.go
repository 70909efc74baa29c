package repository

import (
	"context"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/infrastructure/config"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
)

type querySpecItem struct {
	PeriodStart    string `dynamodbav:"period_start"`
	PeriodEnd      string `dynamodbav:"period_end"`
	DocumentType   string `dynamodbav:"document_type"`
	DownloadType   string `dynamodbav:"download_type"`
	DocumentStatus string `dynamodbav:"document_status"`
	RequestType    string `dynamodbav:"request_type"`
}

type lifecycleSnapshotItem struct {
	ID              string         `dynamodbav:"id"`
	LifecycleID     string         `dynamodbav:"lifecycle_id"`
	SubjectID       string         `dynamodbav:"subject_id,omitempty"`
	ServiceKind     string         `dynamodbav:"service_kind"`
	TokenCreated    string         `dynamodbav:"token_created,omitempty"`
	TokenValidUntil string         `dynamodbav:"token_valid_until,omitempty"`
	RequestID       string         `dynamodbav:"request_id,omitempty"`
	State           string         `dynamodbav:"state"`
	StatusCode      int            `dynamodbav:"status_code"`
	StatusMessage   string         `dynamodbav:"status_message,omitempty"`
	Query           *querySpecItem `dynamodbav:"query,omitempty"`
	PackageIDs      []string       `dynamodbav:"package_ids,omitempty"`
	CreatedAt       string         `dynamodbav:"created_at"`
	SnapshotAt      string         `dynamodbav:"snapshot_at"`
}

// LifecycleSnapshotDynamoRepository persists lifecycle snapshots in DynamoDB.
// Snapshots are append-only: every Save writes a new row.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: lifecycle_id-index (PK: lifecycle_id, SK: snapshot_at)
//   - GSI: request_id-index (PK: request_id, SK: snapshot_at)
type LifecycleSnapshotDynamoRepository struct {
	ddb              DynamoAPI
	tableName        string
	lifecycleIDIndex string
	requestIDIndex   string
}

var _ interfaces.IRecordStore = (*LifecycleSnapshotDynamoRepository)(nil)

func NewLifecycleSnapshotDynamoRepository(ddb DynamoAPI, cfg config.DynamoConfig) *LifecycleSnapshotDynamoRepository {
	return &LifecycleSnapshotDynamoRepository{
		ddb:              ddb,
		tableName:        cfg.SnapshotTable,
		lifecycleIDIndex: cfg.LifecycleIDIndex,
		requestIDIndex:   cfg.RequestIDIndex,
	}
}

func (r *LifecycleSnapshotDynamoRepository) Save(ctx context.Context, s entities.LifecycleSnapshot) (string, error) {
	if s.ID == "" {
		return "", errors.New("snapshot id is required")
	}
	av, err := attributevalue.MarshalMap(toSnapshotItem(s))
	if err != nil {
		return "", errors.Wrap(err, "marshal snapshot")
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return "", errors.Wrapf(err, "put snapshot %s", s.ID)
	}
	return s.ID, nil
}

func (r *LifecycleSnapshotDynamoRepository) Load(ctx context.Context, id string) (entities.LifecycleSnapshot, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.LifecycleSnapshot{}, errors.Wrapf(err, "get snapshot %s", id)
	}
	if len(out.Item) == 0 {
		return entities.LifecycleSnapshot{}, nil
	}

	var it lifecycleSnapshotItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.LifecycleSnapshot{}, errors.Wrap(err, "unmarshal snapshot")
	}
	return fromSnapshotItem(it), nil
}

// List returns every stored snapshot, all versions of every lifecycle.
func (r *LifecycleSnapshotDynamoRepository) List(ctx context.Context) ([]entities.LifecycleSnapshot, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	snaps := []entities.LifecycleSnapshot{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "scan snapshots")
		}
		for _, raw := range page.Items {
			var it lifecycleSnapshotItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, errors.Wrap(err, "unmarshal snapshot")
			}
			snaps = append(snaps, fromSnapshotItem(it))
		}
	}
	return snaps, nil
}

func (r *LifecycleSnapshotDynamoRepository) FindLatestByRequestID(ctx context.Context, requestID string) (entities.LifecycleSnapshot, error) {
	return r.latest(ctx, r.requestIDIndex, "request_id", requestID)
}

func (r *LifecycleSnapshotDynamoRepository) FindLatestByLifecycleID(ctx context.Context, lifecycleID string) (entities.LifecycleSnapshot, error) {
	return r.latest(ctx, r.lifecycleIDIndex, "lifecycle_id", lifecycleID)
}

func (r *LifecycleSnapshotDynamoRepository) latest(ctx context.Context, index, attr, value string) (entities.LifecycleSnapshot, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return entities.LifecycleSnapshot{}, errors.Wrapf(err, "query %s", index)
	}
	if len(out.Items) == 0 {
		return entities.LifecycleSnapshot{}, nil
	}

	var it lifecycleSnapshotItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.LifecycleSnapshot{}, errors.Wrap(err, "unmarshal snapshot")
	}
	return fromSnapshotItem(it), nil
}

func toSnapshotItem(s entities.LifecycleSnapshot) lifecycleSnapshotItem {
	it := lifecycleSnapshotItem{
		ID:              s.ID,
		LifecycleID:     s.LifecycleID,
		SubjectID:       s.SubjectID,
		ServiceKind:     string(s.ServiceKind),
		TokenCreated:    formatTime(s.TokenCreated),
		TokenValidUntil: formatTime(s.TokenValidUntil),
		RequestID:       s.RequestID,
		State:           string(s.State),
		StatusCode:      s.StatusCode,
		StatusMessage:   s.StatusMessage,
		PackageIDs:      s.PackageIDs,
		CreatedAt:       formatTime(s.CreatedAt),
		SnapshotAt:      formatTime(s.SnapshotAt),
	}
	if q := s.Query; q != nil {
		it.Query = &querySpecItem{
			PeriodStart:    q.PeriodStart.Format(entities.DateLayout),
			PeriodEnd:      q.PeriodEnd.Format(entities.DateLayout),
			DocumentType:   string(q.DocumentType),
			DownloadType:   string(q.DownloadType),
			DocumentStatus: string(q.DocumentStatus),
			RequestType:    string(q.RequestType),
		}
	}
	return it
}

func fromSnapshotItem(it lifecycleSnapshotItem) entities.LifecycleSnapshot {
	s := entities.LifecycleSnapshot{
		ID:              it.ID,
		LifecycleID:     it.LifecycleID,
		SubjectID:       it.SubjectID,
		ServiceKind:     entities.ServiceKind(it.ServiceKind),
		TokenCreated:    parseTime(it.TokenCreated),
		TokenValidUntil: parseTime(it.TokenValidUntil),
		RequestID:       it.RequestID,
		State:           entities.LifecycleState(it.State),
		StatusCode:      it.StatusCode,
		StatusMessage:   it.StatusMessage,
		PackageIDs:      it.PackageIDs,
		CreatedAt:       parseTime(it.CreatedAt),
		SnapshotAt:      parseTime(it.SnapshotAt),
	}
	if q := it.Query; q != nil {
		start, _ := time.Parse(entities.DateLayout, q.PeriodStart)
		end, _ := time.Parse(entities.DateLayout, q.PeriodEnd)
		s.Query = &entities.QuerySpec{
			PeriodStart:    start,
			PeriodEnd:      end,
			DocumentType:   entities.DocumentType(q.DocumentType),
			DownloadType:   entities.DownloadType(q.DownloadType),
			DocumentStatus: entities.DocumentStatus(q.DocumentStatus),
			RequestType:    entities.RequestType(q.RequestType),
		}
	}
	return s
}
