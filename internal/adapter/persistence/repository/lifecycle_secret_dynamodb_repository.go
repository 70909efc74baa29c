package repository

import (
	"context"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
)

// Sealer encrypts secrets bound to additional data.
type Sealer interface {
	Seal(plaintext, aad []byte) (string, error)
	Open(sealed string, aad []byte) ([]byte, error)
}

type lifecycleSecretItem struct {
	LifecycleID string `dynamodbav:"lifecycle_id"`
	Certificate string `dynamodbav:"certificate"`
	PrivateKey  string `dynamodbav:"private_key"`
	Passphrase  string `dynamodbav:"passphrase"`
	StoredAt    string `dynamodbav:"stored_at"`
}

// LifecycleSecretDynamoRepository keeps the FIEL of each lifecycle sealed at rest,
// in a table of its own. Every field is sealed separately and bound to the
// lifecycle id and the field name, so sealed values cannot be swapped between rows.
//
// Table requirements:
//   - PK: lifecycle_id (string)
type LifecycleSecretDynamoRepository struct {
	ddb       DynamoAPI
	sealer    Sealer
	tableName string
	now       func() time.Time
}

var _ interfaces.ISecretVault = (*LifecycleSecretDynamoRepository)(nil)

func NewLifecycleSecretDynamoRepository(ddb DynamoAPI, sealer Sealer, tableName string) *LifecycleSecretDynamoRepository {
	return &LifecycleSecretDynamoRepository{
		ddb:       ddb,
		sealer:    sealer,
		tableName: tableName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *LifecycleSecretDynamoRepository) Put(ctx context.Context, lifecycleID string, secret entities.CredentialSecret) error {
	it := lifecycleSecretItem{LifecycleID: lifecycleID, StoredAt: formatTime(r.now())}
	for _, f := range []struct {
		name  string
		value []byte
		dst   *string
	}{
		{"certificate", secret.Certificate, &it.Certificate},
		{"private_key", secret.PrivateKey, &it.PrivateKey},
		{"passphrase", secret.Passphrase, &it.Passphrase},
	} {
		sealed, err := r.sealer.Seal(f.value, aad(lifecycleID, f.name))
		if err != nil {
			return errors.Wrapf(err, "seal %s", f.name)
		}
		*f.dst = sealed
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return errors.Wrap(err, "marshal secret")
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return errors.Wrapf(err, "put secret of lifecycle %s", lifecycleID)
	}
	return nil
}

func (r *LifecycleSecretDynamoRepository) Get(ctx context.Context, lifecycleID string) (entities.CredentialSecret, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"lifecycle_id": &types.AttributeValueMemberS{Value: lifecycleID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.CredentialSecret{}, false, errors.Wrapf(err, "get secret of lifecycle %s", lifecycleID)
	}
	if len(out.Item) == 0 {
		return entities.CredentialSecret{}, false, nil
	}

	var it lifecycleSecretItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.CredentialSecret{}, false, errors.Wrap(err, "unmarshal secret")
	}

	var secret entities.CredentialSecret
	for _, f := range []struct {
		name   string
		sealed string
		dst    *[]byte
	}{
		{"certificate", it.Certificate, &secret.Certificate},
		{"private_key", it.PrivateKey, &secret.PrivateKey},
		{"passphrase", it.Passphrase, &secret.Passphrase},
	} {
		opened, err := r.sealer.Open(f.sealed, aad(lifecycleID, f.name))
		if err != nil {
			secret.Wipe()
			return entities.CredentialSecret{}, false, errors.Wrapf(err, "open %s", f.name)
		}
		*f.dst = opened
	}
	return secret, true, nil
}

func aad(lifecycleID, field string) []byte {
	return []byte(lifecycleID + "/" + field)
}
