package repository

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/infrastructure/config"
	"descarga_masiva/internal/infrastructure/vault"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTable is a single DynamoDB table keyed by one string attribute. Query
// understands the "#k = :v" key condition used by the repositories.
type memTable struct {
	mu    sync.Mutex
	key   string
	items map[string]map[string]types.AttributeValue
}

func newMemTable(key string) *memTable {
	return &memTable{key: key, items: map[string]map[string]types.AttributeValue{}}
}

func str(item map[string]types.AttributeValue, attr string) string {
	if v, ok := item[attr].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (m *memTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := str(in.Item, m.key)
	if _, exists := m.items[k]; exists && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	m.items[k] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *memTable) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: m.items[str(in.Key, m.key)]}, nil
}

func (m *memTable) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	attr := in.ExpressionAttributeNames["#k"]
	want := in.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberS).Value

	var out []map[string]types.AttributeValue
	for _, it := range m.items {
		if str(it, attr) == want {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := str(out[i], "snapshot_at"), str(out[j], "snapshot_at")
		if aws.ToBool(in.ScanIndexForward) {
			return a < b
		}
		return a > b
	})
	if in.Limit != nil && len(out) > int(*in.Limit) {
		out = out[:*in.Limit]
	}
	return &dynamodb.QueryOutput{Items: out}, nil
}

func (m *memTable) Scan(_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]map[string]types.AttributeValue, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	return &dynamodb.ScanOutput{Items: out}, nil
}

func snapshotAt(id string, state entities.LifecycleState, at time.Time) entities.LifecycleSnapshot {
	s := entities.LifecycleSnapshot{
		ID:              id,
		LifecycleID:     "lc-1",
		SubjectID:       "AAA010101AAA",
		ServiceKind:     entities.ServiceKindCfdi,
		TokenCreated:    at,
		TokenValidUntil: at.Add(5 * time.Minute),
		State:           state,
		StatusCode:      5000,
		StatusMessage:   "Solicitud Aceptada",
		CreatedAt:       time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		SnapshotAt:      at,
	}
	if state != entities.StateAuthenticated {
		s.RequestID = "req-1"
		s.Query = &entities.QuerySpec{
			PeriodStart:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			DocumentType:   entities.DocumentTypeUndefined,
			DownloadType:   entities.DownloadTypeReceived,
			DocumentStatus: entities.DocumentStatusUndefined,
			RequestType:    entities.RequestTypeMetadata,
		}
	}
	if state == entities.StateFinished {
		s.PackageIDs = []string{"P1", "P2"}
	}
	return s
}

func TestLifecycleSnapshotDynamoRepository(t *testing.T) {
	ctx := context.Background()
	table := newMemTable("id")
	repo := NewLifecycleSnapshotDynamoRepository(table, config.DynamoConfig{
		SnapshotTable:    "lifecycle_snapshots",
		RequestIDIndex:   "request_id-index",
		LifecycleIDIndex: "lifecycle_id-index",
	})

	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first := snapshotAt("s-1", entities.StateAuthenticated, t0)
	second := snapshotAt("s-2", entities.StateVerifying, t0.Add(time.Minute))
	third := snapshotAt("s-3", entities.StateFinished, t0.Add(2*time.Minute))
	for _, s := range []entities.LifecycleSnapshot{first, second, third} {
		id, err := repo.Save(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, s.ID, id)
	}

	t.Run("ids are never reused", func(t *testing.T) {
		_, err := repo.Save(ctx, first)
		assert.Error(t, err)
		_, err = repo.Save(ctx, entities.LifecycleSnapshot{})
		assert.Error(t, err)
	})

	t.Run("load round trip", func(t *testing.T) {
		got, err := repo.Load(ctx, "s-3")
		require.NoError(t, err)
		assert.Equal(t, third, got)

		got, err = repo.Load(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, first, got)
		assert.Nil(t, got.Query)
	})

	t.Run("load missing", func(t *testing.T) {
		got, err := repo.Load(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("latest by lifecycle and request", func(t *testing.T) {
		got, err := repo.FindLatestByLifecycleID(ctx, "lc-1")
		require.NoError(t, err)
		assert.Equal(t, "s-3", got.ID)

		got, err = repo.FindLatestByRequestID(ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, "s-3", got.ID)
		assert.Equal(t, []string{"P1", "P2"}, got.PackageIDs)

		got, err = repo.FindLatestByRequestID(ctx, "req-9")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("request id is not written before submission", func(t *testing.T) {
		_, ok := table.items["s-1"]["request_id"]
		assert.False(t, ok)
	})

	t.Run("list", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestLifecycleSecretDynamoRepository(t *testing.T) {
	ctx := context.Background()
	sealer, err := vault.NewSealer([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	table := newMemTable("lifecycle_id")
	repo := NewLifecycleSecretDynamoRepository(table, sealer, "lifecycle_secrets")

	secret := entities.CredentialSecret{
		Certificate: []byte("certificate-der"),
		PrivateKey:  []byte("private-key-der"),
		Passphrase:  []byte("12345678a"),
	}
	require.NoError(t, repo.Put(ctx, "lc-1", secret))

	stored := table.items["lc-1"]
	for _, attr := range []string{"certificate", "private_key", "passphrase"} {
		v := str(stored, attr)
		assert.NotEmpty(t, v)
		assert.NotContains(t, v, "12345678a")
		assert.NotContains(t, v, "der")
	}

	got, ok, err := repo.Get(ctx, "lc-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, secret, got)

	_, ok, err = repo.Get(ctx, "lc-2")
	require.NoError(t, err)
	assert.False(t, ok)

	// A row copied under another lifecycle id does not open.
	table.items["lc-2"] = map[string]types.AttributeValue{}
	for k, v := range stored {
		table.items["lc-2"][k] = v
	}
	table.items["lc-2"]["lifecycle_id"] = &types.AttributeValueMemberS{Value: "lc-2"}
	_, _, err = repo.Get(ctx, "lc-2")
	assert.Error(t, err)
}

func TestLifecycleSnapshotDynamoRepository_LatestWithinOneSecond(t *testing.T) {
	ctx := context.Background()
	repo := NewLifecycleSnapshotDynamoRepository(newMemTable("id"), config.DynamoConfig{
		SnapshotTable:    "lifecycle_snapshots",
		RequestIDIndex:   "request_id-index",
		LifecycleIDIndex: "lifecycle_id-index",
	})

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	earlier := snapshotAt("s-10", entities.StateVerifying, base.Add(100*time.Millisecond))
	later := snapshotAt("s-11", entities.StateFinished, base.Add(120*time.Millisecond))
	for _, s := range []entities.LifecycleSnapshot{later, earlier} {
		_, err := repo.Save(ctx, s)
		require.NoError(t, err)
	}

	got, err := repo.FindLatestByLifecycleID(ctx, "lc-1")
	require.NoError(t, err)
	assert.Equal(t, "s-11", got.ID)
	assert.Equal(t, entities.StateFinished, got.State)

	got, err = repo.FindLatestByRequestID(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "s-11", got.ID)

	loaded, err := repo.Load(ctx, "s-10")
	require.NoError(t, err)
	assert.True(t, earlier.SnapshotAt.Equal(loaded.SnapshotAt))
	assert.Less(t, formatTime(earlier.SnapshotAt), formatTime(later.SnapshotAt))
}
