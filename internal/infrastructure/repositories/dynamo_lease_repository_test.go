package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portrepos "github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
)

// --- Mock DynamoDB client ---

type mockDynamoClient struct {
	items    map[string]map[string]types.AttributeValue
	order    []string
	pageSize int
	scans    int
}

func newMockDynamoClient(pageSize int) *mockDynamoClient {
	return &mockDynamoClient{
		items:    make(map[string]map[string]types.AttributeValue),
		pageSize: pageSize,
	}
}

func (m *mockDynamoClient) key(item map[string]types.AttributeValue) string {
	return item["environment"].(*types.AttributeValueMemberS).Value
}

func (m *mockDynamoClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	env := params.Key["environment"].(*types.AttributeValueMemberS).Value
	item, ok := m.items[env]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (m *mockDynamoClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	env := m.key(params.Item)
	if _, exists := m.items[env]; !exists {
		m.order = append(m.order, env)
	}
	m.items[env] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoClient) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	m.scans++

	start := 0
	if len(params.ExclusiveStartKey) > 0 {
		last := m.key(params.ExclusiveStartKey)
		for i, env := range m.order {
			if env == last {
				start = i + 1
				break
			}
		}
	}

	end := len(m.order)
	if m.pageSize > 0 && start+m.pageSize < end {
		end = start + m.pageSize
	}

	out := &dynamodb.ScanOutput{}
	for _, env := range m.order[start:end] {
		out.Items = append(out.Items, m.items[env])
	}
	if end < len(m.order) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"environment": &types.AttributeValueMemberS{Value: m.order[end-1]},
		}
	}
	return out, nil
}

// --- Tests ---

func TestDynamoPutGetRoundTrip(t *testing.T) {
	client := newMockDynamoClient(0)
	repo := newDynamoLeaseRepositoryWithClient(client, "environments")

	claimedAt := time.Date(2024, 3, 1, 9, 30, 15, 250000000, time.UTC)
	record := &portrepos.LeaseRecord{
		Environment:   "alpha",
		Username:      "bob",
		ClaimedAt:     claimedAt.Format(time.RFC3339Nano),
		DurationHours: 48,
	}
	require.NoError(t, repo.Put(context.Background(), record))

	got, err := repo.Get(context.Background(), "alpha")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alpha", got.Environment)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, 48.0, got.DurationHours)

	// The claim instant survives the round trip exactly.
	parsed, err := time.Parse(time.RFC3339Nano, got.ClaimedAt)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(claimedAt))
}

func TestDynamoGetMissingReturnsNil(t *testing.T) {
	client := newMockDynamoClient(0)
	repo := newDynamoLeaseRepositoryWithClient(client, "environments")

	got, err := repo.Get(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDynamoScanAllFollowsPagination(t *testing.T) {
	client := newMockDynamoClient(1)
	repo := newDynamoLeaseRepositoryWithClient(client, "environments")

	now := time.Now().UTC()
	for _, env := range []string{"alpha", "beta", "staging"} {
		require.NoError(t, repo.Put(context.Background(), &portrepos.LeaseRecord{
			Environment:   env,
			Username:      "bob",
			ClaimedAt:     now.Format(time.RFC3339Nano),
			DurationHours: 8,
		}))
	}

	records, err := repo.ScanAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	// One scan round trip per page: pagination was followed to exhaustion.
	assert.Equal(t, 3, client.scans)

	envs := make(map[string]bool)
	for _, rec := range records {
		envs[rec.Environment] = true
	}
	assert.True(t, envs["alpha"] && envs["beta"] && envs["staging"])
}

func TestDynamoScanAllEmptyTable(t *testing.T) {
	client := newMockDynamoClient(1)
	repo := newDynamoLeaseRepositoryWithClient(client, "environments")

	records, err := repo.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
