package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	portrepos "github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
	"github.com/takutakahashi/demoenv-bot/pkg/config"
)

// opTimeout bounds every DynamoDB round trip. Failures surface to the
// caller as a store error; they are never treated as "no lease".
const opTimeout = 5 * time.Second

// DynamoDBClient is the subset of the DynamoDB API used by
// DynamoLeaseRepository. It exists so tests can inject a mock client.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// leaseItem is the DynamoDB item shape. Attribute names match the table the
// original deployment created, so old rows stay readable.
type leaseItem struct {
	Environment        string  `dynamodbav:"environment"`
	Username           string  `dynamodbav:"username"`
	Time               string  `dynamodbav:"time"`
	ClaimDurationHours float64 `dynamodbav:"claimDurationHours"`
}

// DynamoLeaseRepository stores one lease item per environment in a DynamoDB
// table keyed by environment name. PutItem is a plain overwrite; this
// adapter does not implement the conditional-put extension, matching the
// table's last-writer-wins behavior.
type DynamoLeaseRepository struct {
	client DynamoDBClient
	table  string
}

// NewDynamoLeaseRepository creates a repository from configuration.
func NewDynamoLeaseRepository(ctx context.Context, cfg *config.StorageConfig) (*DynamoLeaseRepository, error) {
	if cfg == nil || cfg.Table == "" {
		return nil, fmt.Errorf("DynamoDB table name is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	ddbOpts := []func(*dynamodb.Options){}
	if cfg.Endpoint != "" {
		// Local endpoints (dynamodb-local, localstack) for development.
		ddbOpts = append(ddbOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &DynamoLeaseRepository{
		client: dynamodb.NewFromConfig(awsCfg, ddbOpts...),
		table:  cfg.Table,
	}, nil
}

// newDynamoLeaseRepositoryWithClient creates a repository with a custom
// client (for testing).
func newDynamoLeaseRepositoryWithClient(client DynamoDBClient, table string) *DynamoLeaseRepository {
	return &DynamoLeaseRepository{client: client, table: table}
}

// Get returns the record for an environment, or nil when no item exists.
func (r *DynamoLeaseRepository) Get(ctx context.Context, environment string) (*portrepos.LeaseRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"environment": &types.AttributeValueMemberS{Value: environment},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get lease item %q: %w", environment, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var item leaseItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lease item %q: %w", environment, err)
	}
	return recordFromItem(&item), nil
}

// Put overwrites the item for record.Environment.
func (r *DynamoLeaseRepository) Put(ctx context.Context, record *portrepos.LeaseRecord) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	av, err := attributevalue.MarshalMap(&leaseItem{
		Environment:        record.Environment,
		Username:           record.Username,
		Time:               record.ClaimedAt,
		ClaimDurationHours: record.DurationHours,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal lease item %q: %w", record.Environment, err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("failed to put lease item %q: %w", record.Environment, err)
	}
	return nil
}

// ScanAll reads the whole table, following LastEvaluatedKey until the store
// signals no more pages. Pages are merged in receipt order; the caller sees
// one complete slice, never a partial table.
func (r *DynamoLeaseRepository) ScanAll(ctx context.Context) ([]*portrepos.LeaseRecord, error) {
	var records []*portrepos.LeaseRecord
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.scanPage(ctx, startKey)
		if err != nil {
			return nil, err
		}

		var items []leaseItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lease items: %w", err)
		}
		for i := range items {
			records = append(records, recordFromItem(&items[i]))
		}

		if len(out.LastEvaluatedKey) == 0 {
			return records, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *DynamoLeaseRepository) scanPage(ctx context.Context, startKey map[string]types.AttributeValue) (*dynamodb.ScanOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:         aws.String(r.table),
		ExclusiveStartKey: startKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lease table: %w", err)
	}
	return out, nil
}

func recordFromItem(item *leaseItem) *portrepos.LeaseRecord {
	return &portrepos.LeaseRecord{
		Environment:   item.Environment,
		Username:      item.Username,
		ClaimedAt:     item.Time,
		DurationHours: item.ClaimDurationHours,
	}
}
