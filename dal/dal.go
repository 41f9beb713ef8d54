package dal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jmtec-reports/models"
	"jmtec-reports/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrRecordNotFound is returned when a key has no stored record or the
// stored payload cannot be used.
var ErrRecordNotFound = errors.New("record not found")

// Record is the single item shape the store persists: an opaque JSON
// payload under a string key. Treating the payload as a blob keeps the
// table schema independent of the domain model.
type Record struct {
	Key       string    `dynamodbav:"record_key" json:"record_key"`
	Payload   string    `dynamodbav:"payload" json:"payload"`
	UpdatedAt time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

type DynamoDBClient struct {
	client *dynamodb.Client
	config *models.Config
	logger logger.Logger
}

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(cfg *models.Config, log logger.Logger) (*DynamoDBClient, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Override endpoint for local DynamoDB
	if cfg.DynamoDBEndpoint != "" {
		awsCfg.EndpointResolver = aws.EndpointResolverFunc(func(service, region string) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           cfg.DynamoDBEndpoint,
				SigningRegion: cfg.AWSRegion,
			}, nil
		})
	}

	// Use static credentials if provided
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"", // session token
		))
	}

	client := dynamodb.NewFromConfig(awsCfg)

	dbClient := &DynamoDBClient{
		client: client,
		config: cfg,
		logger: log,
	}

	log.Info("✅ DynamoDB client initialized successfully")
	return dbClient, nil
}

// PutRecord stores payload under key, overwriting any previous value.
func (db *DynamoDBClient) PutRecord(ctx context.Context, tableName, key, payload string) error {
	av, err := attributevalue.MarshalMap(Record{
		Key:       key,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      av,
	}

	_, err = db.client.PutItem(ctx, input)
	return err
}

// GetRecord retrieves the payload stored under key. A missing key or an
// empty payload yields ErrRecordNotFound.
func (db *DynamoDBClient) GetRecord(ctx context.Context, tableName, key string) (string, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			"record_key": &types.AttributeValueMemberS{Value: key},
		},
	}

	output, err := db.client.GetItem(ctx, input)
	if err != nil {
		db.logger.Errorf("Failed to get record %s: %v", key, err)
		return "", err
	}

	if output.Item == nil {
		return "", ErrRecordNotFound
	}

	var record Record
	if err := attributevalue.UnmarshalMap(output.Item, &record); err != nil {
		return "", fmt.Errorf("failed to unmarshal record: %w", err)
	}
	if record.Payload == "" {
		return "", ErrRecordNotFound
	}
	return record.Payload, nil
}

// DeleteRecord removes the record under key. Deleting an absent key is
// not an error.
func (db *DynamoDBClient) DeleteRecord(ctx context.Context, tableName, key string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			"record_key": &types.AttributeValueMemberS{Value: key},
		},
	}

	_, err := db.client.DeleteItem(ctx, input)
	return err
}

// ScanRecords returns every record whose key starts with prefix,
// following pagination until the table is exhausted.
func (db *DynamoDBClient) ScanRecords(ctx context.Context, tableName, prefix string) ([]Record, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(tableName),
		FilterExpression: aws.String("begins_with(#k, :prefix)"),
		ExpressionAttributeNames: map[string]string{
			"#k": "record_key",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix": &types.AttributeValueMemberS{Value: prefix},
		},
	}

	var records []Record
	for {
		output, err := db.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}

		var page []Record
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			return nil, err
		}
		records = append(records, page...)

		if output.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}

	return records, nil
}

// CreateTable creates a table
func (db *DynamoDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	_, err := db.client.CreateTable(ctx, input)
	return err
}

// DescribeTable describes a table
func (db *DynamoDBClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	input := &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	}
	return db.client.DescribeTable(ctx, input)
}

// DeleteTable deletes a table
func (db *DynamoDBClient) DeleteTable(ctx context.Context, input *dynamodb.DeleteTableInput) error {
	_, err := db.client.DeleteTable(ctx, input)
	return err
}

// TableName prefixes a logical table name with the configured
// environment prefix, e.g. dev_reports.
func (db *DynamoDBClient) TableName(name string) string {
	if db.config.DynamoDBTablePrefix == "" {
		return name
	}
	return strings.Join([]string{db.config.DynamoDBTablePrefix, name}, "_")
}
