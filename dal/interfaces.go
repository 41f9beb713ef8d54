package dal

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// RecordStoreInterface defines the contract for the keyed blob store
type RecordStoreInterface interface {
	// Core record operations
	PutRecord(ctx context.Context, tableName, key, payload string) error
	GetRecord(ctx context.Context, tableName, key string) (string, error)
	DeleteRecord(ctx context.Context, tableName, key string) error
	ScanRecords(ctx context.Context, tableName, prefix string) ([]Record, error)

	// Table management operations
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error
	DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error)
	DeleteTable(ctx context.Context, input *dynamodb.DeleteTableInput) error

	TableName(name string) string
}

// SelectionStoreInterface defines the contract for the one-shot
// cross-page selection handoff
type SelectionStoreInterface interface {
	Put(ctx context.Context, token, reportNumber string, ttl time.Duration) error
	Take(ctx context.Context, token string) (string, error)
	Close() error
}
