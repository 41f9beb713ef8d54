package infrastructure

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"jmtec-reports/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tidwall/gjson"
)

type TableSchema struct {
	TableName             string                `json:"TableName"`
	AttributeDefinitions  []AttributeDefinition `json:"AttributeDefinitions"`
	KeySchema             []KeySchemaElement    `json:"KeySchema"`
	ProvisionedThroughput Throughput            `json:"ProvisionedThroughput"`
}

type AttributeDefinition struct {
	AttributeName string `json:"AttributeName"`
	AttributeType string `json:"AttributeType"`
}

type KeySchemaElement struct {
	AttributeName string `json:"AttributeName"`
	KeyType       string `json:"KeyType"`
}

type Throughput struct {
	ReadCapacityUnits  int64 `json:"ReadCapacityUnits"`
	WriteCapacityUnits int64 `json:"WriteCapacityUnits"`
}

//go:embed table_schema.json
var tablesSchema []byte

func GetTables(tableName string) (*dynamodb.CreateTableInput, error) {
	// Map the prefixed table name back to the schema key
	// For example, "dev_reports" -> "reports"
	schemaKey := extractBaseTableName(tableName)

	// Extract table data using gjson with the schema key
	tableJson := gjson.Get(string(tablesSchema), schemaKey)
	if !tableJson.Exists() {
		return nil, fmt.Errorf("table schema not found for key: %s", schemaKey)
	}

	// Unmarshal directly into TableSchema struct
	var schema TableSchema
	if err := json.Unmarshal([]byte(tableJson.Raw), &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema JSON: %w", err)
	}

	// Override the table name with the actual table name (including prefix)
	schema.TableName = tableName

	fmt.Println("final table schema for", tableName, "::", utils.PrintPrettyJSON(schema))
	return schema.ToDynamoInput(), nil
}

// extractBaseTableName extracts the base table name from a prefixed table name
// For example, "dev_reports" -> "reports", "prod_reports" -> "reports"
func extractBaseTableName(tableName string) string {
	parts := strings.Split(tableName, "_")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return tableName
}

// Convert our schema to DynamoDB input
func (ts *TableSchema) ToDynamoInput() *dynamodb.CreateTableInput {
	var attrDefs []types.AttributeDefinition
	for _, a := range ts.AttributeDefinitions {
		attrDefs = append(attrDefs, types.AttributeDefinition{
			AttributeName: aws.String(a.AttributeName),
			AttributeType: types.ScalarAttributeType(a.AttributeType),
		})
	}

	var keySchema []types.KeySchemaElement
	for _, k := range ts.KeySchema {
		keySchema = append(keySchema, types.KeySchemaElement{
			AttributeName: aws.String(k.AttributeName),
			KeyType:       types.KeyType(k.KeyType),
		})
	}

	return &dynamodb.CreateTableInput{
		TableName:            aws.String(ts.TableName),
		AttributeDefinitions: attrDefs,
		KeySchema:            keySchema,
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(ts.ProvisionedThroughput.ReadCapacityUnits),
			WriteCapacityUnits: aws.Int64(ts.ProvisionedThroughput.WriteCapacityUnits),
		},
	}
}
