package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"hrdesk-backend/domain/model"
)

// statusItem is a lookup row in either status table.
type statusItem struct {
	ID     int    `dynamodbav:"id"`
	Status string `dynamodbav:"status"`
}

// SeedStatusTables populates the requirement and profile status lookups when
// they are empty. Puts are keyed by id, so re-running is idempotent.
func SeedStatusTables(ctx context.Context, client API, requirementTable, profileTable string) error {
	if err := seedStatuses(ctx, client, requirementTable, requirementSeedRows()); err != nil {
		return err
	}
	return seedStatuses(ctx, client, profileTable, profileSeedRows())
}

func requirementSeedRows() []statusItem {
	rows := make([]statusItem, 0, len(model.DefaultRequirementStatuses))
	for _, s := range model.DefaultRequirementStatuses {
		rows = append(rows, statusItem{ID: s.ID, Status: s.Status})
	}
	return rows
}

func profileSeedRows() []statusItem {
	rows := make([]statusItem, 0, len(model.DefaultProfileStatuses))
	for _, s := range model.DefaultProfileStatuses {
		rows = append(rows, statusItem{ID: s.ID, Status: s.Status})
	}
	return rows
}

func seedStatuses(ctx context.Context, client API, table string, rows []statusItem) error {
	existing, err := scanAll(ctx, client, table, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, row := range rows {
		_, err := client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(table),
			Item: map[string]types.AttributeValue{
				"id":     &types.AttributeValueMemberN{Value: strconv.Itoa(row.ID)},
				"status": &types.AttributeValueMemberS{Value: row.Status},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to seed status table %s: %w", table, err)
		}
	}
	return nil
}
