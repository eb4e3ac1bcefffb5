package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cenkalti/backoff/v4"
)

// Counter hands out monotonically increasing integer ids, one sequence per
// logical table, backed by a single counters table keyed by table_name.
type Counter struct {
	client API
	table  string
}

func NewCounter(client API, table string) *Counter {
	return &Counter{client: client, table: table}
}

// NextID atomically increments the sequence for tableName and returns the new
// value. The first call for an unseen sequence seeds it at 1. Throttling is
// retried with exponential backoff up to three attempts; every other failure
// propagates to the caller.
func (c *Counter) NextID(ctx context.Context, tableName string) (int, error) {
	var id int
	op := func() error {
		out, err := c.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName: aws.String(c.table),
			Key: map[string]types.AttributeValue{
				"table_name": &types.AttributeValueMemberS{Value: tableName},
			},
			UpdateExpression: aws.String("ADD next_id :inc"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":inc": &types.AttributeValueMemberN{Value: "1"},
			},
			ReturnValues: types.ReturnValueUpdatedNew,
		})
		if err != nil {
			var notFound *types.ResourceNotFoundException
			if errors.As(err, &notFound) {
				return backoff.Permanent(c.seed(ctx, tableName, &id))
			}
			if isThrottle(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		n, ok := out.Attributes["next_id"].(*types.AttributeValueMemberN)
		if !ok {
			return backoff.Permanent(fmt.Errorf("counter for %s returned no next_id", tableName))
		}
		v, err := strconv.Atoi(n.Value)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to parse counter value %q: %w", n.Value, err))
		}
		id = v
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return 0, fmt.Errorf("failed to advance id sequence for %s: %w", tableName, err)
	}
	return id, nil
}

// seed creates the sequence row on first use.
func (c *Counter) seed(ctx context.Context, tableName string, id *int) error {
	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item: map[string]types.AttributeValue{
			"table_name": &types.AttributeValueMemberS{Value: tableName},
			"next_id":    &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to seed id sequence for %s: %w", tableName, err)
	}
	*id = 1
	return nil
}

func isThrottle(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	if errors.As(err, &throughput) {
		return true
	}
	var limit *types.LimitExceededException
	return errors.As(err, &limit)
}
