package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func numericKey(id int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
	}
}

// getByNumericID point-reads an item by its integer primary key. A missing
// item comes back as a nil map, not an error.
func getByNumericID(ctx context.Context, client API, table string, id int) (map[string]types.AttributeValue, error) {
	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       numericKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d from %s: %w", id, table, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}

// scanAll drains every page of a scan. The filter expression is optional.
func scanAll(ctx context.Context, client API, table string, expr *expression.Expression) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(table)}
	if expr != nil {
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	var items []map[string]types.AttributeValue
	for {
		out, err := client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// applyUpdate runs a generated SET expression against an existing item,
// reporting false when the item does not exist.
func applyUpdate(ctx context.Context, client API, table string, key map[string]types.AttributeValue, keyAttr string, fields map[string]interface{}) (bool, error) {
	update, names, values, err := buildUpdateExpression(fields)
	if err != nil {
		return false, err
	}
	_, err = client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       key,
		UpdateExpression:          aws.String(update),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String(fmt.Sprintf("attribute_exists(%s)", keyAttr)),
	})
	if err != nil {
		var check *types.ConditionalCheckFailedException
		if errors.As(err, &check) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update item in %s: %w", table, err)
	}
	return true, nil
}

func equalsFilter(attr string, value interface{}) expression.ConditionBuilder {
	return expression.Name(attr).Equal(expression.Value(value))
}
