package dynamo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"hrdesk-backend/domain/model"
)

// reservedWords are attribute names that collide with the DynamoDB expression
// grammar and must be aliased through ExpressionAttributeNames.
var reservedWords = map[string]bool{
	"location": true,
	"status":   true,
	"role":     true,
	"name":     true,
	"date":     true,
	"time":     true,
}

const timeLayout = time.RFC3339

func now() time.Time { return time.Now().UTC() }

// buildUpdateExpression turns a partial-update field map into a SET expression
// with value placeholders, aliasing reserved attribute names. An updated_date
// stamp is always included. Field order in the expression is deterministic so
// the output is stable across calls.
func buildUpdateExpression(fields model.Fields) (string, map[string]string, map[string]types.AttributeValue, error) {
	stamped := make(model.Fields, len(fields)+1)
	for k, v := range fields {
		stamped[k] = v
	}
	stamped["updated_date"] = time.Now().UTC()

	keys := make([]string, 0, len(stamped))
	for k := range stamped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	names := make(map[string]string)
	values := make(map[string]types.AttributeValue, len(keys))
	for _, k := range keys {
		av, err := coerceValue(stamped[k])
		if err != nil {
			return "", nil, nil, fmt.Errorf("failed to encode field %s: %w", k, err)
		}
		ref := k
		if reservedWords[k] {
			ref = "#" + k
			names[ref] = k
		}
		placeholder := ":" + k
		parts = append(parts, fmt.Sprintf("%s = %s", ref, placeholder))
		values[placeholder] = av
	}

	if len(names) == 0 {
		names = nil
	}
	return "SET " + strings.Join(parts, ", "), names, values, nil
}

// coerceValue maps Go values to DynamoDB attribute values. Floats round-trip
// through decimal so 0.1+0.2 style artifacts never reach the wire, and times
// are stored as RFC 3339 strings.
func coerceValue(v interface{}) (types.AttributeValue, error) {
	switch val := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case string:
		return &types.AttributeValueMemberS{Value: val}, nil
	case bool:
		return &types.AttributeValueMemberBOOL{Value: val}, nil
	case int:
		return &types.AttributeValueMemberN{Value: strconv.Itoa(val)}, nil
	case int64:
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(val, 10)}, nil
	case uint:
		return &types.AttributeValueMemberN{Value: strconv.FormatUint(uint64(val), 10)}, nil
	case float64:
		return &types.AttributeValueMemberN{Value: decimal.NewFromFloat(val).String()}, nil
	case float32:
		return &types.AttributeValueMemberN{Value: decimal.NewFromFloat32(val).String()}, nil
	case time.Time:
		return &types.AttributeValueMemberS{Value: val.UTC().Format(timeLayout)}, nil
	case *time.Time:
		if val == nil {
			return &types.AttributeValueMemberNULL{Value: true}, nil
		}
		return &types.AttributeValueMemberS{Value: val.UTC().Format(timeLayout)}, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
