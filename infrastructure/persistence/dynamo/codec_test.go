package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk-backend/domain/model"
)

func TestBuildUpdateExpressionAliasesReservedWords(t *testing.T) {
	expr, names, values, err := buildUpdateExpression(model.Fields{
		"location":  "Pune",
		"status":    2,
		"key_skill": "go",
	})
	require.NoError(t, err)

	assert.Equal(t, "SET key_skill = :key_skill, #location = :location, #status = :status, updated_date = :updated_date", expr)
	assert.Equal(t, map[string]string{"#location": "location", "#status": "status"}, names)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "Pune"}, values[":location"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "2"}, values[":status"])
	assert.Contains(t, values, ":updated_date")
}

func TestBuildUpdateExpressionAlwaysStampsUpdatedDate(t *testing.T) {
	expr, names, values, err := buildUpdateExpression(model.Fields{})
	require.NoError(t, err)

	assert.Equal(t, "SET updated_date = :updated_date", expr)
	assert.Nil(t, names)

	stamp, ok := values[":updated_date"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	ts, err := time.Parse(time.RFC3339, stamp.Value)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, 5*time.Second)
}

func TestBuildUpdateExpressionIsDeterministic(t *testing.T) {
	fields := model.Fields{"b": 1, "a": 2, "c": 3}

	first, _, _, err := buildUpdateExpression(fields)
	require.NoError(t, err)
	second, _, _, err := buildUpdateExpression(fields)
	require.NoError(t, err)

	assert.Equal(t, "SET a = :a, b = :b, c = :c, updated_date = :updated_date", first)
	assert.Equal(t, first, second)
}

func TestBuildUpdateExpressionRejectsUnsupportedValues(t *testing.T) {
	_, _, _, err := buildUpdateExpression(model.Fields{"payload": struct{}{}})
	assert.Error(t, err)
}

func TestCoerceValueFloats(t *testing.T) {
	av, err := coerceValue(7.5)
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "7.5"}, av)

	av, err = coerceValue(float32(0.1))
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "0.1"}, av)
}

func TestCoerceValueTimes(t *testing.T) {
	ts := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	av, err := coerceValue(ts)
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2026-03-15T10:30:00Z"}, av)

	av, err = coerceValue(&ts)
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2026-03-15T10:30:00Z"}, av)

	av, err = coerceValue((*time.Time)(nil))
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberNULL{Value: true}, av)
}

func TestParseTimeRoundTrip(t *testing.T) {
	ts := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, ts, parseTime(formatTime(ts)))
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime("not-a-time").IsZero())
	assert.Nil(t, parseTimePtr(""))
}
