package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"hrdesk-backend/domain/model"
)

type holidayItem struct {
	ID              int    `dynamodbav:"id"`
	FinancialYearID int    `dynamodbav:"financial_year_id"`
	Name            string `dynamodbav:"name"`
	Date            string `dynamodbav:"date"`
	IsMandatory     bool   `dynamodbav:"is_mandatory"`
	CreatedDate     string `dynamodbav:"created_date"`
	UpdatedDate     string `dynamodbav:"updated_date"`
}

func holidayToItem(h *model.Holiday) holidayItem {
	return holidayItem{
		ID:              h.ID,
		FinancialYearID: h.FinancialYearID,
		Name:            h.Name,
		Date:            formatTime(h.Date),
		IsMandatory:     h.IsMandatory,
		CreatedDate:     formatTime(h.CreatedDate),
		UpdatedDate:     formatTime(h.UpdatedDate),
	}
}

func holidayFromItem(it holidayItem) model.Holiday {
	return model.Holiday{
		ID:              it.ID,
		FinancialYearID: it.FinancialYearID,
		Name:            it.Name,
		Date:            parseTime(it.Date),
		IsMandatory:     it.IsMandatory,
		CreatedDate:     parseTime(it.CreatedDate),
		UpdatedDate:     parseTime(it.UpdatedDate),
	}
}

type selectionItem struct {
	ID              int    `dynamodbav:"id"`
	Username        string `dynamodbav:"username"`
	HolidayID       int    `dynamodbav:"holiday_id"`
	FinancialYearID int    `dynamodbav:"financial_year_id"`
	CreatedDate     string `dynamodbav:"created_date"`
}

// HolidayStore implements the holiday-calendar contract on DynamoDB.
// Selections live in their own table; the join back to holiday rows happens
// in the application.
type HolidayStore struct {
	client         API
	table          string
	selectionTable string
	counter        *Counter
}

func NewHolidayStore(client API, table, selectionTable string, counter *Counter) *HolidayStore {
	return &HolidayStore{client: client, table: table, selectionTable: selectionTable, counter: counter}
}

func (s *HolidayStore) Create(ctx context.Context, h *model.Holiday) (*model.Holiday, error) {
	id, err := s.counter.NextID(ctx, model.CounterHolidays)
	if err != nil {
		return nil, err
	}
	h.ID = id
	ts := now()
	h.CreatedDate = ts
	h.UpdatedDate = ts

	item, err := attributevalue.MarshalMap(holidayToItem(h))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal holiday: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put holiday: %w", err)
	}
	return h, nil
}

func (s *HolidayStore) GetByID(ctx context.Context, id int) (*model.Holiday, error) {
	raw, err := getByNumericID(ctx, s.client, s.table, id)
	if err != nil || raw == nil {
		return nil, err
	}
	var it holidayItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holiday: %w", err)
	}
	h := holidayFromItem(it)
	return &h, nil
}

func (s *HolidayStore) ListByYear(ctx context.Context, financialYearID int) ([]model.Holiday, error) {
	return s.list(ctx, equalsFilter("financial_year_id", financialYearID))
}

func (s *HolidayStore) ListMandatory(ctx context.Context, financialYearID int) ([]model.Holiday, error) {
	return s.list(ctx, equalsFilter("financial_year_id", financialYearID).
		And(equalsFilter("is_mandatory", true)))
}

func (s *HolidayStore) ListOptional(ctx context.Context, financialYearID int) ([]model.Holiday, error) {
	return s.list(ctx, equalsFilter("financial_year_id", financialYearID).
		And(equalsFilter("is_mandatory", false)))
}

func (s *HolidayStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	return applyUpdate(ctx, s.client, s.table, numericKey(id), "id", fields)
}

// Delete removes the holiday; the only hard delete in the system.
func (s *HolidayStore) Delete(ctx context.Context, id int) (bool, error) {
	existing, err := getByNumericID(ctx, s.client, s.table, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       numericKey(id),
	}); err != nil {
		return false, fmt.Errorf("failed to delete holiday %d: %w", id, err)
	}
	return true, nil
}

// SelectOptional replaces the user's optional-holiday picks for the year.
func (s *HolidayStore) SelectOptional(ctx context.Context, username string, holidayIDs []int, financialYearID int) error {
	existing, err := s.selections(ctx, username, financialYearID)
	if err != nil {
		return err
	}
	for _, sel := range existing {
		if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.selectionTable),
			Key:       numericKey(sel.ID),
		}); err != nil {
			return fmt.Errorf("failed to delete holiday selection %d: %w", sel.ID, err)
		}
	}

	for _, holidayID := range holidayIDs {
		id, err := s.counter.NextID(ctx, model.CounterSelections)
		if err != nil {
			return err
		}
		item, err := attributevalue.MarshalMap(selectionItem{
			ID:              id,
			Username:        username,
			HolidayID:       holidayID,
			FinancialYearID: financialYearID,
			CreatedDate:     formatTime(now()),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal holiday selection: %w", err)
		}
		if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.selectionTable),
			Item:      item,
		}); err != nil {
			return fmt.Errorf("failed to put holiday selection: %w", err)
		}
	}
	return nil
}

// UserSelections resolves the user's picks to full holiday rows.
func (s *HolidayStore) UserSelections(ctx context.Context, username string, financialYearID int) ([]model.Holiday, error) {
	selections, err := s.selections(ctx, username, financialYearID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Holiday, 0, len(selections))
	for _, sel := range selections {
		h, err := s.GetByID(ctx, sel.HolidayID)
		if err != nil {
			return nil, err
		}
		if h == nil {
			continue
		}
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *HolidayStore) selections(ctx context.Context, username string, financialYearID int) ([]selectionItem, error) {
	expr, err := expression.NewBuilder().
		WithFilter(equalsFilter("username", username).
			And(equalsFilter("financial_year_id", financialYearID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	raw, err := scanAll(ctx, s.client, s.selectionTable, &expr)
	if err != nil {
		return nil, err
	}
	var items []selectionItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holiday selections: %w", err)
	}
	return items, nil
}

func (s *HolidayStore) list(ctx context.Context, filter expression.ConditionBuilder) ([]model.Holiday, error) {
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	raw, err := scanAll(ctx, s.client, s.table, &expr)
	if err != nil {
		return nil, err
	}
	var items []holidayItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holidays: %w", err)
	}
	out := make([]model.Holiday, 0, len(items))
	for _, it := range items {
		out = append(out, holidayFromItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
