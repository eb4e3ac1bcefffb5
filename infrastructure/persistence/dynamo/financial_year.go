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

type financialYearItem struct {
	ID          int    `dynamodbav:"id"`
	Year        int    `dynamodbav:"year"`
	StartDate   string `dynamodbav:"start_date"`
	EndDate     string `dynamodbav:"end_date"`
	IsActive    bool   `dynamodbav:"is_active"`
	CreatedDate string `dynamodbav:"created_date"`
	UpdatedDate string `dynamodbav:"updated_date"`
}

func financialYearToItem(fy *model.FinancialYear) financialYearItem {
	return financialYearItem{
		ID:          fy.ID,
		Year:        fy.Year,
		StartDate:   formatTime(fy.StartDate),
		EndDate:     formatTime(fy.EndDate),
		IsActive:    fy.IsActive,
		CreatedDate: formatTime(fy.CreatedDate),
		UpdatedDate: formatTime(fy.UpdatedDate),
	}
}

func financialYearFromItem(it financialYearItem) model.FinancialYear {
	return model.FinancialYear{
		ID:          it.ID,
		Year:        it.Year,
		StartDate:   parseTime(it.StartDate),
		EndDate:     parseTime(it.EndDate),
		IsActive:    it.IsActive,
		CreatedDate: parseTime(it.CreatedDate),
		UpdatedDate: parseTime(it.UpdatedDate),
	}
}

// FinancialYearStore implements the financial-year contract on DynamoDB.
// Without transactions the at-most-one-active invariant is kept by
// sequential updates: every active row is deactivated before the target is
// activated. A crash between the two steps leaves no year active, which the
// activation endpoint can repair; it never leaves two active.
type FinancialYearStore struct {
	client  API
	table   string
	counter *Counter
}

func NewFinancialYearStore(client API, table string, counter *Counter) *FinancialYearStore {
	return &FinancialYearStore{client: client, table: table, counter: counter}
}

func (s *FinancialYearStore) Create(ctx context.Context, fy *model.FinancialYear) (*model.FinancialYear, error) {
	if fy.IsActive {
		if err := s.deactivateAll(ctx); err != nil {
			return nil, err
		}
	}

	id, err := s.counter.NextID(ctx, model.CounterFinancialYears)
	if err != nil {
		return nil, err
	}
	fy.ID = id
	ts := now()
	fy.CreatedDate = ts
	fy.UpdatedDate = ts

	item, err := attributevalue.MarshalMap(financialYearToItem(fy))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal financial year: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put financial year: %w", err)
	}
	return fy, nil
}

func (s *FinancialYearStore) GetByID(ctx context.Context, id int) (*model.FinancialYear, error) {
	raw, err := getByNumericID(ctx, s.client, s.table, id)
	if err != nil || raw == nil {
		return nil, err
	}
	var it financialYearItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal financial year: %w", err)
	}
	fy := financialYearFromItem(it)
	return &fy, nil
}

func (s *FinancialYearStore) List(ctx context.Context) ([]model.FinancialYear, error) {
	years, err := s.list(ctx, nil)
	if err != nil {
		return nil, err
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year > years[j].Year })
	return years, nil
}

func (s *FinancialYearStore) GetActive(ctx context.Context) (*model.FinancialYear, error) {
	expr, err := expression.NewBuilder().
		WithFilter(equalsFilter("is_active", true)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	years, err := s.list(ctx, &expr)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, nil
	}
	return &years[0], nil
}

// SetActive deactivates every active year, then activates the given one. The
// target is point-read first so a missing id leaves the active year alone.
func (s *FinancialYearStore) SetActive(ctx context.Context, id int) (bool, error) {
	target, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, nil
	}
	if err := s.deactivateAll(ctx); err != nil {
		return false, err
	}
	return applyUpdate(ctx, s.client, s.table, numericKey(id), "id",
		model.Fields{"is_active": true})
}

func (s *FinancialYearStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	if active, ok := fields["is_active"].(bool); ok && active {
		return s.SetActive(ctx, id)
	}
	return applyUpdate(ctx, s.client, s.table, numericKey(id), "id", fields)
}

func (s *FinancialYearStore) deactivateAll(ctx context.Context) error {
	active, err := s.GetActive(ctx)
	if err != nil {
		return err
	}
	for active != nil {
		if _, err := applyUpdate(ctx, s.client, s.table, numericKey(active.ID), "id",
			model.Fields{"is_active": false}); err != nil {
			return err
		}
		if active, err = s.GetActive(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *FinancialYearStore) list(ctx context.Context, expr *expression.Expression) ([]model.FinancialYear, error) {
	raw, err := scanAll(ctx, s.client, s.table, expr)
	if err != nil {
		return nil, err
	}
	var items []financialYearItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal financial years: %w", err)
	}
	out := make([]model.FinancialYear, 0, len(items))
	for _, it := range items {
		out = append(out, financialYearFromItem(it))
	}
	return out, nil
}
