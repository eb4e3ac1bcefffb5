package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"hrdesk-backend/domain/model"
)

type leaveItem struct {
	ID          int    `dynamodbav:"id"`
	Username    string `dynamodbav:"username"`
	LeaveType   string `dynamodbav:"leave_type"`
	StartDate   string `dynamodbav:"start_date"`
	EndDate     string `dynamodbav:"end_date"`
	Days        int    `dynamodbav:"days"`
	Reason      string `dynamodbav:"reason"`
	Status      string `dynamodbav:"status"`
	Comments    string `dynamodbav:"comments"`
	CreatedDate string `dynamodbav:"created_date"`
	UpdatedDate string `dynamodbav:"updated_date"`
}

func leaveToItem(l *model.Leave) leaveItem {
	return leaveItem{
		ID:          l.ID,
		Username:    l.Username,
		LeaveType:   l.LeaveType,
		StartDate:   formatTime(l.StartDate),
		EndDate:     formatTime(l.EndDate),
		Days:        l.Days,
		Reason:      l.Reason,
		Status:      l.Status,
		Comments:    l.Comments,
		CreatedDate: formatTime(l.CreatedDate),
		UpdatedDate: formatTime(l.UpdatedDate),
	}
}

func leaveFromItem(it leaveItem) model.Leave {
	return model.Leave{
		ID:          it.ID,
		Username:    it.Username,
		LeaveType:   it.LeaveType,
		StartDate:   parseTime(it.StartDate),
		EndDate:     parseTime(it.EndDate),
		Days:        it.Days,
		Reason:      it.Reason,
		Status:      it.Status,
		Comments:    it.Comments,
		CreatedDate: parseTime(it.CreatedDate),
		UpdatedDate: parseTime(it.UpdatedDate),
	}
}

type leaveBalanceItem struct {
	ID          int    `dynamodbav:"id"`
	Username    string `dynamodbav:"username"`
	AnnualLeave int    `dynamodbav:"annual_leave"`
	SickLeave   int    `dynamodbav:"sick_leave"`
	CasualLeave int    `dynamodbav:"casual_leave"`
	Year        int    `dynamodbav:"year"`
	CreatedDate string `dynamodbav:"created_date"`
	UpdatedDate string `dynamodbav:"updated_date"`
}

// LeaveStore implements the leave contract on DynamoDB. Leaves and balances
// live in separate tables sharing the store.
type LeaveStore struct {
	client       API
	table        string
	balanceTable string
	counter      *Counter
}

func NewLeaveStore(client API, table, balanceTable string, counter *Counter) *LeaveStore {
	return &LeaveStore{client: client, table: table, balanceTable: balanceTable, counter: counter}
}

func (s *LeaveStore) Create(ctx context.Context, l *model.Leave) (*model.Leave, error) {
	id, err := s.counter.NextID(ctx, model.CounterLeaves)
	if err != nil {
		return nil, err
	}
	l.ID = id
	if l.Status == "" {
		l.Status = model.LeavePending
	}
	ts := now()
	l.CreatedDate = ts
	l.UpdatedDate = ts

	item, err := attributevalue.MarshalMap(leaveToItem(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal leave: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put leave: %w", err)
	}
	return l, nil
}

func (s *LeaveStore) GetByID(ctx context.Context, id int) (*model.Leave, error) {
	raw, err := getByNumericID(ctx, s.client, s.table, id)
	if err != nil || raw == nil {
		return nil, err
	}
	var it leaveItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leave: %w", err)
	}
	l := leaveFromItem(it)
	return &l, nil
}

func (s *LeaveStore) ListByUser(ctx context.Context, username string) ([]model.Leave, error) {
	expr, err := expression.NewBuilder().
		WithFilter(equalsFilter("username", username)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	return s.list(ctx, &expr)
}

func (s *LeaveStore) ListPending(ctx context.Context) ([]model.Leave, error) {
	expr, err := expression.NewBuilder().
		WithFilter(equalsFilter("status", model.LeavePending)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	return s.list(ctx, &expr)
}

func (s *LeaveStore) List(ctx context.Context) ([]model.Leave, error) {
	return s.list(ctx, nil)
}

func (s *LeaveStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	return applyUpdate(ctx, s.client, s.table, numericKey(id), "id", fields)
}

func (s *LeaveStore) CreateBalance(ctx context.Context, username string) (*model.LeaveBalance, error) {
	id, err := s.counter.NextID(ctx, model.CounterLeaveBalances)
	if err != nil {
		return nil, err
	}
	ts := now()
	balance := &model.LeaveBalance{
		ID:          id,
		Username:    username,
		AnnualLeave: model.DefaultAnnualLeave,
		SickLeave:   model.DefaultSickLeave,
		CasualLeave: model.DefaultCasualLeave,
		Year:        time.Now().Year(),
		CreatedDate: ts,
		UpdatedDate: ts,
	}
	item, err := attributevalue.MarshalMap(leaveBalanceItem{
		ID:          balance.ID,
		Username:    balance.Username,
		AnnualLeave: balance.AnnualLeave,
		SickLeave:   balance.SickLeave,
		CasualLeave: balance.CasualLeave,
		Year:        balance.Year,
		CreatedDate: formatTime(balance.CreatedDate),
		UpdatedDate: formatTime(balance.UpdatedDate),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal leave balance: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.balanceTable),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put leave balance: %w", err)
	}
	return balance, nil
}

func (s *LeaveStore) GetBalance(ctx context.Context, username string) (*model.LeaveBalance, error) {
	expr, err := expression.NewBuilder().
		WithFilter(equalsFilter("username", username)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	raw, err := scanAll(ctx, s.client, s.balanceTable, &expr)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var it leaveBalanceItem
	if err := attributevalue.UnmarshalMap(raw[0], &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leave balance: %w", err)
	}
	return &model.LeaveBalance{
		ID:          it.ID,
		Username:    it.Username,
		AnnualLeave: it.AnnualLeave,
		SickLeave:   it.SickLeave,
		CasualLeave: it.CasualLeave,
		Year:        it.Year,
		CreatedDate: parseTime(it.CreatedDate),
		UpdatedDate: parseTime(it.UpdatedDate),
	}, nil
}

func (s *LeaveStore) UpdateBalance(ctx context.Context, username string, fields model.Fields) (bool, error) {
	balance, err := s.GetBalance(ctx, username)
	if err != nil {
		return false, err
	}
	if balance == nil {
		return false, nil
	}
	return applyUpdate(ctx, s.client, s.balanceTable, numericKey(balance.ID), "id", fields)
}

func (s *LeaveStore) list(ctx context.Context, expr *expression.Expression) ([]model.Leave, error) {
	raw, err := scanAll(ctx, s.client, s.table, expr)
	if err != nil {
		return nil, err
	}
	var items []leaveItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leaves: %w", err)
	}
	out := make([]model.Leave, 0, len(items))
	for _, it := range items {
		out = append(out, leaveFromItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedDate.After(out[j].CreatedDate) })
	return out, nil
}
