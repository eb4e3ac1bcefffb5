package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"hrdesk-backend/domain/model"
)

type spocItem struct {
	ID          int    `dynamodbav:"id"`
	CompanyID   int    `dynamodbav:"company_id"`
	Name        string `dynamodbav:"name"`
	Phone       string `dynamodbav:"phone"`
	EmailID     string `dynamodbav:"email_id"`
	Location    string `dynamodbav:"location"`
	Status      string `dynamodbav:"status"`
	CreatedDate string `dynamodbav:"created_date"`
	UpdatedDate string `dynamodbav:"updated_date"`
}

func spocToItem(s *model.SPOC) spocItem {
	return spocItem{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Name:        s.Name,
		Phone:       s.Phone,
		EmailID:     s.EmailID,
		Location:    s.Location,
		Status:      s.Status,
		CreatedDate: formatTime(s.CreatedDate),
		UpdatedDate: formatTime(s.UpdatedDate),
	}
}

func spocFromItem(it spocItem) model.SPOC {
	return model.SPOC{
		ID:          it.ID,
		CompanyID:   it.CompanyID,
		Name:        it.Name,
		Phone:       it.Phone,
		EmailID:     it.EmailID,
		Location:    it.Location,
		Status:      it.Status,
		CreatedDate: parseTime(it.CreatedDate),
		UpdatedDate: parseTime(it.UpdatedDate),
	}
}

// SPOCStore implements persistence.SPOCStore on DynamoDB.
type SPOCStore struct {
	client  API
	table   string
	counter *Counter
}

func NewSPOCStore(client API, table string, counter *Counter) *SPOCStore {
	return &SPOCStore{client: client, table: table, counter: counter}
}

func (s *SPOCStore) Create(ctx context.Context, sp *model.SPOC) (*model.SPOC, error) {
	id, err := s.counter.NextID(ctx, model.CounterSPOCs)
	if err != nil {
		return nil, err
	}
	sp.ID = id
	if sp.Status == "" {
		sp.Status = model.StatusActive
	}
	sp.CreatedDate = now()
	sp.UpdatedDate = sp.CreatedDate

	item, err := attributevalue.MarshalMap(spocToItem(sp))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spoc: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put spoc: %w", err)
	}
	return sp, nil
}

func (s *SPOCStore) GetByID(ctx context.Context, id int) (*model.SPOC, error) {
	raw, err := getByNumericID(ctx, s.client, s.table, id)
	if err != nil || raw == nil {
		return nil, err
	}
	var it spocItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal spoc: %w", err)
	}
	sp := spocFromItem(it)
	return &sp, nil
}

func (s *SPOCStore) List(ctx context.Context) ([]model.SPOC, error) {
	return s.list(ctx, nil)
}

func (s *SPOCStore) ListByCompany(ctx context.Context, companyID int) ([]model.SPOC, error) {
	expr, err := expression.NewBuilder().
		WithFilter(equalsFilter("company_id", companyID)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	return s.list(ctx, &expr)
}

func (s *SPOCStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	return applyUpdate(ctx, s.client, s.table, numericKey(id), "id", fields)
}

func (s *SPOCStore) list(ctx context.Context, expr *expression.Expression) ([]model.SPOC, error) {
	raw, err := scanAll(ctx, s.client, s.table, expr)
	if err != nil {
		return nil, err
	}
	var items []spocItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal spocs: %w", err)
	}
	out := make([]model.SPOC, 0, len(items))
	for _, it := range items {
		out = append(out, spocFromItem(it))
	}
	return out, nil
}
