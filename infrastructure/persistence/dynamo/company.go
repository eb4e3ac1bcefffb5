package dynamo

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"hrdesk-backend/domain/errs"
	"hrdesk-backend/domain/model"
)

// companyItem is the wire shape of a company row. Dates are stored as
// RFC 3339 strings.
type companyItem struct {
	ID          int    `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	SPOC        string `dynamodbav:"spoc"`
	EmailID     string `dynamodbav:"email_id"`
	Status      string `dynamodbav:"status"`
	CreatedDate string `dynamodbav:"created_date"`
	UpdatedDate string `dynamodbav:"updated_date"`
}

func companyToItem(c *model.Company) companyItem {
	return companyItem{
		ID:          c.ID,
		Name:        c.Name,
		SPOC:        c.SPOC,
		EmailID:     c.EmailID,
		Status:      c.Status,
		CreatedDate: formatTime(c.CreatedDate),
		UpdatedDate: formatTime(c.UpdatedDate),
	}
}

func companyFromItem(it companyItem) model.Company {
	return model.Company{
		ID:          it.ID,
		Name:        it.Name,
		SPOC:        it.SPOC,
		EmailID:     it.EmailID,
		Status:      it.Status,
		CreatedDate: parseTime(it.CreatedDate),
		UpdatedDate: parseTime(it.UpdatedDate),
	}
}

// CompanyStore implements persistence.CompanyStore on DynamoDB.
type CompanyStore struct {
	client  API
	table   string
	counter *Counter
}

func NewCompanyStore(client API, table string, counter *Counter) *CompanyStore {
	return &CompanyStore{client: client, table: table, counter: counter}
}

// Create inserts a company after checking the name is not already taken.
// DynamoDB has no case-insensitive comparison, so the check folds in memory.
func (s *CompanyStore) Create(ctx context.Context, c *model.Company) (*model.Company, error) {
	existing, err := s.GetByName(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrDuplicateName
	}

	id, err := s.counter.NextID(ctx, model.CounterCompanies)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if c.Status == "" {
		c.Status = model.StatusActive
	}
	c.CreatedDate = now()
	c.UpdatedDate = c.CreatedDate

	item, err := attributevalue.MarshalMap(companyToItem(c))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal company: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put company: %w", err)
	}
	return c, nil
}

func (s *CompanyStore) GetByID(ctx context.Context, id int) (*model.Company, error) {
	raw, err := getByNumericID(ctx, s.client, s.table, id)
	if err != nil || raw == nil {
		return nil, err
	}
	var it companyItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal company: %w", err)
	}
	c := companyFromItem(it)
	return &c, nil
}

// GetByName matches case-insensitively.
func (s *CompanyStore) GetByName(ctx context.Context, name string) (*model.Company, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Name, name) {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (s *CompanyStore) List(ctx context.Context) ([]model.Company, error) {
	return s.list(ctx, nil)
}

func (s *CompanyStore) ListActive(ctx context.Context) ([]model.Company, error) {
	expr, err := expression.NewBuilder().
		WithFilter(equalsFilter("status", model.StatusActive)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	return s.list(ctx, &expr)
}

func (s *CompanyStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	return applyUpdate(ctx, s.client, s.table, numericKey(id), "id", fields)
}

func (s *CompanyStore) list(ctx context.Context, expr *expression.Expression) ([]model.Company, error) {
	raw, err := scanAll(ctx, s.client, s.table, expr)
	if err != nil {
		return nil, err
	}
	var items []companyItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal companies: %w", err)
	}
	out := make([]model.Company, 0, len(items))
	for _, it := range items {
		out = append(out, companyFromItem(it))
	}
	return out, nil
}
