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

type invoiceItem struct {
	ID            int     `dynamodbav:"id"`
	InvoiceNumber string  `dynamodbav:"invoice_number"`
	Reference     string  `dynamodbav:"reference"`
	CompanyID     int     `dynamodbav:"company_id"`
	PONumber      string  `dynamodbav:"po_number"`
	Amount        float64 `dynamodbav:"amount"`
	RaisedDate    string  `dynamodbav:"raised_date"`
	DueDate       string  `dynamodbav:"due_date"`
	Status        string  `dynamodbav:"status"`
	Remarks       string  `dynamodbav:"remarks"`
	CreatedDate   string  `dynamodbav:"created_date"`
	UpdatedDate   string  `dynamodbav:"updated_date"`
}

func invoiceToItem(inv *model.Invoice) invoiceItem {
	return invoiceItem{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Reference:     inv.Reference,
		CompanyID:     inv.CompanyID,
		PONumber:      inv.PONumber,
		Amount:        inv.Amount,
		RaisedDate:    formatTimePtr(inv.RaisedDate),
		DueDate:       formatTimePtr(inv.DueDate),
		Status:        inv.Status,
		Remarks:       inv.Remarks,
		CreatedDate:   formatTime(inv.CreatedDate),
		UpdatedDate:   formatTime(inv.UpdatedDate),
	}
}

func invoiceFromItem(it invoiceItem) model.Invoice {
	return model.Invoice{
		ID:            it.ID,
		InvoiceNumber: it.InvoiceNumber,
		Reference:     it.Reference,
		CompanyID:     it.CompanyID,
		PONumber:      it.PONumber,
		Amount:        it.Amount,
		RaisedDate:    parseTimePtr(it.RaisedDate),
		DueDate:       parseTimePtr(it.DueDate),
		Status:        it.Status,
		Remarks:       it.Remarks,
		CreatedDate:   parseTime(it.CreatedDate),
		UpdatedDate:   parseTime(it.UpdatedDate),
	}
}

// InvoiceStore implements persistence.InvoiceStore on DynamoDB.
type InvoiceStore struct {
	client  API
	table   string
	counter *Counter
}

func NewInvoiceStore(client API, table string, counter *Counter) *InvoiceStore {
	return &InvoiceStore{client: client, table: table, counter: counter}
}

func (s *InvoiceStore) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	id, err := s.counter.NextID(ctx, model.CounterInvoices)
	if err != nil {
		return nil, err
	}
	inv.ID = id
	if inv.Status == "" {
		inv.Status = model.InvoicePending
	}
	inv.CreatedDate = now()
	inv.UpdatedDate = inv.CreatedDate

	item, err := attributevalue.MarshalMap(invoiceToItem(inv))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put invoice: %w", err)
	}
	return inv, nil
}

func (s *InvoiceStore) GetByID(ctx context.Context, id int) (*model.Invoice, error) {
	raw, err := getByNumericID(ctx, s.client, s.table, id)
	if err != nil || raw == nil {
		return nil, err
	}
	var it invoiceItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invoice: %w", err)
	}
	inv := invoiceFromItem(it)
	return &inv, nil
}

func (s *InvoiceStore) List(ctx context.Context) ([]model.Invoice, error) {
	return s.list(ctx, nil)
}

func (s *InvoiceStore) ListByCompany(ctx context.Context, companyID int) ([]model.Invoice, error) {
	expr, err := expression.NewBuilder().
		WithFilter(equalsFilter("company_id", companyID)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	return s.list(ctx, &expr)
}

func (s *InvoiceStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	return applyUpdate(ctx, s.client, s.table, numericKey(id), "id", fields)
}

func (s *InvoiceStore) list(ctx context.Context, expr *expression.Expression) ([]model.Invoice, error) {
	raw, err := scanAll(ctx, s.client, s.table, expr)
	if err != nil {
		return nil, err
	}
	var items []invoiceItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invoices: %w", err)
	}
	out := make([]model.Invoice, 0, len(items))
	for _, it := range items {
		out = append(out, invoiceFromItem(it))
	}
	return out, nil
}
