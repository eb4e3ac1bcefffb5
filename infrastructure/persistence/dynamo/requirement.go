package dynamo

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"hrdesk-backend/domain/model"
)

type requirementItem struct {
	RequirementID       int     `dynamodbav:"requirement_id"`
	CompanyID           int     `dynamodbav:"company_id"`
	KeySkill            string  `dynamodbav:"key_skill"`
	JD                  string  `dynamodbav:"jd"`
	StatusID            int     `dynamodbav:"status_id"`
	RecruiterName       string  `dynamodbav:"recruiter_name"`
	ClosedDate          string  `dynamodbav:"closed_date"`
	Budget              float64 `dynamodbav:"budget"`
	ExpectedBillingDate string  `dynamodbav:"expected_billing_date"`
	Location            string  `dynamodbav:"location"`
	Remarks             string  `dynamodbav:"remarks"`
	ReqCustRefID        string  `dynamodbav:"req_cust_ref_id"`
	CreatedDate         string  `dynamodbav:"created_date"`
	UpdatedDate         string  `dynamodbav:"updated_date"`
}

func requirementToItem(r *model.Requirement) requirementItem {
	return requirementItem{
		RequirementID:       r.RequirementID,
		CompanyID:           r.CompanyID,
		KeySkill:            r.KeySkill,
		JD:                  r.JD,
		StatusID:            r.StatusID,
		RecruiterName:       r.RecruiterName,
		ClosedDate:          formatTimePtr(r.ClosedDate),
		Budget:              r.Budget,
		ExpectedBillingDate: formatTimePtr(r.ExpectedBillingDate),
		Location:            r.Location,
		Remarks:             r.Remarks,
		ReqCustRefID:        r.ReqCustRefID,
		CreatedDate:         formatTime(r.CreatedDate),
		UpdatedDate:         formatTime(r.UpdatedDate),
	}
}

func requirementFromItem(it requirementItem) model.Requirement {
	return model.Requirement{
		RequirementID:       it.RequirementID,
		CompanyID:           it.CompanyID,
		KeySkill:            it.KeySkill,
		JD:                  it.JD,
		StatusID:            it.StatusID,
		RecruiterName:       it.RecruiterName,
		ClosedDate:          parseTimePtr(it.ClosedDate),
		Budget:              it.Budget,
		ExpectedBillingDate: parseTimePtr(it.ExpectedBillingDate),
		Location:            it.Location,
		Remarks:             it.Remarks,
		ReqCustRefID:        it.ReqCustRefID,
		CreatedDate:         parseTime(it.CreatedDate),
		UpdatedDate:         parseTime(it.UpdatedDate),
	}
}

// RequirementStore implements persistence.RequirementStore on DynamoDB. The
// primary key attribute is requirement_id, not id.
type RequirementStore struct {
	client      API
	table       string
	statusTable string
	counter     *Counter
	process     *ProcessProfileStore
}

func NewRequirementStore(client API, table, statusTable string, counter *Counter, process *ProcessProfileStore) *RequirementStore {
	return &RequirementStore{
		client:      client,
		table:       table,
		statusTable: statusTable,
		counter:     counter,
		process:     process,
	}
}

func requirementKey(id int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"requirement_id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
	}
}

func (s *RequirementStore) Create(ctx context.Context, r *model.Requirement) (*model.Requirement, error) {
	id, err := s.counter.NextID(ctx, model.CounterRequirements)
	if err != nil {
		return nil, err
	}
	r.RequirementID = id
	r.CreatedDate = now()
	r.UpdatedDate = r.CreatedDate

	item, err := attributevalue.MarshalMap(requirementToItem(r))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirement: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put requirement: %w", err)
	}
	return r, nil
}

func (s *RequirementStore) GetByID(ctx context.Context, id int) (*model.Requirement, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       requirementKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get requirement %d: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var it requirementItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirement: %w", err)
	}
	r := requirementFromItem(it)
	return &r, nil
}

func (s *RequirementStore) List(ctx context.Context) ([]model.Requirement, error) {
	return s.list(ctx, nil)
}

// ListOpenByCompany returns the company's requirements still in an open status.
func (s *RequirementStore) ListOpenByCompany(ctx context.Context, companyID int) ([]model.Requirement, error) {
	filter := equalsFilter("company_id", companyID).And(openStatusFilter())
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	return s.list(ctx, &expr)
}

// ListOpenByCompanyAndRecruiter narrows open requirements to those the
// recruiter has a pipeline assignment on. The assignment lookup happens
// application side because the link lives in a different table.
func (s *RequirementStore) ListOpenByCompanyAndRecruiter(ctx context.Context, companyID int, recruiter string) ([]model.Requirement, error) {
	open, err := s.ListOpenByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	assigned, err := s.process.requirementIDsByRecruiter(ctx, recruiter)
	if err != nil {
		return nil, err
	}
	out := make([]model.Requirement, 0, len(open))
	for _, r := range open {
		if assigned[r.RequirementID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RequirementStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	return applyUpdate(ctx, s.client, s.table, requirementKey(id), "requirement_id", fields)
}

func (s *RequirementStore) ListStatuses(ctx context.Context) ([]model.RequirementStatus, error) {
	raw, err := scanAll(ctx, s.client, s.statusTable, nil)
	if err != nil {
		return nil, err
	}
	var items []statusItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirement statuses: %w", err)
	}
	out := make([]model.RequirementStatus, 0, len(items))
	for _, it := range items {
		out = append(out, model.RequirementStatus{ID: it.ID, Status: it.Status})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RequirementStore) list(ctx context.Context, expr *expression.Expression) ([]model.Requirement, error) {
	raw, err := scanAll(ctx, s.client, s.table, expr)
	if err != nil {
		return nil, err
	}
	var items []requirementItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
	}
	out := make([]model.Requirement, 0, len(items))
	for _, it := range items {
		out = append(out, requirementFromItem(it))
	}
	return out, nil
}

func openStatusFilter() expression.ConditionBuilder {
	filter := equalsFilter("status_id", model.OpenRequirementStatuses[0])
	for _, id := range model.OpenRequirementStatuses[1:] {
		filter = filter.Or(equalsFilter("status_id", id))
	}
	return filter
}
