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

	"hrdesk-backend/domain/errs"
	"hrdesk-backend/domain/model"
)

type profileItem struct {
	ID             int     `dynamodbav:"id"`
	Name           string  `dynamodbav:"name"`
	EmailID        string  `dynamodbav:"email_id"`
	Phone          string  `dynamodbav:"phone"`
	KeySkill       string  `dynamodbav:"key_skill"`
	TotalExp       float64 `dynamodbav:"total_exp"`
	CurrentCompany string  `dynamodbav:"current_company"`
	CurrentCTC     float64 `dynamodbav:"current_ctc"`
	ExpectedCTC    float64 `dynamodbav:"expected_ctc"`
	NoticePeriod   string  `dynamodbav:"notice_period"`
	Location       string  `dynamodbav:"location"`
	Status         int     `dynamodbav:"status"`
	Remarks        string  `dynamodbav:"remarks"`
	CreatedDate    string  `dynamodbav:"created_date"`
	UpdatedDate    string  `dynamodbav:"updated_date"`
}

func profileToItem(p *model.Profile) profileItem {
	return profileItem{
		ID:             p.ID,
		Name:           p.Name,
		EmailID:        p.EmailID,
		Phone:          p.Phone,
		KeySkill:       p.KeySkill,
		TotalExp:       p.TotalExp,
		CurrentCompany: p.CurrentCompany,
		CurrentCTC:     p.CurrentCTC,
		ExpectedCTC:    p.ExpectedCTC,
		NoticePeriod:   p.NoticePeriod,
		Location:       p.Location,
		Status:         p.Status,
		Remarks:        p.Remarks,
		CreatedDate:    formatTime(p.CreatedDate),
		UpdatedDate:    formatTime(p.UpdatedDate),
	}
}

func profileFromItem(it profileItem) model.Profile {
	return model.Profile{
		ID:             it.ID,
		Name:           it.Name,
		EmailID:        it.EmailID,
		Phone:          it.Phone,
		KeySkill:       it.KeySkill,
		TotalExp:       it.TotalExp,
		CurrentCompany: it.CurrentCompany,
		CurrentCTC:     it.CurrentCTC,
		ExpectedCTC:    it.ExpectedCTC,
		NoticePeriod:   it.NoticePeriod,
		Location:       it.Location,
		Status:         it.Status,
		Remarks:        it.Remarks,
		CreatedDate:    parseTime(it.CreatedDate),
		UpdatedDate:    parseTime(it.UpdatedDate),
	}
}

// ProfileStore implements persistence.ProfileStore on DynamoDB. The date
// range report joins process profiles, requirements and companies in the
// application because the engine has no join.
type ProfileStore struct {
	client           API
	table            string
	statusTable      string
	processTable     string
	requirementTable string
	companyTable     string
	counter          *Counter
}

func NewProfileStore(client API, table, statusTable, processTable, requirementTable, companyTable string, counter *Counter) *ProfileStore {
	return &ProfileStore{
		client:           client,
		table:            table,
		statusTable:      statusTable,
		processTable:     processTable,
		requirementTable: requirementTable,
		companyTable:     companyTable,
		counter:          counter,
	}
}

// Create validates a nonzero status against the lookup before inserting.
// Zero means unset and is stored as-is.
func (s *ProfileStore) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	if p.Status != 0 {
		statuses, err := s.ListStatuses(ctx)
		if err != nil {
			return nil, err
		}
		valid := false
		for _, st := range statuses {
			if st.ID == p.Status {
				valid = true
				break
			}
		}
		if !valid {
			return nil, errs.ErrInvalidStatus
		}
	}

	id, err := s.counter.NextID(ctx, model.CounterProfiles)
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.CreatedDate = now()
	p.UpdatedDate = p.CreatedDate

	item, err := attributevalue.MarshalMap(profileToItem(p))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id int) (*model.Profile, error) {
	raw, err := getByNumericID(ctx, s.client, s.table, id)
	if err != nil || raw == nil {
		return nil, err
	}
	var it profileItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	p := profileFromItem(it)
	return &p, nil
}

func (s *ProfileStore) List(ctx context.Context) ([]model.Profile, error) {
	return s.list(ctx, nil)
}

func (s *ProfileStore) Update(ctx context.Context, id int, fields model.Fields) (bool, error) {
	return applyUpdate(ctx, s.client, s.table, numericKey(id), "id", fields)
}

func (s *ProfileStore) ListStatuses(ctx context.Context) ([]model.ProfileStatus, error) {
	raw, err := scanAll(ctx, s.client, s.statusTable, nil)
	if err != nil {
		return nil, err
	}
	var items []statusItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile statuses: %w", err)
	}
	out := make([]model.ProfileStatus, 0, len(items))
	for _, it := range items {
		out = append(out, model.ProfileStatus{ID: it.ID, Status: it.Status})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListByDateRange reports profiles created inside [start, end], joined to
// their pipeline assignment and company. An empty recruiter means all
// recruiters. Timestamps sort lexicographically in RFC 3339, so the range
// filter runs as a string comparison.
func (s *ProfileStore) ListByDateRange(ctx context.Context, start, end time.Time, recruiter string) ([]model.ProfileReport, error) {
	filter := expression.Name("created_date").Between(
		expression.Value(formatTime(start)),
		expression.Value(formatTime(end)),
	)
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	profiles, err := s.list(ctx, &expr)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentsByProfile(ctx)
	if err != nil {
		return nil, err
	}
	companyByRequirement, err := s.companyNamesByRequirement(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]model.ProfileReport, 0, len(profiles))
	for _, p := range profiles {
		pp, ok := assignments[p.ID]
		if !ok {
			continue
		}
		if recruiter != "" && pp.RecruiterName != recruiter {
			continue
		}
		reports = append(reports, model.ProfileReport{
			ProfileID:     p.ID,
			Name:          p.Name,
			Status:        p.Status,
			RecruiterName: pp.RecruiterName,
			RequirementID: pp.RequirementID,
			CompanyName:   companyByRequirement[pp.RequirementID],
		})
	}
	return reports, nil
}

func (s *ProfileStore) list(ctx context.Context, expr *expression.Expression) ([]model.Profile, error) {
	raw, err := scanAll(ctx, s.client, s.table, expr)
	if err != nil {
		return nil, err
	}
	var items []profileItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles: %w", err)
	}
	out := make([]model.Profile, 0, len(items))
	for _, it := range items {
		out = append(out, profileFromItem(it))
	}
	return out, nil
}

// assignmentsByProfile scans the pipeline table once and indexes it by
// profile id. Later assignments for the same profile win, matching the
// merge-on-rewrite behavior of the pipeline upsert.
func (s *ProfileStore) assignmentsByProfile(ctx context.Context) (map[int]processProfileItem, error) {
	raw, err := scanAll(ctx, s.client, s.processTable, nil)
	if err != nil {
		return nil, err
	}
	var items []processProfileItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal process profiles: %w", err)
	}
	byProfile := make(map[int]processProfileItem, len(items))
	for _, it := range items {
		if it.ProfileID == 0 {
			continue
		}
		byProfile[it.ProfileID] = it
	}
	return byProfile, nil
}

// companyNamesByRequirement resolves requirement id to company name with two
// scans instead of per-row point reads.
func (s *ProfileStore) companyNamesByRequirement(ctx context.Context) (map[int]string, error) {
	rawReqs, err := scanAll(ctx, s.client, s.requirementTable, nil)
	if err != nil {
		return nil, err
	}
	var reqs []requirementItem
	if err := attributevalue.UnmarshalListOfMaps(rawReqs, &reqs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
	}

	rawCompanies, err := scanAll(ctx, s.client, s.companyTable, nil)
	if err != nil {
		return nil, err
	}
	var companies []companyItem
	if err := attributevalue.UnmarshalListOfMaps(rawCompanies, &companies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal companies: %w", err)
	}
	nameByID := make(map[int]string, len(companies))
	for _, c := range companies {
		nameByID[c.ID] = c.Name
	}

	out := make(map[int]string, len(reqs))
	for _, r := range reqs {
		out[r.RequirementID] = nameByID[r.CompanyID]
	}
	return out, nil
}
