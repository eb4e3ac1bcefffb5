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

type processProfileItem struct {
	ID              int    `dynamodbav:"id"`
	RequirementID   int    `dynamodbav:"requirement_id"`
	ProfileID       int    `dynamodbav:"profile_id"`
	RecruiterName   string `dynamodbav:"recruiter_name"`
	Status          int    `dynamodbav:"status"`
	ActivelyWorking string `dynamodbav:"actively_working"`
	Remarks         string `dynamodbav:"remarks"`
	CreatedDate     string `dynamodbav:"created_date"`
	UpdatedDate     string `dynamodbav:"updated_date"`
}

func processProfileToItem(pp *model.ProcessProfile) processProfileItem {
	return processProfileItem{
		ID:              pp.ID,
		RequirementID:   pp.RequirementID,
		ProfileID:       pp.ProfileID,
		RecruiterName:   pp.RecruiterName,
		Status:          pp.Status,
		ActivelyWorking: pp.ActivelyWorking,
		Remarks:         pp.Remarks,
		CreatedDate:     formatTime(pp.CreatedDate),
		UpdatedDate:     formatTime(pp.UpdatedDate),
	}
}

func processProfileFromItem(it processProfileItem) model.ProcessProfile {
	return model.ProcessProfile{
		ID:              it.ID,
		RequirementID:   it.RequirementID,
		ProfileID:       it.ProfileID,
		RecruiterName:   it.RecruiterName,
		Status:          it.Status,
		ActivelyWorking: it.ActivelyWorking,
		Remarks:         it.Remarks,
		CreatedDate:     parseTime(it.CreatedDate),
		UpdatedDate:     parseTime(it.UpdatedDate),
	}
}

// ProcessProfileStore implements the pipeline-row contract on DynamoDB.
// Match-by-pair lookups run as scans because the table is keyed by the
// surrogate id only.
type ProcessProfileStore struct {
	client   API
	table    string
	counter  *Counter
	enricher *enricher
}

func NewProcessProfileStore(client API, table, profileTable, profileStatusTable string, counter *Counter) *ProcessProfileStore {
	return &ProcessProfileStore{
		client:  client,
		table:   table,
		counter: counter,
		enricher: &enricher{
			client:      client,
			profiles:    profileTable,
			statusTable: profileStatusTable,
		},
	}
}

// Create is idempotent on (requirement_id, recruiter_name): an existing
// assignment row is refreshed and returned instead of inserting a duplicate.
func (s *ProcessProfileStore) Create(ctx context.Context, pp *model.ProcessProfile) (*model.ProcessProfile, error) {
	existing, err := s.findFirst(ctx,
		equalsFilter("requirement_id", pp.RequirementID).
			And(equalsFilter("recruiter_name", pp.RecruiterName)))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if pp.ActivelyWorking != "" && existing.ActivelyWorking != pp.ActivelyWorking {
			matched, err := applyUpdate(ctx, s.client, s.table, numericKey(existing.ID), "id",
				model.Fields{"actively_working": pp.ActivelyWorking})
			if err != nil {
				return nil, err
			}
			if matched {
				existing.ActivelyWorking = pp.ActivelyWorking
			}
		}
		return existing, nil
	}
	return s.insert(ctx, pp)
}

// Upsert merges on (requirement_id, profile_id), inserting when absent.
func (s *ProcessProfileStore) Upsert(ctx context.Context, pp *model.ProcessProfile) (*model.ProcessProfile, error) {
	existing, err := s.findFirst(ctx,
		equalsFilter("requirement_id", pp.RequirementID).
			And(equalsFilter("profile_id", pp.ProfileID)))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.RecruiterName = pp.RecruiterName
		existing.Status = pp.Status
		if pp.ActivelyWorking != "" {
			existing.ActivelyWorking = pp.ActivelyWorking
		}
		if pp.Remarks != "" {
			existing.Remarks = pp.Remarks
		}
		existing.UpdatedDate = now()

		item, err := attributevalue.MarshalMap(processProfileToItem(existing))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal process profile: %w", err)
		}
		if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.table),
			Item:      item,
		}); err != nil {
			return nil, fmt.Errorf("failed to put process profile: %w", err)
		}
		return existing, nil
	}
	return s.insert(ctx, pp)
}

func (s *ProcessProfileStore) insert(ctx context.Context, pp *model.ProcessProfile) (*model.ProcessProfile, error) {
	id, err := s.counter.NextID(ctx, model.CounterProcessProfiles)
	if err != nil {
		return nil, err
	}
	pp.ID = id
	ts := now()
	pp.CreatedDate = ts
	pp.UpdatedDate = ts
	if pp.ActivelyWorking == "" {
		pp.ActivelyWorking = "No"
	}

	item, err := attributevalue.MarshalMap(processProfileToItem(pp))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal process profile: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put process profile: %w", err)
	}
	return pp, nil
}

func (s *ProcessProfileStore) UpdateRecruiter(ctx context.Context, requirementID int, recruiter string) (bool, error) {
	return s.updateMatching(ctx,
		equalsFilter("requirement_id", requirementID),
		model.Fields{"recruiter_name": recruiter})
}

func (s *ProcessProfileStore) UpdateByProfile(ctx context.Context, requirementID, profileID int, fields model.Fields) (bool, error) {
	return s.updateMatching(ctx,
		equalsFilter("requirement_id", requirementID).
			And(equalsFilter("profile_id", profileID)),
		fields)
}

func (s *ProcessProfileStore) UpdateActivelyWorkingByRecruiter(ctx context.Context, requirementID int, recruiter, activelyWorking string) (bool, error) {
	return s.updateMatching(ctx,
		equalsFilter("requirement_id", requirementID).
			And(equalsFilter("recruiter_name", recruiter)),
		model.Fields{"actively_working": activelyWorking})
}

// ProfilesByRequirement returns pipeline rows with profile_id set, each with
// its profile attached and the stage resolved from the status lookup.
func (s *ProcessProfileStore) ProfilesByRequirement(ctx context.Context, requirementID int) ([]model.RequirementProfile, error) {
	rows, err := s.scanRows(ctx, equalsFilter("requirement_id", requirementID))
	if err != nil {
		return nil, err
	}
	return s.enricher.enrich(ctx, rows)
}

func (s *ProcessProfileStore) ProfilesByRequirementAndRecruiter(ctx context.Context, requirementID int, recruiter string) ([]model.RequirementProfile, error) {
	rows, err := s.scanRows(ctx,
		equalsFilter("requirement_id", requirementID).
			And(equalsFilter("recruiter_name", recruiter)))
	if err != nil {
		return nil, err
	}
	return s.enricher.enrich(ctx, rows)
}

// requirementIDsByRecruiter indexes the requirements a recruiter is assigned
// to. Used by the requirement store to filter open requirements.
func (s *ProcessProfileStore) requirementIDsByRecruiter(ctx context.Context, recruiter string) (map[int]bool, error) {
	rows, err := s.scanRows(ctx, equalsFilter("recruiter_name", recruiter))
	if err != nil {
		return nil, err
	}
	ids := make(map[int]bool, len(rows))
	for _, pp := range rows {
		ids[pp.RequirementID] = true
	}
	return ids, nil
}

func (s *ProcessProfileStore) scanRows(ctx context.Context, filter expression.ConditionBuilder) ([]model.ProcessProfile, error) {
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	raw, err := scanAll(ctx, s.client, s.table, &expr)
	if err != nil {
		return nil, err
	}
	var items []processProfileItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal process profiles: %w", err)
	}
	out := make([]model.ProcessProfile, 0, len(items))
	for _, it := range items {
		out = append(out, processProfileFromItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ProcessProfileStore) findFirst(ctx context.Context, filter expression.ConditionBuilder) (*model.ProcessProfile, error) {
	rows, err := s.scanRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// updateMatching applies the same field map to every row passing the filter,
// reporting whether any row matched.
func (s *ProcessProfileStore) updateMatching(ctx context.Context, filter expression.ConditionBuilder, fields model.Fields) (bool, error) {
	rows, err := s.scanRows(ctx, filter)
	if err != nil {
		return false, err
	}
	for _, pp := range rows {
		if _, err := applyUpdate(ctx, s.client, s.table, numericKey(pp.ID), "id", fields); err != nil {
			return false, err
		}
	}
	return len(rows) > 0, nil
}
