package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"hrdesk-backend/domain/model"
)

// enricher attaches profiles and pipeline stages to process-profile rows.
// The stage lookup is scanned once per call; profiles are point-read per row.
// Rows whose profile no longer exists are dropped rather than surfaced as
// errors, so a stale pipeline row cannot break the listing.
type enricher struct {
	client      API
	profiles    string
	statusTable string
}

func (e *enricher) enrich(ctx context.Context, rows []model.ProcessProfile) ([]model.RequirementProfile, error) {
	stageByID, err := e.stages(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.RequirementProfile, 0, len(rows))
	for _, pp := range rows {
		if pp.ProfileID == 0 {
			continue
		}
		raw, err := getByNumericID(ctx, e.client, e.profiles, pp.ProfileID)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		var it profileItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		p := profileFromItem(it)

		stage, ok := stageByID[p.Status]
		if !ok {
			stage = model.StageUnknown
		}
		out = append(out, model.RequirementProfile{ProcessProfile: pp, Profile: p, Stage: stage})
	}
	return out, nil
}

func (e *enricher) stages(ctx context.Context) (map[int]string, error) {
	raw, err := scanAll(ctx, e.client, e.statusTable, nil)
	if err != nil {
		return nil, err
	}
	var items []statusItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile statuses: %w", err)
	}
	byID := make(map[int]string, len(items))
	for _, it := range items {
		byID[it.ID] = it.Status
	}
	return byID, nil
}
