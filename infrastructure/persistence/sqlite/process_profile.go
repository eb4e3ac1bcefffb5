package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hrdesk-backend/domain/model"
)

// ProcessProfileStore implements the pipeline-row contract on GORM. The
// relational path gets the stage annotation from a JOIN against the profile
// status lookup.
type ProcessProfileStore struct {
	db *gorm.DB
}

func NewProcessProfileStore(r *Repository) *ProcessProfileStore {
	return &ProcessProfileStore{db: r.db}
}

// Create is idempotent on (requirement_id, recruiter_name): an existing
// assignment row is refreshed and returned instead of inserting a duplicate.
func (s *ProcessProfileStore) Create(ctx context.Context, pp *model.ProcessProfile) (*model.ProcessProfile, error) {
	var existing model.ProcessProfile
	err := s.db.WithContext(ctx).
		Where("requirement_id = ? AND recruiter_name = ?", pp.RequirementID, pp.RecruiterName).
		First(&existing).Error
	if err == nil {
		if existing.ActivelyWorking != pp.ActivelyWorking && pp.ActivelyWorking != "" {
			existing.ActivelyWorking = pp.ActivelyWorking
			existing.UpdatedDate = now()
			if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
				return nil, err
			}
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.insert(ctx, pp)
}

// Upsert merges on (requirement_id, profile_id), inserting when absent.
func (s *ProcessProfileStore) Upsert(ctx context.Context, pp *model.ProcessProfile) (*model.ProcessProfile, error) {
	var existing model.ProcessProfile
	err := s.db.WithContext(ctx).
		Where("requirement_id = ? AND profile_id = ?", pp.RequirementID, pp.ProfileID).
		First(&existing).Error
	if err == nil {
		existing.RecruiterName = pp.RecruiterName
		existing.Status = pp.Status
		if pp.ActivelyWorking != "" {
			existing.ActivelyWorking = pp.ActivelyWorking
		}
		if pp.Remarks != "" {
			existing.Remarks = pp.Remarks
		}
		existing.UpdatedDate = now()
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.insert(ctx, pp)
}

func (s *ProcessProfileStore) insert(ctx context.Context, pp *model.ProcessProfile) (*model.ProcessProfile, error) {
	ts := now()
	pp.CreatedDate = ts
	pp.UpdatedDate = ts
	if pp.ActivelyWorking == "" {
		pp.ActivelyWorking = "No"
	}
	if err := s.db.WithContext(ctx).Create(pp).Error; err != nil {
		return nil, err
	}
	return pp, nil
}

func (s *ProcessProfileStore) UpdateRecruiter(ctx context.Context, requirementID int, recruiter string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.ProcessProfile{}).
		Where("requirement_id = ?", requirementID).
		Updates(withUpdatedDate(model.Fields{"recruiter_name": recruiter}))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *ProcessProfileStore) UpdateByProfile(ctx context.Context, requirementID, profileID int, fields model.Fields) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.ProcessProfile{}).
		Where("requirement_id = ? AND profile_id = ?", requirementID, profileID).
		Updates(withUpdatedDate(fields))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *ProcessProfileStore) UpdateActivelyWorkingByRecruiter(ctx context.Context, requirementID int, recruiter, activelyWorking string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.ProcessProfile{}).
		Where("requirement_id = ? AND recruiter_name = ?", requirementID, recruiter).
		Updates(withUpdatedDate(model.Fields{"actively_working": activelyWorking}))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ProfilesByRequirement returns pipeline rows with profile_id set, each with
// its profile attached and the stage resolved from the status lookup.
func (s *ProcessProfileStore) ProfilesByRequirement(ctx context.Context, requirementID int) ([]model.RequirementProfile, error) {
	var rows []model.ProcessProfile
	err := s.db.WithContext(ctx).
		Where("requirement_id = ? AND profile_id > 0", requirementID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return s.attachProfiles(ctx, rows)
}

func (s *ProcessProfileStore) ProfilesByRequirementAndRecruiter(ctx context.Context, requirementID int, recruiter string) ([]model.RequirementProfile, error) {
	var rows []model.ProcessProfile
	err := s.db.WithContext(ctx).
		Where("requirement_id = ? AND recruiter_name = ? AND profile_id > 0", requirementID, recruiter).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return s.attachProfiles(ctx, rows)
}

func (s *ProcessProfileStore) attachProfiles(ctx context.Context, rows []model.ProcessProfile) ([]model.RequirementProfile, error) {
	var stages []model.ProfileStatus
	if err := s.db.WithContext(ctx).Find(&stages).Error; err != nil {
		return nil, err
	}
	stageByID := make(map[int]string, len(stages))
	for _, st := range stages {
		stageByID[st.ID] = st.Status
	}

	out := make([]model.RequirementProfile, 0, len(rows))
	for _, pp := range rows {
		var p model.Profile
		err := s.db.WithContext(ctx).First(&p, "id = ?", pp.ProfileID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		stage, ok := stageByID[p.Status]
		if !ok {
			stage = model.StageUnknown
		}
		out = append(out, model.RequirementProfile{ProcessProfile: pp, Profile: p, Stage: stage})
	}
	return out, nil
}
