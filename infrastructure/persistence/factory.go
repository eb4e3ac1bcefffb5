package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hrdesk-backend/infrastructure/config"
	"hrdesk-backend/infrastructure/persistence/dynamo"
	"hrdesk-backend/infrastructure/persistence/sqlite"
)

// NewStore selects the backend from configuration and assembles the store
// façade. The selection happens exactly once; nothing downstream can switch
// backends mid-flight.
func NewStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	if cfg.UseDynamo {
		return newDynamoStore(ctx, cfg, logger)
	}
	return newSQLiteStore(cfg, logger)
}

func newSQLiteStore(cfg *config.Config, logger *zap.Logger) (*Store, error) {
	repo, err := sqlite.Open(cfg.SQLitePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite backend: %w", err)
	}
	logger.Info("storage backend selected",
		zap.String("backend", "sqlite"),
		zap.String("path", cfg.SQLitePath))

	return &Store{
		Company:        sqlite.NewCompanyStore(repo),
		SPOC:           sqlite.NewSPOCStore(repo),
		Requirement:    sqlite.NewRequirementStore(repo),
		Profile:        sqlite.NewProfileStore(repo),
		ProcessProfile: sqlite.NewProcessProfileStore(repo),
		Invoice:        sqlite.NewInvoiceStore(repo),
		Leave:          sqlite.NewLeaveStore(repo),
		FinancialYear:  sqlite.NewFinancialYearStore(repo),
		Holiday:        sqlite.NewHolidayStore(repo),
		User:           sqlite.NewUserStore(repo),
		closer:         repo.Close,
	}, nil
}

func newDynamoStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	client, err := dynamo.NewClient(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamodb client: %w", err)
	}
	if err := dynamo.SeedStatusTables(ctx, client, cfg.Tables.RequirementStatus, cfg.Tables.ProfileStatus); err != nil {
		return nil, fmt.Errorf("failed to seed status tables: %w", err)
	}
	logger.Info("storage backend selected",
		zap.String("backend", "dynamodb"),
		zap.String("region", cfg.AWSRegion))

	counter := dynamo.NewCounter(client, cfg.Tables.Counters)
	processProfiles := dynamo.NewProcessProfileStore(client,
		cfg.Tables.ProcessProfiles, cfg.Tables.Profiles, cfg.Tables.ProfileStatus, counter)

	return &Store{
		Company: dynamo.NewCompanyStore(client, cfg.Tables.Companies, counter),
		SPOC:    dynamo.NewSPOCStore(client, cfg.Tables.SPOCs, counter),
		Requirement: dynamo.NewRequirementStore(client,
			cfg.Tables.Requirements, cfg.Tables.RequirementStatus, counter, processProfiles),
		Profile: dynamo.NewProfileStore(client,
			cfg.Tables.Profiles, cfg.Tables.ProfileStatus, cfg.Tables.ProcessProfiles,
			cfg.Tables.Requirements, cfg.Tables.Companies, counter),
		ProcessProfile: processProfiles,
		Invoice:        dynamo.NewInvoiceStore(client, cfg.Tables.Invoices, counter),
		Leave:          dynamo.NewLeaveStore(client, cfg.Tables.Leaves, cfg.Tables.LeaveBalances, counter),
		FinancialYear:  dynamo.NewFinancialYearStore(client, cfg.Tables.FinancialYears, counter),
		Holiday:        dynamo.NewHolidayStore(client, cfg.Tables.Holidays, cfg.Tables.HolidaySelections, counter),
		User:           dynamo.NewUserStore(client, cfg.Tables.Users, counter),
	}, nil
}
