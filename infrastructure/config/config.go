package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// TableNames holds the per-entity DynamoDB table names. Every name is
// environment-suffixed (-dev outside production) unless overridden.
type TableNames struct {
	Companies         string
	SPOCs             string
	Requirements      string
	RequirementStatus string
	Profiles          string
	ProfileStatus     string
	ProcessProfiles   string
	Invoices          string
	Leaves            string
	LeaveBalances     string
	FinancialYears    string
	Holidays          string
	HolidaySelections string
	Users             string
	Counters          string
}

// Config holds all application configuration.
type Config struct {
	// Server configuration
	ServerAddress   string
	Environment     string
	ShutdownTimeout int // seconds granted to in-flight requests on shutdown

	// Backend selection: true routes all persistence through DynamoDB,
	// false through SQLite. Read once at process start.
	UseDynamo bool

	// SQLite configuration
	SQLitePath string

	// AWS configuration
	AWSRegion string
	Tables    TableNames

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")
	suffix := ""
	if env != "production" {
		suffix = "-" + env
	}

	cfg := &Config{
		ServerAddress:   getEnv("SERVER_ADDRESS", ":8080"),
		Environment:     env,
		ShutdownTimeout: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 30),
		UseDynamo:       getEnvBool("USE_DYNAMODB", false),
		SQLitePath:      getEnv("DB_FILE_PATH", filepath.Join(os.TempDir(), getEnv("DB_FILE_NAME", "hrdesk.db"))),
		AWSRegion:       getEnv("AWS_REGION", "ap-south-1"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Tables: TableNames{
			Companies:         getEnv("COMPANIES_TABLE", "hrdesk-companies"+suffix),
			SPOCs:             getEnv("SPOCS_TABLE", "hrdesk-spocs"+suffix),
			Requirements:      getEnv("REQUIREMENTS_TABLE", "hrdesk-requirements"+suffix),
			RequirementStatus: getEnv("REQUIREMENT_STATUSES_TABLE", "hrdesk-requirement-statuses"+suffix),
			Profiles:          getEnv("PROFILES_TABLE", "hrdesk-profiles"+suffix),
			ProfileStatus:     getEnv("PROFILE_STATUSES_TABLE", "hrdesk-profile-statuses"+suffix),
			ProcessProfiles:   getEnv("PROCESS_PROFILES_TABLE", "hrdesk-process-profiles"+suffix),
			Invoices:          getEnv("INVOICES_TABLE", "hrdesk-invoices"+suffix),
			Leaves:            getEnv("LEAVES_TABLE", "hrdesk-leaves"+suffix),
			LeaveBalances:     getEnv("LEAVE_BALANCES_TABLE", "hrdesk-leave-balances"+suffix),
			FinancialYears:    getEnv("FINANCIAL_YEARS_TABLE", "hrdesk-financial-years"+suffix),
			Holidays:          getEnv("HOLIDAYS_TABLE", "hrdesk-holidays"+suffix),
			HolidaySelections: getEnv("HOLIDAY_SELECTIONS_TABLE", "hrdesk-holiday-selections"+suffix),
			Users:             getEnv("USERS_TABLE", "hrdesk-users"+suffix),
			Counters:          getEnv("COUNTERS_TABLE", "hrdesk-counters"+suffix),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.UseDynamo && c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required when USE_DYNAMODB is set")
	}
	if !c.UseDynamo && c.SQLitePath == "" {
		return fmt.Errorf("DB_FILE_PATH is required when USE_DYNAMODB is not set")
	}
	return nil
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
