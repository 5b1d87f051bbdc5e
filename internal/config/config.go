package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/validator"
	"github.com/joho/godotenv"
)

const (
	SourcePostgres = "postgres"
	SourceFile     = "file"

	DestinationPostgres = "postgres"
	DestinationCSV      = "csv"
)

var (
	sources      = []string{SourcePostgres, SourceFile}
	destinations = []string{DestinationPostgres, DestinationCSV}
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	ETL      ETLConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// ETLConfig selects the pipeline's sources, destination and schedule.
type ETLConfig struct {
	Source           string
	TimesheetsPath   string
	EmployeesPath    string
	Destination      string
	OutputPath       string
	DestinationTable string
	Interval         time.Duration
	AggregateWorkers int
	ShiftRulesFile   string
}

// Load reads configuration from the environment. A missing .env file is not
// an error. overrides run before validation, letting command-line flags take
// precedence over the environment.
func Load(overrides ...func(*Config)) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func fromEnv() (*Config, error) {
	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "branch_salary"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// ETL configuration
	interval, err := time.ParseDuration(getEnv("ETL_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ETL_INTERVAL: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("AGGREGATE_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid AGGREGATE_WORKERS: %w", err)
	}

	config.ETL = ETLConfig{
		Source:           strings.ToLower(getEnv("ETL_SOURCE", SourcePostgres)),
		TimesheetsPath:   getEnv("TIMESHEETS_PATH", ""),
		EmployeesPath:    getEnv("EMPLOYEES_PATH", ""),
		Destination:      strings.ToLower(getEnv("ETL_DESTINATION", DestinationPostgres)),
		OutputPath:       getEnv("OUTPUT_PATH", ""),
		DestinationTable: getEnv("DESTINATION_TABLE", "branch_salary"),
		Interval:         interval,
		AggregateWorkers: workers,
		ShiftRulesFile:   getEnv("SHIFT_RULES_FILE", ""),
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !validator.IsInSlice(c.ETL.Source, sources) {
		return fmt.Errorf("unknown ETL_SOURCE %q", c.ETL.Source)
	}
	if c.ETL.Source == SourceFile {
		if validator.IsEmpty(c.ETL.TimesheetsPath) {
			return fmt.Errorf("TIMESHEETS_PATH is required when ETL_SOURCE=file")
		}
		if validator.IsEmpty(c.ETL.EmployeesPath) {
			return fmt.Errorf("EMPLOYEES_PATH is required when ETL_SOURCE=file")
		}
	}

	if !validator.IsInSlice(c.ETL.Destination, destinations) {
		return fmt.Errorf("unknown ETL_DESTINATION %q", c.ETL.Destination)
	}
	if c.ETL.Destination == DestinationPostgres && validator.IsEmpty(c.ETL.DestinationTable) {
		return fmt.Errorf("DESTINATION_TABLE is required when ETL_DESTINATION=postgres")
	}

	if c.UsesDatabase() && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.ETL.Interval <= 0 {
		return fmt.Errorf("ETL_INTERVAL must be positive")
	}
	if c.ETL.AggregateWorkers < 1 {
		return fmt.Errorf("AGGREGATE_WORKERS must be at least 1")
	}
	return nil
}

// UsesDatabase reports whether either end of the pipeline is Postgres.
func (c *Config) UsesDatabase() bool {
	return c.ETL.Source == SourcePostgres || c.ETL.Destination == DestinationPostgres
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
