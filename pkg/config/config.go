package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Dataset
	Data DataConfig

	// Database (only for DATA_SOURCE=postgres or mysql)
	Database DatabaseConfig

	// HTTP API
	API APIConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DataConfig describes where the wide GDP table lives and how it is laid out
type DataConfig struct {
	Source     string // csv, postgres, mysql
	File       string // CSV path
	Table      string // PostgreSQL table
	IDColumn   string
	NameColumn string
	MinYear    int
	MaxYear    int

	// Cache lifetime; 0 keeps the dataset for the process lifetime
	CacheTTL time.Duration

	// Cron expression (with seconds) for periodic reload; empty disables it
	ReloadSchedule string

	// Minimum share of non-missing cells for `check` to pass
	MinCoverage float64

	// Optional YAML dataset definition, overrides the values above
	DefinitionFile string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL      string // PostgreSQL
	MySQLDSN string // MySQL, go-sql-driver DSN

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// APIConfig holds HTTP API limits
type APIConfig struct {
	RateLimitRPS   float64 // 0 disables rate limiting
	RateLimitBurst int
}

// Data source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceMySQL    = "mysql"
)

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit .env file; empty searches the default locations
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		loadEnvFile()
	}

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Dataset
		Data: DataConfig{
			Source:         getEnv("DATA_SOURCE", SourceCSV),
			File:           getEnv("DATA_FILE", "data/gdp_data.csv"),
			Table:          getEnv("DATA_TABLE", "gdp_wide"),
			IDColumn:       getEnv("ID_COLUMN", "Country Code"),
			NameColumn:     getEnv("NAME_COLUMN", "Country Name"),
			MinYear:        getEnvAsInt("MIN_YEAR", 1960),
			MaxYear:        getEnvAsInt("MAX_YEAR", 2023),
			CacheTTL:       getEnvAsDuration("CACHE_TTL", "0s"),
			ReloadSchedule: getEnv("RELOAD_SCHEDULE", ""),
			MinCoverage:    getEnvAsFloat("MIN_COVERAGE", 0.5),
			DefinitionFile: getEnv("DATASET_CONFIG", ""),
		},

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MySQLDSN:        getEnv("MYSQL_DSN", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 5),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// HTTP API
		API: APIConfig{
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 20),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 40),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// UsesDatabase reports whether a database connection is needed
func (c *Config) UsesDatabase() bool {
	return c.Data.Source == SourcePostgres || c.Data.Source == SourceMySQL
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Data.Source {
	case SourceCSV:
		if c.Data.File == "" {
			return fmt.Errorf("DATA_FILE is required when DATA_SOURCE=csv")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
		if c.Data.Table == "" {
			return fmt.Errorf("DATA_TABLE is required when DATA_SOURCE=postgres")
		}
	case SourceMySQL:
		if c.Database.MySQLDSN == "" {
			return fmt.Errorf("MYSQL_DSN is required when DATA_SOURCE=mysql")
		}
		if c.Data.Table == "" {
			return fmt.Errorf("DATA_TABLE is required when DATA_SOURCE=mysql")
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be one of: csv, postgres, mysql")
	}

	if c.Data.MinYear > c.Data.MaxYear {
		return fmt.Errorf("MIN_YEAR (%d) must not be after MAX_YEAR (%d)", c.Data.MinYear, c.Data.MaxYear)
	}

	if c.Data.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}

	if c.Data.MinCoverage < 0 || c.Data.MinCoverage > 1 {
		return fmt.Errorf("MIN_COVERAGE must be within [0, 1]")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
