package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Report struct {
		// RecentScoreCount bounds the most-recent-first score slice used for display.
		RecentScoreCount int `yaml:"recent_score_count" env:"REPORT_RECENT_SCORE_COUNT"`
		// RecentConsultationCount bounds the consultation history pulled per report.
		RecentConsultationCount int `yaml:"recent_consultation_count" env:"REPORT_RECENT_CONSULTATION_COUNT"`
		// BatchLimit caps how many students one batch request may target.
		BatchLimit int `yaml:"batch_limit" env:"REPORT_BATCH_LIMIT"`
		// BatchItemDelay is the fixed pause between sequential batch items.
		BatchItemDelay string `yaml:"batch_item_delay" env:"REPORT_BATCH_ITEM_DELAY"`
		// Expiry is how long completed artifacts stay before the expiry sweep
		// marks them archived. Empty disables expiry.
		Expiry string `yaml:"expiry" env:"REPORT_EXPIRY"`
	} `yaml:"report"`

	Renderer struct {
		// ChromePath overrides the headless Chrome binary location. Empty
		// lets the allocator search the usual install paths.
		ChromePath string `yaml:"chrome_path" env:"RENDERER_CHROME_PATH"`
		// RenderTimeout bounds one full markup-load-and-export cycle.
		RenderTimeout string `yaml:"render_timeout" env:"RENDERER_TIMEOUT"`
		// PageFooter toggles the page-number footer on exported documents.
		PageFooter bool `yaml:"page_footer" env:"RENDERER_PAGE_FOOTER"`
	} `yaml:"renderer"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars alone can configure the service
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "storage/reports"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "seodang"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "seodang.app"

	// Report pipeline defaults
	config.Report.RecentScoreCount = 10
	config.Report.RecentConsultationCount = 5
	config.Report.BatchLimit = 50
	config.Report.BatchItemDelay = "500ms"
	config.Report.Expiry = "2160h" // 90 days

	// Renderer defaults
	config.Renderer.RenderTimeout = "45s"
	config.Renderer.PageFooter = true

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Report.BatchItemDelay); err != nil {
		return fmt.Errorf("invalid batch item delay format: %w", err)
	}

	if _, err := time.ParseDuration(config.Renderer.RenderTimeout); err != nil {
		return fmt.Errorf("invalid render timeout format: %w", err)
	}

	if config.Report.Expiry != "" {
		if _, err := time.ParseDuration(config.Report.Expiry); err != nil {
			return fmt.Errorf("invalid report expiry format: %w", err)
		}
	}

	if config.Report.BatchLimit <= 0 {
		return fmt.Errorf("report batch limit must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// RenderTimeout returns the parsed renderer timeout.
func (c *Config) RenderTimeout() time.Duration {
	d, err := time.ParseDuration(c.Renderer.RenderTimeout)
	if err != nil {
		return 45 * time.Second
	}
	return d
}

// BatchItemDelay returns the parsed pause between batch items.
func (c *Config) BatchItemDelay() time.Duration {
	d, err := time.ParseDuration(c.Report.BatchItemDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// ReportExpiry returns the artifact expiry window, or zero when disabled.
func (c *Config) ReportExpiry() time.Duration {
	if c.Report.Expiry == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Report.Expiry)
	if err != nil {
		return 0
	}
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(GetEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}

	if valueStr == "true" || valueStr == "1" || valueStr == "yes" {
		return true
	}
	if valueStr == "false" || valueStr == "0" || valueStr == "no" {
		return false
	}

	return defaultValue
}

// GetEnvAsDuration gets an environment variable as a duration or returns a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
