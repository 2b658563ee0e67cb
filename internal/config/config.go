package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Words   WordsConfig
	Oracle  OracleConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds session lifecycle configuration
type GameConfig struct {
	SessionCodeLength  int
	StartDelay         time.Duration // countdown animation window before round 1
	HostMigrationGrace time.Duration
	RemovalGrace       time.Duration // disconnected player removal
	DeletionGrace      time.Duration // empty-session deletion
	BotRetryLimit      int
	RateLimitRPS       int
	RateLimitBurst     int
}

// WordsConfig holds dictionary configuration
type WordsConfig struct {
	File string // empty means the embedded default list
}

// OracleConfig holds external oracle configuration. An empty APIKey
// disables bot proposals, fun facts, and illustrations.
type OracleConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	ImageModel string
	Timeout    time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			SessionCodeLength:  getEnvInt("SESSION_CODE_LENGTH", 4),
			StartDelay:         getEnvSeconds("START_DELAY_SECONDS", 3),
			HostMigrationGrace: getEnvSeconds("HOST_MIGRATION_GRACE_SECONDS", 30),
			RemovalGrace:       getEnvSeconds("REMOVAL_GRACE_SECONDS", 120),
			DeletionGrace:      getEnvSeconds("DELETION_GRACE_SECONDS", 300),
			BotRetryLimit:      getEnvInt("BOT_RETRY_LIMIT", 3),
			RateLimitRPS:       getEnvInt("RATE_LIMIT_RPS", 10),
			RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		},
		Words: WordsConfig{
			File: getEnv("WORDS_FILE", ""),
		},
		Oracle: OracleConfig{
			APIKey:     getEnv("ORACLE_API_KEY", ""),
			BaseURL:    getEnv("ORACLE_BASE_URL", ""),
			Model:      getEnv("ORACLE_MODEL", "gpt-4o-mini"),
			ImageModel: getEnv("ORACLE_IMAGE_MODEL", "dall-e-3"),
			Timeout:    getEnvSeconds("ORACLE_TIMEOUT_SECONDS", 20),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvSeconds returns an environment variable as a duration in seconds
func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}
