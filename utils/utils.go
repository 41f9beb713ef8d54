package utils

import (
	"encoding/json"
	"jmtec-reports/models"

	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load() (*models.Config, error) {
	v := viper.New()

	// Set configuration file details
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")

	// Set default values
	setDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found, continue with defaults and env vars
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	// Handle nested JSON structure from config.json
	if v.IsSet("app") {
		// Flatten nested structure for easier mapping
		flattenNestedConfig(v)
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Parse remote timeout if it's a string
	if v.IsSet("remote_api.timeout") {
		timeoutStr := v.GetString("remote_api.timeout")
		if timeoutStr != "" {
			if timeout, err := time.ParseDuration(timeoutStr); err != nil {
				return nil, fmt.Errorf("invalid remote_api timeout format: %w", err)
			} else {
				config.RemoteTimeout = timeout
			}
		}
	}

	// Parse selection TTL if it's a string
	if v.IsSet("redis.selection_ttl") {
		ttlStr := v.GetString("redis.selection_ttl")
		if ttlStr != "" {
			if ttl, err := time.ParseDuration(ttlStr); err != nil {
				return nil, fmt.Errorf("invalid redis selection_ttl format: %w", err)
			} else {
				config.SelectionTTL = ttl
			}
		}
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "JMTEC Reports")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8081")

	// Remote reports API defaults
	v.SetDefault("remote_base_url", "http://localhost:5000")
	v.SetDefault("remote_timeout", 10*time.Second)

	// AWS defaults
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "dev")

	// Redis defaults
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_enabled", false)
	v.SetDefault("selection_ttl", 10*time.Minute)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// CORS defaults
	v.SetDefault("cors_origins", []string{"*"})

	// Rate limiting defaults
	v.SetDefault("rate_limit_requests_per_minute", 100)

	// Base Path default
	v.SetDefault("basePath", "/api/v1")

	// setup tables to create
	v.SetDefault("tables", []string{"reports"})
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {

	if c.RemoteBaseURL == "" {
		return fmt.Errorf("remote_base_url must be set")
	}

	// In production, we should have AWS credentials set
	if c.AppEnv == "production" && c.AWSAccessKeyID == "" {
		fmt.Println("No AWS credentials provided, assuming IAM role is used")
	}

	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	// App section
	if v.IsSet("app.name") {
		v.Set("app_name", v.GetString("app.name"))
	}
	if v.IsSet("app.version") {
		v.Set("app_version", v.GetString("app.version"))
	}
	if v.IsSet("app.env") {
		v.Set("app_env", v.GetString("app.env"))
	}
	if v.IsSet("app.host") {
		v.Set("app_host", v.GetString("app.host"))
	}
	if v.IsSet("app.port") {
		v.Set("app_port", v.GetString("app.port"))
	}

	// Remote API section
	if v.IsSet("remote_api.base_url") {
		v.Set("remote_base_url", v.GetString("remote_api.base_url"))
	}

	// AWS section
	if v.IsSet("aws.region") {
		v.Set("aws_region", v.GetString("aws.region"))
	}
	if v.IsSet("aws.access_key_id") {
		v.Set("aws_access_key_id", v.GetString("aws.access_key_id"))
	}
	if v.IsSet("aws.secret_access_key") {
		v.Set("aws_secret_access_key", v.GetString("aws.secret_access_key"))
	}
	if v.IsSet("aws.dynamodb_endpoint") {
		v.Set("dynamodb_endpoint", v.GetString("aws.dynamodb_endpoint"))
	}
	if v.IsSet("aws.dynamodb_table_prefix") {
		v.Set("dynamodb_table_prefix", v.GetString("aws.dynamodb_table_prefix"))
	}

	// Redis section
	if v.IsSet("redis.addr") {
		v.Set("redis_addr", v.GetString("redis.addr"))
	}
	if v.IsSet("redis.password") {
		v.Set("redis_password", v.GetString("redis.password"))
	}
	if v.IsSet("redis.db") {
		v.Set("redis_db", v.GetInt("redis.db"))
	}
	if v.IsSet("redis.enabled") {
		v.Set("redis_enabled", v.GetBool("redis.enabled"))
	}

	// Logging section
	if v.IsSet("logging.level") {
		v.Set("log_level", v.GetString("logging.level"))
	}
	if v.IsSet("logging.format") {
		v.Set("log_format", v.GetString("logging.format"))
	}

	// CORS section
	if v.IsSet("cors.origins") {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}

	// Rate limit section
	if v.IsSet("rate_limit.requests_per_minute") {
		v.Set("rate_limit_requests_per_minute", v.GetInt("rate_limit.requests_per_minute"))
	}

	// Base Path
	if v.IsSet("basePath") {
		v.Set("basePath", v.GetString("basePath"))
	}
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ") // 4 spaces indent
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}
