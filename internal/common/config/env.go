package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
// This struct contains all configuration parameters for the application
type Config struct {
	// AWS-specific configuration
	AWSRegion         string `mapstructure:"AWS_REGION"`
	DynamoDBTableName string `mapstructure:"DYNAMODB_TABLE_NAME"`
	DynamoDBEndpoint  string `mapstructure:"DYNAMODB_ENDPOINT"`
	UserPoolID        string `mapstructure:"USER_POOL_ID"`
	StudentGroupName  string `mapstructure:"STUDENT_GROUP_NAME"`
	IdentityProvider  string `mapstructure:"IDENTITY_PROVIDER"`

	Environment string `mapstructure:"ENVIRONMENT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// View invalidation broker. AMQPURLSecretID takes precedence over AMQPURL.
	AMQPURL              string `mapstructure:"AMQP_URL"`
	AMQPURLSecretID      string `mapstructure:"AMQP_URL_SECRET_ID"`
	InvalidationExchange string `mapstructure:"INVALIDATION_EXCHANGE"`

	// Lambda detection flag (cached)
	isLambda bool
}

var keys = []string{
	"AWS_REGION",
	"DYNAMODB_TABLE_NAME",
	"DYNAMODB_ENDPOINT",
	"USER_POOL_ID",
	"STUDENT_GROUP_NAME",
	"IDENTITY_PROVIDER",
	"ENVIRONMENT",
	"LOG_LEVEL",
	"AMQP_URL",
	"AMQP_URL_SECRET_ID",
	"INVALIDATION_EXCHANGE",
}

// LoadFromEnv loads the configuration from environment variables
func LoadFromEnv() (*Config, error) {
	v := viper.New()
	v.SetDefault("AWS_REGION", "sa-east-1")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STUDENT_GROUP_NAME", "students")
	v.SetDefault("IDENTITY_PROVIDER", "cognito")
	v.SetDefault("INVALIDATION_EXCHANGE", "lidere_views")
	v.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.DynamoDBTableName == "" {
		return nil, errors.New("DYNAMODB_TABLE_NAME environment variable is required")
	}
	if cfg.UserPoolID == "" {
		return nil, errors.New("USER_POOL_ID environment variable is required")
	}

	cfg.Environment = strings.ToLower(cfg.Environment)
	cfg.isLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// IsLambda returns true if the application is running in AWS Lambda
func (c *Config) IsLambda() bool {
	return c.isLambda
}

// HasBroker reports whether view invalidations should go to the message broker
func (c *Config) HasBroker() bool {
	return c.AMQPURL != "" || c.AMQPURLSecretID != ""
}
