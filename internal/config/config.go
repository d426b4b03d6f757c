package config

import (
	"github.com/spf13/viper"
)

// The service runs with its settings provided as environment variables
// (pod env in EKS, .env-style exports locally). AWS config and the
// queue URL are handled the same way.

type Config struct {
	DBHost             string `mapstructure:"DB_HOST"`
	DBPort             string `mapstructure:"DB_PORT"`
	DBUser             string `mapstructure:"DB_USER"`
	DBPassword         string `mapstructure:"DB_PASSWORD"`
	DBName             string `mapstructure:"DB_NAME"`
	ServerPort         string `mapstructure:"SERVER_PORT"`
	AWSRegion          string `mapstructure:"AWS_REGION"`
	WelcomeSQSQueueURL string `mapstructure:"WELCOME_SQS_QUEUE_URL"`
	AWSEndpoint        string `mapstructure:"AWS_ENDPOINT"`
	EmailSender        string `mapstructure:"EMAIL_SENDER"`
	IsLocalDev         bool   `mapstructure:"IS_LOCAL_DEV"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("DB_HOST", "db")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "hrms_db")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("AWS_REGION", "us-east-1") // Default region for AWS services
	viper.SetDefault("WELCOME_SQS_QUEUE_URL", "http://localstack:4566/000000000000/welcome-queue")
	viper.SetDefault("AWS_ENDPOINT", "http://localstack:4566")
	viper.SetDefault("EMAIL_SENDER", "hr@hrms-service.com")
	viper.SetDefault("IS_LOCAL_DEV", false)

	// Read in environment variables that match the keys.
	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	return
}
