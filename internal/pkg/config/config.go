package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Email  EmailConfig
	Jobs   JobsConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port      int    `envconfig:"PORT" default:"8080"`
	Env       string `envconfig:"ENV" default:"development"` // development|staging|production
	WorkerKey string `envconfig:"WORKER_KEY"`
}

type DBConfig struct {
	URL string `envconfig:"DB_URL" default:"farmatime.db"`
}

type EmailConfig struct {
	APIKey      string `envconfig:"BREVO_API_KEY"`
	From        string `envconfig:"EMAIL_FROM" default:"noreply@farmatime.app"`
	FromName    string `envconfig:"EMAIL_FROM_NAME" default:"FarmaTime"`
	SupportTo   string `envconfig:"SUPPORT_EMAIL"`
	SupportName string `envconfig:"SUPPORT_EMAIL_NAME" default:"FarmaTime Support"`
	TrackTag    string `envconfig:"EMAIL_TRACK_TAG" default:"medicine-request"`
}

type JobsConfig struct {
	EncryptionKeySecret string `envconfig:"ENCRYPTION_KEY_SECRET" required:"true"`
	UnifyRequests       bool   `envconfig:"UNIFY_REQUESTS" default:"true"`
	MaxRequestsPerUser  int    `envconfig:"MAX_REQUESTS_PER_USER" default:"100"`
	Timezone            string `envconfig:"TIMEZONE" default:"UTC"`
	RunJobsCron         string `envconfig:"RUN_JOBS_CRON"` // optional in-process trigger, cron spec with seconds
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// WorkerKeyEnforced reports whether internal routes must check the worker key.
// Only production and staging enforce it, matching the deployment setup where
// development runs without an external cron worker.
func (c *ServerConfig) WorkerKeyEnforced() bool {
	return c.Env == "production" || c.Env == "staging"
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}
