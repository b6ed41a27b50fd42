package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env  string `env:"BLOG_ENV" envDefault:"development"`
	Host string `env:"BLOG_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"BLOG_PORT" envDefault:"8080"`

	// Database configuration. Driver is "sqlite" or "postgres".
	DBDriver   string `env:"BLOG_DB_DRIVER" envDefault:"sqlite"`
	DBPath     string `env:"BLOG_DB_PATH" envDefault:"./data/blog.db"`
	DBHost     string `env:"BLOG_DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"BLOG_DB_PORT" envDefault:"5432"`
	DBUser     string `env:"BLOG_DB_USER"`
	DBPassword string `env:"BLOG_DB_PASSWORD"`
	DBName     string `env:"BLOG_DB_NAME" envDefault:"blog"`
	DBSSLMode  string `env:"BLOG_DB_SSLMODE" envDefault:"disable"`

	ReadTimeoutSeconds  int `env:"BLOG_READ_TIMEOUT_SECONDS" envDefault:"180"`
	WriteTimeoutSeconds int `env:"BLOG_WRITE_TIMEOUT_SECONDS" envDefault:"180"`
	IdleTimeoutSeconds  int `env:"BLOG_IDLE_TIMEOUT_SECONDS" envDefault:"180"`

	AllowedOrigins []string `env:"BLOG_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// ContactEmail receives the new-comment notifications.
	ContactEmail string `env:"BLOG_EMAIL"`

	// BaseURL is used to build post links embedded in notification mail.
	BaseURL string `env:"BLOG_BASE_URL" envDefault:"http://localhost:8080"`

	PostsPerPage       int `env:"BLOG_POST_PER_PAGE" envDefault:"10"`
	ManagePostsPerPage int `env:"BLOG_MANAGE_POST_PER_PAGE" envDefault:"15"`
	CommentsPerPage    int `env:"BLOG_COMMENT_PER_PAGE" envDefault:"15"`

	ResendAPIKey    string `env:"RESEND_API_KEY"`
	ResendFromEmail string `env:"RESEND_FROM_EMAIL"`

	MailQueueSize int `env:"BLOG_MAIL_QUEUE_SIZE" envDefault:"64"`
	MailWorkers   int `env:"BLOG_MAIL_WORKERS" envDefault:"2"`

	LogLevel string `env:"BLOG_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (when present) and parses the environment into a Config.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if the application runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the listen address in host:port format.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PostgresDSN assembles the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
