package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
// Tokens are minted and validated with the same shared secret, so any
// host holding the secret can call the API.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// TaskConfig contains the background task runner settings. WorkerCount
// defaults to 1 so collection verification passes run serialized.
// VerifyOnStartup controls whether a verification pass is queued when
// the server boots.
type TaskConfig struct {
	WorkerCount     int  `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize       int  `mapstructure:"queue_size" validate:"required,gt=0"`
	VerifyOnStartup bool `mapstructure:"verify_on_startup"`
}
