package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
	Quiz     QuizConfig     `mapstructure:"quiz" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string `mapstructure:"url" validate:"required"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"min=1,max=1000"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"min=0,max=100"`
	ConnMaxLifeMin  int    `mapstructure:"conn_max_life_minutes" validate:"gte=0"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	MigrationsTable string `mapstructure:"migrations_table"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// CacheConfig tunes the in-memory quiz session cache.
type CacheConfig struct {
	TTLMinutes           int `mapstructure:"ttl_minutes" validate:"required,gt=0"`
	MaxEntries           int `mapstructure:"max_entries" validate:"required,gt=0"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes" validate:"gte=0"`
}

// QuizConfig tunes quiz generation.
type QuizConfig struct {
	DefaultCount   int  `mapstructure:"default_count" validate:"required,gt=0"`
	DistractorPool int  `mapstructure:"distractor_pool" validate:"required,gte=3"`
	AuditEnabled   bool `mapstructure:"audit_enabled"`
}
