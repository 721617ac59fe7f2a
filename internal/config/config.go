package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig          `mapstructure:"deployment" validate:"required"`
	Server     ServerConfig              `mapstructure:"server" validate:"required"`
	Logging    LoggingConfig             `mapstructure:"logging" validate:"required"`
	Postgres   PostgresConfig            `mapstructure:"postgres" validate:"required"`
	Sentry     SentryConfig              `mapstructure:"sentry"`
	Cache      CacheConfig               `mapstructure:"cache"`
	Stream     StreamConfig              `mapstructure:"stream" validate:"required"`
	Reports    ReportsConfig             `mapstructure:"reports" validate:"required"`
	Store      StoreConfig               `mapstructure:"store" validate:"required"`
	Sequences  map[string]SequenceConfig `mapstructure:"sequences" validate:"dive"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required,oneof=local api"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"min=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"min=0,max=1"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StreamConfig tunes the change notification bus
type StreamConfig struct {
	KeepAliveInterval time.Duration `mapstructure:"keep_alive_interval" validate:"required"`
	BufferSize        int           `mapstructure:"buffer_size" validate:"min=1"`
}

type ReportsConfig struct {
	DefaultMonths    int           `mapstructure:"default_months" validate:"min=1,max=120"`
	LowMovementLimit int           `mapstructure:"low_movement_limit" validate:"min=1"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
}

// StoreConfig bounds the retries read paths make on connectivity errors.
// Allocation and stock adjustment never retry.
type StoreConfig struct {
	MaxRetries      uint64        `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

// SequenceConfig overrides the code template of a named counter
type SequenceConfig struct {
	Prefix     string `mapstructure:"prefix" validate:"required"`
	Width      int    `mapstructure:"width" validate:"min=1,max=18"`
	DateLayout string `mapstructure:"date_layout"`
}

func NewConfig() (*Configuration, error) {
	// A local .env only fills variables the environment does not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Modify config paths to ensure config.yaml is found
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/amirtraders")

	// Set up environment variables support
	v.SetEnvPrefix("AMIRTRADERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()
	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("postgres.host", d.Postgres.Host)
	v.SetDefault("postgres.port", d.Postgres.Port)
	v.SetDefault("postgres.user", d.Postgres.User)
	v.SetDefault("postgres.password", d.Postgres.Password)
	v.SetDefault("postgres.dbname", d.Postgres.DBName)
	v.SetDefault("postgres.sslmode", d.Postgres.SSLMode)
	v.SetDefault("postgres.max_open_conns", d.Postgres.MaxOpenConns)
	v.SetDefault("postgres.max_idle_conns", d.Postgres.MaxIdleConns)
	v.SetDefault("postgres.conn_max_lifetime_minutes", d.Postgres.ConnMaxLifetimeMinutes)
	v.SetDefault("stream.keep_alive_interval", d.Stream.KeepAliveInterval)
	v.SetDefault("stream.buffer_size", d.Stream.BufferSize)
	v.SetDefault("reports.default_months", d.Reports.DefaultMonths)
	v.SetDefault("reports.low_movement_limit", d.Reports.LowMovementLimit)
	v.SetDefault("reports.cache_ttl", d.Reports.CacheTTL)
	v.SetDefault("store.max_retries", d.Store.MaxRetries)
	v.SetDefault("store.initial_interval", d.Store.InitialInterval)
	v.SetDefault("store.max_interval", d.Store.MaxInterval)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Postgres: PostgresConfig{
			Host:                   "localhost",
			Port:                   5432,
			User:                   "amirtraders",
			Password:               "amirtraders",
			DBName:                 "amirtraders",
			SSLMode:                "disable",
			MaxOpenConns:           20,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
		},
		Stream: StreamConfig{
			KeepAliveInterval: 25 * time.Second,
			BufferSize:        16,
		},
		Reports: ReportsConfig{
			DefaultMonths:    12,
			LowMovementLimit: 50,
			CacheTTL:         30 * time.Second,
		},
		Store: StoreConfig{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     time.Second,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
