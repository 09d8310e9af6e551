package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	gconfig "github.com/goliatone/go-config/config"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/joho/godotenv"
)

// BaseConfig holds all service configuration.
type BaseConfig struct {
	Server        ServerConfig        `json:"server"`
	Persistence   PersistenceConfig   `json:"persistence"`
	Auth          AuthConfig          `json:"auth"`
	Features      FeaturesConfig      `json:"features"`
	Notifications NotificationsConfig `json:"notifications"`
	Photos        PhotosConfig        `json:"photos"`
	Logging       LoggingConfig       `json:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `json:"host" env:"SERVER_HOST" default:"0.0.0.0"`
	Port            string        `json:"port" env:"SERVER_PORT" default:"3001"`
	Mode            string        `json:"mode" env:"GIN_MODE" default:"release"`
	CORSOrigins     []string      `json:"cors_origins"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" default:"10s"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// PersistenceConfig implements persistence.Config.
type PersistenceConfig struct {
	Debug          bool          `json:"debug" env:"DB_DEBUG" default:"false"`
	Driver         string        `json:"driver" env:"DB_DRIVER" default:"sqlite"`
	Server         string        `json:"server" env:"DB_SERVER" default:"file:contacts.db?_journal_mode=WAL&cache=shared&_fk=1"`
	PingTimeout    time.Duration `json:"ping_timeout" default:"5s"`
	OtelIdentifier string        `json:"otel_identifier" default:"go-contacts"`
}

func (c PersistenceConfig) GetDebug() bool                { return c.Debug }
func (c PersistenceConfig) GetDriver() string             { return c.Driver }
func (c PersistenceConfig) GetServer() string             { return c.Server }
func (c PersistenceConfig) GetPingTimeout() time.Duration { return c.PingTimeout }
func (c PersistenceConfig) GetOtelIdentifier() string     { return c.OtelIdentifier }

// AuthConfig holds token and password settings. The signing key has no
// default and must come from the environment or a config file.
type AuthConfig struct {
	SigningKey string        `json:"signing_key" env:"AUTH_SIGNING_KEY"`
	Issuer     string        `json:"issuer" env:"AUTH_ISSUER" default:"go-contacts"`
	TokenTTL   time.Duration `json:"token_ttl" env:"AUTH_TOKEN_TTL" default:"24h"`
	BcryptCost int           `json:"bcrypt_cost" default:"12"`
	// Admin* seed an administrator on startup when the email is unused.
	AdminName     string `json:"admin_name" env:"ADMIN_NAME" default:"Administrator"`
	AdminEmail    string `json:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword string `json:"admin_password" env:"ADMIN_PASSWORD"`
}

// FeaturesConfig toggles optional flows.
type FeaturesConfig struct {
	Signup bool `json:"signup" env:"FEATURE_SIGNUP" default:"true"`
}

// NotificationsConfig selects the notification sink.
type NotificationsConfig struct {
	Driver         string `json:"driver" env:"NOTIFY_DRIVER" default:"log"`
	SendGridAPIKey string `json:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
	FromEmail      string `json:"from_email" env:"NOTIFY_FROM_EMAIL" default:"noreply@contacts.local"`
	FromName       string `json:"from_name" env:"NOTIFY_FROM_NAME" default:"Contact Management"`
}

// PhotosConfig selects where uploaded photos are stored.
type PhotosConfig struct {
	Driver        string `json:"driver" env:"PHOTO_DRIVER" default:"inline"`
	Bucket        string `json:"bucket" env:"PHOTO_BUCKET"`
	Region        string `json:"region" env:"AWS_REGION"`
	Endpoint      string `json:"endpoint" env:"PHOTO_S3_ENDPOINT"`
	PublicBaseURL string `json:"public_base_url" env:"PHOTO_PUBLIC_BASE_URL"`
	MaxBytes      int    `json:"max_bytes" default:"5242880"`
}

// LoggingConfig selects the log encoder.
type LoggingConfig struct {
	Format string `json:"format" env:"LOG_FORMAT" default:"pretty"`
	Level  string `json:"level" env:"LOG_LEVEL" default:"info"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	NotifyLog      = "log"
	NotifySendGrid = "sendgrid"

	PhotoInline = "inline"
	PhotoS3     = "s3"

	LogPretty = "pretty"
	LogJSON   = "json"
)

// Defaults returns the baseline configuration merged under file and
// environment values.
func Defaults() *BaseConfig {
	return &BaseConfig{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "3001",
			Mode:            "release",
			CORSOrigins:     []string{"http://localhost:3000"},
			ShutdownTimeout: 10 * time.Second,
		},
		Persistence: PersistenceConfig{
			Driver:         DriverSQLite,
			Server:         "file:contacts.db?_journal_mode=WAL&cache=shared&_fk=1",
			PingTimeout:    5 * time.Second,
			OtelIdentifier: "go-contacts",
		},
		Auth: AuthConfig{
			Issuer:     "go-contacts",
			TokenTTL:   24 * time.Hour,
			BcryptCost: 12,
			AdminName:  "Administrator",
		},
		Features: FeaturesConfig{Signup: true},
		Notifications: NotificationsConfig{
			Driver:    NotifyLog,
			FromEmail: "noreply@contacts.local",
			FromName:  "Contact Management",
		},
		Photos: PhotosConfig{
			Driver:   PhotoInline,
			MaxBytes: 5 << 20,
		},
		Logging: LoggingConfig{Format: LogPretty, Level: "info"},
	}
}

// Load reads an optional .env file into the environment and resolves the
// configuration through go-config.
func Load(ctx context.Context, logger glog.Logger) (*BaseConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	container := gconfig.New(Defaults())
	if logger != nil {
		container = container.WithLogger(logger)
	}
	if err := container.Load(ctx); err != nil {
		return nil, err
	}
	cfg := container.Raw()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetPersistence returns the persistence settings.
func (c *BaseConfig) GetPersistence() persistence.Config {
	return c.Persistence
}

// GetServer returns the server settings.
func (c *BaseConfig) GetServer() ServerConfig {
	return c.Server
}

// FeatureGate exposes the static feature toggles.
func (c *BaseConfig) FeatureGate() featuregate.FeatureGate {
	return StaticGate{features: c.Features}
}

// Validate implements config.Validable.
func (c *BaseConfig) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		problems = append(problems, "auth.signing_key is required")
	}
	switch c.Persistence.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		problems = append(problems, fmt.Sprintf("persistence.driver %q is not supported", c.Persistence.Driver))
	}
	switch c.Notifications.Driver {
	case NotifyLog:
	case NotifySendGrid:
		if strings.TrimSpace(c.Notifications.SendGridAPIKey) == "" {
			problems = append(problems, "notifications.sendgrid_api_key is required for the sendgrid driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("notifications.driver %q is not supported", c.Notifications.Driver))
	}
	switch c.Photos.Driver {
	case PhotoInline:
	case PhotoS3:
		if strings.TrimSpace(c.Photos.Bucket) == "" {
			problems = append(problems, "photos.bucket is required for the s3 driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("photos.driver %q is not supported", c.Photos.Driver))
	}
	switch c.Logging.Format {
	case LogPretty, LogJSON:
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported", c.Logging.Format))
	}
	if len(problems) > 0 {
		return errors.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}
