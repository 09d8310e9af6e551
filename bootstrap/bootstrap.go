// Package bootstrap wires configuration, persistence, collaborators and the
// HTTP router into a runnable application. Both binaries share it.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-contacts/accounts"
	"github.com/goliatone/go-contacts/auth"
	"github.com/goliatone/go-contacts/config"
	"github.com/goliatone/go-contacts/migrations"
	"github.com/goliatone/go-contacts/notify"
	"github.com/goliatone/go-contacts/photo"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/records"
	"github.com/goliatone/go-contacts/service"
	"github.com/goliatone/go-contacts/transport/httpapi"
	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// App holds the wired application.
type App struct {
	Config  *config.BaseConfig
	Logger  types.Logger
	DB      *bun.DB
	Service *service.Service
	Router  *gin.Engine

	sqlDB *sql.DB
}

// New opens the database, runs migrations and wires the service and router.
func New(ctx context.Context, cfg *config.BaseConfig, base *glog.BaseLogger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("bootstrap: config required")
	}
	if base == nil {
		base = NewBaseLogger("contacts")
	}
	logger := ServiceLogger(base, cfg.Logging, "contacts")

	sqlDB, db, err := openPersistence(ctx, cfg, base)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, DB: db, sqlDB: sqlDB}

	if err := app.wire(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) wire(ctx context.Context) error {
	cfg := a.Config

	accountRepo, err := accounts.NewRepository(accounts.RepositoryConfig{DB: a.DB})
	if err != nil {
		return err
	}
	contactRepo, err := records.NewRepository(records.RepositoryConfig{DB: a.DB})
	if err != nil {
		return err
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		SigningKey: cfg.Auth.SigningKey,
		Issuer:     cfg.Auth.Issuer,
		TTL:        cfg.Auth.TokenTTL,
	})
	if err != nil {
		return err
	}
	notifier, err := NewNotifier(cfg.Notifications, a.Logger)
	if err != nil {
		return err
	}
	photos, err := NewPhotoStore(ctx, cfg.Photos)
	if err != nil {
		return err
	}

	a.Service = service.New(service.Config{
		ContactRepository: contactRepo,
		AccountRepository: accountRepo,
		PasswordHasher:    hasher,
		TokenIssuer:       tokens,
		FeatureGate:       cfg.FeatureGate(),
		Notifier:          notifier,
		PhotoStore:        photos,
		Logger:            a.Logger,
		Pinger:            a.DB,
	})

	if err := SeedAdmin(ctx, accountRepo, hasher, cfg.Auth, a.Logger); err != nil {
		return err
	}

	authenticator, err := auth.NewAuthenticator(auth.AuthenticatorConfig{
		Accounts: accountRepo,
		Hasher:   hasher,
		Tokens:   tokens,
		Logger:   a.Logger,
	})
	if err != nil {
		return err
	}
	maxUpload := int64(cfg.Photos.MaxBytes)
	if maxUpload <= 0 {
		maxUpload = photo.DefaultMaxBytes
	}
	a.Router, err = httpapi.NewRouter(httpapi.Config{
		Service:        a.Service,
		Authenticator:  authenticator,
		Logger:         a.Logger,
		AllowOrigins:   cfg.Server.CORSOrigins,
		MaxUploadBytes: maxUpload,
		Mode:           cfg.Server.Mode,
	})
	return err
}

// Close releases the database handle.
func (a *App) Close() error {
	if a == nil || a.sqlDB == nil {
		return nil
	}
	return a.sqlDB.Close()
}

func openPersistence(ctx context.Context, cfg *config.BaseConfig, base *glog.BaseLogger) (*sql.DB, *bun.DB, error) {
	pcfg := cfg.Persistence

	var (
		driverName string
		dialect    schema.Dialect
	)
	switch pcfg.Driver {
	case config.DriverPostgres:
		driverName, dialect = "pgx", pgdialect.New()
	default:
		driverName, dialect = "sqlite3", sqlitedialect.New()
	}

	sqlDB, err := sql.Open(driverName, pcfg.GetServer())
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: open %s: %w", pcfg.Driver, err)
	}
	if pcfg.Driver != config.DriverPostgres {
		sqlDB.SetMaxOpenConns(1)
	}

	persistence.RegisterModel((*accounts.Record)(nil))
	persistence.RegisterModel((*records.Record)(nil))

	client, err := persistence.New(pcfg, sqlDB, dialect)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	client.SetLogger(base.GetLogger("persistence"))

	for _, fsys := range migrations.Filesystems() {
		client.RegisterDialectMigrations(
			fsys,
			persistence.WithDialectSourceLabel("."),
			persistence.WithValidationTargets("postgres", "sqlite"),
		)
	}
	if err := client.ValidateDialects(ctx); err != nil {
		base.GetLogger("persistence").Warn("dialect validation failed", "error", err)
	}
	if err := client.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("bootstrap: migrate: %w", err)
	}
	if report := client.Report(); report != nil && !report.IsZero() {
		base.GetLogger("persistence").Info("migrations applied", "report", report.String())
	}
	if err := migrations.ValidateSchema(ctx, sqlDB, pcfg.Driver); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return sqlDB, client.DB(), nil
}

// NewNotifier selects the notification sink configured for the process.
func NewNotifier(cfg config.NotificationsConfig, logger types.Logger) (types.Notifier, error) {
	switch cfg.Driver {
	case config.NotifySendGrid:
		return notify.NewSendGridNotifier(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		})
	default:
		return notify.NewLogNotifier(logger, nil), nil
	}
}

// NewPhotoStore selects the photo backend configured for the process.
func NewPhotoStore(ctx context.Context, cfg config.PhotosConfig) (types.PhotoStore, error) {
	switch cfg.Driver {
	case config.PhotoS3:
		return photo.NewS3Store(ctx, photo.S3Config{
			Bucket:        cfg.Bucket,
			Region:        cfg.Region,
			Endpoint:      cfg.Endpoint,
			PublicBaseURL: cfg.PublicBaseURL,
			MaxBytes:      cfg.MaxBytes,
		})
	default:
		return photo.NewInlineStore(cfg.MaxBytes), nil
	}
}
