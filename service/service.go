package service

import (
	"context"

	"github.com/goliatone/go-contacts/command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/query"
	"github.com/goliatone/go-contacts/scope"
	featuregate "github.com/goliatone/go-featuregate/gate"
)

// Service is the entry point for go-contacts. It wires repositories, the
// access policy and the command/query facades supplied by the host
// application.
type Service struct {
	cfg        Config
	commands   Commands
	queries    Queries
	scopeGuard scope.Guard
}

// Commands exposes the service command handlers.
type Commands struct {
	ContactCreate   *command.ContactCreateCommand
	ContactUpdate   *command.ContactUpdateCommand
	ContactDelete   *command.ContactDeleteCommand
	AccountRegister *command.AccountRegisterCommand
	AccountCreate   *command.AccountCreateCommand
	AccountDelete   *command.AccountDeleteCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	ContactList   *query.ContactListQuery
	ContactDetail *query.ContactDetailQuery
	ContactExport *query.ContactExportQuery
	AccountList   *query.AccountListQuery
	AccountDetail *query.AccountDetailQuery
	Profile       *query.ProfileQuery
}

// Pinger reports whether the backing store is reachable. *bun.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Config captures all dependencies so callers can provide their own
// instances (bun-backed repositories, fakes, alternative notifiers).
type Config struct {
	ContactRepository types.ContactRepository
	AccountRepository types.AccountRepository
	PasswordHasher    types.PasswordHasher
	TokenIssuer       types.TokenIssuer
	FeatureGate       featuregate.FeatureGate
	Notifier          types.Notifier
	PhotoStore        types.PhotoStore
	AccessPolicy      types.AccessPolicy
	Clock             types.Clock
	Logger            types.Logger
	Pinger            Pinger
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	s := &Service{
		cfg:        norm,
		scopeGuard: scope.Ensure(norm.AccessPolicy),
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.AccessPolicy == nil {
		cfg.AccessPolicy = scope.NewGuard()
	}
	return cfg
}

// Commands returns the command handlers.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query handlers.
func (s *Service) Queries() Queries {
	return s.queries
}

// Ready reports whether the required repositories are configured.
func (s *Service) Ready() bool {
	return s != nil &&
		s.cfg.ContactRepository != nil &&
		s.cfg.AccountRepository != nil &&
		s.cfg.PasswordHasher != nil &&
		s.cfg.TokenIssuer != nil
}

// HealthCheck validates the wiring and pings the store when a pinger is
// configured.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s == nil {
		return types.ErrServiceNotReady
	}
	switch {
	case s.cfg.ContactRepository == nil:
		return types.ErrMissingContactRepository
	case s.cfg.AccountRepository == nil:
		return types.ErrMissingAccountRepository
	case s.cfg.PasswordHasher == nil:
		return types.ErrMissingPasswordHasher
	case s.cfg.TokenIssuer == nil:
		return command.ErrMissingTokenIssuer
	}
	if s.cfg.Pinger != nil {
		return s.cfg.Pinger.PingContext(ctx)
	}
	return nil
}

// ScopeGuard exposes the access policy used by every command and query.
func (s *Service) ScopeGuard() scope.Guard {
	if s == nil {
		return nil
	}
	return s.scopeGuard
}

// Logger returns the configured logger.
func (s *Service) Logger() types.Logger {
	return s.cfg.Logger
}

func (s *Service) buildCommands() Commands {
	cfg := s.cfg
	return Commands{
		ContactCreate: command.NewContactCreateCommand(command.ContactCreateCommandConfig{
			Repository: cfg.ContactRepository,
			Accounts:   cfg.AccountRepository,
			Photos:     cfg.PhotoStore,
			Notifier:   cfg.Notifier,
			Clock:      cfg.Clock,
			Logger:     cfg.Logger,
			ScopeGuard: s.scopeGuard,
		}),
		ContactUpdate: command.NewContactUpdateCommand(command.ContactUpdateCommandConfig{
			Repository: cfg.ContactRepository,
			Photos:     cfg.PhotoStore,
			Logger:     cfg.Logger,
			ScopeGuard: s.scopeGuard,
		}),
		ContactDelete: command.NewContactDeleteCommand(command.ContactDeleteCommandConfig{
			Repository: cfg.ContactRepository,
			Logger:     cfg.Logger,
			ScopeGuard: s.scopeGuard,
		}),
		AccountRegister: command.NewAccountRegisterCommand(command.AccountRegisterCommandConfig{
			Repository:  cfg.AccountRepository,
			Hasher:      cfg.PasswordHasher,
			Tokens:      cfg.TokenIssuer,
			FeatureGate: cfg.FeatureGate,
			Logger:      cfg.Logger,
		}),
		AccountCreate: command.NewAccountCreateCommand(command.AccountCreateCommandConfig{
			Repository: cfg.AccountRepository,
			Hasher:     cfg.PasswordHasher,
			Logger:     cfg.Logger,
		}),
		AccountDelete: command.NewAccountDeleteCommand(command.AccountDeleteCommandConfig{
			Repository: cfg.AccountRepository,
			Contacts:   cfg.ContactRepository,
			Logger:     cfg.Logger,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	cfg := s.cfg
	return Queries{
		ContactList:   query.NewContactListQuery(cfg.ContactRepository, cfg.Logger, s.scopeGuard),
		ContactDetail: query.NewContactDetailQuery(cfg.ContactRepository, cfg.Logger, s.scopeGuard),
		ContactExport: query.NewContactExportQuery(cfg.ContactRepository, cfg.Logger, s.scopeGuard),
		AccountList:   query.NewAccountListQuery(cfg.AccountRepository, cfg.Logger),
		AccountDetail: query.NewAccountDetailQuery(cfg.AccountRepository, cfg.Logger),
		Profile:       query.NewProfileQuery(cfg.AccountRepository, cfg.Logger),
	}
}
