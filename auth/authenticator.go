package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-contacts/pkg/authctx"
	"github.com/goliatone/go-contacts/pkg/types"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgAccountInactive    = "Account is deactivated"
)

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthenticatorConfig wires the authenticator.
type AuthenticatorConfig struct {
	Accounts types.AccountRepository
	Hasher   types.PasswordHasher
	Tokens   *TokenManager
	Logger   types.Logger
}

// Authenticator handles logins and resolves bearer tokens into actors.
type Authenticator struct {
	accounts types.AccountRepository
	hasher   types.PasswordHasher
	tokens   *TokenManager
	logger   types.Logger
}

// NewAuthenticator validates cfg and returns an authenticator.
func NewAuthenticator(cfg AuthenticatorConfig) (*Authenticator, error) {
	switch {
	case cfg.Accounts == nil:
		return nil, types.ErrMissingAccountRepository
	case cfg.Hasher == nil:
		return nil, types.ErrMissingPasswordHasher
	case cfg.Tokens == nil:
		return nil, ErrSigningKeyRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &Authenticator{
		accounts: cfg.Accounts,
		hasher:   cfg.Hasher,
		tokens:   cfg.Tokens,
		logger:   logger,
	}, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords yield the same error.
func (a *Authenticator) Login(ctx context.Context, input LoginInput) (types.Session, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return types.Session{}, types.Unauthorized(msgInvalidCredentials)
	}
	account, err := a.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if types.HasTextCode(err, types.TextCodeNotFound) {
			return types.Session{}, types.Unauthorized(msgInvalidCredentials)
		}
		return types.Session{}, a.unexpected("login lookup", err)
	}
	if err := a.hasher.Compare(account.PasswordHash, input.Password); err != nil {
		return types.Session{}, types.Unauthorized(msgInvalidCredentials)
	}
	if !account.IsActive {
		return types.Session{}, types.Unauthorized(msgAccountInactive)
	}
	token, err := a.tokens.Issue(ctx, *account)
	if err != nil {
		return types.Session{}, a.unexpected("token issue", err)
	}
	a.logger.Info("go-contacts: login succeeded", "account_id", account.ID)
	return types.Session{Account: *account, AccessToken: token}, nil
}

// Authenticate verifies the bearer token and reloads the account so role
// changes and deactivation apply immediately.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (types.ActorRef, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return types.ActorRef{}, err
	}
	ref, err := authctx.ActorRefFromSubject(claims.Subject, claims.Role)
	if err != nil {
		return types.ActorRef{}, err
	}
	account, err := a.accounts.GetAccount(ctx, ref.ID)
	if err != nil {
		if types.HasTextCode(err, types.TextCodeNotFound) {
			return types.ActorRef{}, types.Unauthorized(msgInvalidToken)
		}
		return types.ActorRef{}, a.unexpected("token account lookup", err)
	}
	if !account.IsActive {
		return types.ActorRef{}, types.Unauthorized(msgAccountInactive)
	}
	return types.ActorRef{ID: account.ID, Role: types.NormalizeRole(account.Role)}, nil
}

func (a *Authenticator) unexpected(op string, err error) error {
	if types.IsCategorized(err) {
		return err
	}
	a.logger.Error("go-contacts: "+op+" failed", err)
	return types.Unexpected(err)
}
