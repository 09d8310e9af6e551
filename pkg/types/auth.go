package types

import (
	"context"
	"time"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// AccessToken is a signed bearer token issued after register/login.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer signs access tokens for an account.
type TokenIssuer interface {
	Issue(ctx context.Context, account Account) (AccessToken, error)
}

// Session is returned by register and login flows.
type Session struct {
	Account     Account
	AccessToken AccessToken
}
