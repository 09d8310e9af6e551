package auth

import (
	"github.com/goliatone/go-contacts/pkg/types"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when no explicit cost is configured.
const DefaultBcryptCost = 12

// BcryptHasher implements types.PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or DefaultBcryptCost when cost
// is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return BcryptHasher{cost: cost}
}

var _ types.PasswordHasher = BcryptHasher{}

// Hash implements types.PasswordHasher.
func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare implements types.PasswordHasher.
func (BcryptHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
