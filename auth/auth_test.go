package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)
	require.NoError(t, hasher.Compare(hash, "password123"))
	require.Error(t, hasher.Compare(hash, "password124"))
}

func TestNewBcryptHasher_FallsBackToDefaultCost(t *testing.T) {
	require.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
	require.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	clock := &movableClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	manager, err := NewTokenManager(TokenConfig{SigningKey: "secret", Clock: clock})
	require.NoError(t, err)

	account := types.Account{ID: uuid.New(), Email: "jane@example.com", Role: "Admin"}
	token, err := manager.Issue(context.Background(), account)
	require.NoError(t, err)
	require.Equal(t, clock.now.Add(DefaultTokenTTL), token.ExpiresAt)

	claims, err := manager.Verify(token.Token)
	require.NoError(t, err)
	require.Equal(t, account.ID.String(), claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, DefaultIssuer, claims.Issuer)

	clock.now = clock.now.Add(25 * time.Hour)
	_, err = manager.Verify(token.Token)
	require.True(t, types.HasTextCode(err, types.TextCodeUnauthorized))
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	manager, err := NewTokenManager(TokenConfig{SigningKey: "secret"})
	require.NoError(t, err)
	other, err := NewTokenManager(TokenConfig{SigningKey: "other"})
	require.NoError(t, err)

	token, err := other.Issue(context.Background(), types.Account{ID: uuid.New()})
	require.NoError(t, err)
	_, err = manager.Verify(token.Token)
	require.True(t, types.HasTextCode(err, types.TextCodeUnauthorized))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    DefaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = manager.Verify(unsigned)
	require.True(t, types.HasTextCode(err, types.TextCodeUnauthorized))
}

func TestNewTokenManager_RequiresKey(t *testing.T) {
	_, err := NewTokenManager(TokenConfig{SigningKey: "  "})
	require.ErrorIs(t, err, ErrSigningKeyRequired)
}

func TestAuthenticator_Login(t *testing.T) {
	auth, repo := newTestAuthenticator(t)
	hash, err := NewBcryptHasher(4).Hash("password123")
	require.NoError(t, err)
	active := repo.add(types.Account{Email: "jane@example.com", PasswordHash: hash, Role: types.RoleUser, IsActive: true})
	repo.add(types.Account{Email: "off@example.com", PasswordHash: hash, IsActive: false})

	session, err := auth.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, active.ID, session.Account.ID)
	require.NotEmpty(t, session.AccessToken.Token)

	_, err = auth.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrong-pass"})
	requireMessage(t, err, msgInvalidCredentials)

	_, err = auth.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "password123"})
	requireMessage(t, err, msgInvalidCredentials)

	_, err = auth.Login(context.Background(), LoginInput{Email: "off@example.com", Password: "password123"})
	requireMessage(t, err, msgAccountInactive)
}

func TestAuthenticator_Authenticate(t *testing.T) {
	auth, repo := newTestAuthenticator(t)
	account := repo.add(types.Account{Email: "jane@example.com", Role: types.RoleAdmin, IsActive: true})

	token, err := auth.tokens.Issue(context.Background(), *account)
	require.NoError(t, err)

	actor, err := auth.Authenticate(context.Background(), token.Token)
	require.NoError(t, err)
	require.Equal(t, account.ID, actor.ID)
	require.True(t, actor.IsAdmin())

	repo.accounts[account.ID].IsActive = false
	_, err = auth.Authenticate(context.Background(), token.Token)
	requireMessage(t, err, msgAccountInactive)

	delete(repo.accounts, account.ID)
	_, err = auth.Authenticate(context.Background(), token.Token)
	require.True(t, types.HasTextCode(err, types.TextCodeUnauthorized))
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *memoryAccounts) {
	t.Helper()
	tokens, err := NewTokenManager(TokenConfig{SigningKey: "test-secret"})
	require.NoError(t, err)
	repo := &memoryAccounts{accounts: map[uuid.UUID]*types.Account{}}
	auth, err := NewAuthenticator(AuthenticatorConfig{
		Accounts: repo,
		Hasher:   NewBcryptHasher(4),
		Tokens:   tokens,
	})
	require.NoError(t, err)
	return auth, repo
}

func requireMessage(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, types.HasTextCode(err, types.TextCodeUnauthorized))
	require.True(t, strings.Contains(err.Error(), message), err.Error())
}

type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

type memoryAccounts struct {
	accounts map[uuid.UUID]*types.Account
}

func (m *memoryAccounts) add(account types.Account) *types.Account {
	account.ID = uuid.New()
	m.accounts[account.ID] = &account
	return &account
}

func (m *memoryAccounts) CreateAccount(_ context.Context, account types.Account) (*types.Account, error) {
	return m.add(account), nil
}

func (m *memoryAccounts) GetAccount(_ context.Context, id uuid.UUID) (*types.Account, error) {
	account, ok := m.accounts[id]
	if !ok {
		return nil, types.NotFound("user not found")
	}
	clone := *account
	return &clone, nil
}

func (m *memoryAccounts) GetAccountByEmail(_ context.Context, email string) (*types.Account, error) {
	for _, account := range m.accounts {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, types.NotFound("user not found")
}

func (m *memoryAccounts) FindAccountPage(context.Context, types.AccountQuery) ([]types.Account, int, error) {
	return nil, 0, nil
}

func (m *memoryAccounts) DeleteAccount(_ context.Context, id uuid.UUID) error {
	delete(m.accounts, id)
	return nil
}
