package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/goliatone/go-contacts/config"
	"github.com/goliatone/go-contacts/notify"
	"github.com/goliatone/go-contacts/photo"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger_WritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, "debug", "contacts")

	logger.Info("contact created", "contact_id", "c-1")
	logger.Error("notify failed", errors.New("boom"), "owner_id", "o-1")
	logger.Debug("request", "status", 200)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)

	var first map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.Equal(t, "info", first["level"])
	require.Equal(t, "contact created", first["message"])
	require.Equal(t, "c-1", first["contact_id"])
	require.Equal(t, "contacts", first["logger"])

	var second map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &second))
	require.Equal(t, "error", second["level"])
	require.Equal(t, "boom", second["error"])
}

func TestZerologLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, "chatty", "")
	logger.Debug("hidden")
	require.Zero(t, buf.Len())
	logger.Info("shown")
	require.NotZero(t, buf.Len())
}

func TestNewNotifier(t *testing.T) {
	n, err := NewNotifier(config.NotificationsConfig{Driver: config.NotifyLog}, types.NopLogger{})
	require.NoError(t, err)
	require.IsType(t, &notify.LogNotifier{}, n)

	n, err = NewNotifier(config.NotificationsConfig{
		Driver:         config.NotifySendGrid,
		SendGridAPIKey: "SG.key",
		FromEmail:      "noreply@example.com",
	}, types.NopLogger{})
	require.NoError(t, err)
	require.IsType(t, &notify.SendGridNotifier{}, n)

	_, err = NewNotifier(config.NotificationsConfig{Driver: config.NotifySendGrid}, types.NopLogger{})
	require.ErrorIs(t, err, notify.ErrSendGridAPIKeyRequired)
}

func TestNewPhotoStore(t *testing.T) {
	store, err := NewPhotoStore(context.Background(), config.PhotosConfig{Driver: config.PhotoInline})
	require.NoError(t, err)
	require.IsType(t, &photo.InlineStore{}, store)

	_, err = NewPhotoStore(context.Background(), config.PhotosConfig{Driver: config.PhotoS3})
	require.ErrorIs(t, err, photo.ErrBucketRequired)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	repo := &memoryAccounts{byEmail: map[string]types.Account{}}
	hasher := prefixHasher{}

	require.NoError(t, SeedAdmin(ctx, repo, hasher, config.AuthConfig{}, types.NopLogger{}))
	require.Empty(t, repo.byEmail)

	cfg := config.AuthConfig{AdminEmail: "root@example.com", AdminPassword: "password123"}
	require.NoError(t, SeedAdmin(ctx, repo, hasher, cfg, types.NopLogger{}))
	require.Len(t, repo.byEmail, 1)
	seeded := repo.byEmail["root@example.com"]
	require.Equal(t, types.RoleAdmin, seeded.Role)
	require.Equal(t, "Administrator", seeded.Name)
	require.Equal(t, "hashed:password123", seeded.PasswordHash)

	require.NoError(t, SeedAdmin(ctx, repo, hasher, cfg, types.NopLogger{}))
	require.Len(t, repo.byEmail, 1)

	err := SeedAdmin(ctx, repo, hasher, config.AuthConfig{AdminEmail: "other@example.com", AdminPassword: "short"}, types.NopLogger{})
	require.True(t, types.HasTextCode(err, types.TextCodeInvalidArgument))
}

type prefixHasher struct{}

func (prefixHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (prefixHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

type memoryAccounts struct {
	byEmail map[string]types.Account
}

func (m *memoryAccounts) CreateAccount(_ context.Context, account types.Account) (*types.Account, error) {
	account.ID = uuid.New()
	m.byEmail[account.Email] = account
	return &account, nil
}

func (m *memoryAccounts) GetAccount(_ context.Context, id uuid.UUID) (*types.Account, error) {
	for _, acc := range m.byEmail {
		if acc.ID == id {
			return &acc, nil
		}
	}
	return nil, types.NotFound("user not found")
}

func (m *memoryAccounts) GetAccountByEmail(_ context.Context, email string) (*types.Account, error) {
	acc, ok := m.byEmail[email]
	if !ok {
		return nil, types.NotFound("user not found")
	}
	return &acc, nil
}

func (m *memoryAccounts) FindAccountPage(context.Context, types.AccountQuery) ([]types.Account, int, error) {
	return nil, 0, nil
}

func (m *memoryAccounts) DeleteAccount(context.Context, uuid.UUID) error {
	return nil
}
