package types

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Contact is the storage-agnostic representation of a contact record.
type Contact struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Email      string
	Phone      string
	Company    string
	Position   string
	Address    string
	Notes      string
	Photo      string
	OwnerName  string
	OwnerEmail string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ContactFields carries the user supplied values for a new contact.
type ContactFields struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Position string
	Address  string
	Notes    string
	Photo    string
}

// ContactPatch represents partial updates applied to a contact. Nil fields
// are left untouched.
type ContactPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Company  *string
	Position *string
	Address  *string
	Notes    *string
	Photo    *string
}

// IsEmpty reports whether the patch carries no changes.
func (p ContactPatch) IsEmpty() bool {
	return p.Name == nil &&
		p.Email == nil &&
		p.Phone == nil &&
		p.Company == nil &&
		p.Position == nil &&
		p.Address == nil &&
		p.Notes == nil &&
		p.Photo == nil
}

// ContactPage is the page envelope returned by contact listings.
type ContactPage struct {
	Items []Contact
	PageInfo
}

// ContactRepository persists contacts. Every lookup is constrained by the
// supplied owner scope and records outside of it are reported as not found.
type ContactRepository interface {
	CreateContact(ctx context.Context, ownerID uuid.UUID, fields ContactFields) (*Contact, error)
	FindContact(ctx context.Context, id uuid.UUID, scope OwnerScope) (*Contact, error)
	FindContactPage(ctx context.Context, query ContactQuery) ([]Contact, int, error)
	UpdateContact(ctx context.Context, id uuid.UUID, scope OwnerScope, patch ContactPatch) (*Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID, scope OwnerScope) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

// Account is the storage-agnostic representation of a user account.
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	Photo        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountPage is the page envelope returned by account listings.
type AccountPage struct {
	Items []Account
	PageInfo
}

// AccountRepository persists accounts.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account Account) (*Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	FindAccountPage(ctx context.Context, query AccountQuery) ([]Account, int, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// ContactCreatedEvent is delivered to the notifier after a contact is stored.
type ContactCreatedEvent struct {
	Contact    Contact
	OwnerName  string
	OwnerEmail string
	ActorID    uuid.UUID
	OccurredAt time.Time
}

// Notifier delivers best-effort notifications.
type Notifier interface {
	ContactCreated(ctx context.Context, event ContactCreatedEvent) error
}

// NotifierFunc adapts bare functions to Notifier.
type NotifierFunc func(ctx context.Context, event ContactCreatedEvent) error

// ContactCreated implements Notifier.
func (f NotifierFunc) ContactCreated(ctx context.Context, event ContactCreatedEvent) error {
	return f(ctx, event)
}

// PhotoUpload carries the raw bytes of an uploaded contact photo.
type PhotoUpload struct {
	OwnerID  uuid.UUID
	Filename string
	Data     []byte
}

// PhotoStore persists photo bytes and returns the opaque reference stored on
// the contact (inline data URL or external URL).
type PhotoStore interface {
	Store(ctx context.Context, upload PhotoUpload) (string, error)
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = errors.New("go-contacts: actor reference required")
	// ErrContactIDRequired indicates a contact identifier was omitted.
	ErrContactIDRequired = errors.New("go-contacts: contact id required")
	// ErrAccountIDRequired indicates an account identifier was omitted.
	ErrAccountIDRequired = errors.New("go-contacts: account id required")
	// ErrMissingContactRepository indicates the contact repository dependency is nil.
	ErrMissingContactRepository = errors.New("go-contacts: missing contact repository")
	// ErrMissingAccountRepository indicates the account repository dependency is nil.
	ErrMissingAccountRepository = errors.New("go-contacts: missing account repository")
	// ErrMissingPhotoStore indicates a photo upload arrived without a configured store.
	ErrMissingPhotoStore = errors.New("go-contacts: missing photo store")
	// ErrMissingPasswordHasher indicates the account commands lack a hasher.
	ErrMissingPasswordHasher = errors.New("go-contacts: missing password hasher")
	// ErrServiceNotReady indicates the service was not constructed.
	ErrServiceNotReady = errors.New("go-contacts: service not ready")
)
