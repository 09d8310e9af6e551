package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	msgAccountNotFound = "user not found"
	msgEmailTaken      = "User with this email already exists"
)

// RepositoryConfig wires the Bun-backed account repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

// Repository implements types.AccountRepository using Bun.
type Repository struct {
	store repository.Repository[*Record]
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default account repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("accounts: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	db := cfg.DB
	if db == nil {
		if withDB, ok := repo.(interface{ DB() *bun.DB }); ok {
			db = withDB.DB()
		}
	}
	return &Repository{store: repo, db: db, clock: clock, idGen: idGen}, nil
}

var _ types.AccountRepository = (*Repository)(nil)

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAccount persists a new account. Duplicate emails are reported as a
// conflict.
func (r *Repository) CreateAccount(ctx context.Context, account types.Account) (*types.Account, error) {
	rec := fromDomain(account)
	if rec.Email == "" {
		return nil, types.InvalidArgument("email is required")
	}
	if _, err := r.store.Get(ctx, selectEmail(rec.Email)); err == nil {
		return nil, types.Conflict(msgEmailTaken)
	} else if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	if rec.ID == uuid.Nil {
		rec.ID = r.idGen.UUID()
	}
	if rec.Role == "" {
		rec.Role = types.RoleUser
	}
	now := r.clock.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	created, err := r.store.Create(ctx, rec)
	if err != nil {
		if repository.IsDuplicatedKey(err) {
			return nil, types.Conflict(msgEmailTaken)
		}
		return nil, err
	}
	return toDomain(created), nil
}

// GetAccount returns the account by id.
func (r *Repository) GetAccount(ctx context.Context, id uuid.UUID) (*types.Account, error) {
	if id == uuid.Nil {
		return nil, types.ErrAccountIDRequired
	}
	rec, err := r.store.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.NotFound(msgAccountNotFound)
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// GetAccountByEmail returns the account registered under email.
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*types.Account, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, types.NotFound(msgAccountNotFound)
	}
	rec, err := r.store.Get(ctx, selectEmail(normalized))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.NotFound(msgAccountNotFound)
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// FindAccountPage lists accounts for admin panels.
func (r *Repository) FindAccountPage(ctx context.Context, query types.AccountQuery) ([]types.Account, int, error) {
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			if len(query.IDs) > 0 {
				ids := make([]string, 0, len(query.IDs))
				for _, id := range query.IDs {
					ids = append(ids, id.String())
				}
				q = q.Where("id IN (?)", bun.In(ids))
			}
			if term := strings.TrimSpace(query.Search); term != "" {
				pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
				q = q.WhereGroup(" AND ", func(g *bun.SelectQuery) *bun.SelectQuery {
					return g.Where("LOWER(name) LIKE ? ESCAPE '!'", pattern).
						WhereOr("LOWER(email) LIKE ? ESCAPE '!'", pattern).
						WhereOr("LOWER(phone) LIKE ? ESCAPE '!'", pattern)
				})
			}
			q = q.OrderExpr(orderExpr(query.Sort)).OrderExpr("id ASC")
			if query.Limit > 0 {
				q = q.Limit(query.Limit)
			}
			if query.Offset > 0 {
				q = q.Offset(query.Offset)
			}
			return q
		},
	}
	rows, total, err := r.store.List(ctx, criteria...)
	if err != nil {
		return nil, 0, err
	}
	items := make([]types.Account, 0, len(rows))
	for _, row := range rows {
		items = append(items, *toDomain(row))
	}
	return items, total, nil
}

// DeleteAccount hard deletes the account.
func (r *Repository) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return types.ErrAccountIDRequired
	}
	if r.db == nil {
		return errors.New("accounts: db required for deletes")
	}
	res, err := r.db.NewDelete().Model((*Record)(nil)).
		Where("id = ?", id.String()).
		Exec(ctx)
	if err != nil {
		return repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return types.NotFound(msgAccountNotFound)
	}
	return nil
}

var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"phone":     "phone",
	"role":      "role",
	"isActive":  "is_active",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func orderExpr(sort types.Sort) string {
	column, ok := sortColumns[sort.Field]
	if !ok {
		return "created_at DESC"
	}
	if sort.Order == types.SortAsc {
		return column + " ASC"
	}
	return column + " DESC"
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func selectEmail(email string) repository.SelectCriteria {
	return repository.SelectBy("email", "=", email)
}

func fromDomain(account types.Account) *Record {
	return &Record{
		ID:           account.ID,
		Name:         strings.TrimSpace(account.Name),
		Email:        NormalizeEmail(account.Email),
		Phone:        strings.TrimSpace(account.Phone),
		Photo:        account.Photo,
		PasswordHash: account.PasswordHash,
		Role:         types.NormalizeRole(account.Role),
		IsActive:     account.IsActive,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Account {
	if rec == nil {
		return nil
	}
	return &types.Account{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		Phone:        rec.Phone,
		Photo:        rec.Photo,
		PasswordHash: rec.PasswordHash,
		Role:         rec.Role,
		IsActive:     rec.IsActive,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}
