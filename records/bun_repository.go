package records

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const msgContactNotFound = "contact not found"

// RepositoryConfig wires the Bun-backed contact repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

// Repository implements types.ContactRepository using Bun.
type Repository struct {
	store repository.Repository[*Record]
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default contact repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("records: db or repository required")
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

var _ types.ContactRepository = (*Repository)(nil)

// CreateContact persists a new contact owned by ownerID.
func (r *Repository) CreateContact(ctx context.Context, ownerID uuid.UUID, fields types.ContactFields) (*types.Contact, error) {
	if ownerID == uuid.Nil {
		return nil, types.ErrAccountIDRequired
	}
	now := r.clock.Now()
	rec := fromFields(fields)
	rec.ID = r.idGen.UUID()
	rec.OwnerID = ownerID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	created, err := r.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// FindContact returns the contact when it is visible in scope.
func (r *Repository) FindContact(ctx context.Context, id uuid.UUID, scope types.OwnerScope) (*types.Contact, error) {
	if id == uuid.Nil {
		return nil, types.ErrContactIDRequired
	}
	rec, err := r.store.Get(ctx, selectID(id), ownerCriteria(scope))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.NotFound(msgContactNotFound)
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// FindContactPage executes the listing descriptor and returns the fetched
// page together with the total number of matches.
func (r *Repository) FindContactPage(ctx context.Context, query types.ContactQuery) ([]types.Contact, int, error) {
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			if query.Scope.All {
				q = q.ColumnExpr("contacts.*").
					ColumnExpr("owner.name AS owner_name").
					ColumnExpr("owner.email AS owner_email").
					Join("JOIN users AS owner ON owner.id = contacts.owner_id")
			}
			q = ownerCriteria(query.Scope)(q)
			q = applySearch(q, query.Search, query.Scope.All)
			q = q.OrderExpr(orderExpr(query.Sort)).
				OrderExpr("contacts.id ASC")
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
	items := make([]types.Contact, 0, len(rows))
	for _, row := range rows {
		items = append(items, *toDomain(row))
	}
	return items, total, nil
}

// UpdateContact applies the non-nil patch fields to the scoped contact. An
// empty patch leaves the row untouched.
func (r *Repository) UpdateContact(ctx context.Context, id uuid.UUID, scope types.OwnerScope, patch types.ContactPatch) (*types.Contact, error) {
	if id == uuid.Nil {
		return nil, types.ErrContactIDRequired
	}
	if patch.IsEmpty() {
		return r.FindContact(ctx, id, scope)
	}
	if r.db == nil {
		return nil, errors.New("records: db required for updates")
	}

	rec := &Record{UpdatedAt: r.clock.Now()}
	columns := append(applyPatch(rec, patch), "updated_at")

	q := r.db.NewUpdate().Model(rec).
		Column(columns...).
		Where("id = ?", id.String())
	if !scope.All {
		q = q.Where("owner_id = ?", scope.OwnerID.String())
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return nil, repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, types.NotFound(msgContactNotFound)
	}
	return r.FindContact(ctx, id, scope)
}

// DeleteContact hard deletes the scoped contact.
func (r *Repository) DeleteContact(ctx context.Context, id uuid.UUID, scope types.OwnerScope) error {
	if id == uuid.Nil {
		return types.ErrContactIDRequired
	}
	if r.db == nil {
		return errors.New("records: db required for deletes")
	}
	q := r.db.NewDelete().Model((*Record)(nil)).
		Where("id = ?", id.String())
	if !scope.All {
		q = q.Where("owner_id = ?", scope.OwnerID.String())
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return types.NotFound(msgContactNotFound)
	}
	return nil
}

// CountByOwner returns how many contacts the account owns.
func (r *Repository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	if ownerID == uuid.Nil {
		return 0, types.ErrAccountIDRequired
	}
	_, total, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return ownerCriteria(types.OwnerOnly(ownerID))(q).Limit(1)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

var sortColumns = map[string]string{
	"name":      "contacts.name",
	"email":     "contacts.email",
	"phone":     "contacts.phone",
	"createdAt": "contacts.created_at",
	"updatedAt": "contacts.updated_at",
}

func orderExpr(sort types.Sort) string {
	column, ok := sortColumns[sort.Field]
	if !ok {
		return "contacts.created_at DESC"
	}
	if sort.Order == types.SortAsc {
		return column + " ASC"
	}
	return column + " DESC"
}

func ownerCriteria(scope types.OwnerScope) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if scope.All {
			return q
		}
		return q.Where("contacts.owner_id = ?", scope.OwnerID.String())
	}
}

func selectID(id uuid.UUID) repository.SelectCriteria {
	return repository.SelectBy("id", "=", id.String())
}

func applySearch(q *bun.SelectQuery, term string, includeOwner bool) *bun.SelectQuery {
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	return q.WhereGroup(" AND ", func(g *bun.SelectQuery) *bun.SelectQuery {
		g = g.Where("LOWER(contacts.name) LIKE ? ESCAPE '!'", pattern).
			WhereOr("LOWER(contacts.email) LIKE ? ESCAPE '!'", pattern).
			WhereOr("LOWER(contacts.phone) LIKE ? ESCAPE '!'", pattern)
		if includeOwner {
			g = g.WhereOr("LOWER(owner.name) LIKE ? ESCAPE '!'", pattern).
				WhereOr("LOWER(owner.email) LIKE ? ESCAPE '!'", pattern)
		}
		return g
	})
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func applyPatch(rec *Record, patch types.ContactPatch) []string {
	columns := make([]string, 0, 8)
	set := func(column string, value *string, dst *string) {
		if value == nil {
			return
		}
		*dst = strings.TrimSpace(*value)
		columns = append(columns, column)
	}
	set("name", patch.Name, &rec.Name)
	set("email", patch.Email, &rec.Email)
	set("phone", patch.Phone, &rec.Phone)
	set("company", patch.Company, &rec.Company)
	set("position", patch.Position, &rec.Position)
	set("address", patch.Address, &rec.Address)
	set("notes", patch.Notes, &rec.Notes)
	set("photo", patch.Photo, &rec.Photo)
	return columns
}

func fromFields(fields types.ContactFields) *Record {
	return &Record{
		Name:     strings.TrimSpace(fields.Name),
		Email:    strings.TrimSpace(fields.Email),
		Phone:    strings.TrimSpace(fields.Phone),
		Company:  strings.TrimSpace(fields.Company),
		Position: strings.TrimSpace(fields.Position),
		Address:  strings.TrimSpace(fields.Address),
		Notes:    fields.Notes,
		Photo:    fields.Photo,
	}
}

func toDomain(rec *Record) *types.Contact {
	if rec == nil {
		return nil
	}
	return &types.Contact{
		ID:         rec.ID,
		OwnerID:    rec.OwnerID,
		Name:       rec.Name,
		Email:      rec.Email,
		Phone:      rec.Phone,
		Company:    rec.Company,
		Position:   rec.Position,
		Address:    rec.Address,
		Notes:      rec.Notes,
		Photo:      rec.Photo,
		OwnerName:  rec.OwnerName,
		OwnerEmail: rec.OwnerEmail,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
