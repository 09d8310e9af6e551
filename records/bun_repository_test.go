package records

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	owner := seedAccount(t, db, "Owner One", "one@example.com")

	created, err := repo.CreateContact(ctx, owner, types.ContactFields{
		Name:  "Ann",
		Email: "ann@x.com",
		Phone: "+1000000000",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, owner, created.OwnerID)
	require.False(t, created.CreatedAt.After(created.UpdatedAt))

	items, total, err := repo.FindContactPage(ctx, types.ContactQuery{
		Scope: types.OwnerOnly(owner),
		Sort:  types.Sort{Field: "createdAt", Order: types.SortDesc},
		Page:  1,
		Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "Ann", items[0].Name)
	require.Equal(t, "ann@x.com", items[0].Email)
}

func TestRepository_SearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	owner := seedAccount(t, db, "Owner", "owner@example.com")

	_, err := repo.CreateContact(ctx, owner, types.ContactFields{Name: "Ann", Email: "ann@x.com", Phone: "+1000000000"})
	require.NoError(t, err)

	query := types.ContactQuery{Scope: types.OwnerOnly(owner), Limit: 10}

	query.Search = "ANN"
	items, total, err := repo.FindContactPage(ctx, query)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)

	query.Search = "1000"
	_, total, err = repo.FindContactPage(ctx, query)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	query.Search = "zzz"
	items, total, err = repo.FindContactPage(ctx, query)
	require.NoError(t, err)
	require.Equal(t, 0, total)
	require.Empty(t, items)
}

func TestRepository_SearchTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	owner := seedAccount(t, db, "Owner", "owner@example.com")

	_, err := repo.CreateContact(ctx, owner, types.ContactFields{Name: "Ann"})
	require.NoError(t, err)
	_, err = repo.CreateContact(ctx, owner, types.ContactFields{Name: "100% Ann"})
	require.NoError(t, err)

	items, total, err := repo.FindContactPage(ctx, types.ContactQuery{Scope: types.OwnerOnly(owner), Search: "%", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "100% Ann", items[0].Name)

	_, total, err = repo.FindContactPage(ctx, types.ContactQuery{Scope: types.OwnerOnly(owner), Search: "_", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 0, total)
}

func TestRepository_PaginationAndSort(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo, db := newTestRepositoryWithClock(t, clock)
	owner := seedAccount(t, db, "Owner", "owner@example.com")

	for _, name := range []string{"Carol", "alice", "Bob", "dave", "Eve"} {
		_, err := repo.CreateContact(ctx, owner, types.ContactFields{Name: name})
		require.NoError(t, err)
	}

	items, total, err := repo.FindContactPage(ctx, types.ContactQuery{
		Scope:  types.OwnerOnly(owner),
		Sort:   types.Sort{Field: "createdAt", Order: types.SortAsc},
		Limit:  2,
		Offset: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, items, 2)
	require.Equal(t, "Bob", items[0].Name)
	require.Equal(t, "dave", items[1].Name)

	items, _, err = repo.FindContactPage(ctx, types.ContactQuery{
		Scope: types.OwnerOnly(owner),
		Sort:  types.Sort{Field: "bogus", Order: types.SortAsc},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, "Eve", items[0].Name, "unknown sort columns fall back to newest first")

	items, total, err = repo.FindContactPage(ctx, types.ContactQuery{
		Scope:  types.OwnerOnly(owner),
		Limit:  10,
		Offset: 50,
	})
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Empty(t, items)
}

func TestRepository_ScopeHidesOtherOwners(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	ownerA := seedAccount(t, db, "A", "a@example.com")
	ownerB := seedAccount(t, db, "B", "b@example.com")

	created, err := repo.CreateContact(ctx, ownerA, types.ContactFields{Name: "Ann"})
	require.NoError(t, err)

	_, err = repo.FindContact(ctx, created.ID, types.OwnerOnly(ownerB))
	require.True(t, types.HasTextCode(err, types.TextCodeNotFound))

	name := "Hijacked"
	_, err = repo.UpdateContact(ctx, created.ID, types.OwnerOnly(ownerB), types.ContactPatch{Name: &name})
	require.True(t, types.HasTextCode(err, types.TextCodeNotFound))

	err = repo.DeleteContact(ctx, created.ID, types.OwnerOnly(ownerB))
	require.True(t, types.HasTextCode(err, types.TextCodeNotFound))

	fetched, err := repo.FindContact(ctx, created.ID, types.OwnerOnly(ownerA))
	require.NoError(t, err)
	require.Equal(t, "Ann", fetched.Name)
}

func TestRepository_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo, db := newTestRepositoryWithClock(t, clock)
	owner := seedAccount(t, db, "Owner", "owner@example.com")

	created, err := repo.CreateContact(ctx, owner, types.ContactFields{
		Name:  "Ann",
		Email: "ann@x.com",
		Phone: "+1000000000",
		Photo: "data:image/png;base64,AAAA",
	})
	require.NoError(t, err)

	unchanged, err := repo.UpdateContact(ctx, created.ID, types.OwnerOnly(owner), types.ContactPatch{})
	require.NoError(t, err)
	require.Equal(t, created.UpdatedAt.Unix(), unchanged.UpdatedAt.Unix())
	require.Equal(t, created.Email, unchanged.Email)

	name := "X"
	updated, err := repo.UpdateContact(ctx, created.ID, types.OwnerOnly(owner), types.ContactPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "X", updated.Name)
	require.Equal(t, "ann@x.com", updated.Email)
	require.Equal(t, "+1000000000", updated.Phone)
	require.Equal(t, "data:image/png;base64,AAAA", updated.Photo)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	require.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	empty := ""
	cleared, err := repo.UpdateContact(ctx, created.ID, types.OwnerOnly(owner), types.ContactPatch{Photo: &empty})
	require.NoError(t, err)
	require.Empty(t, cleared.Photo)
	require.Equal(t, "X", cleared.Name)
}

func TestRepository_DeleteIsPermanent(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	owner := seedAccount(t, db, "Owner", "owner@example.com")

	created, err := repo.CreateContact(ctx, owner, types.ContactFields{Name: "Ann"})
	require.NoError(t, err)

	count, err := repo.CountByOwner(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, repo.DeleteContact(ctx, created.ID, types.OwnerOnly(owner)))

	_, err = repo.FindContact(ctx, created.ID, types.OwnerOnly(owner))
	require.True(t, types.HasTextCode(err, types.TextCodeNotFound))

	err = repo.DeleteContact(ctx, created.ID, types.OwnerOnly(owner))
	require.True(t, types.HasTextCode(err, types.TextCodeNotFound))

	count, err = repo.CountByOwner(ctx, owner)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestRepository_GlobalListingJoinsOwners(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	ownerA := seedAccount(t, db, "Alpha Owner", "alpha@example.com")
	ownerB := seedAccount(t, db, "Beta Owner", "beta@example.com")

	_, err := repo.CreateContact(ctx, ownerA, types.ContactFields{Name: "Ann"})
	require.NoError(t, err)
	_, err = repo.CreateContact(ctx, ownerB, types.ContactFields{Name: "Ben"})
	require.NoError(t, err)

	items, total, err := repo.FindContactPage(ctx, types.ContactQuery{Scope: types.AllOwners(), Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	owners := map[uuid.UUID]string{}
	for _, item := range items {
		owners[item.OwnerID] = item.OwnerEmail
	}
	require.Equal(t, "alpha@example.com", owners[ownerA])
	require.Equal(t, "beta@example.com", owners[ownerB])

	items, total, err = repo.FindContactPage(ctx, types.ContactQuery{Scope: types.AllOwners(), Search: "beta", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Ben", items[0].Name)

	_, total, err = repo.FindContactPage(ctx, types.ContactQuery{Scope: types.OwnerOnly(ownerA), Search: "beta", Limit: 10})
	require.NoError(t, err)
	require.Zero(t, total, "owner fields are only searched in the global view")
}

func TestRepository_OwnerRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	owner := seedAccount(t, db, "Owner", "owner@example.com")
	other := seedAccount(t, db, "Other", "other@example.com")

	created, err := repo.CreateContact(ctx, owner, types.ContactFields{Name: "Ann", Email: "ann@x.com", Phone: "+1000000000"})
	require.NoError(t, err)

	fetched, err := repo.FindContact(ctx, created.ID, types.OwnerOnly(owner))
	require.NoError(t, err)
	require.Equal(t, "Ann", fetched.Name)

	items, total, err := repo.FindContactPage(ctx, types.ContactQuery{
		Scope: types.OwnerOnly(owner),
		Sort:  types.Sort{Field: "name", Order: types.SortAsc},
		Page:  1,
		Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, created.ID, items[0].ID)

	name := "Ann B"
	updated, err := repo.UpdateContact(ctx, created.ID, types.OwnerOnly(owner), types.ContactPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Ann B", updated.Name)

	count, err := repo.CountByOwner(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = repo.FindContact(ctx, created.ID, types.OwnerOnly(other))
	require.True(t, types.HasTextCode(err, types.TextCodeNotFound))

	fetched, err = repo.FindContact(ctx, created.ID, types.AllOwners())
	require.NoError(t, err)
	require.Equal(t, "Ann B", fetched.Name)
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

func newTestRepository(t *testing.T) (*Repository, *bun.DB) {
	return newTestRepositoryWithClock(t, nil)
}

func newTestRepositoryWithClock(t *testing.T, clock types.Clock) (*Repository, *bun.DB) {
	db := newTestDB(t)
	applyDDL(t, db, "../data/sql/migrations/sqlite/00001_users.up.sql")
	applyDDL(t, db, "../data/sql/migrations/sqlite/00002_contacts.up.sql")
	repo, err := NewRepository(RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)
	return repo, db
}

func seedAccount(t *testing.T, db *bun.DB, name, email string) uuid.UUID {
	id := uuid.New()
	_, err := db.Exec(
		"INSERT INTO users (id, name, email, password_hash, role, is_active) VALUES (?, ?, ?, ?, ?, ?)",
		id.String(), name, email, "hash", types.RoleUser, true,
	)
	require.NoError(t, err)
	return id
}

func newTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	return db
}

func applyDDL(t *testing.T, db *bun.DB, path string) {
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, stmt := range splitStatements(string(content)) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func splitStatements(sql string) []string {
	lines := strings.Split(sql, "\n")
	var builder strings.Builder
	var statements []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.TrimSuffix(builder.String(), ";"))
			builder.Reset()
		} else {
			builder.WriteString(" ")
		}
	}
	if builder.Len() > 0 {
		statements = append(statements, builder.String())
	}
	return statements
}
