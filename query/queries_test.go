package query

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestContactListQuery_WrapsPage(t *testing.T) {
	owner := uuid.New()
	repo := &pagedContactRepo{total: 1, items: []types.Contact{{ID: uuid.New(), OwnerID: owner, Name: "Ann"}}}
	q := NewContactListQuery(repo, nil, nil)

	page, err := q.Query(context.Background(), ContactListInput{
		Actor:   types.ActorRef{ID: owner, Role: types.RoleUser},
		Request: types.PageRequest{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, 1, page.TotalCount)
	require.Equal(t, 1, page.TotalPages)
	require.False(t, page.HasNext)
	require.False(t, page.HasPrev)
	require.Equal(t, types.OwnerOnly(owner), repo.queries[0].Scope)
}

func TestContactListQuery_PageBeyondTotalIsEmpty(t *testing.T) {
	repo := &pagedContactRepo{total: 3}
	q := NewContactListQuery(repo, nil, nil)

	page, err := q.Query(context.Background(), ContactListInput{
		Actor:   types.ActorRef{ID: uuid.New()},
		Request: types.PageRequest{Page: 5, Limit: 2},
	})
	require.NoError(t, err)
	require.NotNil(t, page.Items)
	require.Empty(t, page.Items)
	require.Equal(t, 2, page.TotalPages)
	require.False(t, page.HasNext)
	require.True(t, page.HasPrev)
	require.Equal(t, 8, repo.queries[0].Offset)
}

func TestContactListQuery_GlobalRequiresAdmin(t *testing.T) {
	repo := &pagedContactRepo{}
	q := NewContactListQuery(repo, nil, nil)

	_, err := q.Query(context.Background(), ContactListInput{
		Actor:   types.ActorRef{ID: uuid.New(), Role: types.RoleUser},
		Global:  true,
		Request: types.PageRequest{Page: 1, Limit: 10},
	})
	require.True(t, types.HasTextCode(err, types.TextCodeForbidden))
	require.Empty(t, repo.queries)

	_, err = q.Query(context.Background(), ContactListInput{
		Actor:   types.ActorRef{ID: uuid.New(), Role: types.RoleAdmin},
		Global:  true,
		Request: types.PageRequest{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.True(t, repo.queries[0].Scope.All)
}

func TestContactListQuery_InvalidPagination(t *testing.T) {
	repo := &pagedContactRepo{}
	q := NewContactListQuery(repo, nil, nil)

	_, err := q.Query(context.Background(), ContactListInput{
		Actor:   types.ActorRef{ID: uuid.New()},
		Request: types.PageRequest{Page: 1, Limit: 101},
	})
	require.True(t, types.HasTextCode(err, types.TextCodeInvalidArgument))
	require.Empty(t, repo.queries)
}

func TestContactDetailQuery_RequiresID(t *testing.T) {
	q := NewContactDetailQuery(&pagedContactRepo{}, nil, nil)
	_, err := q.Query(context.Background(), ContactDetailInput{Actor: types.ActorRef{ID: uuid.New()}})
	require.ErrorIs(t, err, types.ErrContactIDRequired)
}

func TestContactExportQuery_WalksPagesWithOwnerColumns(t *testing.T) {
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	var all []types.Contact
	for i := 0; i < 150; i++ {
		all = append(all, types.Contact{
			ID:         uuid.New(),
			Name:       "Contact",
			Email:      "c@example.com",
			OwnerName:  "Owner, Inc",
			OwnerEmail: "owner@example.com",
			CreatedAt:  created,
			UpdatedAt:  created,
		})
	}
	repo := &pagedContactRepo{all: all}
	q := NewContactExportQuery(repo, nil, nil)

	var buf bytes.Buffer
	result, err := q.Query(context.Background(), ContactExportInput{
		Actor:  types.ActorRef{ID: uuid.New(), Role: types.RoleAdmin},
		Global: true,
		Output: &buf,
	})
	require.NoError(t, err)
	require.Equal(t, 150, result.Rows)
	require.True(t, result.Global)
	require.Len(t, repo.queries, 2)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 151)
	require.Equal(t, []string{"id", "name", "email", "phone", "createdAt", "updatedAt", "ownerName", "ownerEmail"}, records[0])
	require.Equal(t, "Owner, Inc", records[1][6])
	require.Equal(t, "2024-05-06T07:08:09Z", records[1][4])
}

func TestContactExportQuery_OwnScopeHasNoOwnerColumns(t *testing.T) {
	repo := &pagedContactRepo{all: []types.Contact{{ID: uuid.New(), Name: "Ann"}}}
	q := NewContactExportQuery(repo, nil, nil)

	var buf bytes.Buffer
	result, err := q.Query(context.Background(), ContactExportInput{
		Actor:  types.ActorRef{ID: uuid.New()},
		Output: &buf,
		SortBy: "bogus",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records[0], 6)
	require.Equal(t, "createdAt", repo.queries[0].Sort.Field)
}

func TestAccountListQuery_AdminOnly(t *testing.T) {
	repo := &pagedAccountRepo{total: 2, items: []types.Account{{Name: "A"}, {Name: "B"}}}
	q := NewAccountListQuery(repo, nil)

	_, err := q.Query(context.Background(), AccountListInput{
		Actor:   types.ActorRef{ID: uuid.New(), Role: types.RoleUser},
		Request: types.PageRequest{Page: 1, Limit: 10},
	})
	require.True(t, types.HasTextCode(err, types.TextCodeForbidden))

	page, err := q.Query(context.Background(), AccountListInput{
		Actor:   types.ActorRef{ID: uuid.New(), Role: types.RoleAdmin},
		Request: types.PageRequest{Page: 1, Limit: 10, SortBy: "isActive", SortOrder: "asc"},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, types.Sort{Field: "isActive", Order: types.SortAsc}, repo.last.Sort)
}

func TestAccountDetailQuery_SelfOrAdmin(t *testing.T) {
	self := uuid.New()
	other := uuid.New()
	repo := &pagedAccountRepo{byID: map[uuid.UUID]types.Account{
		self:  {ID: self, Name: "Self"},
		other: {ID: other, Name: "Other"},
	}}
	q := NewAccountDetailQuery(repo, nil)

	account, err := q.Query(context.Background(), AccountDetailInput{Actor: types.ActorRef{ID: self}, AccountID: self})
	require.NoError(t, err)
	require.Equal(t, "Self", account.Name)

	_, err = q.Query(context.Background(), AccountDetailInput{Actor: types.ActorRef{ID: self}, AccountID: other})
	require.True(t, types.HasTextCode(err, types.TextCodeNotFound))

	account, err = q.Query(context.Background(), AccountDetailInput{
		Actor:     types.ActorRef{ID: self, Role: types.RoleAdmin},
		AccountID: other,
	})
	require.NoError(t, err)
	require.Equal(t, "Other", account.Name)
}

func TestProfileQuery_RequiresActor(t *testing.T) {
	q := NewProfileQuery(&pagedAccountRepo{}, nil)
	_, err := q.Query(context.Background(), ProfileQueryInput{})
	require.True(t, types.HasTextCode(err, types.TextCodeUnauthorized))
}

type pagedContactRepo struct {
	total   int
	items   []types.Contact
	all     []types.Contact
	queries []types.ContactQuery
}

func (r *pagedContactRepo) FindContactPage(_ context.Context, query types.ContactQuery) ([]types.Contact, int, error) {
	r.queries = append(r.queries, query)
	if r.all == nil {
		if query.Offset >= r.total {
			return nil, r.total, nil
		}
		return r.items, r.total, nil
	}
	start := query.Offset
	if start > len(r.all) {
		start = len(r.all)
	}
	end := start + query.Limit
	if end > len(r.all) {
		end = len(r.all)
	}
	return r.all[start:end], len(r.all), nil
}

func (r *pagedContactRepo) CreateContact(context.Context, uuid.UUID, types.ContactFields) (*types.Contact, error) {
	return nil, nil
}

func (r *pagedContactRepo) FindContact(context.Context, uuid.UUID, types.OwnerScope) (*types.Contact, error) {
	return nil, types.NotFound("contact not found")
}

func (r *pagedContactRepo) UpdateContact(context.Context, uuid.UUID, types.OwnerScope, types.ContactPatch) (*types.Contact, error) {
	return nil, nil
}

func (r *pagedContactRepo) DeleteContact(context.Context, uuid.UUID, types.OwnerScope) error {
	return nil
}

func (r *pagedContactRepo) CountByOwner(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

type pagedAccountRepo struct {
	total int
	items []types.Account
	byID  map[uuid.UUID]types.Account
	last  types.AccountQuery
}

func (r *pagedAccountRepo) CreateAccount(_ context.Context, account types.Account) (*types.Account, error) {
	return &account, nil
}

func (r *pagedAccountRepo) GetAccount(_ context.Context, id uuid.UUID) (*types.Account, error) {
	account, ok := r.byID[id]
	if !ok {
		return nil, types.NotFound(msgAccountNotFound)
	}
	return &account, nil
}

func (r *pagedAccountRepo) GetAccountByEmail(context.Context, string) (*types.Account, error) {
	return nil, types.NotFound(msgAccountNotFound)
}

func (r *pagedAccountRepo) FindAccountPage(_ context.Context, query types.AccountQuery) ([]types.Account, int, error) {
	r.last = query
	return r.items, r.total, nil
}

func (r *pagedAccountRepo) DeleteAccount(context.Context, uuid.UUID) error {
	return nil
}
