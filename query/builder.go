package query

import (
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

const (
	SortFieldName      = "name"
	SortFieldEmail     = "email"
	SortFieldPhone     = "phone"
	SortFieldRole      = "role"
	SortFieldIsActive  = "isActive"
	SortFieldCreatedAt = "createdAt"
	SortFieldUpdatedAt = "updatedAt"
)

var (
	contactSortFields = map[string]struct{}{
		SortFieldName:      {},
		SortFieldEmail:     {},
		SortFieldPhone:     {},
		SortFieldCreatedAt: {},
		SortFieldUpdatedAt: {},
	}
	accountSortFields = map[string]struct{}{
		SortFieldName:      {},
		SortFieldEmail:     {},
		SortFieldPhone:     {},
		SortFieldRole:      {},
		SortFieldIsActive:  {},
		SortFieldCreatedAt: {},
		SortFieldUpdatedAt: {},
	}
)

// DefaultSort is applied when the requested sort field is not allow-listed.
var DefaultSort = types.Sort{Field: SortFieldCreatedAt, Order: types.SortDesc}

// BuildContactQuery translates a listing request into the declarative
// descriptor executed by the contact repository.
func BuildContactQuery(scope types.OwnerScope, req types.PageRequest) (types.ContactQuery, error) {
	page, limit, err := validatePage(req.Page, req.Limit)
	if err != nil {
		return types.ContactQuery{}, err
	}
	return types.ContactQuery{
		Scope:  scope,
		Search: strings.TrimSpace(req.Search),
		Sort:   resolveSort(contactSortFields, req.SortBy, req.SortOrder),
		Page:   page,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}, nil
}

// BuildAccountQuery mirrors BuildContactQuery for account listings.
func BuildAccountQuery(req types.PageRequest) (types.AccountQuery, error) {
	page, limit, err := validatePage(req.Page, req.Limit)
	if err != nil {
		return types.AccountQuery{}, err
	}
	return types.AccountQuery{
		Search: strings.TrimSpace(req.Search),
		Sort:   resolveSort(accountSortFields, req.SortBy, req.SortOrder),
		Page:   page,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}, nil
}

func validatePage(page, limit int) (int, int, error) {
	var fields []goerrors.FieldError
	if page < 1 {
		fields = append(fields, goerrors.FieldError{Field: "page", Message: "must be at least 1", Value: page})
	}
	if limit < 1 || limit > types.MaxLimit {
		fields = append(fields, goerrors.FieldError{Field: "limit", Message: "must be between 1 and 100", Value: limit})
	}
	if len(fields) > 0 {
		return 0, 0, types.InvalidArgument("invalid pagination parameters", fields...)
	}
	return page, limit, nil
}

// resolveSort silently falls back to DefaultSort (field and order) when the
// field is not allow-listed.
func resolveSort(allowed map[string]struct{}, field, order string) types.Sort {
	field = strings.TrimSpace(field)
	if field == "" {
		return types.Sort{Field: SortFieldCreatedAt, Order: types.ParseSortOrder(order)}
	}
	if _, ok := allowed[field]; !ok {
		return DefaultSort
	}
	return types.Sort{Field: field, Order: types.ParseSortOrder(order)}
}
