package types

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultPage is used when a request omits the page number.
	DefaultPage = 1
	// DefaultLimit is used when a request omits the page size.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// SortOrder is the direction of an ordering clause.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder maps free-form input to a SortOrder, defaulting to DESC.
func ParseSortOrder(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// PageRequest is the raw listing request as received from transports.
type PageRequest struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// Sort is a resolved ordering. Field is always one of the allow-listed names.
type Sort struct {
	Field string
	Order SortOrder
}

// ContactQuery is the store independent descriptor produced by the query
// builder and executed by the contact repository.
type ContactQuery struct {
	Scope  OwnerScope
	Search string
	Sort   Sort
	Page   int
	Offset int
	Limit  int
}

// AccountQuery is the descriptor used for account listings.
type AccountQuery struct {
	Search string
	Sort   Sort
	Page   int
	Offset int
	Limit  int
	IDs    []uuid.UUID
}

// PageInfo is the pagination metadata attached to every listing.
type PageInfo struct {
	Page       int
	Limit      int
	TotalCount int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// NewPageInfo computes page metadata from the total count, page and limit.
func NewPageInfo(total, page, limit int) PageInfo {
	info := PageInfo{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
	}
	if total > 0 && limit > 0 {
		info.TotalPages = (total + limit - 1) / limit
	}
	info.HasNext = page < info.TotalPages
	info.HasPrev = page > 1
	return info
}
