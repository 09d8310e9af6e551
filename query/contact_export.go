package query

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/scope"
	"github.com/google/uuid"
)

const exportPageSize = types.MaxLimit

var (
	exportColumns      = []string{"id", "name", "email", "phone", "createdAt", "updatedAt"}
	exportOwnerColumns = []string{"ownerName", "ownerEmail"}
)

// ContactExportInput selects the contacts written as CSV to Output. Search and
// sort follow the listing rules; pagination is ignored.
type ContactExportInput struct {
	Actor     types.ActorRef
	OwnerID   uuid.UUID
	Global    bool
	Search    string
	SortBy    string
	SortOrder string
	Output    io.Writer
}

// ContactExportResult summarizes a finished export.
type ContactExportResult struct {
	Rows   int
	Global bool
}

// ContactExportQuery streams every contact in scope as CSV.
type ContactExportQuery struct {
	repo   types.ContactRepository
	logger types.Logger
	guard  scope.Guard
}

// NewContactExportQuery constructs the export query.
func NewContactExportQuery(repo types.ContactRepository, logger types.Logger, guard scope.Guard) *ContactExportQuery {
	return &ContactExportQuery{
		repo:   repo,
		logger: safeLogger(logger),
		guard:  safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[ContactExportInput, ContactExportResult] = (*ContactExportQuery)(nil)

// Query walks the scoped result set page by page and writes one CSV row per
// contact. Owner columns are added in the all-accounts view.
func (q *ContactExportQuery) Query(ctx context.Context, input ContactExportInput) (ContactExportResult, error) {
	if q.repo == nil {
		return ContactExportResult{}, types.ErrMissingContactRepository
	}
	if input.Output == nil {
		return ContactExportResult{}, types.InvalidArgument("export output required")
	}
	ownerScope, err := q.guard.Resolve(ctx, types.ScopeRequest{
		Actor:    input.Actor,
		TargetID: input.OwnerID,
		Global:   input.Global,
	})
	if err != nil {
		return ContactExportResult{}, err
	}

	result := ContactExportResult{Global: ownerScope.All}
	writer := csv.NewWriter(input.Output)
	header := exportColumns
	if ownerScope.All {
		header = append(append([]string{}, exportColumns...), exportOwnerColumns...)
	}
	if err := writer.Write(header); err != nil {
		return result, surfaceError(q.logger, "contact export", err)
	}

	for page := 1; ; page++ {
		descriptor, err := BuildContactQuery(ownerScope, types.PageRequest{
			Page:      page,
			Limit:     exportPageSize,
			Search:    input.Search,
			SortBy:    input.SortBy,
			SortOrder: input.SortOrder,
		})
		if err != nil {
			return result, err
		}
		items, total, err := q.repo.FindContactPage(ctx, descriptor)
		if err != nil {
			return result, surfaceError(q.logger, "contact export", err)
		}
		for _, contact := range items {
			if err := writer.Write(exportRow(contact, ownerScope.All)); err != nil {
				return result, surfaceError(q.logger, "contact export", err)
			}
			result.Rows++
		}
		if len(items) < descriptor.Limit || descriptor.Offset+len(items) >= total {
			break
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return result, surfaceError(q.logger, "contact export", err)
	}
	return result, nil
}

func exportRow(contact types.Contact, withOwner bool) []string {
	row := []string{
		contact.ID.String(),
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.CreatedAt.UTC().Format(time.RFC3339),
		contact.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if withOwner {
		row = append(row, contact.OwnerName, contact.OwnerEmail)
	}
	return row
}
