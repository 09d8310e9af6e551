package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-contacts/pkg/types"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const photoField = "photo"

// pageRequest reads listing parameters. Absent page/limit fall back to the
// defaults; present values are handed to the builder untouched.
func pageRequest(c *gin.Context) (types.PageRequest, error) {
	req := types.PageRequest{
		Page:      types.DefaultPage,
		Limit:     types.DefaultLimit,
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	var fields []goerrors.FieldError
	if raw, ok := c.GetQuery("page"); ok && strings.TrimSpace(raw) != "" {
		page, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			fields = append(fields, goerrors.FieldError{Field: "page", Message: "must be an integer", Value: raw})
		}
		req.Page = page
	}
	if raw, ok := c.GetQuery("limit"); ok && strings.TrimSpace(raw) != "" {
		limit, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			fields = append(fields, goerrors.FieldError{Field: "limit", Message: "must be an integer", Value: raw})
		}
		req.Limit = limit
	}
	if len(fields) > 0 {
		return req, types.InvalidArgument("invalid pagination parameters", fields...)
	}
	return req, nil
}

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, types.InvalidArgument("invalid "+name, goerrors.FieldError{
			Field:   name,
			Message: "must be a valid UUID",
			Value:   c.Param(name),
		})
	}
	return id, nil
}

// targetOwner reads the optional userId parameter admins use to act on
// behalf of another account.
func targetOwner(c *gin.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query("userId"))
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, types.InvalidArgument("invalid userId", goerrors.FieldError{
			Field:   "userId",
			Message: "must be a valid UUID",
			Value:   raw,
		})
	}
	return id, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// readUpload returns the photo part of a multipart request, or nil when
// the form carries no file.
func (h *handlers) readUpload(c *gin.Context) (*types.PhotoUpload, error) {
	header, err := c.FormFile(photoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, types.InvalidArgument("invalid multipart body")
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.maxUpload {
		return nil, types.InvalidArgument("photo is too large", goerrors.FieldError{
			Field:   photoField,
			Message: "exceeds the upload limit",
		})
	}
	return &types.PhotoUpload{Filename: header.Filename, Data: data}, nil
}
