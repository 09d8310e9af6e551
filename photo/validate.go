package photo

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/goliatone/go-contacts/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

// DefaultMaxBytes caps photo uploads at 5 MiB.
const DefaultMaxBytes = 5 << 20

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Detected describes a validated upload.
type Detected struct {
	MIME      string
	Extension string
}

// Validate sniffs the upload content and rejects empty, oversized or non
// image payloads.
func Validate(data []byte, maxBytes int) (Detected, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(data) == 0 {
		return Detected{}, types.InvalidArgument("photo is empty", goerrors.FieldError{
			Field:   "photo",
			Message: "is required",
		})
	}
	if len(data) > maxBytes {
		return Detected{}, types.InvalidArgument("photo is too large", goerrors.FieldError{
			Field:   "photo",
			Message: fmt.Sprintf("must be at most %d bytes", maxBytes),
			Value:   len(data),
		})
	}
	detected := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if detected.Is(allowed) {
			return Detected{MIME: allowed, Extension: detected.Extension()}, nil
		}
	}
	return Detected{}, types.InvalidArgument("unsupported photo type", goerrors.FieldError{
		Field:   "photo",
		Message: "must be a JPEG, PNG, GIF or WebP image",
		Value:   detected.String(),
	})
}
