package photo

import (
	"context"
	"encoding/base64"

	"github.com/goliatone/go-contacts/pkg/types"
)

// InlineStore keeps photos on the contact row as base64 data URLs.
type InlineStore struct {
	maxBytes int
}

// NewInlineStore returns an inline store accepting uploads up to maxBytes.
func NewInlineStore(maxBytes int) *InlineStore {
	return &InlineStore{maxBytes: maxBytes}
}

var _ types.PhotoStore = (*InlineStore)(nil)

// Store implements types.PhotoStore.
func (s *InlineStore) Store(_ context.Context, upload types.PhotoUpload) (string, error) {
	detected, err := Validate(upload.Data, s.maxBytes)
	if err != nil {
		return "", err
	}
	return "data:" + detected.MIME + ";base64," + base64.StdEncoding.EncodeToString(upload.Data), nil
}
