package command

import (
	"context"
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

type contactFieldRules struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"omitempty,email"`
	Phone    string `validate:"omitempty,max=20,phone"`
	Company  string `validate:"omitempty,max=100"`
	Position string `validate:"omitempty,max=100"`
	Address  string `validate:"omitempty,max=500"`
	Photo    string `validate:"omitempty,photoref"`
}

type contactPatchRules struct {
	Name     *string `validate:"omitnil,min=2,max=100"`
	Email    *string `validate:"omitempty,email"`
	Phone    *string `validate:"omitempty,max=20,phone"`
	Company  *string `validate:"omitempty,max=100"`
	Position *string `validate:"omitempty,max=100"`
	Address  *string `validate:"omitempty,max=500"`
	Photo    *string `validate:"omitempty,photoref"`
}

func contactRules(fields types.ContactFields) contactFieldRules {
	return contactFieldRules{
		Name:     fields.Name,
		Email:    fields.Email,
		Phone:    fields.Phone,
		Company:  fields.Company,
		Position: fields.Position,
		Address:  fields.Address,
		Photo:    fields.Photo,
	}
}

func patchRules(patch types.ContactPatch) contactPatchRules {
	return contactPatchRules{
		Name:     patch.Name,
		Email:    patch.Email,
		Phone:    patch.Phone,
		Company:  patch.Company,
		Position: patch.Position,
		Address:  patch.Address,
		Photo:    patch.Photo,
	}
}

func normalizeContactFields(fields types.ContactFields) types.ContactFields {
	return types.ContactFields{
		Name:     strings.TrimSpace(fields.Name),
		Email:    strings.TrimSpace(fields.Email),
		Phone:    strings.TrimSpace(fields.Phone),
		Company:  strings.TrimSpace(fields.Company),
		Position: strings.TrimSpace(fields.Position),
		Address:  strings.TrimSpace(fields.Address),
		Notes:    strings.TrimSpace(fields.Notes),
		Photo:    strings.TrimSpace(fields.Photo),
	}
}

func normalizeContactPatch(patch types.ContactPatch) types.ContactPatch {
	return types.ContactPatch{
		Name:     trimPtr(patch.Name),
		Email:    trimPtr(patch.Email),
		Phone:    trimPtr(patch.Phone),
		Company:  trimPtr(patch.Company),
		Position: trimPtr(patch.Position),
		Address:  trimPtr(patch.Address),
		Notes:    trimPtr(patch.Notes),
		Photo:    trimPtr(patch.Photo),
	}
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	return strPtr(strings.TrimSpace(*v))
}

func storePhoto(ctx context.Context, store types.PhotoStore, ownerID uuid.UUID, upload types.PhotoUpload) (string, error) {
	if store == nil {
		return "", types.ErrMissingPhotoStore
	}
	upload.OwnerID = ownerID
	return store.Store(ctx, upload)
}
