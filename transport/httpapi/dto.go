package httpapi

import (
	"time"

	"github.com/goliatone/go-contacts/pkg/types"
)

type contactDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Position   string    `json:"position,omitempty"`
	Address    string    `json:"address,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Photo      string    `json:"photo,omitempty"`
	OwnerName  string    `json:"ownerName,omitempty"`
	OwnerEmail string    `json:"ownerEmail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func contactView(c types.Contact) contactDTO {
	return contactDTO{
		ID:         c.ID.String(),
		UserID:     c.OwnerID.String(),
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Company:    c.Company,
		Position:   c.Position,
		Address:    c.Address,
		Notes:      c.Notes,
		Photo:      c.Photo,
		OwnerName:  c.OwnerName,
		OwnerEmail: c.OwnerEmail,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type accountDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func accountView(a types.Account) accountDTO {
	return accountDTO{
		ID:        a.ID.String(),
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Photo:     a.Photo,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type paginationDTO struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func paginationView(info types.PageInfo) paginationDTO {
	return paginationDTO{
		Page:       info.Page,
		Limit:      info.Limit,
		Total:      info.TotalCount,
		TotalPages: info.TotalPages,
		HasNext:    info.HasNext,
		HasPrev:    info.HasPrev,
	}
}

type contactListDTO struct {
	Contacts   []contactDTO  `json:"contacts"`
	Pagination paginationDTO `json:"pagination"`
}

type accountListDTO struct {
	Users      []accountDTO  `json:"users"`
	Pagination paginationDTO `json:"pagination"`
}

type sessionDTO struct {
	User        accountDTO `json:"user"`
	AccessToken string     `json:"accessToken"`
	ExpiresAt   time.Time  `json:"expiresAt"`
}

func sessionView(s types.Session) sessionDTO {
	return sessionDTO{
		User:        accountView(s.Account),
		AccessToken: s.AccessToken.Token,
		ExpiresAt:   s.AccessToken.ExpiresAt,
	}
}

type contactBody struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Company  string `json:"company" form:"company"`
	Position string `json:"position" form:"position"`
	Address  string `json:"address" form:"address"`
	Notes    string `json:"notes" form:"notes"`
	Photo    string `json:"photo" form:"photo"`
}

func (b contactBody) fields() types.ContactFields {
	return types.ContactFields{
		Name:     b.Name,
		Email:    b.Email,
		Phone:    b.Phone,
		Company:  b.Company,
		Position: b.Position,
		Address:  b.Address,
		Notes:    b.Notes,
		Photo:    b.Photo,
	}
}

type contactPatchBody struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	Photo    *string `json:"photo"`
}

func (b contactPatchBody) patch() types.ContactPatch {
	return types.ContactPatch{
		Name:     b.Name,
		Email:    b.Email,
		Phone:    b.Phone,
		Company:  b.Company,
		Position: b.Position,
		Address:  b.Address,
		Notes:    b.Notes,
		Photo:    b.Photo,
	}
}

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountCreateBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}
