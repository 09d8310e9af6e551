package command

import (
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
)

type accountRules struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
	Phone    string `validate:"omitempty,max=20,phone"`
	Role     string `validate:"omitempty,oneof=user admin"`
}

type accountDraft struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

func (d accountDraft) normalized() accountDraft {
	return accountDraft{
		Name:     strings.TrimSpace(d.Name),
		Email:    strings.ToLower(strings.TrimSpace(d.Email)),
		Password: d.Password,
		Phone:    strings.TrimSpace(d.Phone),
		Role:     types.NormalizeRole(d.Role),
	}
}

func (d accountDraft) validate() error {
	n := d.normalized()
	return validateStruct(accountRules{
		Name:     n.Name,
		Email:    n.Email,
		Password: n.Password,
		Phone:    n.Phone,
		Role:     n.Role,
	})
}

func (d accountDraft) account(hash, role string, active bool) types.Account {
	n := d.normalized()
	if role == "" {
		role = types.RoleUser
	}
	return types.Account{
		Name:         n.Name,
		Email:        n.Email,
		Phone:        n.Phone,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
}
