package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-contacts/auth"
	"github.com/goliatone/go-contacts/command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/query"
)

const (
	msgRegistered      = "User registered successfully"
	msgLoggedIn        = "User logged in successfully"
	msgProfile         = "Profile retrieved successfully"
	msgAccountCreated  = "User created successfully"
	msgAccountsListed  = "Users retrieved successfully"
	msgAccountRetrieve = "User retrieved successfully"
	msgAccountDeleted  = "User deleted successfully"
)

func (h *handlers) register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, types.InvalidArgument(msgInvalidBody))
		return
	}
	var session types.Session
	err := h.svc.Commands().AccountRegister.Execute(c.Request.Context(), command.AccountRegisterInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Phone:    body.Phone,
		Result:   &session,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, msgRegistered, sessionView(session))
}

func (h *handlers) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, types.InvalidArgument(msgInvalidBody))
		return
	}
	session, err := h.auth.Login(c.Request.Context(), auth.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, msgLoggedIn, sessionView(session))
}

func (h *handlers) profile(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	account, err := h.svc.Queries().Profile.Query(c.Request.Context(), query.ProfileQueryInput{Actor: actor})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, msgProfile, gin.H{"user": accountView(*account)})
}

func (h *handlers) createAccount(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var body accountCreateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, types.InvalidArgument(msgInvalidBody))
		return
	}
	var created types.Account
	err = h.svc.Commands().AccountCreate.Execute(c.Request.Context(), command.AccountCreateInput{
		Actor:    actor,
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Phone:    body.Phone,
		Role:     body.Role,
		IsActive: body.IsActive,
		Result:   &created,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, msgAccountCreated, gin.H{"user": accountView(created)})
}

func (h *handlers) listAccounts(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	req, err := pageRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := h.svc.Queries().AccountList.Query(c.Request.Context(), query.AccountListInput{
		Actor:   actor,
		Request: req,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]accountDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, accountView(item))
	}
	h.ok(c, http.StatusOK, msgAccountsListed, accountListDTO{
		Users:      items,
		Pagination: paginationView(page.PageInfo),
	})
}

func (h *handlers) getAccount(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	account, err := h.svc.Queries().AccountDetail.Query(c.Request.Context(), query.AccountDetailInput{
		Actor:     actor,
		AccountID: id,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, msgAccountRetrieve, gin.H{"user": accountView(*account)})
}

func (h *handlers) deleteAccount(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.svc.Commands().AccountDelete.Execute(c.Request.Context(), command.AccountDeleteInput{
		Actor:     actor,
		AccountID: id,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, msgAccountDeleted, nil)
}
