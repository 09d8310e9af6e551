package httpapi

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-contacts/command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/query"
)

const (
	msgContactCreated   = "Contact created successfully"
	msgContactRetrieved = "Contact retrieved successfully"
	msgContactsListed   = "Contacts retrieved successfully"
	msgContactUpdated   = "Contact updated successfully"
	msgContactDeleted   = "Contact deleted successfully"
	msgInvalidBody      = "invalid request body"
)

func (h *handlers) createContact(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ownerID, err := targetOwner(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var body contactBody
	var upload *types.PhotoUpload
	if isMultipart(c) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+(1<<20))
		if err := c.ShouldBind(&body); err != nil {
			h.fail(c, types.InvalidArgument(msgInvalidBody))
			return
		}
		if upload, err = h.readUpload(c); err != nil {
			h.fail(c, err)
			return
		}
	} else if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, types.InvalidArgument(msgInvalidBody))
		return
	}

	var created types.Contact
	err = h.svc.Commands().ContactCreate.Execute(c.Request.Context(), command.ContactCreateInput{
		Actor:   actor,
		OwnerID: ownerID,
		Fields:  body.fields(),
		Upload:  upload,
		Result:  &created,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, msgContactCreated, gin.H{"contact": contactView(created)})
}

func (h *handlers) listContacts(c *gin.Context) {
	h.list(c, false)
}

func (h *handlers) listAllContacts(c *gin.Context) {
	h.list(c, true)
}

func (h *handlers) list(c *gin.Context, global bool) {
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
	ownerID, err := targetOwner(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := h.svc.Queries().ContactList.Query(c.Request.Context(), query.ContactListInput{
		Actor:   actor,
		OwnerID: ownerID,
		Global:  global,
		Request: req,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]contactDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, contactView(item))
	}
	h.ok(c, http.StatusOK, msgContactsListed, contactListDTO{
		Contacts:   items,
		Pagination: paginationView(page.PageInfo),
	})
}

func (h *handlers) exportContacts(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ownerID, err := targetOwner(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	global, _ := strconv.ParseBool(c.Query("all"))

	var buf bytes.Buffer
	_, err = h.svc.Queries().ContactExport.Query(c.Request.Context(), query.ContactExportInput{
		Actor:     actor,
		OwnerID:   ownerID,
		Global:    global,
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Output:    &buf,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	filename := "contacts-" + h.clock.Now().UTC().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *handlers) getContact(c *gin.Context) {
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
	ownerID, err := targetOwner(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	contact, err := h.svc.Queries().ContactDetail.Query(c.Request.Context(), query.ContactDetailInput{
		Actor:     actor,
		OwnerID:   ownerID,
		ContactID: id,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, msgContactRetrieved, gin.H{"contact": contactView(*contact)})
}

func (h *handlers) updateContact(c *gin.Context) {
	var body contactPatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, types.InvalidArgument(msgInvalidBody))
		return
	}
	h.update(c, body.patch(), nil)
}

func (h *handlers) uploadContactPhoto(c *gin.Context) {
	if !isMultipart(c) {
		h.fail(c, types.InvalidArgument("multipart/form-data body required"))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+(1<<20))
	upload, err := h.readUpload(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if upload == nil {
		h.fail(c, types.InvalidArgument("photo file is required"))
		return
	}
	h.update(c, types.ContactPatch{}, upload)
}

func (h *handlers) update(c *gin.Context, patch types.ContactPatch, upload *types.PhotoUpload) {
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
	ownerID, err := targetOwner(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var updated types.Contact
	err = h.svc.Commands().ContactUpdate.Execute(c.Request.Context(), command.ContactUpdateInput{
		Actor:     actor,
		ContactID: id,
		OwnerID:   ownerID,
		Patch:     patch,
		Upload:    upload,
		Result:    &updated,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, msgContactUpdated, gin.H{"contact": contactView(updated)})
}

func (h *handlers) deleteContact(c *gin.Context) {
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
	ownerID, err := targetOwner(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.svc.Commands().ContactDelete.Execute(c.Request.Context(), command.ContactDeleteInput{
		Actor:     actor,
		ContactID: id,
		OwnerID:   ownerID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, msgContactDeleted, nil)
}
