package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contacts-backend/internal/apierr"
	"github.com/yungbote/contacts-backend/internal/services"
	"github.com/yungbote/contacts-backend/internal/types"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (ch *ContactHandler) Create(c *gin.Context) {
	var input types.ContactCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	view, err := ch.contactService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (ch *ContactHandler) List(c *gin.Context) {
	filter := types.ContactListFilter{
		Query: c.Query("q"),
		Tag:   c.Query("tag"),
	}
	if raw := c.Query("favorite"); raw != "" {
		fav, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(c, apierr.Validation("invalid favorite: %q", raw))
			return
		}
		filter.Favorite = &fav
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, apierr.Validation("invalid limit: %q", raw))
			return
		}
		filter.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, apierr.Validation("invalid offset: %q", raw))
			return
		}
		filter.Offset = offset
	}

	views, err := ch.contactService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, views)
}

func (ch *ContactHandler) Get(c *gin.Context) {
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := ch.contactService.Get(c.Request.Context(), contactID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

func (ch *ContactHandler) Update(c *gin.Context) {
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input types.ContactUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	view, err := ch.contactService.Update(c.Request.Context(), contactID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

func (ch *ContactHandler) Delete(c *gin.Context) {
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ch.contactService.Delete(c.Request.Context(), contactID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ch *ContactHandler) AddNote(c *gin.Context) {
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input types.NoteCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	view, err := ch.contactService.AddNote(c.Request.Context(), contactID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (ch *ContactHandler) ListNotes(c *gin.Context) {
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := ch.contactService.ListNotes(c.Request.Context(), contactID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, views)
}

func (ch *ContactHandler) DeleteNote(c *gin.Context) {
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "noteID")
	if !ok {
		return
	}
	if err := ch.contactService.DeleteNote(c.Request.Context(), contactID, noteID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ch *ContactHandler) GetHistory(c *gin.Context) {
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := ch.contactService.GetHistory(c.Request.Context(), contactID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, views)
}
