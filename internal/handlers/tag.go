package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contacts-backend/internal/apierr"
	"github.com/yungbote/contacts-backend/internal/services"
	"github.com/yungbote/contacts-backend/internal/types"
)

type TagHandler struct {
	tagService services.TagService
}

func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (th *TagHandler) Create(c *gin.Context) {
	var input types.TagCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	view, err := th.tagService.CreateTag(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (th *TagHandler) List(c *gin.Context) {
	views, err := th.tagService.ListTags(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, views)
}
