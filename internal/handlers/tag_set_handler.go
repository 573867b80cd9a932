package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finplan/internal/errors"
	"finplan/internal/pagination"
	"finplan/internal/services"
)

// TagSetHandler handles transaction tag set requests.
type TagSetHandler struct {
	tagSetService services.TagSetServicer
}

// NewTagSetHandler creates a new TagSetHandler.
func NewTagSetHandler(tagSetService services.TagSetServicer) *TagSetHandler {
	return &TagSetHandler{tagSetService: tagSetService}
}

// CreateTagSetRequest represents the request payload for creating a tag set
type CreateTagSetRequest struct {
	Title string   `json:"title" binding:"required,max=255"`
	Tags  []string `json:"tags" binding:"required,dive,max=100"`
}

// CreateTagSet handles the creation of a new tag set
// @Summary     Create a tag set
// @Description Create a named, ordered group of tag names for reuse in queries
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTagSetRequest true "Tag set details"
// @Success     201 {object} models.TransactionTagSet "Tag set created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tag-sets [post]
func (h *TagSetHandler) CreateTagSet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTagSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	set, err := h.tagSetService.CreateTagSet(userID, req.Title, req.Tags)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"tag_set": gin.H{
			"id":    set.ID,
			"title": set.Title,
			"tags":  set.TagList(),
		},
	})
}

// GetUserTagSets handles the retrieval of the user's tag sets
// @Summary     Get user tag sets
// @Description Get a paginated list of the authenticated user's tag sets
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.TransactionTagSet] "Paginated tag sets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tag-sets [get]
func (h *TagSetHandler) GetUserTagSets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tagSetService.GetUserTagSets(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
