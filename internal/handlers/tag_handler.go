package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finplan/internal/errors"
	"finplan/internal/services"
)

// TagHandler handles transaction tag requests.
type TagHandler struct {
	tagService services.TagServicer
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService services.TagServicer) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagTransactionRequest represents the request payload for tagging a transaction
type TagTransactionRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// TagTransaction handles attaching a tag to a planned transaction
// @Summary     Tag a transaction
// @Description Attach a tag name to one of the user's planned transactions
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Transaction ID"
// @Param       request body TagTransactionRequest true "Tag name"
// @Success     201 {object} models.TransactionTag "Tag created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id}/tags [post]
func (h *TagHandler) TagTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TagTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tag, err := h.tagService.TagTransaction(userID, c.Param("id"), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// GetTagNames handles the retrieval of the user's distinct tag names
// @Summary     Get tag names
// @Description Get the distinct tag names used across the user's planned transactions
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} string "Tag names"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags [get]
func (h *TagHandler) GetTagNames(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	names, err := h.tagService.GetTagNames(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": names})
}
