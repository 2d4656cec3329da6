package dashboard

import (
	"errors"

	"github.com/ghostform/ghostform/internal/http/response"
	"github.com/ghostform/ghostform/internal/service"

	"github.com/gin-gonic/gin"
)

// ListSubmissions returns the submissions of one of the caller's forms,
// addressed by slug, newest first.
func (h *Handler) ListSubmissions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	submissions, err := h.SubmissionService.ListForSlug(userID, c.Param("slug"))
	if err != nil {
		h.respondSubmissionListError(c, err)
		return
	}
	response.Success(c, submissions)
}

// ListFormSubmissions returns the submissions of a form addressed by ID.
func (h *Handler) ListFormSubmissions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	formID, ok := parseFormID(c)
	if !ok {
		return
	}

	submissions, err := h.SubmissionService.ListForForm(userID, formID)
	if err != nil {
		h.respondSubmissionListError(c, err)
		return
	}
	response.Success(c, submissions)
}

func (h *Handler) respondSubmissionListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFormNotFound):
		respondError(c, response.CodeNotFound, "form not found", nil)
	case errors.Is(err, service.ErrForbidden):
		respondError(c, response.CodeForbidden, "you do not have permission to access this form", nil)
	default:
		respondError(c, response.CodeInternal, "could not list submissions", err)
	}
}
