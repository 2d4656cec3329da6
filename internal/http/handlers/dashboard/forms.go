package dashboard

import (
	"errors"
	"strconv"

	"github.com/ghostform/ghostform/internal/http/response"
	"github.com/ghostform/ghostform/internal/service"

	"github.com/gin-gonic/gin"
)

// ListForms returns the caller's forms, newest first.
func (h *Handler) ListForms(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	forms, err := h.FormService.List(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "could not list forms", err)
		return
	}
	response.Success(c, forms)
}

// CreateForm registers a new form.
func (h *Handler) CreateForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var input service.FormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	form, err := h.FormService.Create(userID, input)
	if err != nil {
		h.respondFormError(c, err, "could not create form")
		return
	}
	response.Success(c, form)
}

// GetForm returns one of the caller's forms by ID.
func (h *Handler) GetForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	formID, ok := parseFormID(c)
	if !ok {
		return
	}

	form, err := h.FormService.Get(userID, formID)
	if err != nil {
		h.respondFormError(c, err, "could not load form")
		return
	}
	response.Success(c, form)
}

// UpdateForm replaces a form's definition.
func (h *Handler) UpdateForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	formID, ok := parseFormID(c)
	if !ok {
		return
	}

	var input service.FormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	form, err := h.FormService.Update(c.Request.Context(), userID, formID, input)
	if err != nil {
		h.respondFormError(c, err, "could not update form")
		return
	}
	response.Success(c, form)
}

// DeleteForm removes a form and its submissions.
func (h *Handler) DeleteForm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	formID, ok := parseFormID(c)
	if !ok {
		return
	}

	if err := h.FormService.Delete(c.Request.Context(), userID, formID); err != nil {
		h.respondFormError(c, err, "could not delete form")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) respondFormError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrFormNotFound):
		respondError(c, response.CodeNotFound, "form not found", nil)
	case errors.Is(err, service.ErrForbidden):
		respondError(c, response.CodeForbidden, "you do not have permission to access this form", nil)
	case errors.Is(err, service.ErrFormInvalid):
		respondError(c, response.CodeBadRequest, "form definition invalid", nil)
	case errors.Is(err, service.ErrSlugConflict):
		respondError(c, response.CodeConflict, "form slug already in use", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

func parseFormID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid form id", nil)
		return 0, false
	}
	return uint(id), true
}
