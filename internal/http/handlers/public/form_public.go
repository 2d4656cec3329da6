package public

import (
	"errors"

	"github.com/ghostform/ghostform/internal/http/response"
	"github.com/ghostform/ghostform/internal/models"
	"github.com/ghostform/ghostform/internal/service"

	"github.com/gin-gonic/gin"
)

// publicFormView is the schema shape served to embedders. It omits the
// owner and the raw settings block.
type publicFormView struct {
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Fields         models.FieldList `json:"fields"`
	SuccessMessage string           `json:"successMessage,omitempty"`
	RedirectURL    string           `json:"redirectUrl,omitempty"`
	Enabled        bool             `json:"enabled"`
}

// GetFormBySlug serves a form's public schema for rendering.
func (h *Handler) GetFormBySlug(c *gin.Context) {
	form, err := h.FormService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrFormNotFound) {
			respondError(c, response.CodeNotFound, "form not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "could not load form", err)
		return
	}

	response.Success(c, publicFormView{
		Name:           form.Name,
		Slug:           form.Slug,
		Fields:         form.Fields,
		SuccessMessage: form.Settings.SuccessMessage,
		RedirectURL:    form.Settings.RedirectURL,
		Enabled:        form.Settings.Enabled,
	})
}
