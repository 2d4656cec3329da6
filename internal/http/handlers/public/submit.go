package public

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/ghostform/ghostform/internal/http/response"
	"github.com/ghostform/ghostform/internal/models"
	"github.com/ghostform/ghostform/internal/service"

	"github.com/gin-gonic/gin"
)

const submitSuccessPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Submission Successful</title>
  <style>
    body {
      font-family: "Space Grotesk", sans-serif;
      display: flex;
      align-items: center;
      justify-content: center;
      min-height: 100vh;
      margin: 0;
      background: #faf9ff;
      color: #1a1625;
    }
    .success {
      text-align: center;
      padding: 48px;
      background: white;
      border-radius: 16px;
      box-shadow: 0 4px 6px rgba(0,0,0,0.1);
    }
    h1 {
      color: #8b5cf6;
      margin-bottom: 16px;
    }
  </style>
</head>
<body>
  <div class="success">
    <h1>%s</h1>
  </div>
</body>
</html>
`

// Submit accepts a public form post. Plain HTML forms send urlencoded
// bodies and get a redirect or a success page back; API callers send
// JSON and get JSON.
func (h *Handler) Submit(c *gin.Context) {
	isFormPost := isURLEncoded(c)
	data, err := parseSubmissionBody(c, isFormPost)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.SubmissionService.Submit(c.Request.Context(), c.Param("slug"), data)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}

	if isFormPost && result.RedirectURL != "" {
		c.Redirect(http.StatusFound, result.RedirectURL)
		return
	}
	if isFormPost {
		page := fmt.Sprintf(submitSuccessPage, html.EscapeString(result.SuccessMessage))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     result.SuccessMessage,
		"redirectUrl": result.RedirectURL,
	})
}

// SubmitRedirect handles browsers that GET the submit URL: known slugs
// bounce to the hosted form page, unknown ones 404.
func (h *Handler) SubmitRedirect(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.FormService.GetBySlug(c.Request.Context(), slug); err != nil {
		if errors.Is(err, service.ErrFormNotFound) {
			respondError(c, response.CodeNotFound, "Form not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "could not load form", err)
		return
	}
	c.Redirect(http.StatusFound, "/form/"+slug)
}

func (h *Handler) respondSubmitError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrFormNotFound):
		respondError(c, response.CodeNotFound, "Form not found", nil)
	case errors.Is(err, service.ErrFormDisabled):
		respondError(c, response.CodeForbidden, "Form is disabled", nil)
	case errors.Is(err, service.ErrRateLimited):
		respondError(c, response.CodeTooManyRequests, "Rate limit exceeded", nil)
	case errors.As(err, &validationErr):
		response.ErrorWithData(c, response.CodeBadRequest, "Validation failed", gin.H{
			"errors": validationErr.Errors,
		})
	default:
		respondError(c, response.CodeInternal, "submission failed", err)
	}
}

func isURLEncoded(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Content-Type"), "application/x-www-form-urlencoded")
}

// parseSubmissionBody reads either body shape into a flat map. For
// urlencoded posts the last value of a repeated key wins.
func parseSubmissionBody(c *gin.Context, isFormPost bool) (models.JSON, error) {
	if isFormPost {
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		data := models.JSON{}
		for key, values := range c.Request.PostForm {
			if len(values) == 0 {
				continue
			}
			data[key] = values[len(values)-1]
		}
		return data, nil
	}

	data := models.JSON{}
	if err := c.ShouldBindJSON(&data); err != nil {
		return nil, err
	}
	return data, nil
}
