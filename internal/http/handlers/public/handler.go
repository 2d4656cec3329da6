package public

import "github.com/ghostform/ghostform/internal/provider"

// Handler serves the unauthenticated API surface: signup and login,
// captcha challenges, public form schemas and the submit endpoint.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
