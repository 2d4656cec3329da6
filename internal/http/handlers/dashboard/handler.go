package dashboard

import "github.com/ghostform/ghostform/internal/provider"

// Handler serves the authenticated dashboard API: form management,
// submission browsing and account actions.
type Handler struct {
	*provider.Container
}

// New creates the dashboard handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
