package public

import "github.com/aqro/aqro/internal/provider"

// Handler serves the customer-facing API: login, container registration
// and the personal dashboard.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
