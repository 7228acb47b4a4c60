package staff

import "github.com/aqro/aqro/internal/provider"

// Handler serves the counter-side API: scanning containers, crediting
// rebates, processing returns and the restaurant views.
type Handler struct {
	*provider.Container
}

// New creates the staff handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
