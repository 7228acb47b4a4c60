package admin

import "github.com/aqro/aqro/internal/provider"

// Handler serves the management API: container generation, container type
// and restaurant administration and the rebate mapping table.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
