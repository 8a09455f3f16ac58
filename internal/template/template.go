// Package template holds the official project templates bundled with the
// server. Templates are static: defined at compile time, listed and forked,
// never written.
package template

import (
	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/model"
)

// Get returns the official template with the given ID.
// Returns apperror.ErrNotFound for unknown IDs — forking an unknown
// template surfaces as a 404, same as a missing project.
func Get(id string) (*model.Template, error) {
	for i := range Official {
		if Official[i].ID == id {
			return &Official[i], nil
		}
	}
	return nil, apperror.NotFound("template", id)
}

// List returns all official templates in their display order.
// Callers get the shared backing slice; templates are read-only by
// convention, so no copy is made.
func List() []model.Template {
	return Official
}
