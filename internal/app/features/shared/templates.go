// internal/app/features/shared/templates.go
//
// Package shared registers the template partials used across features
// (the navbar). It has no handlers of its own; features import it for the
// registration side effect.
package shared

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "shared",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
