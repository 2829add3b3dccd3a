// internal/app/features/calendar/templates.go
package calendar

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "calendar",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
