// internal/app/features/pd/templates.go
package pd

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "pd",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
