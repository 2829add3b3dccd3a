// internal/app/features/forum/templates.go
package forum

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "forum",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
