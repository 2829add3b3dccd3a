// internal/app/features/assistant/templates.go
package assistant

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "assistant",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
