// Package render is the rendering collaborator for the dashboard views. It
// turns RenderRequests into HTML pages; everything visual lives in the
// embedded templates and stays out of the core.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/johnstonks-git/klimata/internal/core/domain"
	"github.com/johnstonks-git/klimata/internal/core/ports"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page wraps a RenderRequest with the one-shot outcome message of the event
// that led to this render.
type Page struct {
	*ports.RenderRequest
	Error  string
	Notice string
}

// Layers exposes the selectable metric layers to the templates.
func (Page) Layers() []domain.MetricLayer {
	return domain.MetricLayers
}

// Renderer implements echo.Renderer over the embedded page templates.
// Template names are the view names; "<view>.html" must exist for every
// member of the view enumeration.
type Renderer struct {
	tpl *template.Template
}

func New() (*Renderer, error) {
	tpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render satisfies the echo.Renderer interface.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tpl.ExecuteTemplate(w, name+".html", data)
}
