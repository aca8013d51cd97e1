package dashboard

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"login", "cuts", "cut", "clients", "client", "barbers", "users"}

// Renderer monta um template por página sobre o layout base.html e
// implementa render.HTMLRender do gin.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("base.html").
			Funcs(funcs).
			ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{Template: r.pages[name], Name: "base", Data: data}
}

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	// mesma coluna inverte a direção; coluna nova começa ascendente
	"sortDesc": func(q TableQuery, column string) bool {
		return q.Sort == column && !q.Desc
	},
}
