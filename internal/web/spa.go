// Package web serve o frontend compilado com fallback para index.html.
package web

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
)

// RegisterSPA instala o NoRoute: rotas /api desconhecidas respondem 404 JSON;
// o resto serve arquivos de dir, caindo em index.html quando o arquivo não existe.
// Sem index.html em dir, tudo que não casar vira 404.
func RegisterSPA(r *gin.Engine, dir string) bool {
	index := filepath.Join(dir, "index.html")
	_, err := os.Stat(index)
	hasFrontend := dir != "" && err == nil

	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			httperr.NotFound(c, "not_found", "Rota não encontrada.")
			return
		}

		if !hasFrontend || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			httperr.NotFound(c, "not_found", "Rota não encontrada.")
			return
		}

		// path.Clean com "/" na frente impede sair de dir
		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(index)
	})

	return hasFrontend
}
