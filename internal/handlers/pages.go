package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexPage = "index.html"

// resolveStaticPath maps a request path onto a regular file below root.
func resolveStaticPath(root, relPath string) (string, error) {
	cleanRel := path.Clean("/" + strings.TrimPrefix(strings.TrimSpace(relPath), "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")
	if cleanRel == "" {
		return "", fmt.Errorf("empty path")
	}

	cleanBase, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(cleanBase, filepath.FromSlash(cleanRel)))
	if target != cleanBase && !strings.HasPrefix(target, cleanBase+string(os.PathSeparator)) {
		return "", fmt.Errorf("refusing to serve path outside static root: %s", relPath)
	}

	info, err := os.Stat(target)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", relPath)
	}
	return target, nil
}

// Home serves the landing page.
func Home(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(staticDir, indexPage))
	}
}

// Pages handles every request no route matched. Unknown API paths get a JSON
// 404; page requests resolve to a static file, then to <page>.html, and fall
// back to the landing page with a 404 status.
func Pages(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		if file, err := resolveStaticPath(staticDir, reqPath); err == nil {
			c.File(file)
			return
		}

		page := strings.Trim(reqPath, "/")
		if page != "" && !strings.Contains(page, "/") {
			if file, err := resolveStaticPath(staticDir, page+".html"); err == nil {
				c.File(file)
				return
			}
		}

		index, err := resolveStaticPath(staticDir, indexPage)
		if err != nil {
			c.String(http.StatusNotFound, "not found")
			return
		}
		body, err := os.ReadFile(index)
		if err != nil {
			c.String(http.StatusNotFound, "not found")
			return
		}
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", body)
	}
}
