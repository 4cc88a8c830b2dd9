package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const placeholderPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>Portfolio API</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; background: #111827; color: #f9fafb; min-height: 100vh; display: flex; align-items: center; justify-content: center; }
main { text-align: center; padding: 40px 20px; }
a { color: #93c5fd; }
</style>
</head>
<body>
<main>
  <h1>Portfolio API</h1>
  <p>The site bundle has not been built yet.</p>
  <p>See <a href="/swagger/index.html">the API reference</a> or <a href="/api/health">the health check</a>.</p>
</main>
</body>
</html>`

// apiPrefixes are never answered by the site bundle.
var apiPrefixes = []string{"/api", "/swagger", "/metrics"}

// RegisterPages serves the single page app from staticDir with index.html as
// the fallback for client side routes. Without a built bundle a placeholder
// page is served on "/".
func RegisterPages(e *echo.Echo, staticDir string) {
	staticDir = strings.TrimSpace(staticDir)
	if staticDir == "" || !fileExists(filepath.Join(staticDir, "index.html")) {
		e.GET("/", func(c echo.Context) error {
			return c.HTML(http.StatusOK, placeholderPageHTML)
		})
		return
	}

	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:    staticDir,
		Index:   "index.html",
		HTML5:   true,
		Skipper: isAPIPath,
	}))
}

func isAPIPath(c echo.Context) bool {
	path := c.Request().URL.Path
	for _, prefix := range apiPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
