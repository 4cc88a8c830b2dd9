package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

const defaultSwaggerPath = "docs/swagger.yaml"

// RegisterSwagger serves the OpenAPI document at /swagger/doc.json and the
// Swagger UI under /swagger.
func RegisterSwagger(e *echo.Echo, specPath string) {
	if specPath == "" {
		specPath = filepath.FromSlash(defaultSwaggerPath)
	}
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		data, err := os.ReadFile(specPath)
		if err != nil {
			c.Logger().Errorf("load swagger document: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error(CodeInternal, "unable to load API document"))
		}
		jsonSpec, err := yaml.YAMLToJSON(data)
		if err != nil {
			c.Logger().Errorf("convert swagger document: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error(CodeInternal, "unable to parse API document"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonSpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
