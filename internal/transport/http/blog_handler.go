package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/media"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/service"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

type BlogHandler struct {
	blogs *service.BlogService
}

// RegisterBlogs mounts the blog write routes for editors and admins.
func RegisterBlogs(e *echo.Echo, verifier TokenVerifier, blogs *service.BlogService) {
	h := &BlogHandler{blogs: blogs}

	g := e.Group("/api/admin/blogs", RequireAuth(verifier), RequireEditor())
	g.POST("", h.createBlog)
	g.POST("/media", h.uploadMedia)
	g.PUT("/:id", h.updateBlog)
	g.DELETE("/:id", h.deleteBlog)
}

// createBlog handles POST /api/admin/blogs
func (h *BlogHandler) createBlog(c echo.Context) error {
	principal, _ := CurrentPrincipal(c)
	var req BlogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}
	blog, err := h.blogs.Create(c.Request().Context(), principal, toBlogInput(req))
	if err != nil {
		return respondError(c, "create blog", err)
	}
	return c.JSON(http.StatusCreated, util.Data("data", blog).With("message", "Blog created"))
}

// updateBlog handles PUT /api/admin/blogs/:id
func (h *BlogHandler) updateBlog(c echo.Context) error {
	principal, _ := CurrentPrincipal(c)
	id, ok := parseNumericID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidID, "Invalid blog id"))
	}
	var req BlogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}
	blog, err := h.blogs.Update(c.Request().Context(), principal, id, toBlogInput(req))
	if err != nil {
		return respondError(c, "update blog", err)
	}
	return c.JSON(http.StatusOK, util.Data("data", blog).With("message", "Blog updated"))
}

// deleteBlog handles DELETE /api/admin/blogs/:id
func (h *BlogHandler) deleteBlog(c echo.Context) error {
	principal, _ := CurrentPrincipal(c)
	id, ok := parseNumericID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidID, "Invalid blog id"))
	}
	if err := h.blogs.Delete(c.Request().Context(), principal, id); err != nil {
		return respondError(c, "delete blog", err)
	}
	return c.JSON(http.StatusOK, util.Success("Blog deleted"))
}

// uploadMedia handles POST /api/admin/blogs/media with a multipart "file".
func (h *BlogHandler) uploadMedia(c echo.Context) error {
	principal, _ := CurrentPrincipal(c)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidMedia, "file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidMedia, "unable to read file"))
	}
	defer file.Close()

	stored, err := h.blogs.UploadMedia(c.Request().Context(), principal, media.Upload{
		Reader:      file,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return respondError(c, "upload blog media", err)
	}
	return c.JSON(http.StatusCreated, util.Data("data", stored).With("url", stored.URL))
}

// parseNumericID reads a positive BIGSERIAL id from the :id path parameter.
func parseNumericID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toBlogInput(req BlogRequest) service.BlogInput {
	return service.BlogInput{
		Title:       req.Title,
		Content:     req.Content,
		ContentType: req.ContentType,
	}
}
