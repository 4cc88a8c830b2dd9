package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer   abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearer    ", "", false},
		{"Token abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := bearerToken(tc.header)
		if token != tc.token || ok != tc.ok {
			t.Fatalf("bearerToken(%q) = %q, %v; want %q, %v", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestRequireAuthRejections(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	user, _ := srv.seed(t, "Viewer", "viewer@example.com", domain.RoleViewer)

	expired, _, err := util.NewJWTManager(testSecret, time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	foreign, _, err := util.NewJWTManager("another-secret", time.Hour).Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	srv.e.ServeHTTP(rec, req)
	expectError(t, rec, http.StatusUnauthorized, CodeMissingToken)

	expectError(t, srv.do(t, http.MethodGet, "/api/me", nil, "not-a-jwt"), http.StatusForbidden, CodeInvalidToken)
	expectError(t, srv.do(t, http.MethodGet, "/api/me", nil, expired), http.StatusForbidden, CodeInvalidToken)
	expectError(t, srv.do(t, http.MethodGet, "/api/me", nil, foreign), http.StatusForbidden, CodeInvalidToken)
}

func TestRoleGate(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	_, viewer := srv.seed(t, "Viewer", "viewer@example.com", domain.RoleViewer)
	_, editor := srv.seed(t, "Editor", "editor@example.com", domain.RoleEditor)
	_, admin := srv.seed(t, "Admin", "admin@example.com", domain.RoleAdmin)

	blog := BlogRequest{Title: "Post", Content: "Body"}

	expectError(t, srv.do(t, http.MethodGet, "/api/admin/users", nil, viewer), http.StatusForbidden, CodeAdminRequired)
	expectError(t, srv.do(t, http.MethodGet, "/api/admin/users", nil, editor), http.StatusForbidden, CodeAdminRequired)
	expectStatus(t, srv.do(t, http.MethodGet, "/api/admin/users", nil, admin), http.StatusOK)

	expectError(t, srv.do(t, http.MethodPost, "/api/admin/blogs", blog, viewer), http.StatusForbidden, CodeEditorRequired)
	expectStatus(t, srv.do(t, http.MethodPost, "/api/admin/blogs", blog, editor), http.StatusCreated)
	expectStatus(t, srv.do(t, http.MethodPost, "/api/admin/blogs", blog, admin), http.StatusCreated)
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := RequireAdmin()(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectError(t, rec, http.StatusUnauthorized, CodeMissingToken)
}

func TestTokenRoleIsTrustedUntilExpiry(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	user, token := srv.seed(t, "Admin", "admin@example.com", domain.RoleAdmin)
	_, other := srv.seed(t, "Other", "other@example.com", domain.RoleAdmin)

	// Demote the first admin; the previously issued token keeps its claims.
	expectStatus(t, srv.do(t, http.MethodPut, "/api/admin/users/"+user.ID.String(), UpdateRoleRequest{Role: "viewer"}, other), http.StatusOK)
	expectStatus(t, srv.do(t, http.MethodGet, "/api/admin/users", nil, token), http.StatusOK)
}
