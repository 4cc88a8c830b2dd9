package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/media"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/memory"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/service"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

const (
	testSecret   = "test-secret"
	testPassword = "Sup3rSecret!"
)

type captureMailer struct {
	mu    sync.Mutex
	links []string
}

func (m *captureMailer) SendPasswordReset(_ context.Context, _, _, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, link)
	return nil
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.links)
}

func (m *captureMailer) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.links) == 0 {
		t.Fatal("expected a reset link to be mailed")
	}
	link := m.links[len(m.links)-1]
	return link[strings.LastIndex(link, "/")+1:]
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memoryStorage) Upload(_ context.Context, bucket, objectName, _ string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	s.objects[objectName] = data
	return "http://storage.test/" + bucket + "/" + objectName, nil
}

type serverOptions struct {
	storage        ports.ObjectStorage
	limiter        middleware.RateLimiterStore
	db             Pinger
	trustedProxies []string
}

type testServer struct {
	e      *echo.Echo
	store  *memory.Store
	jwt    *util.JWTManager
	auth   *service.AuthService
	mailer *captureMailer
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	store := memory.NewStore()
	jwt := util.NewJWTManager(testSecret, time.Hour)
	mailer := &captureMailer{}
	auth := service.NewAuthService(store.Users(), store.PasswordResets(), mailer, jwt, service.AuthConfig{
		ResetTTL:        time.Hour,
		BcryptCost:      bcrypt.MinCost,
		FrontendBaseURL: "https://portfolio.test",
	})
	bucket := ""
	if opts.storage != nil {
		bucket = "blog-media"
	}
	blogs := service.NewBlogService(store.Blogs(), opts.storage, media.NewInspector(1<<20, 1024), bucket)

	e := NewRouter(RouterConfig{AllowOrigins: []string{"*"}, TrustedProxies: opts.trustedProxies, DisableMetrics: true})
	RegisterHealth(e, opts.db)
	RegisterAuth(e, auth, opts.limiter)
	RegisterAdminUsers(e, auth, service.NewUserAdminService(store.Users()))
	RegisterBlogs(e, auth, blogs)
	RegisterAdminRecommendations(e, auth, service.NewRecommendationService(store.Recommendations()))
	RegisterAdminContacts(e, auth, service.NewContactService(store.Contacts()))

	return &testServer{e: e, store: store, jwt: jwt, auth: auth, mailer: mailer}
}

// seed stores a user directly and returns it with a signed session token.
func (s *testServer) seed(t *testing.T, name, email string, role domain.Role) (*domain.User, string) {
	t.Helper()
	hash, err := util.HashPassword(testPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := s.store.Users().Create(context.Background(), name, email, hash, role)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, _, err := s.jwt.Generate(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

// expectError asserts the status and the error envelope code.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body["success"])
	}
	if body["code"] != code {
		t.Fatalf("expected code %s, got %v", code, body["code"])
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Fatalf("expected an error message, got %v", body)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) map[string]any {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	return decodeBody(t, rec)
}

func (s *testServer) doRaw(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}
