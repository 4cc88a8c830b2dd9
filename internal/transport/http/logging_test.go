package http

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"
)

func TestMaskResetToken(t *testing.T) {
	cases := map[string]string{
		"/api/password-reset/abc123":       "/api/password-reset/redacted",
		"/api/password-reset/abc123?x=1":   "/api/password-reset/redacted?x=1",
		"/api/password-reset":              "/api/password-reset",
		"/api/admin/users/1a2b?role=admin": "/api/admin/users/1a2b?role=admin",
	}
	for in, want := range cases {
		if got := maskResetToken(in); got != want {
			t.Fatalf("maskResetToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeBodyRedactsSecrets(t *testing.T) {
	body := []byte(`{"email":"a@b.co","password":"hunter22","nested":{"new_password":"x","token":"abc"},"items":[{"refresh_token":"r"}]}`)
	summary, ok := sanitizeBody(body, "application/json").(map[string]any)
	if !ok {
		t.Fatalf("expected map summary, got %T", summary)
	}
	if summary["email"] != "a@b.co" || summary["password"] != redacted {
		t.Fatalf("unexpected summary %v", summary)
	}
	nested := summary["nested"].(map[string]any)
	if nested["new_password"] != redacted || nested["token"] != redacted {
		t.Fatalf("nested secrets not redacted: %v", nested)
	}
	item := summary["items"].([]any)[0].(map[string]any)
	if item["refresh_token"] != redacted {
		t.Fatalf("array secrets not redacted: %v", item)
	}
}

func TestSanitizeBodyFormsAndText(t *testing.T) {
	form := sanitizeBody([]byte("email=a%40b.co&password=secret"), "application/x-www-form-urlencoded").(map[string]any)
	if form["email"] != "a@b.co" || form["password"] != redacted {
		t.Fatalf("unexpected form summary %v", form)
	}

	if got := sanitizeBody([]byte("my password is secret"), "text/plain"); got != redacted {
		t.Fatalf("expected redacted text, got %v", got)
	}
	if got := sanitizeBody([]byte{0xff, 0x00, 0x01}, "application/octet-stream"); got != "binary" {
		t.Fatalf("expected binary, got %v", got)
	}
	if got := sanitizeBody(nil, "application/json"); got != nil {
		t.Fatalf("expected nil for empty body, got %v", got)
	}
}

func TestSanitizeMultipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", "hello")
	_ = w.WriteField("password", "secret")
	part, _ := w.CreateFormFile("file", "photo.png")
	_, _ = part.Write([]byte{0x89, 'P', 'N', 'G'})
	_ = w.Close()

	summary := sanitizeBody(buf.Bytes(), w.FormDataContentType()).(map[string]any)
	if summary["title"] != "hello" || summary["password"] != redacted || summary["file"] != "binary" {
		t.Fatalf("unexpected multipart summary %v", summary)
	}
}

func TestLimitJSONSizeTruncates(t *testing.T) {
	large := map[string]any{"content": strings.Repeat("x", maxLoggedBody*2)}
	out := limitJSONSize(large).(map[string]any)
	if out["_truncated"] != true {
		t.Fatalf("expected truncation marker, got %v", out)
	}
	preview := out["_preview"].(map[string]any)
	if s := preview["content"].(string); !strings.HasSuffix(s, "...(truncated)") || len(s) > 300 {
		t.Fatalf("unexpected preview length %d", len(s))
	}

	small := map[string]any{"ok": true}
	if got := limitJSONSize(small).(map[string]any); got["ok"] != true {
		t.Fatalf("small payload altered: %v", got)
	}
}
