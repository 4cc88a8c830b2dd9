package util

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Name:  "Tester",
		Email: "user@example.com",
		Role:  domain.RoleEditor,
	}
}

func TestJWTManagerGenerateAndParse(t *testing.T) {
	ttl := time.Minute
	manager := NewJWTManager("top-secret", ttl)

	user := testUser()
	token, expiresAt, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatalf("expected expiry in the future")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != domain.RoleEditor {
		t.Fatalf("expected role editor, got %s", claims.Role)
	}
	if claims.Name != "Tester" || claims.Email != "user@example.com" {
		t.Fatalf("unexpected identity claims: %+v", claims)
	}

	principal := claims.Principal()
	if principal.UserID != user.ID || principal.Role != domain.RoleEditor {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if principal.ExpiresAt.Unix() != expiresAt.Unix() {
		t.Fatalf("expected principal expiry %v, got %v", expiresAt, principal.ExpiresAt)
	}
}

func TestJWTManagerParseExpiredToken(t *testing.T) {
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	clock := issued
	manager := NewJWTManager("secret", time.Hour).WithClock(func() time.Time { return clock })

	token, _, err := manager.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	clock = issued.Add(59 * time.Minute)
	if _, err := manager.Parse(token); err != nil {
		t.Fatalf("expected token to be valid before expiry, got %v", err)
	}

	clock = issued.Add(61 * time.Minute)
	_, err = manager.Parse(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestJWTManagerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Minute).Generate(testUser())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := NewJWTManager("two", time.Minute).Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTManagerRejectsOtherAlgorithms(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute)
	user := testUser()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}

	t.Run("none", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("sign none: %v", err)
		}
		if _, err := manager.Parse(unsigned); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("hs512", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign hs512: %v", err)
		}
		if _, err := manager.Parse(signed); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

func TestJWTManagerRejectsTamperedPayload(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute)
	token, _, err := manager.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}
	forged, _, err := manager.Generate(&domain.User{ID: uuid.New(), Email: "x@example.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]
	if _, err := manager.Parse(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestJWTManagerGenerateRequiresUser(t *testing.T) {
	if _, _, err := NewJWTManager("secret", time.Minute).Generate(nil); err == nil {
		t.Fatalf("expected error for nil user")
	}
}
