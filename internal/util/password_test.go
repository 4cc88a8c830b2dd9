package util

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" || hash == "s3cret-pass" {
		t.Fatalf("expected an opaque hash, got %q", hash)
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for repeated calls")
	}
}

func TestHashPasswordCostFallback(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 0)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost returned error: %v", err)
	}
	if cost != DefaultBcryptCost {
		t.Fatalf("expected cost %d, got %d", DefaultBcryptCost, cost)
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword("", bcrypt.MinCost); err == nil {
		t.Fatalf("expected error when password empty")
	}
	if VerifyPassword("", "secret") {
		t.Fatalf("expected empty hash to never verify")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     error
	}{
		{name: "seven chars", password: "1234567", want: ErrPasswordTooShort},
		{name: "eight chars", password: "12345678"},
		{name: "multibyte counted by rune", password: "ééééééé", want: ErrPasswordTooShort},
		{name: "too long for bcrypt", password: strings.Repeat("a", 73), want: ErrPasswordTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com", "x+tag@sub.domain.org"}
	invalid := []string{"", "plain", "a@b", "a b@example.com", "@example.com", "a@.com x"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}
