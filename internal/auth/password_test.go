package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordAndVerify(t *testing.T) {
	password := "geslo123"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == password || strings.Contains(hash, password) {
		t.Fatalf("hash must not contain the plaintext")
	}
	if !VerifyPassword(password, hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatalf("expected wrong password verification to fail")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	b, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestHashPasswordCost(t *testing.T) {
	hash, err := HashPassword("cost-check")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("read cost: %v", err)
	}
	if cost != 10 {
		t.Fatalf("expected cost 10, got %d", cost)
	}
}

func TestVerifyPasswordRejectsNonBcrypt(t *testing.T) {
	if VerifyPassword("geslo123", "geslo123") {
		t.Fatalf("a plaintext stored value must never verify")
	}
	if VerifyPassword("", "") {
		t.Fatalf("empty hash must never verify")
	}
}

func TestHashPasswordTooLong(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("x", 73)); err == nil {
		t.Fatalf("expected error for password over 72 bytes")
	}
}
