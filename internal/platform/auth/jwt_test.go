package auth

import (
	"strings"
	"testing"
	"time"
)

func TestHS256_SignAndVerify(t *testing.T) {
	t.Parallel()

	ts, err := NewHS256Service("secret", "codehub", 0)
	if err != nil {
		t.Fatalf("NewHS256Service: %v", err)
	}

	tok, err := ts.Sign("42")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	id, err := ts.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != "42" {
		t.Fatalf("Verify: got account id %q, want %q", id, "42")
	}
}

func TestHS256_NoTTLTokenHasNoExpiry(t *testing.T) {
	t.Parallel()

	ts, _ := NewHS256Service("secret", "codehub", 0)
	tok, err := ts.Sign("7")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	// 三段式，且校验通过（没有 exp 也不报错）
	if got := len(strings.Split(tok, ".")); got != 3 {
		t.Fatalf("token segments: got %d, want 3", got)
	}
	if _, err := ts.Verify(tok); err != nil {
		t.Fatalf("Verify without exp: %v", err)
	}
}

func TestHS256_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	ts, _ := NewHS256Service("secret", "codehub", time.Hour)
	other, _ := NewHS256Service("another-secret", "codehub", time.Hour)

	tok, err := other.Sign("42")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := ts.Verify(tok); err == nil {
		t.Fatal("Verify: token signed with different secret accepted")
	}
	if _, err := ts.Verify("not.a.token"); err == nil {
		t.Fatal("Verify: malformed token accepted")
	}
	if _, err := ts.Verify(""); err == nil {
		t.Fatal("Verify: empty token accepted")
	}
}

func TestHS256_RejectsExpired(t *testing.T) {
	t.Parallel()

	ts, _ := NewHS256Service("secret", "codehub", time.Nanosecond)
	tok, err := ts.Sign("42")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := ts.Verify(tok); err == nil {
		t.Fatal("Verify: expired token accepted")
	}
}

func TestHS256_RejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	ts, _ := NewHS256Service("secret", "codehub", time.Hour)
	other, _ := NewHS256Service("secret", "someone-else", time.Hour)

	tok, err := other.Sign("42")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := ts.Verify(tok); err == nil {
		t.Fatal("Verify: token from another issuer accepted")
	}
}
