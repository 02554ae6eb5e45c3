package account

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	valid := []string{"alice_01", "a.b-c_d5", "abcde", strings.Repeat("x", 30)}
	for _, u := range valid {
		if err := ValidateUsername(u); err != nil {
			t.Errorf("ValidateUsername(%q): unexpected error %v", u, err)
		}
	}

	invalid := []string{
		"",
		"abcd",                    // 太短
		strings.Repeat("x", 31),   // 太长
		"has space",
		"bad!char",
		"почта",
	}
	for _, u := range invalid {
		if err := ValidateUsername(u); !errors.Is(err, ErrInvalidUsername) {
			t.Errorf("ValidateUsername(%q): got %v, want ErrInvalidUsername", u, err)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"alice@x.com", "a.b+tag@sub-domain.co.uk"}
	for _, e := range valid {
		if err := ValidateEmail(e); err != nil {
			t.Errorf("ValidateEmail(%q): unexpected error %v", e, err)
		}
	}

	invalid := []string{"", "no-at.com", "a@b", "a b@x.com", "@x.com"}
	for _, e := range invalid {
		if err := ValidateEmail(e); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("ValidateEmail(%q): got %v, want ErrInvalidEmail", e, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("pw123456"); err != nil {
		t.Fatalf("ValidatePassword: unexpected error %v", err)
	}
	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("ValidatePassword: got %v, want ErrPasswordTooShort", err)
	}
}
