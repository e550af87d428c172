package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestPasswords(t *testing.T) {
	r := NewRegistry()

	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	v, err := r.Parse(r.MustType(TypeHashedPassword), string(hash))
	if err != nil {
		t.Fatalf("Parse(hashed_password) error = %v", err)
	}

	tests := []struct {
		name  string
		value Value
		plain string
		want  bool
	}{
		{"matching", v, "s3cret", true},
		{"wrong password", v, "guess", false},
		{"no password", mustParse(t, r, TypeHashedPassword, NoPassword), NoPassword, false},
		{"null", Null(r.MustType(TypeHashedPassword)), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckPassword(tt.value, tt.plain)
			if err != nil {
				t.Fatalf("CheckPassword() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := CheckPassword(mustParse(t, r, TypeString, "x"), "x"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("CheckPassword(string) error = %v, want ErrTypeMismatch", err)
	}
}

func TestHashKey(t *testing.T) {
	r := NewRegistry()

	k := r.MustValue(TypeHashedKey, HashKey([]byte("ssh-ed25519 AAAA")))
	text := format(t, r, k, Natural)
	if len(text) != 64 || strings.Trim(text, "0123456789abcdef") != "" {
		t.Errorf("Format(hashed_key) = %q, want 64 lower-case hex digits", text)
	}
	if !r.Equal(mustParse(t, r, TypeHashedKey, text), k) {
		t.Error("hashed_key did not survive a round trip")
	}
	if r.Equal(k, r.MustValue(TypeHashedKey, HashKey([]byte("other")))) {
		t.Error("different keys hashed equal")
	}
}

func TestIdentifierCasts(t *testing.T) {
	r := NewRegistry()

	small := mustParse(t, r, TypeSmallIdentifier, "ffffffffffffffff")
	long, err := r.Cast(small, r.MustType(TypeLong))
	if err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	if got := format(t, r, long, Natural); got != "-1" {
		t.Errorf("Cast(small_identifier -> long) = %q, want -1", got)
	}
	back, err := r.Cast(long, r.MustType(TypeSmallIdentifier))
	if err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	if !r.Equal(back, small) {
		t.Errorf("Cast(long -> small_identifier) = %v, want %v", back.Payload(), small.Payload())
	}
}
