package schema

import (
	"bytes"
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// NoPassword is the hashed_password value of an account that cannot log in.
const NoPassword = "*"

func inetHandler() handler {
	return handler{
		maxPrecision: Unbounded,
		accepts:      is[Addr],
		parse: func(s string) (Payload, error) {
			addr, err := netip.ParseAddr(s)
			if err != nil {
				return nil, err
			}
			return Addr{addr}, nil
		},
		format: func(p Payload, _ int) string {
			return p.(Addr).String()
		},
		compare: func(a, b Payload) int {
			return a.(Addr).Compare(b.(Addr).Addr)
		},
		normalize: func(p Payload) (Payload, error) {
			if !p.(Addr).IsValid() {
				return nil, errors.New("not an IP address")
			}
			return p, nil
		},
	}
}

func validateHashedPassword(s string) (string, error) {
	if s == NoPassword {
		return s, nil
	}
	if _, err := bcrypt.Cost([]byte(s)); err != nil {
		return "", err
	}
	return s, nil
}

// HashPassword returns the hashed_password payload for plaintext.
func HashPassword(plaintext string) (Text, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return Text(hash), nil
}

// CheckPassword reports whether plaintext matches a hashed_password value.
// Null and NoPassword never match.
func CheckPassword(v Value, plaintext string) (bool, error) {
	if v.typ == nil || v.typ.id != TypeHashedPassword {
		return false, fmt.Errorf("%w: expected hashed_password, got %v", ErrTypeMismatch, v.typ)
	}
	hash, ok := v.p.(Text)
	if !ok || hash == NoPassword {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HashKey returns the hashed_key payload for key.
func HashKey(key []byte) Key {
	return Key(sha256.Sum256(key))
}

func hashedKeyHandler() handler {
	return handler{
		maxPrecision: Unbounded,
		accepts:      is[Key],
		parse: func(s string) (Payload, error) {
			if len(s) != 2*sha256.Size {
				return nil, fmt.Errorf("expected %d hex digits", 2*sha256.Size)
			}
			var k Key
			if _, err := hex.Decode(k[:], []byte(s)); err != nil {
				return nil, err
			}
			return k, nil
		},
		format: func(p Payload, _ int) string {
			k := p.(Key)
			return hex.EncodeToString(k[:])
		},
		compare: func(a, b Payload) int {
			x, y := a.(Key), b.(Key)
			return bytes.Compare(x[:], y[:])
		},
	}
}

func identifierHandler() handler {
	return handler{
		maxPrecision: Unbounded,
		accepts:      is[UUID],
		parse: func(s string) (Payload, error) {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, err
			}
			return UUID(id), nil
		},
		format: func(p Payload, _ int) string {
			return uuid.UUID(p.(UUID)).String()
		},
		compare: func(a, b Payload) int {
			x, y := a.(UUID), b.(UUID)
			return bytes.Compare(x[:], y[:])
		},
	}
}

// smallIdentifierHandler handles 64 bit identifiers written as 16 hex digits.
func smallIdentifierHandler() handler {
	return handler{
		maxPrecision: Unbounded,
		accepts:      is[Int],
		parse: func(s string) (Payload, error) {
			if len(s) != 16 {
				return nil, errors.New("expected 16 hex digits")
			}
			u, err := strconv.ParseUint(strings.ToLower(s), 16, 64)
			if err != nil {
				return nil, err
			}
			return Int(int64(u)), nil
		},
		format: func(p Payload, _ int) string {
			return fmt.Sprintf("%016x", uint64(p.(Int)))
		},
		compare: func(a, b Payload) int {
			return cmp.Compare(uint64(a.(Int)), uint64(b.(Int)))
		},
	}
}
