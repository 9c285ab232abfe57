package models

import (
	"errors"
	"regexp"
	"strings"
)

// RegistryID is the securities-filings registry identifier (a CIK), always
// stored as a 10-digit zero-padded numeric string.
//
// Invariants:
//   - Zero value means "not yet resolved"
//   - Otherwise exactly 10 ASCII digits
type RegistryID struct {
	value string
}

const registryIDWidth = 10

var registryIDPattern = regexp.MustCompile(`^[0-9]{1,10}$`)

// ErrInvalidRegistryID indicates the identifier is not a 1-10 digit number.
var ErrInvalidRegistryID = errors.New("invalid registry id: must be 1-10 digits")

// ParseRegistryID validates and zero-pads an identifier. Surrounding whitespace is ignored.
func ParseRegistryID(raw string) (RegistryID, error) {
	raw = strings.TrimSpace(raw)
	if !registryIDPattern.MatchString(raw) {
		return RegistryID{}, ErrInvalidRegistryID
	}
	return RegistryID{value: strings.Repeat("0", registryIDWidth-len(raw)) + raw}, nil
}

// MustRegistryID parses raw, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustRegistryID(raw string) RegistryID {
	id, err := ParseRegistryID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the padded identifier, or "" when unresolved.
func (r RegistryID) String() string {
	return r.value
}

// IsZero reports whether the identifier is unresolved.
func (r RegistryID) IsZero() bool {
	return r.value == ""
}

// MarshalText keeps the identifier a plain JSON string.
func (r RegistryID) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// UnmarshalText accepts "" as the unresolved identifier.
func (r *RegistryID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*r = RegistryID{}
		return nil
	}
	id, err := ParseRegistryID(string(b))
	if err != nil {
		return err
	}
	*r = id
	return nil
}
