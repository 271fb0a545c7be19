package leetify

import (
	"github.com/google/uuid"
)

// minSteam64Length is the shortest all-digit string auto-classified as a
// Steam64 ID. Real Steam64 IDs are 17 digits.
const minSteam64Length = 15

type IDKind int

const (
	kindUnset IDKind = iota
	// KindLeetify is a Leetify user id in canonical UUID form.
	KindLeetify
	// KindSteam64 is a Steam64 id kept as its decimal string.
	KindSteam64
)

func (k IDKind) String() string {
	switch k {
	case KindLeetify:
		return "leetify"
	case KindSteam64:
		return "steam64"
	default:
		return "unset"
	}
}

// PlayerID identifies a player either by Leetify id or by Steam64 id.
// The raw text is kept verbatim; Steam64 ids are never converted to integers.
type PlayerID struct {
	kind  IDKind
	value string
}

// ParsePlayerID classifies s: canonical UUIDs are Leetify ids, strings of
// at least 15 decimal digits are Steam64 ids, anything else is rejected.
func ParsePlayerID(s string) (PlayerID, error) {
	switch {
	case isUUID(s):
		return PlayerID{kind: KindLeetify, value: s}, nil
	case isDigits(s) && len(s) >= minSteam64Length:
		return PlayerID{kind: KindSteam64, value: s}, nil
	default:
		return PlayerID{}, invalidIdentifier(s, "neither a uuid nor a steam64 id")
	}
}

// MustParsePlayerID is like ParsePlayerID but panics on error.
func MustParsePlayerID(s string) PlayerID {
	id, err := ParsePlayerID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// LeetifyID builds a Leetify id, requiring the canonical UUID shape.
func LeetifyID(s string) (PlayerID, error) {
	if !isUUID(s) {
		return PlayerID{}, invalidIdentifier(s, "not a uuid")
	}
	return PlayerID{kind: KindLeetify, value: s}, nil
}

// Steam64ID builds a Steam64 id from a string of decimal digits.
func Steam64ID(s string) (PlayerID, error) {
	if !isDigits(s) {
		return PlayerID{}, invalidIdentifier(s, "not a numeric steam64 id")
	}
	return PlayerID{kind: KindSteam64, value: s}, nil
}

func (id PlayerID) Kind() IDKind    { return id.kind }
func (id PlayerID) String() string  { return id.value }
func (id PlayerID) IsZero() bool    { return id.kind == kindUnset }
func (id PlayerID) IsSteam64() bool { return id.kind == KindSteam64 }
func (id PlayerID) IsLeetify() bool { return id.kind == KindLeetify }

// queryParam is the profile endpoints' query key for this id.
func (id PlayerID) queryParam() (string, string, error) {
	switch id.kind {
	case KindSteam64:
		return "steam64_id", id.value, nil
	case KindLeetify:
		return "id", id.value, nil
	default:
		return "", "", invalidIdentifier(id.value, "empty player id")
	}
}

// isUUID accepts only the 36-character 8-4-4-4-12 form; uuid.Validate alone
// would also take braces, urn prefixes and the 32-digit form.
func isUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
