package jv

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// DomainValue prefixes every value digest. The version suffix leaves room
// for a future algorithm change.
const DomainValue = "jsondoc/value/v1"

// Digest returns the hex SHA-256 content identity of v.
// Format: SHA256(DomainValue + 0x00 + MarshalCanonical(v)).
//
// Values that are Equal have the same digest.
func Digest(v Value) (string, error) {
	data, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainValue, data), nil
}

// MustDigest is like Digest but panics on error.
// Use only in tests or when v is known to hold finite numbers.
func MustDigest(v Value) string {
	d, err := Digest(v)
	if err != nil {
		panic(err)
	}
	return d
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// MarshalCanonical renders v in RFC 8785 style for hashing. It differs from
// Serialize in two ways:
//  1. strings and keys are NFC normalized
//  2. object keys are ordered by UTF-16 code units, not bytes
//
// Numbers keep the Serialize rendering. An Object whose member names differ
// but normalize to the same NFC form has no canonical rendering and fails
// with ErrType.
func MarshalCanonical(v Value) ([]byte, error) {
	return appendCanonical(nil, v)
}

func appendCanonical(b []byte, v Value) ([]byte, error) {
	var err error
	switch v.kind {
	case KindFloating:
		if v.floating() == 0 {
			// -0.0 and 0.0 are Equal.
			return appendFloat(b, 0)
		}
		return appendFloat(b, v.floating())
	case KindString:
		return appendString(b, norm.NFC.String(*v.str)), nil
	case KindArray:
		b = append(b, '[')
		for i, e := range *v.arr {
			if i > 0 {
				b = append(b, ',')
			}
			if b, err = appendCanonical(b, e); err != nil {
				return nil, err
			}
		}
		return append(b, ']'), nil
	case KindObject:
		type entry struct {
			key   string
			raw   string
			value Value
		}
		entries := make([]entry, len(v.obj.members))
		for i, m := range v.obj.members {
			entries[i] = entry{key: norm.NFC.String(m.key), raw: m.key, value: m.value}
		}
		slices.SortStableFunc(entries, func(x, y entry) int {
			return compareKeysRFC8785(x.key, y.key)
		})
		b = append(b, '{')
		for i, e := range entries {
			if i > 0 {
				if entries[i-1].key == e.key {
					return nil, newError(ErrType, "canonical",
						"member names %q and %q collide after NFC normalization", entries[i-1].raw, e.raw)
				}
				b = append(b, ',')
			}
			b = appendString(b, e.key)
			b = append(b, ':')
			if b, err = appendCanonical(b, e.value); err != nil {
				return nil, err
			}
		}
		return append(b, '}'), nil
	default:
		return appendValue(b, v)
	}
}

// compareKeysRFC8785 orders strings by UTF-16 code units, which differs from
// Go's byte order for characters outside the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
