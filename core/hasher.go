package core

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
)

// Hasher is a stateless module handle providing canonical encoding and
// digest derivation. All operations are pure and side-effect-free.
type Hasher struct{}

// NewHasher returns a Hasher. It carries no state; any number of
// Hashers are interchangeable.
func NewHasher() Hasher { return Hasher{} }

// CanonicalEncode renders v as JSON with keys sorted lexicographically
// at every object level, no insignificant whitespace, and numbers in
// their original round-tripping form. v must be UTF-8 / JSON encodable.
func (Hasher) CanonicalEncode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("core: canonical encode: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("core: canonical encode: %w", err)
	}
	var buf bytes.Buffer
	if err := writeCanonical(&buf, generic); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(t.String())
	case string:
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(b)
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeCanonical(buf, t[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("core: canonical encode: unsupported type %T", v)
	}
	return nil
}

// ContentDigestOf computes SHA256(bytes).
func (Hasher) ContentDigestOf(b []byte) ContentDigest {
	return sha256.Sum256(b)
}

// FieldDigestOf computes SHA256(bytes ++ 0xFF) with byte 0 zeroed so the
// value fits a BN254 scalar. This drops roughly 8 bits of collision
// resistance, which is acceptable because only collision resistance
// (not the full 256-bit hiding property) is required downstream.
func (Hasher) FieldDigestOf(b []byte) FieldDigest {
	padded := make([]byte, 0, len(b)+1)
	padded = append(padded, b...)
	padded = append(padded, 0xFF)
	d := sha256.Sum256(padded)
	d[0] = 0x00
	return d
}

// RecordLeaf computes the Merkle leaf for r: FieldDigestOf(CanonicalEncode(r)).
func (h Hasher) RecordLeaf(r Record) (FieldDigest, error) {
	enc, err := h.CanonicalEncode(r)
	if err != nil {
		return FieldDigest{}, err
	}
	return h.FieldDigestOf(enc), nil
}
