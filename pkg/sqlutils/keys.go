package sqlutils

import "strings"

// KeyDelimiter joins primary-key components into one path segment.
const KeyDelimiter = ","

// EncodeKey encodes an ordered primary-key tuple into a single path segment
// by joining the rendered components with KeyDelimiter, in key-ordinal
// order.
//
// The encoding is not escaped: components whose text contains the
// delimiter, a path separator or NUL do not round-trip. That is a carried
// limitation of the design, not a case this package handles.
func EncodeKey(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = renderScalar(v)
	}
	return strings.Join(parts, KeyDelimiter)
}

// DecodeKey splits a path segment back into primary-key components. It
// fails with ErrInvalidKey if the component count does not equal arity.
func DecodeKey(segment string, arity int) ([]string, error) {
	parts := strings.Split(segment, KeyDelimiter)
	if len(parts) != arity {
		return nil, ErrInvalidKey
	}
	return parts, nil
}
