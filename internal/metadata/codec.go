package metadata

import (
	"encoding/json"
	"strings"
)

// DecodeDelimitedList turns a stored list string such as "['A', 'B', 'C']"
// into the comma-joined form value "A,B,C". A leading "[" and a trailing "]"
// are removed, every "'" is removed, and whitespace around each element is
// trimmed. Brackets anywhere else are kept: "A[1],B" decodes unchanged,
// where DecodeDelimitedListLegacy yields "A1,B".
func DecodeDelimitedList(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.ReplaceAll(s, "'", "")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}

// DecodeDelimitedListLegacy reproduces the historical decoder byte for byte:
// the first "[", the first "]", every "'", and only the first space are
// removed. "['A', 'B', 'C']" decodes to "A,B, C".
func DecodeDelimitedListLegacy(raw string) string {
	s := strings.Replace(raw, "[", "", 1)
	s = strings.Replace(s, "]", "", 1)
	s = strings.ReplaceAll(s, "'", "")
	return strings.Replace(s, " ", "", 1)
}

// EncodeDelimitedList splits a comma-joined form value into list items.
// Items are not trimmed; an empty value yields a single empty item.
func EncodeDelimitedList(value string) []string {
	return strings.Split(value, ",")
}

// FormatStoredList renders list items as the flat string the remote API
// returns on read, e.g. ['A', 'B'].
func FormatStoredList(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(item)
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

// ParseBool decodes a serialized JSON boolean. ok is false when raw is not
// exactly a JSON true or false.
func ParseBool(raw string) (value bool, ok bool) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// BoolOrDefault returns the decoded boolean, or def when raw does not parse.
func BoolOrDefault(raw string, def bool) bool {
	if v, ok := ParseBool(raw); ok {
		return v
	}
	return def
}
