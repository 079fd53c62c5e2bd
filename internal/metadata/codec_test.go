package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeDelimitedList(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"['A', 'B', 'C']", "A,B,C"},
		{"['A']", "A"},
		{"A, B", "A,B"},
		{"", ""},
		{"[]", ""},
		{"  ['Pallet A', 'B']  ", "Pallet A,B"},
		{"A[1],B", "A[1],B"},
		{"['A[1]', 'B']", "A[1],B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeDelimitedList(tt.in), "DecodeDelimitedList(%q)", tt.in)
	}
}

func TestDecodeDelimitedListLegacy(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"['A', 'B', 'C']", "A,B, C"},
		{"['A']", "A"},
		{"x[y]z", "xyz"},
		{"[[A]]", "[A]"},
		{"A B C", "AB C"},
		{"A[1],B", "A1,B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeDelimitedListLegacy(tt.in), "DecodeDelimitedListLegacy(%q)", tt.in)
	}
}

func TestEncodeDelimitedList(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, EncodeDelimitedList("A,B,C"))
	assert.Equal(t, []string{"A", " B"}, EncodeDelimitedList("A, B"))
	assert.Equal(t, []string{""}, EncodeDelimitedList(""))
}

func TestFormatStoredList(t *testing.T) {
	assert.Equal(t, "['A', 'B', 'C']", FormatStoredList([]string{"A", "B", "C"}))
	assert.Equal(t, "[]", FormatStoredList(nil))
	assert.Equal(t, "['']", FormatStoredList([]string{""}))
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"true", true, true},
		{"false", false, true},
		{"", false, false},
		{"True", false, false},
		{"1", false, false},
		{"not-json", false, false},
	}
	for _, tt := range tests {
		got, ok := ParseBool(tt.in)
		assert.Equal(t, tt.want, got, "ParseBool(%q)", tt.in)
		assert.Equal(t, tt.wantOK, ok, "ParseBool(%q) ok", tt.in)
	}
	assert.True(t, BoolOrDefault("garbage", true))
	assert.False(t, BoolOrDefault("false", true))
}
