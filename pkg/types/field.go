package types

import (
	"errors"
	"slices"
)

// Encoding determines how a metadata value maps to a form value.
type Encoding string

// Field encodings.
const (
	// EncodingIdentity passes the stored string through unchanged.
	EncodingIdentity Encoding = "identity"
	// EncodingDelimitedList reads a bracketed, quoted list string and writes
	// a list of strings split on commas.
	EncodingDelimitedList Encoding = "delimited-list"
	// EncodingBoolean reads a serialized boolean and exposes a toggle.
	EncodingBoolean Encoding = "boolean"
	// EncodingEnum passes the stored string through when it is one of Choices.
	EncodingEnum Encoding = "enum"
)

var validEncodings = map[Encoding]bool{
	EncodingIdentity:      true,
	EncodingDelimitedList: true,
	EncodingBoolean:       true,
	EncodingEnum:          true,
}

// IsValidEncoding reports whether e is a recognized encoding.
func IsValidEncoding(e Encoding) bool {
	return validEncodings[e]
}

// Field is one metadata-backed form field.
type Field struct {
	Name     string   // Form field name.
	Key      string   // Metadata key it reads and writes.
	Default  string   // Raw value used when no entry carries Key.
	Encoding Encoding // How the raw value maps to the form value.
	Choices  []string // Allowed values for EncodingEnum.
}

// Field definition errors.
var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidKey       = errors.New("invalid metadata key")
	ErrInvalidEncoding  = errors.New("invalid encoding")
	ErrChoicesRequired  = errors.New("enum field requires choices")
	ErrInvalidDefault   = errors.New("default is not valid for the encoding")
	ErrDuplicateField   = errors.New("duplicate field name")
	ErrDuplicateKey     = errors.New("duplicate metadata key")
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidFieldType = errors.New("field value has the wrong type")
)

// Validate checks that the field definition is usable.
func (f Field) Validate() error {
	if f.Name == "" {
		return ErrInvalidName
	}
	if f.Key == "" {
		return ErrInvalidKey
	}
	if !IsValidEncoding(f.Encoding) {
		return ErrInvalidEncoding
	}
	switch f.Encoding {
	case EncodingEnum:
		if len(f.Choices) == 0 {
			return ErrChoicesRequired
		}
		if f.Default != "" && !slices.Contains(f.Choices, f.Default) {
			return ErrInvalidDefault
		}
	case EncodingBoolean:
		if f.Default != "" && f.Default != "true" && f.Default != "false" {
			return ErrInvalidDefault
		}
	}
	return nil
}

// IsFlag reports whether the field holds a boolean form value.
func (f Field) IsFlag() bool {
	return f.Encoding == EncodingBoolean
}
