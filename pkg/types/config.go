package types

import "errors"

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend      string `json:"backend" yaml:"backend"`
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	ListDecoding string `json:"list_decoding,omitempty" yaml:"list_decoding,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// List decoding modes for delimited-list metadata values.
// Normalized trims whitespace around every element; legacy reproduces the
// historical single-space strip byte for byte.
const (
	ListDecodingNormalized = "normalized"
	ListDecodingLegacy     = "legacy"
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrListDecodingUnknown = errors.New("unknown list decoding mode")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownListDecodings = map[string]bool{
	"":                     true,
	ListDecodingNormalized: true,
	ListDecodingLegacy:     true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if !knownListDecodings[c.ListDecoding] {
		return ErrListDecodingUnknown
	}
	return nil
}

// EffectiveListDecoding returns the list decoding mode, defaulting to
// normalized when unset.
func (c Config) EffectiveListDecoding() string {
	if c.ListDecoding == "" {
		return ListDecodingNormalized
	}
	return c.ListDecoding
}
