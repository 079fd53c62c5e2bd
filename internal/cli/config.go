package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/metaform/internal/graphql"
	"github.com/mesh-intelligence/metaform/internal/logging"
	"github.com/mesh-intelligence/metaform/internal/paths"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Config keys.
const (
	cfgKeyBackend         = "backend"
	cfgKeyDataDir         = "data_dir"
	cfgKeyListDecoding    = "list_decoding"
	cfgKeyLogLevel        = "log_level"
	cfgKeyGraphQLEndpoint = "graphql.endpoint"
	cfgKeyGraphQLToken    = "graphql.token"
	cfgKeyGraphQLTimeout  = "graphql.timeout"
)

// Environment overrides. The token is kept out of config.yaml when set here.
const (
	envLogLevel     = "METAFORM_LOG_LEVEL"
	envGraphQLToken = "METAFORM_GRAPHQL_TOKEN"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend      string         `yaml:"backend"`
	DataDir      string         `yaml:"data_dir,omitempty"`
	ListDecoding string         `yaml:"list_decoding"`
	LogLevel     string         `yaml:"log_level"`
	GraphQL      graphQLSection `yaml:"graphql"`
}

type graphQLSection struct {
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token,omitempty"`
	Timeout  string `yaml:"timeout"`
}

func defaultConfigFile(dataDir string) configFile {
	return configFile{
		Backend:      types.BackendSQLite,
		DataDir:      dataDir,
		ListDecoding: types.ListDecodingNormalized,
		LogLevel:     logging.DefaultLevel,
		GraphQL:      graphQLSection{Timeout: graphql.DefaultTimeout.String()},
	}
}

// settings is everything a command needs from configuration.
type settings struct {
	store    types.Config
	logLevel string
	graphql  graphql.Config
}

// loadConfig reads config.yaml from configDir. A missing file is not an
// error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyListDecoding, types.ListDecodingNormalized)
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetDefault(cfgKeyGraphQLTimeout, graphql.DefaultTimeout)
	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return nil, err
	}
	if err := v.BindEnv(cfgKeyGraphQLToken, envGraphQLToken); err != nil {
		return nil, err
	}

	v.SetConfigFile(paths.ConfigFile(configDir))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// readSettings resolves the data directory and validates what was loaded.
func readSettings(v *viper.Viper, dataDirFlag string) (settings, error) {
	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	s := settings{
		store: types.Config{
			Backend:      v.GetString(cfgKeyBackend),
			DataDir:      dataDir,
			ListDecoding: strings.ToLower(v.GetString(cfgKeyListDecoding)),
		},
		logLevel: v.GetString(cfgKeyLogLevel),
		graphql: graphql.Config{
			Endpoint: v.GetString(cfgKeyGraphQLEndpoint),
			Token:    v.GetString(cfgKeyGraphQLToken),
			Timeout:  v.GetDuration(cfgKeyGraphQLTimeout),
		},
	}
	if err := s.store.Validate(); err != nil {
		return settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// writeConfigIfMissing creates config.yaml with default values. An existing
// file is left alone.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := paths.ConfigFile(configDir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := defaultConfigFile(dataDir)
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
