package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/metaform/internal/graphql"
	"github.com/mesh-intelligence/metaform/internal/logging"
	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/internal/paths"
	"github.com/mesh-intelligence/metaform/internal/sqlite"
	"github.com/mesh-intelligence/metaform/internal/submit"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// session is an attached store plus the configuration and logger of one
// command invocation.
type session struct {
	settings settings
	logger   *zap.Logger
	store    *sqlite.Backend
}

// openSession loads configuration and attaches the store. Callers must
// close the session.
func openSession() (*session, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, sysError(err)
	}
	st, err := readSettings(v, flags.dataDir)
	if err != nil {
		return nil, sysError(err)
	}
	logger, err := logging.New(st.logLevel)
	if err != nil {
		return nil, sysError(err)
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(logger))
	if err := backend.Attach(st.store); err != nil {
		return nil, sysError(fmt.Errorf("attach store: %w", err))
	}
	return &session{settings: st, logger: logger, store: backend}, nil
}

func (s *session) close() {
	if err := s.store.Detach(); err != nil {
		s.logger.Warn("detach store", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// projection returns the projector options the configuration asks for.
func (s *session) projection() []metadata.Option {
	return []metadata.Option{metadata.WithListDecoding(s.settings.store.EffectiveListDecoding())}
}

// submitter returns a submitter writing to the remote API when remote is
// set and to the local store otherwise.
func (s *session) submitter(remote bool) (*submit.Submitter, error) {
	var exec submit.Executor = submit.NewLocal(s.store, s.logger)
	if remote {
		client, err := graphql.NewClient(s.settings.graphql, graphql.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		exec = client
	}
	return submit.NewSubmitter(exec, s.logger), nil
}

func (s *session) table(name string) (types.Table, error) {
	tbl, err := s.store.GetTable(name)
	if err != nil {
		return nil, sysError(err)
	}
	return tbl, nil
}

func (s *session) getProduct(id string) (*types.Product, error) {
	tbl, err := s.table(types.ProductsTable)
	if err != nil {
		return nil, err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}
	return got.(*types.Product), nil
}

func (s *session) getCustomer(id string) (*types.Customer, error) {
	tbl, err := s.table(types.CustomersTable)
	if err != nil {
		return nil, err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", id, err)
	}
	return got.(*types.Customer), nil
}

// runWithSession opens a session around fn.
func runWithSession(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()
		return fn(cmd, args, s)
	}
}

// readJSONFile decodes a JSON file, or the command's input when path is "-".
func readJSONFile(cmd *cobra.Command, path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err != nil {
		return sysError(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w: %v", path, types.ErrInvalidData, err)
	}
	return nil
}
