package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/metaform/internal/paths"
	"github.com/mesh-intelligence/metaform/internal/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize metaform storage",
		Long:  "Create the configuration file and data directory, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	// Only an explicit --data-dir is pinned in the new config file.
	pinned := ""
	if flags.dataDir != "" {
		if pinned, err = filepath.Abs(flags.dataDir); err != nil {
			return sysError(err)
		}
	}
	created, err := writeConfigIfMissing(configDir, pinned)
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	st, err := readSettings(v, flags.dataDir)
	if err != nil {
		return sysError(err)
	}
	backend := sqlite.NewBackend()
	if err := backend.Attach(st.store); err != nil {
		return sysError(fmt.Errorf("initialize storage: %w", err))
	}
	if err := backend.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "wrote %s\n", paths.ConfigFile(configDir))
	}
	fmt.Fprintf(out, "data directory: %s\n", st.store.DataDir)
	return nil
}
