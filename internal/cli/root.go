// Package cli implements the metaform command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/metaform/internal/customer"
	"github.com/mesh-intelligence/metaform/internal/graphql"
	"github.com/mesh-intelligence/metaform/internal/product"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "metaform" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	root := &cobra.Command{
		Use:   "metaform",
		Short: "Edit product and customer metadata through typed forms",
		Long: "Metaform projects free-form key/value metadata onto typed form fields\n" +
			"and composes the form back into a metadata list on submit.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: user config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .metaform-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newProductCmd())
	root.AddCommand(newCustomerCmd())

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(root.ErrOrStderr(), "error:", err)
	return exitCode(err)
}

// exitError carries the exit code chosen for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as an environment failure: storage, filesystem or
// network trouble rather than bad input.
func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// userErrors are the sentinels that always mean bad input, even when they
// surface through a wrapped storage or network error.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidData,
	types.ErrInvalidID,
	types.ErrInvalidFilter,
	types.ErrInvalidName,
	types.ErrInvalidFieldType,
	types.ErrUnknownField,
	product.ErrInvalidPrice,
	product.ErrInvalidQuantity,
	product.ErrIndexOutOfRange,
	product.ErrNoVariant,
	customer.ErrInvalidDiscount,
}

func exitCode(err error) int {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	var rejected *graphql.UserErrorsError
	if errors.As(err, &rejected) {
		return exitUserError
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
