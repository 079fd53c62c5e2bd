package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/metaform/internal/customer"
	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

func newCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Work with customers",
	}
	cmd.AddCommand(
		newCustomerImportCmd(),
		newCustomerGetCmd(),
		newCustomerListCmd(),
		newCustomerFormCmd(),
		newCustomerInspectCmd(),
		newCustomerSubmitCmd(),
	)
	return cmd
}

func newCustomerImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import customers from a JSON file",
		Long:  "Import a customer, or an array of customers, as the remote API returns them.\nUse - to read standard input.",
		Args:  cobra.ExactArgs(1),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			var raw json.RawMessage
			if err := readJSONFile(cmd, args[0], &raw); err != nil {
				return err
			}
			var customers []*types.Customer
			if err := decodeOneOrMany(raw, &customers); err != nil {
				return fmt.Errorf("%s: %w: %v", args[0], types.ErrInvalidData, err)
			}

			tbl, err := s.table(types.CustomersTable)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(customers))
			for i, c := range customers {
				if c == nil {
					return fmt.Errorf("customer %d: %w", i, types.ErrInvalidData)
				}
				id, err := tbl.Set(c.ID, c)
				if err != nil {
					return fmt.Errorf("importing customer %q: %w", c.Email, err)
				}
				ids = append(ids, id)
			}
			if flags.jsonMode {
				return printJSON(cmd, ids)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d customers\n", len(ids))
			return nil
		}),
	}
}

func newCustomerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored customer",
		Args:  cobra.ExactArgs(1),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			c, err := s.getCustomer(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, c)
		}),
	}
}

func newCustomerListCmd() *cobra.Command {
	var (
		email  string
		limit  int
		offset int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored customers",
		Args:  cobra.NoArgs,
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			tbl, err := s.table(types.CustomersTable)
			if err != nil {
				return err
			}
			filter := map[string]any{}
			if email != "" {
				filter["email"] = email
			}
			if limit > 0 {
				filter["limit"] = limit
			}
			if offset > 0 {
				filter["offset"] = offset
			}
			results, err := tbl.Fetch(filter)
			if err != nil {
				return err
			}

			customers := make([]*types.Customer, 0, len(results))
			for _, r := range results {
				customers = append(customers, r.(*types.Customer))
			}
			if flags.jsonMode {
				return printJSON(cmd, customers)
			}
			rows := make([][]string, 0, len(customers))
			for _, c := range customers {
				fd := customer.NewFormData(c, s.projection()...)
				rows = append(rows, []string{c.ID, c.Email, strconv.FormatBool(c.IsActive), strconv.FormatBool(fd.IsFee())})
			}
			return table(cmd.OutOrStdout(), []string{"ID", "EMAIL", "ACTIVE", "FEE"}, rows)
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "only the customer with this email")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of customers")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of customers to skip")
	return cmd
}

func newCustomerFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form <id>",
		Short: "Show the customer form",
		Long: "Show the customer as its edit form. With --json the output is a submit\n" +
			"document: edit it and pass it to \"customer submit\".",
		Args: cobra.ExactArgs(1),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			c, err := s.getCustomer(args[0])
			if err != nil {
				return err
			}
			data := customer.NewFormData(c, s.projection()...)
			if flags.jsonMode {
				return printJSON(cmd, data)
			}

			w := cmd.OutOrStdout()
			printFields(w, [][2]string{
				{"id", c.ID},
				{"firstName", data.FirstName},
				{"lastName", data.LastName},
				{"email", data.Email},
				{"isActive", strconv.FormatBool(data.IsActive)},
				{"note", data.Note},
			})
			printMetadataFields(w, data.Metadata, metadata.CustomerRegistry())
			return nil
		}),
	}
}

func newCustomerInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <id>",
		Short: "Compare customer metadata with the form fields",
		Args:  cobra.ExactArgs(1),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			c, err := s.getCustomer(args[0])
			if err != nil {
				return err
			}
			r := metadata.Inspect(c.Metadata, metadata.CustomerRegistry())
			if flags.jsonMode {
				return printJSON(cmd, r)
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		}),
	}
}

func newCustomerSubmitCmd() *cobra.Command {
	var (
		sets   []string
		remote bool
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "submit <id> [file]",
		Short: "Submit the customer form",
		Long: "Submit the customer form. The form starts from the stored customer; a\n" +
			"submit document (see \"customer form --json\") replaces the fields it names,\n" +
			"metadata fields included, and leaves the rest as stored. --set assigns\n" +
			"metadata fields by name, for example --set isFee=true.",
		Args: cobra.RangeArgs(1, 2),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			c, err := s.getCustomer(args[0])
			if err != nil {
				return err
			}
			data := customer.NewFormData(c, s.projection()...)
			stored := data.Metadata
			if len(args) == 2 {
				if err := readJSONFile(cmd, args[1], &data); err != nil {
					return err
				}
			}
			if data.Metadata == nil {
				data.Metadata = stored
			}
			if err := applySets(data.Metadata, metadata.CustomerRegistry(), sets); err != nil {
				return err
			}

			if dryRun {
				vars, err := customer.BuildUpdate(c, data)
				if err != nil {
					return err
				}
				return printJSON(cmd, vars)
			}
			sub, err := s.submitter(remote)
			if err != nil {
				return err
			}
			vars, err := sub.Customer(cmd.Context(), c, data)
			if err != nil {
				return executorError(err, remote)
			}
			if flags.jsonMode {
				return printJSON(cmd, vars)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated customer %s\n", c.ID)
			return nil
		}),
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set a metadata field (name=value, repeatable)")
	cmd.Flags().BoolVar(&remote, "remote", false, "send the mutation to the configured GraphQL endpoint")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the mutation variables without sending them")
	return cmd
}
