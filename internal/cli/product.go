package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/internal/product"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Work with products",
	}
	cmd.AddCommand(
		newProductImportCmd(),
		newProductGetCmd(),
		newProductListCmd(),
		newProductFormCmd(),
		newProductInspectCmd(),
		newProductSubmitCmd(),
		newProductReorderImagesCmd(),
		newProductUploadImageCmd(),
	)
	return cmd
}

func newProductImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import products from a JSON file",
		Long:  "Import a product, or an array of products, as the remote API returns them.\nUse - to read standard input.",
		Args:  cobra.ExactArgs(1),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			var raw json.RawMessage
			if err := readJSONFile(cmd, args[0], &raw); err != nil {
				return err
			}
			var products []*types.Product
			if err := decodeOneOrMany(raw, &products); err != nil {
				return fmt.Errorf("%s: %w: %v", args[0], types.ErrInvalidData, err)
			}

			tbl, err := s.table(types.ProductsTable)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(products))
			for i, p := range products {
				if p == nil {
					return fmt.Errorf("product %d: %w", i, types.ErrInvalidData)
				}
				id, err := tbl.Set(p.ID, p)
				if err != nil {
					return fmt.Errorf("importing product %q: %w", p.Name, err)
				}
				ids = append(ids, id)
			}
			if flags.jsonMode {
				return printJSON(cmd, ids)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d products\n", len(ids))
			return nil
		}),
	}
}

func newProductGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored product",
		Args:  cobra.ExactArgs(1),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			p, err := s.getProduct(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		}),
	}
}

func newProductListCmd() *cobra.Command {
	var (
		nameContains string
		limit        int
		offset       int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored products",
		Args:  cobra.NoArgs,
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			tbl, err := s.table(types.ProductsTable)
			if err != nil {
				return err
			}
			filter := map[string]any{}
			if nameContains != "" {
				filter["name_contains"] = nameContains
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

			products := make([]*types.Product, 0, len(results))
			for _, r := range results {
				products = append(products, r.(*types.Product))
			}
			if flags.jsonMode {
				return printJSON(cmd, products)
			}
			rows := make([][]string, 0, len(products))
			for _, p := range products {
				rows = append(rows, []string{p.ID, p.Name, p.ProductType.Name, strconv.Itoa(len(p.Metadata))})
			}
			return table(cmd.OutOrStdout(), []string{"ID", "NAME", "TYPE", "METADATA"}, rows)
		}),
	}
	cmd.Flags().StringVar(&nameContains, "name-contains", "", "only products whose name contains this text")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of products")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of products to skip")
	return cmd
}

func newProductFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form <id>",
		Short: "Show the product form",
		Long: "Show the product as its edit form. With --json the output is a submit\n" +
			"document: edit it and pass it to \"product submit\".",
		Args: cobra.ExactArgs(1),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			p, err := s.getProduct(args[0])
			if err != nil {
				return err
			}
			data := productSubmitData(p, s.projection())
			if flags.jsonMode {
				return printJSON(cmd, data)
			}

			w := cmd.OutOrStdout()
			printFields(w, [][2]string{
				{"id", p.ID},
				{"name", data.Name},
				{"basePrice", data.BasePrice},
				{"category", data.Category},
				{"collections", strings.Join(data.Collections, ", ")},
				{"chargeTaxes", strconv.FormatBool(data.ChargeTaxes)},
				{"isPublished", strconv.FormatBool(data.IsPublished)},
				{"publicationDate", data.PublicationDate},
				{"seoTitle", data.SEOTitle},
				{"seoDescription", data.SEODescription},
				{"sku", data.SKU},
				{"trackInventory", strconv.FormatBool(data.TrackInventory)},
			})
			if attrs := product.AttributeInputs(p); len(attrs) > 0 {
				fmt.Fprintln(w, "attributes:")
				for _, a := range attrs {
					fmt.Fprintf(w, "  %s: %s\n", a.Label, strings.Join(a.Value, ", "))
				}
			}
			if len(data.UpdateStocks) > 0 {
				fmt.Fprintln(w, "stocks:")
				for _, row := range data.UpdateStocks {
					fmt.Fprintf(w, "  %s: %s\n", row.Label, row.Value)
				}
			}
			printMetadataFields(w, data.Metadata, metadata.ProductRegistry())
			return nil
		}),
	}
}

func newProductInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <id>",
		Short: "Compare product metadata with the form fields",
		Args:  cobra.ExactArgs(1),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			p, err := s.getProduct(args[0])
			if err != nil {
				return err
			}
			r := metadata.Inspect(p.Metadata, metadata.ProductRegistry())
			if flags.jsonMode {
				return printJSON(cmd, r)
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		}),
	}
}

func newProductSubmitCmd() *cobra.Command {
	var (
		sets   []string
		remote bool
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "submit <id> [file]",
		Short: "Submit the product form",
		Long: "Submit the product form. The form starts from the stored product; a\n" +
			"submit document (see \"product form --json\") replaces the fields it names,\n" +
			"metadata fields included, and leaves the rest as stored. --set assigns\n" +
			"metadata fields by name.",
		Args: cobra.RangeArgs(1, 2),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			p, err := s.getProduct(args[0])
			if err != nil {
				return err
			}
			data := productSubmitData(p, s.projection())
			stored := data.Metadata
			if len(args) == 2 {
				if err := readJSONFile(cmd, args[1], &data); err != nil {
					return err
				}
			}
			if data.Metadata == nil {
				data.Metadata = stored
			}
			if err := applySets(data.Metadata, metadata.ProductRegistry(), sets); err != nil {
				return err
			}

			if dryRun {
				u, err := product.BuildUpdate(p, data)
				if err != nil {
					return err
				}
				return printJSON(cmd, u.Variables())
			}
			sub, err := s.submitter(remote)
			if err != nil {
				return err
			}
			u, err := sub.Product(cmd.Context(), p, data)
			if err != nil {
				return executorError(err, remote)
			}
			if flags.jsonMode {
				return printJSON(cmd, u.Variables())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated product %s\n", p.ID)
			return nil
		}),
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set a metadata field (name=value, repeatable)")
	cmd.Flags().BoolVar(&remote, "remote", false, "send the mutation to the configured GraphQL endpoint")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the mutation variables without sending them")
	return cmd
}

func newProductReorderImagesCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "reorder-images <id> <from> <to>",
		Short: "Move a product image to a new position",
		Args:  cobra.ExactArgs(3),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("from %q: %w", args[1], product.ErrIndexOutOfRange)
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("to %q: %w", args[2], product.ErrIndexOutOfRange)
			}
			p, err := s.getProduct(args[0])
			if err != nil {
				return err
			}
			sub, err := s.submitter(remote)
			if err != nil {
				return err
			}
			v, err := sub.ReorderImages(cmd.Context(), p, from, to)
			if err != nil {
				return executorError(err, remote)
			}
			if flags.jsonMode {
				return printJSON(cmd, v)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(v.ImagesIDs, "\n"))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "send the mutation to the configured GraphQL endpoint")
	return cmd
}

func newProductUploadImageCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "upload-image <id> <image>",
		Short: "Add an image to a product",
		Args:  cobra.ExactArgs(2),
		RunE: runWithSession(func(cmd *cobra.Command, args []string, s *session) error {
			p, err := s.getProduct(args[0])
			if err != nil {
				return err
			}
			sub, err := s.submitter(remote)
			if err != nil {
				return err
			}
			if err := sub.UploadImage(cmd.Context(), p.ID, args[1]); err != nil {
				return executorError(err, remote)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added image to product %s\n", p.ID)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "send the mutation to the configured GraphQL endpoint")
	return cmd
}

// productSubmitData is the submit document for p as it is stored: the form
// fields, the current attribute selections and the current stock rows.
func productSubmitData(p *types.Product, opts []metadata.Option) product.SubmitData {
	data := product.SubmitData{FormData: product.NewFormData(p, opts...)}
	for _, a := range product.AttributeInputs(p) {
		data.Attributes = append(data.Attributes, product.AttributeSubmit{ID: a.ID, Value: a.Value})
	}
	data.UpdateStocks = product.StockRows(p)
	return data
}

// decodeOneOrMany decodes a JSON object or array of objects into out.
func decodeOneOrMany[T any](raw json.RawMessage, out *[]T) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var one T
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*out = []T{one}
	return nil
}

// executorError marks transport failures of the remote API as system
// errors. Local executor errors and rejected mutations pass through.
func executorError(err error, remote bool) error {
	if remote {
		return sysError(err)
	}
	return err
}
