package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// table writes aligned columns.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// printFields writes name: value lines.
func printFields(w io.Writer, pairs [][2]string) {
	for _, p := range pairs {
		fmt.Fprintf(w, "%s: %s\n", p[0], p[1])
	}
}

// printMetadataFields writes the projected metadata fields in registry
// order.
func printMetadataFields(w io.Writer, state *types.FormState, reg *metadata.Registry) {
	fmt.Fprintln(w, "metadata:")
	for _, f := range reg.Fields() {
		value := state.String(f.Name)
		if f.IsFlag() {
			value = fmt.Sprint(state.Bool(f.Name))
		}
		fmt.Fprintf(w, "  %s: %s\n", f.Name, value)
	}
}

// printReport writes an inspection report.
func printReport(w io.Writer, r metadata.Report) {
	if r.Clean() {
		fmt.Fprintln(w, "metadata matches the form")
		return
	}
	for _, line := range []struct {
		label string
		keys  []string
	}{
		{"missing", r.Missing},
		{"malformed", r.Malformed},
		{"shadowed", r.Shadowed},
		{"unregistered", r.Unregistered},
	} {
		if len(line.keys) > 0 {
			fmt.Fprintf(w, "%s: %s\n", line.label, strings.Join(line.keys, ", "))
		}
	}
}
