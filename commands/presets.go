package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roniherschmann/go-checkid/internal/alphabet"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the bundled alphabets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tRADIX\tFOLD CASE\tSYMBOLS")
			for _, p := range alphabet.Presets() {
				fmt.Fprintf(tw, "%s\t%d\t%t\t%s\n", p.Name, p.Alphabet.Radix(), p.FoldCase, p.Alphabet.String())
			}
			return tw.Flush()
		},
	}
}
