package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var cf codecFlags
	cmd := &cobra.Command{
		Use:   "check ID",
		Short: "Validate an identifier",
		Long: `Validate an identifier against its alphabet, length and check symbol.
Prints "valid" or "invalid"; the exit status is 1 when invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.codec(root)
			if err != nil {
				return err
			}
			if !c.Validate(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return ErrInvalidID
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cf.register(cmd)
	return cmd
}
