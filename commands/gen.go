package commands

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/roniherschmann/go-checkid/internal/shortid"
)

type codecFlags struct {
	preset  string
	symbols string
	length  int
}

func (f *codecFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "Alphabet preset (alphanum, alpha, lower, upper, numeric, nozero, safe)")
	cmd.Flags().StringVarP(&f.symbols, "symbols", "s", "", "Custom alphabet symbols, overrides --preset")
	cmd.Flags().IntVarP(&f.length, "length", "l", 0, "Total identifier length including the check symbol")
}

// codec fills unset flags from the loaded configuration.
func (f *codecFlags) codec(root *rootOptions, opts ...shortid.Option) (*shortid.Codec, error) {
	length := f.length
	if length == 0 {
		length = root.cfg.Length
	}
	if length < 2 || length > root.cfg.MaxLength {
		return nil, fmt.Errorf("length must be in 2..%d, got %d", root.cfg.MaxLength, length)
	}
	if f.symbols != "" {
		return shortid.NewCustomCodec(f.symbols, length, opts...)
	}
	preset := f.preset
	if preset == "" {
		preset = root.cfg.Preset
	}
	return shortid.NewCodec(preset, length, opts...), nil
}

func newGenCmd(root *rootOptions) *cobra.Command {
	var (
		cf    codecFlags
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Print newly generated identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []shortid.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, shortid.WithSampler(shortid.FromSource(rand.New(rand.NewPCG(seed, seed)))))
			}
			c, err := cf.codec(root, opts...)
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				id, err := c.Generate()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
	cf.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of identifiers to print")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible output (not cryptographically random)")
	return cmd
}
