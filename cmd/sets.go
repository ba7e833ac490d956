package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ltes/parameter"
)

var setsCmd = &cobra.Command{
	Use:   "sets [name]",
	Short: "List the parameter sets, or the values of one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, name := range parameter.Names() {
				fmt.Fprintln(out, name)
			}
			return nil
		}
		p, err := parameter.Get(args[0])
		if err != nil {
			return err
		}
		for _, key := range parameter.Keys() {
			v, err := p.Lookup(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-45s %g\n", key, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setsCmd)
}
