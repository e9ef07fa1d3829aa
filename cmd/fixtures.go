package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/mezonai/svmharness/fixture"
	"github.com/spf13/cobra"
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures PATH...",
	Short: "Validate fixture files and list the accounts they hold",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := fixture.Load(args...)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ADDRESS\tLAMPORTS\tOWNER\tDATA\tEXECUTABLE")
		for _, acc := range accounts {
			fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%t\n",
				acc.Address, acc.Account.Lamports, acc.Account.Owner, len(acc.Account.Data), acc.Account.Executable)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(fixturesCmd)
}
