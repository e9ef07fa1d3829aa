package cmd

import (
	"github.com/mezonai/svmharness/config"
	"github.com/mezonai/svmharness/harness"
	"github.com/mezonai/svmharness/sysvar"
	"github.com/mezonai/svmharness/types"
	"github.com/spf13/cobra"
)

var (
	sysvarsConfigPath string
	sysvarsExpire     int
	sysvarsWarp       uint64
	sysvarsAccounts   bool
)

var sysvarsCmd = &cobra.Command{
	Use:   "sysvars",
	Short: "Print harness sysvars after optional warp and blockhash expiry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSysvars(cmd)
	},
}

func init() {
	rootCmd.AddCommand(sysvarsCmd)
	sysvarsCmd.Flags().StringVar(&sysvarsConfigPath, "config", "", "Path to a harness .yml file")
	sysvarsCmd.Flags().IntVar(&sysvarsExpire, "expire", 0, "Number of blockhash expiries to apply")
	sysvarsCmd.Flags().Uint64Var(&sysvarsWarp, "warp", 0, "Slot to warp to before expiring")
	sysvarsCmd.Flags().BoolVar(&sysvarsAccounts, "accounts", false, "Print encoded sysvar accounts instead of values")
}

func runSysvars(cmd *cobra.Command) error {
	var cfg *config.HarnessConfig
	if sysvarsConfigPath != "" {
		var err error
		if cfg, err = config.LoadHarnessConfig(sysvarsConfigPath); err != nil {
			return err
		}
	}
	h, err := harness.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("warp") {
		if err := h.WarpToSlot(sysvarsWarp); err != nil {
			return err
		}
	}
	for i := 0; i < sysvarsExpire; i++ {
		if err := h.ExpireBlockhash(); err != nil {
			return err
		}
	}

	if sysvarsAccounts {
		accounts, err := h.Sysvars().Accounts()
		if err != nil {
			return err
		}
		out := make([]types.KeyedUiAccount, 0, len(accounts))
		for _, acc := range accounts {
			out = append(out, types.NewKeyedUiAccount(acc))
		}
		return printJSON(cmd, out)
	}

	values := make(map[string]sysvar.Sysvar, len(sysvar.Kinds()))
	for _, k := range sysvar.Kinds() {
		values[k.String()] = h.Sysvars().Get(k)
	}
	return printJSON(cmd, values)
}
