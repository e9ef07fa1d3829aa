package cmd

import (
	"context"
	"fmt"

	"github.com/mezonai/svmharness/common"
	"github.com/mezonai/svmharness/config"
	"github.com/mezonai/svmharness/fixture"
	"github.com/mezonai/svmharness/jsonx"
	"github.com/mezonai/svmharness/logx"
	"github.com/mezonai/svmharness/rpcfetch"
	"github.com/mezonai/svmharness/types"
	"github.com/spf13/cobra"
)

var (
	fetchURL        string
	fetchRPCConfig  string
	fetchOutPath    string
	fetchCommitment string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch ADDRESS...",
	Short: "Fetch accounts over JSON-RPC into a fixture file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(cmd.Context(), cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "RPC endpoint, overrides the config file")
	fetchCmd.Flags().StringVar(&fetchRPCConfig, "rpc-config", "", "Path to an .ini file with an [rpc] section")
	fetchCmd.Flags().StringVar(&fetchOutPath, "out", "", "Fixture file to write; stdout when empty")
	fetchCmd.Flags().StringVar(&fetchCommitment, "commitment", "", "Commitment level, overrides the config file")
}

func runFetch(ctx context.Context, cmd *cobra.Command, args []string) error {
	addrs, err := common.ParsePubkeys(args)
	if err != nil {
		return err
	}

	rpcCfg := config.DefaultRPCConfig()
	if fetchRPCConfig != "" {
		if rpcCfg, err = config.LoadRPCConfig(fetchRPCConfig); err != nil {
			return err
		}
	}
	if fetchURL != "" {
		rpcCfg.URL = fetchURL
	}
	if fetchCommitment != "" {
		rpcCfg.Commitment = fetchCommitment
	}

	client, err := rpcfetch.NewClient(rpcCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	accounts, err := client.FetchAccounts(ctx, addrs)
	if err != nil {
		return err
	}
	logx.Info("FETCH", fmt.Sprintf("fetched %d accounts from %s", len(accounts), rpcCfg.URL))

	if fetchOutPath != "" {
		return fixture.WriteAccountsFile(fetchOutPath, accounts)
	}
	out := make([]types.KeyedUiAccount, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, types.NewKeyedUiAccount(acc))
	}
	return printJSON(cmd, out)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	content, err := jsonx.MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(content))
	return err
}
