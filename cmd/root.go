package cmd

import (
	"os"

	"github.com/mezonai/svmharness/config"
	"github.com/mezonai/svmharness/logx"
	"github.com/spf13/cobra"
)

var logConfigPath string

var rootCmd = &cobra.Command{
	Use:   "svmharness",
	Short: "SVM test harness CLI",
	Long:  "Inspect harness sysvars, fetch and serve account fixtures for program tests.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logConfigPath == "" {
			return nil
		}
		logCfg, err := config.LoadLogConfig(logConfigPath)
		if err != nil {
			return err
		}
		logx.Configure(logCfg.Options())
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logConfigPath, "log-config", "", "Path to an .ini file with a [log] section")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
