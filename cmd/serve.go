package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mezonai/svmharness/config"
	"github.com/mezonai/svmharness/exception"
	"github.com/mezonai/svmharness/harness"
	"github.com/mezonai/svmharness/jsonrpc"
	"github.com/mezonai/svmharness/logx"
	"github.com/mezonai/svmharness/monitoring"
	"github.com/spf13/cobra"
)

var (
	serveAddr        string
	serveMetricsAddr string
	serveConfigPath  string
)

var serveCmd = &cobra.Command{
	Use:   "serve [PATH...]",
	Short: "Serve harness accounts over getAccountInfo and getMultipleAccounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8899", "JSON-RPC listen address")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "Prometheus listen address; disabled when empty")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a harness .yml file")
}

func runServe(paths []string) error {
	if serveMetricsAddr != "" {
		monitoring.InitMetrics()
		mux := http.NewServeMux()
		monitoring.RegisterMetrics(mux)
		metricsServer := &http.Server{Addr: serveMetricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		exception.SafeGo("MetricsServe", func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logx.Error("SERVE", "metrics server stopped:", err)
			}
		})
		defer metricsServer.Close()
	}

	var cfg *config.HarnessConfig
	if serveConfigPath != "" {
		var err error
		if cfg, err = config.LoadHarnessConfig(serveConfigPath); err != nil {
			return err
		}
	}
	h, err := harness.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		if err := h.LoadFixtures(paths...); err != nil {
			return err
		}
	}

	srv := jsonrpc.NewServer(serveAddr, h)
	if cors, ok := jsonrpc.CORSFromEnv(); ok {
		srv.SetCORSConfig(cors)
	}
	if _, err := srv.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logx.Info("SERVE", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
