package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kvgate/kvgate/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "kvgated",
	Short:   "HTTP gateway for a Redis-compatible key-value store",
	Long: `kvgated runs an HTTP gateway next to a Redis-compatible store.

It exposes GET/HGET/HGETALL reads over HTTP, authenticated against the
store itself, and provides outbound HTTP verbs as store commands.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(withConfig(cmd.Context(), cfg))
		setupLogging(cfg.Log.Level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("listen", "", "gateway listen address (default: :4887, env: KVGATE_SERVER_ADDR)")
	rootCmd.PersistentFlags().String("backend-addr", "", "backend store address (default: 127.0.0.1:6379, env: KVGATE_BACKEND_ADDR)")
	rootCmd.PersistentFlags().String("backend-password", "", "backend store password (env: KVGATE_BACKEND_PASSWORD)")
	rootCmd.PersistentFlags().String("audit-path", "", "audit database path (env: KVGATE_AUDIT_PATH)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var configFiles []string
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		configFiles = append(configFiles, path)
	}
	return config.Load(configFiles, cmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
