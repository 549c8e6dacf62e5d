// Package commands implements smppctl's cobra command tree.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Ucell-first/smppv5/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "smppctl",
	Short: "Bind, submit, and serve SMPP v5 sessions",
	Long: `smppctl drives the SMPP v5 session runtime from the command line:
bind as an ESME, submit a message, or run a minimal SMSC that accepts
binds and echoes submit_sm with a generated message id.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (defaults to built-in defaults + SMPPCTL_ env vars)")
	rootCmd.AddCommand(bindCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command with a background context, so every
// subcommand's cmd.Context() is always non-nil.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
