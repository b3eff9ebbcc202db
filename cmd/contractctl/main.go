// Command contractctl is the operator tool for the contract assistant.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"contract-assistant-be/internal/config"
	"contract-assistant-be/pkg/assistant/rules"

	"github.com/spf13/cobra"
)

var (
	rulesFile string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "contractctl",
	Short: "Operator tool for the contract assistant",
	Long: `contractctl inspects and exercises the contract assistant outside the HTTP server.

It reads the same environment (.env) as the REST server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if rulesFile != "" {
			cfg.Assistant.RulesFilePath = rulesFile
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "YAML rule file overriding the built-in keyword lists")

	rootCmd.AddCommand(newProbeCmd(), newNormalizeCmd(), newTailCmd(), newMCPCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadRules(path string) (*rules.Rules, error) {
	if path == "" {
		return rules.Default(), nil
	}
	return rules.LoadFile(path)
}
