// Package cli wires the bankledger commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rumor-ml/commons.systems/bankledger/internal/config"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "bankledger",
	Short:   "Bank statement ingestion and consolidation",
	Version: version,
	Long: `bankledger converts bank statement documents into sign-corrected CSV
transaction ledgers. Each statement is parsed once: an ingestion registry
remembers what was processed, detects renamed copies by content fingerprint,
and blocks duplicate statement periods. Ingested statements can later be
consolidated into one ledger per account and currency.`,
}

var (
	configPath   string
	bankID       string
	outputDir    string
	registryPath string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&bankID, "bank", "", "Bank identifier embedded in artifact filenames")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "Root directory for CSV artifacts")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "Path to the ingestion registry file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed diagnostic logs")
}

// loadConfig resolves the effective configuration: file values (or built-in
// defaults) overridden by whichever flags were set.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if bankID != "" {
		cfg.BankID = bankID
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if registryPath != "" {
		cfg.RegistryPath = registryPath
	}
	return cfg, nil
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
