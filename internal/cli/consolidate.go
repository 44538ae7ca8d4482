package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rumor-ml/commons.systems/bankledger/internal/config"
	"github.com/rumor-ml/commons.systems/bankledger/internal/consolidate"
	"github.com/rumor-ml/commons.systems/bankledger/internal/logger"
	"github.com/rumor-ml/commons.systems/bankledger/internal/tracker"
	"github.com/rumor-ml/commons.systems/bankledger/internal/ui"
)

func init() {
	rootCmd.AddCommand(consolidateCmd)
}

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Merge ingested statements into one ledger per account and currency",
	Long: `Read the ingestion registry, group its artifacts by currency and
account number, and write one combined CSV per group, sorted by transaction
date and named with the merged date range.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runConsolidation(cfg, logger.New(verbose))
	},
}

func runConsolidation(cfg config.Config, log zerolog.Logger) error {
	ui.Header("Consolidating Ledgers")

	reg, err := tracker.NewStore(cfg.RegistryPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load ingestion registry: %w", err)
	}

	engine := &consolidate.Engine{BankID: cfg.BankID, Log: log}
	ledgers, err := engine.Run(reg)
	if err != nil {
		return err
	}

	for _, l := range ledgers {
		ui.Success(fmt.Sprintf("%s/%s → %s (%d rows)", l.Currency, l.AccountNumber, l.Path, l.Rows))
	}
	if len(ledgers) == 0 {
		ui.Info("No ingested statements to consolidate")
	}
	return nil
}
