package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rumor-ml/commons.systems/bankledger/internal/extract"
	"github.com/rumor-ml/commons.systems/bankledger/internal/logger"
	"github.com/rumor-ml/commons.systems/bankledger/internal/pipeline"
	"github.com/rumor-ml/commons.systems/bankledger/internal/scanner"
	"github.com/rumor-ml/commons.systems/bankledger/internal/tracker"
	"github.com/rumor-ml/commons.systems/bankledger/internal/ui"
)

var (
	inputDir         string
	force            bool
	consolidateAfter bool
)

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVarP(&inputDir, "input", "i", "", "Input directory containing statement documents (required)")
	ingestCmd.Flags().BoolVar(&force, "force", false, "Reprocess statements already in the registry (renamed copies of other statements are still skipped)")
	ingestCmd.Flags().BoolVar(&consolidateAfter, "consolidate", false, "Consolidate per-statement artifacts after the batch")
	_ = ingestCmd.MarkFlagRequired("input")
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse statement documents into per-statement CSV artifacts",
	Long: `Scan a directory for statement documents (.pdf or pre-extracted .txt),
parse each into a sign-corrected transaction CSV, and record it in the
ingestion registry. Statements already ingested, whether by path, by
content fingerprint, or by (account, period), are skipped.`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(verbose)

	ui.Header("Ingesting Bank Statements")
	ui.Step(1, 3, "Scanning input directory")

	extractors := extract.Default()
	files, err := scanner.New(inputDir, extractors).Scan()
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", inputDir, err)
	}
	ui.Success(fmt.Sprintf("Found %d statement document(s)", len(files)))

	// An empty input set is a valid, empty run.
	if len(files) == 0 {
		ui.Info("Nothing to ingest")
		return nil
	}

	ui.Step(2, 3, "Processing documents")
	p := pipeline.New(pipeline.Options{
		Extractors: extractors,
		Store:      tracker.NewStore(cfg.RegistryPath),
		OutputDir:  cfg.OutputDir,
		BankID:     cfg.BankID,
		Force:      force,
		Log:        log,
	})
	result, err := p.Run(files)
	if err != nil {
		return err
	}

	for _, o := range result.Outcomes {
		switch {
		case o.Err != nil:
			ui.Error(fmt.Sprintf("%s: %v", o.Source, o.Err))
		case o.Status == pipeline.StatusRecorded && o.Warning != "":
			ui.Success(fmt.Sprintf("%s → %s (%d transactions)", o.Source, o.OutputPath, o.Transactions))
			ui.Warning(fmt.Sprintf("%s: %s", o.Source, o.Warning))
		case o.Status == pipeline.StatusRecorded:
			ui.Success(fmt.Sprintf("%s → %s (%d transactions)", o.Source, o.OutputPath, o.Transactions))
		default:
			ui.Info(fmt.Sprintf("%s: %s", o.Source, o.Status))
		}
	}

	ui.Step(3, 3, "Summary")
	printSummary(result)

	if consolidateAfter {
		if err := runConsolidation(cfg, log); err != nil {
			return err
		}
	}

	if failed := result.Summary()[pipeline.StatusFailed]; failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed", failed, len(result.Outcomes))
	}
	return nil
}

// printSummary prints per-reason outcome counts in a stable order.
func printSummary(result *pipeline.BatchResult) {
	summary := result.Summary()
	statuses := make([]string, 0, len(summary))
	for s := range summary {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		ui.Info(fmt.Sprintf("%s: %d", s, summary[pipeline.Status(s)]))
	}
	ui.Success(fmt.Sprintf("Recorded %d of %d document(s)", result.Recorded(), len(result.Outcomes)))
}
