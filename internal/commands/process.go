package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/bankdata"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/enrich"
	"github.com/bankfeed-dev/bankfeed/internal/ingest"
	"github.com/bankfeed-dev/bankfeed/internal/logger"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/reconcile"
	"github.com/bankfeed-dev/bankfeed/internal/store"
)

func newProcessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Reconcile cached account data against the historic ledger and enrich it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return runProcess(cfgPath)
		},
	}
	return cmd
}

func runProcess(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log := logger.New().With().Str("run_id", uuid.NewString()).Logger()

	payload, err := bankdata.LoadCache(cfg.Data.CachePath)
	if err != nil {
		return fmt.Errorf("no cached account data (run fetch first): %w", err)
	}

	accounts, err := ingest.BuildAccounts(payload)
	if err != nil {
		return fmt.Errorf("ingesting payload: %w", err)
	}
	live := ingest.Transactions(accounts)

	historic, err := readHistoric(cfg.Data.HistoricPath)
	if err != nil {
		return err
	}

	merged := reconcile.Merge(historic, live)
	log.Info().
		Int("historic", len(historic)).
		Int("live", len(live)).
		Int("merged", len(merged)).
		Msg("reconciled transaction sets")

	enricher := enrich.New(cfg.EnrichOptions(), log)
	enriched, recordErrs := enricher.Enrich(merged)
	for _, re := range recordErrs {
		log.Warn().Str("transaction_id", re.TransactionID).Err(re.Err).Msg("record rejected")
	}

	if err := writeEnriched(cfg.Data.OutputPath, enriched); err != nil {
		return err
	}

	log.Info().
		Int("enriched", len(enriched)).
		Int("rejected", len(recordErrs)).
		Str("output", cfg.Data.OutputPath).
		Msg("wrote enriched transactions")
	return nil
}

func readHistoric(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening historic ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := store.ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading historic ledger %s: %w", path, err)
	}
	return txns, nil
}

func writeEnriched(path string, txns []model.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output %s: %w", path, err)
	}
	defer f.Close()

	return store.WriteEnriched(f, txns)
}
