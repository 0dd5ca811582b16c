package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/bankdata"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/logger"
)

// Environment variables expected in user.env.
const (
	envSecretID  = "BANKDATA_SECRET_ID"
	envSecretKey = "BANKDATA_SECRET_KEY"
)

func newFetchCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch fresh account data from the aggregator into the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return runFetch(cmd, cfgPath, envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env", "user.env", "env file holding the aggregator credentials")

	return cmd
}

func runFetch(cmd *cobra.Command, cfgPath, envFile string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log := logger.New().With().Str("run_id", uuid.NewString()).Logger()
	ctx := logger.WithContext(cmd.Context(), log)

	// Credentials live in user.env, never in the config file.
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}
	secretID := os.Getenv(envSecretID)
	secretKey := os.Getenv(envSecretKey)
	if secretID == "" || secretKey == "" {
		return fmt.Errorf("%s and %s must be set in %s", envSecretID, envSecretKey, envFile)
	}

	if cfg.API.RequisitionID == "" {
		return fmt.Errorf("api.requisition_id is not set in %s", cfgPath)
	}

	client := bankdata.NewClient(cfg.API.BaseURL, log)
	if err := client.Authenticate(ctx, secretID, secretKey); err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}

	payload, err := client.FetchUser(ctx, cfg.API.RequisitionID)
	if err != nil {
		return fmt.Errorf("fetching user data: %w", err)
	}

	if err := bankdata.SaveCache(cfg.Data.CachePath, payload); err != nil {
		return err
	}

	log.Info().
		Int("accounts", len(payload.Accounts)).
		Str("cache", cfg.Data.CachePath).
		Msg("fetched account data")
	return nil
}
