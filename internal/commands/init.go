package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/config"
)

func newInitCommand() *cobra.Command {
	var ownerName string
	var bankName string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bankfeed project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, ownerName, bankName)
		},
	}

	cmd.Flags().StringVar(&ownerName, "owner", "", "account holder name")
	cmd.Flags().StringVar(&bankName, "bank", "", "bank name used as counterparty for the bank's own credits")

	return cmd
}

func runInit(dir, ownerName, bankName string) error {
	dirs := []string{
		"data",
		filepath.Join("data", "historic"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	if ownerName != "" {
		cfg.Owner.Name = ownerName
	}
	if bankName != "" {
		cfg.Bank.Name = bankName
	}

	cfgPath := filepath.Join(dir, "bankfeed.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	fmt.Printf("Initialized bankfeed project in %s\n", dir)
	return nil
}
