// Package config loads the bankfeed.yaml project configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bankfeed-dev/bankfeed/internal/enrich"
)

// Config represents the top-level bankfeed.yaml configuration.
type Config struct {
	Owner  OwnerConfig  `yaml:"owner"`
	Bank   BankConfig   `yaml:"bank"`
	Enrich EnrichConfig `yaml:"enrich"`
	Data   DataConfig   `yaml:"data"`
	API    APIConfig    `yaml:"api"`
}

// OwnerConfig identifies the account holder.
type OwnerConfig struct {
	// Name as reported for same-owner transfers ("Matthew Stewart").
	Name string `yaml:"name"`
	// TransferName as it appears lowercased in transfer descriptions
	// ("mr matthew david stewart").
	TransferName string `yaml:"transfer_name"`
}

// BankConfig identifies the institution.
type BankConfig struct {
	// Name reported as the counterparty for the bank's own credits.
	Name string `yaml:"name"`
	// InstitutionID is the aggregator's institution identifier.
	InstitutionID string `yaml:"institution_id,omitempty"`
}

// EnrichConfig tunes counterparty canonicalization and categorization.
type EnrichConfig struct {
	Employers          []string `yaml:"employers"`
	StemAliases        []string `yaml:"stem_aliases"`
	AfterStarAliases   []string `yaml:"after_star_aliases"`
	ChildcareReference string   `yaml:"childcare_reference,omitempty"`
}

// DataConfig locates the collaborator-owned data files.
type DataConfig struct {
	CachePath    string `yaml:"cache_path"`    // raw aggregator payloads (JSON)
	HistoricPath string `yaml:"historic_path"` // persisted ledger (CSV)
	OutputPath   string `yaml:"output_path"`   // enriched transactions (JSON)
}

// APIConfig points at the banking-data aggregator. Credentials come from
// user.env, never from this file.
type APIConfig struct {
	BaseURL       string `yaml:"base_url"`
	RequisitionID string `yaml:"requisition_id,omitempty"`
}

// Load reads a bankfeed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock enrichment tables.
func Default() *Config {
	return &Config{
		Bank: BankConfig{
			Name: "santander",
		},
		Enrich: EnrichConfig{
			StemAliases: []string{
				"airbnb",
				"amazon",
				"aviva",
				"vinted",
				"spectator",
				"mcdonalds",
				"dunelm",
				"ikea",
			},
			AfterStarAliases: []string{"zpos", "paypal"},
		},
		Data: DataConfig{
			CachePath:    "data/api_output.json",
			HistoricPath: "data/historic/transactions.csv",
			OutputPath:   "data/transactions.json",
		},
		API: APIConfig{
			BaseURL: "https://bankaccountdata.gocardless.com/api/v2",
		},
	}
}

// EnrichOptions maps the configuration onto the enrichment pipeline.
func (c *Config) EnrichOptions() enrich.Options {
	return enrich.Options{
		Resolver: enrich.ResolverConfig{
			BankName:         c.Bank.Name,
			OwnerName:        c.Owner.Name,
			StemAliases:      c.Enrich.StemAliases,
			AfterStarAliases: c.Enrich.AfterStarAliases,
		},
		Rules: enrich.RulesConfig{
			Employers:          c.Enrich.Employers,
			OwnerFullName:      c.Owner.TransferName,
			ChildcareReference: c.Enrich.ChildcareReference,
		},
	}
}
