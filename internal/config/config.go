// Package config loads the engine's reference data from YAML: the
// settlement time zone, the marketplace region, the memo→account map, the
// plug accounts, and the SKU→brand table.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/progami/settleflow/internal/domain"
)

// Config holds the reference data the reconciliation engine is wired with.
type Config struct {
	Zone           string            `yaml:"zone"`
	Region         string            `yaml:"region"`
	Accounts       map[string]string `yaml:"accounts"`
	BankAccount    string            `yaml:"bank_account"`
	PayableAccount string            `yaml:"payable_account"`
	Brands         map[string]string `yaml:"brands"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures the configuration adheres to the engine's requirements
// Returns an error if validation fails
func (c *Config) Validate() error {
	if c.Zone == "" {
		return errors.New("zone cannot be empty")
	}
	if _, err := time.LoadLocation(c.Zone); err != nil {
		return fmt.Errorf("invalid zone %q: %w", c.Zone, err)
	}
	if c.Region == "" {
		return errors.New("region cannot be empty")
	}
	if len(c.Accounts) == 0 {
		return errors.New("accounts map cannot be empty")
	}
	if c.BankAccount == "" {
		return errors.New("bank_account cannot be empty")
	}
	if c.PayableAccount == "" {
		return errors.New("payable_account cannot be empty")
	}
	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Zone)
}

// Brand implements domain.BrandResolver over the configured SKU table.
func (c *Config) Brand(sku string) (string, error) {
	brand, ok := c.Brands[sku]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSKU, sku)
	}
	return brand, nil
}
