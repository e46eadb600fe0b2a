package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("server port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Type != "mock" {
		t.Errorf("database type = %s, want mock", cfg.Database.Type)
	}
	if cfg.Checkout.Currency != "THB" {
		t.Errorf("currency = %s, want THB", cfg.Checkout.Currency)
	}
	if cfg.Checkout.TaxRateBps != 700 {
		t.Errorf("tax rate = %d bps, want 700", cfg.Checkout.TaxRateBps)
	}
	if cfg.Checkout.ShippingFees["standard"] != 6000 {
		t.Errorf("standard fee = %d, want 6000", cfg.Checkout.ShippingFees["standard"])
	}
	if cfg.Checkout.ShippingFees["express"] != 12000 {
		t.Errorf("express fee = %d, want 12000", cfg.Checkout.ShippingFees["express"])
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  env: production
server:
  port: "9090"
checkout:
  currency: THB
  tax_rate_bps: 700
  shipping_fees:
    standard: 6000
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("server port = %s, want 9090", cfg.Server.Port)
	}
	if !cfg.IsProduction() {
		t.Error("env should be production")
	}
	// Unset sections keep their defaults.
	if cfg.Outbox.BatchSize != 50 {
		t.Errorf("outbox batch size = %d, want 50", cfg.Outbox.BatchSize)
	}
}

func TestValidateRejectsBadCheckout(t *testing.T) {
	cfg := &Config{
		Checkout: CheckoutConfig{
			Currency:   "THB",
			TaxRateBps: 700,
		},
	}
	if err := cfg.validate(); err == nil {
		t.Error("empty shipping fee table should be rejected")
	}

	cfg.Checkout.ShippingFees = map[string]int64{"standard": -1}
	if err := cfg.validate(); err == nil {
		t.Error("negative shipping fee should be rejected")
	}
}
