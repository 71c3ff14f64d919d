package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"newsdesk/internal/config"
	"newsdesk/internal/payout"
	"newsdesk/internal/store"
)

func main() {
	if err := newRootCmd(openLedger).Execute(); err != nil {
		os.Exit(1)
	}
}

// openLedger loads the ledger from the configured store. A store that cannot
// be reached leaves the ledger session-only, which for a one-shot command
// means nothing is kept.
func openLedger(ctx context.Context, configPath string) (*payout.Ledger, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	kv, closeStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Warn("payout store unavailable, changes will not be kept", "driver", cfg.Store.Driver, "error", err)
	}

	ledger := payout.NewLedger(kv)
	if err := ledger.Load(ctx); err != nil {
		slog.Warn("error loading payout ledger", "error", err)
	}
	return ledger, closeStore, nil
}
