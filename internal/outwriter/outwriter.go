// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteGate prints the gate evaluation results using the configured output format.
func (ow *OutWriter) WriteGate(result *schema.GateResult, cfg *contract.Config, duration time.Duration) error {
	return PrintGateResults(result, cfg, duration)
}

// WriteBundle prints the bundle-size sub-check results using the configured output format.
func (ow *OutWriter) WriteBundle(bundle *schema.BundleReport, cfg *contract.Config) error {
	return PrintBundleResults(bundle, cfg)
}

// WriteHistory prints the persisted history log using the configured output format.
func (ow *OutWriter) WriteHistory(entries []schema.HistoryEntry, cfg *contract.Config) error {
	return PrintHistoryResults(entries, cfg)
}

// WriteStatus prints the history store status using the configured output format.
func (ow *OutWriter) WriteStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	return PrintHistoryStatus(status, cfg)
}

// WriteStats prints aggregate history statistics using the configured output format.
func (ow *OutWriter) WriteStats(stats *schema.HistoryStats, cfg *contract.Config) error {
	return PrintHistoryStats(stats, cfg)
}

// getTableWidth resolves the table width: flag/env override first, then
// the detected terminal width, then a conservative default for CI logs.
func getTableWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80
	}
	return detectedWidth
}
