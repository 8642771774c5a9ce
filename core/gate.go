package core

import (
	"fmt"
	"os"
	"time"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/internal/outwriter"
	"github.com/perfgate/perfgate/schema"
)

// ExecuteGate runs the gate command for CI/CD gating.
// It classifies the report against the thresholds, appends a history
// snapshot, runs the bundle-size sub-check, generates the static HTML report,
// and exits non-zero if any evaluated check failed.
//
// Only report loading and extraction can abort the run. History persistence,
// the bundle sub-check and the HTML report are advisory side effects: they
// are always attempted regardless of the aggregate outcome and never change
// it.
func ExecuteGate(cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	result, err := GetGateResults(cfg)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	if err := ow.WriteGate(result, cfg, time.Since(start)); err != nil {
		return err
	}

	// Append to history, regardless of outcome. Failures are advisory.
	entry := NewHistoryEntry(time.Now(), cfg.Commit, cfg.Branch, result.Scores, result.Metrics)
	if err := RecordHistory(mgr.GetHistoryStore(), entry); err != nil {
		contract.LogWarn("history not updated", err)
	}

	// Bundle-size sub-check, informational only.
	runBundleCheck(cfg, ow)

	// Static HTML report, advisory like the history write.
	if err := writeStaticReport(cfg, mgr, result); err != nil {
		contract.LogWarn("static report not written", err)
	}

	if !result.Passed {
		fmt.Printf("%d check(s) failed\n", result.FailedCount())
		os.Exit(1)
	}
	return nil
}

// GetGateResults classifies the report against the thresholds without any
// side effects. This is the evaluation path shared by the CLI and the MCP
// server.
func GetGateResults(cfg *contract.Config) (*schema.GateResult, error) {
	builder := NewGateResultBuilder(cfg)

	// Validate prerequisites
	if _, err := builder.ValidatePrerequisites(); err != nil {
		return nil, err
	}

	// Read and parse the report
	if _, err := builder.LoadReport(); err != nil {
		return nil, err
	}

	// Extract score and metric sets
	if _, err := builder.ExtractSets(); err != nil {
		return nil, err
	}

	// Evaluate thresholds
	builder.BuildResult()
	return builder.GetResult(), nil
}

// runBundleCheck scans the build output directory and prints the size
// comparison. A missing directory downgrades to a warning and skips the
// sub-check; nothing here affects the gate outcome.
func runBundleCheck(cfg *contract.Config, ow *outwriter.OutWriter) {
	bundle, err := ScanBundle(cfg.BundleDir, contract.BundleFileLimitBytes, contract.BundleTotalLimitBytes)
	if err != nil {
		if os.IsNotExist(err) {
			contract.LogWarn(fmt.Sprintf("bundle directory %s not found, skipping size check", cfg.BundleDir), err)
			return
		}
		contract.LogWarn("bundle size check failed", err)
		return
	}
	if err := ow.WriteBundle(bundle, cfg); err != nil {
		contract.LogWarn("bundle report not written", err)
	}
}

// writeStaticReport regenerates the HTML report with the evaluation results
// and the chart-ready history series.
func writeStaticReport(cfg *contract.Config, mgr contract.StoreManager, result *schema.GateResult) error {
	entries, err := mgr.GetHistoryStore().Load()
	if err != nil {
		// Chart data degrades to the current run only.
		entries = nil
	}
	return outwriter.WriteHTMLReport(cfg.ReportDir, result, entries)
}
