package cmd

import (
	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/spf13/cobra"
)

// gateCmd focused on CI/CD policy enforcement.
var gateCmd = &cobra.Command{
	Use:   "gate [report-path]",
	Short: "Enforce performance thresholds for CI/CD pipelines (fails build on violations)",
	Long: `Classify a Lighthouse JSON report against score and metric thresholds.

Designed specifically for CI/CD integration - fails with non-zero exit code when any
category score falls below its minimum or any metric exceeds its maximum. Every check
is always evaluated and reported, so a single run shows the full regression picture.

Default thresholds: 90 for all category scores; web-vitals defaults for metrics
(e.g. largest-contentful-paint 2500ms, cumulative-layout-shift 0.1).

Side effects (never change the outcome):
- Appends a snapshot to the performance history log (capped at 50 entries)
- Checks JS/CSS bundle sizes in the build output directory
- Regenerates the static HTML report with history charts

Examples:
  # Gate on the default report path
  perfgate gate

  # Gate on an explicit report with custom thresholds
  perfgate gate build/lighthouse.json --thresholds-override "performance:95,interactive:3000"

  # Machine-readable output for downstream tooling
  perfgate gate --output json --output-file gate-result.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGate(cfg, storeManager); err != nil {
			contract.LogFatal("Gate failed", err)
		}
	},
}
