package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/perfgate/perfgate/schema"
)

// Default well-known paths and limits.
const (
	DefaultReportPath  = "lighthouse-report.json"
	DefaultHistoryPath = "performance-history.json"
	DefaultReportDir   = "performance-report"
	DefaultBundleDir   = "dist"

	// BundleFileLimitBytes is the advisory size limit for a single JS/CSS
	// artifact; the total limit is a 3x multiple of it.
	BundleFileLimitBytes  = 250 * 1024
	BundleTotalLimitBytes = 3 * BundleFileLimitBytes
)

// Environment variables consumed for history annotations.
const (
	CommitEnvVar = "GITHUB_SHA"
	BranchEnvVar = "GITHUB_REF_NAME"

	// LocalRef is recorded when the commit/branch variables are unset.
	LocalRef = "local"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the gate.
// This struct remains the "final, validated" config.
type Config struct {
	ReportPath  string
	HistoryPath string
	ReportDir   string
	BundleDir   string

	Output     schema.OutputMode
	OutputFile string
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// ScoreThresholds is the minimum percentage per category (inclusive).
	ScoreThresholds map[schema.Category]int

	// MetricThresholds is the maximum value per metric (inclusive).
	// Metrics absent from this map are skipped during evaluation.
	MetricThresholds map[schema.Metric]float64

	// Commit and Branch annotate history entries; sourced from environment.
	Commit string
	Branch string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ReportPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	HistoryFile      string `mapstructure:"history-file"`
	ReportDir        string `mapstructure:"report-dir"`
	BundleDir        string `mapstructure:"bundle-dir"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from gateCmd.Flags() ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Threshold overrides from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// ThresholdsRawInput holds threshold definitions from the YAML config file.
// Pointers distinguish "not provided" from a literal zero.
type ThresholdsRawInput struct {
	Performance   *int `mapstructure:"performance"`
	Accessibility *int `mapstructure:"accessibility"`
	BestPractices *int `mapstructure:"best-practices"`
	SEO           *int `mapstructure:"seo"`

	FirstContentfulPaint   *float64 `mapstructure:"first-contentful-paint"`
	LargestContentfulPaint *float64 `mapstructure:"largest-contentful-paint"`
	MaxPotentialFID        *float64 `mapstructure:"max-potential-fid"`
	CumulativeLayoutShift  *float64 `mapstructure:"cumulative-layout-shift"`
	SpeedIndex             *float64 `mapstructure:"speed-index"`
	Interactive            *float64 `mapstructure:"interactive"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ScoreThresholds != nil {
		clone.ScoreThresholds = make(map[schema.Category]int)
		maps.Copy(clone.ScoreThresholds, c.ScoreThresholds)
	}
	if c.MetricThresholds != nil {
		clone.MetricThresholds = make(map[schema.Metric]float64)
		maps.Copy(clone.MetricThresholds, c.MetricThresholds)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	resolveRunRefs(cfg)
	return nil
}

// validateSimpleInputs processes and validates all non-threshold fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ReportPath = input.ReportPathStr
	if cfg.ReportPath == "" {
		cfg.ReportPath = DefaultReportPath
	}
	cfg.HistoryPath = input.HistoryFile
	cfg.ReportDir = input.ReportDir
	cfg.BundleDir = input.BundleDir
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv", input.Output)
	}

	// --- 2. Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be json, sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.JSONBackend, schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// processThresholds merges defaults, config file values and the
// --thresholds-override flag into the final threshold tables.
// Precedence: defaults < config file < command-line flag.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	scores := schema.DefaultScoreThresholds()
	metrics := schema.DefaultMetricThresholds()

	// Override with config file values if provided
	if input.Thresholds.Performance != nil {
		scores[schema.PerformanceCategory] = *input.Thresholds.Performance
	}
	if input.Thresholds.Accessibility != nil {
		scores[schema.AccessibilityCategory] = *input.Thresholds.Accessibility
	}
	if input.Thresholds.BestPractices != nil {
		scores[schema.BestPracticesCategory] = *input.Thresholds.BestPractices
	}
	if input.Thresholds.SEO != nil {
		scores[schema.SEOCategory] = *input.Thresholds.SEO
	}
	if input.Thresholds.FirstContentfulPaint != nil {
		metrics[schema.FirstContentfulPaint] = *input.Thresholds.FirstContentfulPaint
	}
	if input.Thresholds.LargestContentfulPaint != nil {
		metrics[schema.LargestContentfulPaint] = *input.Thresholds.LargestContentfulPaint
	}
	if input.Thresholds.MaxPotentialFID != nil {
		metrics[schema.MaxPotentialFID] = *input.Thresholds.MaxPotentialFID
	}
	if input.Thresholds.CumulativeLayoutShift != nil {
		metrics[schema.CumulativeLayoutShift] = *input.Thresholds.CumulativeLayoutShift
	}
	if input.Thresholds.SpeedIndex != nil {
		metrics[schema.SpeedIndex] = *input.Thresholds.SpeedIndex
	}
	if input.Thresholds.Interactive != nil {
		metrics[schema.Interactive] = *input.Thresholds.Interactive
	}

	// Override with command-line flag if provided (takes precedence)
	if input.ThresholdsStr != "" {
		flagScores, flagMetrics, err := ParseThresholdOverrides(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(scores, flagScores)
		maps.Copy(metrics, flagMetrics)
	}

	// Validate score thresholds
	for cat, threshold := range scores {
		if threshold < 0 || threshold > 100 {
			return fmt.Errorf("score threshold for %s must be between 0 and 100 (received %d)", cat, threshold)
		}
	}
	// Validate metric thresholds
	for m, threshold := range metrics {
		if threshold < 0 {
			return fmt.Errorf("metric threshold for %s cannot be negative (received %g)", m, threshold)
		}
	}

	cfg.ScoreThresholds = scores
	cfg.MetricThresholds = metrics
	return nil
}

// ParseThresholdOverrides parses a string like
// "performance:90,largest-contentful-paint:2500" into score and metric
// threshold maps. Keys must be known category or audit identifiers.
func ParseThresholdOverrides(s string) (map[schema.Category]int, map[schema.Metric]float64, error) {
	scores := make(map[schema.Category]int)
	metrics := make(map[schema.Metric]float64)

	if s == "" {
		return scores, metrics, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, nil, fmt.Errorf("invalid threshold format '%s', expected 'name:value'", part)
		}

		name := strings.TrimSpace(keyValue[0])
		valueStr := strings.TrimSpace(keyValue[1])

		if _, ok := schema.ValidCategories[schema.Category(name)]; ok {
			value, err := strconv.Atoi(valueStr)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid score threshold '%s' for %s: %w", valueStr, name, err)
			}
			scores[schema.Category(name)] = value
			continue
		}

		if _, ok := schema.ValidMetrics[schema.Metric(name)]; ok {
			value, err := strconv.ParseFloat(valueStr, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid metric threshold '%s' for %s: %w", valueStr, name, err)
			}
			metrics[schema.Metric(name)] = value
			continue
		}

		return nil, nil, fmt.Errorf("unknown category or metric '%s'", name)
	}

	return scores, metrics, nil
}

// resolveRunRefs resolves the commit and branch annotations from the
// environment, falling back to the literal "local" when unset.
func resolveRunRefs(cfg *Config) {
	cfg.Commit = envOrLocal(CommitEnvVar)
	cfg.Branch = envOrLocal(BranchEnvVar)
}

func envOrLocal(key string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return LocalRef
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".perfgate_history.db"
	}
	return filepath.Join(homeDir, ".perfgate_history.db")
}
