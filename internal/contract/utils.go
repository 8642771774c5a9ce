package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/perfgate/perfgate/schema"
)

// Outcome label constants.
const (
	PassValue = "PASS"
	FailValue = "FAIL"
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen)           // passColor marks checks within their thresholds.
	FailColor = color.New(color.FgRed, color.Bold) // failColor marks threshold violations.
	WarnColor = color.New(color.FgYellow)          // warnColor marks advisory conditions.
)

// GetPlainOutcomeLabel returns a plain text label for an outcome. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainOutcomeLabel(outcome schema.Outcome) string {
	if outcome == schema.Passed {
		return PassValue
	}
	return FailValue
}

// GetColorOutcomeLabel returns a colored text label for console output (table).
// It uses GetPlainOutcomeLabel to determine the string, and then applies the
// appropriate color.
func GetColorOutcomeLabel(outcome schema.Outcome) string {
	text := GetPlainOutcomeLabel(outcome)
	if outcome == schema.Passed {
		return PassColor.Sprint(text)
	}
	return FailColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// FormatBytes renders a byte count as KB with one decimal, the unit used
// throughout bundle reporting.
func FormatBytes(n int64) string {
	return fmt.Sprintf("%.1fKB", float64(n)/1024.0)
}
