package core

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/perfgate/perfgate/schema"
)

// bundleExtensions are the artifact types inspected by the bundle sub-check.
var bundleExtensions = []string{".js", ".css"}

// ScanBundle walks the build output directory and sizes every JS/CSS artifact
// against the per-file limit, plus the summed total against the total limit.
// The result is informational only and never affects the gate outcome.
//
// A missing directory returns os.ErrNotExist so the caller can downgrade it
// to a warning and skip the sub-check.
func ScanBundle(dir string, fileLimit, totalLimit int64) (*schema.BundleReport, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	report := &schema.BundleReport{
		FileLimitBytes:  fileLimit,
		TotalLimitBytes: totalLimit,
	}

	// WalkDir visits entries in lexical order, keeping output deterministic.
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isBundleFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		report.Files = append(report.Files, schema.BundleFile{
			Path:        filepath.ToSlash(rel),
			SizeBytes:   info.Size(),
			WithinLimit: info.Size() <= fileLimit,
		})
		report.TotalBytes += info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func isBundleFile(path string) bool {
	for _, ext := range bundleExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
