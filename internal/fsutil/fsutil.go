// Package fsutil provides small filesystem helpers shared across the annotation pipeline.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Exists reports whether path exists and is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// compound extensions that should be split as a unit
var compoundExts = map[string]bool{
	".gz":  true,
	".bz2": true,
	".zst": true,
}

// SplitExt splits path into (stem, extension), treating compressed double
// extensions as a single extension: "sample.vcf.gz" -> ("sample", ".vcf.gz").
func SplitExt(path string) (string, string) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	if compoundExts[ext] {
		inner := filepath.Ext(stem)
		stem = strings.TrimSuffix(stem, inner)
		ext = inner + ext
	}
	return stem, ext
}
