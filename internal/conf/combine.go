// Package conf merges vcfanno configuration fragments into the single
// combined configuration consumed by the annotation engine.
package conf

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inodb/vibe-anno/internal/fsutil"
	"github.com/inodb/vibe-anno/internal/metadata"
)

// FillPath rewrites a configuration line of the shape `file="name.vcf.gz"` to
// reference the absolute installed path from the sample metadata. Any other
// line is returned unchanged. An unresolvable reference is fatal for the run.
func FillPath(line string, rec *metadata.SampleRecord) (string, error) {
	if !strings.HasPrefix(line, "file") {
		return line, nil
	}
	parts := strings.Split(line, "=")
	base := filepath.Base(strings.TrimSpace(strings.ReplaceAll(parts[len(parts)-1], `"`, "")))
	full, err := rec.FindFile(base)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("file=%q\n", full), nil
}

// Combine concatenates configuration fragments into one file next to the
// run's output, separating fragments with a blank line. Fragments that do not
// exist are dropped; when none remain the result is empty with no file
// written, which callers treat as "nothing to combine". With fillPaths set,
// every line passes through FillPath; this is skipped when the engine is
// given an explicit base path instead.
func Combine(fragments []string, outBase string, rec *metadata.SampleRecord, fillPaths bool) (string, error) {
	var files []string
	for _, f := range fragments {
		if f != "" && fsutil.Exists(f) {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return "", nil
	}

	stem, _ := fsutil.SplitExt(outBase)
	_, ext := fsutil.SplitExt(files[0])
	outFile := stem + "-combine" + ext

	out, err := os.Create(outFile)
	if err != nil {
		return "", fmt.Errorf("create combined config: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, f := range files {
		if err := appendFragment(w, f, rec, fillPaths); err != nil {
			return "", err
		}
		if _, err := w.WriteString("\n\n"); err != nil {
			return "", fmt.Errorf("write combined config: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flush combined config: %w", err)
	}
	return outFile, nil
}

func appendFragment(w *bufio.Writer, path string, rec *metadata.SampleRecord, fillPaths bool) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open fragment %s: %w", path, err)
	}
	defer in.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text() + "\n"
		if fillPaths {
			line, err = FillPath(line, rec)
			if err != nil {
				return fmt.Errorf("fragment %s: %w", path, err)
			}
		}
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("write combined config: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read fragment %s: %w", path, err)
	}
	return nil
}
