package annotate

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/inodb/vibe-anno/internal/fsutil"
	"github.com/inodb/vibe-anno/internal/metadata"
)

// bgzipAndIndex ensures path is bgzip-compressed and tabix-indexed, returning
// the compressed path. Compression and indexing are delegated to the htslib
// tools configured for the sample.
func bgzipAndIndex(ctx context.Context, path string, rec *metadata.SampleRecord) (string, error) {
	if !strings.HasSuffix(path, ".gz") {
		gz := path + ".gz"
		if !fsutil.Exists(gz) {
			cmd := exec.CommandContext(ctx, rec.Program("bgzip"), "-f", path)
			if out, err := cmd.CombinedOutput(); err != nil {
				return "", fmt.Errorf("bgzip %s: %w: %s", path, err, out)
			}
		}
		path = gz
	}
	if !fsutil.Exists(path + ".tbi") {
		cmd := exec.CommandContext(ctx, rec.Program("tabix"), "-f", "-p", "vcf", path)
		if out, err := cmd.CombinedOutput(); err != nil {
			return "", fmt.Errorf("tabix index %s: %w: %s", path, err, out)
		}
	}
	return path, nil
}
