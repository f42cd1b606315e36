package genome

import (
	"strings"

	"github.com/inodb/vibe-anno/internal/metadata"
)

// IsHuman reports whether the sample's genome is human, optionally restricted
// to specific build families ("37", "38"). Without a build filter an explicit
// human alias in the metadata is decisive. Build membership is checked by
// exact build-name match; for the 37 family only, a best-effort fallback
// scans the reference contigs for recognized hg19/GRCh37 alternate-scaffold
// names.
func IsHuman(rec *metadata.SampleRecord, builds ...string) bool {
	if len(builds) == 0 && rec.HumanAlias() {
		return true
	}
	if len(builds) == 0 || contains(builds, "37") {
		switch rec.GenomeBuild() {
		case "hg19", "GRCh37":
			return true
		}
		if hasBuild37Contigs(rec) {
			return true
		}
	}
	if len(builds) == 0 || contains(builds, "38") {
		if rec.GenomeBuild() == "hg38" {
			return true
		}
	}
	return false
}

func hasBuild37Contigs(rec *metadata.SampleRecord) bool {
	if rec.RefFile() == "" {
		return false
	}
	contigs, err := FileContigs(rec.RefFile())
	if err != nil {
		return false
	}
	for _, contig := range contigs {
		if strings.HasPrefix(contig.Name, "GL") || strings.Contains(contig.Name, "_gl") {
			if IsBuild37Alias(contig.Name) {
				return true
			}
		}
	}
	return false
}

func contains(xs []string, target string) bool {
	for _, x := range xs {
		if x == target {
			return true
		}
	}
	return false
}
