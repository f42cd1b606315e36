// Package annotate selects vcfanno annotation profiles for a sample and runs
// the annotation engine over a VCF file.
package annotate

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-anno/internal/fsutil"
	"github.com/inodb/vibe-anno/internal/genome"
	"github.com/inodb/vibe-anno/internal/metadata"
)

// Selector resolves the annotation profiles that apply to a sample into
// configuration and script fragment paths.
type Selector struct {
	logger *zap.Logger
}

// NewSelector creates a selector.
func NewSelector() *Selector {
	return &Selector{logger: zap.NewNop()}
}

// SetLogger sets the logger for skip warnings.
func (s *Selector) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Find returns the annotation fragments for a sample: each applicable
// profile's configuration file plus its companion lua script when present.
// An explicit profile list in the sample metadata overrides automatic
// selection entirely. Profiles whose configuration is not installed for the
// sample's build are skipped with a warning.
func (s *Selector) Find(rec *metadata.SampleRecord) []string {
	profiles := rec.VcfannoProfiles()
	if len(profiles) == 0 {
		profiles = s.defaultProfiles(rec)
	}

	annodir := annotationDir(rec.RefFile())
	var out []string
	for _, profile := range profiles {
		conffn := profile
		if !fsutil.Exists(conffn) {
			conffn = filepath.Join(annodir, profile+".conf")
		}
		if !fsutil.Exists(conffn) {
			s.logger.Warn("vcfanno configuration not found, skipping",
				zap.String("conf", conffn),
				zap.String("build", rec.GenomeBuild()))
			continue
		}
		out = append(out, conffn)
		stem, _ := fsutil.SplitExt(conffn)
		if luafn := stem + ".lua"; fsutil.Exists(luafn) {
			out = append(out, luafn)
		}
	}
	return out
}

// defaultProfiles applies the built-in decision table. All profiles require a
// configured variant caller; any subset may apply:
//   - gemini: population-frequency annotation when exac is installed
//   - somatic: human tumor/normal pairs when cosmic is installed
//   - rnaedit: RNA-seq variant calling
func (s *Selector) defaultProfiles(rec *metadata.SampleRecord) []string {
	if rec.VariantCaller() == "" {
		return nil
	}
	var profiles []string
	if annotateGemini(rec) {
		profiles = append(profiles, "gemini")
	}
	if annotateSomatic(rec) {
		profiles = append(profiles, "somatic")
	}
	if strings.Contains(strings.ToLower(rec.AnalysisType()), "rna-seq") {
		profiles = append(profiles, "rnaedit")
	}
	return profiles
}

func annotateGemini(rec *metadata.SampleRecord) bool {
	exac := rec.VariationResource("exac")
	return exac != "" && fsutil.Exists(exac)
}

func annotateSomatic(rec *metadata.SampleRecord) bool {
	if !genome.IsHuman(rec) || !rec.IsPaired() {
		return false
	}
	cosmic := rec.VariationResource("cosmic")
	return cosmic != "" && fsutil.Exists(cosmic)
}

// annotationDir is the default profile directory installed alongside the
// reference genome: <ref dir>/../config/vcfanno.
func annotationDir(refFile string) string {
	abs, err := filepath.Abs(filepath.Dir(refFile))
	if err != nil {
		abs = filepath.Dir(refFile)
	}
	return filepath.Clean(filepath.Join(abs, "..", "config", "vcfanno"))
}

// SplitFragments separates a fragment list into configuration and script
// fragments by extension.
func SplitFragments(fragments []string) (confFns, luaFns []string) {
	for _, f := range fragments {
		if filepath.Ext(f) == ".lua" {
			luaFns = append(luaFns, f)
		} else {
			confFns = append(confFns, f)
		}
	}
	return confFns, luaFns
}
