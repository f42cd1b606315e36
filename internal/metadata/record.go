// Package metadata models the per-sample metadata record consumed by the
// annotation pipeline: a typed view over the sample's YAML description plus
// the raw tree for file lookups.
package metadata

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// SampleRecord is the typed view of one sample's pipeline metadata. Fields are
// optional; zero values mean "not configured". The raw parsed tree is retained
// alongside for recursive file lookups, since installed resources can appear
// at arbitrary depth.
type SampleRecord struct {
	Reference struct {
		Fasta struct {
			Base string `yaml:"base"`
		} `yaml:"fasta"`
	} `yaml:"reference"`
	Build           string `yaml:"genome_build"`
	Analysis        string `yaml:"analysis"`
	GenomeResources struct {
		Aliases struct {
			Human bool `yaml:"human"`
		} `yaml:"aliases"`
		Variation map[string]string `yaml:"variation"`
	} `yaml:"genome_resources"`
	Algorithm struct {
		VariantCaller string   `yaml:"variantcaller"`
		Vcfanno       []string `yaml:"vcfanno"`
		NumCores      int      `yaml:"num_cores"`
	} `yaml:"algorithm"`
	Metadata struct {
		Phenotype string `yaml:"phenotype"`
		Batch     string `yaml:"batch"`
	} `yaml:"metadata"`
	Config struct {
		Resources map[string]ProgramResource `yaml:"resources"`
	} `yaml:"config"`

	// Raw is the untyped parse of the same document, used by FindFile.
	Raw map[string]interface{} `yaml:"-"`
}

// ProgramResource is a per-program override in the runtime configuration.
type ProgramResource struct {
	Cmd string `yaml:"cmd"`
}

// Load reads a sample metadata YAML file into both the typed record and the
// raw tree.
func Load(path string) (*SampleRecord, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sample metadata: %w", err)
	}
	return Parse(buf)
}

// Parse decodes sample metadata from YAML bytes.
func Parse(buf []byte) (*SampleRecord, error) {
	rec := &SampleRecord{}
	if err := yaml.Unmarshal(buf, rec); err != nil {
		return nil, fmt.Errorf("parse sample metadata: %w", err)
	}
	if err := yaml.Unmarshal(buf, &rec.Raw); err != nil {
		return nil, fmt.Errorf("parse sample metadata tree: %w", err)
	}
	return rec, nil
}

// RefFile returns the reference genome FASTA path.
func (r *SampleRecord) RefFile() string {
	return r.Reference.Fasta.Base
}

// GenomeBuild returns the recorded genome build identifier, e.g. "GRCh37".
func (r *SampleRecord) GenomeBuild() string {
	return r.Build
}

// AnalysisType returns the analysis type string, e.g. "RNA-seq".
func (r *SampleRecord) AnalysisType() string {
	return r.Analysis
}

// VariantCaller returns the configured variant caller, empty when none.
func (r *SampleRecord) VariantCaller() string {
	return r.Algorithm.VariantCaller
}

// HumanAlias reports whether the genome resources explicitly mark the
// organism as human.
func (r *SampleRecord) HumanAlias() bool {
	return r.GenomeResources.Aliases.Human
}

// VariationResource returns the installed path for a named variation
// resource (e.g. "exac", "cosmic"), empty when not installed.
func (r *SampleRecord) VariationResource(name string) string {
	return r.GenomeResources.Variation[name]
}

// VcfannoProfiles returns the explicit annotation profile override list.
func (r *SampleRecord) VcfannoProfiles() []string {
	return r.Algorithm.Vcfanno
}

// IsPaired reports whether the sample is the tumor side of a tumor/normal
// pair. Pairing requires both the tumor phenotype and a batch grouping the
// sample with its normal.
func (r *SampleRecord) IsPaired() bool {
	return strings.EqualFold(r.Metadata.Phenotype, "tumor") && r.Metadata.Batch != ""
}

// Cores returns the configured concurrency degree, defaulting to the number
// of CPUs when unset.
func (r *SampleRecord) Cores() int {
	if r.Algorithm.NumCores > 0 {
		return r.Algorithm.NumCores
	}
	return runtime.NumCPU()
}

// Program resolves an external program name to the configured command,
// falling back to the bare name for PATH lookup.
func (r *SampleRecord) Program(name string) string {
	if res, ok := r.Config.Resources[name]; ok && res.Cmd != "" {
		return res.Cmd
	}
	return name
}
