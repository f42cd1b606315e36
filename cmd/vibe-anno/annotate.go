package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-anno/internal/annotate"
	"github.com/inodb/vibe-anno/internal/metadata"
)

func newAnnotateCmd() *cobra.Command {
	var (
		samplePath string
		confFns    []string
		luaFns     []string
		basePath   string
		decomposed bool
		cores      int
	)

	cmd := &cobra.Command{
		Use:   "annotate <input.vcf>",
		Short: "Annotate a VCF file with vcfanno",
		Long: "Annotate a VCF file using the annotation profiles that apply to the " +
			"sample, or an explicit list of configuration fragments. The output is " +
			"bgzipped and tabix-indexed next to the input.",
		Example: `  vibe-anno annotate --sample sample.yaml input.vcf
  vibe-anno annotate --sample sample.yaml --conf custom.conf --lua custom.lua input.vcf
  vibe-anno annotate --sample sample.yaml --base-path /data/anno --decomposed input.vcf.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := metadata.Load(samplePath)
			if err != nil {
				return err
			}
			if cores > 0 {
				rec.Algorithm.NumCores = cores
			}
			applyProgramDefaults(rec)

			selector := annotate.NewSelector()
			selector.SetLogger(logger)
			confs, luas, err := resolveFragments(rec, selector, confFns, luaFns)
			if err != nil {
				return err
			}

			runner := annotate.NewRunner()
			runner.SetLogger(logger)
			out, err := runner.Run(cmd.Context(), args[0], confs, luas, rec, basePath, decomposed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&samplePath, "sample", "", "Sample metadata YAML file (required)")
	cmd.Flags().StringArrayVar(&confFns, "conf", nil, "Explicit configuration fragment (repeatable, overrides profile selection)")
	cmd.Flags().StringArrayVar(&luaFns, "lua", nil, "Explicit lua script fragment (repeatable, requires --conf)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "Shared base path for relative file references in fragments")
	cmd.Flags().BoolVar(&decomposed, "decomposed", false, "Input is allele-decomposed; rewrite per-allele INFO counts to single values")
	cmd.Flags().IntVar(&cores, "cores", 0, "Concurrency degree for vcfanno (default: from sample metadata)")
	cobra.CheckErr(cmd.MarkFlagRequired("sample"))

	return cmd
}

// resolveFragments returns the configuration and script fragments for a run:
// the explicit lists when given, otherwise the selector's profile resolution.
// Explicit scripts are only meaningful alongside explicit configurations.
func resolveFragments(rec *metadata.SampleRecord, selector *annotate.Selector, confFns, luaFns []string) ([]string, []string, error) {
	if len(confFns) > 0 {
		return confFns, luaFns, nil
	}
	if len(luaFns) > 0 {
		return nil, nil, errors.New("--lua requires --conf: scripts accompany explicit configuration fragments")
	}
	confs, luas := annotate.SplitFragments(selector.Find(rec))
	if len(confs) == 0 {
		return nil, nil, errors.New("no annotation profiles apply to this sample")
	}
	return confs, luas, nil
}

// applyProgramDefaults fills program overrides from the user configuration's
// programs section for programs the sample metadata does not configure
// itself. Sample metadata always wins.
func applyProgramDefaults(rec *metadata.SampleRecord) {
	for name, path := range viper.GetStringMapString("programs") {
		if path == "" {
			continue
		}
		if res, ok := rec.Config.Resources[name]; ok && res.Cmd != "" {
			continue
		}
		if rec.Config.Resources == nil {
			rec.Config.Resources = map[string]metadata.ProgramResource{}
		}
		rec.Config.Resources[name] = metadata.ProgramResource{Cmd: path}
	}
}
