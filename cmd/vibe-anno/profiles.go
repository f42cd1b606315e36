package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-anno/internal/annotate"
	"github.com/inodb/vibe-anno/internal/metadata"
)

func newProfilesCmd() *cobra.Command {
	var samplePath string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Show the annotation fragments selected for a sample",
		Long: "Resolve the annotation profiles that apply to a sample and print the " +
			"configuration and script fragments that an annotate run would merge, " +
			"without running anything.",
		Example: `  vibe-anno profiles --sample sample.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := metadata.Load(samplePath)
			if err != nil {
				return err
			}

			selector := annotate.NewSelector()
			selector.SetLogger(logger)
			fragments := selector.Find(rec)
			if len(fragments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "# no annotation profiles apply to this sample")
				return nil
			}
			for _, f := range fragments {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&samplePath, "sample", "", "Sample metadata YAML file (required)")
	cobra.CheckErr(cmd.MarkFlagRequired("sample"))

	return cmd
}
