package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-anno configuration",
		Long: "Show, get, or set configuration values stored in ~/.vibe-anno.yaml.\n\n" +
			"The programs section supplies external tool paths for samples whose\n" +
			"metadata does not configure them: programs.vcfanno, programs.bgzip,\n" +
			"programs.tabix.",
		Example: `  vibe-anno config                     # show all config
  vibe-anno config set programs.vcfanno /opt/bin/vcfanno
  vibe-anno config get programs.vcfanno`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command) error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		cfgFile, err := defaultConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# No configuration set. Config file: %s\n", cfgFile)
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}

	cfgFile, err := defaultConfigPath()
	if err != nil {
		return err
	}
	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(cmd *cobra.Command, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}
