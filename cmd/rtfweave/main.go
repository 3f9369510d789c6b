// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rtfweave CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rtfweave/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rtfweave CLI. Invoked without a
// subcommand it runs the forward path, so `rtfweave` alone compiles the
// document.
var rootCmd = &cobra.Command{
	Use:   "rtfweave",
	Short: "Weave LaTeX/Markdown fragments into an official RTF template",
	Long: `rtfweave converts user-authored document fragments (LaTeX or Markdown)
to RTF with pandoc, splices them into an official institutional template
at a configured placeholder, and optionally compiles the result to PDF.

Edits made in the merged RTF round-trip back to per-fragment source
markup through the extract subcommand. Running rtfweave without a
subcommand is equivalent to rtfweave compile.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd.OutOrStdout())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rtfweave.yaml or ~/.config/rtfweave/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rtfweave")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rtfweave"))
		}
	}

	viper.SetEnvPrefix("RTFWEAVE")
	viper.AutomaticEnv()

	viper.SetDefault("pandoc.binary", "pandoc")
	viper.SetDefault("pandoc.footnote_size", 10)
	viper.SetDefault("compile.input_dir", "fragments")
	viper.SetDefault("compile.output_dir", "output")
	viper.SetDefault("extract.output_dir", "extracted")
	viper.SetDefault("extract.format", "latex")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig unmarshals the merged viper state into the run configuration.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
