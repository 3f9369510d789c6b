package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rtfweave/internal/cache"
	"github.com/pdiddy/rtfweave/internal/pandoc"
	"github.com/pdiddy/rtfweave/internal/weave"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Convert fragments to RTF and splice them into the template",
	Long: `Compile enumerates the fragment files in the input directory in
lexicographic order, converts each to RTF with pandoc (applying the
configured citation style, bibliography suppression, and footnote size),
and splices the concatenated result into the official template at the
configured placeholder. If a PDF command is configured or LibreOffice is
installed, the woven RTF is also compiled to PDF.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateCompile(); err != nil {
		return err
	}

	conv, err := pandoc.NewRunner(cfg.Pandoc.Binary)
	if err != nil {
		return err
	}

	var store *cache.Store
	if cfg.Compile.CacheDir != "" {
		store, err = cache.Open(cfg.Compile.CacheDir)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	_, err = weave.New(conv, pandoc.NewOSExecutor(), store, cfg).Run(w)
	return err
}
