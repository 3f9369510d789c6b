package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rtfweave/internal/pandoc"
	"github.com/pdiddy/rtfweave/internal/unweave"
)

var extractCmd = &cobra.Command{
	Use:   "extract [rtf-file]",
	Short: "Split a woven RTF back into per-fragment source markup",
	Long: `Extract reads a previously woven RTF document, splits it at the
section markers recorded during compilation, and converts each section
back to source markup, writing one file per fragment into the extract
output directory. Citation formatting is flattened to plain text in this
direction.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(rtfPath string, w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateExtract(); err != nil {
		return err
	}

	conv, err := pandoc.NewRunner(cfg.Pandoc.Binary)
	if err != nil {
		return err
	}

	_, err = unweave.New(conv, cfg).Run(rtfPath, w)
	return err
}
