// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// PandocConfig holds settings for the external pandoc converter, shared
// by both conversion directions.
type PandocConfig struct {
	// Binary is the pandoc executable name or path (default "pandoc").
	Binary string `json:"binary" yaml:"binary" mapstructure:"binary"`

	// CitationStyle is the path to a CSL style file passed to pandoc via
	// --csl. When empty, citeproc is not invoked.
	CitationStyle string `json:"citation_style" yaml:"citation_style" mapstructure:"citation_style"`

	// SuppressBibliography disables the per-fragment bibliography block
	// that citeproc would otherwise append.
	SuppressBibliography bool `json:"suppress_bibliography" yaml:"suppress_bibliography" mapstructure:"suppress_bibliography"`

	// FootnoteSize is the footnote font size in points (default 10).
	// RTF stores font sizes in half-points; the conversion happens in
	// the RTF post-processing step.
	FootnoteSize int `json:"footnote_size" yaml:"footnote_size" mapstructure:"footnote_size"`

	// ResourcePaths lists directories pandoc searches for images and
	// other assets, in addition to the working directory.
	ResourcePaths []string `json:"resource_paths" yaml:"resource_paths" mapstructure:"resource_paths"`
}

// CompileConfig holds settings for the forward path (fragments to RTF).
type CompileConfig struct {
	// InputDir is the directory holding fragment files (default "fragments").
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir is the directory the woven RTF is written to (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Template is the path to the official RTF template.
	Template string `json:"template" yaml:"template" mapstructure:"template"`

	// Placeholder is the insertion anchor inside the template. The brace
	// group enclosing it is replaced by the woven content.
	Placeholder string `json:"placeholder" yaml:"placeholder" mapstructure:"placeholder"`

	// PDFCommand is an optional command template for PDF compilation,
	// with %f substituted by the produced RTF path and %o by the target
	// PDF path. When empty, a LibreOffice binary is autodetected; when
	// none is installed the PDF step is skipped.
	PDFCommand string `json:"pdf_command" yaml:"pdf_command" mapstructure:"pdf_command"`

	// CacheDir enables the conversion cache when set. The cache is a
	// derived artifact: deleting it only costs recomputation.
	CacheDir string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty" mapstructure:"cache_dir"`
}

// MarkupFormat identifies the source markup produced by extraction.
type MarkupFormat string

const (
	FormatLaTeX    MarkupFormat = "latex"
	FormatMarkdown MarkupFormat = "markdown"
)

// Valid reports whether f names a supported extraction format.
func (f MarkupFormat) Valid() bool {
	return f == FormatLaTeX || f == FormatMarkdown
}

// ExtractConfig holds settings for the reverse path (RTF to markup).
type ExtractConfig struct {
	// OutputDir is the directory extracted fragments are written to
	// (default "extracted").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Format selects the markup extraction converts back to: latex or
	// markdown (default latex). Citations flatten to plain text in this
	// direction.
	Format MarkupFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for a run. Loaded once per invocation and
// immutable afterwards.
type Config struct {
	Pandoc  PandocConfig  `json:"pandoc" yaml:"pandoc" mapstructure:"pandoc"`
	Compile CompileConfig `json:"compile" yaml:"compile" mapstructure:"compile"`
	Extract ExtractConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
}

// ValidateCompile checks the settings the forward path requires.
func (c Config) ValidateCompile() error {
	if c.Compile.Template == "" {
		return errors.New("compile.template must be set")
	}
	if c.Compile.Placeholder == "" {
		return errors.New("compile.placeholder must be set")
	}
	return nil
}

// ValidateExtract checks the settings the reverse path requires.
func (c Config) ValidateExtract() error {
	if !c.Extract.Format.Valid() {
		return fmt.Errorf("extract.format %q is not supported (want latex or markdown)", c.Extract.Format)
	}
	return nil
}
