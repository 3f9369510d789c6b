// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package unweave implements the reverse path: a previously woven RTF
// document is split at its section markers and each section is converted
// back to source markup, one output file per fragment. Citation
// formatting does not survive the round trip; citations come back as
// plain text.
package unweave

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/rtfweave/internal/pandoc"
	"github.com/pdiddy/rtfweave/internal/rtf"
	"github.com/pdiddy/rtfweave/pkg/types"
)

// Unweaver runs the reverse pipeline.
type Unweaver struct {
	conv pandoc.Converter
	cfg  types.Config
}

// New creates an Unweaver using the given converter.
func New(conv pandoc.Converter, cfg types.Config) *Unweaver {
	return &Unweaver{conv: conv, cfg: cfg}
}

// Result summarizes an extraction run.
type Result struct {
	// Files lists the written output paths in section order.
	Files []string
}

// Run splits the RTF at rtfPath into marker-delimited sections and
// writes one markup file per section into the extract output directory,
// named by the fragment name recorded in the marker. Every section is
// converted before any file is written; a conversion failure aborts with
// nothing written. A document without markers degrades to a warning and
// an empty result.
func (u *Unweaver) Run(rtfPath string, w io.Writer) (*Result, error) {
	data, err := os.ReadFile(rtfPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rtfPath, err)
	}

	sections := rtf.Sections(string(data))
	if len(sections) == 0 {
		fmt.Fprintf(w, "warning: no section markers found in %s; nothing to extract\n", rtfPath)
		return &Result{}, nil
	}

	// Pandoc reads from a file, so each section body goes through a
	// scratch .rtf under a temp directory.
	tmpDir, err := os.MkdirTemp("", "rtfweave-extract-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	opts := pandoc.Options{To: string(u.cfg.Extract.Format)}

	converted := make([]string, len(sections))
	for i, sec := range sections {
		scratch := filepath.Join(tmpDir, fmt.Sprintf("%03d.rtf", i))
		if err := os.WriteFile(scratch, []byte(sec.Body), 0o644); err != nil {
			return nil, fmt.Errorf("writing scratch file for %s: %w", sec.Name, err)
		}
		out, err := u.conv.Convert(scratch, opts)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", sec.Name, err)
		}
		converted[i] = out
		fmt.Fprintf(w, "extracted: %s\n", sec.Name)
	}

	if err := os.MkdirAll(u.cfg.Extract.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{Files: make([]string, len(sections))}
	for i, sec := range sections {
		outPath := filepath.Join(u.cfg.Extract.OutputDir, filepath.Base(sec.Name))
		if err := os.WriteFile(outPath, []byte(converted[i]), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files[i] = outPath
	}

	fmt.Fprintf(w, "\nUnweave summary: %d sections written to %s\n",
		len(sections), u.cfg.Extract.OutputDir)
	return result, nil
}
