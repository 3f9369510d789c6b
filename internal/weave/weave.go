// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package weave implements the forward path: fragments are converted to
// RTF in document order and spliced into the official template at its
// placeholder.
package weave

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/rtfweave/internal/cache"
	"github.com/pdiddy/rtfweave/internal/collect"
	"github.com/pdiddy/rtfweave/internal/manifest"
	"github.com/pdiddy/rtfweave/internal/pandoc"
	"github.com/pdiddy/rtfweave/internal/rtf"
	"github.com/pdiddy/rtfweave/pkg/types"
)

// manifestFile is the name of the run manifest written next to the
// output RTF.
const manifestFile = "weave.manifest.yaml"

const defaultFootnoteSize = 10

// Weaver runs the forward pipeline. The converter and executor are
// injected so tests can run without pandoc installed.
type Weaver struct {
	conv  pandoc.Converter
	exec  pandoc.Executor
	store *cache.Store // nil when caching is disabled
	cfg   types.Config
}

// New creates a Weaver. store may be nil to disable the conversion cache.
func New(conv pandoc.Converter, exec pandoc.Executor, store *cache.Store, cfg types.Config) *Weaver {
	return &Weaver{conv: conv, exec: exec, store: store, cfg: cfg}
}

// Result summarizes a compile run.
type Result struct {
	OutputRTF string
	OutputPDF string
	Converted int
	Cached    int
}

// Run executes the forward pipeline: read the template, collect the
// fragments, convert each to RTF, splice the concatenation into the
// template, write the output, and optionally compile a PDF. Every
// fragment converts before anything is written, so a failing fragment
// leaves no partial output.
func (wv *Weaver) Run(w io.Writer) (*Result, error) {
	templateData, err := os.ReadFile(wv.cfg.Compile.Template)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	fragments, err := collect.Collect(wv.cfg.Compile.InputDir, w)
	if err != nil {
		return nil, err
	}
	if len(fragments) == 0 {
		fmt.Fprintf(w, "warning: no eligible fragments in %s\n", wv.cfg.Compile.InputDir)
	}

	footnoteSize := wv.cfg.Pandoc.FootnoteSize
	if footnoteSize <= 0 {
		footnoteSize = defaultFootnoteSize
	}

	opts := pandoc.Options{
		To:                   "rtf",
		CitationStyle:        wv.cfg.Pandoc.CitationStyle,
		SuppressBibliography: wv.cfg.Pandoc.SuppressBibliography,
		ResourcePaths:        wv.cfg.Pandoc.ResourcePaths,
	}
	optionsSHA := optionsDigest(opts, footnoteSize)

	var (
		blocks  []string
		records []manifest.FragmentRecord
		result  Result
	)
	for _, frag := range fragments {
		data, err := os.ReadFile(frag.Path)
		if err != nil {
			return nil, fmt.Errorf("reading fragment %s: %w", frag.Name, err)
		}
		contentSHA := cache.Digest(data)

		body, hit, err := wv.cachedRTF(frag.Name, contentSHA, optionsSHA)
		if err != nil {
			return nil, err
		}
		if hit {
			result.Cached++
			fmt.Fprintf(w, "cached:    %s\n", frag.Name)
		} else {
			body, err = wv.conv.Convert(frag.Path, opts)
			if err != nil {
				return nil, err
			}
			body = rtf.FixFootnotes(body, footnoteSize, w)
			if err := wv.storeRTF(frag.Name, contentSHA, optionsSHA, body); err != nil {
				return nil, err
			}
			result.Converted++
			fmt.Fprintf(w, "converted: %s\n", frag.Name)
		}

		blocks = append(blocks, rtf.WrapSection(frag.Name, body))
		records = append(records, manifest.FragmentRecord{
			Name:    frag.Name,
			Ordinal: frag.Ordinal,
			SHA256:  contentSHA,
			Cached:  hit,
		})
	}

	merged, err := rtf.Splice(string(templateData), wv.cfg.Compile.Placeholder, strings.Join(blocks, "\n"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", wv.cfg.Compile.Template, err)
	}

	if err := os.MkdirAll(wv.cfg.Compile.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(wv.cfg.Compile.OutputDir, filepath.Base(wv.cfg.Compile.Template))
	if err := os.WriteFile(outPath, []byte(merged), 0o644); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	result.OutputRTF = outPath

	pdfPath, err := wv.compilePDF(outPath, w)
	if err != nil {
		return nil, err
	}
	result.OutputPDF = pdfPath

	m := &manifest.Manifest{
		GeneratedAt: time.Now().UTC(),
		Template:    wv.cfg.Compile.Template,
		Placeholder: wv.cfg.Compile.Placeholder,
		OutputRTF:   outPath,
		OutputPDF:   pdfPath,
		Fragments:   records,
	}
	if err := manifest.Write(filepath.Join(wv.cfg.Compile.OutputDir, manifestFile), m); err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "\nWeave summary: %d converted, %d cached, output %s\n",
		result.Converted, result.Cached, outPath)
	return &result, nil
}

// cachedRTF looks up a conversion in the cache. Always a miss when
// caching is disabled.
func (wv *Weaver) cachedRTF(name, contentSHA, optionsSHA string) (string, bool, error) {
	if wv.store == nil {
		return "", false, nil
	}
	return wv.store.Get(name, contentSHA, optionsSHA)
}

// storeRTF records a conversion in the cache when caching is enabled.
func (wv *Weaver) storeRTF(name, contentSHA, optionsSHA, body string) error {
	if wv.store == nil {
		return nil
	}
	return wv.store.Put(name, contentSHA, optionsSHA, body)
}

// optionsDigest serializes the settings that affect a fragment's RTF so
// cache entries are invalidated when any of them change.
func optionsDigest(opts pandoc.Options, footnoteSize int) string {
	key := fmt.Sprintf("to=%s csl=%s suppress=%t resources=%s fs=%d",
		opts.To, opts.CitationStyle, opts.SuppressBibliography,
		strings.Join(opts.ResourcePaths, ","), footnoteSize)
	return cache.Digest([]byte(key))
}
