// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rtf performs the plain-text surgery on RTF documents that the
// pipeline needs: placeholder splicing, section markers, and footnote
// font fixups. It is deliberately not an RTF parser; everything works on
// the raw control-word text, matching what the official templates and
// pandoc's writer actually emit.
package rtf

import (
	"fmt"
	"io"
	"strings"
)

// Section markers are RTF comment groups invisible to word processors.
// They record which fragment file produced each spliced block so the
// reverse path can split the merged document.
const (
	markerFromPrefix = `{\comment rtfweave/from: `
	markerToPrefix   = `{\comment rtfweave/to: `
	markerSuffix     = `}`
)

// FindPlaceholder locates the brace group enclosing the first occurrence
// of placeholder in doc. It returns the index of the opening brace and
// the index one past the closing brace, or (-1, -1) when the placeholder
// or its enclosing braces are missing.
func FindPlaceholder(doc, placeholder string) (start, end int) {
	idx := strings.Index(doc, placeholder)
	if idx < 0 {
		return -1, -1
	}
	open := strings.LastIndex(doc[:idx], "{")
	closing := strings.Index(doc[idx:], "}")
	if open < 0 || closing < 0 {
		return -1, -1
	}
	return open, idx + closing + 1
}

// Splice replaces the placeholder group in doc with content. The group
// is replaced exactly once; content containing the placeholder string is
// left alone.
func Splice(doc, placeholder, content string) (string, error) {
	start, end := FindPlaceholder(doc, placeholder)
	if start < 0 {
		return "", fmt.Errorf("placeholder %q not found in template", placeholder)
	}
	return doc[:start] + content + doc[end:], nil
}

// WrapSection fences body with section markers recording the source
// fragment name.
func WrapSection(name, body string) string {
	return markerFromPrefix + name + markerSuffix + "\n" + body + "\n" + markerToPrefix + name + markerSuffix
}

// Section is one marker-delimited region of a merged document.
type Section struct {
	// Name is the fragment filename recorded in the marker.
	Name string

	// Body is the RTF content between the markers, trimmed.
	Body string
}

// Sections scans doc for matching from/to marker pairs and returns them
// in document order. Splitting is best effort: a from marker without a
// matching to marker is skipped.
func Sections(doc string) []Section {
	var sections []Section
	search := 0
	for {
		rel := strings.Index(doc[search:], markerFromPrefix)
		if rel < 0 {
			break
		}
		start := search + rel

		nameStart := start + len(markerFromPrefix)
		nameLen := strings.Index(doc[nameStart:], markerSuffix)
		if nameLen < 0 {
			break
		}
		name := doc[nameStart : nameStart+nameLen]
		bodyStart := nameStart + nameLen + len(markerSuffix)

		closing := markerToPrefix + name + markerSuffix
		rel = strings.Index(doc[bodyStart:], closing)
		if rel < 0 {
			search = bodyStart
			continue
		}
		bodyEnd := bodyStart + rel

		sections = append(sections, Section{
			Name: name,
			Body: strings.TrimSpace(doc[bodyStart:bodyEnd]),
		})
		search = bodyEnd + len(closing)
	}
	return sections
}

// FixFootnotes rewrites each \footnote group emitted by pandoc: it sets
// the font size for the footnote number and body, and drops the trailing
// \par that would otherwise add a blank line inside the note. sizePoints
// is the desired size in points; RTF \fs takes half-points. Malformed
// footnotes produce a warning on w and are left untouched.
func FixFootnotes(doc string, sizePoints int, w io.Writer) string {
	fs := fmt.Sprintf(`\fs%d`, sizePoints*2)

	search := 0
	for {
		rel := strings.Index(doc[search:], `\footnote`)
		if rel < 0 {
			break
		}
		start := search + rel

		// The footnote number is typeset by \chftn; size it first.
		anchor := strings.Index(doc[start:], `\chftn`)
		if anchor < 0 {
			fmt.Fprintf(w, "warning: \\footnote without \\chftn; the footnote may be malformed\n")
			search = start + len(`\footnote`)
			continue
		}
		numPos := start + anchor
		doc = doc[:numPos] + fs + doc[numPos:]

		// The footnote body starts at the next brace group; its text
		// follows the \pard inside it.
		groupStart := strings.Index(doc[numPos:], "{")
		if groupStart < 0 {
			break
		}
		groupStart += numPos

		pard := strings.Index(doc[groupStart+1:], `\pard`)
		if pard < 0 {
			fmt.Fprintf(w, "warning: footnote body without \\pard; leaving it unsized\n")
			search = groupStart + 1
			continue
		}
		bodyPos := groupStart + 1 + pard + len(`\pard`)
		doc = doc[:bodyPos] + fs + doc[bodyPos:]

		// Walk to the brace closing the footnote group.
		depth := 1
		i := bodyPos
		for ; i < len(doc); i++ {
			switch doc[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				break
			}
		}

		// Drop the last \par before the closing brace.
		if par := strings.LastIndex(doc[bodyPos:i], `\par`); par >= 0 {
			par += bodyPos
			doc = doc[:par] + doc[par+len(`\par`):]
			i -= len(`\par`)
		}

		search = i
	}

	return doc
}
