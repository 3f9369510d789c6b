// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect enumerates fragment files in document order.
package collect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/rtfweave/pkg/types"
)

// eligibleExts lists the fragment extensions the pipeline accepts.
var eligibleExts = map[string]bool{
	".tex":      true,
	".latex":    true,
	".md":       true,
	".markdown": true,
}

// ordinalPrefixRe matches names that begin with two digits once dots are
// ignored, e.g. "1.1.intro.tex" or "02-scope.md".
var ordinalPrefixRe = regexp.MustCompile(`^\d{2}`)

// Collect returns the eligible fragment files in dir sorted
// lexicographically by filename, each annotated with its ordinal.
// Hidden files, subdirectories, and unrecognized extensions are ignored.
// A fragment without a two-digit ordering prefix gets a warning on w;
// document order is fragile without one.
func Collect(dir string, w io.Writer) ([]types.Fragment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var fragments []types.Fragment
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !eligibleExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		fragments = append(fragments, types.Fragment{
			Name: name,
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(fragments, func(i, j int) bool {
		return fragments[i].Name < fragments[j].Name
	})

	for i := range fragments {
		fragments[i].Ordinal = i
		if !ordinalPrefixRe.MatchString(strings.ReplaceAll(fragments[i].Name, ".", "")) {
			fmt.Fprintf(w, "warning: %s does not start with a two-digit ordering prefix\n", fragments[i].Name)
		}
	}

	return fragments, nil
}
