// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Fragment is one user-authored source file destined for a single
// spliced block in the official template.
type Fragment struct {
	// Name is the base filename (e.g. "1.1.intro.tex"). Lexicographic
	// order of names defines document order.
	Name string `json:"name" yaml:"name"`

	// Path is the filesystem path to the fragment.
	Path string `json:"path" yaml:"path"`

	// Ordinal is the zero-based position after sorting.
	Ordinal int `json:"ordinal" yaml:"ordinal"`
}
