// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"bytes"
	"strings"
	"testing"
)

func TestFindPlaceholder(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		placeholder string
		wantGroup   string // expected doc[start:end], empty means not found
	}{
		{
			name:        "placeholder inside a brace group",
			doc:         `{\rtf1 head {\pard PLACEHOLDER cell} tail}`,
			placeholder: "PLACEHOLDER",
			wantGroup:   `{\pard PLACEHOLDER cell}`,
		},
		{
			name:        "placeholder missing",
			doc:         `{\rtf1 head tail}`,
			placeholder: "PLACEHOLDER",
		},
		{
			name:        "placeholder without enclosing braces",
			doc:         `PLACEHOLDER`,
			placeholder: "PLACEHOLDER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := FindPlaceholder(tt.doc, tt.placeholder)
			if tt.wantGroup == "" {
				if start != -1 || end != -1 {
					t.Fatalf("expected not found, got (%d, %d)", start, end)
				}
				return
			}
			if start < 0 {
				t.Fatalf("placeholder not found")
			}
			if got := tt.doc[start:end]; got != tt.wantGroup {
				t.Errorf("group = %q, want %q", got, tt.wantGroup)
			}
		})
	}
}

func TestSplice(t *testing.T) {
	doc := `{\rtf1 head {\pard PLACEHOLDER cell} tail}`

	got, err := Splice(doc, "PLACEHOLDER", "CONTENT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{\rtf1 head CONTENT tail}`
	if got != want {
		t.Errorf("spliced doc = %q, want %q", got, want)
	}
	if strings.Contains(got, "PLACEHOLDER") {
		t.Error("placeholder should not survive splicing")
	}

	if _, err := Splice(doc, "MISSING", "CONTENT"); err == nil {
		t.Error("expected error for missing placeholder")
	}
}

func TestWrapSectionRoundTrip(t *testing.T) {
	doc := WrapSection("1.1.intro.tex", `{\pard intro\par}`) + "\n" +
		WrapSection("1.2.method.tex", `{\pard method\par}`)

	sections := Sections(doc)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Name != "1.1.intro.tex" || sections[1].Name != "1.2.method.tex" {
		t.Errorf("section names = %q, %q", sections[0].Name, sections[1].Name)
	}
	if sections[0].Body != `{\pard intro\par}` {
		t.Errorf("first body = %q", sections[0].Body)
	}
	if sections[1].Body != `{\pard method\par}` {
		t.Errorf("second body = %q", sections[1].Body)
	}
}

func TestSectionsSkipsUnterminatedMarker(t *testing.T) {
	doc := `{\comment rtfweave/from: broken.tex}` + "\nno closing marker\n" +
		WrapSection("ok.tex", "body")

	sections := Sections(doc)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Name != "ok.tex" {
		t.Errorf("section name = %q, want ok.tex", sections[0].Name)
	}
}

func TestSectionsNoMarkers(t *testing.T) {
	if got := Sections(`{\rtf1 plain document}`); len(got) != 0 {
		t.Errorf("got %d sections, want 0", len(got))
	}
}

func TestFixFootnotes(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		sizePoints int
		want       string
		wantWarn   string
	}{
		{
			name:       "sizes number and body, drops trailing par",
			doc:        `text\footnote\chftn{\chftn \pard body\par}`,
			sizePoints: 10,
			want:       `text\footnote\fs20\chftn{\chftn \pard\fs20 body}`,
		},
		{
			name:       "keeps interior pars",
			doc:        `x\footnote\chftn{\chftn \pard one\par two\par}`,
			sizePoints: 10,
			want:       `x\footnote\fs20\chftn{\chftn \pard\fs20 one\par two}`,
		},
		{
			name:       "handles nested brace groups in the body",
			doc:        `x\footnote\chftn{\chftn \pard a {\i b}\par}`,
			sizePoints: 12,
			want:       `x\footnote\fs24\chftn{\chftn \pard\fs24 a {\i b}}`,
		},
		{
			name:       "fixes every footnote",
			doc:        `a\footnote\chftn{\chftn \pard one\par} b\footnote\chftn{\chftn \pard two\par}`,
			sizePoints: 10,
			want:       `a\footnote\fs20\chftn{\chftn \pard\fs20 one} b\footnote\fs20\chftn{\chftn \pard\fs20 two}`,
		},
		{
			name:       "warns on footnote without chftn",
			doc:        `x\footnote{nope}`,
			sizePoints: 10,
			want:       `x\footnote{nope}`,
			wantWarn:   "may be malformed",
		},
		{
			name:       "no footnotes is a no-op",
			doc:        `{\rtf1 nothing here}`,
			sizePoints: 10,
			want:       `{\rtf1 nothing here}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			got := FixFootnotes(tt.doc, tt.sizePoints, &log)
			if got != tt.want {
				t.Errorf("got:  %q\nwant: %q", got, tt.want)
			}
			if tt.wantWarn != "" && !strings.Contains(log.String(), tt.wantWarn) {
				t.Errorf("warnings %q should contain %q", log.String(), tt.wantWarn)
			}
		})
	}
}
