// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
)

// mockExecutor records invocations and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	runFunc       func(name string, args []string, stdout, stderr io.Writer) error

	calls [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.runFunc != nil {
		return m.runFunc(name, args, stdout, stderr)
	}
	return nil
}

func TestNewRunnerRequiresPandoc(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{}}
	if _, err := newRunner("", exec); err == nil {
		t.Fatal("expected error when pandoc is missing")
	} else if !strings.Contains(err.Error(), "pandoc is not installed") {
		t.Errorf("error should mention missing pandoc, got: %v", err)
	}

	exec = &mockExecutor{availableBins: map[string]bool{"pandoc": true}}
	r, err := newRunner("", exec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.bin != "pandoc" {
		t.Errorf("bin = %q, want pandoc", r.bin)
	}
}

func TestBuildArgs(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "forward conversion with citations and resources",
			opts: Options{
				To:                   "rtf",
				CitationStyle:        "styles/journal.csl",
				SuppressBibliography: true,
				ResourcePaths:        []string{"resources", "figures"},
			},
			want: []string{
				"doc.tex",
				"--citeproc",
				"--csl=styles/journal.csl",
				"--to=rtf",
				"--metadata=suppress-bibliography:true",
				"--resource-path=." + sep + "resources" + sep + "figures",
			},
		},
		{
			name: "reverse conversion runs without citeproc",
			opts: Options{To: "latex"},
			want: []string{
				"doc.tex",
				"--to=latex",
				"--metadata=suppress-bibliography:false",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildArgs("doc.tex", tt.opts)
			if len(got) != len(tt.want) {
				t.Fatalf("args = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("arg[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestConvert(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"pandoc": true},
		runFunc: func(name string, args []string, stdout, stderr io.Writer) error {
			fmt.Fprint(stdout, `{\rtf converted}`)
			return nil
		},
	}
	r, err := newRunner("pandoc", exec)
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Convert("fragments/1.1.intro.tex", Options{To: "rtf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{\rtf converted}` {
		t.Errorf("output = %q", out)
	}

	if len(exec.calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(exec.calls))
	}
	if exec.calls[0][0] != "pandoc" || exec.calls[0][1] != "fragments/1.1.intro.tex" {
		t.Errorf("invocation = %q", exec.calls[0])
	}
}

func TestConvertSurfacesStderr(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"pandoc": true},
		runFunc: func(name string, args []string, stdout, stderr io.Writer) error {
			fmt.Fprintln(stderr, "pandoc: unknown citation key @smith2020")
			return errors.New("exit status 83")
		},
	}
	r, err := newRunner("pandoc", exec)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Convert("fragments/1.1.intro.tex", Options{To: "rtf"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unknown citation key") {
		t.Errorf("error should carry pandoc stderr, got: %v", err)
	}
	if !strings.Contains(err.Error(), "1.1.intro.tex") {
		t.Errorf("error should name the fragment, got: %v", err)
	}
}
