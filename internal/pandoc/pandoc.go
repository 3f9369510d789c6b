// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc invokes the external pandoc converter. All format and
// citation knowledge lives in pandoc; this package only assembles
// invocations and surfaces their output.
package pandoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const defaultBinary = "pandoc"

// Options control a single pandoc invocation.
type Options struct {
	// To is the target format ("rtf" forward; "latex" or "markdown" on
	// extraction).
	To string

	// CitationStyle is the CSL file passed to --csl. Citeproc runs only
	// when this is set.
	CitationStyle string

	// SuppressBibliography disables the appended bibliography block.
	SuppressBibliography bool

	// ResourcePaths lists extra directories for asset resolution. The
	// working directory is always searched first.
	ResourcePaths []string
}

// Converter transforms one document file into another markup format.
// The production implementation shells out to pandoc; tests substitute
// fakes.
type Converter interface {
	// Convert reads the file at inputPath and returns the converted
	// document text.
	Convert(inputPath string, opts Options) (string, error)
}

// Executor abstracts command execution so the subprocess boundary can be
// faked in tests. It is shared with the PDF compilation step.
type Executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production Executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// NewOSExecutor returns the production Executor.
func NewOSExecutor() Executor { return osExecutor{} }

// Runner is the production Converter backed by the pandoc binary.
type Runner struct {
	bin  string
	exec Executor
}

// NewRunner returns a Converter invoking the given pandoc binary (or
// "pandoc" when bin is empty). It fails when the binary is not on PATH,
// so a missing pandoc surfaces at startup rather than mid-run.
func NewRunner(bin string) (*Runner, error) {
	return newRunner(bin, osExecutor{})
}

func newRunner(bin string, exec Executor) (*Runner, error) {
	if bin == "" {
		bin = defaultBinary
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("pandoc is not installed (%s not found): %w", bin, err)
	}
	return &Runner{bin: bin, exec: exec}, nil
}

// Convert runs pandoc on inputPath and returns the converted document.
// On a non-zero exit the returned error carries pandoc's stderr.
func (r *Runner) Convert(inputPath string, opts Options) (string, error) {
	args := buildArgs(inputPath, opts)

	var out, errOut bytes.Buffer
	if err := r.exec.Run(r.bin, args, &out, &errOut); err != nil {
		if msg := strings.TrimSpace(errOut.String()); msg != "" {
			return "", fmt.Errorf("converting %s: %w: %s", filepath.Base(inputPath), err, msg)
		}
		return "", fmt.Errorf("converting %s: %w", filepath.Base(inputPath), err)
	}

	return out.String(), nil
}

// buildArgs assembles the pandoc argument list for one invocation.
func buildArgs(inputPath string, opts Options) []string {
	args := []string{inputPath}

	if opts.CitationStyle != "" {
		args = append(args, "--citeproc", "--csl="+opts.CitationStyle)
	}

	args = append(args,
		"--to="+opts.To,
		fmt.Sprintf("--metadata=suppress-bibliography:%t", opts.SuppressBibliography),
	)

	if len(opts.ResourcePaths) > 0 {
		paths := append([]string{"."}, opts.ResourcePaths...)
		args = append(args, "--resource-path="+strings.Join(paths, string(os.PathListSeparator)))
	}

	return args
}
