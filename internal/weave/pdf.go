// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package weave

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// libreofficeBins are the LibreOffice binary names tried, in order, when
// no PDF command is configured.
var libreofficeBins = []string{"soffice", "libreoffice"}

// compilePDF runs the optional PDF compilation step on the produced RTF.
// A configured pdf_command template has %f replaced by the RTF path and
// %o by the target PDF path. Without one, a LibreOffice binary is
// autodetected; when none is installed the step is skipped. The returned
// path is empty when no PDF was produced.
func (wv *Weaver) compilePDF(rtfPath string, w io.Writer) (string, error) {
	pdfPath := strings.TrimSuffix(rtfPath, filepath.Ext(rtfPath)) + ".pdf"

	var argv []string
	if tmpl := wv.cfg.Compile.PDFCommand; tmpl != "" {
		argv = expandPDFCommand(tmpl, rtfPath, pdfPath)
		if len(argv) == 0 {
			return "", fmt.Errorf("compile.pdf_command %q is empty after expansion", tmpl)
		}
	} else {
		argv = wv.detectLibreOffice(rtfPath)
		if argv == nil {
			fmt.Fprintln(w, "note: no pdf_command configured and LibreOffice not found; skipping PDF")
			return "", nil
		}
	}

	fmt.Fprintf(w, "compiling PDF: %s\n", strings.Join(argv, " "))
	if err := wv.exec.Run(argv[0], argv[1:], w, os.Stderr); err != nil {
		return "", fmt.Errorf("compiling PDF: %w", err)
	}
	return pdfPath, nil
}

// expandPDFCommand splits the command template on whitespace and
// substitutes the %f and %o tokens.
func expandPDFCommand(tmpl, rtfPath, pdfPath string) []string {
	fields := strings.Fields(tmpl)
	for i, f := range fields {
		f = strings.ReplaceAll(f, "%f", rtfPath)
		f = strings.ReplaceAll(f, "%o", pdfPath)
		fields[i] = f
	}
	return fields
}

// detectLibreOffice builds a LibreOffice convert-to-pdf invocation when
// one of its binaries is on PATH. Returns nil when none is found.
func (wv *Weaver) detectLibreOffice(rtfPath string) []string {
	for _, bin := range libreofficeBins {
		if _, err := wv.exec.LookPath(bin); err == nil {
			return []string{bin, "--convert-to", "pdf", "--outdir", wv.cfg.Compile.OutputDir, rtfPath}
		}
	}
	return nil
}
