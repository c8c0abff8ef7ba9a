package main

import (
	"fmt"
	"io"
)

// printUsage writes the top-level help text.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `bindery - print-ready publication assembly

Usage:
  bindery build --config batch.yaml [flags]
  bindery doctor [--json]
  bindery completion <bash|zsh>
  bindery version

Commands:
  build        Produce every publication in a batch config
  doctor       Check provider credentials and system readiness
  completion   Generate shell completion script
  version      Print version

Build flags:
`)
	var f buildFlags
	fmt.Fprint(w, newBuildFlagSet(&f).FlagUsages())
	fmt.Fprint(w, `
Each publication writes page rasters, interior.pdf (coloring books),
cover.pdf, preview.jpg, and catalog.json under {output}/{theme-slug}/.
The gemini provider requires GEMINI_API_KEY.
`)
}
