// Package output writes command results for the ocpi CLI.
//
// Results go to Stdout so they can be piped; warnings and diagnostics go to
// Stderr.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// Destinations of all output; tests swap them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// JSON writes v as indented JSON followed by a newline.
func JSON(v any) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Table returns an aligned table writer. Call Flush when done.
func Table() *tabwriter.Writer {
	return tabwriter.NewWriter(Stdout, 0, 0, 2, ' ', 0)
}

// Warn prints a warning to Stderr.
func Warn(format string, args ...any) {
	_, _ = fmt.Fprintf(Stderr, "Warning: "+format+"\n", args...)
}
