package formatter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// DisplayLint writes lint-only suggestions for one file.
func DisplayLint(w io.Writer, file, suggestions, format string) error {
	switch format {
	case "json":
		return displayJSON(w, &Report{File: file, LintSuggestions: suggestions})
	case "yaml":
		return displayYAML(w, &Report{File: file, LintSuggestions: suggestions})
	case "human", "":
		fmt.Fprintln(w)
		color.New(color.FgWhite, color.Bold).Fprintf(w, "🧹 LINTING & FORMATTING SUGGESTIONS: %s\n", file)
		fmt.Fprintln(w, indent(suggestions, "   "))
		fmt.Fprintln(w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (supported: human, json, yaml)", format)
	}
}
