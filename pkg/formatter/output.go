package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/codeclarity/pkg/model"
)

// NotAvailable is printed for any field the model reply did not fill in.
const NotAvailable = "N/A"

// Report is everything shown for one analyzed file.
type Report struct {
	File            string                `json:"file" yaml:"file"`
	Analysis        *model.AnalysisResult `json:"analysis" yaml:"analysis"`
	LintSuggestions string                `json:"lint_suggestions,omitempty" yaml:"lint_suggestions,omitempty"`
	Source          string                `json:"source,omitempty" yaml:"source,omitempty"`
}

// DisplayResults formats and writes the report in the requested format.
func DisplayResults(w io.Writer, report *Report, format string) error {
	switch format {
	case "json":
		return displayJSON(w, report)
	case "yaml":
		return displayYAML(w, report)
	case "human", "":
		displayHuman(w, report)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (supported: human, json, yaml)", format)
	}
}

// displayJSON keeps <, > and & unescaped so code excerpts read as written.
func displayJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func displayYAML(w io.Writer, report *Report) error {
	output, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, report *Report) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	res := report.Analysis
	if res == nil {
		res = &model.AnalysisResult{}
	}

	fmt.Fprintln(w)
	green.Fprintf(w, "✅ Code Analysis Completed: %s\n\n", report.File)

	if report.Source != "" {
		white.Fprintln(w, "📄 SOURCE:")
		fmt.Fprintln(w, indent(strings.TrimRight(report.Source, "\n"), "   "))
		fmt.Fprintln(w)
	}

	white.Fprintln(w, "🧾 EXPLANATION:")
	fmt.Fprintln(w, wrapText(textOrNA(res.Explanation), 80, "   "))
	fmt.Fprintln(w)

	cyan.Fprintln(w, "📊 COMPLEXITY SCORE:")
	if res.ComplexityScore != nil {
		band := model.BandFor(*res.ComplexityScore)
		bandColor(band).Fprintf(w, "   %d/10 (%s)\n", *res.ComplexityScore, band)
	} else {
		fmt.Fprintf(w, "   %s\n", NotAvailable)
	}
	fmt.Fprintf(w, "   Reason: %s\n\n", textOrNA(res.ComplexityReason))

	writeScale(w, res.ComplexityScore)
	fmt.Fprintln(w)
	fmt.Fprintln(w, indent(Chart(res.ComplexityScore), "   "))
	fmt.Fprintln(w)

	red.Fprintln(w, "🔒 VULNERABILITY CHECK:")
	switch {
	case !res.HasVulnerabilities():
		fmt.Fprintf(w, "   %s\n", NotAvailable)
	case len(res.Vulnerabilities) == 0:
		fmt.Fprintln(w, "   No known vulnerabilities detected.")
	default:
		for i, v := range res.Vulnerabilities {
			fmt.Fprintf(w, "   %d. %s\n", i+1, v)
		}
	}
	fmt.Fprintln(w)

	yellow.Fprintln(w, "🧱 SOLID PRINCIPLE ANALYSIS:")
	switch {
	case res.SolidPrinciples == nil:
		fmt.Fprintf(w, "   %s\n", NotAvailable)
	case res.SolidPrinciples.Len() == 0:
		fmt.Fprintln(w, "   Not applicable.")
	default:
		for pair := res.SolidPrinciples.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(w, "   • %s\n", color.CyanString(pair.Key))
			fmt.Fprintln(w, wrapText(pair.Value, 80, "     "))
		}
	}
	fmt.Fprintln(w)

	if report.LintSuggestions != "" {
		white.Fprintln(w, "🧹 LINTING & FORMATTING SUGGESTIONS:")
		fmt.Fprintln(w, indent(report.LintSuggestions, "   "))
		fmt.Fprintln(w)
	}

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

// writeScale prints the band legend and marks the band the score falls in.
func writeScale(w io.Writer, score *int) {
	fmt.Fprintln(w, "   Scale:")
	for _, b := range model.Bands() {
		marker := "  "
		if score != nil && model.BandFor(*score) == b {
			marker = "▶ "
		}
		bandColor(b).Fprintf(w, "   %s%d–%d: %s\n", marker, b.Floor(), b.Ceiling(), b)
	}
}

func bandColor(b model.Band) *color.Color {
	switch b {
	case model.VerySimple:
		return color.New(color.FgCyan)
	case model.Simple:
		return color.New(color.FgGreen)
	case model.Moderate:
		return color.New(color.FgYellow)
	case model.Complex:
		return color.New(color.FgRed)
	case model.VeryComplex:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func textOrNA(s *string) string {
	if s == nil {
		return NotAvailable
	}
	return *s
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
