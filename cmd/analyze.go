package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/codeclarity/pkg/analyzer"
	"github.com/helmcode/codeclarity/pkg/formatter"
	"github.com/helmcode/codeclarity/pkg/model"
)

var (
	outputFormat string
	withLint     bool
	showSource   bool
	exportDir    string
	noExport     bool
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Explain, score and review source files with AI assistance",
		Long: `Send each file to the configured model and report an explanation, a complexity
score, vulnerabilities and SOLID-principle observations, followed by linting and
formatting suggestions. JSON and PDF reports are written into the export directory
as <file>_report.json / .pdf.

Examples:
  # Analyze a Python file
  codeclarity analyze fib.py

  # Analyze COBOL sources, showing each source next to its report
  codeclarity analyze -l COBOL PAYROLL.cbl LEDGER.cbl --show-source

  # Machine-readable output without writing report files
  codeclarity analyze -l C main.c -o json --lint=false --no-export`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	addCommonFlags(cmd)
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().BoolVar(&withLint, "lint", true, "Also ask for linting and formatting suggestions (--lint=false to skip)")
	cmd.Flags().BoolVar(&showSource, "show-source", false, "Include the analyzed source in the report")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for JSON/PDF reports (default from config)")
	cmd.Flags().BoolVar(&noExport, "no-export", false, "Do not write JSON/PDF reports")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	// Every file must match the selected language before any model call.
	var requests []*model.AnalysisRequest
	for _, path := range args {
		req, err := a.request(path, model.FullAnalysis)
		if err != nil {
			return err
		}
		requests = append(requests, req)
	}

	dir := exportDir
	if dir == "" {
		dir = a.cfg.Export.Dir
	}

	if outputFormat == "human" {
		printHeader(a, args)
	}

	failed := 0
	for _, req := range requests {
		res, err := a.analyze(cmd.Context(), req, false)
		if err != nil {
			if !analyzer.IsAnalysisFailure(err) {
				return err
			}
			a.fail(err)
			failed++
			continue
		}

		var suggestions string
		if withLint {
			suggestions, err = a.lint(cmd.Context(), req)
			if err != nil {
				a.fail(err)
			}
		}

		report := &formatter.Report{File: req.Filename(), Analysis: res, LintSuggestions: suggestions}
		if showSource {
			report.Source = req.Source()
		}
		if err := a.display(report, outputFormat); err != nil {
			return err
		}
		if !noExport {
			a.export(dir, req.Filename(), res)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be analyzed", failed, len(requests))
	}
	return nil
}

func printHeader(a *app, files []string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(a.errOut)
	cyan.Fprintln(a.errOut, "🧠 CodeClarity – AI Code Analyzer")
	fmt.Fprintf(a.errOut, "📌 Language: %s (.%s)\n", a.lang.Label, a.lang.Extension)
	fmt.Fprintf(a.errOut, "📂 Files: %s\n", strings.Join(files, ", "))
	fmt.Fprintf(a.errOut, "🤖 Model: %s (%s)\n", a.analyzer.Model(), a.cfg.LLM.Provider)
	fmt.Fprintln(a.errOut)
}
