package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/codeclarity/pkg/analyzer"
	"github.com/helmcode/codeclarity/pkg/formatter"
	"github.com/helmcode/codeclarity/pkg/model"
)

var (
	sessionOutputFormat string
	sessionExportDir    string
)

func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive analysis session",
		Long: `Start an interactive shell. Results are kept for the whole session, keyed by
file name, so showing or exporting a file again does not call the model again.

Commands:
  analyze FILE     analyze FILE, reusing a stored result if there is one
  reanalyze FILE   drop the stored result for FILE and analyze it again
  show FILE        print the stored result for FILE
  lint FILE        ask for linting and formatting suggestions
  export FILE      write FILE_report.json and FILE_report.pdf
  forget FILE      drop the stored result for FILE
  files            list files with stored results
  help             show this list
  quit             leave the session`,
		Args: cobra.NoArgs,
		RunE: runSession,
	}

	addCommonFlags(cmd)
	cmd.Flags().StringVarP(&sessionOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&sessionExportDir, "export-dir", "", "Directory for JSON/PDF reports (default from config)")

	return cmd
}

func runSession(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	dir := sessionExportDir
	if dir == "" {
		dir = a.cfg.Export.Dir
	}

	color.New(color.FgCyan, color.Bold).Fprintf(a.errOut, "🧠 CodeClarity session (%s, model %s). Type 'help' for commands.\n", a.lang.Label, a.analyzer.Model())

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Fprint(a.errOut, "codeclarity> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.errOut)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		verb, file, _ := strings.Cut(line, " ")
		verb = strings.ToLower(verb)
		file = strings.TrimSpace(file)
		if verb == "quit" || verb == "exit" {
			return nil
		}
		if err := a.dispatch(cmd.Context(), verb, file, dir); err != nil {
			if ctxErr := cmd.Context().Err(); ctxErr != nil {
				return ctxErr
			}
			a.printError(err.Error())
		}
	}
}

// dispatch runs one session command. Model and parse failures are reported
// here and do not end the session.
func (a *app) dispatch(ctx context.Context, verb, file, dir string) error {
	needsFile := map[string]bool{"analyze": true, "reanalyze": true, "show": true, "lint": true, "export": true, "forget": true}
	if needsFile[verb] && file == "" {
		return fmt.Errorf("usage: %s FILE", verb)
	}

	switch verb {
	case "analyze", "reanalyze":
		req, err := a.request(file, model.FullAnalysis)
		if err != nil {
			return err
		}
		res, err := a.analyze(ctx, req, verb == "reanalyze")
		if err != nil {
			if analyzer.IsAnalysisFailure(err) {
				a.fail(err)
				return nil
			}
			return err
		}
		return a.display(&formatter.Report{File: req.Filename(), Analysis: res}, sessionOutputFormat)

	case "show":
		res, ok := a.cached(file)
		if !ok {
			return fmt.Errorf("%s has not been analyzed in this session", file)
		}
		return a.display(&formatter.Report{File: cleanKey(file), Analysis: res}, sessionOutputFormat)

	case "lint":
		req, err := a.request(file, model.LintOnly)
		if err != nil {
			return err
		}
		suggestions, err := a.lint(ctx, req)
		if err != nil {
			if analyzer.IsAnalysisFailure(err) {
				a.fail(err)
				return nil
			}
			return err
		}
		return a.displayLint(req.Filename(), suggestions, sessionOutputFormat)

	case "export":
		res, ok := a.cached(file)
		if !ok {
			return fmt.Errorf("%s has not been analyzed in this session", file)
		}
		a.export(dir, cleanKey(file), res)
		return nil

	case "forget":
		if a.session.Invalidate(cleanKey(file)) {
			a.printSuccess(fmt.Sprintf("Forgot %s", file))
		} else {
			a.printWarning(fmt.Sprintf("%s had no stored result", file))
		}
		return nil

	case "files":
		files := a.session.Files()
		if len(files) == 0 {
			fmt.Fprintln(a.out, "no analyzed files yet")
		}
		for _, f := range files {
			fmt.Fprintln(a.out, f)
		}
		return nil

	case "help":
		fmt.Fprintln(a.out, "commands: analyze, reanalyze, show, lint, export, forget FILE; files; help; quit")
		return nil

	default:
		return fmt.Errorf("unknown command %q (type 'help')", verb)
	}
}

func (a *app) cached(file string) (*model.AnalysisResult, bool) {
	return a.session.Cached(cleanKey(file))
}
