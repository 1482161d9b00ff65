package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/codeclarity/pkg/analyzer"
	"github.com/helmcode/codeclarity/pkg/config"
	"github.com/helmcode/codeclarity/pkg/exporter"
	"github.com/helmcode/codeclarity/pkg/formatter"
	"github.com/helmcode/codeclarity/pkg/llm"
	"github.com/helmcode/codeclarity/pkg/logger"
	"github.com/helmcode/codeclarity/pkg/model"
	"github.com/helmcode/codeclarity/pkg/session"
)

var (
	configPath  string
	language    string
	llmProvider string
	llmModel    string
	verbose     bool
)

// newLLM is replaced in tests.
var newLLM = llm.CreateFromConfig

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVarP(&language, "language", "l", model.DefaultLanguage.Label, "Source language (Python, C, C++, COBOL, Fortran, C#)")
	cmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (openai, claude, gemini, ollama, compatible)")
	cmd.Flags().StringVar(&llmModel, "model", "", "LLM model to use (overrides default)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	lang     model.Language
	analyzer *analyzer.Analyzer
	session  *session.Session
	out      io.Writer
	errOut   io.Writer
}

// newApp loads configuration, fails early on a missing credential, and
// connects the analyzer to the configured model.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath, config.Overrides{
		Provider: llmProvider,
		Model:    llmModel,
		Verbose:  verbose,
	})
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lang, err := model.LookupLanguage(language)
	if err != nil {
		return nil, err
	}

	client, err := newLLM(cmd.Context(), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	a := analyzer.NewWithLLM(client)
	sess, err := session.New(a, cfg.Cache.Size)
	if err != nil {
		return nil, err
	}

	logger.Log.Debugf("using %s model %s", cfg.LLM.Provider, client.GetModel())
	return &app{
		cfg:      cfg,
		lang:     lang,
		analyzer: a,
		session:  sess,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}, nil
}

// request reads path and wraps it as an immutable request.
func (a *app) request(path string, kind model.AnalysisKind) (*model.AnalysisRequest, error) {
	if !a.lang.Accepts(path) {
		return nil, fmt.Errorf("%s: expected a .%s file for %s", path, a.lang.Extension, a.lang.Label)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if limit := a.cfg.Limits.MaxSourceBytes; limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("%s: %d bytes exceeds the %d byte limit", path, info.Size(), limit)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return model.NewAnalysisRequest(cleanKey(path), data, a.lang, kind)
}

// cleanKey is the session key and report name used for a path.
func cleanKey(path string) string {
	return filepath.Clean(path)
}

// analyze runs one analysis through the session, dropping any cached result
// first when fresh is set.
func (a *app) analyze(ctx context.Context, req *model.AnalysisRequest, fresh bool) (*model.AnalysisResult, error) {
	stop := a.spin(fmt.Sprintf(" Analyzing %s...", req.Filename()))
	var (
		res    *model.AnalysisResult
		cached bool
		err    error
	)
	if fresh {
		res, err = a.session.Reanalyze(ctx, req)
	} else {
		res, cached, err = a.session.Analyze(ctx, req)
	}
	stop()
	if err != nil {
		return nil, err
	}
	if cached {
		a.printSuccess(fmt.Sprintf("Using cached analysis for %s", req.Filename()))
	} else {
		a.printSuccess(fmt.Sprintf("Analysis complete for %s", req.Filename()))
	}
	return res, nil
}

func (a *app) lint(ctx context.Context, req *model.AnalysisRequest) (string, error) {
	stop := a.spin(fmt.Sprintf(" Collecting lint suggestions for %s...", req.Filename()))
	defer stop()
	return a.analyzer.Lint(ctx, req)
}

// export writes both report files, reporting each outcome on its own.
func (a *app) export(dir, filename string, res *model.AnalysisResult) {
	if path, err := exporter.ExportJSON(dir, filename, res); err != nil {
		a.printError(fmt.Sprintf("JSON export failed: %v", err))
	} else {
		a.printSuccess(fmt.Sprintf("Wrote %s", path))
	}

	path, err := exporter.ExportPDF(dir, filename, res)
	switch {
	case errors.Is(err, exporter.ErrUnsupportedEncoding):
		a.printWarning(fmt.Sprintf("PDF export skipped: %v", err))
	case err != nil:
		a.printError(fmt.Sprintf("PDF export failed: %v", err))
	default:
		a.printSuccess(fmt.Sprintf("Wrote %s", path))
	}
}

func (a *app) displayLint(filename, suggestions, format string) error {
	return formatter.DisplayLint(a.out, filename, suggestions, format)
}

func (a *app) display(report *formatter.Report, format string) error {
	return formatter.DisplayResults(a.out, report, format)
}

// fail reports err to the user. Model and parse failures print the generic
// retry message; the cause only goes to the debug log.
func (a *app) fail(err error) {
	logger.Log.Debugf("analysis failed: %v", err)
	a.printError(analyzer.UserMessage(err))
}

func (a *app) spin(suffix string) func() {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(a.errOut))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

func (a *app) printSuccess(msg string) {
	color.New(color.FgGreen).Fprintf(a.errOut, "✓ %s\n", msg)
}

func (a *app) printWarning(msg string) {
	color.New(color.FgYellow).Fprintf(a.errOut, "! %s\n", msg)
}

func (a *app) printError(msg string) {
	color.New(color.FgRed).Fprintf(a.errOut, "✗ %s\n", msg)
}
