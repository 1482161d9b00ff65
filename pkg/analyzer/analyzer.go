package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/helmcode/codeclarity/pkg/llm"
	"github.com/helmcode/codeclarity/pkg/logger"
	"github.com/helmcode/codeclarity/pkg/model"
	"github.com/helmcode/codeclarity/pkg/parser"
	"github.com/helmcode/codeclarity/pkg/prompts"
)

// RetryMessage is shown for every failed analysis, whatever the cause.
const RetryMessage = "Could not parse response. Please retry."

type Analyzer struct {
	llm llm.LLM
}

func NewWithLLM(l llm.LLM) *Analyzer {
	return &Analyzer{llm: l}
}

// Model names the model behind the analyzer.
func (a *Analyzer) Model() string {
	return a.llm.GetModel()
}

// Analyze sends the full-analysis prompt and parses the reply.
func (a *Analyzer) Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResult, error) {
	prompt, err := prompts.Build(req.WithKind(model.FullAnalysis))
	if err != nil {
		return nil, err
	}
	logger.Log.Debugf("analysis prompt for %s: %d bytes", req.Filename(), len(prompt))

	rawResp, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("LLM chat: %w", err)
	}

	result, err := parser.ParseAnalysis(rawResp)
	if err != nil {
		logger.Log.Debugf("unparseable reply for %s: %q", req.Filename(), truncate(rawResp, 200))
		return nil, err
	}
	return result, nil
}

// Lint sends the lint-only prompt and returns the cleaned suggestions.
func (a *Analyzer) Lint(ctx context.Context, req *model.AnalysisRequest) (string, error) {
	prompt, err := prompts.Build(req.WithKind(model.LintOnly))
	if err != nil {
		return "", err
	}
	logger.Log.Debugf("lint prompt for %s: %d bytes", req.Filename(), len(prompt))

	rawResp, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("LLM chat: %w", err)
	}
	return parser.CleanLint(rawResp), nil
}

// IsAnalysisFailure reports whether err came from the model call or from
// parsing its reply, as opposed to a local problem such as an unreadable file.
func IsAnalysisFailure(err error) bool {
	return errors.Is(err, llm.ErrCompletion) || errors.Is(err, parser.ErrParse)
}

// UserMessage returns the text shown to the user for err. Model and parse
// failures all collapse to RetryMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsAnalysisFailure(err) {
		return RetryMessage
	}
	return err.Error()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
