package prompts

import (
	"fmt"

	"github.com/helmcode/codeclarity/pkg/model"
)

const fence = "```"

// BuildAnalysisPrompt asks the model for the five-field JSON report on the
// request's source. The source is embedded verbatim.
func BuildAnalysisPrompt(req *model.AnalysisRequest) string {
	lang := req.Language()

	return fmt.Sprintf(`You are an AI code analyzer.

Analyze the following %s code and return a strict JSON object with the following fields:

- "explanation": (string) a simplified explanation of what the code does
- "complexity_score": (integer, 1 to 10)
- "complexity_reason": (string) why that complexity score was assigned
- "vulnerabilities": (array of strings)
- "solid_principles": (dictionary with SOLID principle keys and observations)

Respond ONLY with a valid JSON. No markdown, no commentary.

%s%s
%s
%s
`, lang.Label, fence, lang.FenceTag(), req.Source(), fence)
}

// Build returns the prompt matching the request's analysis kind.
func Build(req *model.AnalysisRequest) (string, error) {
	switch req.Kind() {
	case model.FullAnalysis:
		return BuildAnalysisPrompt(req), nil
	case model.LintOnly:
		return BuildLintPrompt(req), nil
	default:
		return "", fmt.Errorf("unknown analysis kind: %s", req.Kind())
	}
}
