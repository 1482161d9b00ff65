package prompts

import (
	"fmt"

	"github.com/helmcode/codeclarity/pkg/model"
)

// BuildLintPrompt asks for free-form linting and formatting suggestions.
func BuildLintPrompt(req *model.AnalysisRequest) string {
	lang := req.Language()
	return fmt.Sprintf("Suggest linting and formatting improvements for this %s code:\n%s%s\n%s\n%s",
		lang.Label, fence, lang.FenceTag(), req.Source(), fence)
}
