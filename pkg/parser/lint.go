package parser

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("```[a-zA-Z0-9+#]*\n?|```")

// CleanLint removes markdown code fences such as ```python ... ``` from free-form
// lint suggestions so they print as plain text.
func CleanLint(raw string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))
}
