package model

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// AnalysisKind selects which prompt is sent for a request.
type AnalysisKind int

const (
	FullAnalysis AnalysisKind = iota
	LintOnly
)

func (k AnalysisKind) String() string {
	switch k {
	case FullAnalysis:
		return "analysis"
	case LintOnly:
		return "lint"
	default:
		return fmt.Sprintf("AnalysisKind(%d)", int(k))
	}
}

var ErrInvalidSource = errors.New("source is not valid UTF-8")

// AnalysisRequest is one file submitted for analysis. It cannot be changed
// after NewAnalysisRequest returns it.
type AnalysisRequest struct {
	filename string
	source   string
	language Language
	kind     AnalysisKind
}

// NewAnalysisRequest validates that source is the decoded UTF-8 content of
// filename and that the file carries the language's extension.
func NewAnalysisRequest(filename string, source []byte, lang Language, kind AnalysisKind) (*AnalysisRequest, error) {
	if !lang.Accepts(filename) {
		return nil, fmt.Errorf("%s: expected a .%s file for %s", filename, lang.Extension, lang.Label)
	}
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("%s: %w", filename, ErrInvalidSource)
	}
	return &AnalysisRequest{
		filename: filename,
		source:   string(source),
		language: lang,
		kind:     kind,
	}, nil
}

func (r *AnalysisRequest) Filename() string { return r.filename }
func (r *AnalysisRequest) Source() string { return r.source }
func (r *AnalysisRequest) Language() Language { return r.language }
func (r *AnalysisRequest) Kind() AnalysisKind { return r.kind }

// WithKind returns a copy of the request asking for a different analysis.
func (r *AnalysisRequest) WithKind(kind AnalysisKind) *AnalysisRequest {
	cp := *r
	cp.kind = kind
	return &cp
}
