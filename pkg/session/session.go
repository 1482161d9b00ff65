package session

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/helmcode/codeclarity/pkg/logger"
	"github.com/helmcode/codeclarity/pkg/model"
)

// Analyzer produces a fresh result for a request.
type Analyzer interface {
	Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResult, error)
}

// Session holds the analysis results of one interactive session, keyed by
// filename, so that showing a file again does not call the model again.
type Session struct {
	analyzer Analyzer
	results  *lru.Cache[string, *model.AnalysisResult]
}

// New creates a session that keeps at most size results.
func New(a Analyzer, size int) (*Session, error) {
	cache, err := lru.New[string, *model.AnalysisResult](size)
	if err != nil {
		return nil, err
	}
	return &Session{analyzer: a, results: cache}, nil
}

// Cached returns the stored result for filename, if any.
func (s *Session) Cached(filename string) (*model.AnalysisResult, bool) {
	return s.results.Get(filename)
}

// Analyze returns the cached result for the request's file, or runs the
// analyzer once and caches a successful result. Failures are not cached.
func (s *Session) Analyze(ctx context.Context, req *model.AnalysisRequest) (res *model.AnalysisResult, cached bool, err error) {
	if res, ok := s.results.Get(req.Filename()); ok {
		logger.Log.Debugf("session cache hit for %s", req.Filename())
		return res, true, nil
	}

	res, err = s.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, false, err
	}
	s.results.Add(req.Filename(), res)
	return res, false, nil
}

// Reanalyze drops any stored result for the file and analyzes it again.
func (s *Session) Reanalyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResult, error) {
	s.Invalidate(req.Filename())
	res, _, err := s.Analyze(ctx, req)
	return res, err
}

// Invalidate forgets the result for filename and reports whether one existed.
func (s *Session) Invalidate(filename string) bool {
	return s.results.Remove(filename)
}

// Files lists the filenames with stored results, oldest first.
func (s *Session) Files() []string {
	return s.results.Keys()
}

func (s *Session) Len() int {
	return s.results.Len()
}
