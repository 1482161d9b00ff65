package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/codeclarity/pkg/model"
)

type countingAnalyzer struct {
	calls int
	err   error
}

func (c *countingAnalyzer) Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResult, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	score := c.calls
	return &model.AnalysisResult{ComplexityScore: &score}, nil
}

func req(t *testing.T, name string) *model.AnalysisRequest {
	t.Helper()
	r, err := model.NewAnalysisRequest(name, []byte("x = 1"), model.DefaultLanguage, model.FullAnalysis)
	require.NoError(t, err)
	return r
}

func TestSessionCachesByFilename(t *testing.T) {
	a := &countingAnalyzer{}
	s, err := New(a, 8)
	require.NoError(t, err)
	ctx := context.Background()

	first, cached, err := s.Analyze(ctx, req(t, "a.py"))
	require.NoError(t, err)
	assert.False(t, cached)

	again, cached, err := s.Analyze(ctx, req(t, "a.py"))
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, first, again)
	assert.Equal(t, 1, a.calls)

	_, _, err = s.Analyze(ctx, req(t, "b.py"))
	require.NoError(t, err)
	assert.Equal(t, 2, a.calls)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a.py", "b.py"}, s.Files())
}

func TestSessionReanalyze(t *testing.T) {
	a := &countingAnalyzer{}
	s, err := New(a, 8)
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = s.Analyze(ctx, req(t, "a.py"))
	require.NoError(t, err)

	res, err := s.Reanalyze(ctx, req(t, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, 2, *res.ComplexityScore)

	cached, ok := s.Cached("a.py")
	require.True(t, ok)
	assert.Same(t, res, cached)
}

func TestSessionInvalidate(t *testing.T) {
	s, err := New(&countingAnalyzer{}, 8)
	require.NoError(t, err)

	assert.False(t, s.Invalidate("a.py"))
	_, _, err = s.Analyze(context.Background(), req(t, "a.py"))
	require.NoError(t, err)
	assert.True(t, s.Invalidate("a.py"))
	_, ok := s.Cached("a.py")
	assert.False(t, ok)
}

func TestSessionDoesNotCacheFailures(t *testing.T) {
	a := &countingAnalyzer{err: errors.New("boom")}
	s, err := New(a, 8)
	require.NoError(t, err)

	_, _, err = s.Analyze(context.Background(), req(t, "a.py"))
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())

	a.err = nil
	_, cached, err := s.Analyze(context.Background(), req(t, "a.py"))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, a.calls)
}

func TestSessionIsBounded(t *testing.T) {
	s, err := New(&countingAnalyzer{}, 2)
	require.NoError(t, err)
	for _, name := range []string{"a.py", "b.py", "c.py"} {
		_, _, err := s.Analyze(context.Background(), req(t, name))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, s.Len())
	_, ok := s.Cached("a.py")
	assert.False(t, ok)
}

func TestNewRejectsZeroSize(t *testing.T) {
	_, err := New(&countingAnalyzer{}, 0)
	assert.Error(t, err)
}
