package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/codeclarity/pkg/model"
	"github.com/helmcode/codeclarity/pkg/parser"
)

const sampleReply = `{
  "explanation": "Computes Fibonacci numbers <memoized> & prints them",
  "complexity_score": 6,
  "complexity_reason": "recursion plus a cache",
  "vulnerabilities": ["unbounded recursion depth", "global mutable cache"],
  "solid_principles": {
    "Single Responsibility": "fib only computes",
    "Open<Closed>": "extends via n < 2 && memo",
    "Dependency Inversion": "uses a module-level dict"
  }
}`

func sample(t *testing.T) *model.AnalysisResult {
	t.Helper()
	res, err := parser.ParseAnalysis(sampleReply)
	require.NoError(t, err)
	return res
}

func TestWriteJSONRoundTrip(t *testing.T) {
	orig := sample(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, orig))
	assert.Contains(t, buf.String(), "\n  \"explanation\": ")
	assert.Contains(t, buf.String(), "<memoized> &")

	back, err := parser.ParseAnalysis(buf.String())
	require.NoError(t, err)
	assert.Equal(t, *orig.Explanation, *back.Explanation)
	assert.Equal(t, *orig.ComplexityScore, *back.ComplexityScore)
	assert.Equal(t, *orig.ComplexityReason, *back.ComplexityReason)
	assert.Equal(t, orig.Vulnerabilities, back.Vulnerabilities)

	var origKeys, backKeys []string
	for p := orig.SolidPrinciples.Oldest(); p != nil; p = p.Next() {
		origKeys = append(origKeys, p.Key+"="+p.Value)
	}
	for p := back.SolidPrinciples.Oldest(); p != nil; p = p.Next() {
		backKeys = append(backKeys, p.Key+"="+p.Value)
	}
	assert.Equal(t, origKeys, backKeys)
}

func TestExportsKeepMarkupCharacters(t *testing.T) {
	res := sample(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))
	assert.Contains(t, buf.String(), `"Open<Closed>": "extends via n < 2 && memo"`)
	assert.NotContains(t, buf.String(), `\u003c`)
	assert.NotContains(t, buf.String(), `\u0026`)

	sections, err := pdfSections(res)
	require.NoError(t, err)
	solid := sections[len(sections)-1]
	assert.Equal(t, model.FieldSolidPrinciples, solid.field)
	assert.Contains(t, solid.value, `"Open<Closed>": "extends via n < 2 && memo"`)
	assert.NotContains(t, solid.value, `\u00`)
}

func TestWriteJSONKeepsAbsentFieldsAbsent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &model.AnalysisResult{}))

	back, err := parser.ParseAnalysis(buf.String())
	require.NoError(t, err)
	assert.Equal(t, &model.AnalysisResult{}, back)
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportJSON(dir, "uploads/hello.py", sample(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hello.py_report.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n"))
}

func TestWritePDFASCII(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "fib.py", sample(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePDFEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "empty.py", &model.AnalysisResult{}))
	assert.NotZero(t, buf.Len())
}

func TestWritePDFLatin1(t *testing.T) {
	expl := "Berechnet die Größe – nein, nur é"
	res := sample(t)
	res.Explanation = &expl

	err := WritePDF(&bytes.Buffer{}, "fib.py", res)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding, "en dash is outside Latin-1")

	expl = "Berechnet die Größe, café"
	assert.NoError(t, WritePDF(&bytes.Buffer{}, "fib.py", res))
}

func TestWritePDFRejectsNonLatin1WithoutWriting(t *testing.T) {
	res := sample(t)
	res.Vulnerabilities = append(res.Vulnerabilities, "注入攻击")

	var buf bytes.Buffer
	err := WritePDF(&buf, "fib.py", res)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
	assert.ErrorContains(t, err, model.FieldVulnerabilities)
	assert.Zero(t, buf.Len())
}

func TestWritePDFPaginatesLongReports(t *testing.T) {
	long := strings.Repeat("This line explains one more step of the program.\n", 400)
	res := sample(t)
	res.Explanation = &long

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "long.py", res))
	assert.Greater(t, bytes.Count(buf.Bytes(), []byte("/Type /Page\n")), 1)
}

func TestExportPDFRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	title := "café.py"
	path, err := ExportPDF(dir, title, sample(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "café.py_report.pdf"), path)

	bad := sample(t)
	bad.Vulnerabilities = []string{"✗"}
	_, err = ExportPDF(dir, "bad.py", bad)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
	_, statErr := os.Stat(filepath.Join(dir, "bad.py_report.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPDFTitleUsesBaseName(t *testing.T) {
	assert.Equal(t, "CodeClarity Report for a.py", pdfTitle("src/a.py"))
	assert.Equal(t, "CodeClarity Report for a.py", pdfTitle("a.py"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "a.cbl_report.json", JSONName("a.cbl"))
	assert.Equal(t, "a.cbl_report.pdf", PDFName("dir/a.cbl"))
}
