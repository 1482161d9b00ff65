package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/helmcode/codeclarity/pkg/model"
)

// ErrUnsupportedEncoding is returned when a report holds text the PDF core
// fonts cannot encode. Only Latin-1 text is supported.
var ErrUnsupportedEncoding = errors.New("text cannot be encoded as Latin-1")

const (
	pdfFontFamily = "Arial"
	pdfFontSize   = 12
	pdfLineHeight = 10
)

// PDFName is the export file name for an uploaded file.
func PDFName(filename string) string {
	return filepath.Base(filename) + "_report.pdf"
}

func pdfTitle(filename string) string {
	return fmt.Sprintf("CodeClarity Report for %s", filepath.Base(filename))
}

type pdfSection struct {
	field string
	value string
}

// WritePDF renders the result as a paginated text document. It checks every
// string before writing anything, so an encoding failure leaves w untouched.
func WritePDF(w io.Writer, filename string, result *model.AnalysisResult) error {
	title := pdfTitle(filename)
	if err := checkLatin1("title", title); err != nil {
		return err
	}

	sections, err := pdfSections(result)
	if err != nil {
		return err
	}
	for _, s := range sections {
		if err := checkLatin1(s.field, s.value); err != nil {
			return err
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "", pdfFontSize)
	pdf.MultiCell(0, pdfLineHeight, tr(title+"\n\n"), "", "L", false)
	for _, s := range sections {
		pdf.MultiCell(0, pdfLineHeight, tr(fmt.Sprintf("%s:\n%s\n\n", strings.ToUpper(s.field), s.value)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// ExportPDF writes <filename>_report.pdf into dir and returns its path.
func ExportPDF(dir, filename string, result *model.AnalysisResult) (string, error) {
	path := filepath.Join(dir, PDFName(filename))
	return path, writeFile(path, func(w io.Writer) error {
		return WritePDF(w, filename, result)
	})
}

// pdfSections lays out the fields in report order. Lists become one item per
// line and mappings are shown as indented JSON.
func pdfSections(result *model.AnalysisResult) ([]pdfSection, error) {
	var sections []pdfSection
	add := func(field, value string) {
		sections = append(sections, pdfSection{field: field, value: value})
	}

	add(model.FieldExplanation, stringValue(result.Explanation))

	score := "null"
	if result.ComplexityScore != nil {
		score = strconv.Itoa(*result.ComplexityScore)
	}
	add(model.FieldComplexityScore, score)

	add(model.FieldComplexityReason, stringValue(result.ComplexityReason))

	if result.Vulnerabilities == nil {
		add(model.FieldVulnerabilities, "null")
	} else {
		add(model.FieldVulnerabilities, strings.Join(result.Vulnerabilities, "\n"))
	}

	principles := "null"
	if result.SolidPrinciples != nil {
		raw, err := model.MarshalPrinciples(result.SolidPrinciples)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", model.FieldSolidPrinciples, err)
		}
		data, err := marshalIndent(json.RawMessage(raw))
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", model.FieldSolidPrinciples, err)
		}
		principles = strings.TrimSuffix(string(data), "\n")
	}
	add(model.FieldSolidPrinciples, principles)

	return sections, nil
}

func stringValue(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

func checkLatin1(field, s string) error {
	for i, r := range s {
		if r > 0xFF {
			return fmt.Errorf("%w: field %s has %q at byte %d", ErrUnsupportedEncoding, field, r, i)
		}
	}
	return nil
}
