package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/helmcode/codeclarity/pkg/model"
)

// JSONName is the export file name for an uploaded file.
func JSONName(filename string) string {
	return filepath.Base(filename) + "_report.json"
}

// WriteJSON writes the result as two-space indented JSON keyed by field name.
func WriteJSON(w io.Writer, result *model.AnalysisResult) error {
	data, err := marshalIndent(result)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// marshalIndent is json.MarshalIndent without HTML escaping, so that values
// like "a < b" are written as they were received.
func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes <filename>_report.json into dir and returns its path.
func ExportJSON(dir, filename string, result *model.AnalysisResult) (string, error) {
	path := filepath.Join(dir, JSONName(filename))
	return path, writeFile(path, func(w io.Writer) error {
		return WriteJSON(w, result)
	})
}

// writeFile creates path and removes it again if render fails.
func writeFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
