package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Language is a source language the analyzer accepts uploads for.
type Language struct {
	Label     string
	Extension string
}

var languages = []Language{
	{Label: "Python", Extension: "py"},
	{Label: "C", Extension: "c"},
	{Label: "C++", Extension: "cpp"},
	{Label: "COBOL", Extension: "cbl"},
	{Label: "Fortran", Extension: "f90"},
	{Label: "C#", Extension: "cs"},
}

// DefaultLanguage is preselected when no language is given.
var DefaultLanguage = languages[0]

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage finds a language by its label, case-insensitively.
func LookupLanguage(label string) (Language, error) {
	for _, l := range languages {
		if strings.EqualFold(l.Label, strings.TrimSpace(label)) {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("unsupported language %q (supported: %s)", label, strings.Join(labels(), ", "))
}

// FenceTag is the tag used on the fenced code block that carries the source.
func (l Language) FenceTag() string {
	return strings.ToLower(l.Label)
}

// Accepts reports whether filename carries this language's extension.
func (l Language) Accepts(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.EqualFold(ext, l.Extension)
}

func (l Language) String() string {
	return l.Label
}

func labels() []string {
	out := make([]string, 0, len(languages))
	for _, l := range languages {
		out = append(out, l.Label)
	}
	return out
}
