package model

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON writes the result with <, > and & left as the model sent them.
// The solid_principles mapping keeps its order.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	principles, err := MarshalPrinciples(r.SolidPrinciples)
	if err != nil {
		return nil, err
	}

	type plain AnalysisResult
	return encodeUnescaped(struct {
		plain
		SolidPrinciples json.RawMessage `json:"solid_principles"`
	}{plain(r), principles})
}

// MarshalPrinciples encodes p as a compact JSON object in insertion order. The
// ordered map's own encoder always escapes HTML characters, so pairs are
// written one by one here instead.
func MarshalPrinciples(p *Principles) ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := p.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := encodeUnescaped(pair.Key)
		if err != nil {
			return nil, err
		}
		value, err := encodeUnescaped(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
