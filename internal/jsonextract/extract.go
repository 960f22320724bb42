// Package jsonextract recovers a JSON document from a model reply
// that may be wrapped in prose, markdown fences, or other noise.
package jsonextract

import (
	"encoding/json"
	"strings"

	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
)

// Extract implements the four-step fallback strategy from spec.md
// §4.3: whole-text parse, then the widest {...} substring, then the
// widest [...] substring, then failure.
func Extract(text string) (any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return map[string]any{}, nil
	}

	var whole any
	if err := json.Unmarshal([]byte(trimmed), &whole); err == nil {
		return whole, nil
	}

	if v, ok := tryExtractBetween(trimmed, '{', '}'); ok {
		return v, nil
	}

	if v, ok := tryExtractBetween(trimmed, '[', ']'); ok {
		return v, nil
	}

	return nil, domainerrors.New(domainerrors.JSONExtractionFailed, "no valid JSON found in reply")
}

func tryExtractBetween(s string, open, close byte) (any, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}
	candidate := s[start : end+1]
	var v any
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, false
	}
	return v, true
}
