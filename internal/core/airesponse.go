package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// aiResponseWire is the raw JSON shape expected from an external classifier.
type aiResponseWire struct {
	Status     string  `json:"status"`
	Company    *string `json:"company"`
	JobTitle   *string `json:"job_title"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ParseAIClassification turns raw model output into a validated
// AIClassification. Models wrap their JSON in incidental formatting, so the
// first balanced JSON object is extracted from the text before parsing.
// Malformed or out-of-schema responses are errors; the caller treats any
// error as a failed AI attempt.
func ParseAIClassification(raw string) (*AIClassification, error) {
	jsonStr, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var wire aiResponseWire
	if err := json.Unmarshal([]byte(jsonStr), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response as JSON: %w", err)
	}

	status, err := ParseStatus(wire.Status)
	if err != nil {
		return nil, fmt.Errorf("classifier response out of schema: %w", err)
	}
	if wire.Confidence < 0 || wire.Confidence > 1 {
		return nil, fmt.Errorf("classifier confidence %v outside [0,1]", wire.Confidence)
	}

	return &AIClassification{
		Status:     status,
		Company:    optionalFromPtr(wire.Company),
		JobTitle:   optionalFromPtr(wire.JobTitle),
		Confidence: wire.Confidence,
		Reasoning:  wire.Reasoning,
	}, nil
}

func optionalFromPtr(s *string) Optional[string] {
	if s == nil || strings.TrimSpace(*s) == "" {
		return None[string]()
	}
	return Some(strings.TrimSpace(*s))
}

// extractJSONObject returns the first balanced {...} object in text,
// respecting string literals and escapes so braces inside values do not
// unbalance the scan.
func extractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in classifier response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in classifier response")
}
