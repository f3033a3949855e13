package legacy

import (
	"encoding/json"
	"strings"
)

// Kind classifies a raw legacy response body.
type Kind string

const (
	KindValidJSON     Kind = "validJson"
	KindHTMLErrorPage Kind = "htmlErrorPage"
	KindMalformedJSON Kind = "malformedJson"
	KindEmptyBody     Kind = "emptyBody"
)

// Classification is the result of inspecting a raw response body. Payload is
// only set for KindValidJSON. Salvaged marks payloads recovered from a body
// with stray text around the JSON object.
type Classification struct {
	Kind     Kind
	Payload  any
	Salvaged bool
}

// Classify decides whether a legacy response body is usable JSON. The legacy
// PHP endpoints leak warning/error HTML into JSON responses and occasionally
// prefix valid JSON with stray output, so the checks run in a fixed order:
// empty body, HTML markers, strict parse, balanced-object salvage.
func Classify(raw string) Classification {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Classification{Kind: KindEmptyBody}
	}
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "<html") || strings.HasPrefix(lower, "<!doctype") {
		return Classification{Kind: KindHTMLErrorPage}
	}

	var payload any
	if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
		return Classification{Kind: KindValidJSON, Payload: payload}
	}

	if candidate, ok := salvageObject(trimmed); ok {
		if err := json.Unmarshal([]byte(candidate), &payload); err == nil {
			return Classification{Kind: KindValidJSON, Payload: payload, Salvaged: true}
		}
	}
	return Classification{Kind: KindMalformedJSON}
}

// salvageObject extracts the first balanced {...} substring, tracking string
// literals and escapes so braces inside values do not end the scan early.
func salvageObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
