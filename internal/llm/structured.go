package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed value after JSON extraction.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls the first balanced JSON object or array out of raw model
// output and decodes it into T. Code fences, surrounding prose, comments and
// trailing commas are tolerated. The validator, if any, runs on the decoded value.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := extractJSONBlock(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON value found in response", ErrMalformedReply)
	}
	block = stripTrailingCommas(stripJSONComments(block))

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrMalformedReply, err)
		}
	}
	return result, nil
}

// stripCodeFences returns the body of the first ``` fence, or s unchanged
// when there is no fence.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var body []string
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				return strings.Join(body, "\n")
			}
			inFence = true
			continue
		}
		if inFence {
			body = append(body, line)
		}
	}
	if inFence {
		// Unterminated fence: the model stopped early.
		return strings.Join(body, "\n")
	}
	return s
}

// extractJSONBlock finds the first balanced {...} or [...] in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}

	depth := 0
	w := jsonWalker{}
	for i := start; i < len(s); i++ {
		c := s[i]
		if w.step(c) {
			continue
		}
		switch c {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// stripJSONComments removes // and /* */ comments outside string values.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	w := jsonWalker{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if w.step(c) {
			b.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stripTrailingCommas drops a comma that is followed only by whitespace and
// a closing bracket, outside string values.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	w := jsonWalker{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if w.step(c) {
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// jsonWalker tracks whether a byte scan is inside a JSON string.
type jsonWalker struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it belongs to a string literal
// (including its quotes).
func (w *jsonWalker) step(c byte) bool {
	switch {
	case w.escaped:
		w.escaped = false
		return true
	case w.inString && c == '\\':
		w.escaped = true
		return true
	case c == '"':
		w.inString = !w.inString
		return true
	default:
		return w.inString
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
