package service

import (
	"strings"

	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

// ExtractJSON returns the JSON object or array that follows marker in html. The first marker
// inside a <script> element is used, so page text that repeats the marker is skipped; without
// any such element the first occurrence is used. Brackets inside string literals, including
// escaped quotes, do not count towards nesting.
func ExtractJSON(html, marker string) (string, error) {
	idx := findMarker(html, marker)
	if idx < 0 {
		return "", exportDomain.ErrMarkerNotFound
	}

	rest := html[idx+len(marker):]
	start := 0
	for start < len(rest) && isJSONSpace(rest[start]) {
		start++
	}
	if start == len(rest) || (rest[start] != '{' && rest[start] != '[') {
		return "", exportDomain.ErrMalformedEmbedding
	}

	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := start; i < len(rest); i++ {
		c := rest[i]
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
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return "", exportDomain.ErrMalformedEmbedding
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return rest[start : i+1], nil
			}
		}
	}
	return "", exportDomain.ErrMalformedEmbedding
}

func findMarker(html, marker string) int {
	first := strings.Index(html, marker)
	for idx := first; idx >= 0; {
		if insideScript(html[:idx]) {
			return idx
		}
		next := strings.Index(html[idx+len(marker):], marker)
		if next < 0 {
			break
		}
		idx += len(marker) + next
	}
	return first
}

// insideScript reports whether the text before a position ends within an open <script> element.
// Escaped page text cannot contain a literal "<script".
func insideScript(before string) bool {
	lower := strings.ToLower(before)
	open := strings.LastIndex(lower, "<script")
	return open >= 0 && open > strings.LastIndex(lower, "</script")
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
