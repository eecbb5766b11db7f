package jsonrepair

import "strings"

// balancedObject returns the substring of text from the first '{' through
// its depth-matched closing '}'. Braces inside string literals are counted
// too; this is a best-effort structural scan, not a JSON tokenizer. Returns
// "" when no balanced object exists (e.g. truncated output).
func balancedObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
