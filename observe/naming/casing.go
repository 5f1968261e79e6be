package naming

import (
	"strings"
	"unicode"
)

// Export upper-cases the first rune so the name is visible outside its package.
func Export(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Unexport lower-cases the leading capital run of s.
// Handles acronyms the way Go names them (e.g., "URLChanged" -> "urlChanged",
// "ID" -> "id", "OnScoreChange" -> "onScoreChange").
func Unexport(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n == 1 || n == len(runes):
		// Single capital or all-caps word
	default:
		// Keep the last capital of an acronym when it starts the next word
		if unicode.IsLower(runes[n]) {
			n--
		}
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// ToSnakeCase converts PascalCase or camelCase to snake_case.
// Handles acronyms properly (e.g., "HTTPSConnection" -> "https_connection")
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if i > 0 && unicode.IsUpper(r) {
			// Don't split inside an acronym unless the next rune starts a new word
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if (!prevUpper || nextLower) && runes[i-1] != '_' {
				result.WriteRune('_')
			}
		}

		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}
