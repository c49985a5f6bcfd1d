package normalizer

import (
	"regexp"
	"strings"
)

var (
	// {level >= 5 ? '3d6' : '2d6'} — unresolved conditional templates.
	ternaryExprRe = regexp.MustCompile(`\{[^{}?]*\?[^{}]*\}`)
	// {[someList][index]} — unresolved double array-index templates.
	arrayIndexRe = regexp.MustCompile(`\{\s*\[[^\[\]{}]*\]\s*\[[^\[\]{}]*\]\s*\}`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// StripTemplates removes unresolved template expressions from free text so
// the UI never shows raw template syntax. Removal loops to a fixed point,
// bounded by the input length to stay safe on pathological nesting, then
// collapses whitespace runs and trims. Text without template patterns comes
// back unchanged apart from whitespace normalization, and the function is
// idempotent.
func StripTemplates(text string) string {
	if text == "" {
		return ""
	}

	s := text
	for i := 0; i <= len(text); i++ {
		next := ternaryExprRe.ReplaceAllString(s, "")
		next = arrayIndexRe.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}

	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
