package validation

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictHTMLPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all HTML from free text and drops unprintable runes.
// The result is plain text: entities escaped by the policy are decoded again.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictHTMLPolicy.Sanitize(StripUnprintable(s))))
}

func isFormulaTrigger(c byte) bool {
	switch c {
	case '=', '+', '-', '@', '\t', '\r':
		return true
	}
	return false
}

// isGuarded reports whether s is a quote followed by text that starts with
// a formula trigger or is itself guarded.
func isGuarded(s string) bool {
	if len(s) < 2 || s[0] != '\'' {
		return false
	}
	rest := strings.TrimSpace(s[1:])
	return rest != "" && (isFormulaTrigger(rest[0]) || isGuarded(rest))
}

// SanitizeForFormulaInjection prefixes a single quote when s would be read
// as a formula by a spreadsheet. Text that already looks guarded is quoted
// again so StripFormulaGuard gives it back unchanged.
func SanitizeForFormulaInjection(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	if isFormulaTrigger(trimmed[0]) || isGuarded(trimmed) {
		return "'" + s
	}
	return s
}

// StripFormulaGuard removes the quote SanitizeForFormulaInjection adds.
func StripFormulaGuard(s string) string {
	if isGuarded(s) {
		return s[1:]
	}
	return s
}

// StripUnprintable removes non-printable characters except common whitespace.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
