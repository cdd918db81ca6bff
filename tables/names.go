package tables

import (
	"strings"
	"unicode"
)

/*
NormalizeName converts a column header to snake_case:
"ZIP Code" -> "zip_code", "CCAvg" -> "cc_avg", "CreditCard" -> "credit_card"
*/
func NormalizeName(s string) string {
	rs := []rune(strings.TrimSpace(s))
	b := strings.Builder{}
	sep := false
	underscore := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
			b.WriteByte('_')
		}
	}
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			sep = true
			continue
		}
		if sep {
			underscore()
			sep = false
		} else if unicode.IsUpper(r) && i > 0 {
			p := rs[i-1]
			if unicode.IsLower(p) || unicode.IsDigit(p) ||
				(unicode.IsUpper(p) && i+1 < len(rs) && unicode.IsLower(rs[i+1])) {
				underscore()
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
