package docconv

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// replacements covers characters that do not decompose to ASCII.
var replacements = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "‛", "'",
	"“", `"`, "”", `"`, "„", `"`, "«", `"`, "»", `"`,
	"–", "-", "—", "--", "−", "-", "‐", "-", "‑", "-",
	"•", "*", "·", ".",
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "ł", "l", "Ł", "L", "đ", "d", "Đ", "D",
	"þ", "th", "Þ", "Th", "ð", "d", "Ð", "D",
	"€", "EUR", "£", "GBP", "©", "(c)", "®", "(R)", "™", "TM",
	"°", " deg", "×", "x", "÷", "/",
)

// ToASCII transliterates s to ASCII. Characters are decomposed and stripped
// of combining marks; those without an ASCII form are dropped.
func ToASCII(s string) string {
	s = replacements.Replace(s)

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	if decomposed, _, err := transform.String(t, s); err == nil {
		s = decomposed
	}

	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}
