package phonetic

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold strips combining marks and uppercases s ("Müller" -> "MULLER").
// Transformer chains carry state, so one is built per call.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}

// letters keeps the A-Z letters of the folded s.
func letters(s string) string {
	var b strings.Builder
	for _, r := range fold(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Soundex returns the classic four character American Soundex code of s, for
// example "Robert" -> "R163". Letters outside A-Z (after accent folding) are
// ignored. A string without letters encodes to "".
func Soundex(s string) string {
	l := letters(s)
	if l == "" {
		return ""
	}
	return matchr.Soundex(l)
}

// SoundexUnpadded is Soundex without the trailing zero padding ("Joyce" ->
// "J2"). Soundex digits are never 0, so only padding is removed.
func SoundexUnpadded(s string) string {
	code := Soundex(s)
	if code == "" {
		return ""
	}
	return code[:1] + strings.TrimRight(code[1:], "0")
}
