package blocksig

import (
	"strings"

	"github.com/reoring/blocksig/phonetic"
)

// encode runs the encoder of sp over one field value and returns its
// fragment set. The selected positional fragments are concatenated first, so
// every encoder sees a single string.
func encode(sp Spec, value string) []string {
	input := strings.Join(extract(value, sp.Attr().Positions), "")
	switch s := sp.(type) {
	case FeatureValue, CharactersAt:
		return []string{input}
	case NGram:
		return NGrams(input, s.N)
	case Soundex:
		if s.Unpadded {
			return []string{phonetic.SoundexUnpadded(input)}
		}
		return []string{phonetic.Soundex(input)}
	case Metaphone:
		if s.PrimaryOnly {
			p, _ := phonetic.DoubleMetaphone(input)
			return []string{p}
		}
		return []string{phonetic.Metaphone(input)}
	}
	return nil
}

// NGrams returns the distinct substrings of n consecutive characters of s in
// order of first occurrence. It returns nil when n < 1 or s has fewer than n
// characters.
func NGrams(s string, n int) []string {
	rs := []rune(s)
	if n < 1 || len(rs) < n {
		return nil
	}
	out := make([]string, 0, len(rs)-n+1)
	seen := make(map[string]struct{}, len(rs)-n+1)
	for i := 0; i+n <= len(rs); i++ {
		g := string(rs[i : i+n])
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
