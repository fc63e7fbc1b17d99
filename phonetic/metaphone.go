package phonetic

import (
	"strings"
)

// Metaphone returns the Double Metaphone primary code of s followed by the
// alternate code when the two differ ("Smith" -> "SM0" + "XMT").
func Metaphone(s string) string {
	p, a := DoubleMetaphone(s)
	if a == p {
		return p
	}
	return p + a
}

// DoubleMetaphone encodes s with Lawrence Philips' Double Metaphone rules and
// returns the primary and alternate codes. Codes are not length capped. "0"
// stands for TH and "X" for SH/CH sounds.
func DoubleMetaphone(s string) (primary, alternate string) {
	value := []rune(strings.ToUpper(strings.TrimSpace(s)))
	if len(value) == 0 {
		return "", ""
	}
	e := &dmEncoder{value: value}
	e.slavoGermanic = e.isSlavoGermanic()
	return e.encode()
}

type dmEncoder struct {
	value         []rune
	slavoGermanic bool
	primary       strings.Builder
	alternate     strings.Builder
}

func (e *dmEncoder) encode() (string, string) {
	n := len(e.value)
	i := 0
	if e.contains(0, 2, "GN", "KN", "PN", "WR", "PS") {
		i = 1
	}
	for i < n {
		switch c := e.value[i]; c {
		case 'A', 'E', 'I', 'O', 'U', 'Y':
			if i == 0 {
				e.add("A")
			}
			i++
		case 'B':
			e.add("P")
			i = e.skipDouble(i, 'B')
		case 'Ç':
			e.add("S")
			i++
		case 'C':
			i = e.handleC(i)
		case 'D':
			i = e.handleD(i)
		case 'F':
			e.add("F")
			i = e.skipDouble(i, 'F')
		case 'G':
			i = e.handleG(i)
		case 'H':
			i = e.handleH(i)
		case 'J':
			i = e.handleJ(i)
		case 'K':
			e.add("K")
			i = e.skipDouble(i, 'K')
		case 'L':
			i = e.handleL(i)
		case 'M':
			e.add("M")
			if e.conditionM0(i) {
				i += 2
			} else {
				i++
			}
		case 'N':
			e.add("N")
			i = e.skipDouble(i, 'N')
		case 'Ñ':
			e.add("N")
			i++
		case 'P':
			i = e.handleP(i)
		case 'Q':
			e.add("K")
			i = e.skipDouble(i, 'Q')
		case 'R':
			i = e.handleR(i)
		case 'S':
			i = e.handleS(i)
		case 'T':
			i = e.handleT(i)
		case 'V':
			e.add("F")
			i = e.skipDouble(i, 'V')
		case 'W':
			i = e.handleW(i)
		case 'X':
			i = e.handleX(i)
		case 'Z':
			i = e.handleZ(i)
		default:
			i++
		}
	}
	return e.primary.String(), e.alternate.String()
}

// ---- builders and lookups ----

func (e *dmEncoder) add(code string) {
	e.primary.WriteString(code)
	e.alternate.WriteString(code)
}

func (e *dmEncoder) addPair(primary, alternate string) {
	e.primary.WriteString(primary)
	e.alternate.WriteString(alternate)
}

// at returns the rune at i, or 0 outside the value.
func (e *dmEncoder) at(i int) rune {
	if i < 0 || i >= len(e.value) {
		return 0
	}
	return e.value[i]
}

// contains reports whether value[start:start+length] equals one of criteria.
func (e *dmEncoder) contains(start, length int, criteria ...string) bool {
	if start < 0 || start+length > len(e.value) {
		return false
	}
	target := string(e.value[start : start+length])
	for _, c := range criteria {
		if c == target {
			return true
		}
	}
	return false
}

func (e *dmEncoder) isVowel(i int) bool {
	switch e.at(i) {
	case 'A', 'E', 'I', 'O', 'U', 'Y':
		return true
	}
	return false
}

func (e *dmEncoder) skipDouble(i int, c rune) int {
	if e.at(i+1) == c {
		return i + 2
	}
	return i + 1
}

func (e *dmEncoder) isSlavoGermanic() bool {
	s := string(e.value)
	return strings.ContainsAny(s, "WK") || strings.Contains(s, "CZ") || strings.Contains(s, "WITZ")
}

func (e *dmEncoder) germanicPrefix() bool {
	return e.contains(0, 4, "VAN ", "VON ") || e.contains(0, 3, "SCH")
}

func (e *dmEncoder) last() int { return len(e.value) - 1 }

// ---- letter rules ----

func (e *dmEncoder) handleC(i int) int {
	switch {
	case e.conditionC0(i):
		e.add("K")
		return i + 2
	case i == 0 && e.contains(i, 6, "CAESAR"):
		e.add("S")
		return i + 2
	case e.contains(i, 2, "CH"):
		return e.handleCH(i)
	case e.contains(i, 2, "CZ") && !e.contains(i-2, 4, "WICZ"):
		e.addPair("S", "X")
		return i + 2
	case e.contains(i+1, 3, "CIA"):
		e.add("X")
		return i + 3
	case e.contains(i, 2, "CC") && !(i == 1 && e.at(0) == 'M'):
		return e.handleCC(i)
	case e.contains(i, 2, "CK", "CG", "CQ"):
		e.add("K")
		return i + 2
	case e.contains(i, 2, "CI", "CE", "CY"):
		if e.contains(i, 3, "CIO", "CIE", "CIA") {
			e.addPair("S", "X")
		} else {
			e.add("S")
		}
		return i + 2
	}
	e.add("K")
	switch {
	case e.contains(i+1, 2, " C", " Q", " G"):
		return i + 3
	case e.contains(i+1, 1, "C", "K", "Q") && !e.contains(i+1, 2, "CE", "CI"):
		return i + 2
	}
	return i + 1
}

// conditionC0 matches Germanic "ACH" as in BACHER and MACHER.
func (e *dmEncoder) conditionC0(i int) bool {
	if e.contains(i, 4, "CHIA") {
		return true
	}
	if i <= 1 || e.isVowel(i-2) || !e.contains(i-1, 3, "ACH") {
		return false
	}
	c := e.at(i + 2)
	return (c != 'I' && c != 'E') || e.contains(i-2, 6, "BACHER", "MACHER")
}

func (e *dmEncoder) handleCC(i int) int {
	if e.contains(i+2, 1, "I", "E", "H") && !e.contains(i+2, 2, "HU") {
		if (i == 1 && e.at(i-1) == 'A') || e.contains(i-1, 5, "UCCEE", "UCCES") {
			e.add("KS")
		} else {
			e.add("X")
		}
		return i + 3
	}
	e.add("K")
	return i + 2
}

func (e *dmEncoder) handleCH(i int) int {
	switch {
	case i > 0 && e.contains(i, 4, "CHAE"):
		e.addPair("K", "X")
	case e.conditionCH0(i), e.conditionCH1(i):
		e.add("K")
	case i > 0:
		if e.contains(0, 2, "MC") {
			e.add("K")
		} else {
			e.addPair("X", "K")
		}
	default:
		e.add("X")
	}
	return i + 2
}

// conditionCH0 matches Greek roots at the start: CHARACTER, CHARISMA, CHORUS.
func (e *dmEncoder) conditionCH0(i int) bool {
	if i != 0 {
		return false
	}
	if !e.contains(i+1, 5, "HARAC", "HARIS") && !e.contains(i+1, 3, "HOR", "HYM", "HIA", "HEM") {
		return false
	}
	return !e.contains(0, 5, "CHORE")
}

func (e *dmEncoder) conditionCH1(i int) bool {
	return e.germanicPrefix() ||
		e.contains(i-2, 6, "ORCHES", "ARCHIT", "ORCHID") ||
		e.contains(i+2, 1, "T", "S") ||
		((e.contains(i-1, 1, "A", "O", "U", "E") || i == 0) &&
			(e.contains(i+2, 1, "L", "R", "N", "M", "B", "H", "F", "V", "W", " ") || i+1 == e.last()))
}

func (e *dmEncoder) handleD(i int) int {
	switch {
	case e.contains(i, 2, "DG"):
		if e.contains(i+2, 1, "I", "E", "Y") {
			e.add("J")
			return i + 3
		}
		e.add("TK")
		return i + 2
	case e.contains(i, 2, "DT", "DD"):
		e.add("T")
		return i + 2
	}
	e.add("T")
	return i + 1
}

func (e *dmEncoder) handleG(i int) int {
	next := e.at(i + 1)
	switch {
	case next == 'H':
		return e.handleGH(i)
	case next == 'N':
		switch {
		case i == 1 && e.isVowel(0) && !e.slavoGermanic:
			e.addPair("KN", "N")
		case !e.contains(i+2, 2, "EY") && next != 'Y' && !e.slavoGermanic:
			e.addPair("N", "KN")
		default:
			e.add("KN")
		}
		return i + 2
	case e.contains(i+1, 2, "LI") && !e.slavoGermanic:
		e.addPair("KL", "L")
		return i + 2
	case i == 0 && (next == 'Y' || e.contains(i+1, 2, "ES", "EP", "EB", "EL", "EY", "IB", "IL", "IN", "IE", "EI", "ER")):
		e.addPair("K", "J")
		return i + 2
	case (e.contains(i+1, 2, "ER") || next == 'Y') &&
		!e.contains(0, 6, "DANGER", "RANGER", "MANGER") &&
		!e.contains(i-1, 1, "E", "I") &&
		!e.contains(i-1, 3, "RGY", "OGY"):
		e.addPair("K", "J")
		return i + 2
	case e.contains(i+1, 1, "E", "I", "Y") || e.contains(i-1, 4, "AGGI", "OGGI"):
		switch {
		case e.germanicPrefix() || e.contains(i+1, 2, "ET"):
			e.add("K")
		case e.contains(i+1, 3, "IER"):
			e.add("J")
		default:
			e.addPair("J", "K")
		}
		return i + 2
	case next == 'G':
		e.add("K")
		return i + 2
	}
	e.add("K")
	return i + 1
}

func (e *dmEncoder) handleGH(i int) int {
	switch {
	case i > 0 && !e.isVowel(i-1):
		e.add("K")
	case i == 0:
		if e.at(i+2) == 'I' {
			e.add("J")
		} else {
			e.add("K")
		}
	case (i > 1 && e.contains(i-2, 1, "B", "H", "D")) ||
		(i > 2 && e.contains(i-3, 1, "B", "H", "D")) ||
		(i > 3 && e.contains(i-4, 1, "B", "H")):
		// silent, as in HUGH, BOUGH, BROUGHTON
	default:
		if i > 2 && e.at(i-1) == 'U' && e.contains(i-3, 1, "C", "G", "L", "R", "T") {
			e.add("F")
		} else if e.at(i-1) != 'I' {
			e.add("K")
		}
	}
	return i + 2
}

func (e *dmEncoder) handleH(i int) int {
	if (i == 0 || e.isVowel(i-1)) && e.isVowel(i+1) {
		e.add("H")
		return i + 2
	}
	return i + 1
}

func (e *dmEncoder) handleJ(i int) int {
	if e.contains(i, 4, "JOSE") || e.contains(0, 4, "SAN ") {
		if (i == 0 && e.at(i+4) == ' ') || len(e.value) == 4 || e.contains(0, 4, "SAN ") {
			e.add("H")
		} else {
			e.addPair("J", "H")
		}
		return i + 1
	}
	switch {
	case i == 0:
		e.addPair("J", "A")
	case e.isVowel(i-1) && !e.slavoGermanic && (e.at(i+1) == 'A' || e.at(i+1) == 'O'):
		e.addPair("J", "H")
	case i == e.last():
		e.addPair("J", "")
	case !e.contains(i+1, 1, "L", "T", "K", "S", "N", "M", "B", "Z") && !e.contains(i-1, 1, "S", "K", "L"):
		e.add("J")
	}
	return e.skipDouble(i, 'J')
}

func (e *dmEncoder) handleL(i int) int {
	if e.at(i+1) == 'L' {
		if e.conditionL0(i) {
			e.addPair("L", "")
		} else {
			e.add("L")
		}
		return i + 2
	}
	e.add("L")
	return i + 1
}

// conditionL0 matches Spanish LL as in CABRILLO and GALLEGOS.
func (e *dmEncoder) conditionL0(i int) bool {
	n := len(e.value)
	if i == n-3 && e.contains(i-1, 4, "ILLO", "ILLA", "ALLE") {
		return true
	}
	return (e.contains(n-2, 2, "AS", "OS") || e.contains(n-1, 1, "A", "O")) && e.contains(i-1, 4, "ALLE")
}

func (e *dmEncoder) conditionM0(i int) bool {
	if e.at(i+1) == 'M' {
		return true
	}
	return e.contains(i-1, 3, "UMB") && (i+1 == e.last() || e.contains(i+2, 2, "ER"))
}

func (e *dmEncoder) handleP(i int) int {
	if e.at(i+1) == 'H' {
		e.add("F")
		return i + 2
	}
	e.add("P")
	if e.contains(i+1, 1, "P", "B") {
		return i + 2
	}
	return i + 1
}

func (e *dmEncoder) handleR(i int) int {
	if i == e.last() && !e.slavoGermanic && e.contains(i-2, 2, "IE") && !e.contains(i-4, 2, "ME", "MA") {
		e.addPair("", "R")
	} else {
		e.add("R")
	}
	return e.skipDouble(i, 'R')
}

func (e *dmEncoder) handleS(i int) int {
	switch {
	case e.contains(i-1, 3, "ISL", "YSL"):
		// silent, as in ISLAND and CARLYSLE
		return i + 1
	case i == 0 && e.contains(i, 5, "SUGAR"):
		e.addPair("X", "S")
		return i + 1
	case e.contains(i, 2, "SH"):
		if e.contains(i+1, 4, "HEIM", "HOEK", "HOLM", "HOLZ") {
			e.add("S")
		} else {
			e.add("X")
		}
		return i + 2
	case e.contains(i, 3, "SIO", "SIA") || e.contains(i, 4, "SIAN"):
		if e.slavoGermanic {
			e.add("S")
		} else {
			e.addPair("S", "X")
		}
		return i + 3
	case (i == 0 && e.contains(i+1, 1, "M", "N", "L", "W")) || e.contains(i+1, 1, "Z"):
		e.addPair("S", "X")
		if e.contains(i+1, 1, "Z") {
			return i + 2
		}
		return i + 1
	case e.contains(i, 2, "SC"):
		return e.handleSC(i)
	}
	if i == e.last() && e.contains(i-2, 2, "AI", "OI") {
		e.addPair("", "S")
	} else {
		e.add("S")
	}
	if e.contains(i+1, 1, "S", "Z") {
		return i + 2
	}
	return i + 1
}

func (e *dmEncoder) handleSC(i int) int {
	switch {
	case e.at(i+2) == 'H':
		switch {
		case e.contains(i+3, 2, "ER", "EN"):
			e.addPair("X", "SK")
		case e.contains(i+3, 2, "OO", "UY", "ED", "EM"):
			e.add("SK")
		case i == 0 && !e.isVowel(3) && e.at(3) != 'W':
			e.addPair("X", "S")
		default:
			e.add("X")
		}
	case e.contains(i+2, 1, "I", "E", "Y"):
		e.add("S")
	default:
		e.add("SK")
	}
	return i + 3
}

func (e *dmEncoder) handleT(i int) int {
	switch {
	case e.contains(i, 4, "TION"):
		e.add("X")
		return i + 3
	case e.contains(i, 3, "TIA", "TCH"):
		e.add("X")
		return i + 3
	case e.contains(i, 2, "TH") || e.contains(i, 3, "TTH"):
		if e.contains(i+2, 2, "OM", "AM") || e.germanicPrefix() {
			e.add("T")
		} else {
			e.addPair("0", "T")
		}
		return i + 2
	}
	e.add("T")
	if e.contains(i+1, 1, "T", "D") {
		return i + 2
	}
	return i + 1
}

func (e *dmEncoder) handleW(i int) int {
	if e.contains(i, 2, "WR") {
		e.add("R")
		return i + 2
	}
	if i == 0 && (e.isVowel(i+1) || e.contains(i, 2, "WH")) {
		if e.isVowel(i + 1) {
			e.addPair("A", "F")
		} else {
			e.add("A")
		}
	}
	switch {
	case (i == e.last() && e.isVowel(i-1)) ||
		e.contains(i-1, 5, "EWSKI", "EWSKY", "OWSKI", "OWSKY") ||
		e.contains(0, 3, "SCH"):
		e.addPair("", "F")
	case e.contains(i, 4, "WICZ", "WITZ"):
		e.addPair("TS", "FX")
		return i + 4
	}
	return i + 1
}

func (e *dmEncoder) handleX(i int) int {
	if i == 0 {
		e.add("S")
		return i + 1
	}
	// French final X is silent: BREAUX
	if !(i == e.last() && (e.contains(i-3, 3, "IAU", "EAU") || e.contains(i-2, 2, "AU", "OU"))) {
		e.add("KS")
	}
	if e.contains(i+1, 1, "C", "X") {
		return i + 2
	}
	return i + 1
}

func (e *dmEncoder) handleZ(i int) int {
	if e.at(i+1) == 'H' {
		e.add("J")
		return i + 2
	}
	if e.contains(i+1, 2, "ZO", "ZI", "ZA") || (e.slavoGermanic && i > 0 && e.at(i-1) != 'T') {
		e.addPair("S", "TS")
	} else {
		e.add("S")
	}
	return e.skipDouble(i, 'Z')
}
