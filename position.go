package blocksig

import (
	"strconv"
	"strings"
)

// Position selects part of a field value: a single character (Index) or a
// half-open range of characters (Slice). Positions count runes, not bytes,
// and never fail: selections outside the value clip to a shorter or empty
// string.
type Position interface {
	// Select applies the position to s.
	Select(s string) string
	// String renders the textual form accepted by ParsePosition.
	String() string

	selectRunes(rs []rune) string
}

// Index selects the single character at the given offset. Negative offsets
// count from the end (-1 is the last character).
type Index int

func (i Index) Select(s string) string { return i.selectRunes([]rune(s)) }

func (i Index) String() string { return strconv.Itoa(int(i)) }

func (i Index) selectRunes(rs []rune) string {
	k := int(i)
	if k < 0 {
		k += len(rs)
	}
	if k < 0 || k >= len(rs) {
		return ""
	}
	return string(rs[k])
}

// Slice selects the characters in [Start, End). A nil bound is open: Start
// defaults to the beginning and End to the end of the value. Negative bounds
// count from the end, so Slice{Start: -2} keeps the last two characters.
type Slice struct {
	Start *int
	End   *int
}

// Range returns Slice{start, end}.
func Range(start, end int) Slice { return Slice{Start: &start, End: &end} }

// From returns the slice "start:".
func From(start int) Slice { return Slice{Start: &start} }

// Until returns the slice ":end".
func Until(end int) Slice { return Slice{End: &end} }

// Last returns the slice "-k:" keeping the final k characters.
func Last(k int) Slice { return From(-k) }

func (s Slice) Select(v string) string { return s.selectRunes([]rune(v)) }

func (s Slice) String() string {
	var b strings.Builder
	if s.Start != nil {
		b.WriteString(strconv.Itoa(*s.Start))
	}
	b.WriteByte(':')
	if s.End != nil {
		b.WriteString(strconv.Itoa(*s.End))
	}
	return b.String()
}

func (s Slice) selectRunes(rs []rune) string {
	n := len(rs)
	start := clipBound(s.Start, 0, n)
	end := clipBound(s.End, n, n)
	if start >= end {
		return ""
	}
	return string(rs[start:end])
}

// clipBound resolves a slice bound against a value of length n.
func clipBound(b *int, def, n int) int {
	if b == nil {
		return def
	}
	v := *b
	if v < 0 {
		v += n
		if v < 0 {
			v = 0
		}
	} else if v > n {
		v = n
	}
	return v
}

// ParsePosition parses the textual position grammar:
//
//	"3"    Index(3)
//	"-1"   Index(-1), the last character
//	"1:4"  Range(1, 4)
//	":2"   Until(2)
//	"-2:"  Last(2)
//	":"    the whole value
//
// Anything else is reported as an Issues error with code invalid_position.
func ParsePosition(s string) (Position, error) {
	p, detail := parsePosition(s)
	if detail != "" {
		return nil, Issues{rootPath().issue(CodeInvalidPosition, detail)}
	}
	return p, nil
}

// ParsePositions parses each specifier in order.
func ParsePositions(specs ...string) ([]Position, error) {
	out := make([]Position, 0, len(specs))
	var iss Issues
	for i, s := range specs {
		p, detail := parsePosition(s)
		if detail != "" {
			iss = AppendIssues(iss, rootPath().index(i).issue(CodeInvalidPosition, detail))
			continue
		}
		out = append(out, p)
	}
	if err := iss.errOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// PositionOf converts a decoded configuration value into a Position. Integers
// (including json.Number values and integral floats) become an Index; strings
// are parsed with ParsePosition.
func PositionOf(v any) (Position, error) {
	p, code, detail := positionOf(v)
	if code != "" {
		return nil, Issues{rootPath().issue(code, detail)}
	}
	return p, nil
}

func positionOf(v any) (Position, string, string) {
	if s, ok := v.(string); ok {
		p, detail := parsePosition(s)
		if detail != "" {
			return nil, CodeInvalidPosition, detail
		}
		return p, "", ""
	}
	if i, ok := asInt(v); ok {
		return Index(i), "", ""
	}
	return nil, CodeInvalidType, "expected integer or string position"
}

func parsePosition(s string) (Position, string) {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil, "empty position"
	}
	lo, hi, isSlice := strings.Cut(t, ":")
	if !isSlice {
		i, err := strconv.Atoi(t)
		if err != nil {
			return nil, strconv.Quote(s) + " is not an index or slice"
		}
		return Index(i), ""
	}
	if strings.Contains(hi, ":") {
		return nil, strconv.Quote(s) + ": slice steps are not supported"
	}
	var out Slice
	for _, b := range []struct {
		text string
		dst  **int
	}{{lo, &out.Start}, {hi, &out.End}} {
		bt := strings.TrimSpace(b.text)
		if bt == "" {
			continue
		}
		v, err := strconv.Atoi(bt)
		if err != nil {
			return nil, strconv.Quote(s) + ": bound " + strconv.Quote(bt) + " is not an integer"
		}
		*b.dst = &v
	}
	return out, ""
}
