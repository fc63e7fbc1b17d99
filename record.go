package blocksig

import (
	"fmt"
	"strconv"
)

// Record is one row of a dataset: an ordered, fixed-arity tuple of field
// values. Values are strings or primitives convertible to string. Generation
// never mutates a Record.
type Record []any

// Strings builds a Record from string fields.
func Strings(fields ...string) Record {
	r := make(Record, len(fields))
	for i, f := range fields {
		r[i] = f
	}
	return r
}

// Field returns the string form of field i.
func (r Record) Field(i int) (string, error) {
	if i < 0 || i >= len(r) {
		return "", Issues{outOfRange(rootPath(), i, len(r))}
	}
	return stringify(r[i]), nil
}

// Extract returns the value of field index as a one-element slice, or, when
// positions are given, one substring per position in the given order. The
// fragments are not merged.
func Extract(r Record, index int, positions ...Position) ([]string, error) {
	v, err := r.Field(index)
	if err != nil {
		return nil, err
	}
	return extract(v, positions), nil
}

func extract(v string, positions []Position) []string {
	if len(positions) == 0 {
		return []string{v}
	}
	rs := []rune(v)
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = p.selectRunes(rs)
	}
	return out
}

// outOfRange reports a feature index at p that the record does not have.
func outOfRange(p pathRef, index, fields int) Issue {
	it := p.issue(CodeOutOfRange, fmt.Sprintf("index %d, record has %d fields", index, fields))
	it.Params = map[string]any{"index": index, "fields": fields}
	return it
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(v)
	}
}
