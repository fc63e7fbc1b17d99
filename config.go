package blocksig

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a strategy-set document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath guesses the format from a file extension; anything other
// than .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Wire keys of a spec object.
const (
	keyType         = "type"
	keyFeatureIdx   = "feature-idx"
	keyFeatureIndex = "feature-index" // accepted alias
	keyConfig       = "config"
	keyPos          = "pos"
	keyN            = "n"
	keyPad          = "pad"
	keyPrimaryOnly  = "primary-only"
)

// Decode reads a whole document from r and decodes it in format f.
func Decode(r io.Reader, f Format) (StrategySet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Issues{rootPath().issue(CodeParseError, err.Error())}
	}
	if f == FormatYAML {
		return DecodeYAML(data)
	}
	return DecodeJSON(data)
}

// DecodeJSON decodes a strategy set such as
//
//	[[{"type": "characters-at", "feature-idx": 0, "config": {"pos": ["1:4", 2]}}]]
//
// Numbers are kept exact (no float64 round trip) while decoding, and
// duplicate keys within one object are rejected.
func DecodeJSON(data []byte) (StrategySet, error) {
	if iss := detectDuplicateKeys(data); len(iss) > 0 {
		return nil, iss
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{rootPath().issue(CodeParseError, err.Error())}
	}
	return ParseStrategySet(v)
}

// DecodeYAML decodes the YAML form of a strategy set.
func DecodeYAML(data []byte) (StrategySet, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, Issues{rootPath().issue(CodeParseError, err.Error())}
	}
	return ParseStrategySet(yamlNormalizeValue(v))
}

// ParseStrategySet compiles a generic decoded tree (lists, string-keyed maps,
// numbers, strings and bools) into a typed StrategySet. Every problem found is
// reported in the returned Issues; a non-nil error means no set is returned.
func ParseStrategySet(v any) (StrategySet, error) {
	root := rootPath()
	list, ok := v.([]any)
	if !ok {
		return nil, Issues{root.issue(CodeInvalidType, "expected a list of strategies")}
	}
	var iss Issues
	set := make(StrategySet, 0, len(list))
	for si, sv := range list {
		sp := root.index(si)
		specs, ok := sv.([]any)
		if !ok {
			iss = append(iss, sp.issue(CodeInvalidType, "expected a list of specs"))
			continue
		}
		if len(specs) == 0 {
			iss = append(iss, sp.issue(CodeTooSmall, "strategy has no specs"))
			continue
		}
		st := make(Strategy, 0, len(specs))
		for pi, pv := range specs {
			spec, specIss := parseSpec(pv, sp.index(pi))
			iss = append(iss, specIss...)
			if spec != nil {
				st = append(st, spec)
			}
		}
		set = append(set, st)
	}
	if err := iss.errOrNil(); err != nil {
		return nil, err
	}
	return set, nil
}

// configKeys lists the config keys each type accepts.
var configKeys = map[Type][]string{
	TypeFeatureValue: {keyPos},
	TypeCharactersAt: {keyPos},
	TypeNGram:        {keyPos, keyN},
	TypeSoundex:      {keyPos, keyPad},
	TypeMetaphone:    {keyPos, keyPrimaryOnly},
}

func parseSpec(v any, p pathRef) (Spec, Issues) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{p.issue(CodeInvalidType, "expected an object")}
	}
	var iss Issues
	for _, k := range sortedKeys(m) {
		switch k {
		case keyType, keyFeatureIdx, keyFeatureIndex, keyConfig:
		default:
			iss = append(iss, p.field(k).issue(CodeUnknownKey, strconv.Quote(k)))
		}
	}

	var typ Type
	switch tv := m[keyType].(type) {
	case nil:
		iss = append(iss, p.field(keyType).issue(CodeRequired, keyType))
	case string:
		typ = Type(tv)
		if _, known := configKeys[typ]; !known {
			it := p.field(keyType).issue(CodeUnknownType, strconv.Quote(tv))
			it.Hint = "expected one of: " + typeList()
			it.Params = map[string]any{"type": tv}
			iss = append(iss, it)
			typ = ""
		}
	default:
		iss = append(iss, p.field(keyType).issue(CodeInvalidType, "expected string"))
	}

	idxKey := keyFeatureIdx
	rawIdx, hasIdx := m[keyFeatureIdx]
	if _, alias := m[keyFeatureIndex]; hasIdx && alias {
		it := p.field(keyFeatureIndex).issue(CodeDuplicateKey, "alias of "+strconv.Quote(keyFeatureIdx))
		it.Hint = "keep only " + strconv.Quote(keyFeatureIdx)
		iss = append(iss, it)
	}
	if !hasIdx {
		idxKey = keyFeatureIndex
		rawIdx, hasIdx = m[keyFeatureIndex]
	}
	var attr Attribute
	switch idx, ok := asInt(rawIdx); {
	case !hasIdx:
		iss = append(iss, p.field(keyFeatureIdx).issue(CodeRequired, keyFeatureIdx))
	case !ok:
		iss = append(iss, p.field(idxKey).issue(CodeInvalidType, "expected integer"))
	case idx < 0:
		iss = append(iss, p.field(idxKey).issue(CodeOutOfRange, "negative index"))
	default:
		attr.Index = idx
	}

	cfg := map[string]any{}
	cp := p.field(keyConfig)
	if raw, present := m[keyConfig]; present && raw != nil {
		cm, ok := raw.(map[string]any)
		if !ok {
			iss = append(iss, cp.issue(CodeInvalidType, "expected an object"))
		} else {
			cfg = cm
		}
	}
	if typ != "" {
		for _, k := range sortedKeys(cfg) {
			if !containsKey(configKeys[typ], k) {
				iss = append(iss, cp.field(k).issue(CodeUnknownKey, fmt.Sprintf("%q is not a %s option", k, typ)))
			}
		}
	}

	if raw, present := cfg[keyPos]; present {
		pos, posIss := parsePositionList(raw, cp.field(keyPos))
		iss = append(iss, posIss...)
		attr.Positions = pos
	}

	var spec Spec
	switch typ {
	case TypeFeatureValue:
		spec = FeatureValue{Attribute: attr}
	case TypeCharactersAt:
		if _, present := cfg[keyPos]; !present {
			iss = append(iss, cp.field(keyPos).issue(CodeRequired, "characters-at needs pos"))
		} else if len(attr.Positions) == 0 {
			iss = append(iss, cp.field(keyPos).issue(CodeTooSmall, "characters-at needs at least one position"))
		}
		spec = CharactersAt{Attribute: attr}
	case TypeNGram:
		np := cp.field(keyN)
		n, ok := asInt(cfg[keyN])
		switch _, present := cfg[keyN]; {
		case !present:
			iss = append(iss, np.issue(CodeRequired, "n-gram needs n"))
		case !ok:
			iss = append(iss, np.issue(CodeInvalidType, "expected integer"))
		case n < 1:
			iss = append(iss, np.issue(CodeTooSmall, "n must be at least 1"))
		}
		spec = NGram{Attribute: attr, N: n}
	case TypeSoundex:
		pad, bIss := optionalBool(cfg, keyPad, true, cp)
		iss = append(iss, bIss...)
		spec = Soundex{Attribute: attr, Unpadded: !pad}
	case TypeMetaphone:
		only, bIss := optionalBool(cfg, keyPrimaryOnly, false, cp)
		iss = append(iss, bIss...)
		spec = Metaphone{Attribute: attr, PrimaryOnly: only}
	}
	return spec, iss
}

func typeList() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func parsePositionList(raw any, p pathRef) ([]Position, Issues) {
	list, ok := raw.([]any)
	if !ok {
		return nil, Issues{p.issue(CodeInvalidType, "expected a list of positions")}
	}
	var iss Issues
	out := make([]Position, 0, len(list))
	for i, v := range list {
		pos, code, detail := positionOf(v)
		if code != "" {
			iss = append(iss, p.index(i).issue(code, detail))
			continue
		}
		out = append(out, pos)
	}
	return out, iss
}

func optionalBool(cfg map[string]any, key string, def bool, p pathRef) (bool, Issues) {
	raw, present := cfg[key]
	if !present {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return def, Issues{p.field(key).issue(CodeInvalidType, "expected boolean")}
	}
	return b, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func containsKey(keys []string, k string) bool {
	for _, c := range keys {
		if c == k {
			return true
		}
	}
	return false
}

// int64er matches json.Number and compatible number types of JSON decoders.
type int64er interface {
	Int64() (int64, error)
}

// asInt converts decoded numbers to int. Floats must be integral.
func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		if t > math.MaxInt {
			return 0, false
		}
		return int(t), true
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int(t), true
	case int64er:
		i, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

// yamlNormalizeValue converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
