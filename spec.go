package blocksig

import "fmt"

// Type is the tag naming an encoder kind in the configuration vocabulary.
type Type string

const (
	TypeFeatureValue Type = "feature-value"
	TypeCharactersAt Type = "characters-at"
	TypeNGram        Type = "n-gram"
	TypeSoundex      Type = "soundex"
	TypeMetaphone    Type = "metaphone"
)

// Types lists every recognized tag in declaration order.
var Types = []Type{TypeFeatureValue, TypeCharactersAt, TypeNGram, TypeSoundex, TypeMetaphone}

// Spec is one per-attribute transform of a strategy. The set of
// implementations is closed: FeatureValue, CharactersAt, NGram, Soundex and
// Metaphone.
type Spec interface {
	Type() Type
	Attr() Attribute

	isSpec()
}

// Attribute selects the input of a Spec: field Index of the record and,
// optionally, positional fragments of it which are concatenated in order
// before the encoder runs.
type Attribute struct {
	Index     int
	Positions []Position
}

// At returns the Attribute for field index restricted to positions.
func At(index int, positions ...Position) Attribute {
	return Attribute{Index: index, Positions: positions}
}

// Attr returns the selector itself; embedding types inherit it.
func (a Attribute) Attr() Attribute { return a }

// FeatureValue uses the raw field value (or its selected fragments) as one
// fragment.
type FeatureValue struct {
	Attribute
}

// CharactersAt concatenates the characters at Positions into one fragment.
// Positions must not be empty.
type CharactersAt struct {
	Attribute
}

// NGram emits every distinct run of N consecutive characters. Values shorter
// than N produce no fragment.
type NGram struct {
	Attribute
	N int
}

// Soundex emits the four character Soundex code, or the code without zero
// padding when Unpadded is set. Documents that expect short codes such as
// "J2W52" must say pad: false; the zero value pads ("J200W520").
type Soundex struct {
	Attribute
	Unpadded bool
}

// Metaphone emits the Double Metaphone primary code followed by the alternate
// code when it differs. PrimaryOnly drops the alternate.
type Metaphone struct {
	Attribute
	PrimaryOnly bool
}

func (FeatureValue) Type() Type { return TypeFeatureValue }
func (CharactersAt) Type() Type { return TypeCharactersAt }
func (NGram) Type() Type        { return TypeNGram }
func (Soundex) Type() Type      { return TypeSoundex }
func (Metaphone) Type() Type    { return TypeMetaphone }

func (FeatureValue) isSpec() {}
func (CharactersAt) isSpec() {}
func (NGram) isSpec()        {}
func (Soundex) isSpec()      {}
func (Metaphone) isSpec()    {}

// Strategy is one blocking rule: the fragments of its specs are combined by
// ordered concatenation (a Cartesian product when a spec yields several).
type Strategy []Spec

// StrategySet is a disjunction of rules: the signatures of its strategies are
// unioned.
type StrategySet []Strategy

// Validate checks a strategy set independently of any record: nil specs,
// n-gram sizes below one, characters-at without positions, nil positions and
// negative feature indices are reported.
func Validate(set StrategySet) error {
	var iss Issues
	for si, st := range set {
		for pi, sp := range st {
			iss = append(iss, validateSpec(sp, rootPath().index(si).index(pi))...)
		}
	}
	return iss.errOrNil()
}

func validateSpec(sp Spec, p pathRef) Issues {
	if sp == nil {
		return Issues{p.field("type").issue(CodeRequired, "nil spec")}
	}
	var iss Issues
	a := sp.Attr()
	if a.Index < 0 {
		iss = append(iss, p.field("feature-idx").issue(CodeOutOfRange, "negative index"))
	}
	for i, pos := range a.Positions {
		if pos == nil {
			iss = append(iss, p.field("config").field("pos").index(i).issue(CodeRequired, "nil position"))
		}
	}
	switch s := sp.(type) {
	case CharactersAt:
		if len(s.Positions) == 0 {
			iss = append(iss, p.field("config").field("pos").issue(CodeRequired, "characters-at needs at least one position"))
		}
	case NGram:
		if s.N < 1 {
			iss = append(iss, p.field("config").field("n").issue(CodeTooSmall, "n must be at least 1"))
		}
	case FeatureValue, Soundex, Metaphone:
	default:
		// pointer variants satisfy Spec through promoted methods but are not
		// part of the closed set
		iss = append(iss, p.field("type").issue(CodeUnknownType, fmt.Sprintf("%T", sp)))
	}
	return iss
}
