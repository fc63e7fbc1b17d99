package blocksig_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/reoring/blocksig"
)

var joyce = blocksig.Record{"Joyce", "Wang", 2134}

func mustDecode(t *testing.T, doc string) blocksig.StrategySet {
	t.Helper()
	set, err := blocksig.DecodeJSON([]byte(doc))
	if err != nil {
		t.Fatalf("decode %s: %v", doc, err)
	}
	return set
}

func mustGenerate(t *testing.T, set blocksig.StrategySet, r blocksig.Record) blocksig.Signatures {
	t.Helper()
	sigs, err := blocksig.Generate(set, r)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return sigs
}

func assertSigs(t *testing.T, got blocksig.Signatures, want ...string) {
	t.Helper()
	if !got.Equal(blocksig.NewSignatures(want...)) {
		t.Fatalf("signatures = %v, want %v", got.Sorted(), want)
	}
}

func TestGenerate_FeatureValue(t *testing.T) {
	set := mustDecode(t, `[[{"type":"feature-value","feature-idx":0},{"type":"feature-value","feature-idx":1}]]`)
	assertSigs(t, mustGenerate(t, set, joyce), "JoyceWang")
}

func TestGenerate_CharactersAt(t *testing.T) {
	set := mustDecode(t, `[[
		{"type":"characters-at","feature-idx":0,"config":{"pos":["1:4"]}},
		{"type":"characters-at","feature-idx":1,"config":{"pos":["1:4"]}}
	]]`)
	assertSigs(t, mustGenerate(t, set, joyce), "oycang")

	set = mustDecode(t, `[[{"type":"characters-at","feature-idx":0,"config":{"pos":[":2","-2:",2,"2"]}}]]`)
	assertSigs(t, mustGenerate(t, set, joyce), "Joceyy")
}

func TestGenerate_Metaphone(t *testing.T) {
	set := mustDecode(t, `[[{"type":"metaphone","feature-idx":0}]]`)
	assertSigs(t, mustGenerate(t, set, blocksig.Record{"Smith", "Schmidt", 2134}), "SM0XMT")

	set = mustDecode(t, `[[{"type":"metaphone","feature-idx":1,"config":{"primary-only":true}}]]`)
	assertSigs(t, mustGenerate(t, set, blocksig.Record{"Smith", "Schmidt", 2134}), "XMT")
}

func TestGenerate_MultiStrategy(t *testing.T) {
	set := mustDecode(t, `[
		[{"type":"feature-value","feature-idx":0},{"type":"feature-value","feature-idx":1}],
		[{"type":"soundex","feature-idx":0,"config":{"pad":false}},{"type":"soundex","feature-idx":1,"config":{"pad":false}}]
	]`)
	assertSigs(t, mustGenerate(t, set, joyce), "JoyceWang", "J2W52")

	padded := mustDecode(t, `[
		[{"type":"feature-value","feature-idx":0},{"type":"feature-value","feature-idx":1}],
		[{"type":"soundex","feature-idx":0},{"type":"soundex","feature-idx":1}]
	]`)
	assertSigs(t, mustGenerate(t, padded, joyce), "JoyceWang", "J200W520")
}

func TestGenerate_NGramProduct(t *testing.T) {
	set := blocksig.StrategySet{{
		blocksig.NGram{Attribute: blocksig.At(0), N: 2},
		blocksig.FeatureValue{Attribute: blocksig.At(1)},
	}}
	assertSigs(t, mustGenerate(t, set, joyce), "JoWang", "oyWang", "ycWang", "ceWang")
}

func TestGenerate_NGramLargerThanValueContributesNothing(t *testing.T) {
	set := blocksig.StrategySet{
		{blocksig.NGram{Attribute: blocksig.At(1), N: 5}},
		{blocksig.FeatureValue{Attribute: blocksig.At(2)}},
	}
	assertSigs(t, mustGenerate(t, set, joyce), "2134")
}

func TestGenerate_PositionsOnEncoders(t *testing.T) {
	set := blocksig.StrategySet{{
		blocksig.Soundex{Attribute: blocksig.At(0, blocksig.Until(3))},
		blocksig.FeatureValue{Attribute: blocksig.At(2, blocksig.Last(2))},
	}}
	// "Joy" -> J000, "2134" -> "34"
	assertSigs(t, mustGenerate(t, set, joyce), "J00034")
}

func TestGenerate_EmptySignaturesDropped(t *testing.T) {
	set := blocksig.StrategySet{
		{blocksig.CharactersAt{Attribute: blocksig.At(1, blocksig.Index(10))}},
		{blocksig.FeatureValue{Attribute: blocksig.At(0)}},
	}
	assertSigs(t, mustGenerate(t, set, joyce), "Joyce")
}

func TestGenerate_Deterministic(t *testing.T) {
	set := blocksig.StrategySet{
		{blocksig.NGram{Attribute: blocksig.At(0), N: 2}, blocksig.NGram{Attribute: blocksig.At(1), N: 3}},
		{blocksig.Metaphone{Attribute: blocksig.At(1)}},
	}
	a := mustGenerate(t, set, joyce)
	b := mustGenerate(t, set, joyce)
	if !reflect.DeepEqual(a.Sorted(), b.Sorted()) {
		t.Fatalf("non-deterministic output: %v vs %v", a.Sorted(), b.Sorted())
	}
	if a.Len() != 4*2+1 {
		t.Fatalf("expected 9 signatures, got %v", a.Sorted())
	}
}

func TestGenerate_UnionLaw(t *testing.T) {
	s1 := blocksig.Strategy{blocksig.Soundex{Attribute: blocksig.At(0)}, blocksig.Soundex{Attribute: blocksig.At(1)}}
	s2 := blocksig.Strategy{blocksig.NGram{Attribute: blocksig.At(0), N: 3}}
	both := mustGenerate(t, blocksig.StrategySet{s1, s2}, joyce)
	g1 := mustGenerate(t, blocksig.StrategySet{s1}, joyce)
	g2, err := blocksig.GenerateStrategy(s2, joyce)
	if err != nil {
		t.Fatal(err)
	}
	if !both.Equal(g1.Union(g2)) {
		t.Fatalf("union law violated: %v vs %v", both.Sorted(), g1.Union(g2).Sorted())
	}
}

func TestGenerate_ConcatenationLaw(t *testing.T) {
	r := blocksig.Record{"ab", 7, "Zoë", nil}
	for i := range r {
		for j := range r {
			set := blocksig.StrategySet{{
				blocksig.FeatureValue{Attribute: blocksig.At(i)},
				blocksig.FeatureValue{Attribute: blocksig.At(j)},
			}}
			vi, _ := r.Field(i)
			vj, _ := r.Field(j)
			assertSigs(t, mustGenerate(t, set, r), vi+vj)
		}
	}
}

func TestGenerate_ConfigurationErrors(t *testing.T) {
	cases := []struct {
		name string
		set  blocksig.StrategySet
		code string
		path string
	}{
		{
			name: "index beyond record",
			set:  blocksig.StrategySet{{blocksig.FeatureValue{Attribute: blocksig.At(0)}}, {blocksig.FeatureValue{Attribute: blocksig.At(3)}}},
			code: blocksig.CodeOutOfRange,
			path: "/1/0/feature-idx",
		},
		{
			name: "negative index",
			set:  blocksig.StrategySet{{blocksig.Soundex{Attribute: blocksig.At(-1)}}},
			code: blocksig.CodeOutOfRange,
			path: "/0/0/feature-idx",
		},
		{
			name: "n below one",
			set:  blocksig.StrategySet{{blocksig.NGram{Attribute: blocksig.At(0)}}},
			code: blocksig.CodeTooSmall,
			path: "/0/0/config/n",
		},
		{
			name: "characters-at without positions",
			set:  blocksig.StrategySet{{blocksig.FeatureValue{Attribute: blocksig.At(0)}, blocksig.CharactersAt{Attribute: blocksig.At(1)}}},
			code: blocksig.CodeRequired,
			path: "/0/1/config/pos",
		},
		{
			name: "nil spec",
			set:  blocksig.StrategySet{{nil}},
			code: blocksig.CodeRequired,
			path: "/0/0/type",
		},
		{
			name: "pointer spec",
			set:  blocksig.StrategySet{{&blocksig.FeatureValue{}}},
			code: blocksig.CodeUnknownType,
			path: "/0/0/type",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sigs, err := blocksig.Generate(tc.set, joyce)
			if err == nil {
				t.Fatalf("expected error, got %v", sigs.Sorted())
			}
			if sigs != nil {
				t.Fatalf("expected no signatures on error, got %v", sigs.Sorted())
			}
			if !errors.Is(err, blocksig.ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			iss, ok := blocksig.AsIssues(err)
			if !ok || len(iss) != 1 {
				t.Fatalf("expected one issue, got %v", err)
			}
			if iss[0].Code != tc.code || iss[0].Path != tc.path {
				t.Fatalf("got %s at %s, want %s at %s", iss[0].Code, iss[0].Path, tc.code, tc.path)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	ok := blocksig.StrategySet{{blocksig.NGram{Attribute: blocksig.At(40), N: 3}}}
	if err := blocksig.Validate(ok); err != nil {
		t.Fatalf("indices are only checked against records: %v", err)
	}
	bad := blocksig.StrategySet{{blocksig.CharactersAt{Attribute: blocksig.At(0, nil)}}}
	if err := blocksig.Validate(bad); err == nil {
		t.Fatal("expected nil position to be rejected")
	}
}

func TestNGrams(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want []string
	}{
		{"Joyce", 2, []string{"Jo", "oy", "yc", "ce"}},
		{"aaaa", 2, []string{"aa"}},
		{"abab", 2, []string{"ab", "ba"}},
		{"Zoë", 1, []string{"Z", "o", "ë"}},
		{"ab", 3, nil},
		{"ab", 0, nil},
	}
	for _, tc := range cases {
		got := blocksig.NGrams(tc.in, tc.n)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("NGrams(%q, %d) = %v, want %v", tc.in, tc.n, got, tc.want)
		}
		if l := len([]rune(tc.in)); tc.n >= 1 && tc.n <= l && len(got) > l-tc.n+1 {
			t.Errorf("NGrams(%q, %d) has %d grams, more than %d windows", tc.in, tc.n, len(got), l-tc.n+1)
		}
	}
}

func TestGenerate_OutOfRangeParams(t *testing.T) {
	set := blocksig.StrategySet{{blocksig.FeatureValue{Attribute: blocksig.At(4)}}}
	_, err := blocksig.Generate(set, joyce)
	iss, ok := blocksig.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Params["index"] != 4 || iss[0].Params["fields"] != 3 {
		t.Fatalf("params = %v, want index 4 and fields 3", iss[0].Params)
	}
}
