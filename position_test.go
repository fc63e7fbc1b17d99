package blocksig_test

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/reoring/blocksig"
)

func TestParsePosition(t *testing.T) {
	cases := []struct {
		in   string
		want string // canonical String()
		sel  string // selection on "Joyce"
	}{
		{"2", "2", "y"},
		{" 0 ", "0", "J"},
		{"-1", "-1", "e"},
		{"9", "9", ""},
		{"1:4", "1:4", "oyc"},
		{":2", ":2", "Jo"},
		{"-2:", "-2:", "ce"},
		{"3:", "3:", "ce"},
		{":", ":", "Joyce"},
		{"-10:2", "-10:2", "Jo"},
		{"4:2", "4:2", ""},
		{"1:-1", "1:-1", "oyc"},
		{"2:100", "2:100", "yce"},
		{" 1 : 3 ", "1:3", "oy"},
	}
	for _, tc := range cases {
		p, err := blocksig.ParsePosition(tc.in)
		if err != nil {
			t.Fatalf("ParsePosition(%q): %v", tc.in, err)
		}
		if p.String() != tc.want {
			t.Errorf("ParsePosition(%q).String() = %q, want %q", tc.in, p.String(), tc.want)
		}
		if got := p.Select("Joyce"); got != tc.sel {
			t.Errorf("%q.Select(Joyce) = %q, want %q", tc.in, got, tc.sel)
		}
	}
}

func TestParsePosition_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "a", "1:b", "1:2:3", "x:"} {
		_, err := blocksig.ParsePosition(in)
		if err == nil {
			t.Errorf("ParsePosition(%q): expected error", in)
			continue
		}
		iss, _ := blocksig.AsIssues(err)
		if len(iss) != 1 || iss[0].Code != blocksig.CodeInvalidPosition {
			t.Errorf("ParsePosition(%q): unexpected error %v", in, err)
		}
		if !errors.Is(err, blocksig.ErrConfiguration) {
			t.Errorf("ParsePosition(%q): not a configuration error", in)
		}
	}
}

func TestParsePositions_ReportsEachBadSpecifier(t *testing.T) {
	_, err := blocksig.ParsePositions("1:4", "?", "2", "1:2:3")
	iss, ok := blocksig.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected two issues, got %v", err)
	}
	if iss[0].Path != "/1" || iss[1].Path != "/3" {
		t.Fatalf("unexpected paths %q %q", iss[0].Path, iss[1].Path)
	}
	ps, err := blocksig.ParsePositions(":2", "-2:")
	if err != nil || len(ps) != 2 {
		t.Fatalf("ParsePositions: %v %v", ps, err)
	}
}

func TestPositionOf(t *testing.T) {
	for _, v := range []any{2, int64(2), 2.0, json.Number("2"), "2"} {
		p, err := blocksig.PositionOf(v)
		if err != nil {
			t.Fatalf("PositionOf(%#v): %v", v, err)
		}
		if p != blocksig.Index(2) {
			t.Fatalf("PositionOf(%#v) = %#v, want Index(2)", v, p)
		}
	}
	for _, v := range []any{2.5, true, nil, []any{1}} {
		if _, err := blocksig.PositionOf(v); err == nil {
			t.Errorf("PositionOf(%#v): expected error", v)
		}
	}
}

func TestPositions_Runes(t *testing.T) {
	if got := blocksig.Index(2).Select("Zoë"); got != "ë" {
		t.Fatalf("Index(2) on Zoë = %q", got)
	}
	if got := blocksig.Last(2).Select("Zoë"); got != "oë" {
		t.Fatalf("Last(2) on Zoë = %q", got)
	}
	if got := blocksig.Range(0, 1).Select(""); got != "" {
		t.Fatalf("Range on empty = %q", got)
	}
}

func TestExtract(t *testing.T) {
	got, err := blocksig.Extract(joyce, 0)
	if err != nil || len(got) != 1 || got[0] != "Joyce" {
		t.Fatalf("Extract raw = %v, %v", got, err)
	}
	got, err = blocksig.Extract(joyce, 0, blocksig.Range(1, 4), blocksig.Last(2))
	if err != nil || len(got) != 2 || got[0] != "oyc" || got[1] != "ce" {
		t.Fatalf("Extract positions = %v, %v", got, err)
	}
	got, err = blocksig.Extract(joyce, 2, blocksig.Index(0))
	if err != nil || got[0] != "2" {
		t.Fatalf("Extract numeric field = %v, %v", got, err)
	}
	if _, err := blocksig.Extract(joyce, 3); !errors.Is(err, blocksig.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

type name struct{ first, last string }

func (n name) String() string { return n.first + " " + n.last }

func TestRecordField_Stringify(t *testing.T) {
	r := blocksig.Record{"s", []byte("b"), 42, int64(-7), uint8(3), 1.5, true, nil, name{"Ada", "Lovelace"}}
	want := []string{"s", "b", "42", "-7", "3", "1.5", "true", "", "Ada Lovelace"}
	for i, w := range want {
		got, err := r.Field(i)
		if err != nil || got != w {
			t.Errorf("Field(%d) = %q, %v; want %q", i, got, err, w)
		}
	}
	if s := blocksig.Strings("a", "b"); len(s) != 2 || s[1] != "b" {
		t.Fatalf("Strings = %#v", s)
	}
}
