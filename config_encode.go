package blocksig

import (
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// wireSpec is the canonical document form of a Spec. Field order fixes the
// key order of the encoded output.
type wireSpec struct {
	Type       Type        `json:"type" yaml:"type"`
	FeatureIdx int         `json:"feature-idx" yaml:"feature-idx"`
	Config     *wireConfig `json:"config,omitempty" yaml:"config,omitempty"`
}

type wireConfig struct {
	Pos         []any `json:"pos,omitempty" yaml:"pos,omitempty,flow"`
	N           int   `json:"n,omitempty" yaml:"n,omitempty"`
	Pad         *bool `json:"pad,omitempty" yaml:"pad,omitempty"`
	PrimaryOnly bool  `json:"primary-only,omitempty" yaml:"primary-only,omitempty"`
}

// EncodeJSON renders set in the document form read by DecodeJSON.
func EncodeJSON(set StrategySet) ([]byte, error) {
	w, err := toWire(set)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// EncodeYAML renders set in the document form read by DecodeYAML.
func EncodeYAML(set StrategySet) ([]byte, error) {
	w, err := toWire(set)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(w)
}

func toWire(set StrategySet) ([][]wireSpec, error) {
	if err := Validate(set); err != nil {
		return nil, err
	}
	out := make([][]wireSpec, len(set))
	for si, st := range set {
		out[si] = make([]wireSpec, len(st))
		for pi, sp := range st {
			out[si][pi] = specToWire(sp)
		}
	}
	return out, nil
}

func specToWire(sp Spec) wireSpec {
	a := sp.Attr()
	ws := wireSpec{Type: sp.Type(), FeatureIdx: a.Index}
	cfg := &wireConfig{}
	for _, p := range a.Positions {
		if i, ok := p.(Index); ok {
			cfg.Pos = append(cfg.Pos, int(i))
		} else {
			cfg.Pos = append(cfg.Pos, p.String())
		}
	}
	switch s := sp.(type) {
	case NGram:
		cfg.N = s.N
	case Soundex:
		if s.Unpadded {
			pad := false
			cfg.Pad = &pad
		}
	case Metaphone:
		cfg.PrimaryOnly = s.PrimaryOnly
	}
	if cfg.Pos != nil || cfg.N != 0 || cfg.Pad != nil || cfg.PrimaryOnly {
		ws.Config = cfg
	}
	return ws
}
