package blocksig

import (
	js "github.com/reoring/blocksig/jsonschema"
)

// positionPattern matches the textual position grammar of ParsePosition.
const positionPattern = `^\s*(-?\d+|-?\d*\s*:\s*-?\d*)\s*$`

// ConfigSchema describes the strategy-set document accepted by DecodeJSON and
// DecodeYAML as a JSON Schema. Each spec is a oneOf branch selected by its
// "type" tag.
func ConfigSchema() *js.Schema {
	variants := make([]*js.Schema, 0, len(Types))
	for _, t := range Types {
		variants = append(variants, specSchema(t))
	}
	return &js.Schema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		Title:       "blocking signature strategy set",
		Description: "Strategies are unioned; the specs of one strategy are concatenated in order.",
		Type:        "array",
		Items: &js.Schema{
			Type:     "array",
			MinItems: js.Int(1),
			Items:    &js.Schema{OneOf: variants},
		},
	}
}

func specSchema(t Type) *js.Schema {
	cfg := &js.Schema{
		Type:                 "object",
		Properties:           map[string]*js.Schema{keyPos: positionsSchema()},
		AdditionalProperties: false,
	}
	s := &js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			keyType:         {Const: string(t)},
			keyFeatureIdx:   {Type: "integer", Minimum: js.Int(0)},
			keyFeatureIndex: {Type: "integer", Minimum: js.Int(0), Description: "alias of feature-idx"},
			keyConfig:       cfg,
		},
		Required:             []string{keyType},
		OneOf:                []*js.Schema{{Required: []string{keyFeatureIdx}}, {Required: []string{keyFeatureIndex}}},
		AdditionalProperties: false,
	}
	switch t {
	case TypeCharactersAt:
		cfg.Properties[keyPos].MinItems = js.Int(1)
		cfg.Required = []string{keyPos}
		s.Required = append(s.Required, keyConfig)
	case TypeNGram:
		cfg.Properties[keyN] = &js.Schema{Type: "integer", Minimum: js.Int(1)}
		cfg.Required = []string{keyN}
		s.Required = append(s.Required, keyConfig)
	case TypeSoundex:
		cfg.Properties[keyPad] = &js.Schema{Type: "boolean", Default: true}
	case TypeMetaphone:
		cfg.Properties[keyPrimaryOnly] = &js.Schema{Type: "boolean", Default: false}
	}
	return s
}

func positionsSchema() *js.Schema {
	return &js.Schema{
		Type: "array",
		Items: &js.Schema{AnyOf: []*js.Schema{
			{Type: "integer"},
			{Type: "string", Pattern: positionPattern},
		}},
	}
}
