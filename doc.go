// Package blocksig provides:
//
// - Blocking signatures for record linkage: compact keys such that records
// likely to match share at least one key
// - A closed set of per-attribute encoders: feature-value, characters-at,
// n-gram, soundex and metaphone (see package phonetic)
// - A combination algebra: specs of one strategy are concatenated (Cartesian
// product for multi-fragment encoders), strategies of a set are unioned
// - Declarative JSON/YAML strategy documents decoded once into typed specs,
// with problems reported as Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; phonetic algorithms live in phonetic/.
// - Everything is a pure function of its inputs; no I/O beyond decoding a document.
// - Reading datasets and building signature -> record buckets belong to callers
// (cmd/blocksig shows one way).
//
// Typical usage:
//
//	set, err := blocksig.DecodeYAML(doc)
//	for _, row := range rows {
//		sigs, err := blocksig.Generate(set, blocksig.Strings(row...))
//		...
//	}
//
// or, built in code:
//
//	set := blocksig.StrategySet{
//		{blocksig.Soundex{Attribute: blocksig.At(0)}, blocksig.Soundex{Attribute: blocksig.At(1)}},
//		{blocksig.CharactersAt{Attribute: blocksig.At(0, blocksig.Until(2), blocksig.Last(2))}},
//	}
package blocksig
