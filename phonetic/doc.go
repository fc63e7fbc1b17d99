// Package phonetic implements the phonetic encoders used for blocking
// signatures: classic American Soundex and Double Metaphone.
//
// Both encoders are pure functions over a string and are safe for concurrent
// use. Soundex folds accents (via golang.org/x/text) and keeps ASCII letters
// only; Double Metaphone works on the uppercased input and understands Ç and Ñ.
package phonetic
