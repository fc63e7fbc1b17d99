package blocksig

import "sort"

// Signatures is the set of blocking keys of one record. Order carries no
// meaning; use Sorted for stable output.
type Signatures map[string]struct{}

// NewSignatures returns a set holding keys. Empty keys are ignored.
func NewSignatures(keys ...string) Signatures {
	s := make(Signatures, len(keys))
	s.add(keys...)
	return s
}

func (s Signatures) add(keys ...string) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		s[k] = struct{}{}
	}
}

// Contains reports whether key is in the set.
func (s Signatures) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of signatures.
func (s Signatures) Len() int { return len(s) }

// Sorted returns the signatures in ascending order.
func (s Signatures) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set with the members of s and other.
func (s Signatures) Union(other Signatures) Signatures {
	out := make(Signatures, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same signatures.
func (s Signatures) Equal(other Signatures) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}
