package blocksig

// Generate returns the signatures of r under set: the union over strategies
// of each strategy's concatenated fragments. The set is checked against r
// before any work is done, so a call either returns every signature or an
// Issues error and no signatures.
//
// Generate is a pure function and may be called concurrently. The size of a
// strategy's output is the product of its specs' fragment counts; bounding
// multi-fragment specs (n-grams) per strategy is up to the caller.
func Generate(set StrategySet, r Record) (Signatures, error) {
	if err := check(set, r); err != nil {
		return nil, err
	}
	out := make(Signatures)
	for _, st := range set {
		out.add(combine(st, r)...)
	}
	return out, nil
}

// GenerateStrategy returns the signatures of r under a single strategy.
func GenerateStrategy(st Strategy, r Record) (Signatures, error) {
	return Generate(StrategySet{st}, r)
}

func check(set StrategySet, r Record) error {
	var iss Issues
	for si, st := range set {
		for pi, sp := range st {
			p := rootPath().index(si).index(pi)
			if vi := validateSpec(sp, p); len(vi) > 0 {
				iss = append(iss, vi...)
				continue
			}
			if idx := sp.Attr().Index; idx >= len(r) {
				iss = append(iss, outOfRange(p.field("feature-idx"), idx, len(r)))
			}
		}
	}
	return iss.errOrNil()
}

// combine concatenates one fragment of every spec, in spec order, for each
// combination of fragments. A spec without fragments empties the result.
func combine(st Strategy, r Record) []string {
	if len(st) == 0 {
		return nil
	}
	acc := []string{""}
	for _, sp := range st {
		frags := encode(sp, stringify(r[sp.Attr().Index]))
		if len(frags) == 0 {
			return nil
		}
		next := make([]string, 0, len(acc)*len(frags))
		for _, prefix := range acc {
			for _, f := range frags {
				next = append(next, prefix+f)
			}
		}
		acc = next
	}
	return acc
}
