package domain

// RhythmTolerance is the per-press timing allowance, in milliseconds,
// when comparing a submitted rhythm against the stored reference.
const RhythmTolerance = 200

// MatchesRhythm reports whether a submitted rhythm reproduces the
// reference rhythm. The comparison is strictly positional: sequences of
// different length never match, each key must be identical at its
// index, and each submitted time must be within RhythmTolerance
// milliseconds (inclusive) of the reference time at the same index.
func MatchesRhythm(submitted, reference []KeyPress) bool {
	if len(submitted) != len(reference) {
		return false
	}

	for i := range reference {
		if submitted[i].Key != reference[i].Key {
			return false
		}
		delta := submitted[i].Time - reference[i].Time
		if delta < 0 {
			delta = -delta
		}
		if delta > RhythmTolerance {
			return false
		}
	}

	return true
}
