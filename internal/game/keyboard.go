package game

// KeyStates maps a letter to the best verdict seen for it this round.
// It only drives keyboard colouring; the rows are authoritative.
type KeyStates map[byte]Verdict

// Merge folds one submitted guess into the mapping. A letter's verdict only
// ever moves up: absent → present → correct.
func (k KeyStates) Merge(guess string, verdicts []Verdict) {
	for i := 0; i < len(guess) && i < len(verdicts); i++ {
		c, v := guess[i], verdicts[i]
		if cur, ok := k[c]; !ok || v.rank() > cur.rank() {
			k[c] = v
		}
	}
}

// Strings returns a copy keyed by single-letter strings, for JSON.
func (k KeyStates) Strings() map[string]Verdict {
	out := make(map[string]Verdict, len(k))
	for c, v := range k {
		out[string(c)] = v
	}
	return out
}
