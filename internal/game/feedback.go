// internal/game/feedback.go
//
// Feedback engine: compares a guess against the secret.
//
// Notes:
//   - Both words are uppercase A–Z and of equal length; callers validate.
//   - Score is pure and deterministic.

package game

// Score implements the two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non‑correct) secret letters by letter index.
//
// Pass 2:
//   - For each non‑correct guess letter: if there is remaining count for that
//     letter, mark present and decrement the count; otherwise mark absent.
//
// A letter is therefore never reported correct+present more often than it
// occurs in the secret, and exact matches are never downgraded.
func Score(secret, guess string) []Verdict {
	n := len(guess)
	res := make([]Verdict, n)

	// Letter frequency for the non‑correct positions (A–Z).
	var left [26]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = VerdictCorrect
		} else {
			left[idx(secret[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == VerdictCorrect {
			continue
		}
		if j := idx(guess[i]); left[j] > 0 {
			res[i] = VerdictPresent
			left[j]--
		} else {
			res[i] = VerdictAbsent
		}
	}
	return res
}

// idx maps an uppercase ASCII letter to 0..25.
func idx(c byte) int { return int(c - 'A') }

// isUpperAlpha checks that a string consists only of A–Z.
func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// allCorrect returns true if every verdict is correct.
func allCorrect(v []Verdict) bool {
	for _, x := range v {
		if x != VerdictCorrect {
			return false
		}
	}
	return true
}
