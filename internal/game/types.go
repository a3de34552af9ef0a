// internal/game/types.go
//
// Core type definitions for the word duel engine.
// Defines:
//   - Verdict: per-letter result of a guess (correct/present/absent).
//   - Phase, Mode, Outcome: round state tags.
//   - Row, Result: the pieces a Round is built from.
//   - Dictionary, Picker: collaborators supplied by the caller.

package game

// Verdict represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the secret at this position.
//   - "present": letter is in the secret elsewhere, within its remaining count.
//   - "absent":  letter has no remaining occurrences in the secret.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
)

// rank orders verdicts for keyboard display priority.
func (v Verdict) rank() int {
	switch v {
	case VerdictCorrect:
		return 3
	case VerdictPresent:
		return 2
	case VerdictAbsent:
		return 1
	default:
		return 0
	}
}

// Phase is the coarse state of a round.
type Phase string

const (
	PhaseSetup  Phase = "setup"
	PhasePlay   Phase = "play"
	PhaseResult Phase = "result"
)

// Mode tells who set the secret.
type Mode string

const (
	ModeDuel Mode = "duel"
	ModeSolo Mode = "solo"
)

// Outcome is how a finished round was resolved.
type Outcome string

const (
	OutcomeGuesserWins Outcome = "guesser_wins"
	OutcomeSetterWins  Outcome = "setter_wins"
	OutcomeSoloWin     Outcome = "solo_win"
	OutcomeSoloLoss    Outcome = "solo_loss"
)

// Row is one guess attempt. Letters holds one byte per column (0 = empty).
// Verdicts is nil until the row has been submitted and fully revealed.
type Row struct {
	Letters  []byte
	Verdicts []Verdict
}

// Word returns the letters typed so far, skipping empty cells.
func (r Row) Word() string {
	b := make([]byte, 0, len(r.Letters))
	for _, c := range r.Letters {
		if c != 0 {
			b = append(b, c)
		}
	}
	return string(b)
}

// Submitted reports whether the row carries verdicts.
func (r Row) Submitted() bool { return r.Verdicts != nil }

// Result describes a finished round.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Winner  string  `json:"winner"`
	Loser   string  `json:"loser"`
	Reason  string  `json:"reason"`
	Secret  string  `json:"secret"`
}

// Dictionary is the read-only word source a round validates against.
type Dictionary interface {
	// Contains reports whether word (uppercase) is a valid word.
	Contains(word string) bool
	// Words returns every valid word of the given length.
	Words(length int) []string
}

// Picker chooses a solo-mode secret from a non-empty candidate list.
type Picker interface {
	Pick(words []string) (string, error)
}
