// internal/game/round.go
//
// Round state machine for a single duel or solo round.
// Responsibilities:
//   - Setup: player names, roles and word length.
//   - Start a round from a setter's secret (duel) or a picked secret (solo).
//   - Accumulate letters into the current row and validate submits.
//   - Reveal verdicts one letter at a time under a generation token.
//   - Resolve win/loss and reset for the next round.
//
// A Round is not safe for concurrent use. Presentation layers that run
// goroutines wrap it in a session that serialises access.

package game

import (
	"fmt"
	"strings"
)

const (
	Attempts      = 6
	MinLength     = 4
	MaxLength     = 6
	DefaultLength = 5

	DefaultPlayerA = "Player A"
	DefaultPlayerB = "Player B"

	soloGuesser = "You"
	soloSetter  = "System"
)

// RevealToken identifies one in-flight reveal. It stops matching as soon as
// the round is restarted or reset.
type RevealToken struct {
	Generation uint64 `json:"generation"`
	Row        int    `json:"row"`
}

// reveal is the sub-phase of play between a valid submit and the row's
// verdicts being committed. Input is locked while it is set.
type reveal struct {
	token    RevealToken
	shown    int
	guess    string
	verdicts []Verdict
}

// Round holds the state of one word duel between two local players.
type Round struct {
	dict   Dictionary
	picker Picker

	playerA   string
	playerB   string
	setterIsA bool
	length    int

	phase        Phase
	mode         Mode
	secret       string
	rows         []Row
	rowIndex     int
	colIndex     int
	attemptsLeft int
	keys         KeyStates
	reveal       *reveal
	result       *Result
	generation   uint64
}

// Option configures a new Round.
type Option func(*Round)

// WithPlayers sets the two player names.
func WithPlayers(a, b string) Option {
	return func(r *Round) { r.playerA, r.playerB = nameOr(a, DefaultPlayerA), nameOr(b, DefaultPlayerB) }
}

// WithLength sets the initial word length. Unsupported lengths are ignored.
func WithLength(n int) Option {
	return func(r *Round) {
		if validLength(n) {
			r.length = n
		}
	}
}

// NewRound constructs a round in the setup phase.
func NewRound(dict Dictionary, picker Picker, opts ...Option) *Round {
	r := &Round{
		dict:      dict,
		picker:    picker,
		playerA:   DefaultPlayerA,
		playerB:   DefaultPlayerB,
		setterIsA: true,
		length:    DefaultLength,
		phase:     PhaseSetup,
		mode:      ModeDuel,
	}
	for _, o := range opts {
		o(r)
	}
	r.clearBoard()
	return r
}

// ------------------------------- setup -------------------------------------

// SetPlayers renames the players. Empty names fall back to the defaults.
func (r *Round) SetPlayers(a, b string) error {
	if r.phase != PhaseSetup {
		return ErrWrongPhase
	}
	r.playerA, r.playerB = nameOr(a, DefaultPlayerA), nameOr(b, DefaultPlayerB)
	return nil
}

// SetLength changes the word length for the next round.
func (r *Round) SetLength(n int) error {
	if r.phase != PhaseSetup {
		return ErrWrongPhase
	}
	if !validLength(n) {
		return fmt.Errorf("%w: %d", ErrUnsupportedLength, n)
	}
	r.length = n
	r.clearBoard()
	return nil
}

// SwapRoles exchanges setter and guesser.
func (r *Round) SwapRoles() error {
	if r.phase != PhaseSetup {
		return ErrWrongPhase
	}
	r.setterIsA = !r.setterIsA
	return nil
}

// StartDuel moves setup → play with the setter's secret.
//
// The secret is trimmed and uppercased, then must be exactly Length letters
// A–Z and present in the dictionary.
func (r *Round) StartDuel(secret string) error {
	if r.phase != PhaseSetup {
		return ErrWrongPhase
	}
	s := strings.ToUpper(strings.TrimSpace(secret))
	if s == "" || !isUpperAlpha(s) {
		return ErrSecretMalformed
	}
	if len(s) != r.length {
		return ErrSecretLength
	}
	if !r.dict.Contains(s) {
		return ErrSecretNotInDictionary
	}
	r.begin(ModeDuel, s)
	return nil
}

// StartSolo moves setup or result → play with a picked secret.
// Called from result it is "play solo again" and skips setup.
func (r *Round) StartSolo() error {
	if r.phase == PhasePlay {
		return ErrWrongPhase
	}
	candidates := r.dict.Words(r.length)
	if len(candidates) == 0 {
		return ErrDictionaryEmpty
	}
	s, err := r.picker.Pick(candidates)
	if err != nil {
		return fmt.Errorf("pick secret: %w", err)
	}
	r.begin(ModeSolo, strings.ToUpper(s))
	return nil
}

// begin enters play with a fresh board.
func (r *Round) begin(mode Mode, secret string) {
	r.generation++
	r.mode = mode
	r.secret = secret
	r.phase = PhasePlay
	r.clearBoard()
}

// clearBoard resets rows, cursor, attempts, keyboard, reveal and result.
func (r *Round) clearBoard() {
	r.rows = make([]Row, Attempts)
	for i := range r.rows {
		r.rows[i] = Row{Letters: make([]byte, r.length)}
	}
	r.rowIndex, r.colIndex = 0, 0
	r.attemptsLeft = Attempts
	r.keys = KeyStates{}
	r.reveal = nil
	r.result = nil
}

// -------------------------------- play -------------------------------------

// TypeLetter writes ch at the cursor. Lowercase letters are accepted.
// It is a no-op when the row is full or a reveal is running.
func (r *Round) TypeLetter(ch rune) error {
	if r.phase != PhasePlay {
		return ErrWrongPhase
	}
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	if ch < 'A' || ch > 'Z' {
		return ErrNotALetter
	}
	if r.reveal != nil || r.colIndex >= r.length {
		return nil
	}
	r.rows[r.rowIndex].Letters[r.colIndex] = byte(ch)
	r.colIndex++
	return nil
}

// Backspace clears the cell before the cursor.
func (r *Round) Backspace() error {
	if r.phase != PhasePlay {
		return ErrWrongPhase
	}
	if r.reveal != nil || r.colIndex == 0 {
		return nil
	}
	r.colIndex--
	r.rows[r.rowIndex].Letters[r.colIndex] = 0
	return nil
}

// Submit validates the current row and starts revealing its verdicts.
// The returned token must be passed to AdvanceReveal or CompleteReveal.
func (r *Round) Submit() (RevealToken, error) {
	if r.phase != PhasePlay {
		return RevealToken{}, ErrWrongPhase
	}
	if r.reveal != nil {
		return RevealToken{}, ErrRevealInProgress
	}
	guess := r.rows[r.rowIndex].Word()
	if len(guess) != r.length {
		return RevealToken{}, ErrIncompleteGuess
	}
	if !r.dict.Contains(guess) {
		return RevealToken{}, ErrGuessNotInDictionary
	}

	tok := RevealToken{Generation: r.generation, Row: r.rowIndex}
	r.reveal = &reveal{
		token:    tok,
		guess:    guess,
		verdicts: Score(r.secret, guess),
	}
	return tok, nil
}

// AdvanceReveal shows one more verdict of the revealing row. done is true
// once the last verdict is shown and the row has been resolved.
func (r *Round) AdvanceReveal(tok RevealToken) (done bool, err error) {
	if !r.revealMatches(tok) {
		return false, ErrStaleReveal
	}
	r.reveal.shown++
	if r.reveal.shown < len(r.reveal.verdicts) {
		return false, nil
	}
	r.finishReveal()
	return true, nil
}

// CompleteReveal shows every remaining verdict at once and resolves the row.
func (r *Round) CompleteReveal(tok RevealToken) error {
	if !r.revealMatches(tok) {
		return ErrStaleReveal
	}
	r.finishReveal()
	return nil
}

func (r *Round) revealMatches(tok RevealToken) bool {
	return r.phase == PhasePlay && r.reveal != nil && r.reveal.token == tok
}

// finishReveal commits the verdicts, then decides win, loss or next row.
func (r *Round) finishReveal() {
	rv := r.reveal
	r.reveal = nil

	r.rows[rv.token.Row].Verdicts = rv.verdicts
	r.keys.Merge(rv.guess, rv.verdicts)

	switch {
	case allCorrect(rv.verdicts):
		r.finish(true)
	case r.attemptsLeft-1 <= 0:
		r.finish(false)
	default:
		r.attemptsLeft--
		r.rowIndex++
		r.colIndex = 0
	}
}

// finish enters the result phase.
func (r *Round) finish(won bool) {
	r.phase = PhaseResult
	res := &Result{Secret: r.secret}
	switch {
	case r.mode == ModeSolo && won:
		res.Outcome, res.Winner, res.Loser = OutcomeSoloWin, soloGuesser, soloSetter
		res.Reason = "You guessed the word!"
	case r.mode == ModeSolo:
		res.Outcome, res.Winner, res.Loser = OutcomeSoloLoss, soloSetter, soloGuesser
		res.Reason = fmt.Sprintf("Out of attempts! The word was %s.", r.secret)
	case won:
		res.Outcome, res.Winner, res.Loser = OutcomeGuesserWins, r.Guesser(), r.Setter()
		res.Reason = fmt.Sprintf("%s guessed it!", r.Guesser())
	default:
		res.Outcome, res.Winner, res.Loser = OutcomeSetterWins, r.Setter(), r.Guesser()
		res.Reason = fmt.Sprintf("Out of attempts! The word was %s.", r.secret)
	}
	r.result = res
}

// PlayAgain returns to setup from any phase, discarding the round and any
// reveal in flight. Names and length are kept; swap exchanges the roles.
func (r *Round) PlayAgain(swap bool) {
	r.generation++
	if swap {
		r.setterIsA = !r.setterIsA
	}
	r.phase = PhaseSetup
	r.mode = ModeDuel
	r.secret = ""
	r.clearBoard()
}

// ------------------------------ accessors ----------------------------------

func (r *Round) Phase() Phase { return r.phase }
func (r *Round) Mode() Mode { return r.mode }
func (r *Round) Length() int { return r.length }
func (r *Round) AttemptsLeft() int { return r.attemptsLeft }
func (r *Round) RowIndex() int { return r.rowIndex }
func (r *Round) ColIndex() int { return r.colIndex }
func (r *Round) Generation() uint64 { return r.generation }
func (r *Round) Revealing() bool { return r.reveal != nil }
func (r *Round) Players() (a, b string) { return r.playerA, r.playerB }

// Secret returns the current secret. Empty in setup.
func (r *Round) Secret() string { return r.secret }

// Setter is the name of the player who set the secret.
func (r *Round) Setter() string {
	if r.setterIsA {
		return r.playerA
	}
	return r.playerB
}

// Guesser is the name of the player guessing.
func (r *Round) Guesser() string {
	if r.setterIsA {
		return r.playerB
	}
	return r.playerA
}

// Result returns a copy of the result, or nil before the round ends.
func (r *Round) Result() *Result {
	if r.result == nil {
		return nil
	}
	res := *r.result
	return &res
}

// Rows returns a deep copy of the board.
func (r *Round) Rows() []Row {
	out := make([]Row, len(r.rows))
	for i, row := range r.rows {
		out[i] = Row{Letters: append([]byte(nil), row.Letters...)}
		if row.Verdicts != nil {
			out[i].Verdicts = append([]Verdict(nil), row.Verdicts...)
		}
	}
	return out
}

// SubmittedRows counts rows whose verdicts have been committed.
func (r *Round) SubmittedRows() int {
	n := 0
	for _, row := range r.rows {
		if row.Submitted() {
			n++
		}
	}
	return n
}

// Keys returns a copy of the keyboard letter state.
func (r *Round) Keys() KeyStates {
	out := make(KeyStates, len(r.keys))
	for c, v := range r.keys {
		out[c] = v
	}
	return out
}

func validLength(n int) bool { return n >= MinLength && n <= MaxLength }

func nameOr(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
