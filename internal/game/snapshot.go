package game

// Snapshot is the presentation view of a round, safe to hand to a renderer
// or encode as JSON. The secret only appears inside Result.
type Snapshot struct {
	Phase        Phase              `json:"phase"`
	Mode         Mode               `json:"mode"`
	Generation   uint64             `json:"generation"`
	Length       int                `json:"length"`
	Attempts     int                `json:"attempts"`
	AttemptsLeft int                `json:"attemptsLeft"`
	RowIndex     int                `json:"rowIndex"`
	ColIndex     int                `json:"colIndex"`
	PlayerA      string             `json:"playerA"`
	PlayerB      string             `json:"playerB"`
	Setter       string             `json:"setter"`
	Guesser      string             `json:"guesser"`
	Rows         []RowView          `json:"rows"`
	Keys         map[string]Verdict `json:"keys"`
	Reveal       *RevealView        `json:"reveal,omitempty"`
	Result       *Result            `json:"result,omitempty"`
}

// RowView is one board row. Letters has one entry per column ("" = empty).
// Verdicts holds only the verdicts visible so far.
type RowView struct {
	Letters  []string  `json:"letters"`
	Verdicts []Verdict `json:"verdicts,omitempty"`
}

// RevealView describes the reveal in progress.
type RevealView struct {
	Token RevealToken `json:"token"`
	Shown int         `json:"shown"`
}

// Snapshot captures the current state of r.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Phase:        r.phase,
		Mode:         r.mode,
		Generation:   r.generation,
		Length:       r.length,
		Attempts:     Attempts,
		AttemptsLeft: r.attemptsLeft,
		RowIndex:     r.rowIndex,
		ColIndex:     r.colIndex,
		PlayerA:      r.playerA,
		PlayerB:      r.playerB,
		Setter:       r.Setter(),
		Guesser:      r.Guesser(),
		Rows:         make([]RowView, len(r.rows)),
		Keys:         r.keys.Strings(),
		Result:       r.Result(),
	}
	if r.mode == ModeSolo {
		s.Setter, s.Guesser = soloSetter, soloGuesser
	}
	for i, row := range r.rows {
		rv := RowView{Letters: make([]string, len(row.Letters))}
		for j, c := range row.Letters {
			if c != 0 {
				rv.Letters[j] = string(c)
			}
		}
		if row.Verdicts != nil {
			rv.Verdicts = append([]Verdict(nil), row.Verdicts...)
		}
		s.Rows[i] = rv
	}
	if rv := r.reveal; rv != nil {
		s.Reveal = &RevealView{Token: rv.token, Shown: rv.shown}
		s.Rows[rv.token.Row].Verdicts = append([]Verdict(nil), rv.verdicts[:rv.shown]...)
	}
	return s
}
