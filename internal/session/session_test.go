package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/wordduel/internal/game"
	"github.com/robalobadob/wordduel/internal/words"
)

type firstPicker struct{}

func (firstPicker) Pick(list []string) (string, error) { return list[0], nil }

func newTestSession(t *testing.T, step time.Duration) *Session {
	t.Helper()
	dict := words.New([]string{"apple", "paper", "crane", "slate", "plant", "grasp", "thing"})
	s := New("test", game.NewRound(dict, firstPicker{}), Options{RevealStep: step})
	t.Cleanup(s.Close)
	return s
}

func pressKeys(t *testing.T, s *Session, keys ...string) game.Snapshot {
	t.Helper()
	var snap game.Snapshot
	for _, k := range keys {
		var err error
		if snap, err = s.Key(context.Background(), k); err != nil {
			t.Fatalf("Key(%q) error = %v", k, err)
		}
	}
	return snap
}

// waitFor reads events until cond holds or the deadline passes.
func waitFor(t *testing.T, ch <-chan Event, cond func(Event) bool) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatal("subscription closed")
			}
			if cond(ev) {
				return ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestImmediateReveal(t *testing.T) {
	s := newTestSession(t, 0)
	ctx := context.Background()
	if _, err := s.StartDuel(ctx, "apple"); err != nil {
		t.Fatalf("StartDuel() error = %v", err)
	}

	snap := pressKeys(t, s, "c", "r", "a", "n", "e", "ENTER")
	if snap.Reveal != nil {
		t.Errorf("Reveal = %+v, want none with zero step", snap.Reveal)
	}
	if snap.RowIndex != 1 || snap.AttemptsLeft != game.Attempts-1 {
		t.Errorf("after submit row=%d left=%d", snap.RowIndex, snap.AttemptsLeft)
	}
	if got := len(snap.Rows[0].Verdicts); got != 5 {
		t.Errorf("row 0 has %d verdicts, want 5", got)
	}

	snap = pressKeys(t, s, "A", "P", "P", "L", "E", "Enter")
	if snap.Phase != game.PhaseResult || snap.Result.Outcome != game.OutcomeGuesserWins {
		t.Errorf("after winning guess phase=%s result=%+v", snap.Phase, snap.Result)
	}
}

func TestPacedReveal(t *testing.T) {
	s := newTestSession(t, time.Millisecond)
	ctx := context.Background()
	events, cancel := s.Subscribe()
	defer cancel()

	if _, err := s.StartDuel(ctx, "APPLE"); err != nil {
		t.Fatal(err)
	}
	snap := pressKeys(t, s, "P", "A", "P", "E", "R", "ENTER")
	if snap.Reveal == nil || snap.Reveal.Shown != 0 {
		t.Fatalf("Reveal = %+v right after submit, want shown=0", snap.Reveal)
	}
	if _, err := s.Key(ctx, "BACKSPACE"); err != nil {
		t.Fatalf("Key(BACKSPACE) during reveal error = %v", err)
	}

	ev := waitFor(t, events, func(ev Event) bool { return ev.State.RowIndex == 1 })
	want := []game.Verdict{game.VerdictPresent, game.VerdictPresent, game.VerdictCorrect, game.VerdictPresent, game.VerdictAbsent}
	got := ev.State.Rows[0].Verdicts
	if len(got) != len(want) {
		t.Fatalf("row 0 verdicts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("verdict %d = %s, want %s", i, got[i], want[i])
		}
	}
	if ev.State.Rows[0].Letters[4] != "R" {
		t.Errorf("backspace during reveal removed a letter: %v", ev.State.Rows[0].Letters)
	}
}

func TestPlayAgainDropsPendingReveal(t *testing.T) {
	s := newTestSession(t, time.Hour)
	ctx := context.Background()
	if _, err := s.StartDuel(ctx, "APPLE"); err != nil {
		t.Fatal(err)
	}
	snap := pressKeys(t, s, "C", "R", "A", "N", "E", "ENTER")
	if snap.Reveal == nil {
		t.Fatal("expected a reveal in progress")
	}
	tok := snap.Reveal.Token

	if _, err := s.PlayAgain(ctx, false); err != nil {
		t.Fatalf("PlayAgain() error = %v", err)
	}
	// A step that was already in flight when the reset happened.
	s.advance(tok)

	snap = s.Snapshot()
	if snap.Phase != game.PhaseSetup || snap.Reveal != nil {
		t.Errorf("after stale step phase=%s reveal=%+v", snap.Phase, snap.Reveal)
	}
	for i, row := range snap.Rows {
		if len(row.Verdicts) != 0 {
			t.Errorf("row %d has verdicts %v after reset", i, row.Verdicts)
		}
	}
}

func TestInvalidInputSignal(t *testing.T) {
	s := newTestSession(t, 0)
	ctx := context.Background()
	events, cancel := s.Subscribe()
	defer cancel()

	_, err := s.StartDuel(ctx, "ZZZZZ")
	if !game.IsInvalidInput(err) {
		t.Fatalf("StartDuel(ZZZZZ) error = %v, want invalid input", err)
	}
	ev := waitFor(t, events, func(Event) bool { return true })
	if ev.Type != EventInvalid || ev.State.Phase != game.PhaseSetup || ev.Reason == "" {
		t.Errorf("event = %+v, want invalid signal in setup", ev)
	}

	if _, err := s.StartSolo(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Key(ctx, "ENTER"); !errors.Is(err, game.ErrIncompleteGuess) {
		t.Errorf("Key(ENTER) on empty row error = %v, want ErrIncompleteGuess", err)
	}
	if _, err := s.Key(ctx, "F1"); !errors.Is(err, game.ErrNotALetter) {
		t.Errorf("Key(F1) error = %v, want ErrNotALetter", err)
	}
}

func TestConfigureAndSwap(t *testing.T) {
	s := newTestSession(t, 0)
	ctx := context.Background()

	snap, err := s.Configure(ctx, "Ana", "Ben", 4)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if snap.Length != 4 || snap.Setter != "Ana" || snap.Guesser != "Ben" {
		t.Errorf("Configure() snapshot = %+v", snap)
	}
	if _, err := s.Configure(ctx, "Ana", "Ben", 9); !errors.Is(err, game.ErrUnsupportedLength) {
		t.Errorf("Configure(length 9) error = %v", err)
	}
	snap, err = s.SwapRoles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Setter != "Ben" {
		t.Errorf("Setter after swap = %s, want Ben", snap.Setter)
	}
}

func TestCloseEndsSubscriptions(t *testing.T) {
	s := newTestSession(t, 0)
	events, cancel := s.Subscribe()
	s.Close()
	if _, ok := <-events; ok {
		t.Error("subscription still open after Close")
	}
	cancel() // must not panic after Close
}

func TestLastActive(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	dict := words.New([]string{"apple"})
	s := New("clock", game.NewRound(dict, firstPicker{}), Options{Now: func() time.Time { return now }})
	defer s.Close()

	now = now.Add(time.Minute)
	if _, err := s.StartSolo(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := s.LastActive(); !got.Equal(now) {
		t.Errorf("LastActive() = %v, want %v", got, now)
	}
}
