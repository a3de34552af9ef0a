// internal/session/session.go
//
// A Session owns one game.Round and is the only way presentation layers
// touch it.
// Responsibilities:
//   - Serialise intents (keys, starts, resets) from concurrent callers.
//   - Pace the per-letter reveal after a submit with a timer per step.
//   - Publish a snapshot to subscribers after every change.
//
// Reveal steps carry the round's RevealToken. PlayAgain stops the pending
// timer, and a step that fires anyway is rejected by the token check, so a
// reset never sees verdicts from an abandoned row.

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/robalobadob/wordduel/internal/game"
	"github.com/robalobadob/wordduel/internal/telemetry"
)

// subscriberBuffer is the buffer size of each subscriber channel.
const subscriberBuffer = 16

// EventType tags a published event.
type EventType string

const (
	// EventState carries the state after a successful change.
	EventState EventType = "state"
	// EventInvalid is the advisory invalid-input signal; state is unchanged.
	EventInvalid EventType = "invalid"
)

// Event is sent to subscribers.
type Event struct {
	Type   EventType     `json:"type"`
	Reason string        `json:"reason,omitempty"`
	State  game.Snapshot `json:"state"`
}

// Options tune a session.
type Options struct {
	// RevealStep is the delay between revealed letters. Zero or negative
	// reveals the whole row as part of the submit.
	RevealStep time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session wraps one round for one local pair of players.
type Session struct {
	ID string

	mu         sync.Mutex // guards everything below except subs
	round      *game.Round
	step       time.Duration
	timer      *time.Timer
	lastActive time.Time
	now        func() time.Time
	closed     bool

	subMu sync.Mutex
	subs  map[chan Event]struct{}

	tracer trace.Tracer
}

// New wraps round in a session.
func New(id string, round *game.Round, opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:         id,
		round:      round,
		step:       opts.RevealStep,
		lastActive: now(),
		now:        now,
		subs:       make(map[chan Event]struct{}),
		tracer:     telemetry.Tracer("session"),
	}
}

// ------------------------------- intents -----------------------------------

// Snapshot returns the current state.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Snapshot()
}

// Configure sets player names and word length in setup.
func (s *Session) Configure(ctx context.Context, playerA, playerB string, length int) (game.Snapshot, error) {
	return s.apply(ctx, "configure", func(r *game.Round) error {
		if length != 0 && length != r.Length() {
			if err := r.SetLength(length); err != nil {
				return err
			}
		}
		return r.SetPlayers(playerA, playerB)
	})
}

// SwapRoles exchanges setter and guesser in setup.
func (s *Session) SwapRoles(ctx context.Context) (game.Snapshot, error) {
	return s.apply(ctx, "swap_roles", (*game.Round).SwapRoles)
}

// StartDuel starts a round with the setter's secret.
func (s *Session) StartDuel(ctx context.Context, secret string) (game.Snapshot, error) {
	return s.apply(ctx, "start_duel", func(r *game.Round) error {
		return r.StartDuel(secret)
	})
}

// StartSolo starts (or restarts from result) a solo round.
func (s *Session) StartSolo(ctx context.Context) (game.Snapshot, error) {
	return s.apply(ctx, "start_solo", (*game.Round).StartSolo)
}

// Key forwards one key press: a letter, ENTER, or BACKSPACE (also "⌫").
func (s *Session) Key(ctx context.Context, key string) (game.Snapshot, error) {
	switch k := strings.ToUpper(strings.TrimSpace(key)); {
	case k == "ENTER":
		return s.apply(ctx, "submit", s.submit)
	case k == "BACKSPACE" || k == "⌫":
		return s.apply(ctx, "backspace", (*game.Round).Backspace)
	case len(k) == 1:
		return s.apply(ctx, "letter", func(r *game.Round) error {
			return r.TypeLetter(rune(k[0]))
		})
	default:
		return s.Snapshot(), game.ErrNotALetter
	}
}

// PlayAgain resets to setup, abandoning any reveal in flight.
func (s *Session) PlayAgain(ctx context.Context, swap bool) (game.Snapshot, error) {
	return s.apply(ctx, "play_again", func(r *game.Round) error {
		s.stopTimer()
		r.PlayAgain(swap)
		return nil
	})
}

// LastActive reports when the session last received an intent.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close stops any pending reveal and closes every subscriber channel.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopTimer()
	s.mu.Unlock()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

// Subscribe returns a channel of events and a cancel func. Events are
// dropped for a subscriber whose buffer is full.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
}

// ------------------------------- internals ---------------------------------

// apply runs fn against the round under the lock, then publishes.
func (s *Session) apply(ctx context.Context, op string, fn func(r *game.Round) error) (game.Snapshot, error) {
	_, span := s.tracer.Start(ctx, "session."+op)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.round)
	s.lastActive = s.now()
	snap := s.round.Snapshot()

	span.SetAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("round.phase", string(snap.Phase)),
		attribute.Int("round.attempts_left", snap.AttemptsLeft),
	)

	switch {
	case err == nil:
		s.publish(Event{Type: EventState, State: snap})
	case game.IsInvalidInput(err):
		span.SetAttributes(attribute.String("round.invalid", err.Error()))
		s.publish(Event{Type: EventInvalid, Reason: err.Error(), State: snap})
	default:
		span.SetStatus(codes.Error, err.Error())
	}
	return snap, err
}

// submit validates the row and starts the reveal. Runs under s.mu.
func (s *Session) submit(r *game.Round) error {
	tok, err := r.Submit()
	if err != nil {
		return err
	}
	if s.step <= 0 {
		return r.CompleteReveal(tok)
	}
	s.schedule(tok)
	return nil
}

// schedule arms the timer for the next reveal step. Runs under s.mu.
func (s *Session) schedule(tok game.RevealToken) {
	s.timer = time.AfterFunc(s.step, func() { s.advance(tok) })
}

// advance shows one more letter of the row identified by tok.
func (s *Session) advance(tok game.RevealToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	done, err := s.round.AdvanceReveal(tok)
	if errors.Is(err, game.ErrStaleReveal) {
		log.Debug().Str("session", s.ID).Uint64("generation", tok.Generation).Msg("dropping stale reveal step")
		return
	}
	if done {
		s.timer = nil
		if res := s.round.Result(); res != nil {
			log.Info().Str("session", s.ID).Str("outcome", string(res.Outcome)).Msg("round finished")
		}
	} else {
		s.schedule(tok)
	}
	s.publish(Event{Type: EventState, State: s.round.Snapshot()})
}

// stopTimer cancels a pending reveal step. Runs under s.mu.
func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// publish fans ev out without blocking. Runs under s.mu so subscribers see
// events in order.
func (s *Session) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			log.Warn().Str("session", s.ID).Str("event", string(ev.Type)).Msg("subscriber buffer full, dropping event")
		}
	}
}
