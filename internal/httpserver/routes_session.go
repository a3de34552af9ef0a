// internal/httpserver/routes_session.go
//
// HTTP routes for one game session.
//   - POST /sessions              → create a session, returns its token
//   - GET  /sessions/{id}         → current state
//   - POST /sessions/{id}/setup   → player names + word length
//   - POST /sessions/{id}/swap    → swap setter and guesser
//   - POST /sessions/{id}/duel    → start a duel with the setter's secret
//   - POST /sessions/{id}/solo    → start (or replay) a solo round
//   - POST /sessions/{id}/key     → one key: letter, ENTER or BACKSPACE
//   - POST /sessions/{id}/again   → back to setup, optionally swapping roles
//   - GET  /sessions/{id}/ws      → state stream (see ws.go)
//
// Every route under /sessions/{id} needs the session's token. The same
// intent payload drives both the REST routes and the WebSocket.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordduel/internal/game"
	"github.com/robalobadob/wordduel/internal/session"
)

// Intent kinds accepted by dispatch.
const (
	intentSetup = "setup"
	intentSwap  = "swap"
	intentDuel  = "duel"
	intentSolo  = "solo"
	intentKey   = "key"
	intentAgain = "again"
)

var errUnknownIntent = errors.New("unknown intent")

// intent is the request body for session routes and the WebSocket message
// format. Only the fields relevant to Type are read.
type intent struct {
	Type    string `json:"type"`
	PlayerA string `json:"playerA,omitempty"`
	PlayerB string `json:"playerB,omitempty"`
	Length  int    `json:"length,omitempty"`
	Secret  string `json:"secret,omitempty"`
	Key     string `json:"key,omitempty"`
	Swap    bool   `json:"swap,omitempty"`
}

// createSessionReq is the optional body for POST /sessions.
type createSessionReq struct {
	PlayerA string `json:"playerA"`
	PlayerB string `json:"playerB"`
	Length  int    `json:"length"`
}
type createSessionRes struct {
	SessionID string        `json:"sessionId"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	State     game.Snapshot `json:"state"`
}

// errorRes is returned when an intent is refused.
type errorRes struct {
	Error  string         `json:"error"`
	Reason string         `json:"reason,omitempty"`
	State  *game.Snapshot `json:"state,omitempty"`
}

// mountSessions registers all /sessions/{id} routes.
func (s *Server) mountSessions() {
	s.r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(s.requireSession())

		// no request timeout on the stream
		r.Get("/ws", s.handleWS)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(requestTimeout))
			r.Use(jsonContentType)
			r.Use(accessLog)

			r.Get("/", s.handleState)
			r.Post("/setup", s.handleIntent(intentSetup))
			r.Post("/swap", s.handleIntent(intentSwap))
			r.Post("/duel", s.handleIntent(intentDuel))
			r.Post("/solo", s.handleIntent(intentSolo))
			r.Post("/key", s.handleIntent(intentKey))
			r.Post("/again", s.handleIntent(intentAgain))
		})
	})
}

// handleCreateSession starts a session in setup and hands back its token
// (also set as a cookie).
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Length != 0 && (req.Length < game.MinLength || req.Length > game.MaxLength) {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_request", Reason: game.ErrUnsupportedLength.Error()})
		return
	}
	round := game.NewRound(s.dict, s.picker, game.WithPlayers(req.PlayerA, req.PlayerB), game.WithLength(req.Length))

	sess := session.New(uuid.NewString(), round, session.Options{RevealStep: s.opts.RevealStep})
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "save_failed"})
		return
	}

	token, exp, err := s.signSessionToken(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "token_failed"})
		return
	}
	s.setSessionCookie(w, token, exp)

	log.Info().Str("session", sess.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, createSessionRes{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: exp,
		State:     sess.Snapshot(),
	})
}

// handleState returns the current snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(sessionFrom(r.Context()).Snapshot())
}

// handleIntent decodes an intent body, forces its type to kind, and applies it.
func (s *Server) handleIntent(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in intent
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil && kind != intentSwap && kind != intentSolo && kind != intentAgain {
			writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})
			return
		}
		in.Type = kind

		snap, err := dispatch(r.Context(), sessionFrom(r.Context()), in)
		if err != nil {
			status, code := statusFor(err)
			writeJSON(w, status, errorRes{Error: code, Reason: err.Error(), State: &snap})
			return
		}
		_ = json.NewEncoder(w).Encode(snap)
	}
}

// dispatch maps an intent onto the session.
func dispatch(ctx context.Context, sess *session.Session, in intent) (game.Snapshot, error) {
	switch in.Type {
	case intentSetup:
		return sess.Configure(ctx, in.PlayerA, in.PlayerB, in.Length)
	case intentSwap:
		return sess.SwapRoles(ctx)
	case intentDuel:
		return sess.StartDuel(ctx, in.Secret)
	case intentSolo:
		return sess.StartSolo(ctx)
	case intentKey:
		return sess.Key(ctx, in.Key)
	case intentAgain:
		return sess.PlayAgain(ctx, in.Swap)
	default:
		return sess.Snapshot(), fmt.Errorf("%w: %q", errUnknownIntent, in.Type)
	}
}

// statusFor maps round errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case game.IsInvalidInput(err):
		return http.StatusUnprocessableEntity, "invalid_input"
	case errors.Is(err, game.ErrWrongPhase), errors.Is(err, game.ErrRevealInProgress):
		return http.StatusConflict, "conflict"
	case errors.Is(err, game.ErrNotALetter), errors.Is(err, game.ErrUnsupportedLength), errors.Is(err, errUnknownIntent):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
