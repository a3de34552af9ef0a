package httpserver

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordduel/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 1024
)

// handleWS streams session events to the client and accepts intents in the
// same JSON shape as the REST routes. The first message is always the
// current state.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		log.Warn().Err(err).Str("session", sess.ID).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	events, cancel := sess.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go s.readIntents(r.Context(), conn, sess, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := writeEvent(conn, session.Event{Type: session.EventState, State: sess.Snapshot()}); err != nil {
		return
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"), time.Now().Add(writeWait))
				return
			}
			if err := writeEvent(conn, ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readIntents applies client intents until the connection drops. Refused
// intents are only logged; invalid input reaches the client as an event.
func (s *Server) readIntents(ctx context.Context, conn *websocket.Conn, sess *session.Session, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var in intent
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("session", sess.ID).Msg("websocket read")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		if _, err := dispatch(ctx, sess, in); err != nil {
			log.Debug().Err(err).Str("session", sess.ID).Str("intent", in.Type).Msg("intent refused")
		}
	}
}

func writeEvent(conn *websocket.Conn, ev session.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(ev)
}

// checkOrigin accepts same-host requests, non-browser clients, and the
// configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.opts.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}
