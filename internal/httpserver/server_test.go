package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/robalobadob/wordduel/internal/game"
	"github.com/robalobadob/wordduel/internal/session"
	"github.com/robalobadob/wordduel/internal/store"
	"github.com/robalobadob/wordduel/internal/words"
)

type firstPicker struct{}

func (firstPicker) Pick(list []string) (string, error) { return list[0], nil }

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	dict := words.New([]string{"APPLE", "CRANE", "PAPER", "SLATE", "TREE", "WORD"})
	srv := New(store.NewMemoryStore(), dict, firstPicker{}, Options{
		ClientOrigin:  "http://localhost:5173",
		SessionSecret: "test-secret",
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func createSession(t *testing.T, ts *httptest.Server) createSessionRes {
	t.Helper()
	res, err := http.Post(ts.URL+"/sessions", "application/json", strings.NewReader(`{"playerA":"Ana","playerB":"Ben"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("POST /sessions status = %d", res.StatusCode)
	}
	var out createSessionRes
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

// post sends body to a session route with the bearer token and decodes the
// response into out (if non-nil).
func post(t *testing.T, ts *httptest.Server, token, path, body string, out any) int {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if out != nil {
		_ = json.NewDecoder(res.Body).Decode(out)
	}
	return res.StatusCode
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("GET /health status = %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestDebugWords(t *testing.T) {
	_, ts := newTestServer(t)
	res, err := http.Get(ts.URL + "/debug/words")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	var body struct {
		Total    int            `json:"total"`
		ByLength map[string]int `json:"byLength"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Total != 6 || body.ByLength["5"] != 4 || body.ByLength["4"] != 2 {
		t.Errorf("/debug/words = %+v", body)
	}
}

func TestCreateSession(t *testing.T) {
	_, ts := newTestServer(t)
	res, err := http.Post(ts.URL+"/sessions", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", res.StatusCode)
	}
	var found bool
	for _, c := range res.Cookies() {
		if c.Name == sessionCookieName && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Error("session cookie not set")
	}
	var out createSessionRes
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.SessionID == "" || out.Token == "" {
		t.Fatalf("response = %+v", out)
	}
	if out.State.Phase != game.PhaseSetup || out.State.PlayerA != game.DefaultPlayerA || out.State.Length != game.DefaultLength {
		t.Errorf("initial state = %+v", out.State)
	}

	if code := post(t, ts, "", "/sessions", `{"length":9}`, nil); code != http.StatusBadRequest {
		t.Errorf("create with length 9 status = %d, want 400", code)
	}
}

func TestDuelOverREST(t *testing.T) {
	_, ts := newTestServer(t)
	cs := createSession(t, ts)
	base := "/sessions/" + cs.SessionID

	var snap game.Snapshot
	if code := post(t, ts, cs.Token, base+"/duel", `{"secret":"apple"}`, &snap); code != http.StatusOK {
		t.Fatalf("duel status = %d", code)
	}
	if snap.Phase != game.PhasePlay || snap.Setter != "Ana" || snap.Guesser != "Ben" {
		t.Fatalf("after duel state = %+v", snap)
	}

	for _, k := range []string{"C", "R", "A", "N", "E", "ENTER", "A", "P", "P", "L", "E", "ENTER"} {
		if code := post(t, ts, cs.Token, base+"/key", `{"key":"`+k+`"}`, &snap); code != http.StatusOK {
			t.Fatalf("key %s status = %d", k, code)
		}
	}
	if snap.Phase != game.PhaseResult || snap.Result == nil {
		t.Fatalf("final state = %+v", snap)
	}
	if snap.Result.Outcome != game.OutcomeGuesserWins || snap.Result.Winner != "Ben" || snap.Result.Secret != "APPLE" {
		t.Errorf("result = %+v", snap.Result)
	}

	if code := post(t, ts, cs.Token, base+"/again", `{"swap":true}`, &snap); code != http.StatusOK {
		t.Fatalf("again status = %d", code)
	}
	if snap.Phase != game.PhaseSetup || snap.Setter != "Ben" {
		t.Errorf("after play again with swap state = %+v", snap)
	}
}

func TestSessionErrors(t *testing.T) {
	srv, ts := newTestServer(t)
	cs := createSession(t, ts)
	base := "/sessions/" + cs.SessionID

	tests := []struct {
		name  string
		token string
		path  string
		body  string
		code  int
		error string
	}{
		{"missing token", "", base + "/solo", ``, http.StatusUnauthorized, "unauthorized"},
		{"garbage token", "nope", base + "/solo", ``, http.StatusUnauthorized, "invalid_token"},
		{"secret not a word", cs.Token, base + "/duel", `{"secret":"ZZZZZ"}`, http.StatusUnprocessableEntity, "invalid_input"},
		{"secret wrong length", cs.Token, base + "/duel", `{"secret":"TREE"}`, http.StatusUnprocessableEntity, "invalid_input"},
		{"key in setup", cs.Token, base + "/key", `{"key":"A"}`, http.StatusConflict, "conflict"},
		{"bad length", cs.Token, base + "/setup", `{"length":7}`, http.StatusBadRequest, "bad_request"},
		{"bad json", cs.Token, base + "/duel", `{`, http.StatusBadRequest, "bad_json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorRes
			if code := post(t, ts, tt.token, tt.path, tt.body, &body); code != tt.code {
				t.Errorf("status = %d, want %d", code, tt.code)
			}
			if body.Error != tt.error {
				t.Errorf("error = %q, want %q", body.Error, tt.error)
			}
		})
	}

	// A valid token for a session that was never stored.
	ghost, _, err := srv.signSessionToken("ghost")
	if err != nil {
		t.Fatal(err)
	}
	if code := post(t, ts, ghost, "/sessions/ghost/solo", ``, nil); code != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", code)
	}
	// A valid token used against another session.
	if code := post(t, ts, ghost, base+"/solo", ``, nil); code != http.StatusUnauthorized {
		t.Errorf("foreign token status = %d, want 401", code)
	}
}

func TestCookieAuth(t *testing.T) {
	_, ts := newTestServer(t)
	cs := createSession(t, ts)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/sessions/"+cs.SessionID, nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cs.Token})
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("GET with cookie status = %d", res.StatusCode)
	}
}

func TestWebSocketStream(t *testing.T) {
	_, ts := newTestServer(t)
	cs := createSession(t, ts)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/" + cs.SessionID + "/ws?token=" + cs.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	read := func() session.Event {
		t.Helper()
		var ev session.Event
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read: %v", err)
		}
		return ev
	}

	if ev := read(); ev.Type != session.EventState || ev.State.Phase != game.PhaseSetup {
		t.Fatalf("first event = %+v", ev)
	}

	send := func(in intent) {
		t.Helper()
		if err := conn.WriteJSON(in); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	send(intent{Type: intentDuel, Secret: "QQQQQ"})
	if ev := read(); ev.Type != session.EventInvalid || ev.Reason == "" {
		t.Errorf("invalid secret event = %+v", ev)
	}

	send(intent{Type: intentDuel, Secret: "CRANE"})
	if ev := read(); ev.State.Phase != game.PhasePlay {
		t.Errorf("duel event = %+v", ev)
	}

	var ev session.Event
	for _, k := range []string{"S", "L", "A", "T", "E", "ENTER"} {
		send(intent{Type: intentKey, Key: k})
		ev = read()
	}
	if ev.State.RowIndex != 1 || ev.State.AttemptsLeft != game.Attempts-1 {
		t.Errorf("after submit state = %+v", ev.State)
	}
	if ev.State.Keys["A"] != game.VerdictCorrect || ev.State.Keys["S"] != game.VerdictAbsent {
		t.Errorf("keyboard = %v", ev.State.Keys)
	}
}

func TestWebSocketNeedsToken(t *testing.T) {
	_, ts := newTestServer(t)
	cs := createSession(t, ts)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/" + cs.SessionID + "/ws"
	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial without token succeeded")
	}
	if res == nil || res.StatusCode != http.StatusUnauthorized {
		t.Errorf("response = %v, want 401", res)
	}
}
