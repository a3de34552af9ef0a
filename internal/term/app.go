package term

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordduel/internal/game"
	"github.com/robalobadob/wordduel/internal/session"
)

// action is a key press translated for the client.
type action int

const (
	actNone action = iota
	actQuit
	actLetter
	actBackspace
	actEnter
	actSolo    // Tab
	actSwap    // F2
	actLonger  // Right
	actShorter // Left
)

type input struct {
	act action
	ch  rune // uppercase letter for actLetter
}

// translate maps a tcell key to an input. Lowercase letters are folded to
// uppercase; other runes are dropped.
func translate(k tcell.Key, r rune) input {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input{act: actQuit}
	case tcell.KeyEnter:
		return input{act: actEnter}
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return input{act: actBackspace}
	case tcell.KeyTab:
		return input{act: actSolo}
	case tcell.KeyF2:
		return input{act: actSwap}
	case tcell.KeyRight:
		return input{act: actLonger}
	case tcell.KeyLeft:
		return input{act: actShorter}
	case tcell.KeyRune:
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r >= 'A' && r <= 'Z' {
			return input{act: actLetter, ch: r}
		}
	}
	return input{act: actNone}
}

// App runs one session in the terminal.
type App struct {
	screen *Screen
	render *Renderer
	sess   *session.Session

	secret  []rune // setter's secret, typed masked on the setup screen
	msg     string
	running bool
}

// NewApp ties a screen to a session.
func NewApp(screen *Screen, sess *session.Session) *App {
	return &App{screen: screen, render: NewRenderer(screen), sess: sess}
}

// Run draws and handles input until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	events, cancel := a.sess.Subscribe()
	defer cancel()

	// Session events (reveal steps in particular) arrive off the UI
	// goroutine; wake PollEvent so the next frame picks them up.
	go func() {
		for ev := range events {
			if err := a.screen.Post(ev); err != nil {
				log.Debug().Err(err).Msg("post session event")
			}
		}
	}()
	go func() {
		<-ctx.Done()
		_ = a.screen.Post(ctx.Err())
	}()

	a.running = true
	for a.running {
		a.render.Render(a.view())

		switch ev := a.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			a.handle(ctx, translate(ev.Key(), ev.Rune()))
		case *tcell.EventInterrupt:
			switch data := ev.Data().(type) {
			case session.Event:
				if data.Type == session.EventInvalid {
					a.msg = data.Reason
				}
			case error:
				return nil
			}
		case *tcell.EventResize:
			a.screen.Sync()
		}
	}
	return nil
}

func (a *App) view() View {
	return View{State: a.sess.Snapshot(), SecretLen: len(a.secret), Message: a.msg}
}

// handle applies one input in the current phase.
func (a *App) handle(ctx context.Context, in input) {
	if in.act == actQuit {
		a.running = false
		return
	}
	if in.act == actNone {
		return
	}
	a.msg = ""

	st := a.sess.Snapshot()
	var err error
	switch st.Phase {
	case game.PhaseSetup:
		err = a.handleSetup(ctx, st, in)
	case game.PhasePlay:
		switch in.act {
		case actLetter:
			_, err = a.sess.Key(ctx, string(in.ch))
		case actBackspace:
			_, err = a.sess.Key(ctx, "BACKSPACE")
		case actEnter:
			_, err = a.sess.Key(ctx, "ENTER")
		}
	case game.PhaseResult:
		if in.act != actLetter {
			return
		}
		switch in.ch {
		case 'P':
			_, err = a.sess.PlayAgain(ctx, false)
		case 'S':
			_, err = a.sess.PlayAgain(ctx, true)
		case 'O':
			_, err = a.sess.StartSolo(ctx)
		}
	}
	if err != nil {
		a.msg = err.Error()
	}
}

func (a *App) handleSetup(ctx context.Context, st game.Snapshot, in input) error {
	var err error
	switch in.act {
	case actLetter:
		if len(a.secret) < st.Length {
			a.secret = append(a.secret, in.ch)
		}
	case actBackspace:
		if len(a.secret) > 0 {
			a.secret = a.secret[:len(a.secret)-1]
		}
	case actEnter:
		if _, err = a.sess.StartDuel(ctx, string(a.secret)); err == nil {
			a.secret = a.secret[:0]
		}
	case actSolo:
		if _, err = a.sess.StartSolo(ctx); err == nil {
			a.secret = a.secret[:0]
		}
	case actSwap:
		_, err = a.sess.SwapRoles(ctx)
		a.secret = a.secret[:0]
	case actLonger, actShorter:
		n := st.Length + 1
		if in.act == actShorter {
			n = st.Length - 1
		}
		if n < game.MinLength || n > game.MaxLength {
			return nil
		}
		if _, err = a.sess.Configure(ctx, st.PlayerA, st.PlayerB, n); err == nil && len(a.secret) > n {
			a.secret = a.secret[:n]
		}
	}
	return err
}
