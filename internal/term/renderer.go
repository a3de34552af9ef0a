package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/wordduel/internal/game"
)

// canvas is the drawing surface. *Screen satisfies it.
type canvas interface {
	Clear()
	Show()
	SetContent(x, y int, r rune, style tcell.Style)
	Size() (width, height int)
}

// View is what the renderer draws: the session state plus client-only bits.
type View struct {
	State game.Snapshot
	// SecretLen is how many secret letters the setter has typed. The letters
	// themselves never reach the renderer.
	SecretLen int
	Message   string
}

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

const (
	left    = 2
	cellW   = 4 // " X " plus a gap
	boardY  = 4
	helpGap = 1
)

var (
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	errStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// verdictStyle colors a board cell or keyboard key.
func verdictStyle(v game.Verdict) tcell.Style {
	switch v {
	case game.VerdictCorrect:
		return tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack).Bold(true)
	case game.VerdictPresent:
		return tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack).Bold(true)
	case game.VerdictAbsent:
		return tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	default:
		return tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	}
}

// Renderer draws a View.
type Renderer struct {
	c canvas
}

// NewRenderer creates a renderer for the given canvas.
func NewRenderer(c canvas) *Renderer {
	return &Renderer{c: c}
}

// Render draws one frame.
func (r *Renderer) Render(v View) {
	r.c.Clear()
	st := v.State

	r.text(left, 0, "WORD DUEL", titleStyle)
	r.text(left+11, 0, strings.ToUpper(string(st.Mode)), dimStyle)

	var y int
	switch st.Phase {
	case game.PhaseSetup:
		y = r.setup(v)
	case game.PhasePlay:
		r.text(left, 2, fmt.Sprintf("%s is guessing   attempts left: %d", st.Guesser, st.AttemptsLeft), textStyle)
		y = r.board(st)
		y = r.keyboard(st, y+1)
		r.text(left, y+helpGap, "type letters · Enter submit · Backspace delete · Esc quit", dimStyle)
	case game.PhaseResult:
		if res := st.Result; res != nil {
			r.text(left, 2, res.Reason, titleStyle)
			r.text(left, 3, "The word was "+res.Secret, textStyle)
		}
		y = r.board(st)
		r.text(left, y+helpGap, "p play again · s swap roles and play again · o solo again · Esc quit", dimStyle)
	}

	if v.Message != "" {
		_, h := r.c.Size()
		r.text(left, h-1, v.Message, errStyle)
	}
	r.c.Show()
}

// setup draws the setup screen and returns the next free line.
func (r *Renderer) setup(v View) int {
	st := v.State
	r.text(left, 2, fmt.Sprintf("Setter: %s   Guesser: %s", st.Setter, st.Guesser), textStyle)
	r.text(left, 3, "Length: < "+strconv.Itoa(st.Length)+" >", textStyle)

	mask := strings.Repeat("*", v.SecretLen) + strings.Repeat("_", max(st.Length-v.SecretLen, 0))
	r.text(left, 5, st.Setter+", type the secret: "+mask, textStyle)
	r.text(left, 7, "Enter start duel · Tab solo · F2 swap roles · Left/Right length · Esc quit", dimStyle)
	return 8
}

// board draws all rows and returns the line below the board.
func (r *Renderer) board(st game.Snapshot) int {
	for i, row := range st.Rows {
		y := boardY + i
		for j, l := range row.Letters {
			style := verdictStyle("")
			if j < len(row.Verdicts) {
				style = verdictStyle(row.Verdicts[j])
			}
			ch := ' '
			if l != "" {
				ch = rune(l[0])
			}
			x := left + j*cellW
			r.c.SetContent(x, y, ' ', style)
			r.c.SetContent(x+1, y, ch, style)
			r.c.SetContent(x+2, y, ' ', style)
		}
	}
	return boardY + len(st.Rows)
}

// keyboard draws the letter states and returns the line below it.
func (r *Renderer) keyboard(st game.Snapshot, y int) int {
	for i, keys := range keyboardRows {
		x := left + i
		for _, k := range keys {
			r.c.SetContent(x, y+i, k, verdictStyle(st.Keys[string(k)]))
			x += 2
		}
	}
	return y + len(keyboardRows)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.c.SetContent(x, y, ch, style)
		x++
	}
}
