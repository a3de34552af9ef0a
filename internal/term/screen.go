// Package term is a terminal client for one local session, drawn with tcell.
package term

import "github.com/gdamore/tcell/v2"

// Screen wraps tcell.Screen with the few calls the client needs.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for the next event. It returns nil once the screen is closed.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Post wakes PollEvent with data wrapped in an interrupt event.
func (s *Screen) Post(data any) error {
	return s.screen.PostEvent(tcell.NewEventInterrupt(data))
}

func (s *Screen) Clear() { s.screen.Clear() }

func (s *Screen) Show() { s.screen.Show() }

func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw.
func (s *Screen) Sync() {
	s.screen.Sync()
}
