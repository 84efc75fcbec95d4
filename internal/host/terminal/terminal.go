// Package terminal runs a workspace in a tcell terminal screen.
//
// The UI owns the UI goroutine: every dispatcher, workspace and input
// handler call happens inside Run. Other goroutines hand work to it with
// Post, which queues a tcell interrupt event.
package terminal

import (
	"context"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/host"
	"github.com/j0lol/hxzed/internal/input"
	"github.com/j0lol/hxzed/internal/input/mode"
	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// UI draws the focused editor and feeds keys through the input handler.
type UI struct {
	screen tcell.Screen
	ws     *host.Workspace
	d      *dispatcher.Dispatcher
	input  *input.Handler
	logger *slog.Logger

	view    view
	focused dispatcher.SurfaceID
	message string
	isError bool
	quit    bool
}

// Option configures a UI.
type Option func(*UI)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *UI) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// New creates a UI on screen. The screen is initialized by Init.
func New(screen tcell.Screen, ws *host.Workspace, d *dispatcher.Dispatcher, in *input.Handler, opts ...Option) *UI {
	u := &UI{
		screen: screen,
		ws:     ws,
		d:      d,
		input:  in,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.logger = u.logger.With("component", "terminal")
	return u
}

// Init initializes the screen and lays editors out to its width.
func (u *UI) Init() error {
	if err := u.screen.Init(); err != nil {
		return err
	}
	u.screen.EnablePaste()
	w, _ := u.screen.Size()
	u.resize(w)
	return nil
}

// Fini restores the terminal.
func (u *UI) Fini() {
	u.screen.Fini()
}

// Post queues fn to run on the UI goroutine. Safe for concurrent use.
func (u *UI) Post(fn func()) error {
	return u.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// Quit stops Run after the current event.
func (u *UI) Quit() {
	u.quit = true
}

// SetMessage shows msg on the status line until the next keystroke.
func (u *UI) SetMessage(msg string, isError bool) {
	u.message, u.isError = msg, isError
}

// Run processes screen events until Quit is called or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = u.Post(u.Quit)
	})
	defer stop()

	u.Draw()
	for !u.quit {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		u.HandleEvent(ev)
		u.Draw()
	}
	return nil
}

// HandleEvent processes one screen event.
func (u *UI) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		ks, ok := ConvertKey(ev)
		if !ok {
			return
		}
		u.message, u.isError = "", false
		out := u.input.HandleKeystroke(ks)
		switch {
		case out.Result.IsError():
			u.SetMessage(out.Result.Error.Error(), true)
		case out.Result.Message != "":
			u.SetMessage(out.Result.Message, false)
		}

	case *tcell.EventResize:
		w, _ := ev.Size()
		u.resize(w)
		u.screen.Sync()

	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	}
}

func (u *UI) resize(width int) {
	opts := layout.DefaultOptions()
	opts.WrapWidth = width
	u.ws.SetLayoutOptions(opts)
}

// Draw renders the focused editor and the status line.
func (u *UI) Draw() {
	width, height := u.screen.Size()
	if height < 1 {
		return
	}
	textHeight := height - 1

	e := u.ws.Focused()
	if e == nil {
		for y := 0; y < textHeight; y++ {
			clearRow(u.screen, y, width)
		}
		u.screen.HideCursor()
		u.drawStatus(width, height-1, Status{Name: "no editor", Message: u.message, Error: u.isError})
		u.screen.Show()
		return
	}

	if e.ID() != u.focused {
		u.focused = e.ID()
		u.view = view{}
	}

	cx, cy := u.view.draw(u.screen, e, width, textHeight)
	u.screen.ShowCursor(cx, cy)
	u.screen.SetCursorStyle(cursorStyle(e.CursorShape()))

	u.drawStatus(width, height-1, u.status(e))
	u.screen.Show()
}

func (u *UI) status(e *host.Editor) Status {
	st := Status{
		Name:    e.Name(),
		Dirty:   e.Dirty(),
		Cursors: len(e.Selections()),
		Pending: u.input.PendingKeys(),
		Message: u.message,
		Error:   u.isError,
	}
	head := e.Primary().Head
	st.Line, st.Column = head.Line+1, head.Col+1
	if u.d.Enabled() {
		st.Mode = u.d.StateFor(e.ID()).Mode.DisplayName()
		if n, ok := u.d.Count(); ok {
			st.Count = n
		}
	}
	return st
}

func (u *UI) drawStatus(width, y int, st Status) {
	style := styleStatus
	if st.Error {
		style = styleError
	}
	drawString(u.screen, y, st.Render(width), style)
}

func cursorStyle(shape mode.CursorShape) tcell.CursorStyle {
	switch shape {
	case mode.CursorBlock:
		return tcell.CursorStyleSteadyBlock
	case mode.CursorUnderline:
		return tcell.CursorStyleSteadyUnderline
	default:
		return tcell.CursorStyleSteadyBar
	}
}
