// Package console runs the simulation in a terminal with tcell.
package console

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"mad-life/internal/app"
)

// FrameInterval is how often the loop polls the pacer and redraws.
const FrameInterval = 8 * time.Millisecond

// UI owns the terminal screen for one session.
type UI struct {
	screen tcell.Screen
	ctl    *app.Controller
}

// New binds an initialized screen to ctl.
func New(screen tcell.Screen, ctl *app.Controller) *UI {
	return &UI{screen: screen, ctl: ctl}
}

// Run processes input and steps the simulation until the user quits or ctx
// is cancelled.
func (u *UI) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go u.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	u.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !u.handleEvent(ev) {
				return nil
			}
			u.draw()
		case now := <-ticker.C:
			if _, stepped := u.ctl.Tick(now); stepped {
				u.draw()
			}
		}
	}
}

func (u *UI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, ok := commandFor(ev.Key(), ev.Rune())
		if !ok {
			return true
		}
		return u.ctl.Do(cmd)
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

// commandFor maps a key event to a command. Escape and Ctrl-C quit.
func commandFor(key tcell.Key, r rune) (app.Command, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return app.Command{Action: app.ActionQuit}, true
	case tcell.KeyRune:
		return app.CommandForRune(r)
	}
	return app.Command{}, false
}

func (u *UI) draw() {
	u.screen.Clear()
	width, height := u.screen.Size()
	svc := u.ctl.Service()
	used := DrawGrid(u.screen, svc.Grid(), width, height-3)
	DrawText(u.screen, 0, used, width, StatusLine(svc), styleText)
	DrawText(u.screen, 0, used+1, width, u.ctl.Status(), styleText)
	DrawText(u.screen, 0, used+2, width, helpLine, styleHelp)
	u.screen.Show()
}
