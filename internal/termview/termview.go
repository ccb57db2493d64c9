// Package termview draws the on-screen keyboard in the terminal.
package termview

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/osk"
)

// unit is the width of one grid column in terminal cells.
const unit = 5

var (
	styleKey    = tcell.StyleDefault
	styleClosed = tcell.StyleDefault.Dim(true)
	styleBlue   = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleRed    = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	styleBoth   = tcell.StyleDefault.Background(tcell.ColorPurple).Foreground(tcell.ColorWhite)
)

// View renders snapshots on a tcell screen.
type View struct {
	screen tcell.Screen
	layout *keyboard.Layout
	snaps  chan osk.Snapshot
	quit   func()
	logger *zap.SugaredLogger
	last   osk.Snapshot
}

// Open initializes the terminal screen. quit runs on Ctrl+C or Esc.
func Open(layout *keyboard.Layout, quit func(), logger *zap.SugaredLogger) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init terminal")
	}
	return New(screen, layout, quit, logger), nil
}

// New wraps an initialized screen.
func New(screen tcell.Screen, layout *keyboard.Layout, quit func(), logger *zap.SugaredLogger) *View {
	return &View{
		screen: screen,
		layout: layout,
		snaps:  make(chan osk.Snapshot, 1),
		quit:   quit,
		logger: logger,
	}
}

// Publish hands snap to the view without blocking; an undrawn older
// snapshot is replaced.
func (v *View) Publish(snap osk.Snapshot) {
	for {
		select {
		case v.snaps <- snap:
			return
		default:
		}
		select {
		case <-v.snaps:
		default:
		}
	}
}

// Run draws until ctx is done, then restores the terminal.
func (v *View) Run(ctx context.Context) {
	defer v.screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	v.Draw(v.last)
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-v.snaps:
			v.Draw(snap)
		case ev := <-events:
			v.handle(ev)
		}
	}
}

func (v *View) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
			v.logger.Info("quit requested from terminal")
			v.quit()
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.Draw(v.last)
	}
}

// Draw renders snap immediately.
func (v *View) Draw(snap osk.Snapshot) {
	v.last = snap
	v.screen.Clear()

	cursors := map[keyboard.Point]string{}
	for _, c := range snap.Cursors {
		if !snap.Open || !c.Active {
			continue
		}
		if _, both := cursors[c.Key]; both {
			cursors[c.Key] = "both"
		} else {
			cursors[c.Key] = c.Name
		}
	}

	for _, cell := range v.layout.Cells() {
		style := styleKey
		switch {
		case !snap.Open:
			style = styleClosed
		case cursors[cell.Origin()] == "both":
			style = styleBoth
		case cursors[cell.Origin()] == "blue":
			style = styleBlue
		case cursors[cell.Origin()] == "red":
			style = styleRed
		}
		if snap.IsPressed(cell.Origin()) {
			style = style.Reverse(true)
		}
		width := cell.Span*unit - 1
		v.text(cell.X*unit, cell.Y, fitLabel(cell.Label, width), style)
	}

	_, rows := v.layout.Size()
	var axes strings.Builder
	for i, a := range snap.Axes {
		fmt.Fprintf(&axes, "A%d:%6d ", i, a)
	}
	v.text(0, rows+1, axes.String(), tcell.StyleDefault)
	v.text(0, rows+2, "Esc or Ctrl+C to quit", styleClosed)
	v.screen.Show()
}

func (v *View) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// fitLabel centers a one-line form of label in width cells.
func fitLabel(label string, width int) string {
	r := []rune(strings.ReplaceAll(label, "\n", ""))
	if len(r) > width {
		r = r[:width]
	}
	pad := width - len(r)
	return strings.Repeat(" ", pad/2) + string(r) + strings.Repeat(" ", pad-pad/2)
}
