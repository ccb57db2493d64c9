package osk

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/keys"
)

// Source identifies who holds a binding. Each source has one slot.
type Source int

const (
	SourceBlue Source = iota
	SourceRed
	// SourcePointer is a physical pointing device clicking keys directly.
	SourcePointer
)

func (s Source) String() string {
	switch s {
	case SourceBlue:
		return "blue"
	case SourceRed:
		return "red"
	case SourcePointer:
		return "pointer"
	}
	return "unknown"
}

// KeyInjector emits key edges to the host.
type KeyInjector interface {
	Key(tok keys.Token, pressed bool) error
}

// Binding links a pressed token to the source and cell that pressed it.
type Binding struct {
	Source Source
	Token  keys.Token
	Origin keyboard.Point
}

// Tracker presses and releases key tokens on behalf of sources. A token held
// by several sources is injected down once and up once.
type Tracker struct {
	layout   *keyboard.Layout
	inj      KeyInjector
	logger   *zap.SugaredLogger
	bindings map[Source]Binding
	held     map[keys.Token]int
	pressed  map[keyboard.Point]int
	onPress  func(keys.Token)
}

// NewTracker returns a Tracker injecting through inj.
func NewTracker(layout *keyboard.Layout, inj KeyInjector, logger *zap.SugaredLogger) *Tracker {
	return &Tracker{
		layout:   layout,
		inj:      inj,
		logger:   logger,
		bindings: make(map[Source]Binding),
		held:     make(map[keys.Token]int),
		pressed:  make(map[keyboard.Point]int),
	}
}

// OnPress registers fn to run after every injected key press.
func (t *Tracker) OnPress(fn func(keys.Token)) {
	t.onPress = fn
}

// Activate presses the key under p for src. It returns ok=false when src
// already holds a binding or p has no key. A failed press records nothing.
func (t *Tracker) Activate(src Source, p keyboard.Point) (Binding, bool, error) {
	if _, busy := t.bindings[src]; busy {
		return Binding{}, false, nil
	}
	cell, ok := t.layout.Lookup(p)
	if !ok || !cell.HasToken() {
		return Binding{}, false, nil
	}
	b := Binding{Source: src, Token: cell.Token, Origin: cell.Origin()}
	if t.held[b.Token] == 0 {
		if err := t.inj.Key(b.Token, true); err != nil {
			return Binding{}, false, errors.Wrapf(err, "press %s", b.Token)
		}
		if t.onPress != nil {
			t.onPress(b.Token)
		}
	}
	t.held[b.Token]++
	t.pressed[b.Origin]++
	t.bindings[src] = b
	t.logger.Debugw("key down", "source", src, "key", b.Token, "cell", b.Origin)
	return b, true, nil
}

// Deactivate releases the binding held by src, if any. The binding is
// dropped even when the release fails, so it is never released twice.
func (t *Tracker) Deactivate(src Source) (Binding, bool, error) {
	b, ok := t.bindings[src]
	if !ok {
		return Binding{}, false, nil
	}
	delete(t.bindings, src)

	if t.pressed[b.Origin]--; t.pressed[b.Origin] <= 0 {
		delete(t.pressed, b.Origin)
	}
	t.held[b.Token]--
	if t.held[b.Token] > 0 {
		return b, true, nil
	}
	delete(t.held, b.Token)
	t.logger.Debugw("key up", "source", src, "key", b.Token, "cell", b.Origin)
	if err := t.inj.Key(b.Token, false); err != nil {
		return b, true, errors.Wrapf(err, "release %s", b.Token)
	}
	return b, true, nil
}

// ReleaseAll deactivates every source.
func (t *Tracker) ReleaseAll() error {
	var err error
	for _, src := range []Source{SourceBlue, SourceRed, SourcePointer} {
		_, _, e := t.Deactivate(src)
		err = multierr.Append(err, e)
	}
	return err
}

// Binding returns the binding held by src.
func (t *Tracker) Binding(src Source) (Binding, bool) {
	b, ok := t.bindings[src]
	return b, ok
}

// IsPressed reports whether the key under p is held by any source.
func (t *Tracker) IsPressed(p keyboard.Point) bool {
	cell, ok := t.layout.Lookup(p)
	return ok && t.pressed[cell.Origin()] > 0
}

// Pressed returns the origins of every held key cell in row-major order.
func (t *Tracker) Pressed() []keyboard.Point {
	out := make([]keyboard.Point, 0, len(t.pressed))
	for p := range t.pressed {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
