package inject

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/keys"
)

// ActionKind tells Recorder actions apart.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionScroll
	ActionButton
	ActionKey
	ActionRemember
	ActionRestore
)

// Action is one call recorded by a Recorder.
type Action struct {
	Kind    ActionKind
	X, Y    int
	Button  MouseButton
	Token   keys.Token
	Pressed bool
}

func (a Action) String() string {
	switch a.Kind {
	case ActionMove:
		return fmt.Sprintf("move %d,%d", a.X, a.Y)
	case ActionScroll:
		return fmt.Sprintf("scroll %d,%d", a.X, a.Y)
	case ActionButton:
		return fmt.Sprintf("%s %s", a.Button, edge(a.Pressed))
	case ActionKey:
		return fmt.Sprintf("key %s %s", a.Token, edge(a.Pressed))
	case ActionRemember:
		return "remember focus"
	case ActionRestore:
		return "restore focus"
	}
	return "unknown"
}

func edge(pressed bool) string {
	if pressed {
		return "down"
	}
	return "up"
}

// Recorder logs every call instead of touching the host. It backs the
// dry-run mode.
type Recorder struct {
	mu      sync.Mutex
	actions []Action
	logger  *zap.SugaredLogger
	closed  bool
}

func NewRecorder(logger *zap.SugaredLogger) *Recorder {
	return &Recorder{logger: logger}
}

func (r *Recorder) record(a Action) error {
	r.mu.Lock()
	r.actions = append(r.actions, a)
	r.mu.Unlock()
	r.logger.Debugw("inject", "action", a.String())
	return nil
}

func (r *Recorder) MoveRelative(dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	return r.record(Action{Kind: ActionMove, X: dx, Y: dy})
}

func (r *Recorder) Scroll(v, h int) error {
	if v == 0 && h == 0 {
		return nil
	}
	return r.record(Action{Kind: ActionScroll, X: h, Y: v})
}

func (r *Recorder) Button(b MouseButton, pressed bool) error {
	return r.record(Action{Kind: ActionButton, Button: b, Pressed: pressed})
}

func (r *Recorder) Key(tok keys.Token, pressed bool) error {
	return r.record(Action{Kind: ActionKey, Token: tok, Pressed: pressed})
}

func (r *Recorder) Remember() error {
	return r.record(Action{Kind: ActionRemember})
}

func (r *Recorder) Restore() error {
	return r.record(Action{Kind: ActionRestore})
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// Actions returns a copy of everything recorded so far.
func (r *Recorder) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Filter returns the recorded actions of the given kinds.
func (r *Recorder) Filter(kinds ...ActionKind) []Action {
	var out []Action
	for _, a := range r.Actions() {
		for _, k := range kinds {
			if a.Kind == k {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.actions = nil
	r.mu.Unlock()
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
