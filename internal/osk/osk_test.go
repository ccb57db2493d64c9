package osk

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap/zaptest"

	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/keys"
)

type keyEdge struct {
	tok     keys.Token
	pressed bool
}

type fakeKeys struct {
	edges []keyEdge
	err   error
}

func (f *fakeKeys) Key(tok keys.Token, pressed bool) error {
	if f.err != nil {
		return f.err
	}
	f.edges = append(f.edges, keyEdge{tok, pressed})
	return nil
}

const navDelay = 80 * time.Millisecond

func newState(t *testing.T, reopen ReopenPolicy) (*State, *fakeKeys, *clock.Mock) {
	t.Helper()
	inj := &fakeKeys{}
	clk := clock.NewMock()
	s := New(keyboard.QWERTY(), inj, clk, Options{
		NavDelay:  navDelay,
		Threshold: 0.3,
		Diagonal:  DiagonalSimultaneous,
		Reopen:    reopen,
	}, zaptest.NewLogger(t).Sugar())
	return s, inj, clk
}

func pt(x, y int) keyboard.Point {
	return keyboard.Point{X: x, Y: y}
}

var errInject = errors.New("inject failed")
