package dispatch

import (
	"context"
	"runtime"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/gamepad"
	"github.com/soar/GamepadKeyMouse/internal/osk"
)

// Source is a polled controller.
type Source interface {
	Open() error
	Poll(dst []gamepad.Event) []gamepad.Event
	Close() error
}

// View receives keyboard snapshots. Publish must not block.
type View interface {
	Publish(snap osk.Snapshot)
}

// Loop runs the dispatcher once per frame on a single locked OS thread.
type Loop struct {
	source     Source
	disp       *Dispatcher
	clock      clock.Clock
	frameDelay time.Duration
	views      []View
	pointer    chan PointerEvent
	logger     *zap.SugaredLogger
}

// NewLoop returns a Loop polling source every frameDelay.
func NewLoop(source Source, disp *Dispatcher, clk clock.Clock, frameDelay time.Duration, logger *zap.SugaredLogger) *Loop {
	return &Loop{
		source:     source,
		disp:       disp,
		clock:      clk,
		frameDelay: frameDelay,
		pointer:    make(chan PointerEvent, 64),
		logger:     logger,
	}
}

// AddView registers v. Views must be added before Run.
func (l *Loop) AddView(v View) {
	l.views = append(l.views, v)
}

// QueuePointer hands a pointer event to the loop. It is safe to call from
// any goroutine and drops the event when the queue is full.
func (l *Loop) QueuePointer(ev PointerEvent) bool {
	select {
	case l.pointer <- ev:
		return true
	default:
		l.logger.Warnw("pointer queue full, event dropped", "event", ev)
		return false
	}
}

// Run opens the source and runs frames until ctx is done. Held keys and
// buttons are released and the source is closed on every exit path.
// gamepad.ErrNoController from the source is returned as is.
func (l *Loop) Run(ctx context.Context) (err error) {
	// SDL event polling must stay on one thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := l.source.Open(); err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, l.disp.Release(), l.source.Close())
		l.publish()
		l.logger.Info("input loop stopped")
	}()

	l.logger.Infow("input loop started", "frameDelay", l.frameDelay)
	var (
		events  []gamepad.Event
		pointer []PointerEvent
		first   = true
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		events = l.source.Poll(events[:0])
		pointer = l.drainPointer(pointer[:0])
		if l.disp.Frame(events, pointer) || first {
			first = false
			l.publish()
		}
		l.clock.Sleep(l.frameDelay)
	}
}

func (l *Loop) drainPointer(dst []PointerEvent) []PointerEvent {
	for {
		select {
		case ev := <-l.pointer:
			dst = append(dst, ev)
		default:
			return dst
		}
	}
}

func (l *Loop) publish() {
	snap := l.disp.Snapshot()
	for _, v := range l.views {
		v.Publish(snap)
	}
}
