package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	"github.com/soar/GamepadKeyMouse/internal/gamepad"
	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/osk"
)

type fixedInfo gamepad.Info

func (f fixedInfo) Info() gamepad.Info { return gamepad.Info(f) }

func decode(t *testing.T, data []byte) WSMessage {
	t.Helper()
	var msg WSMessage
	test.That(t, json.Unmarshal(data, &msg), test.ShouldBeNil)
	return msg
}

func waitLen(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for h.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d clients, want %d", h.Len(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHubBroadcastAndStop(t *testing.T) {
	h := NewHub(zaptest.NewLogger(t).Sugar())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	a, b := NewClient(h, nil), NewClient(h, nil)
	test.That(t, h.Register(a), test.ShouldBeTrue)
	test.That(t, h.Register(b), test.ShouldBeTrue)
	waitLen(t, h, 2)

	h.Broadcast([]byte("hello"))
	test.That(t, string(<-a.send), test.ShouldEqual, "hello")
	test.That(t, string(<-b.send), test.ShouldEqual, "hello")

	h.Unregister(a)
	waitLen(t, h, 1)
	_, open := <-a.send
	test.That(t, open, test.ShouldBeFalse)

	cancel()
	<-done
	_, open = <-b.send
	test.That(t, open, test.ShouldBeFalse)

	// a stopped hub refuses clients without blocking
	test.That(t, h.Register(NewClient(h, nil)), test.ShouldBeFalse)
	h.Unregister(b)
}

func TestBroadcasterInitialState(t *testing.T) {
	h := NewHub(zaptest.NewLogger(t).Sugar())
	info := fixedInfo{Connected: true, Name: "pad", ControllerType: "xbox"}
	b := NewBroadcaster(h, keyboard.QWERTY(), info, zaptest.NewLogger(t).Sugar())
	c := NewClient(h, nil)
	test.That(t, h.Register(c), test.ShouldBeTrue)

	b.SendInitialState(c)
	test.That(t, c.send, test.ShouldHaveLength, 3)

	layout := decode(t, <-c.send)
	test.That(t, layout.Type, test.ShouldEqual, TypeLayout)
	test.That(t, layout.Layout.Cols, test.ShouldEqual, 18)
	test.That(t, layout.Layout.Rows, test.ShouldEqual, 7)

	ctrl := decode(t, <-c.send)
	test.That(t, ctrl.Type, test.ShouldEqual, TypeController)
	test.That(t, ctrl.Controller.Name, test.ShouldEqual, "pad")
	test.That(t, ctrl.Seq, test.ShouldBeGreaterThan, layout.Seq)

	state := decode(t, <-c.send)
	test.That(t, state.Type, test.ShouldEqual, TypeState)
	test.That(t, state.State.Open, test.ShouldBeFalse)
}

func TestInitialStateAfterShutdown(t *testing.T) {
	h := NewHub(zaptest.NewLogger(t).Sugar())
	b := NewBroadcaster(h, keyboard.QWERTY(), fixedInfo{}, zaptest.NewLogger(t).Sugar())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	c := NewClient(h, nil)
	test.That(t, h.Register(c), test.ShouldBeTrue)
	cancel()
	<-done

	// the send channel is closed by now; nothing may be written to it
	b.SendInitialState(c)
	_, open := <-c.send
	test.That(t, open, test.ShouldBeFalse)

	stranger := NewClient(h, nil)
	test.That(t, h.SendTo(stranger, []byte("x")), test.ShouldBeFalse)
	test.That(t, stranger.send, test.ShouldBeEmpty)
}

func TestBroadcasterPublishKeepsLatest(t *testing.T) {
	h := NewHub(zaptest.NewLogger(t).Sugar())
	b := NewBroadcaster(h, keyboard.QWERTY(), fixedInfo{}, zaptest.NewLogger(t).Sugar())

	b.Publish(osk.Snapshot{Seq: 1})
	b.Publish(osk.Snapshot{Seq: 2, Open: true})
	test.That(t, b.changes, test.ShouldHaveLength, 1)
	snap := <-b.changes
	test.That(t, snap.Seq, test.ShouldEqual, uint64(2))
	test.That(t, snap.Open, test.ShouldBeTrue)
}

func TestBroadcasterRunSendsState(t *testing.T) {
	h := NewHub(zaptest.NewLogger(t).Sugar())
	c := NewClient(h, nil)
	test.That(t, h.Register(c), test.ShouldBeTrue)
	b := NewBroadcaster(h, keyboard.QWERTY(), fixedInfo{Connected: true, Name: "pad"}, zaptest.NewLogger(t).Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	b.Publish(osk.Snapshot{Seq: 7, Open: true})
	select {
	case data := <-c.send:
		msg := decode(t, data)
		test.That(t, msg.Type, test.ShouldEqual, TypeState)
		test.That(t, msg.State.Seq, test.ShouldEqual, uint64(7))
	case <-time.After(5 * time.Second):
		t.Fatal("no state broadcast")
	}
	select {
	case data := <-c.send:
		test.That(t, decode(t, data).Type, test.ShouldEqual, TypeController)
	case <-time.After(5 * time.Second):
		t.Fatal("no controller broadcast")
	}
}
