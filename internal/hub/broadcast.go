package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/gamepad"
	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/osk"
)

const fullSyncInterval = 5 * time.Second

// InfoSource describes the active controller.
type InfoSource interface {
	Info() gamepad.Info
}

// Broadcaster receives keyboard snapshots from the input loop and
// broadcasts them to the hub.
type Broadcaster struct {
	hub     *Hub
	info    InfoSource
	layout  *LayoutView
	changes chan osk.Snapshot
	logger  *zap.SugaredLogger

	mu       sync.Mutex
	last     osk.Snapshot
	lastInfo gamepad.Info
	seq      int64
}

func NewBroadcaster(h *Hub, layout *keyboard.Layout, info InfoSource, logger *zap.SugaredLogger) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		info:    info,
		layout:  NewLayoutView(layout),
		changes: make(chan osk.Snapshot, 1),
		logger:  logger,
	}
}

// Publish hands snap to the broadcaster without blocking. An unsent older
// snapshot is replaced.
func (b *Broadcaster) Publish(snap osk.Snapshot) {
	for {
		select {
		case b.changes <- snap:
			return
		default:
		}
		select {
		case <-b.changes:
		default:
		}
	}
}

// Run starts the broadcaster loop until ctx is done. Should be run in a
// goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case snap := <-b.changes:
			b.mu.Lock()
			b.last = snap
			b.mu.Unlock()
			b.sendState()
			b.checkController()

		case <-ticker.C:
			b.sendState()
			b.checkController()

		case <-ctx.Done():
			return
		}
	}
}

// SendInitialState sends the layout, the controller and the current state
// to a newly connected client. Clients that are not registered get nothing.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	last := b.last
	b.mu.Unlock()

	var batch [][]byte
	for _, msg := range []*WSMessage{
		NewLayoutMessage(b.nextSeq(), b.layout),
		NewControllerMessage(b.nextSeq(), b.info.Info()),
		NewStateMessage(b.nextSeq(), &last),
	} {
		data, err := json.Marshal(msg)
		if err != nil {
			b.logger.Errorw("marshal initial state", "type", msg.Type, "error", err)
			return
		}
		batch = append(batch, data)
	}
	if !b.hub.SendTo(c, batch...) {
		b.logger.Debug("initial state skipped, client not registered")
	}
}

func (b *Broadcaster) nextSeq() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

func (b *Broadcaster) sendState() {
	b.mu.Lock()
	last := b.last
	b.mu.Unlock()
	b.send(NewStateMessage(b.nextSeq(), &last))
}

func (b *Broadcaster) checkController() {
	info := b.info.Info()
	b.mu.Lock()
	changed := info != b.lastInfo
	b.lastInfo = info
	b.mu.Unlock()
	if changed {
		b.send(NewControllerMessage(b.nextSeq(), info))
	}
}

func (b *Broadcaster) send(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Errorw("marshal message", "type", msg.Type, "error", err)
		return
	}
	b.hub.Broadcast(data)
}
