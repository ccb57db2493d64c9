package hub

import (
	"time"

	"github.com/soar/GamepadKeyMouse/internal/gamepad"
	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/osk"
)

// Server to client message types.
const (
	TypeLayout     = "layout"
	TypeState      = "state"
	TypeController = "controller"
)

// Client to server message types.
const (
	TypePress   = "press"
	TypeRelease = "release"
)

// LayoutView is the key grid as the browser draws it.
type LayoutView struct {
	Cols  int             `json:"cols"`
	Rows  int             `json:"rows"`
	Cells []keyboard.Cell `json:"cells"`
}

// NewLayoutView describes l.
func NewLayoutView(l *keyboard.Layout) *LayoutView {
	cols, rows := l.Size()
	return &LayoutView{Cols: cols, Rows: rows, Cells: l.Cells()}
}

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type       string        `json:"type"`                 // "layout", "state" or "controller"
	Seq        int64         `json:"seq"`                  // Sequence number for ordering
	Timestamp  int64         `json:"timestamp"`            // Unix timestamp in milliseconds
	Layout     *LayoutView   `json:"layout,omitempty"`     // for type "layout"
	State      *osk.Snapshot `json:"state,omitempty"`      // for type "state"
	Controller *gamepad.Info `json:"controller,omitempty"` // for type "controller"
}

// NewLayoutMessage creates a "layout" message.
func NewLayoutMessage(seq int64, layout *LayoutView) *WSMessage {
	return &WSMessage{
		Type:      TypeLayout,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Layout:    layout,
	}
}

// NewStateMessage creates a "state" message carrying a keyboard snapshot.
func NewStateMessage(seq int64, snap *osk.Snapshot) *WSMessage {
	return &WSMessage{
		Type:      TypeState,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		State:     snap,
	}
}

// NewControllerMessage creates a "controller" message.
func NewControllerMessage(seq int64, info gamepad.Info) *WSMessage {
	return &WSMessage{
		Type:       TypeController,
		Seq:        seq,
		Timestamp:  time.Now().UnixMilli(),
		Controller: &info,
	}
}

// ClientMessage represents a message sent from the client to the server:
// a pointer press or release on the key cell at (x, y).
type ClientMessage struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}
