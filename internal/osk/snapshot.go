package osk

import "github.com/soar/GamepadKeyMouse/internal/keyboard"

// CursorView is the rendered form of one cursor.
type CursorView struct {
	Name   string         `json:"name"`
	Pos    keyboard.Point `json:"pos"`
	Key    keyboard.Point `json:"key"`
	Active bool           `json:"active"`
}

// Snapshot is an immutable copy of everything a view draws.
type Snapshot struct {
	Seq     uint64           `json:"seq"`
	Open    bool             `json:"open"`
	Cursors []CursorView     `json:"cursors"`
	Pressed []keyboard.Point `json:"pressed"`
	Axes    []int16          `json:"axes"`
}

// IsPressed reports whether the key whose origin is p is held.
func (s Snapshot) IsPressed(p keyboard.Point) bool {
	for _, q := range s.Pressed {
		if q == p {
			return true
		}
	}
	return false
}

// Snapshot copies the current state. Axes are filled in by the caller.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Seq:     s.seq,
		Open:    s.open,
		Pressed: s.tracker.Pressed(),
	}
	for _, src := range []Source{SourceBlue, SourceRed} {
		c := s.cursors[src]
		key := c.Pos
		if cell, ok := s.layout.Lookup(c.Pos); ok {
			key = cell.Origin()
		}
		snap.Cursors = append(snap.Cursors, CursorView{
			Name:   src.String(),
			Pos:    c.Pos,
			Key:    key,
			Active: c.Active,
		})
	}
	return snap
}
