// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minigrid

import (
	"github.com/goki/ki/kit"
)

// Types is the type of an object occupying one grid cell.
// The numeric codes are the standard minigrid categorical layout,
// so observations are directly usable as categorical features.
type Types int

//go:generate stringer -type=Types

var KiT_Types = kit.Enums.AddEnum(TypesN, false, nil)

// The object types
const (
	// Unseen marks cells outside the visibility mask in observations
	Unseen Types = iota

	// Empty is a vacant cell
	Empty

	Wall
	Floor
	Door
	Key
	Ball
	Box
	Goal
	Lava

	// Agent is only used for display maps -- never stored in the grid
	Agent

	TypesN
)

// Colors is the color of an object, a categorical feature in observations.
type Colors int

//go:generate stringer -type=Colors

var KiT_Colors = kit.Enums.AddEnum(ColorsN, false, nil)

// The object colors
const (
	Red Colors = iota
	Green
	Blue
	Purple
	Yellow
	Grey

	ColorsN
)

// Door state codes reported by WorldObj.State
const (
	DoorOpen   = 0
	DoorClosed = 1
	DoorLocked = 2
)

// WorldObj is the content of one grid cell: a type, a color, and
// type-specific state.  Only Door uses the Open / Locked flags and only
// Box uses Contains -- all other types ignore them.  A WorldObj is a
// value: copying it copies the type, color and flags, and a box's
// contents belong to the box cell holding the pointer.
type WorldObj struct {
	Type     Types     `desc:"object type code"`
	Color    Colors    `desc:"object color code"`
	Open     bool      `desc:"door: open -- an open door can be entered and seen through"`
	Locked   bool      `desc:"door: locked -- toggling requires a carried key of matching color.  opening a locked door leaves Locked set; Open alone gates traversal"`
	Contains *WorldObj `view:"-" desc:"box: contents revealed when the box is toggled, nil if empty"`
}

// NewObj returns an object of the given type with default (Red) color.
func NewObj(typ Types) WorldObj {
	return WorldObj{Type: typ}
}

// NewColorObj returns an object of the given type and color.
func NewColorObj(typ Types, clr Colors) WorldObj {
	return WorldObj{Type: typ, Color: clr}
}

// CanOverlap returns true if an agent can move onto this cell.
// For doors only the Open flag matters -- a locked door that has been
// opened with its key remains Locked but is traversable.
func (ob WorldObj) CanOverlap() bool {
	switch ob.Type {
	case Empty, Floor, Goal, Lava:
		return true
	case Door:
		return ob.Open
	}
	return false
}

// CanPickup returns true if this cell's object can be collected
// into the agent's carry slot.
func (ob WorldObj) CanPickup() bool {
	switch ob.Type {
	case Key, Ball, Box:
		return true
	}
	return false
}

// CanSeeBehind returns true if this cell does not block visibility
// propagation past it.  The object itself is still visible when in
// view -- this only gates what lies beyond.
func (ob WorldObj) CanSeeBehind() bool {
	switch ob.Type {
	case Wall:
		return false
	case Door:
		return ob.Open
	}
	return true
}

// State returns the type-specific categorical state code written to the
// observation's third channel: door open / closed / locked, 0 otherwise.
func (ob WorldObj) State() int {
	if ob.Type != Door {
		return 0
	}
	switch {
	case ob.Open:
		return DoorOpen
	case ob.Locked:
		return DoorLocked
	default:
		return DoorClosed
	}
}
