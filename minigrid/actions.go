// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minigrid

import (
	"github.com/goki/ki/kit"
)

// Actions is the discrete action set applied by World.TakeAct.
// Codes follow the standard minigrid action layout.
type Actions int

//go:generate stringer -type=Actions

var KiT_Actions = kit.Enums.AddEnum(ActionsN, false, nil)

// The actions
const (
	// Left rotates the agent 90 degrees counter-clockwise
	Left Actions = iota

	// Right rotates the agent 90 degrees clockwise
	Right

	// Forward moves onto the forward cell if it can be entered
	Forward

	// Pickup collects the forward cell's object into the carry slot
	Pickup

	// Drop places the carried object onto an empty forward cell
	Drop

	// Toggle opens / closes doors and unwraps boxes in the forward cell
	Toggle

	// Done is an explicit no-op: the agent chose to end
	Done

	ActionsN
)

// Directions of agent heading: the numeric codes index into DirVecs.
const (
	East  = 0
	South = 1
	West  = 2
	North = 3
)

// DirNames are short names for the four headings, indexed by direction code.
var DirNames = []string{"East", "South", "West", "North"}
