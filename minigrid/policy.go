// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minigrid

import (
	"github.com/emer/emergent/erand"
	"github.com/goki/ki/kit"
)

// Policy provides a parameterized "subcortical" scripted controller for
// driving episodes without a learning agent: go forward when possible,
// turn away from obstacles and hazards, grab keys and open doors on the
// way.  It is heuristic, not a planner -- useful for demos, smoke tests,
// and generating experience streams.
type Policy struct {
	PTurn    float32  `desc:"probability of a random turn when otherwise moving freely"`
	CurState PolState `inactive:"+" desc:"current policy state"`
	PrvAct   Actions  `inactive:"+" desc:"previous action chosen"`
	LastTurn Actions  `inactive:"+" desc:"direction of last turn -- keeps turning the same way at obstacles"`
}

func (pl *Policy) Defaults() {
	pl.PTurn = 0.2
	pl.LastTurn = Right
	pl.PrvAct = Forward
	pl.CurState = NoPolState
}

// Act selects the next action for the world's current state.
func (pl *Policy) Act(ev *World) Actions {
	fp := ev.FwdPos()
	fwd := ev.Grid.At(fp.X, fp.Y)
	act := pl.choose(ev, *fwd)
	pl.PrvAct = act
	return act
}

func (pl *Policy) choose(ev *World, fwd WorldObj) Actions {
	switch {
	case fwd.Type == Goal:
		pl.CurState = Cruising
		return Forward
	case fwd.Type == Lava:
		pl.CurState = AvoidTurn
		return pl.keepTurn()
	case fwd.Type == Key && ev.Carrying.Type == Empty:
		pl.CurState = Cruising
		return Pickup
	case fwd.Type == Door && !fwd.Open:
		if !fwd.Locked {
			return Toggle
		}
		if ev.Carrying.Type == Key && ev.Carrying.Color == fwd.Color {
			return Toggle
		}
		pl.CurState = AvoidTurn
		return pl.keepTurn()
	case fwd.CanOverlap():
		pl.CurState = Cruising
		if erand.BoolProb(float64(pl.PTurn), -1) {
			return pl.rndTurn()
		}
		return Forward
	default:
		pl.CurState = AvoidTurn
		return pl.keepTurn()
	}
}

// keepTurn turns the same way as the last turn, so the agent rotates
// consistently out of dead ends instead of oscillating.
func (pl *Policy) keepTurn() Actions {
	if pl.PrvAct == Left || pl.PrvAct == Right {
		pl.LastTurn = pl.PrvAct
	}
	return pl.LastTurn
}

func (pl *Policy) rndTurn() Actions {
	if erand.BoolProb(.5, -1) {
		pl.LastTurn = Right
	} else {
		pl.LastTurn = Left
	}
	return pl.LastTurn
}

// PolState is the policy's action-selection state.
type PolState int

//go:generate stringer -type=PolState

var KiT_PolState = kit.Enums.AddEnum(PolStateN, false, nil)

// The policy states
const (
	NoPolState PolState = iota

	// Cruising is moving freely toward whatever is ahead
	Cruising

	// AvoidTurn is turning away from an obstacle or hazard
	AvoidTurn

	PolStateN
)
