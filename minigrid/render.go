// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minigrid

import (
	"github.com/emer/emergent/evec"
	"github.com/emer/etable/etensor"
)

// viewTopLeft returns the world coordinate of the top-left corner of the
// agent-view window, positioned so the agent sits at the horizontal
// center of the bottom edge relative to its facing direction.
func (ev *World) viewTopLeft() evec.Vec2i {
	vs := ev.AgentViewSize
	hv := vs / 2
	var tp evec.Vec2i
	switch ev.AgentDir {
	case East:
		tp.Set(ev.AgentPos.X, ev.AgentPos.Y-hv)
	case South:
		tp.Set(ev.AgentPos.X-hv, ev.AgentPos.Y)
	case West:
		tp.Set(ev.AgentPos.X-vs+1, ev.AgentPos.Y-hv)
	case North:
		tp.Set(ev.AgentPos.X-hv, ev.AgentPos.Y-vs+1)
	default:
		panic("minigrid.World: agent direction out of range 0-3")
	}
	return tp
}

// RenderObservation writes the agent's current egocentric observation
// into obs, shaped [AgentViewSize, AgentViewSize, 3] with channels
// (type, color, state), addressed (x, y, chan).  The window is rotated
// so the agent always appears facing up at bottom-center, where its cell
// shows the carried object (Empty if none).  Cells outside grid bounds
// are opaque Wall; cells outside the visibility mask render as Empty.
// obs is caller-provided storage: its shape is (re)set here and every
// cell is written, so output is independent of prior buffer contents.
func (ev *World) RenderObservation(obs *etensor.Int) {
	vs := ev.AgentViewSize
	obs.SetShape([]int{vs, vs, 3}, nil, []string{"X", "Y", "Chan"})

	// sample the un-rotated window, wall outside bounds
	tp := ev.viewTopLeft()
	view := make([][]WorldObj, vs)
	for j := 0; j < vs; j++ {
		view[j] = make([]WorldObj, vs)
		for i := 0; i < vs; i++ {
			x := tp.X + i
			y := tp.Y + j
			if ev.Grid.InBounds(x, y) {
				view[j][i] = *ev.Grid.At(x, y)
			} else {
				view[j][i] = NewColorObj(Wall, Grey)
			}
		}
	}

	// rotate counter-clockwise dir+1 quarter turns so forward is up
	for n := 0; n <= ev.AgentDir; n++ {
		rot := make([][]WorldObj, vs)
		for j := range rot {
			rot[j] = make([]WorldObj, vs)
		}
		for j := 0; j < vs; j++ {
			for i := 0; i < vs; i++ {
				rot[vs-1-i][j] = view[j][i]
			}
		}
		view = rot
	}

	agX := vs / 2 // agent at bottom-center of rotated window
	agY := vs - 1

	vis := ev.visMask(view)
	for j := 0; j < vs; j++ {
		for i := 0; i < vs; i++ {
			if !vis[j][i] {
				view[j][i] = NewObj(Empty)
			}
		}
	}

	// the agent sees what it is carrying, never its own standing cell
	if ev.Carrying.Type != Empty {
		view[agY][agX] = ev.Carrying
	} else {
		view[agY][agX] = NewObj(Empty)
	}

	// transpose rows/cols into the caller's (x, y, chan) convention
	for j := 0; j < vs; j++ {
		for i := 0; i < vs; i++ {
			ob := view[j][i]
			obs.Set([]int{i, j, 0}, int(ob.Type))
			obs.Set([]int{i, j, 1}, int(ob.Color))
			obs.Set([]int{i, j, 2}, ob.State())
		}
	}
}

// visMask computes the visibility mask over the rotated view window via
// two-pass per-row directional propagation from the agent's cell.  A
// visible, see-through cell propagates visibility to its same-row
// neighbor in the scan direction and, in the row above, to the cells
// directly above and diagonally above in the scan direction.  Opaque
// cells block propagation through them but are themselves visible when
// reached.  This exact neighbor set defines the visible-cone shape.
func (ev *World) visMask(view [][]WorldObj) [][]bool {
	vs := ev.AgentViewSize
	vis := make([][]bool, vs)
	for j := range vis {
		vis[j] = make([]bool, vs)
	}
	if ev.SeeThruWalls {
		for j := range vis {
			for i := range vis[j] {
				vis[j][i] = true
			}
		}
		return vis
	}
	vis[vs-1][vs/2] = true
	for j := vs - 1; j >= 0; j-- {
		// left -> right
		for i := 0; i <= vs-2; i++ {
			if !vis[j][i] {
				continue
			}
			if !view[j][i].CanSeeBehind() {
				continue
			}
			vis[j][i+1] = true
			if j > 0 {
				vis[j-1][i+1] = true
				vis[j-1][i] = true
			}
		}
		// right -> left
		for i := vs - 1; i >= 1; i-- {
			if !vis[j][i] {
				continue
			}
			if !view[j][i].CanSeeBehind() {
				continue
			}
			vis[j][i-1] = true
			if j > 0 {
				vis[j-1][i-1] = true
				vis[j-1][i] = true
			}
		}
	}
	return vis
}
