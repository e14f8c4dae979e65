// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minigrid

import (
	"fmt"
	"sort"

	"github.com/emer/emergent/evec"
)

// TaskParams is the per-task registry configuration: grid size, step
// budget, and agent start pose (-1 sentinels = random).
type TaskParams struct {
	Size     int             `desc:"width and height of the square grid"`
	MaxSteps int             `desc:"episode step budget"`
	StartPos evec.Vec2i      `desc:"agent start position, -1,-1 = random"`
	StartDir int             `desc:"agent start direction, -1 = random"`
	Gen      func(ev *World) `desc:"grid generator for this task family"`
}

// Tasks is the registry of named task configurations.
var Tasks = map[string]*TaskParams{
	"MiniGrid-Empty-5x5-v0":        {Size: 5, MaxSteps: 100, StartPos: evec.Vec2i{X: 1, Y: 1}, StartDir: East, Gen: (*World).GenEmpty},
	"MiniGrid-Empty-Random-5x5-v0": {Size: 5, MaxSteps: 100, StartPos: evec.Vec2i{X: -1, Y: -1}, StartDir: -1, Gen: (*World).GenEmpty},
	"MiniGrid-Empty-6x6-v0":        {Size: 6, MaxSteps: 144, StartPos: evec.Vec2i{X: 1, Y: 1}, StartDir: East, Gen: (*World).GenEmpty},
	"MiniGrid-Empty-Random-6x6-v0": {Size: 6, MaxSteps: 144, StartPos: evec.Vec2i{X: -1, Y: -1}, StartDir: -1, Gen: (*World).GenEmpty},
	"MiniGrid-Empty-8x8-v0":        {Size: 8, MaxSteps: 256, StartPos: evec.Vec2i{X: 1, Y: 1}, StartDir: East, Gen: (*World).GenEmpty},
	"MiniGrid-Empty-16x16-v0":      {Size: 16, MaxSteps: 1024, StartPos: evec.Vec2i{X: 1, Y: 1}, StartDir: East, Gen: (*World).GenEmpty},
	"MiniGrid-DoorKey-5x5-v0":      {Size: 5, MaxSteps: 250, StartPos: evec.Vec2i{X: -1, Y: -1}, StartDir: -1, Gen: (*World).GenDoorKey},
}

// TaskList returns the registered task ids, sorted.
func TaskList() []string {
	ts := make([]string, 0, len(Tasks))
	for nm := range Tasks {
		ts = append(ts, nm)
	}
	sort.Strings(ts)
	return ts
}

// ConfigTask configures the world from the named task registry entry.
// Call Defaults first; view size and wall transparency keep their
// configured values.
func (ev *World) ConfigTask(task string) error {
	tp, ok := Tasks[task]
	if !ok {
		return fmt.Errorf("minigrid.World: task not registered: %s", task)
	}
	ev.Task = task
	ev.Nm = task
	ev.Size.Set(tp.Size, tp.Size)
	ev.MaxSteps = tp.MaxSteps
	ev.AgentStartPos = tp.StartPos
	ev.AgentStartDir = tp.StartDir
	ev.GenFunc = tp.Gen
	return nil
}

// placeStartAgent puts the agent at the configured fixed start pose, or
// places it randomly within the given rectangle when the position is the
// -1,-1 sentinel.
func (ev *World) placeStartAgent(x0, y0, x1, y1 int) {
	if ev.AgentStartPos.X >= 0 && ev.AgentStartPos.Y >= 0 {
		ev.AgentPos = ev.AgentStartPos
		if ev.AgentStartDir == -1 {
			ev.AgentDir = ev.Rand.Intn(4)
		} else {
			ev.AgentDir = ev.AgentStartDir
		}
		return
	}
	ev.PlaceAgent(x0, y0, x1, y1)
}

// GenEmpty generates the Empty task family: a walled rectangle with a
// goal in the bottom-right interior corner.
func (ev *World) GenEmpty() {
	wd := ev.Size.X
	ht := ev.Size.Y
	ev.Grid.SetShape(wd, ht)
	ev.Grid.WallRect(0, 0, wd-1, ht-1)
	ev.Grid.Set(wd-2, ht-2, NewColorObj(Goal, Green))
	ev.placeStartAgent(1, 1, wd-2, ht-2)
}

// GenDoorKey generates the DoorKey task family: a vertical wall with a
// locked door splits the grid, the agent and a matching key start on the
// left side, the goal on the right.
func (ev *World) GenDoorKey() {
	wd := ev.Size.X
	ht := ev.Size.Y
	if wd < 5 || ht < 5 {
		panic(fmt.Sprintf("minigrid.World: %v DoorKey requires size >= 5, got %d x %d", ev.Nm, wd, ht))
	}
	ev.Grid.SetShape(wd, ht)
	ev.Grid.WallRect(0, 0, wd-1, ht-1)
	ev.Grid.Set(wd-2, ht-2, NewColorObj(Goal, Green))

	splitIdx := 2 + ev.Rand.Intn(wd-4)
	ev.Grid.WallVert(splitIdx, 0, ht-1)
	doorIdx := 1 + ev.Rand.Intn(ht-3)
	ev.Grid.Set(splitIdx, doorIdx, WorldObj{Type: Door, Color: Yellow, Locked: true})

	ev.placeStartAgent(1, 1, splitIdx-1, ht-2)
	kp := ev.PlaceObject(1, 1, splitIdx-1, ht-2)
	ev.Grid.Set(kp.X, kp.Y, NewColorObj(Key, Yellow))
}
