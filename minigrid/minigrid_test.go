// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minigrid

import (
	"math/rand"
	"testing"

	"github.com/emer/emergent/env"
)

// newTestWorld returns a default 5x5 empty world with a fixed seed.
func newTestWorld(t *testing.T) *World {
	t.Helper()
	ev := &World{}
	ev.Defaults()
	ev.Rand = rand.New(rand.NewSource(42))
	ev.Init(0)
	return ev
}

// newCustomWorld builds a 5x5 walled world with the given interior
// cells set, agent at (1, 1) facing East, no goal unless placed.
func newCustomWorld(t *testing.T, cells map[[2]int]WorldObj) *World {
	t.Helper()
	ev := &World{}
	ev.Defaults()
	ev.Rand = rand.New(rand.NewSource(42))
	ev.GenFunc = func(ev *World) {
		ev.Grid.SetShape(5, 5)
		ev.Grid.WallRect(0, 0, 4, 4)
		for xy, ob := range cells {
			ev.Grid.Set(xy[0], xy[1], ob)
		}
		ev.AgentPos.Set(1, 1)
		ev.AgentDir = East
	}
	ev.Init(0)
	return ev
}

func TestTurnLeftRightInverse(t *testing.T) {
	ev := newTestWorld(t)
	for dir := East; dir <= North; dir++ {
		ev.AgentDir = dir
		ev.TakeAct(Left)
		ev.TakeAct(Right)
		if ev.AgentDir != dir {
			t.Errorf("dir %d: left then right gave %d, want %d", dir, ev.AgentDir, dir)
		}
	}
}

func TestTurnFullCycle(t *testing.T) {
	ev := newTestWorld(t)
	start := ev.AgentDir
	for i := 0; i < 4; i++ {
		ev.TakeAct(Left)
	}
	if ev.AgentDir != start {
		t.Errorf("four lefts gave dir %d, want %d", ev.AgentDir, start)
	}
	for i := 0; i < 4; i++ {
		ev.TakeAct(Right)
	}
	if ev.AgentDir != start {
		t.Errorf("four rights gave dir %d, want %d", ev.AgentDir, start)
	}
}

func TestTurnsDoNotMove(t *testing.T) {
	ev := newTestWorld(t)
	pos := ev.AgentPos
	for i := 0; i < 4; i++ {
		if rew := ev.TakeAct(Right); rew != 0 {
			t.Errorf("turn reward = %g, want 0", rew)
		}
		if ev.AgentPos != pos {
			t.Errorf("turn moved agent to %v, want %v", ev.AgentPos, pos)
		}
	}
}

func TestForwardBlocked(t *testing.T) {
	ev := newTestWorld(t)
	ev.AgentDir = North // wall at (1, 0)
	rew := ev.TakeAct(Forward)
	if rew != 0 {
		t.Errorf("blocked forward reward = %g, want 0", rew)
	}
	if ev.AgentPos.X != 1 || ev.AgentPos.Y != 1 {
		t.Errorf("blocked forward moved agent to %v, want (1, 1)", ev.AgentPos)
	}
	if ev.Done {
		t.Error("blocked forward set Done")
	}
}

func TestGoalReward(t *testing.T) {
	// 5x5, agent (1, 1) facing east, goal at (3, 1): the second forward
	// lands on the goal.
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{3, 1}: NewColorObj(Goal, Green),
	})
	rew := ev.TakeAct(Forward)
	if rew != 0 || ev.Done {
		t.Fatalf("first forward: reward %g done %v, want 0 false", rew, ev.Done)
	}
	if ev.AgentPos.X != 2 || ev.AgentPos.Y != 1 {
		t.Fatalf("first forward: agent at %v, want (2, 1)", ev.AgentPos)
	}
	rew = ev.TakeAct(Forward)
	if !ev.Done {
		t.Fatal("second forward onto goal did not set Done")
	}
	if ev.AgentPos.X != 3 || ev.AgentPos.Y != 1 {
		t.Errorf("agent at %v, want goal cell (3, 1)", ev.AgentPos)
	}
	want := 1 - 0.9*(float32(2)/float32(100))
	if rew != want {
		t.Errorf("goal reward = %g, want %g", rew, want)
	}
}

func TestGoalRewardDecays(t *testing.T) {
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{3, 1}: NewColorObj(Goal, Green),
	})
	ev.TakeAct(Right) // waste four steps turning in place
	ev.TakeAct(Right)
	ev.TakeAct(Right)
	ev.TakeAct(Right)
	ev.TakeAct(Forward)
	rew := ev.TakeAct(Forward)
	want := 1 - 0.9*(float32(6)/float32(100))
	if rew != want {
		t.Errorf("goal reward after 6 steps = %g, want %g", rew, want)
	}
	if rew <= 0.1 || rew > 1 {
		t.Errorf("goal reward %g outside (0.1, 1]", rew)
	}
}

func TestLavaTerminates(t *testing.T) {
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: NewColorObj(Lava, Red),
	})
	rew := ev.TakeAct(Forward)
	if !ev.Done {
		t.Fatal("forward onto lava did not set Done")
	}
	if rew != 0 {
		t.Errorf("lava reward = %g, want 0", rew)
	}
	if ev.AgentPos.X != 2 || ev.AgentPos.Y != 1 {
		t.Errorf("agent at %v, want lava cell (2, 1)", ev.AgentPos)
	}
}

func TestTruncation(t *testing.T) {
	ev := newTestWorld(t)
	ev.MaxSteps = 3
	ev.ResetEpisode()
	for i := 0; i < 2; i++ {
		ev.TakeAct(Done)
		if ev.Done {
			t.Fatalf("Done set after %d of 3 steps", i+1)
		}
	}
	rew := ev.TakeAct(Done)
	if !ev.Done {
		t.Error("Done not set at MaxSteps")
	}
	if rew != 0 {
		t.Errorf("truncation reward = %g, want 0", rew)
	}
}

func TestPickupDrop(t *testing.T) {
	ball := NewColorObj(Ball, Blue)
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: ball,
	})
	ev.TakeAct(Pickup)
	if ev.Carrying != ball {
		t.Fatalf("carrying %v, want %v", ev.Carrying, ball)
	}
	if got := ev.Grid.At(2, 1).Type; got != Empty {
		t.Fatalf("picked cell type %v, want Empty", got)
	}
	ev.TakeAct(Drop)
	if got := *ev.Grid.At(2, 1); got != ball {
		t.Errorf("dropped cell %v, want %v", got, ball)
	}
	if ev.Carrying.Type != Empty {
		t.Errorf("carrying %v after drop, want Empty", ev.Carrying)
	}
}

func TestPickupWhileCarrying(t *testing.T) {
	key := NewColorObj(Key, Yellow)
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: key,
	})
	ev.Carrying = NewColorObj(Ball, Blue)
	ev.TakeAct(Pickup)
	if ev.Carrying.Type != Ball {
		t.Errorf("carrying %v, want the original Ball", ev.Carrying)
	}
	if got := *ev.Grid.At(2, 1); got != key {
		t.Errorf("forward cell %v, want untouched %v", got, key)
	}
}

func TestDropOnOccupied(t *testing.T) {
	wallOb := NewColorObj(Wall, Grey)
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: wallOb,
	})
	ev.Carrying = NewColorObj(Ball, Blue)
	ev.TakeAct(Drop)
	if ev.Carrying.Type != Ball {
		t.Errorf("drop on wall cleared carry slot: %v", ev.Carrying)
	}
	if got := *ev.Grid.At(2, 1); got != wallOb {
		t.Errorf("forward cell %v, want untouched wall", got)
	}
}

func TestLockedDoorKey(t *testing.T) {
	door := WorldObj{Type: Door, Color: Yellow, Locked: true}
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: door,
	})
	// wrong color key never opens it
	ev.Carrying = NewColorObj(Key, Red)
	ev.TakeAct(Toggle)
	if ev.Grid.At(2, 1).Open {
		t.Fatal("red key opened a yellow locked door")
	}
	// matching key always opens it
	ev.Carrying = NewColorObj(Key, Yellow)
	ev.TakeAct(Toggle)
	fwd := ev.Grid.At(2, 1)
	if !fwd.Open {
		t.Fatal("matching key did not open the locked door")
	}
	if !fwd.Locked {
		t.Error("opening cleared the Locked flag")
	}
	if !fwd.CanOverlap() {
		t.Error("opened locked door is not traversable")
	}
	if got := fwd.State(); got != DoorOpen {
		t.Errorf("opened door State() = %d, want %d", got, DoorOpen)
	}
}

func TestUnlockedDoorToggle(t *testing.T) {
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: {Type: Door, Color: Blue},
	})
	ev.TakeAct(Toggle)
	if !ev.Grid.At(2, 1).Open {
		t.Fatal("toggle did not open the closed door")
	}
	ev.TakeAct(Toggle)
	if ev.Grid.At(2, 1).Open {
		t.Error("second toggle did not close the door")
	}
}

func TestBoxToggle(t *testing.T) {
	inner := NewColorObj(Key, Purple)
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: {Type: Box, Color: Grey, Contains: &inner},
	})
	ev.TakeAct(Toggle)
	if got := *ev.Grid.At(2, 1); got != inner {
		t.Errorf("toggled box cell %v, want contents %v", got, inner)
	}
}

func TestBoxToggleEmpty(t *testing.T) {
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: {Type: Box, Color: Grey},
	})
	ev.TakeAct(Toggle)
	if got := ev.Grid.At(2, 1).Type; got != Empty {
		t.Errorf("toggled empty box cell type %v, want Empty", got)
	}
}

func TestBoxNesting(t *testing.T) {
	key := NewColorObj(Key, Yellow)
	innerBox := WorldObj{Type: Box, Color: Blue, Contains: &key}
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: {Type: Box, Color: Grey, Contains: &innerBox},
	})
	ev.TakeAct(Toggle)
	ev.TakeAct(Toggle)
	if got := *ev.Grid.At(2, 1); got != key {
		t.Errorf("double-toggled nested box cell %v, want %v", got, key)
	}
}

func TestPlaceObjectSingleFree(t *testing.T) {
	ev := newTestWorld(t)
	// fill interior with balls except (2, 2); agent sits at (1, 1)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if x == 2 && y == 2 {
				continue
			}
			ev.Grid.Set(x, y, NewColorObj(Ball, Blue))
		}
	}
	for i := 0; i < 10; i++ {
		got := ev.PlaceObject(1, 1, 3, 3)
		if got.X != 2 || got.Y != 2 {
			t.Fatalf("PlaceObject returned %v, want the only free cell (2, 2)", got)
		}
	}
}

func TestPlaceObjectAvoidsAgent(t *testing.T) {
	ev := newTestWorld(t)
	// all interior cells blocked except the agent's own (1, 1) and (3, 3),
	// which must be Empty for the sampler (the generator put the goal there)
	ev.Grid.Set(3, 3, NewObj(Empty))
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if (x == 1 && y == 1) || (x == 3 && y == 3) {
				continue
			}
			ev.Grid.Set(x, y, NewColorObj(Ball, Blue))
		}
	}
	for i := 0; i < 10; i++ {
		got := ev.PlaceObject(1, 1, -1, -1)
		if got.X != 3 || got.Y != 3 {
			t.Fatalf("PlaceObject returned %v, want (3, 3)", got)
		}
	}
}

func TestInvalidActionPanics(t *testing.T) {
	ev := newTestWorld(t)
	defer func() {
		if recover() == nil {
			t.Error("invalid action code did not panic")
		}
	}()
	ev.TakeAct(ActionsN)
}

func TestValidateNilRand(t *testing.T) {
	ev := &World{}
	ev.Defaults()
	if err := ev.Validate(); err == nil {
		t.Error("Validate with nil Rand returned no error")
	}
}

func TestValidateEvenView(t *testing.T) {
	ev := &World{}
	ev.Defaults()
	ev.Rand = rand.New(rand.NewSource(1))
	ev.AgentViewSize = 6
	if err := ev.Validate(); err == nil {
		t.Error("Validate with even view size returned no error")
	}
}

func TestActionByName(t *testing.T) {
	ev := newTestWorld(t)
	ev.Action("Forward", nil)
	if ev.AgentPos.X != 2 || ev.AgentPos.Y != 1 {
		t.Errorf("Action(Forward) left agent at %v, want (2, 1)", ev.AgentPos)
	}
	if ev.LastAct != Forward {
		t.Errorf("LastAct = %v, want Forward", ev.LastAct)
	}
}

func TestCounters(t *testing.T) {
	ev := newTestWorld(t)
	ev.TakeAct(Forward)
	ev.Step()
	if cur, _, _ := ev.Counter(env.Trial); cur != 1 {
		t.Errorf("Trial counter = %d after one Step, want 1", cur)
	}
	epc := ev.Epoch.Cur
	ev.NextEpisode()
	if ev.Epoch.Cur != epc+1 {
		t.Errorf("Epoch = %d after NextEpisode, want %d", ev.Epoch.Cur, epc+1)
	}
	if ev.StepCount != 0 {
		t.Errorf("StepCount = %d after NextEpisode, want 0", ev.StepCount)
	}
}

func TestResetClearsState(t *testing.T) {
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: NewColorObj(Key, Yellow),
	})
	ev.TakeAct(Pickup)
	ev.TakeAct(Forward)
	ev.ResetEpisode()
	if ev.Carrying.Type != Empty {
		t.Errorf("Carrying = %v after reset, want Empty", ev.Carrying)
	}
	if ev.StepCount != 0 || ev.Done {
		t.Errorf("StepCount %d Done %v after reset, want 0 false", ev.StepCount, ev.Done)
	}
	if ev.LastAct != -1 {
		t.Errorf("LastAct = %v after reset, want -1", ev.LastAct)
	}
	if got := ev.Grid.At(2, 1).Type; got != Key {
		t.Errorf("regenerated key cell type %v, want Key", got)
	}
}
