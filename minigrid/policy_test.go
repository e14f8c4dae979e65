// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minigrid

import (
	"testing"
)

func newTestPolicy(t *testing.T) *Policy {
	t.Helper()
	pl := &Policy{}
	pl.Defaults()
	return pl
}

func TestPolicyGoalAhead(t *testing.T) {
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: NewColorObj(Goal, Green),
	})
	pl := newTestPolicy(t)
	if act := pl.Act(ev); act != Forward {
		t.Errorf("goal ahead: act = %v, want Forward", act)
	}
	if pl.CurState != Cruising {
		t.Errorf("state = %v, want Cruising", pl.CurState)
	}
}

func TestPolicyLavaAhead(t *testing.T) {
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: NewColorObj(Lava, Red),
	})
	pl := newTestPolicy(t)
	act := pl.Act(ev)
	if act != Left && act != Right {
		t.Errorf("lava ahead: act = %v, want a turn", act)
	}
	if pl.CurState != AvoidTurn {
		t.Errorf("state = %v, want AvoidTurn", pl.CurState)
	}
}

func TestPolicyKeyPickup(t *testing.T) {
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: NewColorObj(Key, Yellow),
	})
	pl := newTestPolicy(t)
	if act := pl.Act(ev); act != Pickup {
		t.Errorf("key ahead: act = %v, want Pickup", act)
	}
	// already carrying: the key ahead is no longer a pickup target
	ev.Carrying = NewColorObj(Ball, Blue)
	act := pl.Act(ev)
	if act == Pickup {
		t.Error("key ahead while carrying: act = Pickup, want anything else")
	}
}

func TestPolicyDoors(t *testing.T) {
	// unlocked closed door: toggle it open
	ev := newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: {Type: Door, Color: Blue},
	})
	pl := newTestPolicy(t)
	if act := pl.Act(ev); act != Toggle {
		t.Errorf("closed door: act = %v, want Toggle", act)
	}

	// locked without the key: turn away
	ev = newCustomWorld(t, map[[2]int]WorldObj{
		{2, 1}: {Type: Door, Color: Yellow, Locked: true},
	})
	pl = newTestPolicy(t)
	act := pl.Act(ev)
	if act != Left && act != Right {
		t.Errorf("locked door without key: act = %v, want a turn", act)
	}

	// locked with the matching key: toggle
	ev.Carrying = NewColorObj(Key, Yellow)
	if act := pl.Act(ev); act != Toggle {
		t.Errorf("locked door with key: act = %v, want Toggle", act)
	}

	// locked with a wrong-color key: turn away
	ev.Carrying = NewColorObj(Key, Red)
	act = pl.Act(ev)
	if act != Left && act != Right {
		t.Errorf("locked door with wrong key: act = %v, want a turn", act)
	}
}

// Blocked turns keep rotating the same way, so the agent spins out of a
// dead end instead of oscillating.
func TestPolicyConsistentTurns(t *testing.T) {
	ev := newCustomWorld(t, nil)
	ev.AgentDir = North // wall ahead at (1, 0)
	pl := newTestPolicy(t)
	first := pl.Act(ev)
	if first != Left && first != Right {
		t.Fatalf("wall ahead: act = %v, want a turn", first)
	}
	ev.AgentDir = East
	ev.Grid.Set(2, 1, NewColorObj(Wall, Grey))
	if act := pl.Act(ev); act != first {
		t.Errorf("second blocked turn = %v, want same as first %v", act, first)
	}
}

// The policy reliably solves the empty task within the step budget.
func TestPolicySolvesEmpty(t *testing.T) {
	ev := newTestWorld(t)
	pl := newTestPolicy(t)
	solved := 0
	for ep := 0; ep < 10; ep++ {
		var rew float32
		for !ev.Done {
			rew += ev.TakeAct(pl.Act(ev))
			ev.Step()
		}
		if rew > 0 {
			solved++
		}
		ev.NextEpisode()
	}
	if solved < 5 {
		t.Errorf("policy solved %d of 10 empty episodes, want at least 5", solved)
	}
}
