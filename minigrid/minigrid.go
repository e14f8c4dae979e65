// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minigrid implements a deterministic single-agent grid-world
// environment: discrete actions mutate agent / world state, a scalar
// reward is computed, and a partially-observable egocentric view of the
// grid is rendered into etensor observation tensors.
package minigrid

import (
	"fmt"
	"math/rand"

	"github.com/emer/emergent/env"
	"github.com/emer/emergent/evec"
	"github.com/emer/emergent/popcode"
	"github.com/emer/etable/etensor"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// DirVecs are the unit offsets for each heading: East, South, West, North.
var DirVecs = []evec.Vec2i{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}

// ActionsMap maps action names to action codes, for the env.Env
// string-based Action interface.
var ActionsMap map[string]Actions

func init() {
	ActionsMap = make(map[string]Actions, ActionsN)
	for a := Left; a < ActionsN; a++ {
		ActionsMap[a.String()] = a
	}
}

// World is a grid-world environment instance.  Each instance's state is
// private to it: the external runner achieves parallelism by holding one
// independent World per worker, with no shared mutable state between them.
// The random source is externally owned -- set Rand before Init, and seed
// it per whatever reuse-across-episodes policy the runner wants.
type World struct {
	Nm   string `desc:"name of this environment"`
	Dsc  string `desc:"description of this environment"`
	Task string `inactive:"+" desc:"task id this world was configured from, if any"`

	Size          evec.Vec2i `desc:"width and height of the grid"`
	MaxSteps      int        `desc:"episode step budget -- reaching it forces Done (truncation)"`
	AgentViewSize int        `desc:"width and height of the egocentric view window -- must be odd"`
	SeeThruWalls  bool       `desc:"if true, the visibility mask is skipped and every view cell is visible"`
	AgentStartPos evec.Vec2i `desc:"fixed agent start position, or -1,-1 for random placement"`
	AgentStartDir int        `desc:"fixed agent start direction 0-3, or -1 for random"`

	GenFunc func(ev *World) `view:"-" desc:"grid generator: populates Grid and sets the initial agent position / direction before episode invariant checks run"`
	Rand    *rand.Rand      `view:"-" desc:"externally-owned uniform random source -- must be set before Init"`

	Grid       Grid       `desc:"world grid"`
	AgentPos   evec.Vec2i `inactive:"+" desc:"current agent position (x, y)"`
	AgentDir   int        `inactive:"+" desc:"current agent heading: 0=East 1=South 2=West 3=North"`
	Carrying   WorldObj   `inactive:"+" desc:"carried object, Empty when carrying nothing"`
	StepCount  int        `inactive:"+" desc:"steps taken in current episode"`
	Done       bool       `inactive:"+" desc:"episode terminated (goal, lava, or truncation)"`
	LastAct    Actions    `inactive:"+" desc:"last action taken, -1 before first step"`
	LastReward float32    `inactive:"+" desc:"reward from last action"`

	Image    *etensor.Int    `view:"no-inline" desc:"egocentric observation [view, view, 3] of (type, color, state) codes"`
	WorldMap *etensor.Int    `view:"no-inline" desc:"full grid type codes with agent marker, for viewing"`
	PosMap   etensor.Float32 `view:"no-inline" desc:"population-coded agent position"`
	DirMap   etensor.Float32 `view:"no-inline" desc:"1-hot agent heading"`
	ActMap   etensor.Float32 `view:"no-inline" desc:"1-hot last action"`
	PosCode  popcode.TwoD    `desc:"population code for agent position"`

	Run   env.Ctr `view:"inline" desc:"current run of model as provided during Init"`
	Epoch env.Ctr `view:"inline" desc:"increments over episodes"`
	Trial env.Ctr `view:"inline" desc:"steps within episode"`
}

var KiT_World = kit.Types.AddType(&World{}, nil)

func (ev *World) Name() string { return ev.Nm }
func (ev *World) Desc() string { return ev.Dsc }

// Defaults sets default configuration: the 5x5 empty task with a fixed
// start, 7-cell view, opaque walls.
func (ev *World) Defaults() {
	ev.Nm = "MiniGrid"
	ev.Dsc = "single-agent grid world with egocentric partial observability"
	ev.Size.Set(5, 5)
	ev.MaxSteps = 100
	ev.AgentViewSize = 7
	ev.SeeThruWalls = false
	ev.AgentStartPos.Set(1, 1)
	ev.AgentStartDir = East
	ev.GenFunc = (*World).GenEmpty
}

// Validate checks the configuration.
func (ev *World) Validate() error {
	if ev.Size.IsNil() {
		return fmt.Errorf("minigrid.World: %v has size == 0 -- need to Defaults or Config", ev.Nm)
	}
	if ev.AgentViewSize < 3 || ev.AgentViewSize%2 == 0 {
		return fmt.Errorf("minigrid.World: %v AgentViewSize must be odd and >= 3, got %d", ev.Nm, ev.AgentViewSize)
	}
	if ev.MaxSteps <= 0 {
		return fmt.Errorf("minigrid.World: %v MaxSteps must be positive, got %d", ev.Nm, ev.MaxSteps)
	}
	if ev.Rand == nil {
		return fmt.Errorf("minigrid.World: %v has no Rand source -- the runner owns seeding and must set it", ev.Nm)
	}
	return nil
}

// Init restarts the environment for given run: resets counters, generates
// the grid, and validates the initial episode invariants.
func (ev *World) Init(run int) {
	if ev.Rand == nil {
		panic(fmt.Sprintf("minigrid.World: %v Init with nil Rand -- set the externally-owned random source first", ev.Nm))
	}
	if err := ev.Validate(); err != nil {
		panic(err.Error())
	}
	ev.Run.Scale = env.Run
	ev.Epoch.Scale = env.Epoch
	ev.Trial.Scale = env.Trial
	ev.Run.Init()
	ev.Epoch.Init()
	ev.Trial.Init()
	ev.Run.Cur = run
	ev.Trial.Max = ev.MaxSteps

	vs := ev.AgentViewSize
	ev.Image = &etensor.Int{}
	ev.Image.SetShape([]int{vs, vs, 3}, nil, []string{"X", "Y", "Chan"})
	ev.WorldMap = &etensor.Int{}
	ev.PosMap.SetShape([]int{ev.Size.Y, ev.Size.X}, nil, []string{"Y", "X"})
	ev.DirMap.SetShape([]int{4}, nil, []string{"Dir"})
	ev.ActMap.SetShape([]int{int(ActionsN)}, nil, []string{"Action"})

	ev.PosCode = popcode.TwoD{}
	ev.PosCode.Code = popcode.GaussBump
	ev.PosCode.Min.Set(0, 0)
	ev.PosCode.Max.Set(float32(ev.Size.X), float32(ev.Size.Y))
	ev.PosCode.Sigma.Set(0.05, 0.05)
	ev.PosCode.Thr = 0.1
	ev.PosCode.Clip = true
	ev.PosCode.MinSum = 0.2

	ev.ResetEpisode()
}

// ResetEpisode regenerates the grid via GenFunc and resets all episode
// state.  The generator must leave the agent on a cell that permits
// occupancy -- a violation aborts, since continuing would produce a
// meaningless simulation.
func (ev *World) ResetEpisode() {
	if ev.GenFunc == nil {
		panic(fmt.Sprintf("minigrid.World: %v has no GenFunc grid generator", ev.Nm))
	}
	ev.AgentPos.Set(-1, -1)
	ev.AgentDir = ev.AgentStartDir
	ev.GenFunc(ev)
	if ev.AgentPos.X < 0 || ev.AgentPos.Y < 0 {
		panic(fmt.Sprintf("minigrid.World: %v generator left agent position unset: %v", ev.Nm, ev.AgentPos))
	}
	if ev.AgentDir < 0 || ev.AgentDir > 3 {
		panic(fmt.Sprintf("minigrid.World: %v agent direction %d out of range 0-3", ev.Nm, ev.AgentDir))
	}
	if !ev.Grid.At(ev.AgentPos.X, ev.AgentPos.Y).CanOverlap() {
		panic(fmt.Sprintf("minigrid.World: %v agent start cell %v does not permit occupancy", ev.Nm, ev.AgentPos))
	}
	ev.StepCount = 0
	ev.Done = false
	ev.Carrying = NewObj(Empty)
	ev.LastAct = -1
	ev.LastReward = 0
	ev.Trial.Init()
	ev.Trial.Max = ev.MaxSteps
	ev.RenderState()
}

// NextEpisode advances the episode counter and resets for a new episode.
func (ev *World) NextEpisode() {
	ev.Epoch.Incr()
	ev.ResetEpisode()
}

// String returns the current state as a string
func (ev *World) String() string {
	act := "None"
	if ev.LastAct >= 0 && ev.LastAct < ActionsN {
		act = ev.LastAct.String()
	}
	return fmt.Sprintf("Epc_%d_Stp_%d_Pos_%d_%d_Dir_%s_Act_%s", ev.Epoch.Cur, ev.StepCount, ev.AgentPos.X, ev.AgentPos.Y, DirNames[ev.AgentDir], act)
}

// FwdPos returns the cell coordinate immediately ahead of the agent.
// The forward cell lying outside grid bounds is a fatal invariant: the
// generator must surround the interior with non-traversable boundary.
func (ev *World) FwdPos() evec.Vec2i {
	if ev.AgentDir < 0 || ev.AgentDir > 3 {
		panic(fmt.Sprintf("minigrid.World: %v agent direction %d out of range 0-3", ev.Nm, ev.AgentDir))
	}
	dv := DirVecs[ev.AgentDir]
	fp := evec.Vec2i{X: ev.AgentPos.X + dv.X, Y: ev.AgentPos.Y + dv.Y}
	if !ev.Grid.InBounds(fp.X, fp.Y) {
		panic(fmt.Sprintf("minigrid.World: %v forward cell %v out of bounds -- generator failed to wall the interior", ev.Nm, fp))
	}
	return fp
}

// TakeAct applies one action, mutating agent and grid state, and returns
// the reward.  Call once per unit of simulated time, while not Done.
// Invalid gameplay (pickup while carrying, toggling a locked door without
// its key, forward into a blocked cell) is a no-op with zero reward;
// an unrecognized action code is a caller contract violation and panics.
func (ev *World) TakeAct(act Actions) float32 {
	ev.StepCount++
	var reward float32
	fp := ev.FwdPos()
	fwd := ev.Grid.At(fp.X, fp.Y)
	switch act {
	case Left:
		ev.AgentDir--
		if ev.AgentDir < 0 {
			ev.AgentDir += 4
		}
	case Right:
		ev.AgentDir = (ev.AgentDir + 1) % 4
	case Forward:
		if fwd.CanOverlap() {
			ev.AgentPos = fp
		}
		switch fwd.Type {
		case Goal:
			ev.Done = true
			reward = 1 - 0.9*(float32(ev.StepCount)/float32(ev.MaxSteps))
		case Lava:
			ev.Done = true
		}
	case Pickup:
		if ev.Carrying.Type == Empty && fwd.CanPickup() {
			ev.Carrying = *fwd
			*fwd = NewObj(Empty)
		}
	case Drop:
		if ev.Carrying.Type != Empty && fwd.Type == Empty {
			*fwd = ev.Carrying
			ev.Carrying = NewObj(Empty)
		}
	case Toggle:
		ev.toggleFwd(fwd)
	case Done:
		// explicit no-op: the agent chose to end
	default:
		panic(fmt.Sprintf("minigrid.World: %v invalid action code %d", ev.Nm, act))
	}
	if ev.StepCount >= ev.MaxSteps {
		ev.Done = true
	}
	ev.LastAct = act
	ev.LastReward = reward
	ev.RenderState()
	return reward
}

// toggleFwd applies the Toggle action to the forward cell.
func (ev *World) toggleFwd(fwd *WorldObj) {
	switch fwd.Type {
	case Door:
		if fwd.Locked {
			if ev.Carrying.Type == Key && ev.Carrying.Color == fwd.Color {
				fwd.Open = true // Locked stays set: Open alone gates traversal
			}
		} else {
			fwd.Open = !fwd.Open
		}
	case Box:
		if fwd.Contains != nil {
			// replacing the cell with the contents copies the nested
			// Contains pointer, preserving any deeper nesting
			*fwd = *fwd.Contains
		} else {
			*fwd = NewObj(Empty)
		}
	}
}

// PlaceObject returns a uniformly-random free cell in the inclusive
// rectangle (x0, y0) - (x1, y1), where free means the cell is Empty and
// not the agent's position.  An end coordinate of -1 extends to the grid
// edge.  Rejection sampling: the rectangle must contain at least one
// valid cell, else this loops forever -- feasibility is a caller contract.
func (ev *World) PlaceObject(x0, y0, x1, y1 int) evec.Vec2i {
	if x1 == -1 {
		x1 = ev.Grid.Wd - 1
	}
	if y1 == -1 {
		y1 = ev.Grid.Ht - 1
	}
	if x0 > x1 || y0 > y1 {
		panic(fmt.Sprintf("minigrid.World: %v PlaceObject empty rectangle (%d,%d)-(%d,%d)", ev.Nm, x0, y0, x1, y1))
	}
	for {
		x := x0 + ev.Rand.Intn(x1-x0+1)
		y := y0 + ev.Rand.Intn(y1-y0+1)
		if ev.Grid.At(x, y).Type != Empty {
			continue
		}
		if ev.AgentPos.X == x && ev.AgentPos.Y == y {
			continue
		}
		return evec.Vec2i{X: x, Y: y}
	}
}

// PlaceAgent places the agent on a random free cell in the given
// rectangle (same conventions as PlaceObject), temporarily marking the
// agent position invalid so its prior cell can be reused, and draws a
// random direction if AgentStartDir is the -1 sentinel.
func (ev *World) PlaceAgent(x0, y0, x1, y1 int) {
	ev.AgentPos.Set(-1, -1)
	ev.AgentPos = ev.PlaceObject(x0, y0, x1, y1)
	if ev.AgentStartDir == -1 {
		ev.AgentDir = ev.Rand.Intn(4)
	} else {
		ev.AgentDir = ev.AgentStartDir
	}
}

// Step advances the env.Env step counters -- the action itself is applied
// by TakeAct / Action, in the standard emergent act-then-step pattern.
func (ev *World) Step() bool {
	ev.Epoch.Same()
	ev.Trial.Incr()
	return true
}

func (ev *World) States() env.Elements {
	vs := ev.AgentViewSize
	els := env.Elements{
		{Name: "Image", Shape: []int{vs, vs, 3}, DimNames: []string{"X", "Y", "Chan"}},
		{Name: "World", Shape: []int{ev.Size.Y, ev.Size.X}, DimNames: []string{"Y", "X"}},
		{Name: "PosMap", Shape: []int{ev.Size.Y, ev.Size.X}, DimNames: []string{"Y", "X"}},
		{Name: "DirMap", Shape: []int{4}, DimNames: []string{"Dir"}},
		{Name: "ActMap", Shape: []int{int(ActionsN)}, DimNames: []string{"Action"}},
	}
	return els
}

func (ev *World) State(element string) etensor.Tensor {
	switch element {
	case "Image":
		return ev.Image
	case "World":
		return ev.WorldMap
	case "PosMap":
		return &ev.PosMap
	case "DirMap":
		return &ev.DirMap
	case "ActMap":
		return &ev.ActMap
	default:
		return nil
	}
}

func (ev *World) Actions() env.Elements {
	els := env.Elements{
		{Name: "Action", Shape: []int{1}},
	}
	return els
}

// Action applies the named action -- an unrecognized name is a caller
// contract violation.
func (ev *World) Action(element string, input etensor.Tensor) {
	act, ok := ActionsMap[element]
	if !ok {
		panic(fmt.Sprintf("minigrid.World: %v action not recognized: %s", ev.Nm, element))
	}
	ev.TakeAct(act)
}

func (ev *World) Counters() []env.TimeScales {
	return []env.TimeScales{env.Run, env.Epoch, env.Trial}
}

func (ev *World) Counter(scale env.TimeScales) (cur, prv int, chg bool) {
	switch scale {
	case env.Run:
		return ev.Run.Query()
	case env.Epoch:
		return ev.Epoch.Query()
	case env.Trial:
		return ev.Trial.Query()
	}
	return -1, -1, false
}

// RenderState renders all current state tensors: the egocentric Image,
// the WorldMap display grid, and the position / direction / action maps.
func (ev *World) RenderState() {
	ev.RenderObservation(ev.Image)
	ev.Grid.TypeMap(ev.WorldMap)
	ev.WorldMap.Set([]int{ev.AgentPos.Y, ev.AgentPos.X}, int(Agent))
	ev.PosCode.Encode(&ev.PosMap, mat32.Vec2{X: float32(ev.AgentPos.X), Y: float32(ev.AgentPos.Y)}, false)
	ev.DirMap.SetZeros()
	ev.DirMap.SetFloat1D(ev.AgentDir, 1)
	ev.ActMap.SetZeros()
	if ev.LastAct >= 0 && ev.LastAct < ActionsN {
		ev.ActMap.SetFloat1D(int(ev.LastAct), 1)
	}
}

// Compile-time check that implements Env interface
var _ env.Env = (*World)(nil)
