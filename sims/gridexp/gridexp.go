// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gridexp runs scripted-policy episodes in minigrid task worlds,
// logging per-episode steps and rewards, with an optional GUI world
// viewer and manual control.  Run with no args for the GUI; any arg
// (e.g. -nogui) runs headless.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/ccnlab/minigrid/minigrid"
	"github.com/emer/empi/mpi"
	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/etview"
	"github.com/goki/gi/gi"
	"github.com/goki/gi/gimain"
	"github.com/goki/ki/kit"
)

func main() {
	gimain.Main(func() {
		mainrun()
	})
}

func mainrun() {
	TheSim.New()
	TheSim.Config()

	if len(os.Args) > 1 {
		TheSim.CmdArgs() // simple assumption is that any args = no gui
	} else {
		TheSim.Init()
		win := TheSim.ConfigWorldGui()
		win.StartEventLoop()
	}
}

// Sim holds the environment, the scripted policy driving it, and the
// episode logs.
type Sim struct {
	Env      minigrid.World  `desc:"the grid world environment"`
	Policy   minigrid.Policy `view:"inline" desc:"scripted controller driving episodes"`
	Task     string          `desc:"task id to run -- see minigrid.TaskList"`
	Episodes int             `desc:"number of episodes to run"`
	Seed     int64           `desc:"base random seed -- mpi rank is added"`
	EpsLog   *etable.Table   `view:"no-inline" desc:"one row per episode: steps, reward, success"`

	// internal state - view:"-"
	EpsFile   *os.File           `view:"-" desc:"log file, or nil"`
	NoGui     bool               `view:"-" desc:"if true, runing in no GUI mode"`
	IsRunning bool               `view:"-" desc:"true if sim is running"`
	Trace     *etensor.Int       `view:"no-inline" desc:"world type map copy shown in the GUI"`
	ObsTypes  *etensor.Int       `view:"no-inline" desc:"type channel of the egocentric view, for the GUI"`
	WorldWin  *gi.Window         `view:"-" desc:"world viewer window"`
	WorldTabs *gi.TabView        `view:"-" desc:"world viewer tabs"`
	WorldView *etview.TensorGrid `view:"-" desc:"world grid view"`
	ObsView   *etview.TensorGrid `view:"-" desc:"observation grid view"`
}

var KiT_Sim = kit.Types.AddType(&Sim{}, nil)

// TheSim is the overall state for this simulation
var TheSim Sim

// New creates new blank elements and initializes defaults
func (ss *Sim) New() {
	ss.EpsLog = &etable.Table{}
}

// Config configures all the elements using the standard functions
func (ss *Sim) Config() {
	ss.Task = "MiniGrid-Empty-8x8-v0"
	ss.Episodes = 100
	ss.Seed = 1
	ss.Env.Defaults()
	ss.Policy.Defaults()
	ss.ConfigEpsLog(ss.EpsLog)
}

// Init configures the env for the current task and seeds everything --
// the env's random source is owned here, per-rank under mpi.
func (ss *Sim) Init() {
	if err := ss.Env.ConfigTask(ss.Task); err != nil {
		log.Fatal(err)
	}
	seed := ss.Seed + int64(mpi.WorldRank())
	rand.Seed(seed) // policy randomness
	ss.Env.Rand = rand.New(rand.NewSource(seed))
	ss.Env.Init(0)
	ss.Policy.Defaults()
	ss.EpsLog.SetNumRows(0)
}

// RunEpisode drives one episode with the scripted policy, returning the
// total reward.
func (ss *Sim) RunEpisode() float32 {
	ev := &ss.Env
	if ev.Done {
		ev.NextEpisode()
	}
	var rew float32
	for !ev.Done {
		act := ss.Policy.Act(ev)
		rew += ev.TakeAct(act)
		ev.Step()
	}
	return rew
}

// Run runs the configured number of episodes, logging each.
func (ss *Sim) Run() {
	for epi := 0; epi < ss.Episodes; epi++ {
		rew := ss.RunEpisode()
		ss.LogEpisode(ss.EpsLog, rew)
	}
	ss.Summary()
}

// LogEpisode adds a row for the episode that just finished.
func (ss *Sim) LogEpisode(dt *etable.Table, rew float32) {
	row := dt.Rows
	dt.SetNumRows(row + 1)
	ev := &ss.Env

	dt.SetCellFloat("Run", row, float64(ev.Run.Cur))
	dt.SetCellFloat("Episode", row, float64(ev.Epoch.Cur))
	dt.SetCellFloat("Steps", row, float64(ev.StepCount))
	dt.SetCellFloat("Reward", row, float64(rew))
	success := 0.0
	if rew > 0 {
		success = 1
	}
	dt.SetCellFloat("Success", row, success)

	if ss.EpsFile != nil {
		if row == 0 {
			dt.WriteCSVHeaders(ss.EpsFile, etable.Tab)
		}
		dt.WriteCSVRow(ss.EpsFile, row, etable.Tab)
	}
}

func (ss *Sim) ConfigEpsLog(dt *etable.Table) {
	dt.SetMetaData("name", "EpsLog")
	dt.SetMetaData("desc", "one row per episode")
	dt.SetMetaData("read-only", "true")

	sch := etable.Schema{
		{"Run", etensor.FLOAT64, nil, nil},
		{"Episode", etensor.FLOAT64, nil, nil},
		{"Steps", etensor.FLOAT64, nil, nil},
		{"Reward", etensor.FLOAT64, nil, nil},
		{"Success", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

// Summary prints aggregate stats over the logged episodes.
func (ss *Sim) Summary() {
	if ss.EpsLog.Rows == 0 {
		return
	}
	ix := etable.NewIdxView(ss.EpsLog)
	mpi.Printf("%s: episodes: %d  mean steps: %.4g  mean reward: %.4g  success: %.4g\n",
		ss.Task, ss.EpsLog.Rows, agg.Mean(ix, "Steps")[0], agg.Mean(ix, "Reward")[0], agg.Mean(ix, "Success")[0])
}

// LogFileName returns the log file name for given log, tagged by mpi rank.
func (ss *Sim) LogFileName(lognm string) string {
	return fmt.Sprintf("gridexp_%s_%s_%d.tsv", ss.Task, lognm, mpi.WorldRank())
}

// CmdArgs runs headless from command-line args.
func (ss *Sim) CmdArgs() {
	ss.NoGui = true
	var nogui bool
	var saveEpsLog bool
	flag.StringVar(&ss.Task, "task", ss.Task, "task id to run -- see minigrid.TaskList for the registry")
	flag.IntVar(&ss.Episodes, "episodes", ss.Episodes, "number of episodes to run")
	flag.Int64Var(&ss.Seed, "seed", 1, "base random seed -- mpi rank is added per process")
	flag.BoolVar(&saveEpsLog, "epslog", true, "if true, save per-episode log to file")
	flag.BoolVar(&nogui, "nogui", true, "if not passing any other args and want to run nogui, use nogui")
	flag.Parse()
	ss.Init()

	if saveEpsLog {
		var err error
		fnm := ss.LogFileName("eps")
		ss.EpsFile, err = os.Create(fnm)
		if err != nil {
			log.Println(err)
			ss.EpsFile = nil
		} else {
			mpi.Printf("Saving episode log to: %v\n", fnm)
			defer ss.EpsFile.Close()
		}
	}
	mpi.Printf("Running %d episodes of %s\n", ss.Episodes, ss.Task)
	ss.Run()
}
