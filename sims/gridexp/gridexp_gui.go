// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/ccnlab/minigrid/minigrid"
	"github.com/emer/empi/mpi"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/etview"
	"github.com/goki/gi/colormap"
	"github.com/goki/gi/gi"
	"github.com/goki/gi/gist"
	"github.com/goki/gi/giv"
	"github.com/goki/ki/ki"
	"github.com/goki/mat32"
)

// ConfigWorldGui configures all the world view GUI elements
func (ss *Sim) ConfigWorldGui() *gi.Window {
	ev := &ss.Env
	ss.Trace = ev.WorldMap.Clone().(*etensor.Int)
	vs := ev.AgentViewSize
	ss.ObsTypes = &etensor.Int{}
	ss.ObsTypes.SetShape([]int{vs, vs}, nil, []string{"Y", "X"})

	width := 1600
	height := 1200

	win := gi.NewMainWindow("gridexp", "MiniGrid World", width, height)
	ss.WorldWin = win

	vp := win.WinViewport2D()
	updt := vp.UpdateStart()

	mfr := win.SetMainFrame()

	tbar := gi.AddNewToolBar(mfr, "tbar")
	tbar.SetStretchMaxWidth()

	split := gi.AddNewSplitView(mfr, "split")
	split.Dim = mat32.X
	split.SetStretchMax()

	sv := giv.AddNewStructView(split, "sv")
	sv.SetStruct(ss)

	tv := gi.AddNewTabView(split, "tv")
	ss.WorldTabs = tv

	wg := tv.AddNewTab(etview.KiT_TensorGrid, "World").(*etview.TensorGrid)
	ss.WorldView = wg
	wg.SetTensor(ss.Trace)
	ss.ConfigWorldView(wg)

	og := tv.AddNewTab(etview.KiT_TensorGrid, "Agent View").(*etview.TensorGrid)
	ss.ObsView = og
	og.SetTensor(ss.ObsTypes)
	ss.ConfigWorldView(og)

	split.SetSplits(.3, .7)

	tbar.AddAction(gi.ActOpts{Label: "Init", Icon: "reset", Tooltip: "Re-init env on current task.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.Init()
		ss.UpdateWorldGui()
		vp.SetFullReRender()
	})

	tbar.AddAction(gi.ActOpts{Label: "Left", Icon: "wedge-left", Tooltip: "Rotate Left", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.ManualAct(minigrid.Left)
		vp.SetFullReRender()
	})

	tbar.AddAction(gi.ActOpts{Label: "Right", Icon: "wedge-right", Tooltip: "Rotate Right", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.ManualAct(minigrid.Right)
		vp.SetFullReRender()
	})

	tbar.AddAction(gi.ActOpts{Label: "Forward", Icon: "wedge-up", Tooltip: "Step Forward", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.ManualAct(minigrid.Forward)
		vp.SetFullReRender()
	})

	tbar.AddSeparator("sep-obj")

	tbar.AddAction(gi.ActOpts{Label: "Pickup", Icon: "plus", Tooltip: "Pick up object in front", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.ManualAct(minigrid.Pickup)
		vp.SetFullReRender()
	})

	tbar.AddAction(gi.ActOpts{Label: "Drop", Icon: "minus", Tooltip: "Drop carried object in front", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.ManualAct(minigrid.Drop)
		vp.SetFullReRender()
	})

	tbar.AddAction(gi.ActOpts{Label: "Toggle", Icon: "update", Tooltip: "Toggle door or open box in front", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.ManualAct(minigrid.Toggle)
		vp.SetFullReRender()
	})

	tbar.AddSeparator("sep-run")

	tbar.AddAction(gi.ActOpts{Label: "Policy Step", Icon: "step-fwd", Tooltip: "Take one action from the scripted policy", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.PolicyStep()
		vp.SetFullReRender()
	})

	tbar.AddAction(gi.ActOpts{Label: "Episode", Icon: "fast-fwd", Tooltip: "Run scripted policy to end of episode", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.EpisodeRun()
		vp.SetFullReRender()
	})

	vp.UpdateEndNoSig(updt)

	// main menu
	appnm := gi.AppName()
	mmen := win.MainMenu
	mmen.ConfigMenus([]string{appnm, "File", "Edit", "Window"})

	amen := win.MainMenu.ChildByName(appnm, 0).(*gi.Action)
	amen.Menu.AddAppMenu(win)

	emen := win.MainMenu.ChildByName("Edit", 1).(*gi.Action)
	emen.Menu.AddCopyCutPaste(win)

	win.MainMenuUpdated()
	ss.UpdateWorldGui()
	return win
}

func (ss *Sim) ConfigWorldView(tg *etview.TensorGrid) {
	// indexed by cell type: Unseen .. Agent
	typeColors := []string{"white", "lightgrey", "black", "gray", "brown", "yellow", "blue", "orange", "green", "red", "navy"}
	cnm := "MiniGridColors"
	cm, ok := colormap.AvailMaps[cnm]
	if !ok {
		cm = &colormap.Map{}
		cm.Name = cnm
		cm.Indexed = true
		nc := int(minigrid.TypesN)
		cm.Colors = make([]gist.Color, nc)
		cm.NoColor = gist.Black
		for i, c := range typeColors {
			cm.Colors[i].SetString(c, nil)
		}
		colormap.AvailMaps[cnm] = cm
	}
	tg.Disp.Defaults()
	tg.Disp.ColorMap = giv.ColorMapName(cnm)
	tg.Disp.GridFill = 1
	tg.SetStretchMax()
}

func (ss *Sim) UpdateWorldGui() {
	if ss.WorldWin == nil {
		return
	}
	ev := &ss.Env
	ss.Trace.CopyFrom(ev.WorldMap)

	vs := ev.AgentViewSize
	for y := 0; y < vs; y++ {
		for x := 0; x < vs; x++ {
			ss.ObsTypes.Set([]int{y, x}, ev.Image.Value([]int{x, y, 0}))
		}
	}

	updt := ss.WorldTabs.UpdateStart()
	ss.WorldView.UpdateSig()
	ss.ObsView.UpdateSig()
	ss.WorldTabs.UpdateEnd(updt)
}

// ManualAct takes one action from the toolbar, starting a fresh episode
// first if the current one is done.
func (ss *Sim) ManualAct(act minigrid.Actions) {
	ev := &ss.Env
	if ev.Done {
		ev.NextEpisode()
	} else {
		ev.TakeAct(act)
		ev.Step()
	}
	ss.UpdateWorldGui()
}

func (ss *Sim) PolicyStep() {
	ss.ManualAct(ss.Policy.Act(&ss.Env))
}

func (ss *Sim) EpisodeRun() {
	ss.IsRunning = true
	rew := ss.RunEpisode()
	ss.LogEpisode(ss.EpsLog, rew)
	ss.IsRunning = false
	ss.UpdateWorldGui()
	mpi.Printf("episode %d: steps: %d  reward: %g\n", ss.Env.Epoch.Cur, ss.Env.StepCount, rew)
}
