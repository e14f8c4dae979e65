// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pool runs a batch of independent minigrid environment
// instances with one synchronized Step call across all of them.  Each
// instance's state (including its random source) is private to it, so
// instances step concurrently without locking; the pool owns lifecycle
// and auto-resets finished episodes.
package pool

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/ccnlab/minigrid/minigrid"
	"github.com/emer/etable/etensor"
)

// Pool is a fixed-size batch of environment instances.
type Pool struct {
	Envs     []*minigrid.World `desc:"independent environment instances"`
	Obs      []*etensor.Int    `desc:"per-instance observation tensors, rewritten every Step"`
	Rewards  []float32         `desc:"per-instance reward from the last Step"`
	Dones    []bool            `desc:"per-instance episode-terminated flags from the last Step"`
	NWorkers int               `desc:"number of concurrent stepping workers"`
}

// New creates a pool of n instances of the named task.  Instance i gets
// its own random source seeded seed+i, so a pool is deterministic given
// (task, n, seed) regardless of worker scheduling.  workers <= 0 uses
// one worker per instance.
func New(task string, n int, seed int64, workers int) (*Pool, error) {
	if n <= 0 {
		return nil, fmt.Errorf("pool.New: need at least 1 instance, got %d", n)
	}
	if workers <= 0 || workers > n {
		workers = n
	}
	p := &Pool{
		Envs:     make([]*minigrid.World, n),
		Obs:      make([]*etensor.Int, n),
		Rewards:  make([]float32, n),
		Dones:    make([]bool, n),
		NWorkers: workers,
	}
	for i := 0; i < n; i++ {
		ev := &minigrid.World{}
		ev.Defaults()
		if err := ev.ConfigTask(task); err != nil {
			return nil, err
		}
		ev.Nm = fmt.Sprintf("%s_%d", task, i)
		ev.Rand = rand.New(rand.NewSource(seed + int64(i)))
		ev.Init(0)
		p.Envs[i] = ev
		p.Obs[i] = &etensor.Int{}
		ev.RenderObservation(p.Obs[i])
	}
	return p, nil
}

// N returns the number of instances.
func (p *Pool) N() int {
	return len(p.Envs)
}

// Step applies one action per instance, in parallel across NWorkers,
// then refreshes Obs, Rewards and Dones.  A slot whose episode finished
// on the previous Step is auto-reset instead: its action is ignored and
// its observation is the new episode's initial view, with zero reward.
func (p *Pool) Step(acts []minigrid.Actions) {
	if len(acts) != len(p.Envs) {
		panic(fmt.Sprintf("pool.Pool: Step got %d actions for %d instances", len(acts), len(p.Envs)))
	}
	var wg sync.WaitGroup
	idx := make(chan int)
	for w := 0; w < p.NWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				p.stepOne(i, acts[i])
			}
		}()
	}
	for i := range p.Envs {
		idx <- i
	}
	close(idx)
	wg.Wait()
}

func (p *Pool) stepOne(i int, act minigrid.Actions) {
	ev := p.Envs[i]
	if p.Dones[i] {
		ev.NextEpisode()
		p.Rewards[i] = 0
		p.Dones[i] = false
	} else {
		p.Rewards[i] = ev.TakeAct(act)
		ev.Step()
		p.Dones[i] = ev.Done
	}
	ev.RenderObservation(p.Obs[i])
}

// Reset restarts every instance's episode and refreshes observations.
func (p *Pool) Reset() {
	for i, ev := range p.Envs {
		ev.ResetEpisode()
		p.Rewards[i] = 0
		p.Dones[i] = false
		ev.RenderObservation(p.Obs[i])
	}
}
