// Copyright (c) 2023, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minigrid

import (
	"fmt"

	"github.com/emer/etable/etensor"
)

// Grid is the rectangular world grid: Ht x Wd cells of WorldObj,
// stored row-major by y, addressed [y][x].
//
//  0 -------------> x (Wd)
//  |
//  |    cell at (x, y)
//  |
//  v
//  y (Ht)
//
// All coordinates used to index it must satisfy 0 <= x < Wd, 0 <= y < Ht --
// generators surround the interior with walls so valid agent actions can
// never index out of bounds.
type Grid struct {
	Wd    int        `desc:"width of grid (x size)"`
	Ht    int        `desc:"height of grid (y size)"`
	Cells []WorldObj `view:"-" desc:"row-major cell storage, y*Wd+x"`
}

// SetShape allocates the grid at the given size, with all cells Empty.
// Unseen is an observation-only code and never appears in the grid.
func (gd *Grid) SetShape(wd, ht int) {
	gd.Wd = wd
	gd.Ht = ht
	gd.Cells = make([]WorldObj, wd*ht)
	for i := range gd.Cells {
		gd.Cells[i] = NewObj(Empty)
	}
}

// InBounds returns true if x, y is a valid cell coordinate.
func (gd *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < gd.Wd && y >= 0 && y < gd.Ht
}

// At returns a pointer to the cell at x, y.  Out-of-bounds access is a
// programming error and panics.
func (gd *Grid) At(x, y int) *WorldObj {
	if !gd.InBounds(x, y) {
		panic(fmt.Sprintf("minigrid.Grid: coordinate (%d, %d) out of bounds for %d x %d grid", x, y, gd.Wd, gd.Ht))
	}
	return &gd.Cells[y*gd.Wd+x]
}

// Set sets the cell at x, y to given object.
func (gd *Grid) Set(x, y int, ob WorldObj) {
	*gd.At(x, y) = ob
}

// WallHoriz draws a horizontal run of walls at row y from x0 to x1 inclusive.
func (gd *Grid) WallHoriz(y, x0, x1 int) {
	for x := x0; x <= x1; x++ {
		gd.Set(x, y, NewColorObj(Wall, Grey))
	}
}

// WallVert draws a vertical run of walls at column x from y0 to y1 inclusive.
func (gd *Grid) WallVert(x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		gd.Set(x, y, NewColorObj(Wall, Grey))
	}
}

// WallRect draws the outline of a wall rectangle with corners
// (x0, y0) and (x1, y1) inclusive.
func (gd *Grid) WallRect(x0, y0, x1, y1 int) {
	gd.WallHoriz(y0, x0, x1)
	gd.WallHoriz(y1, x0, x1)
	gd.WallVert(x0, y0, y1)
	gd.WallVert(x1, y0, y1)
}

// TypeMap writes the full grid of type codes into tm, shaped [Ht, Wd],
// for display and whole-world state queries.
func (gd *Grid) TypeMap(tm *etensor.Int) {
	tm.SetShape([]int{gd.Ht, gd.Wd}, nil, []string{"Y", "X"})
	for y := 0; y < gd.Ht; y++ {
		for x := 0; x < gd.Wd; x++ {
			tm.Set([]int{y, x}, int(gd.Cells[y*gd.Wd+x].Type))
		}
	}
}
