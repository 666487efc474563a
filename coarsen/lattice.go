package coarsen

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/utils"
)

/*
lattice is the regular grid a voxel mesh lives on. Dims counts cells per axis;
points run from 0 to Dims inclusive.
*/
type lattice struct {
	Min     r3.Vec
	Spacing r3.Vec
	Dims    [3]int
}

func newLattice(m *model.Mesh) (l lattice, err error) {
	if l.Spacing, err = m.VoxelSpacing(); err != nil {
		return
	}
	b := m.Bounds()
	l.Min = b.Min
	extent := r3.Sub(b.Max, b.Min)
	l.Dims = [3]int{
		int(0.5 + extent.X/l.Spacing.X),
		int(0.5 + extent.Y/l.Spacing.Y),
		int(0.5 + extent.Z/l.Spacing.Z),
	}
	return
}

// position returns the nearest lattice point to p as (i,j,k).
func (l lattice) position(p r3.Vec) (i, j, k int) {
	i = int(0.5 + (p.X-l.Min.X)/l.Spacing.X)
	j = int(0.5 + (p.Y-l.Min.Y)/l.Spacing.Y)
	k = int(0.5 + (p.Z-l.Min.Z)/l.Spacing.Z)
	return
}

// coarse is the lattice with half the resolution covering the same origin.
func (l lattice) coarse() (c lattice) {
	c.Min = l.Min
	c.Spacing = r3.Scale(2, l.Spacing)
	for n := 0; n < 3; n++ {
		c.Dims[n] = (l.Dims[n] + 1) / 2
	}
	return
}

func (l lattice) cellGrid() *utils.IndexGrid {
	return utils.NewIndexGrid(l.Dims[0], l.Dims[1], l.Dims[2])
}

func (l lattice) pointGrid() *utils.IndexGrid {
	return utils.NewIndexGrid(l.Dims[0]+1, l.Dims[1]+1, l.Dims[2]+1)
}

// place records id at the lattice position of p, failing when p is off the grid.
func place(g *utils.IndexGrid, l lattice, p r3.Vec, id int) (err error) {
	i, j, k := l.position(p)
	if i < 0 || i >= g.Nx || j < 0 || j >= g.Ny || k < 0 || k >= g.Nz {
		err = fmt.Errorf("position %v does not lie on the voxel lattice", p)
		return
	}
	g.Set(k, j, i, utils.Some(id))
	return
}

// numberInScanOrder replaces every present entry of g with its rank in storage order.
func numberInScanOrder(g *utils.IndexGrid) (count int) {
	for n := 0; n < g.Len(); n++ {
		if g.AtFlat(n).IsSet() {
			g.SetFlat(n, utils.Some(count))
			count++
		}
	}
	return
}

// outward maps a fine lattice point index to the coarse one, rounding away from the centre.
func outward(x, dim int) int {
	if 2*x > dim {
		return (x + 1) / 2
	}
	return x / 2
}
