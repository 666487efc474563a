package utils

import (
	"fmt"
)

/*
ID is an optional point or cell id. The zero value is absent, so an empty grid
needs no sentinel and no legitimate id can collide with "missing".
*/
type ID struct {
	val     int
	present bool
}

func Some(i int) ID { return ID{val: i, present: true} }

func None() ID { return ID{} }

func (id ID) Get() (int, bool) { return id.val, id.present }

func (id ID) IsSet() bool { return id.present }

// MustGet is used where the id is known to exist; an absent id is a logic error.
func (id ID) MustGet() int {
	if !id.present {
		panic("required id is absent")
	}
	return id.val
}

func (id ID) String() string {
	if !id.present {
		return "-"
	}
	return fmt.Sprintf("%d", id.val)
}

/*
IndexGrid is a dense 3D lookup table over a structured grid, indexed (k,j,i)
with i varying fastest. It holds ids of cells or points positioned on the grid.
*/
type IndexGrid struct {
	Nx, Ny, Nz int
	ids        []ID
}

func NewIndexGrid(nx, ny, nz int) (g *IndexGrid) {
	if nx < 0 || ny < 0 || nz < 0 {
		panic(fmt.Errorf("invalid index grid dimensions %d x %d x %d", nx, ny, nz))
	}
	g = &IndexGrid{
		Nx:  nx,
		Ny:  ny,
		Nz:  nz,
		ids: make([]ID, nx*ny*nz),
	}
	return
}

func (g *IndexGrid) Len() int { return len(g.ids) }

func (g *IndexGrid) Offset(k, j, i int) int {
	if i < 0 || i >= g.Nx || j < 0 || j >= g.Ny || k < 0 || k >= g.Nz {
		panic(fmt.Errorf("index (k,j,i) = (%d,%d,%d) outside grid %d x %d x %d",
			k, j, i, g.Nz, g.Ny, g.Nx))
	}
	return (k*g.Ny+j)*g.Nx + i
}

func (g *IndexGrid) At(k, j, i int) ID { return g.ids[g.Offset(k, j, i)] }

func (g *IndexGrid) Set(k, j, i int, id ID) { g.ids[g.Offset(k, j, i)] = id }

func (g *IndexGrid) AtFlat(n int) ID { return g.ids[n] }

func (g *IndexGrid) SetFlat(n int, id ID) { g.ids[n] = id }

func (g *IndexGrid) Fill(id ID) {
	for n := range g.ids {
		g.ids[n] = id
	}
}

// Count returns the number of present entries.
func (g *IndexGrid) Count() (count int) {
	for _, id := range g.ids {
		if id.present {
			count++
		}
	}
	return
}

// Release drops the backing buffer; any later access panics.
func (g *IndexGrid) Release() {
	g.ids = nil
	g.Nx, g.Ny, g.Nz = 0, 0, 0
}
