package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

const MaterialIDName = "MaterialID"

// DataArray is a named attribute array with NumComponents values per tuple.
type DataArray struct {
	NumComponents int
	Values        []float64
}

func NewDataArray(nComp, nTuples int) *DataArray {
	return &DataArray{
		NumComponents: nComp,
		Values:        make([]float64, nComp*nTuples),
	}
}

func (da *DataArray) NumberOfTuples() int {
	if da.NumComponents == 0 {
		return 0
	}
	return len(da.Values) / da.NumComponents
}

func (da *DataArray) Tuple(i int) []float64 {
	return da.Values[i*da.NumComponents : (i+1)*da.NumComponents]
}

/*
Mesh is an indexed unstructured mesh. Cells list point indices in the local
order of their type; voxel cells are ordered x fastest, then y, then z from
the minimum corner. MaterialIDs, when present, holds one material index per
cell.
*/
type Mesh struct {
	Points      []r3.Vec
	Cells       [][]int
	CellTypes   []types.CellType
	MaterialIDs []int
	PointData   map[string]*DataArray
	CellData    map[string]*DataArray
}

func NewMesh() *Mesh {
	return &Mesh{
		PointData: make(map[string]*DataArray),
		CellData:  make(map[string]*DataArray),
	}
}

func (m *Mesh) NumberOfPoints() int { return len(m.Points) }

func (m *Mesh) NumberOfCells() int { return len(m.Cells) }

// AddVoxel appends a voxel cell and returns its index.
func (m *Mesh) AddVoxel(ids [8]int) int {
	m.Cells = append(m.Cells, ids[:])
	m.CellTypes = append(m.CellTypes, types.Voxel)
	return len(m.Cells) - 1
}

func (m *Mesh) Bounds() (b r3.Box) {
	if len(m.Points) == 0 {
		return
	}
	b.Min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	b.Max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range m.Points {
		b.Min.X, b.Max.X = min(b.Min.X, p.X), max(b.Max.X, p.X)
		b.Min.Y, b.Max.Y = min(b.Min.Y, p.Y), max(b.Max.Y, p.Y)
		b.Min.Z, b.Max.Z = min(b.Min.Z, p.Z), max(b.Max.Z, p.Z)
	}
	return
}

// CellType returns the type of cell n; cells without a recorded type are voxels.
func (m *Mesh) CellType(n int) types.CellType {
	if n < len(m.CellTypes) {
		return m.CellTypes[n]
	}
	return types.Voxel
}

// CheckVoxels reports the first cell that is not an eight node voxel.
func (m *Mesh) CheckVoxels() (err error) {
	for n, cell := range m.Cells {
		if ct := m.CellType(n); ct != types.Voxel {
			err = fmt.Errorf("cell %d has unsupported type %s, only voxel cells are handled", n, ct)
			return
		}
		if len(cell) != 8 {
			err = fmt.Errorf("voxel cell %d has %d points", n, len(cell))
			return
		}
	}
	return
}

/*
VoxelSpacing reads the grid spacing from the edges of the first cell, which
must be a voxel.
*/
func (m *Mesh) VoxelSpacing() (s r3.Vec, err error) {
	if len(m.Cells) == 0 {
		err = fmt.Errorf("mesh has no cells")
		return
	}
	c := m.Cells[0]
	if len(c) != 8 {
		err = fmt.Errorf("first cell has %d points, not a voxel", len(c))
		return
	}
	s = r3.Vec{
		X: m.Points[c[1]].X - m.Points[c[0]].X,
		Y: m.Points[c[2]].Y - m.Points[c[0]].Y,
		Z: m.Points[c[4]].Z - m.Points[c[0]].Z,
	}
	if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
		err = fmt.Errorf("degenerate voxel spacing %v from first cell", s)
	}
	return
}

// Validate checks point indices and attribute array sizes.
func (m *Mesh) Validate() (err error) {
	np, nc := len(m.Points), len(m.Cells)
	for n, cell := range m.Cells {
		if err = utils.Index(cell).InRange(np); err != nil {
			err = fmt.Errorf("cell %d: %w", n, err)
			return
		}
	}
	if len(m.CellTypes) != 0 && len(m.CellTypes) != nc {
		err = fmt.Errorf("have %d cell types for %d cells", len(m.CellTypes), nc)
		return
	}
	if m.MaterialIDs != nil && len(m.MaterialIDs) != nc {
		err = fmt.Errorf("have %d %s values for %d cells", len(m.MaterialIDs), MaterialIDName, nc)
		return
	}
	for name, da := range m.PointData {
		if da.NumberOfTuples() != np || len(da.Values) != da.NumComponents*np {
			err = fmt.Errorf("point data %q has %d values, want %d x %d", name, len(da.Values), np, da.NumComponents)
			return
		}
	}
	for name, da := range m.CellData {
		if da.NumberOfTuples() != nc || len(da.Values) != da.NumComponents*nc {
			err = fmt.Errorf("cell data %q has %d values, want %d x %d", name, len(da.Values), nc, da.NumComponents)
			return
		}
	}
	return
}
