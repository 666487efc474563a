package verify

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

// Tolerance is the absolute coordinate tolerance used by the voxel checks.
var Tolerance = 1.e-5

/*
VerifyMesh checks that every cell is a voxel with in-range point indices and
consistent corner coordinates, and that all attribute arrays match the point
and cell counts.
*/
func VerifyMesh(m *model.Mesh) (err error) {
	np := m.NumberOfPoints()
	for n, cell := range m.Cells {
		if err = utils.Index(cell).InRange(np); err != nil {
			err = fmt.Errorf("invalid point index for cell %d: %w", n, err)
			return
		}
		if ct := m.CellType(n); ct != types.Voxel {
			err = fmt.Errorf("disallowed cell type %s for cell %d", ct, n)
			return
		}
		if len(cell) != 8 {
			err = fmt.Errorf("voxel cell %d has %d points", n, len(cell))
			return
		}
		if err = checkVoxelTopology(m, n); err != nil {
			return
		}
	}
	err = m.Validate()
	return
}

func checkVoxelTopology(m *model.Mesh, n int) (err error) {
	var p [8]r3.Vec
	for i, id := range m.Cells[n] {
		p[i] = m.Points[id]
	}
	dx, dy, dz := r3.Sub(p[1], p[0]), r3.Sub(p[2], p[0]), r3.Sub(p[4], p[0])
	switch {
	case !vectorsEqual(p[3], r3.Add(p[2], dx)),
		!vectorsAligned(r3.Cross(dx, dy), dz),
		!vectorsEqual(p[5], r3.Add(p[4], dx)),
		!vectorsEqual(p[6], r3.Add(p[4], dy)),
		!vectorsEqual(p[7], r3.Add(p[6], dx)):
		err = fmt.Errorf("inconsistent voxel coordinates for cell %d", n)
	}
	return
}

func vectorsEqual(a, b r3.Vec) bool {
	return scalar.EqualWithinAbs(a.X, b.X, Tolerance) &&
		scalar.EqualWithinAbs(a.Y, b.Y, Tolerance) &&
		scalar.EqualWithinAbs(a.Z, b.Z, Tolerance)
}

// vectorsAligned is true when a and b point the same way; lengths may differ.
func vectorsAligned(a, b r3.Vec) bool {
	var (
		tol2 = Tolerance * Tolerance
		c    = r3.Sub(a, b)
	)
	if r3.Dot(c, c) < tol2 {
		return true
	}
	if r3.Dot(a, b) <= 0 {
		return false
	}
	ref := a
	if r3.Dot(b, b) > r3.Dot(a, a) {
		ref = b
	}
	par := r3.Scale(r3.Dot(ref, c)/r3.Dot(ref, ref), ref)
	perp := r3.Sub(c, par)
	return r3.Dot(perp, perp) <= tol2
}

/*
VerifyModel runs VerifyMesh and then checks the model's references into the
mesh: constraint and set indices, set name uniqueness and cell material ids.
*/
func VerifyModel(fe *model.Model) (err error) {
	if err = VerifyMesh(fe.Mesh); err != nil {
		return
	}
	np, nc := fe.NumberOfPoints(), fe.NumberOfCells()
	for _, c := range fe.Constraints {
		if err = c.Validate(np, nc); err != nil {
			return
		}
	}
	if fe.ConvergenceSet != nil {
		if err = fe.ConvergenceSet.Validate(np, nc); err != nil {
			return
		}
	}
	if err = checkSets("node", fe.NodeSets, np); err != nil {
		return
	}
	if err = checkSets("element", fe.ElementSets, nc); err != nil {
		return
	}
	if fe.MaterialIDs != nil {
		for n, id := range fe.MaterialIDs {
			if _, _, ok := fe.Materials.GetMaterialOrArray(id); !ok {
				err = fmt.Errorf("cell %d has material id %d with no material defined", n, id)
				return
			}
		}
	}
	return
}

func checkSets(kind string, sets []*model.IDSet, limit int) (err error) {
	names := make(map[string]bool, len(sets))
	for _, s := range sets {
		if names[s.Name] {
			err = fmt.Errorf("duplicate %s set name %q", kind, s.Name)
			return
		}
		names[s.Name] = true
		if err = s.IDs.InRange(limit); err != nil {
			err = fmt.Errorf("%s set %q: %w", kind, s.Name, err)
			return
		}
	}
	return
}
