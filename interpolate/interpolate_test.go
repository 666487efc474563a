package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/coarsen"
	"github.com/notargets/gobone/imaging"
	"github.com/notargets/gobone/material"
	"github.com/notargets/gobone/meshing"
	"github.com/notargets/gobone/model"
)

// solidMesh meshes a solid block of nx x ny x nz voxels.
func solidMesh(t *testing.T, nx, ny, nz int, spacing, origin r3.Vec) *model.Mesh {
	data := make([]uint8, nx*ny*nz)
	for n := range data {
		data[n] = 1
	}
	m, err := meshing.ImageToMesh(imaging.NewCellGrid(nx, ny, nz, spacing, origin, imaging.NewArrayFrom("scalars", data)))
	require.NoError(t, err)
	return m
}

// setField stores f evaluated at every point of m as the displacement.
func setField(m *model.Mesh, f func(x r3.Vec) r3.Vec) {
	da := model.NewDataArray(3, m.NumberOfPoints())
	for p, x := range m.Points {
		u := f(x)
		copy(da.Tuple(p), []float64{u.X, u.Y, u.Z})
	}
	m.PointData[DisplacementName] = da
}

func linear(x r3.Vec) r3.Vec {
	return r3.Vec{X: x.X + 0.5*x.Y, Y: 2 * x.Y, Z: 3*x.Z - x.X}
}

func TestInterpolateCoarseSolution(t *testing.T) {
	var (
		one    = r3.Vec{X: 1, Y: 1, Z: 1}
		two    = r3.Vec{X: 2, Y: 2, Z: 2}
		origin = r3.Vec{X: -3, Y: 1, Z: 4}
	)
	{ // A linear field is reproduced exactly at every midpoint case
		fine := solidMesh(t, 4, 4, 4, one, origin)
		coarse := solidMesh(t, 2, 2, 2, two, origin)
		setField(coarse, linear)
		for _, np := range []int{1, 3, 8} {
			u, err := InterpolateCoarseSolution(fine, coarse, ParallelDegree(np))
			require.NoError(t, err)
			require.Equal(t, 3, u.NumComponents)
			require.Equal(t, fine.NumberOfPoints(), u.NumberOfTuples())
			for p, x := range fine.Points {
				want := linear(x)
				got := u.Tuple(p)
				assert.InDelta(t, want.X, got[0], 1e-12)
				assert.InDelta(t, want.Y, got[1], 1e-12)
				assert.InDelta(t, want.Z, got[2], 1e-12)
			}
		}
	}
	{ // Coincident points copy, midpoints average
		fine := solidMesh(t, 2, 1, 1, one, r3.Vec{})
		coarse := solidMesh(t, 1, 1, 1, two, r3.Vec{})
		da := model.NewDataArray(3, 8)
		da.Tuple(0)[0] = 4 // corner (0,0,0)
		da.Tuple(1)[0] = 8 // corner (2,0,0)
		coarse.PointData[DisplacementName] = da
		u, err := InterpolateCoarseSolution(fine, coarse)
		require.NoError(t, err)
		// fine points: x = 0, 1, 2 at y = z = 0 are 0, 1, 2
		assert.Equal(t, 4., u.Tuple(0)[0])
		assert.Equal(t, 6., u.Tuple(1)[0])
		assert.Equal(t, 8., u.Tuple(2)[0])
		// (1,1,0) is the centre of the bottom face
		assert.Equal(t, 3., u.Tuple(4)[0])
	}
	{ // Coarsen then interpolate a zero solution returns zero everywhere
		fe := model.NewModel(solidMesh(t, 5, 3, 2, r3.Vec{X: 0.5, Y: 0.25, Z: 1}, origin))
		require.NoError(t, fe.Materials.Add(1, &material.LinearIsotropic{Label: "bone", E: 6000, Nu: 0.3}))
		out, err := coarsen.CoarsenModel(fe)
		require.NoError(t, err)
		coarse := out.Mesh
		coarse.PointData[DisplacementName] = model.NewDataArray(3, coarse.NumberOfPoints())
		u, err := InterpolateCoarseSolution(fe.Mesh, coarse)
		require.NoError(t, err)
		for _, v := range u.Values {
			assert.Equal(t, 0., v)
		}
		setField(coarse, linear)
		u, err = InterpolateCoarseSolution(fe.Mesh, coarse)
		require.NoError(t, err)
		for p, x := range fe.Points {
			want := linear(x)
			assert.InDelta(t, want.Y, u.Tuple(p)[1], 1e-9)
		}
	}
	{ // Missing or malformed solution
		fine := solidMesh(t, 2, 2, 2, one, r3.Vec{})
		coarse := solidMesh(t, 1, 1, 1, two, r3.Vec{})
		_, err := InterpolateCoarseSolution(fine, coarse)
		assert.Error(t, err)
		coarse.PointData[DisplacementName] = model.NewDataArray(1, 8)
		_, err = InterpolateCoarseSolution(fine, coarse)
		assert.Error(t, err)
		_, err = InterpolateCoarseSolution(model.NewMesh(), coarse)
		assert.Error(t, err)
	}
	{ // Geometry mismatches are fatal
		fine := solidMesh(t, 2, 2, 2, one, r3.Vec{})
		coarse := solidMesh(t, 1, 1, 1, r3.Vec{X: 3, Y: 3, Z: 3}, r3.Vec{})
		setField(coarse, linear)
		assert.Panics(t, func() { _, _ = InterpolateCoarseSolution(fine, coarse) })
		shifted := solidMesh(t, 2, 2, 2, one, r3.Vec{X: -1})
		coarse = solidMesh(t, 1, 1, 1, two, r3.Vec{})
		setField(coarse, linear)
		assert.Panics(t, func() { _, _ = InterpolateCoarseSolution(shifted, coarse) })
		// Within tolerance is accepted
		nudged := solidMesh(t, 2, 2, 2, one, r3.Vec{X: -0.001})
		_, err := InterpolateCoarseSolution(nudged, coarse)
		assert.NoError(t, err)
	}
}
