package interpolate

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

const DisplacementName = "Displacement"

type options struct {
	spacingTol     float64
	boundsTol      float64
	parallelDegree int
}

type Option func(*options)

// SpacingTolerance is the relative tolerance on coarse spacing being twice the fine spacing.
func SpacingTolerance(tol float64) Option {
	return func(o *options) { o.spacingTol = tol }
}

// BoundsTolerance is the allowed overhang of the fine bounds, as a fraction of the fine x spacing.
func BoundsTolerance(f float64) Option {
	return func(o *options) { o.boundsTol = f }
}

func ParallelDegree(np int) Option {
	return func(o *options) { o.parallelDegree = np }
}

/*
InterpolateCoarseSolution carries the coarse point field "Displacement" onto
the points of a fine mesh with half the spacing. A fine point coincident with
a coarse point takes its value; a point halfway along an edge, across a face
or through the centre of a coarse voxel takes the mean of the 2, 4 or 8
coarse points around it. The result has three components per fine point.
*/
func InterpolateCoarseSolution(fine, coarse *model.Mesh, opts ...Option) (out *model.DataArray, err error) {
	o := options{
		spacingTol:     utils.SPACINGTOL,
		boundsTol:      1.e-2,
		parallelDegree: utils.DefaultParallelDegree(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if fine.NumberOfCells() == 0 || coarse.NumberOfCells() == 0 {
		err = fmt.Errorf("zero elements on input to coarse solution interpolation")
		return
	}
	if fine.CellType(0) != types.Voxel || coarse.CellType(0) != types.Voxel {
		err = fmt.Errorf("unsupported cell type, only voxel meshes can be interpolated")
		return
	}
	var (
		fs, cs r3.Vec
	)
	if fs, err = fine.VoxelSpacing(); err != nil {
		return
	}
	if cs, err = coarse.VoxelSpacing(); err != nil {
		return
	}
	if !utils.RelEqual(2*fs.X, cs.X, o.spacingTol) ||
		!utils.RelEqual(2*fs.Y, cs.Y, o.spacingTol) ||
		!utils.RelEqual(2*fs.Z, cs.Z, o.spacingTol) {
		panic(fmt.Errorf("spacing of reduced resolution %v must be exactly twice that of full resolution %v", cs, fs))
	}
	var (
		fb, cb = fine.Bounds(), coarse.Bounds()
		tol    = o.boundsTol * fs.X
	)
	if fb.Min.X < cb.Min.X-tol || fb.Max.X > cb.Max.X+tol ||
		fb.Min.Y < cb.Min.Y-tol || fb.Max.Y > cb.Max.Y+tol ||
		fb.Min.Z < cb.Min.Z-tol || fb.Max.Z > cb.Max.Z+tol {
		panic(fmt.Errorf("full bounds %v must be interior to reduced bounds %v", fb, cb))
	}
	disp := coarse.PointData[DisplacementName]
	switch {
	case disp == nil:
		err = fmt.Errorf("solution %q not found in reduced model", DisplacementName)
		return
	case disp.NumComponents != 3 || disp.NumberOfTuples() != coarse.NumberOfPoints():
		err = fmt.Errorf("solution %q has %d components for %d points, want 3 components for %d points",
			DisplacementName, disp.NumComponents, disp.NumberOfTuples(), coarse.NumberOfPoints())
		return
	}

	// Coarse points on a regular grid, x fastest
	grid := utils.NewIndexGrid(
		utils.Round((cb.Max.X-cb.Min.X)/cs.X)+1,
		utils.Round((cb.Max.Y-cb.Min.Y)/cs.Y)+1,
		utils.Round((cb.Max.Z-cb.Min.Z)/cs.Z)+1)
	for p, x := range coarse.Points {
		grid.Set(
			utils.Round((x.Z-cb.Min.Z)/cs.Z),
			utils.Round((x.Y-cb.Min.Y)/cs.Y),
			utils.Round((x.X-cb.Min.X)/cs.X),
			utils.Some(p))
	}

	out = model.NewDataArray(3, fine.NumberOfPoints())
	pm := utils.NewPartitionMap(o.parallelDegree, fine.NumberOfPoints())
	pm.Run(func(bn, kMin, kMax int) {
		for p := kMin; p < kMax; p++ {
			x := fine.Points[p]
			var idx, odd [3]int
			idx[0] = utils.Round((x.X - cb.Min.X) / fs.X)
			idx[1] = utils.Round((x.Y - cb.Min.Y) / fs.Y)
			idx[2] = utils.Round((x.Z - cb.Min.Z) / fs.Z)
			for a := 0; a < 3; a++ {
				odd[a] = idx[a] % 2
				idx[a] /= 2
			}
			var (
				u     = out.Tuple(p)
				count float64
			)
			for dk := 0; dk <= odd[2]; dk++ {
				for dj := 0; dj <= odd[1]; dj++ {
					for di := 0; di <= odd[0]; di++ {
						cp := grid.At(idx[2]+dk, idx[1]+dj, idx[0]+di).MustGet()
						v := disp.Tuple(cp)
						u[0] += v[0]
						u[1] += v[1]
						u[2] += v[2]
						count++
					}
				}
			}
			u[0] /= count
			u[1] /= count
			u[2] /= count
		}
	})
	utils.Logf("interpolated %q onto %d points\n", DisplacementName, fine.NumberOfPoints())
	return
}
