package imaging

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/types"
)

/*
VoxelGrid is a regular 3D image. Dims counts grid points along x, y, z; cell
data therefore has Dims-1 samples per axis and point data has Dims. Samples
are stored with x varying fastest, then y, then z.
*/
type VoxelGrid struct {
	Dims         [3]int
	Spacing      r3.Vec
	Origin       r3.Vec
	PointScalars ScalarArray
	CellScalars  ScalarArray
}

// NewCellGrid builds a cell-centered grid holding nx*ny*nz voxels.
func NewCellGrid(nx, ny, nz int, spacing, origin r3.Vec, scalars ScalarArray) (vg *VoxelGrid) {
	vg = &VoxelGrid{
		Dims:        [3]int{nx + 1, ny + 1, nz + 1},
		Spacing:     spacing,
		Origin:      origin,
		CellScalars: scalars,
	}
	return
}

// NewPointGrid builds a point-centered grid holding nx*ny*nz samples.
func NewPointGrid(nx, ny, nz int, spacing, origin r3.Vec, scalars ScalarArray) (vg *VoxelGrid) {
	vg = &VoxelGrid{
		Dims:         [3]int{nx, ny, nz},
		Spacing:      spacing,
		Origin:       origin,
		PointScalars: scalars,
	}
	return
}

func (vg *VoxelGrid) PointDims() [3]int { return vg.Dims }

func (vg *VoxelGrid) CellDims() (cd [3]int) {
	for n := 0; n < 3; n++ {
		cd[n] = max(vg.Dims[n]-1, 0)
	}
	return
}

func (vg *VoxelGrid) NumberOfPoints() int {
	return vg.Dims[0] * vg.Dims[1] * vg.Dims[2]
}

func (vg *VoxelGrid) NumberOfCells() int {
	cd := vg.CellDims()
	return cd[0] * cd[1] * cd[2]
}

/*
Active returns the scalars algorithms operate on, preferring cell scalars when
both are present, together with their association and per-axis sample counts.
*/
func (vg *VoxelGrid) Active() (sa ScalarArray, assoc types.Association, dims [3]int, err error) {
	switch {
	case vg.CellScalars != nil:
		sa, assoc, dims = vg.CellScalars, types.CellData, vg.CellDims()
	case vg.PointScalars != nil:
		sa, assoc, dims = vg.PointScalars, types.PointData, vg.PointDims()
	default:
		err = fmt.Errorf("image has no point or cell scalars")
		return
	}
	if sa.Len() != dims[0]*dims[1]*dims[2] {
		err = fmt.Errorf("%s scalar count %d does not match %d x %d x %d samples",
			assoc, sa.Len(), dims[0], dims[1], dims[2])
	}
	return
}

// SampleOffset maps (k,j,i) to the storage offset for a sample grid of size dims.
func SampleOffset(dims [3]int, k, j, i int) int {
	return (k*dims[1]+j)*dims[0] + i
}

/*
SampleCenter is the physical position of sample (i,j,k): a grid point for
point data, the voxel centre for cell data.
*/
func (vg *VoxelGrid) SampleCenter(assoc types.Association, i, j, k int) (p r3.Vec) {
	p = r3.Vec{
		X: vg.Origin.X + float64(i)*vg.Spacing.X,
		Y: vg.Origin.Y + float64(j)*vg.Spacing.Y,
		Z: vg.Origin.Z + float64(k)*vg.Spacing.Z,
	}
	if assoc == types.CellData {
		p = r3.Add(p, r3.Scale(0.5, vg.Spacing))
	}
	return
}

// PointPosition is the coordinate of grid point (i,j,k).
func (vg *VoxelGrid) PointPosition(i, j, k int) r3.Vec {
	return vg.SampleCenter(types.PointData, i, j, k)
}

func (vg *VoxelGrid) CheckGeometry() (err error) {
	for n, d := range vg.Dims {
		if d < 1 {
			err = fmt.Errorf("image dimension %d is %d, must be at least 1", n, d)
			return
		}
	}
	if vg.Spacing.X <= 0 || vg.Spacing.Y <= 0 || vg.Spacing.Z <= 0 {
		err = fmt.Errorf("image spacing must be positive, have %v", vg.Spacing)
	}
	return
}

func (vg *VoxelGrid) Print() {
	fmt.Printf("[%d, %d, %d]\t\t= Dimensions (points)\n", vg.Dims[0], vg.Dims[1], vg.Dims[2])
	fmt.Printf("[%g, %g, %g]\t= Spacing\n", vg.Spacing.X, vg.Spacing.Y, vg.Spacing.Z)
	fmt.Printf("[%g, %g, %g]\t= Origin\n", vg.Origin.X, vg.Origin.Y, vg.Origin.Z)
	if vg.CellScalars != nil {
		fmt.Printf("[%s, %d]\t\t= Cell scalars %q\n", vg.CellScalars.Kind(), vg.CellScalars.Len(), vg.CellScalars.Name())
	}
	if vg.PointScalars != nil {
		fmt.Printf("[%s, %d]\t\t= Point scalars %q\n", vg.PointScalars.Kind(), vg.PointScalars.Len(), vg.PointScalars.Name())
	}
}
