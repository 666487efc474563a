package meshing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/imaging"
	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

/*
AsCellScalars returns vg unchanged when it has cell scalars. Point scalars are
reinterpreted as the cell scalars of a grid one point larger per axis whose
origin is shifted back half a voxel, so each former sample becomes a voxel
centred on the same position.
*/
func AsCellScalars(vg *imaging.VoxelGrid) (out *imaging.VoxelGrid, err error) {
	switch {
	case vg.CellScalars != nil:
		if vg.PointScalars != nil {
			utils.Warnf("image data has both point and cell scalars, using the cell scalars\n")
		}
		out = vg
	case vg.PointScalars != nil:
		out = &imaging.VoxelGrid{
			Dims:        [3]int{vg.Dims[0] + 1, vg.Dims[1] + 1, vg.Dims[2] + 1},
			Spacing:     vg.Spacing,
			Origin:      r3.Sub(vg.Origin, r3.Scale(0.5, vg.Spacing)),
			CellScalars: vg.PointScalars,
		}
	default:
		err = fmt.Errorf("image data has no scalars")
	}
	return
}

/*
ImageToMesh converts every nonzero voxel of an image into a voxel cell. Only
points used by some cell are kept, numbered in image point order, and each
cell's scalar is carried as its material id.
*/
func ImageToMesh(vg *imaging.VoxelGrid) (m *model.Mesh, err error) {
	var (
		in *imaging.VoxelGrid
	)
	if in, err = AsCellScalars(vg); err != nil {
		return
	}
	cd := in.CellDims()
	if cd[0] < 1 || cd[1] < 1 || cd[2] < 1 {
		err = fmt.Errorf("image to mesh requires 3D input, have %d x %d x %d cells", cd[0], cd[1], cd[2])
		return
	}
	if in.Spacing.X <= 0 || in.Spacing.Y <= 0 || in.Spacing.Z <= 0 {
		err = fmt.Errorf("spacing must be greater than 0, have %v", in.Spacing)
		return
	}
	scalars := in.CellScalars
	if scalars.Len() != in.NumberOfCells() {
		err = fmt.Errorf("inconsistent number of cell data values: %d for %d cells",
			scalars.Len(), in.NumberOfCells())
		return
	}
	if !scalars.Kind().IsInteger() {
		utils.Warnf("%s cell scalars truncated to integer material ids\n", scalars.Kind())
	}
	var (
		pd          = in.PointDims()
		nInPoints   = in.NumberOfPoints()
		reverseCell utils.Index
		pointMap    = make([]utils.ID, nInPoints)
	)
	for n := 0; n < scalars.Len(); n++ {
		if scalars.IsNonZero(n) {
			reverseCell = append(reverseCell, n)
		}
	}
	corners := func(n int) (ids [8]int) {
		i := n % cd[0]
		j := (n / cd[0]) % cd[1]
		k := n / (cd[0] * cd[1])
		base := imaging.SampleOffset(pd, k, j, i)
		ids = [8]int{
			base, base + 1,
			base + pd[0], base + pd[0] + 1,
		}
		for c := 0; c < 4; c++ {
			ids[c+4] = ids[c] + pd[0]*pd[1]
		}
		return
	}
	// flag used points, then number them in input order
	for _, n := range reverseCell {
		for _, p := range corners(n) {
			pointMap[p] = utils.Some(0)
		}
	}
	var nOutPoints int
	for p := range pointMap {
		if pointMap[p].IsSet() {
			pointMap[p] = utils.Some(nOutPoints)
			nOutPoints++
		}
	}
	m = model.NewMesh()
	m.Points = make([]r3.Vec, nOutPoints)
	for p, id := range pointMap {
		if newID, ok := id.Get(); ok {
			i := p % pd[0]
			j := (p / pd[0]) % pd[1]
			k := p / (pd[0] * pd[1])
			m.Points[newID] = in.PointPosition(i, j, k)
		}
	}
	m.Cells = make([][]int, 0, len(reverseCell))
	m.CellTypes = make([]types.CellType, 0, len(reverseCell))
	m.MaterialIDs = make([]int, len(reverseCell))
	for c, n := range reverseCell {
		var ids [8]int
		for v, p := range corners(n) {
			ids[v] = pointMap[p].MustGet()
		}
		m.AddVoxel(ids)
		m.MaterialIDs[c] = int(math.Trunc(scalars.Float64(n)))
	}
	utils.Logf("image to mesh: %d points, %d cells generated\n", m.NumberOfPoints(), m.NumberOfCells())
	return
}
