package coarsen

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

const DefaultMaterialName = "CoarsenedMaterial"

type options struct {
	materialName string
}

type Option func(*options)

// MaterialName names the averaged material array of the output model.
func MaterialName(name string) Option {
	return func(o *options) { o.materialName = name }
}

/*
CoarsenModel halves the resolution of a voxel model. Every 2x2x2 block of
input voxels becomes one output voxel of twice the spacing, present when any
of its inputs is present. A trailing odd layer on any axis is folded into the
last output layer by counting its voxels twice.

Materials are homogenized over each block, node constraints and sets are sent
through the point map, element sets through the cell map.
*/
func CoarsenModel(input *model.Model, opts ...Option) (output *model.Model, err error) {
	o := options{materialName: DefaultMaterialName}
	for _, opt := range opts {
		opt(&o)
	}
	if input == nil || input.Mesh == nil || input.NumberOfPoints() == 0 || input.NumberOfCells() == 0 {
		err = fmt.Errorf("input model has no points or cells")
		return
	}
	if err = input.CheckVoxels(); err != nil {
		return
	}
	if len(input.MaterialIDs) != input.NumberOfCells() {
		err = fmt.Errorf("input model has %d %s values for %d cells",
			len(input.MaterialIDs), model.MaterialIDName, input.NumberOfCells())
		return
	}
	if input.Materials == nil || input.Materials.Len() == 0 {
		err = fmt.Errorf("empty material table")
		return
	}
	var (
		g *grids
	)
	if g, err = newGrids(input.Mesh); err != nil {
		return
	}
	output = model.NewModel(g.mesh)
	if err = generateMaterials(output, input, g.reverseCellMap, o); err != nil {
		return
	}
	if err = generateConstraints(output, input, g.pointMap, input.NumberOfCells()); err != nil {
		return
	}
	if err = generateSets(output, input, g.pointMap, g.cellMap); err != nil {
		return
	}
	output.Parameters.PostProcessingNodeSets = append([]string(nil), input.Parameters.PostProcessingNodeSets...)
	output.Parameters.PostProcessingElementSets = append([]string(nil), input.Parameters.PostProcessingElementSets...)
	utils.Logf("coarsened %d cells, %d points to %d cells, %d points\n",
		input.NumberOfCells(), input.NumberOfPoints(), output.NumberOfCells(), output.NumberOfPoints())
	return
}

/*
grids carries the geometry products of coarsening: the output mesh and the
maps between input and output entities. The dense grids used to build them
are released as soon as they are no longer needed.
*/
type grids struct {
	mesh           *model.Mesh
	reverseCellMap [][8]utils.ID // output cell -> up to 8 input cells
	cellMap        []utils.ID    // input cell -> output cell
	pointMap       []utils.ID    // input point -> output point
}

func newGrids(in *model.Mesh) (g *grids, err error) {
	var (
		fine   lattice
		coarse lattice
	)
	if fine, err = newLattice(in); err != nil {
		return
	}
	coarse = fine.coarse()
	utils.Logf("input lattice %v, spacing %v; output lattice %v\n", fine.Dims, fine.Spacing, coarse.Dims)

	inCellGrid := fine.cellGrid()
	for c, cell := range in.Cells {
		if err = place(inCellGrid, fine, in.Points[cell[0]], c); err != nil {
			err = fmt.Errorf("cell %d: %w", c, err)
			return
		}
	}
	inPointGrid := fine.pointGrid()
	for p, pt := range in.Points {
		if err = place(inPointGrid, fine, pt, p); err != nil {
			err = fmt.Errorf("point %d: %w", p, err)
			return
		}
	}
	if utils.Verbose {
		utils.Logf("input grids: %d non-empty cell positions, %d non-empty point positions\n",
			inCellGrid.Count(), inPointGrid.Count())
	}
	utils.LogMemUsage("input grids built")

	g = &grids{
		cellMap:  make([]utils.ID, len(in.Cells)),
		pointMap: make([]utils.ID, len(in.Points)),
	}
	// The +1 neighbour is pulled back onto the even layer at a trailing odd face
	partner := func(x, dim int) int {
		if x+1 == dim {
			return x
		}
		return x + 1
	}
	// Output cells exist where any input cell of the block does, numbered in scan order
	var cellOrigins [][3]int
	for k := 0; k < coarse.Dims[2]; k++ {
		kk := 2 * k
		kk1 := partner(kk, fine.Dims[2])
		for j := 0; j < coarse.Dims[1]; j++ {
			jj := 2 * j
			jj1 := partner(jj, fine.Dims[1])
			for i := 0; i < coarse.Dims[0]; i++ {
				ii := 2 * i
				ii1 := partner(ii, fine.Dims[0])
				row := [8]utils.ID{
					inCellGrid.At(kk, jj, ii), inCellGrid.At(kk, jj, ii1),
					inCellGrid.At(kk, jj1, ii), inCellGrid.At(kk, jj1, ii1),
					inCellGrid.At(kk1, jj, ii), inCellGrid.At(kk1, jj, ii1),
					inCellGrid.At(kk1, jj1, ii), inCellGrid.At(kk1, jj1, ii1),
				}
				for _, id := range row {
					if id.IsSet() {
						g.reverseCellMap = append(g.reverseCellMap, row)
						cellOrigins = append(cellOrigins, [3]int{i, j, k})
						break
					}
				}
			}
		}
	}
	nOutCells := len(g.reverseCellMap)
	inCellGrid.Release()
	utils.LogMemUsage("input cell grid released")

	outCellGrid := coarse.cellGrid()
	for oc, o := range cellOrigins {
		outCellGrid.Set(o[2], o[1], o[0], utils.Some(oc))
	}
	outPointGrid := coarse.pointGrid()
	for _, o := range cellOrigins {
		for _, c := range voxelCorners {
			outPointGrid.Set(o[2]+c[2], o[1]+c[1], o[0]+c[0], utils.Some(0))
		}
	}
	nOutPoints := numberInScanOrder(outPointGrid)

	for oc, row := range g.reverseCellMap {
		for _, id := range row {
			if c, ok := id.Get(); ok {
				g.cellMap[c] = utils.Some(oc)
			}
		}
	}
	for k := 0; k <= fine.Dims[2]; k++ {
		kk := outward(k, fine.Dims[2])
		for j := 0; j <= fine.Dims[1]; j++ {
			jj := outward(j, fine.Dims[1])
			for i := 0; i <= fine.Dims[0]; i++ {
				if p, ok := inPointGrid.At(k, j, i).Get(); ok {
					op := outPointGrid.At(kk, jj, outward(i, fine.Dims[0]))
					g.pointMap[p] = utils.Some(op.MustGet())
				}
			}
		}
	}
	inPointGrid.Release()
	utils.LogMemUsage("input point grid released")

	g.mesh = model.NewMesh()
	g.mesh.Cells = make([][]int, 0, nOutCells)
	g.mesh.CellTypes = make([]types.CellType, 0, nOutCells)
	for k := 0; k < coarse.Dims[2]; k++ {
		for j := 0; j < coarse.Dims[1]; j++ {
			for i := 0; i < coarse.Dims[0]; i++ {
				oc, ok := outCellGrid.At(k, j, i).Get()
				if !ok {
					continue
				}
				var ids [8]int
				for v, c := range voxelCorners {
					ids[v] = outPointGrid.At(k+c[2], j+c[1], i+c[0]).MustGet()
				}
				if g.mesh.AddVoxel(ids) != oc {
					panic(fmt.Errorf("output cell %d generated out of order", oc))
				}
			}
		}
	}
	outCellGrid.Release()
	utils.LogMemUsage("output cell grid released")
	outPointGrid.Release()
	utils.LogMemUsage("output point grid released")

	// Every output point is a corner of some output cell
	g.mesh.Points = make([]r3.Vec, nOutPoints)
	for c, cell := range g.mesh.Cells {
		o := cellOrigins[c]
		for v, p := range cell {
			g.mesh.Points[p] = r3.Vec{
				X: coarse.Min.X + coarse.Spacing.X*float64(o[0]+voxelCorners[v][0]),
				Y: coarse.Min.Y + coarse.Spacing.Y*float64(o[1]+voxelCorners[v][1]),
				Z: coarse.Min.Z + coarse.Spacing.Z*float64(o[2]+voxelCorners[v][2]),
			}
		}
	}
	return
}

// voxelCorners lists the (i,j,k) offsets of the voxel points in local order.
var voxelCorners = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

func generateConstraints(output, input *model.Model, pointMap []utils.ID, nc int) (err error) {
	remap := func(c *model.Constraint) (r *model.Constraint, err error) {
		if c.AppliedTo == types.Elements {
			err = fmt.Errorf("constraint %q: cannot handle element constraints", c.Name)
			return
		}
		if err = c.Validate(len(pointMap), nc); err != nil {
			return
		}
		r = model.NewNodeConstraint(c.Name, c.Type, c.Indices.Remap(pointMap),
			append([]types.Sense(nil), c.Senses...), append([]float64(nil), c.Values...))
		return
	}
	for _, c := range input.Constraints {
		var r *model.Constraint
		if r, err = remap(c); err != nil {
			return
		}
		if err = output.AddConstraint(r); err != nil {
			return
		}
	}
	if input.ConvergenceSet != nil {
		if output.ConvergenceSet, err = remap(input.ConvergenceSet); err != nil {
			return
		}
	}
	return
}

func generateSets(output, input *model.Model, pointMap, cellMap []utils.ID) (err error) {
	for _, s := range input.NodeSets {
		if err = s.IDs.InRange(len(pointMap)); err != nil {
			err = fmt.Errorf("node set %q: %w", s.Name, err)
			return
		}
		ns := &model.IDSet{Name: s.Name, IDs: s.IDs.Remap(pointMap).SortedUnique()}
		if err = output.AddNodeSet(ns); err != nil {
			return
		}
	}
	for _, s := range input.ElementSets {
		if err = s.IDs.InRange(len(cellMap)); err != nil {
			err = fmt.Errorf("element set %q: %w", s.Name, err)
			return
		}
		es := &model.IDSet{Name: s.Name, IDs: s.IDs.Remap(cellMap).SortedUnique()}
		if err = output.AddElementSet(es); err != nil {
			return
		}
	}
	return
}
