package connectivity

import (
	"fmt"
	"math"

	"github.com/notargets/gobone/imaging"
	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

const LabelArrayName = "ComponentLabel"

// MaxLabel is the largest region label; a further region fails the labelling.
var MaxLabel uint32 = math.MaxUint32

/*
Labels is the region label map of an image: one uint32 per voxel, 0 for
background and 1..NumberOfRegions for the face-connected components.
*/
type Labels struct {
	Grid            *imaging.VoxelGrid
	Association     types.Association
	Dims            [3]int
	Values          []uint32
	NumberOfRegions uint32
}

/*
Map labels the face-connected (6-connected) components of the nonzero voxels
of vg. Cell scalars are used when present, otherwise point scalars. The output
grid has the same geometry and association as the input.
*/
func Map(vg *imaging.VoxelGrid) (lm *Labels, err error) {
	var (
		sa    imaging.ScalarArray
		assoc types.Association
		dims  [3]int
	)
	if sa, assoc, dims, err = vg.Active(); err != nil {
		return
	}
	labels := imaging.NewArray[uint32](LabelArrayName, sa.Len())
	lm = &Labels{
		Grid: &imaging.VoxelGrid{
			Dims:    vg.Dims,
			Spacing: vg.Spacing,
			Origin:  vg.Origin,
		},
		Association: assoc,
		Dims:        dims,
		Values:      labels.Data,
	}
	if assoc == types.CellData {
		lm.Grid.CellScalars = labels
	} else {
		lm.Grid.PointScalars = labels
	}
	var index int
	for k := 0; k < dims[2]; k++ {
		for j := 0; j < dims[1]; j++ {
			for i := 0; i < dims[0]; i++ {
				if sa.IsNonZero(index) && lm.Values[index] == 0 {
					if lm.NumberOfRegions == MaxLabel {
						err = fmt.Errorf("number of components exceeds label representation (%d)", MaxLabel)
						lm = nil
						return
					}
					lm.NumberOfRegions++
					lm.markComponent(sa, index, lm.NumberOfRegions)
				}
				index++
			}
		}
	}
	utils.Logf("connectivity map: %d regions in %d x %d x %d %s samples\n",
		lm.NumberOfRegions, dims[0], dims[1], dims[2], assoc)
	return
}

/*
markComponent floods label outward from seed breadth first. The two waves are
the current frontier and the next; no recursion is needed, so component size
is bounded only by memory.
*/
func (lm *Labels) markComponent(sa imaging.ScalarArray, seed int, label uint32) {
	var (
		nx, ny, nz = lm.Dims[0], lm.Dims[1], lm.Dims[2]
		nxy        = nx * ny
		wave       = []int{seed}
		next       []int
	)
	lm.Values[seed] = label
	visit := func(n int) {
		if sa.IsNonZero(n) && lm.Values[n] == 0 {
			lm.Values[n] = label
			next = append(next, n)
		}
	}
	for len(wave) != 0 {
		next = next[:0]
		for _, n := range wave {
			k := n / nxy
			j := (n - k*nxy) / nx
			i := n - k*nxy - j*nx
			if i > 0 {
				visit(n - 1)
			}
			if i < nx-1 {
				visit(n + 1)
			}
			if j > 0 {
				visit(n - nx)
			}
			if j < ny-1 {
				visit(n + nx)
			}
			if k > 0 {
				visit(n - nxy)
			}
			if k < nz-1 {
				visit(n + nxy)
			}
		}
		wave, next = next, wave
	}
}

// Histogram returns the voxel count of each label; entry 0 counts background.
func (lm *Labels) Histogram() (sizes utils.Index) {
	sizes = utils.NewIndex(int(lm.NumberOfRegions) + 1)
	for _, l := range lm.Values {
		sizes[l]++
	}
	return
}

// Offset is the storage offset of sample (i,j,k).
func (lm *Labels) Offset(i, j, k int) int {
	return imaging.SampleOffset(lm.Dims, k, j, i)
}
