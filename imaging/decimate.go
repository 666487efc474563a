package imaging

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

/*
Decimate halves the resolution of an image. Every output sample is the maximum
of the (up to) 2x2x2 input samples it covers; a trailing odd layer forms an
output layer on its own. Cell data keeps its origin; point data moves its
origin by half an input spacing so output points sit at the centroid of the
input points they replace.
*/
func Decimate(vg *VoxelGrid) (out *VoxelGrid, err error) {
	var (
		sa    ScalarArray
		assoc types.Association
		idims [3]int
		odims [3]int
		osa   ScalarArray
	)
	if sa, assoc, idims, err = vg.Active(); err != nil {
		return
	}
	for n := 0; n < 3; n++ {
		if idims[n] < 1 {
			err = fmt.Errorf("cannot decimate empty image, %s dimensions %v", assoc, idims)
			return
		}
		odims[n] = (idims[n] + 1) / 2
	}
	switch a := sa.(type) {
	case *Array[int8]:
		osa = maxPool(a, idims, odims)
	case *Array[uint8]:
		osa = maxPool(a, idims, odims)
	case *Array[int16]:
		osa = maxPool(a, idims, odims)
	case *Array[uint16]:
		osa = maxPool(a, idims, odims)
	case *Array[int32]:
		osa = maxPool(a, idims, odims)
	case *Array[uint32]:
		osa = maxPool(a, idims, odims)
	case *Array[float32]:
		osa = maxPool(a, idims, odims)
	case *Array[float64]:
		osa = maxPool(a, idims, odims)
	default:
		err = fmt.Errorf("unhandled scalar type %s in decimation", sa.Kind())
		return
	}
	spacing := r3.Scale(2, vg.Spacing)
	switch assoc {
	case types.CellData:
		out = NewCellGrid(odims[0], odims[1], odims[2], spacing, vg.Origin, osa)
	case types.PointData:
		origin := r3.Add(vg.Origin, r3.Scale(0.5, vg.Spacing))
		out = NewPointGrid(odims[0], odims[1], odims[2], spacing, origin, osa)
	}
	utils.Logf("decimated %s image %v -> %v\n", assoc, idims, odims)
	return
}

func maxPool[T Scalar](in *Array[T], idims, odims [3]int) (out *Array[T]) {
	var (
		seen = make([]bool, odims[0]*odims[1]*odims[2])
	)
	out = NewArray[T](in.Label, len(seen))
	for k := 0; k < idims[2]; k++ {
		kk := k / 2
		for j := 0; j < idims[1]; j++ {
			jj := j / 2
			for i := 0; i < idims[0]; i++ {
				o := SampleOffset(odims, kk, jj, i/2)
				v := in.Data[SampleOffset(idims, k, j, i)]
				if !seen[o] || v > out.Data[o] {
					out.Data[o] = v
					seen[o] = true
				}
			}
		}
	}
	return
}
