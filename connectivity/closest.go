package connectivity

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// voxel is a labelled sample position stored in the kd-tree.
type voxel struct {
	P      r3.Vec
	Offset int
	Region uint32
}

func (v voxel) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(voxel)
	switch d {
	case 0:
		return v.P.X - q.P.X
	case 1:
		return v.P.Y - q.P.Y
	case 2:
		return v.P.Z - q.P.Z
	}
	panic("illegal dimension")
}

func (v voxel) Dims() int { return 3 }

// Distance is the squared Euclidean distance.
func (v voxel) Distance(c kdtree.Comparable) float64 {
	d := r3.Sub(v.P, c.(voxel).P)
	return r3.Dot(d, d)
}

type voxels []voxel

func (v voxels) Index(i int) kdtree.Comparable { return v[i] }
func (v voxels) Len() int                      { return len(v) }
func (v voxels) Slice(start, end int) kdtree.Interface {
	return v[start:end]
}
func (v voxels) Pivot(d kdtree.Dim) int {
	p := voxelPlane{dim: d, voxels: v}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

type voxelPlane struct {
	dim kdtree.Dim
	voxels
}

func (p voxelPlane) Less(i, j int) bool {
	return p.voxels[i].Compare(p.voxels[j], p.dim) < 0
}
func (p voxelPlane) Swap(i, j int) {
	p.voxels[i], p.voxels[j] = p.voxels[j], p.voxels[i]
}
func (p voxelPlane) Slice(start, end int) kdtree.SortSlicer {
	p.voxels = p.voxels[start:end]
	return p
}

/*
closestRegion returns the region of the labelled sample nearest to q. When
several samples are equally near, the one first in scan order wins.
*/
func closestRegion(lm *Labels, q r3.Vec) (region uint32) {
	var (
		pts  = make(voxels, 0, len(lm.Values))
		dims = lm.Dims
	)
	for k := 0; k < dims[2]; k++ {
		for j := 0; j < dims[1]; j++ {
			for i := 0; i < dims[0]; i++ {
				n := lm.Offset(i, j, k)
				if lm.Values[n] != 0 {
					pts = append(pts, voxel{
						P:      lm.Grid.SampleCenter(lm.Association, i, j, k),
						Offset: n,
						Region: lm.Values[n],
					})
				}
			}
		}
	}
	if len(pts) == 0 {
		return 0
	}
	tree := kdtree.New(pts, false)
	target := voxel{P: q}
	c, d2 := tree.Nearest(target)
	nearest := c.(voxel)
	region = nearest.Region
	best := nearest.Offset
	keep := kdtree.NewDistKeeper(d2 * (1 + 1e-12))
	tree.NearestSet(keep, target)
	for _, cd := range keep.Heap {
		v, ok := cd.Comparable.(voxel)
		if !ok {
			continue
		}
		if v.Offset < best {
			best = v.Offset
			region = v.Region
		}
	}
	return
}
