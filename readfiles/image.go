package readfiles

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/imaging"
	"github.com/notargets/gobone/types"
)

// ScalarRecord holds one scalar array; values are stored as float64 whatever the kind.
type ScalarRecord struct {
	Name   string    `json:"Name,omitempty"`
	Type   string    `json:"Type"`
	Values []float64 `json:"Values"`
}

/*
ImageDocument is the YAML form of a voxel grid. Dimensions count grid points,
as for the in-memory grid, so cell scalars hold one fewer sample per axis.
*/
type ImageDocument struct {
	Dimensions   [3]int        `json:"Dimensions"`
	Spacing      [3]float64    `json:"Spacing"`
	Origin       [3]float64    `json:"Origin"`
	CellScalars  *ScalarRecord `json:"CellScalars,omitempty"`
	PointScalars *ScalarRecord `json:"PointScalars,omitempty"`
}

func EncodeImage(vg *imaging.VoxelGrid) (doc *ImageDocument) {
	doc = &ImageDocument{
		Dimensions: vg.Dims,
		Spacing:    [3]float64{vg.Spacing.X, vg.Spacing.Y, vg.Spacing.Z},
		Origin:     [3]float64{vg.Origin.X, vg.Origin.Y, vg.Origin.Z},
	}
	encode := func(sa imaging.ScalarArray) (sr *ScalarRecord) {
		if sa == nil {
			return
		}
		sr = &ScalarRecord{Name: sa.Name(), Type: sa.Kind().String(), Values: make([]float64, sa.Len())}
		for i := range sr.Values {
			sr.Values[i] = sa.Float64(i)
		}
		return
	}
	doc.CellScalars = encode(vg.CellScalars)
	doc.PointScalars = encode(vg.PointScalars)
	return
}

func DecodeImage(doc *ImageDocument) (vg *imaging.VoxelGrid, err error) {
	vg = &imaging.VoxelGrid{
		Dims:    doc.Dimensions,
		Spacing: r3.Vec{X: doc.Spacing[0], Y: doc.Spacing[1], Z: doc.Spacing[2]},
		Origin:  r3.Vec{X: doc.Origin[0], Y: doc.Origin[1], Z: doc.Origin[2]},
	}
	if err = vg.CheckGeometry(); err != nil {
		return
	}
	decode := func(sr *ScalarRecord, want int, assoc string) (sa imaging.ScalarArray, err error) {
		if sr == nil {
			return
		}
		var kind types.ScalarKind
		if kind, err = types.NewScalarKind(sr.Type); err != nil {
			return
		}
		if len(sr.Values) != want {
			err = fmt.Errorf("%s scalars %q have %d values, grid needs %d", assoc, sr.Name, len(sr.Values), want)
			return
		}
		if sa, err = imaging.NewScalarArray(kind, sr.Name, want); err != nil {
			return
		}
		for i, v := range sr.Values {
			sa.SetFloat64(i, v)
		}
		return
	}
	if vg.CellScalars, err = decode(doc.CellScalars, vg.NumberOfCells(), "cell"); err != nil {
		return
	}
	if vg.PointScalars, err = decode(doc.PointScalars, vg.NumberOfPoints(), "point"); err != nil {
		return
	}
	if vg.CellScalars == nil && vg.PointScalars == nil {
		err = fmt.Errorf("image document has no scalars")
	}
	return
}

func ReadImage(path string) (vg *imaging.VoxelGrid, err error) {
	var (
		data []byte
		doc  = &ImageDocument{}
	)
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	if err = yaml.Unmarshal(data, doc); err != nil {
		err = fmt.Errorf("parsing image %s: %w", path, err)
		return
	}
	if vg, err = DecodeImage(doc); err != nil {
		err = fmt.Errorf("image %s: %w", path, err)
	}
	return
}

func WriteImage(path string, vg *imaging.VoxelGrid) (err error) {
	var data []byte
	if data, err = yaml.Marshal(EncodeImage(vg)); err != nil {
		return
	}
	err = os.WriteFile(path, data, 0644)
	return
}
