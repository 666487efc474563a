package readfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/imaging"
	"github.com/notargets/gobone/material"
	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

func TestImageDocument(t *testing.T) {
	dir := t.TempDir()
	{ // Cell scalars round trip with kind preserved
		vg := imaging.NewCellGrid(2, 1, 1, r3.Vec{X: 0.5, Y: 0.25, Z: 1}, r3.Vec{X: 1, Y: 2, Z: 3},
			imaging.NewArrayFrom[int16]("density", []int16{127, -3}))
		path := filepath.Join(dir, "cells.yaml")
		require.NoError(t, WriteImage(path, vg))
		in, err := ReadImage(path)
		require.NoError(t, err)
		assert.Equal(t, [3]int{3, 2, 2}, in.Dims)
		assert.Equal(t, vg.Spacing, in.Spacing)
		assert.Equal(t, vg.Origin, in.Origin)
		assert.Nil(t, in.PointScalars)
		require.NotNil(t, in.CellScalars)
		assert.Equal(t, types.Int16, in.CellScalars.Kind())
		assert.Equal(t, "density", in.CellScalars.Name())
		assert.Equal(t, 127., in.CellScalars.Float64(0))
		assert.Equal(t, -3., in.CellScalars.Float64(1))
	}
	{ // Point scalars
		vg := imaging.NewPointGrid(2, 2, 1, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{},
			imaging.NewArrayFrom[float32]("p", []float32{0, 1.5, 2, 0}))
		path := filepath.Join(dir, "points.yaml")
		require.NoError(t, WriteImage(path, vg))
		in, err := ReadImage(path)
		require.NoError(t, err)
		require.NotNil(t, in.PointScalars)
		assert.Equal(t, types.Float32, in.PointScalars.Kind())
		assert.Equal(t, 1.5, in.PointScalars.Float64(1))
	}
	{ // Hand written document
		path := filepath.Join(dir, "hand.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
Dimensions: [2, 2, 2]
Spacing: [1, 1, 1]
Origin: [0, 0, 0]
CellScalars:
  Type: uint8
  Values: [9]
`), 0644))
		in, err := ReadImage(path)
		require.NoError(t, err)
		assert.Equal(t, types.Uint8, in.CellScalars.Kind())
		assert.Equal(t, 9., in.CellScalars.Float64(0))
	}
	{ // Bad documents
		_, err := DecodeImage(&ImageDocument{Dimensions: [3]int{2, 2, 2}, Spacing: [3]float64{1, 1, 1}})
		assert.Error(t, err)
		_, err = DecodeImage(&ImageDocument{Dimensions: [3]int{2, 2, 2}, Spacing: [3]float64{1, 1, 1},
			CellScalars: &ScalarRecord{Type: "uint8", Values: []float64{1, 2}}})
		assert.Error(t, err)
		_, err = DecodeImage(&ImageDocument{Dimensions: [3]int{2, 2, 2}, Spacing: [3]float64{1, 1, 1},
			CellScalars: &ScalarRecord{Type: "complex", Values: []float64{1}}})
		assert.Error(t, err)
		_, err = ReadImage(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	}
}

func twoVoxelModel(t *testing.T) (fe *model.Model) {
	m := model.NewMesh()
	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 3; i++ {
				m.Points = append(m.Points, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})
			}
		}
	}
	m.AddVoxel([8]int{0, 1, 3, 4, 6, 7, 9, 10})
	m.AddVoxel([8]int{1, 2, 4, 5, 7, 8, 10, 11})
	m.MaterialIDs = []int{1, 3}
	m.PointData["Displacement"] = model.NewDataArray(3, 12)
	m.PointData["Displacement"].Values[5] = 0.125
	fe = model.NewModel(m)
	require.NoError(t, fe.Materials.Add(1, &material.LinearIsotropic{Label: "bone", E: 6000, Nu: 0.3}))
	ortho := material.NewLinearOrthotropicArray("ortho", 2)
	ortho.E[1] = [3]float64{1, 2, 3}
	ortho.Nu[1] = [3]float64{0.1, 0.2, 0.3}
	ortho.G[1] = [3]float64{4, 5, 6}
	require.NoError(t, fe.Materials.Add(2, ortho))
	aniso := &material.LinearAnisotropic{Label: "aniso"}
	aniso.D[20] = 7
	require.NoError(t, fe.Materials.Add(3, aniso))
	require.NoError(t, fe.AddConstraint(model.NewNodeConstraint("fixed", types.Displacement,
		utils.Index{0, 3}, []types.Sense{types.SenseX, types.SenseZ}, []float64{0, -0.1})))
	require.NoError(t, fe.AddConstraint(&model.Constraint{
		Name:          "load",
		Type:          types.Force,
		AppliedTo:     types.Elements,
		Indices:       utils.Index{1},
		Senses:        []types.Sense{types.SenseZ},
		Values:        []float64{10},
		Distributions: []types.Distribution{types.FaceZ1},
	}))
	fe.ConvergenceSet = model.NewNodeConstraint("conv", types.Displacement, utils.Index{11},
		[]types.Sense{types.SenseZ}, []float64{0})
	require.NoError(t, fe.AddNodeSet(&model.IDSet{Name: "top", IDs: utils.Index{6, 7, 8}}))
	require.NoError(t, fe.AddElementSet(&model.IDSet{Name: "all", IDs: utils.Index{0, 1}}))
	fe.Parameters.MaximumIterations = 100
	fe.Parameters.ConvergenceTolerance = 1e-6
	fe.Parameters.PostProcessingNodeSets = []string{"top"}
	fe.Parameters.RotationCenter = &r3.Vec{X: 1, Y: 0.5, Z: 0}
	return
}

func TestModelDocument(t *testing.T) {
	dir := t.TempDir()
	{ // Full round trip
		fe := twoVoxelModel(t)
		path := filepath.Join(dir, "model.yaml")
		require.NoError(t, WriteModel(path, fe))
		in, err := ReadModel(path)
		require.NoError(t, err)
		assert.Equal(t, fe.Points, in.Points)
		assert.Equal(t, fe.Cells, in.Cells)
		assert.Equal(t, fe.CellTypes, in.CellTypes)
		assert.Equal(t, fe.MaterialIDs, in.MaterialIDs)
		assert.Equal(t, fe.PointData["Displacement"], in.PointData["Displacement"])
		assert.Equal(t, []int{1, 2, 3}, in.Materials.Indices())
		for _, index := range fe.Materials.Indices() {
			want, _ := fe.Materials.Get(index)
			got, ok := in.Materials.Get(index)
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
		require.Len(t, in.Constraints, 2)
		assert.Equal(t, fe.Constraints[0], in.Constraints[0])
		assert.Equal(t, fe.Constraints[1], in.Constraints[1])
		assert.Equal(t, fe.ConvergenceSet, in.ConvergenceSet)
		assert.Equal(t, fe.NodeSets, in.NodeSets)
		assert.Equal(t, fe.ElementSets, in.ElementSets)
		assert.Equal(t, fe.Parameters, in.Parameters)
	}
	{ // Missing SENSE stays missing
		fe := twoVoxelModel(t)
		fe.Constraints[0].Senses = nil
		doc := EncodeModel(fe)
		in, err := DecodeModel(doc)
		require.NoError(t, err)
		assert.Nil(t, in.Constraints[0].Senses)
		assert.Error(t, in.Constraints[0].CheckAttributes())
	}
	{ // Cell types default to voxel
		doc := EncodeModel(twoVoxelModel(t))
		doc.CellTypes = nil
		in, err := DecodeModel(doc)
		require.NoError(t, err)
		assert.Equal(t, []types.CellType{types.Voxel, types.Voxel}, in.CellTypes)
	}
	{ // Bad documents
		doc := EncodeModel(twoVoxelModel(t))
		doc.Cells[1] = []int{1, 2, 4, 5, 7, 8, 10, 12}
		_, err := DecodeModel(doc)
		assert.Error(t, err)

		doc = EncodeModel(twoVoxelModel(t))
		doc.Materials[0].Type = "Plastic"
		_, err = DecodeModel(doc)
		assert.Error(t, err)

		doc = EncodeModel(twoVoxelModel(t))
		doc.Materials[1].E = doc.Materials[1].E[:5]
		_, err = DecodeModel(doc)
		assert.Error(t, err)

		doc = EncodeModel(twoVoxelModel(t))
		doc.Constraints[0].Senses = []string{"X", "W"}
		_, err = DecodeModel(doc)
		assert.Error(t, err)

		doc = EncodeModel(twoVoxelModel(t))
		doc.NodeSets = append(doc.NodeSets, doc.NodeSets[0])
		_, err = DecodeModel(doc)
		assert.Error(t, err)
	}
}

func TestMaterialRecord(t *testing.T) {
	iso := material.NewLinearIsotropicArray("arr", 3)
	copy(iso.E, []float64{1, 2, 3})
	copy(iso.Nu, []float64{0.1, 0.2, 0.3})
	mr := EncodeMaterial(4, iso)
	assert.Equal(t, "LinearIsotropicArray", mr.Type)
	m, err := DecodeMaterial(mr)
	require.NoError(t, err)
	assert.Equal(t, iso, m)

	aa := material.NewLinearAnisotropicArray("aa", 2)
	aa.D[1][0] = 5
	m, err = DecodeMaterial(EncodeMaterial(1, aa))
	require.NoError(t, err)
	assert.Equal(t, aa, m)

	_, err = DecodeMaterial(MaterialRecord{Index: 1, Type: "LinearIsotropic", E: []float64{1, 2}, Nu: []float64{0.1, 0.2}})
	assert.Error(t, err)
}
