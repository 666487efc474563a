package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/connectivity"
	"github.com/notargets/gobone/material"
	"github.com/notargets/gobone/model"
)

func TestConnectivityParameters(t *testing.T) {
	fileInput := []byte(`
Mode: closest_point
ClosestPoint: [1.5, 2, -0.5]
MinimumRegionSize: 10
`)
	var input ConnectivityParameters
	require.NoError(t, input.Parse(fileInput))
	input.Print()
	f, err := input.Filter()
	require.NoError(t, err)
	assert.Equal(t, connectivity.ClosestPointRegion, f.Mode)
	assert.Equal(t, r3.Vec{X: 1.5, Y: 2, Z: -0.5}, f.ClosestPoint)
	assert.Equal(t, 10, f.MinimumRegionSize)
	{ // Defaults to the largest region
		var empty ConnectivityParameters
		f, err := empty.Filter()
		require.NoError(t, err)
		assert.Equal(t, connectivity.LargestRegion, f.Mode)
		assert.Equal(t, 1, f.MinimumRegionSize)
	}
	{
		ip := ConnectivityParameters{Mode: "specified", RegionIDs: []uint32{2, 1}}
		f, err := ip.Filter()
		require.NoError(t, err)
		assert.Equal(t, []uint32{2, 1}, f.SpecifiedRegionIDs)
	}
	for _, ip := range []ConnectivityParameters{
		{Mode: "biggest"},
		{Mode: "specified"},
		{Mode: "seeded"},
	} {
		_, err := ip.Filter()
		assert.Error(t, err, ip.Mode)
	}
}

func TestImage2MeshParameters(t *testing.T) {
	fileInput := []byte(`
Materials:
  - Index: 1
    Type: LinearIsotropic
    Name: bone
    E: [6829]
    Nu: [0.3]
  - Index: 2
    Type: LinearOrthotropic
    E: [1, 2, 3]
    Nu: [0.1, 0.2, 0.3]
    G: [4, 5, 6]
Parameters:
  MaximumIterations: 20000
  ConvergenceTolerance: 1e-6
  PostProcessingNodeSets: [face_z1]
`)
	var input Image2MeshParameters
	require.NoError(t, input.Parse(fileInput))
	input.Print()
	fe := model.NewModel(nil)
	require.NoError(t, input.Apply(fe))
	m, ok := fe.Materials.Get(1)
	require.True(t, ok)
	assert.Equal(t, &material.LinearIsotropic{Label: "bone", E: 6829, Nu: 0.3}, m)
	m, ok = fe.Materials.Get(2)
	require.True(t, ok)
	assert.Equal(t, [3]float64{4, 5, 6}, m.(*material.LinearOrthotropic).G)
	assert.Equal(t, 20000, fe.Parameters.MaximumIterations)
	assert.Equal(t, 1e-6, fe.Parameters.ConvergenceTolerance)
	assert.Equal(t, []string{"face_z1"}, fe.Parameters.PostProcessingNodeSets)

	bad := Image2MeshParameters{}
	require.NoError(t, bad.Parse([]byte("Materials: [{Index: 0, Type: LinearIsotropic, E: [1], Nu: [0.3]}]")))
	assert.Error(t, bad.Apply(model.NewModel(nil)))
}

func TestCoarsenParameters(t *testing.T) {
	var input CoarsenParameters
	require.NoError(t, input.Parse([]byte("MaterialName: Averaged\n")))
	input.Print()
	assert.Equal(t, "Averaged", input.MaterialName)
}
