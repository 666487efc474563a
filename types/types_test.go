package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Constraint enums parse from the labels used in parameter files
		ct, err := NewConstraintType("Displacement")
		require.NoError(t, err)
		assert.Equal(t, Displacement, ct)
		assert.Equal(t, "DISPLACEMENT", ct.String())

		at, err := NewAppliedTo(" NODES ")
		require.NoError(t, err)
		assert.Equal(t, Nodes, at)

		_, err = NewAppliedTo("faces")
		assert.Error(t, err)
	}
	{
		tokens := []string{"x", "Y", "z", "0", "1", "2"}
		senses := []Sense{SenseX, SenseY, SenseZ, SenseX, SenseY, SenseZ}
		for i, token := range tokens {
			s, err := NewSense(token)
			require.NoError(t, err)
			assert.Equal(t, senses[i], s)
		}
		_, err := NewSense("w")
		assert.Error(t, err)
		assert.Equal(t, "Z", SenseZ.String())
	}
	{
		d, err := NewDistribution("FACE_Y1")
		require.NoError(t, err)
		assert.Equal(t, FaceY1, d)
		assert.Equal(t, "BODY", Body.String())
	}
}

func TestGridTypes(t *testing.T) {
	{
		tokens := []string{"char", "uint8", "short", "ushort", "int", "uint32", "float", "double"}
		kinds := []ScalarKind{Int8, Uint8, Int16, Uint16, Int32, Uint32, Float32, Float64}
		for i, token := range tokens {
			sk, err := NewScalarKind(token)
			require.NoError(t, err)
			assert.Equal(t, kinds[i], sk)
		}
		_, err := NewScalarKind("complex128")
		assert.Error(t, err)
		assert.True(t, Uint16.IsInteger())
		assert.False(t, Float32.IsInteger())
	}
	{
		assert.Equal(t, Voxel, NewCellType("voxel"))
		assert.Equal(t, Unknown, NewCellType("pyramid"))
		assert.Equal(t, 8, Voxel.NumberOfPoints())
		assert.Equal(t, 4, Tetra.NumberOfPoints())
		assert.Equal(t, "point", PointData.String())
		a, err := NewAssociation("Point")
		require.NoError(t, err)
		assert.Equal(t, PointData, a)
		a, err = NewAssociation("")
		require.NoError(t, err)
		assert.Equal(t, CellData, a)
		_, err = NewAssociation("edge")
		assert.Error(t, err)
	}
}
