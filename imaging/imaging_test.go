package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/types"
)

func TestVoxelGrid(t *testing.T) {
	{
		vg := NewCellGrid(3, 2, 1, r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{}, NewArray[uint8]("s", 6))
		assert.Equal(t, [3]int{4, 3, 2}, vg.PointDims())
		assert.Equal(t, [3]int{3, 2, 1}, vg.CellDims())
		assert.Equal(t, 6, vg.NumberOfCells())
		assert.Equal(t, 24, vg.NumberOfPoints())
		sa, assoc, dims, err := vg.Active()
		require.NoError(t, err)
		assert.Equal(t, types.CellData, assoc)
		assert.Equal(t, [3]int{3, 2, 1}, dims)
		assert.Equal(t, types.Uint8, sa.Kind())
		assert.Equal(t, r3.Vec{X: 1.5, Y: 1, Z: 1.5}, vg.SampleCenter(types.CellData, 1, 0, 0))
		assert.Equal(t, r3.Vec{X: 1, Y: 0, Z: 0}, vg.PointPosition(1, 0, 0))
	}
	{ // Cell scalars win over point scalars
		vg := NewPointGrid(2, 2, 2, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{}, NewArray[int16]("p", 8))
		_, assoc, _, err := vg.Active()
		require.NoError(t, err)
		assert.Equal(t, types.PointData, assoc)
		vg.CellScalars = NewArray[float32]("c", 1)
		sa, assoc, _, err := vg.Active()
		require.NoError(t, err)
		assert.Equal(t, types.CellData, assoc)
		assert.Equal(t, "c", sa.Name())
	}
	{
		vg := NewPointGrid(2, 2, 2, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{}, NewArray[int16]("p", 7))
		_, _, _, err := vg.Active()
		assert.Error(t, err)
		vg.PointScalars = nil
		_, _, _, err = vg.Active()
		assert.Error(t, err)
		vg.Spacing.Y = 0
		assert.Error(t, vg.CheckGeometry())
	}
}

func TestScalarArrays(t *testing.T) {
	kinds := []types.ScalarKind{types.Int8, types.Uint8, types.Int16, types.Uint16,
		types.Int32, types.Uint32, types.Float32, types.Float64}
	for _, kind := range kinds {
		sa, err := NewScalarArray(kind, "x", 3)
		require.NoError(t, err)
		assert.Equal(t, kind, sa.Kind())
		sa.SetFloat64(1, 5)
		assert.True(t, sa.IsNonZero(1))
		assert.False(t, sa.IsNonZero(0))
		dst := sa.Zeroed()
		assert.Equal(t, kind, dst.Kind())
		sa.CopyValue(dst, 1)
		assert.Equal(t, 5., dst.Float64(1))
	}
	assert.Panics(t, func() {
		NewArray[int8]("a", 1).CopyValue(NewArray[uint8]("b", 1), 0)
	})
}

func TestDecimate(t *testing.T) {
	{ // 3x2x1 cells: the odd trailing x layer becomes its own output cell
		in := NewArrayFrom("s", []int16{
			1, -4, 7,
			2, 3, -9,
		})
		vg := NewCellGrid(3, 2, 1, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, r3.Vec{X: 1, Y: 2, Z: 3}, in)
		out, err := Decimate(vg)
		require.NoError(t, err)
		assert.Equal(t, [3]int{2, 1, 1}, out.CellDims())
		assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, out.Spacing)
		assert.Equal(t, vg.Origin, out.Origin)
		assert.Nil(t, out.PointScalars)
		assert.Equal(t, []int16{3, 7}, out.CellScalars.(*Array[int16]).Data)
	}
	{ // Negative data: the maximum is not clipped at zero
		in := NewArrayFrom("s", []float64{-3, -2, -5, -8, -1, -7, -4, -6})
		vg := NewCellGrid(2, 2, 2, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{}, in)
		out, err := Decimate(vg)
		require.NoError(t, err)
		assert.Equal(t, []float64{-1}, out.CellScalars.(*Array[float64]).Data)
	}
	{ // Point data: 5 points per axis become 3, origin moves by half an input spacing
		n := 5 * 5 * 5
		in := NewArray[uint8]("p", n)
		in.Data[SampleOffset([3]int{5, 5, 5}, 4, 4, 4)] = 200
		in.Data[SampleOffset([3]int{5, 5, 5}, 0, 1, 1)] = 9
		vg := NewPointGrid(5, 5, 5, r3.Vec{X: 1, Y: 2, Z: 4}, r3.Vec{X: 10}, in)
		out, err := Decimate(vg)
		require.NoError(t, err)
		assert.Equal(t, [3]int{3, 3, 3}, out.PointDims())
		assert.Equal(t, r3.Vec{X: 2, Y: 4, Z: 8}, out.Spacing)
		assert.Equal(t, r3.Vec{X: 10.5, Y: 1, Z: 2}, out.Origin)
		data := out.PointScalars.(*Array[uint8]).Data
		assert.Equal(t, uint8(200), data[SampleOffset([3]int{3, 3, 3}, 2, 2, 2)])
		assert.Equal(t, uint8(9), data[0])
		assert.Equal(t, uint8(0), data[1])
	}
	{
		_, err := Decimate(&VoxelGrid{Dims: [3]int{2, 2, 2}})
		assert.Error(t, err)
	}
}
