package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStressStrain(t *testing.T) {
	{ // Packed index is column major over the upper triangle
		assert.Equal(t, 0, PackedIndex(0, 0))
		assert.Equal(t, 1, PackedIndex(0, 1))
		assert.Equal(t, 2, PackedIndex(1, 1))
		assert.Equal(t, 3, PackedIndex(0, 2))
		assert.Equal(t, 20, PackedIndex(5, 5))
		assert.Equal(t, PackedIndex(1, 4), PackedIndex(4, 1))
	}
	{
		E, nu := 6000., 0.3
		ss := NewIsotropic(E, nu)
		c := E * (1 - nu) / ((1 + nu) * (1 - 2*nu))
		assert.InDelta(t, c, ss.D.At(1, 1), 1e-9)
		assert.InDelta(t, c*nu/(1-nu), ss.D.At(0, 2), 1e-9)
		assert.InDelta(t, E/(2*(1+nu)), ss.D.At(4, 4), 1e-9)
		assert.Equal(t, 0., ss.D.At(0, 3))
		ut := ss.UpperTriangularPacked()
		assert.Equal(t, ss.D.At(0, 1), ut[1])
		back := NewFromPacked(ut)
		assert.Equal(t, ss.UpperTriangularPacked(), back.UpperTriangularPacked())
	}
	{ // Orthotropic inversion agrees with the closed form
		var (
			Ex, Ey, Ez       = 1000., 1500., 2000.
			nuyz, nuzx, nuxy = 0.3, 0.25, 0.2
			v32              = nuyz * Ez / Ey
			v13              = nuzx * Ex / Ez
			v21              = nuxy * Ey / Ex
			delta            = (1 - nuxy*v21 - nuyz*v32 - nuzx*v13 - 2*nuxy*nuyz*nuzx) / (Ex * Ey * Ez)
		)
		ss, err := NewOrthotropic([3]float64{Ex, Ey, Ez}, [3]float64{nuyz, nuzx, nuxy}, [3]float64{400, 500, 600})
		require.NoError(t, err)
		assert.InDelta(t, (1-nuyz*v32)/(Ey*Ez*delta), ss.D.At(0, 0), 1e-6)
		assert.InDelta(t, (v21+nuzx*nuyz)/(Ey*Ez*delta), ss.D.At(0, 1), 1e-6)
		assert.InDelta(t, (nuzx+v21*v32)/(Ey*Ez*delta), ss.D.At(0, 2), 1e-6)
		assert.InDelta(t, (1-nuzx*v13)/(Ez*Ex*delta), ss.D.At(1, 1), 1e-6)
		assert.InDelta(t, (v32+nuzx*nuxy)/(Ez*Ex*delta), ss.D.At(1, 2), 1e-6)
		assert.InDelta(t, (1-nuxy*v21)/(Ex*Ey*delta), ss.D.At(2, 2), 1e-6)
		assert.Equal(t, 400., ss.D.At(3, 3))
		assert.Equal(t, 500., ss.D.At(4, 4))
		assert.Equal(t, 600., ss.D.At(5, 5))
	}
	{ // An orthotropic material with isotropic parameters matches the isotropic form
		E, nu := 2000., 0.25
		G := E / (2 * (1 + nu))
		ortho, err := NewOrthotropic([3]float64{E, E, E}, [3]float64{nu, nu, nu}, [3]float64{G, G, G})
		require.NoError(t, err)
		iso := NewIsotropic(E, nu)
		a, b := ortho.UpperTriangularPacked(), iso.UpperTriangularPacked()
		for n := range a {
			assert.InDelta(t, b[n], a[n], 1e-6)
		}
	}
	{
		_, err := NewOrthotropic([3]float64{1, 0, 1}, [3]float64{}, [3]float64{1, 1, 1})
		assert.Error(t, err)
		_, err = StressStrainOf(&LinearIsotropic{E: 1, Nu: 0.3}, 1)
		assert.Error(t, err)
		arr := &LinearIsotropicArray{E: []float64{1, 2}, Nu: []float64{0.3, 0.3}}
		ss, err := StressStrainOf(arr, 1)
		require.NoError(t, err)
		assert.Equal(t, NewIsotropic(2, 0.3).UpperTriangularPacked(), ss.UpperTriangularPacked())
	}
}

func TestScaledSeries(t *testing.T) {
	{
		arr, err := ScaledSeries(&LinearIsotropic{E: 800, Nu: 0.3}, 8, "series")
		require.NoError(t, err)
		iso := arr.(*LinearIsotropicArray)
		assert.Equal(t, 8, iso.Size())
		assert.True(t, iso.IsArray())
		for m := 0; m < 8; m++ {
			assert.InDelta(t, 100*float64(m+1), iso.E[m], 1e-9)
			assert.Equal(t, 0.3, iso.Nu[m])
		}
	}
	{
		base := &LinearOrthotropic{E: [3]float64{8, 16, 24}, Nu: [3]float64{0.1, 0.2, 0.3}, G: [3]float64{80, 80, 80}}
		arr, err := ScaledSeries(base, 8, "series")
		require.NoError(t, err)
		o := arr.(*LinearOrthotropicArray)
		assert.Equal(t, [3]float64{1, 2, 3}, o.E[0])
		assert.Equal(t, [3]float64{10, 10, 10}, o.G[0])
		assert.Equal(t, base.Nu, o.Nu[0])
		assert.Equal(t, base.E, o.E[7])
	}
	{
		var D [21]float64
		for n := range D {
			D[n] = 8
		}
		arr, err := ScaledSeries(&LinearAnisotropic{D: D}, 8, "series")
		require.NoError(t, err)
		a := arr.(*LinearAnisotropicArray)
		assert.Equal(t, 4., a.D[3][20])
	}
	{
		_, err := ScaledSeries(NewLinearIsotropicArray("a", 2), 8, "series")
		assert.Error(t, err)
	}
}

func TestTable(t *testing.T) {
	var (
		tbl  = NewTable()
		bone = &LinearIsotropic{Label: "bone", E: 6000, Nu: 0.3}
		arr  = &LinearIsotropicArray{Label: "arr", E: []float64{1, 2, 3}, Nu: []float64{0.3, 0.3, 0.3}}
	)
	assert.Error(t, tbl.Add(0, bone))
	require.NoError(t, tbl.Add(10, arr))
	require.NoError(t, tbl.Add(1, bone))
	require.NoError(t, tbl.Add(2, bone))
	assert.Equal(t, []int{1, 2, 10}, tbl.Indices())
	assert.Equal(t, []Material{bone, arr}, tbl.UniqueMaterials())

	testCases := []struct {
		id     int
		m      Material
		offset int
		ok     bool
	}{
		{0, nil, 0, false},
		{1, bone, 0, true},
		{2, bone, 0, true},
		{3, bone, 1, false},
		{10, arr, 0, true},
		{12, arr, 2, true},
		{13, arr, 3, false},
	}
	for _, tc := range testCases {
		m, offset, ok := tbl.GetMaterialOrArray(tc.id)
		assert.Equal(t, tc.ok, ok, "id %d", tc.id)
		if tc.ok {
			assert.Equal(t, tc.m, m, "id %d", tc.id)
			assert.Equal(t, tc.offset, offset, "id %d", tc.id)
		}
	}
	{ // Lookups see materials added after earlier lookups
		_, _, ok := tbl.GetMaterialOrArray(5)
		assert.False(t, ok)
		require.NoError(t, tbl.Add(5, bone))
		m, offset, ok := tbl.GetMaterialOrArray(5)
		assert.True(t, ok)
		assert.Equal(t, Material(bone), m)
		assert.Equal(t, 0, offset)
		indices := tbl.Indices()
		assert.Equal(t, []int{1, 2, 5, 10}, indices)
		indices[0] = 99
		assert.Equal(t, []int{1, 2, 5, 10}, tbl.Indices(), "callers get a copy")
	}
	assert.True(t, IsIsotropic(arr))
	assert.False(t, IsIsotropic(&LinearAnisotropic{}))
	assert.Equal(t, "LinearIsotropicArray", Kind(arr))
}
