package material

import (
	"fmt"
)

/*
Material is a linear elastic material definition. The set of implementations
is closed: isotropic, orthotropic and anisotropic, each as a single definition
or as an array holding one definition per element.
*/
type Material interface {
	Name() string
	IsArray() bool
	// Size is the number of parameter sets held; 1 for a single definition.
	Size() int
	isMaterial()
}

type LinearIsotropic struct {
	Label string
	E     float64
	Nu    float64
}

/*
LinearOrthotropic holds the moduli along x, y, z, and the Poisson ratios and
shear moduli in the order yz, zx, xy.
*/
type LinearOrthotropic struct {
	Label string
	E     [3]float64
	Nu    [3]float64
	G     [3]float64
}

// LinearAnisotropic holds the upper triangle of the 6x6 stress-strain matrix, packed.
type LinearAnisotropic struct {
	Label string
	D     [21]float64
}

type LinearIsotropicArray struct {
	Label string
	E     []float64
	Nu    []float64
}

type LinearOrthotropicArray struct {
	Label string
	E     [][3]float64
	Nu    [][3]float64
	G     [][3]float64
}

type LinearAnisotropicArray struct {
	Label string
	D     [][21]float64
}

func (m *LinearIsotropic) Name() string        { return m.Label }
func (m *LinearOrthotropic) Name() string      { return m.Label }
func (m *LinearAnisotropic) Name() string      { return m.Label }
func (m *LinearIsotropicArray) Name() string   { return m.Label }
func (m *LinearOrthotropicArray) Name() string { return m.Label }
func (m *LinearAnisotropicArray) Name() string { return m.Label }

func (m *LinearIsotropic) IsArray() bool        { return false }
func (m *LinearOrthotropic) IsArray() bool      { return false }
func (m *LinearAnisotropic) IsArray() bool      { return false }
func (m *LinearIsotropicArray) IsArray() bool   { return true }
func (m *LinearOrthotropicArray) IsArray() bool { return true }
func (m *LinearAnisotropicArray) IsArray() bool { return true }

func (m *LinearIsotropic) Size() int        { return 1 }
func (m *LinearOrthotropic) Size() int      { return 1 }
func (m *LinearAnisotropic) Size() int      { return 1 }
func (m *LinearIsotropicArray) Size() int   { return len(m.E) }
func (m *LinearOrthotropicArray) Size() int { return len(m.E) }
func (m *LinearAnisotropicArray) Size() int { return len(m.D) }

func (m *LinearIsotropic) isMaterial()        {}
func (m *LinearOrthotropic) isMaterial()      {}
func (m *LinearAnisotropic) isMaterial()      {}
func (m *LinearIsotropicArray) isMaterial()   {}
func (m *LinearOrthotropicArray) isMaterial() {}
func (m *LinearAnisotropicArray) isMaterial() {}

func NewLinearIsotropicArray(name string, n int) *LinearIsotropicArray {
	return &LinearIsotropicArray{
		Label: name,
		E:     make([]float64, n),
		Nu:    make([]float64, n),
	}
}

func NewLinearOrthotropicArray(name string, n int) *LinearOrthotropicArray {
	return &LinearOrthotropicArray{
		Label: name,
		E:     make([][3]float64, n),
		Nu:    make([][3]float64, n),
		G:     make([][3]float64, n),
	}
}

func NewLinearAnisotropicArray(name string, n int) *LinearAnisotropicArray {
	return &LinearAnisotropicArray{
		Label: name,
		D:     make([][21]float64, n),
	}
}

// Scaled returns a copy with the moduli multiplied by f; Poisson's ratio is unchanged.
func (m *LinearIsotropic) Scaled(f float64) *LinearIsotropic {
	return &LinearIsotropic{Label: m.Label, E: f * m.E, Nu: m.Nu}
}

func (m *LinearOrthotropic) Scaled(f float64) *LinearOrthotropic {
	r := &LinearOrthotropic{Label: m.Label, Nu: m.Nu}
	for n := 0; n < 3; n++ {
		r.E[n] = f * m.E[n]
		r.G[n] = f * m.G[n]
	}
	return r
}

func (m *LinearAnisotropic) Scaled(f float64) *LinearAnisotropic {
	r := &LinearAnisotropic{Label: m.Label}
	for n := range m.D {
		r.D[n] = f * m.D[n]
	}
	return r
}

/*
ScaledSeries expands a single material into an array of n entries where entry
i is the material scaled by (i+1)/n.
*/
func ScaledSeries(m Material, n int, name string) (arr Material, err error) {
	switch mt := m.(type) {
	case *LinearIsotropic:
		a := NewLinearIsotropicArray(name, n)
		for i := 0; i < n; i++ {
			s := mt.Scaled(float64(i+1) / float64(n))
			a.E[i], a.Nu[i] = s.E, s.Nu
		}
		arr = a
	case *LinearOrthotropic:
		a := NewLinearOrthotropicArray(name, n)
		for i := 0; i < n; i++ {
			s := mt.Scaled(float64(i+1) / float64(n))
			a.E[i], a.Nu[i], a.G[i] = s.E, s.Nu, s.G
		}
		arr = a
	case *LinearAnisotropic:
		a := NewLinearAnisotropicArray(name, n)
		for i := 0; i < n; i++ {
			a.D[i] = mt.Scaled(float64(i+1) / float64(n)).D
		}
		arr = a
	default:
		err = fmt.Errorf("cannot build a scaled series from material %q of type %T", m.Name(), m)
	}
	return
}

// Kind names the material type as used in model documents.
func Kind(m Material) string {
	switch m.(type) {
	case *LinearIsotropic:
		return "LinearIsotropic"
	case *LinearOrthotropic:
		return "LinearOrthotropic"
	case *LinearAnisotropic:
		return "LinearAnisotropic"
	case *LinearIsotropicArray:
		return "LinearIsotropicArray"
	case *LinearOrthotropicArray:
		return "LinearOrthotropicArray"
	case *LinearAnisotropicArray:
		return "LinearAnisotropicArray"
	}
	return "Unknown"
}

/*
IsIsotropic reports whether m is isotropic, as a single definition or an array.
Homogenization uses it to decide whether the average can stay isotropic.
*/
func IsIsotropic(m Material) bool {
	switch m.(type) {
	case *LinearIsotropic, *LinearIsotropicArray:
		return true
	}
	return false
}
