package material

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
StressStrain is the 6x6 symmetric linear elastic stiffness matrix in Voigt
order xx, yy, zz, yz, zx, xy.
*/
type StressStrain struct {
	D *mat.SymDense
}

// PackedIndex locates (i,j), i <= j, in the column-major packed upper triangle.
func PackedIndex(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return j*(j+1)/2 + i
}

func NewIsotropic(E, nu float64) (ss StressStrain) {
	var (
		c = E * (1 - nu) / ((1 + nu) * (1 - 2*nu))
		d = c * nu / (1 - nu)
		G = c * (1 - 2*nu) / (2 * (1 - nu))
	)
	ss.D = mat.NewSymDense(6, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			if i == j {
				ss.D.SetSym(i, j, c)
			} else {
				ss.D.SetSym(i, j, d)
			}
		}
		ss.D.SetSym(i+3, i+3, G)
	}
	return
}

/*
NewOrthotropic inverts the orthotropic compliance matrix. nu and G are ordered
yz, zx, xy; nu_ij is the contraction along j for extension along i, so that
nu_ij/E_i = nu_ji/E_j.
*/
func NewOrthotropic(E, nu, G [3]float64) (ss StressStrain, err error) {
	var (
		nuyz, nuzx, nuxy = nu[0], nu[1], nu[2]
		S                = mat.NewSymDense(3, []float64{
			1 / E[0], -nuxy / E[0], -nuzx / E[2],
			-nuxy / E[0], 1 / E[1], -nuyz / E[1],
			-nuzx / E[2], -nuyz / E[1], 1 / E[2],
		})
		C mat.Dense
	)
	for n := 0; n < 3; n++ {
		if E[n] <= 0 || G[n] <= 0 {
			err = fmt.Errorf("orthotropic moduli must be positive, have E = %v, G = %v", E, G)
			return
		}
	}
	if err = C.Inverse(S); err != nil {
		err = fmt.Errorf("orthotropic compliance is singular: %w", err)
		return
	}
	ss.D = mat.NewSymDense(6, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			// symmetric only to rounding after inversion
			ss.D.SetSym(i, j, 0.5*(C.At(i, j)+C.At(j, i)))
		}
		ss.D.SetSym(i+3, i+3, G[i])
	}
	return
}

func NewFromPacked(ut [21]float64) (ss StressStrain) {
	ss.D = mat.NewSymDense(6, nil)
	for j := 0; j < 6; j++ {
		for i := 0; i <= j; i++ {
			ss.D.SetSym(i, j, ut[PackedIndex(i, j)])
		}
	}
	return
}

func (ss StressStrain) UpperTriangularPacked() (ut [21]float64) {
	for j := 0; j < 6; j++ {
		for i := 0; i <= j; i++ {
			ut[PackedIndex(i, j)] = ss.D.At(i, j)
		}
	}
	return
}

/*
StressStrainOf converts the parameter set at offset of m into a stiffness
matrix. Offset must be 0 for single definitions.
*/
func StressStrainOf(m Material, offset int) (ss StressStrain, err error) {
	if offset < 0 || offset >= m.Size() {
		err = fmt.Errorf("offset %d outside material %q of size %d", offset, m.Name(), m.Size())
		return
	}
	switch mt := m.(type) {
	case *LinearIsotropic:
		ss = NewIsotropic(mt.E, mt.Nu)
	case *LinearIsotropicArray:
		ss = NewIsotropic(mt.E[offset], mt.Nu[offset])
	case *LinearOrthotropic:
		ss, err = NewOrthotropic(mt.E, mt.Nu, mt.G)
	case *LinearOrthotropicArray:
		ss, err = NewOrthotropic(mt.E[offset], mt.Nu[offset], mt.G[offset])
	case *LinearAnisotropic:
		ss = NewFromPacked(mt.D)
	case *LinearAnisotropicArray:
		ss = NewFromPacked(mt.D[offset])
	default:
		err = fmt.Errorf("material %q of type %T has no stress-strain form", m.Name(), m)
	}
	return
}
