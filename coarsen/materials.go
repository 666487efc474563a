package coarsen

import (
	"fmt"

	"github.com/notargets/gobone/material"
	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/utils"
)

/*
generateMaterials assigns materials to the output cells. A model built from a
single plain material gets that material as an eight entry scaled series, and
each output cell indexes the entry matching the number of input cells it
covers. Otherwise every output cell gets its own entry of an averaged array:
anisotropic when any input is orthotropic or anisotropic, else isotropic.
*/
func generateMaterials(output, input *model.Model, reverse [][8]utils.ID, o options) (err error) {
	var (
		unique = input.Materials.UniqueMaterials()
		nOut   = len(reverse)
		nIn    = input.NumberOfCells()
	)
	if len(unique) == 0 {
		err = fmt.Errorf("empty material table")
		return
	}
	// Count multiplicity: the duplicated trailing layer counts twice
	W := utils.NewAveragingOperator(reverse, nIn, "coarsening")
	counts := W.RowSums()
	for oc, c := range counts {
		if c == 0 {
			panic(fmt.Errorf("output cell %d has no contributing input cells", oc))
		}
	}
	output.MaterialIDs = make([]int, nOut)
	if len(unique) == 1 && !unique[0].IsArray() {
		var series material.Material
		if series, err = material.ScaledSeries(unique[0], 8, unique[0].Name()); err != nil {
			return
		}
		for oc := range output.MaterialIDs {
			output.MaterialIDs[oc] = int(counts[oc])
		}
		err = output.Materials.Add(1, series)
		return
	}
	for oc := range output.MaterialIDs {
		output.MaterialIDs[oc] = oc + 1
	}
	// Resolve every input cell to its material and offset
	var (
		ms      = make([]material.Material, nIn)
		offsets = make([]int, nIn)
		ok      bool
	)
	for c, id := range input.MaterialIDs {
		if ms[c], offsets[c], ok = input.Materials.GetMaterialOrArray(id); !ok {
			err = fmt.Errorf("no material defined for material id %d of cell %d", id, c)
			return
		}
	}
	isotropic := true
	for _, m := range unique {
		if !material.IsIsotropic(m) {
			isotropic = false
			break
		}
	}
	var averaged material.Material
	if isotropic {
		averaged, err = averageIsotropic(W, counts, ms, offsets, o.materialName)
	} else {
		averaged, err = averageAnisotropic(W, ms, offsets, o.materialName)
	}
	if err != nil {
		return
	}
	err = output.Materials.Add(1, averaged)
	return
}

// averageIsotropic takes E as the block sum over 8 and nu as the mean over contributors.
func averageIsotropic(W utils.CSR, counts []float64, ms []material.Material, offsets []int,
	name string) (arr *material.LinearIsotropicArray, err error) {
	var (
		E  = make([]float64, len(ms))
		Nu = make([]float64, len(ms))
	)
	for c, m := range ms {
		switch mt := m.(type) {
		case *material.LinearIsotropic:
			E[c], Nu[c] = mt.E, mt.Nu
		case *material.LinearIsotropicArray:
			E[c], Nu[c] = mt.E[offsets[c]], mt.Nu[offsets[c]]
		default:
			err = fmt.Errorf("material %q is not isotropic", m.Name())
			return
		}
	}
	sumE, sumNu := W.MulVec(E), W.MulVec(Nu)
	arr = material.NewLinearIsotropicArray(name, len(counts))
	for oc := range counts {
		arr.E[oc] = sumE[oc] / 8
		arr.Nu[oc] = sumNu[oc] / counts[oc]
	}
	return
}

// averageAnisotropic sums the packed stiffness of each block and divides by 8.
func averageAnisotropic(W utils.CSR, ms []material.Material, offsets []int,
	name string) (arr *material.LinearAnisotropicArray, err error) {
	var (
		nOut, _ = W.Dims()
		packed  [21][]float64
	)
	for n := range packed {
		packed[n] = make([]float64, len(ms))
	}
	for c, m := range ms {
		var ss material.StressStrain
		if ss, err = material.StressStrainOf(m, offsets[c]); err != nil {
			return
		}
		ut := ss.UpperTriangularPacked()
		if utils.IsNan(ut[:]) {
			err = fmt.Errorf("material %q has a non-finite stress-strain matrix", m.Name())
			return
		}
		for n, v := range ut {
			packed[n][c] = v
		}
	}
	arr = material.NewLinearAnisotropicArray(name, nOut)
	for n := range packed {
		sums := W.MulVec(packed[n])
		for oc := range sums {
			arr.D[oc][n] = sums[oc] / 8
		}
	}
	return
}
