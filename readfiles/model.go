package readfiles

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/material"
	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

/*
MaterialRecord is a tagged material entry. Parameter lists are flattened:
an isotropic material has one E and one Nu, an orthotropic material three of
each of E, Nu and G, an anisotropic material 21 packed D entries; arrays
repeat that block once per element.
*/
type MaterialRecord struct {
	Index int       `json:"Index"`
	Type  string    `json:"Type"`
	Name  string    `json:"Name,omitempty"`
	E     []float64 `json:"E,omitempty"`
	Nu    []float64 `json:"Nu,omitempty"`
	G     []float64 `json:"G,omitempty"`
	D     []float64 `json:"D,omitempty"`
}

type ConstraintRecord struct {
	Name          string    `json:"Name"`
	Type          string    `json:"Type"`
	AppliedTo     string    `json:"AppliedTo"`
	Indices       []int     `json:"Indices"`
	Senses        []string  `json:"Senses,omitempty"`
	Values        []float64 `json:"Values,omitempty"`
	Distributions []string  `json:"Distributions,omitempty"`
}

type SetRecord struct {
	Name string `json:"Name"`
	IDs  []int  `json:"IDs"`
}

type ModelDocument struct {
	Points         [][3]float64                `json:"Points"`
	Cells          [][]int                     `json:"Cells"`
	CellTypes      []string                    `json:"CellTypes,omitempty"`
	MaterialIDs    []int                       `json:"MaterialIDs,omitempty"`
	PointData      map[string]*model.DataArray `json:"PointData,omitempty"`
	CellData       map[string]*model.DataArray `json:"CellData,omitempty"`
	Materials      []MaterialRecord            `json:"Materials,omitempty"`
	Constraints    []ConstraintRecord          `json:"Constraints,omitempty"`
	ConvergenceSet *ConstraintRecord           `json:"ConvergenceSet,omitempty"`
	NodeSets       []SetRecord                 `json:"NodeSets,omitempty"`
	ElementSets    []SetRecord                 `json:"ElementSets,omitempty"`
	Parameters     model.SolverParameters      `json:"Parameters"`
}

func EncodeModel(fe *model.Model) (doc *ModelDocument) {
	doc = &ModelDocument{
		Points:      make([][3]float64, len(fe.Points)),
		Cells:       fe.Cells,
		MaterialIDs: fe.MaterialIDs,
		PointData:   fe.PointData,
		CellData:    fe.CellData,
		Parameters:  fe.Parameters,
	}
	for p, x := range fe.Points {
		doc.Points[p] = [3]float64{x.X, x.Y, x.Z}
	}
	for _, ct := range fe.CellTypes {
		doc.CellTypes = append(doc.CellTypes, ct.String())
	}
	for _, index := range fe.Materials.Indices() {
		m, _ := fe.Materials.Get(index)
		doc.Materials = append(doc.Materials, EncodeMaterial(index, m))
	}
	for _, c := range fe.Constraints {
		doc.Constraints = append(doc.Constraints, encodeConstraint(c))
	}
	if fe.ConvergenceSet != nil {
		cr := encodeConstraint(fe.ConvergenceSet)
		doc.ConvergenceSet = &cr
	}
	for _, s := range fe.NodeSets {
		doc.NodeSets = append(doc.NodeSets, SetRecord{Name: s.Name, IDs: s.IDs})
	}
	for _, s := range fe.ElementSets {
		doc.ElementSets = append(doc.ElementSets, SetRecord{Name: s.Name, IDs: s.IDs})
	}
	return
}

func DecodeModel(doc *ModelDocument) (fe *model.Model, err error) {
	m := model.NewMesh()
	m.Points = make([]r3.Vec, len(doc.Points))
	for p, x := range doc.Points {
		m.Points[p] = r3.Vec{X: x[0], Y: x[1], Z: x[2]}
	}
	m.Cells = doc.Cells
	if len(doc.CellTypes) != 0 {
		for n, label := range doc.CellTypes {
			ct := types.NewCellType(label)
			if ct == types.Unknown {
				err = fmt.Errorf("cell %d has unknown cell type %q", n, label)
				return
			}
			m.CellTypes = append(m.CellTypes, ct)
		}
	} else {
		for range m.Cells {
			m.CellTypes = append(m.CellTypes, types.Voxel)
		}
	}
	m.MaterialIDs = doc.MaterialIDs
	if doc.PointData != nil {
		m.PointData = doc.PointData
	}
	if doc.CellData != nil {
		m.CellData = doc.CellData
	}
	if err = m.Validate(); err != nil {
		return
	}
	fe = model.NewModel(m)
	fe.Parameters = doc.Parameters
	for _, mr := range doc.Materials {
		var mat material.Material
		if mat, err = DecodeMaterial(mr); err != nil {
			return
		}
		if err = fe.Materials.Add(mr.Index, mat); err != nil {
			return
		}
	}
	for _, cr := range doc.Constraints {
		var c *model.Constraint
		if c, err = decodeConstraint(cr); err != nil {
			return
		}
		if err = fe.AddConstraint(c); err != nil {
			return
		}
	}
	if doc.ConvergenceSet != nil {
		if fe.ConvergenceSet, err = decodeConstraint(*doc.ConvergenceSet); err != nil {
			return
		}
	}
	for _, sr := range doc.NodeSets {
		if err = fe.AddNodeSet(&model.IDSet{Name: sr.Name, IDs: sr.IDs}); err != nil {
			return
		}
	}
	for _, sr := range doc.ElementSets {
		if err = fe.AddElementSet(&model.IDSet{Name: sr.Name, IDs: sr.IDs}); err != nil {
			return
		}
	}
	return
}

func EncodeMaterial(index int, m material.Material) (mr MaterialRecord) {
	mr = MaterialRecord{Index: index, Type: material.Kind(m), Name: m.Name()}
	switch mt := m.(type) {
	case *material.LinearIsotropic:
		mr.E, mr.Nu = []float64{mt.E}, []float64{mt.Nu}
	case *material.LinearIsotropicArray:
		mr.E, mr.Nu = mt.E, mt.Nu
	case *material.LinearOrthotropic:
		mr.E, mr.Nu, mr.G = mt.E[:], mt.Nu[:], mt.G[:]
	case *material.LinearOrthotropicArray:
		for n := range mt.E {
			mr.E = append(mr.E, mt.E[n][:]...)
			mr.Nu = append(mr.Nu, mt.Nu[n][:]...)
			mr.G = append(mr.G, mt.G[n][:]...)
		}
	case *material.LinearAnisotropic:
		mr.D = mt.D[:]
	case *material.LinearAnisotropicArray:
		for n := range mt.D {
			mr.D = append(mr.D, mt.D[n][:]...)
		}
	}
	return
}

func DecodeMaterial(mr MaterialRecord) (m material.Material, err error) {
	// blocks checks that every parameter list holds n whole blocks of the given size
	blocks := func(size int, lists ...[]float64) (n int, err error) {
		n = len(lists[0]) / size
		for _, l := range lists {
			if len(l) == 0 || len(l) != n*size {
				err = fmt.Errorf("material %d (%s): parameter lists must hold %d values per entry",
					mr.Index, mr.Type, size)
				return
			}
		}
		return
	}
	var n int
	switch mr.Type {
	case "LinearIsotropic":
		if n, err = blocks(1, mr.E, mr.Nu); err == nil && n != 1 {
			err = fmt.Errorf("material %d: isotropic material needs single E and Nu", mr.Index)
		}
		if err == nil {
			m = &material.LinearIsotropic{Label: mr.Name, E: mr.E[0], Nu: mr.Nu[0]}
		}
	case "LinearIsotropicArray":
		if n, err = blocks(1, mr.E, mr.Nu); err == nil {
			a := material.NewLinearIsotropicArray(mr.Name, n)
			copy(a.E, mr.E)
			copy(a.Nu, mr.Nu)
			m = a
		}
	case "LinearOrthotropic":
		if n, err = blocks(3, mr.E, mr.Nu, mr.G); err == nil && n != 1 {
			err = fmt.Errorf("material %d: orthotropic material needs three each of E, Nu and G", mr.Index)
		}
		if err == nil {
			o := &material.LinearOrthotropic{Label: mr.Name}
			copy(o.E[:], mr.E)
			copy(o.Nu[:], mr.Nu)
			copy(o.G[:], mr.G)
			m = o
		}
	case "LinearOrthotropicArray":
		if n, err = blocks(3, mr.E, mr.Nu, mr.G); err == nil {
			a := material.NewLinearOrthotropicArray(mr.Name, n)
			for i := 0; i < n; i++ {
				copy(a.E[i][:], mr.E[3*i:])
				copy(a.Nu[i][:], mr.Nu[3*i:])
				copy(a.G[i][:], mr.G[3*i:])
			}
			m = a
		}
	case "LinearAnisotropic":
		if n, err = blocks(21, mr.D); err == nil && n != 1 {
			err = fmt.Errorf("material %d: anisotropic material needs 21 D entries", mr.Index)
		}
		if err == nil {
			a := &material.LinearAnisotropic{Label: mr.Name}
			copy(a.D[:], mr.D)
			m = a
		}
	case "LinearAnisotropicArray":
		if n, err = blocks(21, mr.D); err == nil {
			a := material.NewLinearAnisotropicArray(mr.Name, n)
			for i := 0; i < n; i++ {
				copy(a.D[i][:], mr.D[21*i:])
			}
			m = a
		}
	default:
		err = fmt.Errorf("material %d has unknown type %q", mr.Index, mr.Type)
	}
	return
}

func encodeConstraint(c *model.Constraint) (cr ConstraintRecord) {
	cr = ConstraintRecord{
		Name:      c.Name,
		Type:      c.Type.String(),
		AppliedTo: c.AppliedTo.String(),
		Indices:   c.Indices,
		Values:    c.Values,
	}
	for _, s := range c.Senses {
		cr.Senses = append(cr.Senses, s.String())
	}
	for _, d := range c.Distributions {
		cr.Distributions = append(cr.Distributions, d.String())
	}
	return
}

func decodeConstraint(cr ConstraintRecord) (c *model.Constraint, err error) {
	c = &model.Constraint{
		Name:    cr.Name,
		Indices: utils.Index(cr.Indices),
		Values:  cr.Values,
	}
	if c.Type, err = types.NewConstraintType(cr.Type); err != nil {
		return
	}
	if cr.AppliedTo != "" {
		if c.AppliedTo, err = types.NewAppliedTo(cr.AppliedTo); err != nil {
			return
		}
	}
	if cr.Senses != nil {
		c.Senses = make([]types.Sense, len(cr.Senses))
		for n, label := range cr.Senses {
			if c.Senses[n], err = types.NewSense(label); err != nil {
				return
			}
		}
	}
	for _, label := range cr.Distributions {
		var d types.Distribution
		if d, err = types.NewDistribution(label); err != nil {
			return
		}
		c.Distributions = append(c.Distributions, d)
	}
	return
}

func ReadModel(path string) (fe *model.Model, err error) {
	var (
		data []byte
		doc  = &ModelDocument{}
	)
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	if err = yaml.Unmarshal(data, doc); err != nil {
		err = fmt.Errorf("parsing model %s: %w", path, err)
		return
	}
	if fe, err = DecodeModel(doc); err != nil {
		err = fmt.Errorf("model %s: %w", path, err)
	}
	return
}

func WriteModel(path string, fe *model.Model) (err error) {
	var data []byte
	if data, err = yaml.Marshal(EncodeModel(fe)); err != nil {
		return
	}
	err = os.WriteFile(path, data, 0644)
	return
}
