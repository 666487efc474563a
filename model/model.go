package model

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/material"
)

// SolverParameters is the metadata passed through to the external solver.
type SolverParameters struct {
	MaximumIterations           int      `json:"MaximumIterations,omitempty"`
	ConvergenceTolerance        float64  `json:"ConvergenceTolerance,omitempty"`
	MaximumPlasticIterations    int      `json:"MaximumPlasticIterations,omitempty"`
	PlasticConvergenceTolerance float64  `json:"PlasticConvergenceTolerance,omitempty"`
	PostProcessingNodeSets      []string `json:"PostProcessingNodeSets,omitempty"`
	PostProcessingElementSets   []string `json:"PostProcessingElementSets,omitempty"`
	RotationCenter              *r3.Vec  `json:"RotationCenter,omitempty"`
}

/*
Model is a finite element model: a mesh plus the materials, constraints and
named sets a solver needs. Constraint and set names are unique within their
collection.
*/
type Model struct {
	*Mesh
	Materials      *material.Table
	Constraints    []*Constraint
	ConvergenceSet *Constraint
	NodeSets       []*IDSet
	ElementSets    []*IDSet
	Parameters     SolverParameters
}

func NewModel(m *Mesh) *Model {
	if m == nil {
		m = NewMesh()
	}
	return &Model{
		Mesh:      m,
		Materials: material.NewTable(),
	}
}

func (fe *Model) AddConstraint(c *Constraint) (err error) {
	if fe.GetConstraint(c.Name) != nil {
		err = fmt.Errorf("duplicate constraint name %q", c.Name)
		return
	}
	fe.Constraints = append(fe.Constraints, c)
	return
}

func (fe *Model) GetConstraint(name string) *Constraint {
	for _, c := range fe.Constraints {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (fe *Model) AddNodeSet(s *IDSet) (err error) {
	if getSet(fe.NodeSets, s.Name) != nil {
		err = fmt.Errorf("duplicate node set name %q", s.Name)
		return
	}
	fe.NodeSets = append(fe.NodeSets, s)
	return
}

func (fe *Model) AddElementSet(s *IDSet) (err error) {
	if getSet(fe.ElementSets, s.Name) != nil {
		err = fmt.Errorf("duplicate element set name %q", s.Name)
		return
	}
	fe.ElementSets = append(fe.ElementSets, s)
	return
}

func (fe *Model) GetNodeSet(name string) *IDSet { return getSet(fe.NodeSets, name) }

func (fe *Model) GetElementSet(name string) *IDSet { return getSet(fe.ElementSets, name) }

func getSet(sets []*IDSet, name string) *IDSet {
	for _, s := range sets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (fe *Model) Print() {
	fmt.Printf("[%d]\t\t\t= Points\n", fe.NumberOfPoints())
	fmt.Printf("[%d]\t\t\t= Cells\n", fe.NumberOfCells())
	for _, index := range fe.Materials.Indices() {
		m, _ := fe.Materials.Get(index)
		fmt.Printf("Material[%d] = %s %q (size %d)\n", index, material.Kind(m), m.Name(), m.Size())
	}
	for _, c := range fe.Constraints {
		fmt.Printf("Constraint[%s] = %s on %s, %d entries\n", c.Name, c.Type, c.AppliedTo, c.Len())
	}
	if fe.ConvergenceSet != nil {
		fmt.Printf("ConvergenceSet[%s] = %d entries\n", fe.ConvergenceSet.Name, fe.ConvergenceSet.Len())
	}
	for _, s := range fe.NodeSets {
		fmt.Printf("NodeSet[%s] = %d nodes\n", s.Name, len(s.IDs))
	}
	for _, s := range fe.ElementSets {
		fmt.Printf("ElementSet[%s] = %d elements\n", s.Name, len(s.IDs))
	}
}
