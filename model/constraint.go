package model

import (
	"fmt"

	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

/*
Constraint is a named set of (index, sense, value) triples applied to nodes
or elements. Senses and Values are the SENSE and VALUE attributes; a nil slice
means the attribute is missing. Element constraints also carry a per entry
Distribution.
*/
type Constraint struct {
	Name          string
	Type          types.ConstraintType
	AppliedTo     types.AppliedTo
	Indices       utils.Index
	Senses        []types.Sense
	Values        []float64
	Distributions []types.Distribution
}

func NewNodeConstraint(name string, ct types.ConstraintType, indices utils.Index,
	senses []types.Sense, values []float64) *Constraint {
	return &Constraint{
		Name:      name,
		Type:      ct,
		AppliedTo: types.Nodes,
		Indices:   indices,
		Senses:    senses,
		Values:    values,
	}
}

func (c *Constraint) Len() int { return len(c.Indices) }

// CheckAttributes reports missing or mismatched SENSE and VALUE arrays.
func (c *Constraint) CheckAttributes() (err error) {
	N := len(c.Indices)
	switch {
	case c.Senses == nil && N != 0:
		err = fmt.Errorf("constraint %q: missing attribute array SENSE", c.Name)
	case c.Values == nil && N != 0:
		err = fmt.Errorf("constraint %q: missing attribute array VALUE", c.Name)
	case len(c.Senses) != N:
		err = fmt.Errorf("constraint %q: SENSE has %d entries for %d indices", c.Name, len(c.Senses), N)
	case len(c.Values) != N:
		err = fmt.Errorf("constraint %q: VALUE has %d entries for %d indices", c.Name, len(c.Values), N)
	case c.AppliedTo == types.Elements && len(c.Distributions) != N:
		err = fmt.Errorf("constraint %q: DISTRIBUTION has %d entries for %d indices",
			c.Name, len(c.Distributions), N)
	}
	return
}

// Validate checks the attributes and that indices fall inside a mesh with np points and nc cells.
func (c *Constraint) Validate(np, nc int) (err error) {
	if err = c.CheckAttributes(); err != nil {
		return
	}
	limit := np
	if c.AppliedTo == types.Elements {
		limit = nc
	}
	if err = c.Indices.InRange(limit); err != nil {
		err = fmt.Errorf("constraint %q: %w", c.Name, err)
	}
	return
}

// IDSet is a named list of point or cell indices.
type IDSet struct {
	Name string
	IDs  utils.Index
}
