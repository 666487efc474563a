package types

import (
	"fmt"
	"strings"
)

type ConstraintType uint8

const (
	Force ConstraintType = iota
	Displacement
)

type AppliedTo uint8

const (
	Nodes AppliedTo = iota
	Elements
)

// Sense is the axis a constraint component acts along.
type Sense uint8

const (
	SenseX Sense = iota
	SenseY
	SenseZ
)

// Distribution controls how an element-applied force is spread over the element.
type Distribution uint8

const (
	FaceX0 Distribution = iota
	FaceX1
	FaceY0
	FaceY1
	FaceZ0
	FaceZ1
	Body
)

var ConstraintTypeNameMap = map[string]ConstraintType{
	"force":        Force,
	"displacement": Displacement,
}

var AppliedToNameMap = map[string]AppliedTo{
	"nodes":    Nodes,
	"node":     Nodes,
	"elements": Elements,
	"element":  Elements,
}

var SenseNameMap = map[string]Sense{
	"x": SenseX,
	"y": SenseY,
	"z": SenseZ,
	"0": SenseX,
	"1": SenseY,
	"2": SenseZ,
}

var DistributionNameMap = map[string]Distribution{
	"face_x0": FaceX0,
	"face_x1": FaceX1,
	"face_y0": FaceY0,
	"face_y1": FaceY1,
	"face_z0": FaceZ0,
	"face_z1": FaceZ1,
	"body":    Body,
}

func NewConstraintType(label string) (ct ConstraintType, err error) {
	var ok bool
	if ct, ok = ConstraintTypeNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown constraint type: %q", label)
	}
	return
}

func NewAppliedTo(label string) (at AppliedTo, err error) {
	var ok bool
	if at, ok = AppliedToNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown constraint target: %q", label)
	}
	return
}

func NewSense(label string) (s Sense, err error) {
	var ok bool
	if s, ok = SenseNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown sense: %q", label)
	}
	return
}

func NewDistribution(label string) (d Distribution, err error) {
	var ok bool
	if d, ok = DistributionNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown distribution: %q", label)
	}
	return
}

func (ct ConstraintType) String() string {
	switch ct {
	case Force:
		return "FORCE"
	case Displacement:
		return "DISPLACEMENT"
	}
	return fmt.Sprintf("ConstraintType(%d)", uint8(ct))
}

func (at AppliedTo) String() string {
	switch at {
	case Nodes:
		return "NODES"
	case Elements:
		return "ELEMENTS"
	}
	return fmt.Sprintf("AppliedTo(%d)", uint8(at))
}

func (s Sense) String() string {
	switch s {
	case SenseX:
		return "X"
	case SenseY:
		return "Y"
	case SenseZ:
		return "Z"
	}
	return fmt.Sprintf("Sense(%d)", uint8(s))
}

func (d Distribution) String() string {
	switch d {
	case FaceX0:
		return "FACE_X0"
	case FaceX1:
		return "FACE_X1"
	case FaceY0:
		return "FACE_Y0"
	case FaceY1:
		return "FACE_Y1"
	case FaceZ0:
		return "FACE_Z0"
	case FaceZ1:
		return "FACE_Z1"
	case Body:
		return "BODY"
	}
	return fmt.Sprintf("Distribution(%d)", uint8(d))
}
