package types

import (
	"fmt"
	"strings"
)

// ScalarKind enumerates the numeric types a voxel grid can carry.
type ScalarKind uint8

const (
	Int8 ScalarKind = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

var ScalarKindNameMap = map[string]ScalarKind{
	"int8":    Int8,
	"char":    Int8,
	"uint8":   Uint8,
	"uchar":   Uint8,
	"int16":   Int16,
	"short":   Int16,
	"uint16":  Uint16,
	"ushort":  Uint16,
	"int32":   Int32,
	"int":     Int32,
	"uint32":  Uint32,
	"uint":    Uint32,
	"float32": Float32,
	"float":   Float32,
	"float64": Float64,
	"double":  Float64,
}

func NewScalarKind(label string) (sk ScalarKind, err error) {
	var ok bool
	if sk, ok = ScalarKindNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unsupported scalar type: %q", label)
	}
	return
}

func (sk ScalarKind) String() string {
	switch sk {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("ScalarKind(%d)", uint8(sk))
}

func (sk ScalarKind) IsInteger() bool {
	return sk != Float32 && sk != Float64
}

// Association says whether grid samples live on grid points or in grid cells.
type Association uint8

const (
	CellData Association = iota
	PointData
)

func NewAssociation(label string) (a Association, err error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "cell", "":
		a = CellData
	case "point":
		a = PointData
	default:
		err = fmt.Errorf("unknown data association: %q", label)
	}
	return
}

func (a Association) String() string {
	switch a {
	case CellData:
		return "cell"
	case PointData:
		return "point"
	}
	return fmt.Sprintf("Association(%d)", uint8(a))
}

type CellType uint8

const (
	Voxel CellType = iota
	Hexahedron
	Tetra
	Wedge
	Unknown
)

var CellTypeNameMap = map[string]CellType{
	"voxel":      Voxel,
	"hexahedron": Hexahedron,
	"hex":        Hexahedron,
	"tetra":      Tetra,
	"wedge":      Wedge,
}

func NewCellType(label string) CellType {
	if ct, ok := CellTypeNameMap[strings.ToLower(strings.TrimSpace(label))]; ok {
		return ct
	}
	return Unknown
}

func (ct CellType) String() string {
	switch ct {
	case Voxel:
		return "Voxel"
	case Hexahedron:
		return "Hexahedron"
	case Tetra:
		return "Tetra"
	case Wedge:
		return "Wedge"
	}
	return "Unknown"
}

// NumberOfPoints is the node count of a cell of this type.
func (ct CellType) NumberOfPoints() int {
	switch ct {
	case Voxel, Hexahedron:
		return 8
	case Tetra:
		return 4
	case Wedge:
		return 6
	}
	return 0
}
