package imaging

import (
	"fmt"

	"github.com/notargets/gobone/types"
)

// Scalar is the set of numeric types a voxel grid can hold.
type Scalar interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | float32 | float64
}

/*
ScalarArray is the type-erased view of an Array used by algorithms that only
need to test, copy or read voxel values. Typed work goes through a type switch
on *Array[T].
*/
type ScalarArray interface {
	Kind() types.ScalarKind
	Len() int
	Name() string
	IsNonZero(i int) bool
	Float64(i int) float64
	SetFloat64(i int, val float64)
	// Zeroed returns a new zero-filled array of the same kind, length and name.
	Zeroed() ScalarArray
	// CopyValue sets dst[i] = src[i]; dst must be the same kind.
	CopyValue(dst ScalarArray, i int)
}

type Array[T Scalar] struct {
	Label string
	Data  []T
}

func NewArray[T Scalar](name string, n int) *Array[T] {
	return &Array[T]{Label: name, Data: make([]T, n)}
}

func NewArrayFrom[T Scalar](name string, data []T) *Array[T] {
	return &Array[T]{Label: name, Data: data}
}

func (a *Array[T]) Kind() types.ScalarKind {
	var zero T
	switch any(zero).(type) {
	case int8:
		return types.Int8
	case uint8:
		return types.Uint8
	case int16:
		return types.Int16
	case uint16:
		return types.Uint16
	case int32:
		return types.Int32
	case uint32:
		return types.Uint32
	case float32:
		return types.Float32
	default:
		return types.Float64
	}
}

func (a *Array[T]) Len() int                      { return len(a.Data) }
func (a *Array[T]) Name() string                  { return a.Label }
func (a *Array[T]) IsNonZero(i int) bool          { return a.Data[i] != 0 }
func (a *Array[T]) Float64(i int) float64         { return float64(a.Data[i]) }
func (a *Array[T]) SetFloat64(i int, val float64) { a.Data[i] = T(val) }

func (a *Array[T]) Zeroed() ScalarArray {
	return NewArray[T](a.Label, len(a.Data))
}

func (a *Array[T]) CopyValue(dst ScalarArray, i int) {
	d, ok := dst.(*Array[T])
	if !ok {
		panic(fmt.Errorf("copy from %s array into %s array", a.Kind(), dst.Kind()))
	}
	d.Data[i] = a.Data[i]
}

// NewScalarArray allocates a zeroed array of the named kind.
func NewScalarArray(kind types.ScalarKind, name string, n int) (sa ScalarArray, err error) {
	switch kind {
	case types.Int8:
		sa = NewArray[int8](name, n)
	case types.Uint8:
		sa = NewArray[uint8](name, n)
	case types.Int16:
		sa = NewArray[int16](name, n)
	case types.Uint16:
		sa = NewArray[uint16](name, n)
	case types.Int32:
		sa = NewArray[int32](name, n)
	case types.Uint32:
		sa = NewArray[uint32](name, n)
	case types.Float32:
		sa = NewArray[float32](name, n)
	case types.Float64:
		sa = NewArray[float64](name, n)
	default:
		err = fmt.Errorf("unsupported scalar type %s", kind)
	}
	return
}
