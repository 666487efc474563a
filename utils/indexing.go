package utils

import (
	"fmt"
	"sort"
)

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}

func (I Index) Apply(f func(val int) int) (r Index) {
	r = make(Index, len(I))
	for i, val := range I {
		r[i] = f(val)
	}
	return
}

/*
Remap sends every entry of I through the forward map fm. Every entry must be a
valid position in fm holding a present id; anything else is a logic error.
*/
func (I Index) Remap(fm []ID) (r Index) {
	return I.Apply(func(val int) int {
		if val < 0 || val >= len(fm) {
			panic(fmt.Errorf("index %d outside map of length %d", val, len(fm)))
		}
		return fm[val].MustGet()
	})
}

// SortedUnique returns the distinct values of I in ascending order.
func (I Index) SortedUnique() (r Index) {
	if len(I) == 0 {
		return Index{}
	}
	r = I.Copy()
	sort.Ints(r)
	var n int
	for i := 1; i < len(r); i++ {
		if r[i] != r[n] {
			n++
			r[n] = r[i]
		}
	}
	return r[:n+1]
}

// InRange returns an error naming the first entry outside [0,N).
func (I Index) InRange(N int) (err error) {
	for i, val := range I {
		if val < 0 || val >= N {
			err = fmt.Errorf("entry %d has value %d, outside range [0,%d)", i, val, N)
			return
		}
	}
	return
}

func (I Index) FindVec(op EvalOp, Values Index) (J Index) {
	/*
		Each element of Values is compared to the corresponding value of I:
		if (I[i] op Values[i]): append i to the output index J
	*/
	switch op {
	case Equal:
		for i, val := range I {
			if val == Values[i] {
				J = append(J, i)
			}
		}
	case Less:
		for i, val := range I {
			if val < Values[i] {
				J = append(J, i)
			}
		}
	case LessOrEqual:
		for i, val := range I {
			if val <= Values[i] {
				J = append(J, i)
			}
		}
	case Greater:
		for i, val := range I {
			if val > Values[i] {
				J = append(J, i)
			}
		}
	case GreaterOrEqual:
		for i, val := range I {
			if val >= Values[i] {
				J = append(J, i)
			}
		}
	}
	return
}

// Fill returns an Index of length N with every entry set to val.
func Fill(N, val int) (r Index) {
	r = make(Index, N)
	for i := range r {
		r[i] = val
	}
	return
}
