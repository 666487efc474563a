package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims and At minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }

// Accumulate adds val into element (i,j).
func (m DOK) Accumulate(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

// CSR is the compressed, read only form used to apply an operator.
type CSR struct {
	M    *sparse.CSR
	name string
}

func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) Name() string        { return m.name }

// MulVec returns A*x for a vector x of length equal to the column count.
func (m CSR) MulVec(x []float64) (y []float64) {
	var (
		nr, nc = m.Dims()
	)
	if len(x) != nc {
		panic(fmt.Errorf("dimension mismatch multiplying %q: have %d columns, vector length %d",
			m.name, nc, len(x)))
	}
	y = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, v float64) {
		y[i] += v * x[j]
	})
	return
}

// RowSums returns the sum of each row.
func (m CSR) RowSums() (y []float64) {
	var (
		nr, _ = m.Dims()
	)
	y = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, v float64) {
		y[i] += v
	})
	return
}

/*
NewAveragingOperator builds the sparse block operator that maps values on
fine cells to their coarse cell. Row r holds, for every fine cell listed in
rows[r], the number of times that cell appears there; absent entries add
nothing.
*/
func NewAveragingOperator(rows [][8]ID, nFine int, name string) (A CSR) {
	W := NewDOK(len(rows), nFine)
	for r, row := range rows {
		for _, id := range row {
			if c, ok := id.Get(); ok {
				W.Accumulate(r, c, 1)
			}
		}
	}
	W.SetReadOnly(name)
	return W.ToCSR()
}
