package material

import (
	"fmt"
	"sort"
)

/*
Table maps positive material indices to materials. An array material at index
k also answers for indices k+1 .. k+Size()-1 through GetMaterialOrArray.
*/
type Table struct {
	materials map[int]Material
	sorted    []int // ascending keys, nil when stale
}

func NewTable() *Table {
	return &Table{materials: make(map[int]Material)}
}

// Add inserts or replaces the material at index; index 0 is reserved.
func (t *Table) Add(index int, m Material) (err error) {
	if index < 1 {
		err = fmt.Errorf("invalid material index %d, must be >= 1", index)
		return
	}
	if m == nil {
		err = fmt.Errorf("nil material at index %d", index)
		return
	}
	t.materials[index] = m
	t.sorted = nil
	return
}

func (t *Table) Get(index int) (m Material, ok bool) {
	m, ok = t.materials[index]
	return
}

func (t *Table) Len() int { return len(t.materials) }

// Indices returns the defined indices in ascending order.
func (t *Table) Indices() (indices []int) {
	return append([]int(nil), t.keys()...)
}

func (t *Table) keys() []int {
	if t.sorted == nil {
		t.sorted = make([]int, 0, len(t.materials))
		for index := range t.materials {
			t.sorted = append(t.sorted, index)
		}
		sort.Ints(t.sorted)
	}
	return t.sorted
}

/*
GetMaterialOrArray returns the material at the greatest index <= id and the
offset of id from that index. ok is false when no index <= id exists, or the
entry found is a single definition that does not cover id, or an array too
short to reach id.
*/
func (t *Table) GetMaterialOrArray(id int) (m Material, offset int, ok bool) {
	indices := t.keys()
	n := sort.SearchInts(indices, id+1)
	if n == 0 {
		return
	}
	key := indices[n-1]
	m, offset = t.materials[key], id-key
	ok = offset < m.Size()
	return
}

// UniqueMaterials lists distinct materials in index order; a material added under several indices appears once.
func (t *Table) UniqueMaterials() (ms []Material) {
	seen := make(map[Material]bool)
	for _, index := range t.Indices() {
		m := t.materials[index]
		if !seen[m] {
			seen[m] = true
			ms = append(ms, m)
		}
	}
	return
}
