package page

import (
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
)

/**
 * Page is the unit of simulated I/O. It holds at most common.PageCapacity tuples.
 * Reading or writing a page's worth of tuples costs one I/O.
 */
type Page struct {
	tuples []*tuple.Tuple
}

func NewPage() *Page {
	return &Page{make([]*tuple.Tuple, 0, common.PageCapacity)}
}

// AddTuple returns false when the page is already full
func (p *Page) AddTuple(tuple_ *tuple.Tuple) bool {
	if p.IsFull() {
		return false
	}
	p.tuples = append(p.tuples, tuple_)
	return true
}

func (p *Page) IsFull() bool {
	return len(p.tuples) >= common.PageCapacity
}

func (p *Page) IsEmpty() bool {
	return len(p.tuples) == 0
}

func (p *Page) OccupiedTuples() int {
	return len(p.tuples)
}

// GetTuples returns a copy of tuple list
func (p *Page) GetTuples() []*tuple.Tuple {
	ret := make([]*tuple.Tuple, len(p.tuples))
	copy(ret, p.tuples)
	return ret
}

func (p *Page) Clear() {
	p.tuples = p.tuples[:0]
}

// NumPagesFor returns how many pages tupleCnt tuples occupy
func NumPagesFor(tupleCnt int) int {
	return (tupleCnt + common.PageCapacity - 1) / common.PageCapacity
}
