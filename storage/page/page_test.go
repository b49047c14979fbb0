package page

import (
	"testing"

	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
	testingpkg "github.com/ryogrid/SamehadaSMJ/testing/testing_assert"
	"github.com/ryogrid/SamehadaSMJ/types"
)

func TestPageCapacity(t *testing.T) {
	p := NewPage()
	testingpkg.SimpleAssert(t, p.IsEmpty())
	for ii := 0; ii < common.PageCapacity; ii++ {
		tpl := tuple.NewTupleFromValues([]string{"id"}, []types.Value{types.NewInteger(int64(ii))})
		testingpkg.Assert(t, p.AddTuple(tpl), "add %d should succeed", ii)
	}
	testingpkg.SimpleAssert(t, p.IsFull())
	testingpkg.Equals(t, common.PageCapacity, p.OccupiedTuples())

	extra := tuple.NewTupleFromValues([]string{"id"}, []types.Value{types.NewInteger(100)})
	testingpkg.AssertFalse(t, p.AddTuple(extra), "full page accepted a tuple")
	testingpkg.Equals(t, common.PageCapacity, p.OccupiedTuples())

	copied := p.GetTuples()
	copied[0] = extra
	testingpkg.Equals(t, int64(0), p.GetTuples()[0].GetValue("id").ToInteger())

	p.Clear()
	testingpkg.SimpleAssert(t, p.IsEmpty())
}

func TestNumPagesFor(t *testing.T) {
	testingpkg.Equals(t, 0, NumPagesFor(0))
	testingpkg.Equals(t, 1, NumPagesFor(1))
	testingpkg.Equals(t, 1, NumPagesFor(10))
	testingpkg.Equals(t, 2, NumPagesFor(11))
	testingpkg.Equals(t, 13, NumPagesFor(125))
}
