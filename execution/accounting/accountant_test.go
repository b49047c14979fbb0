package accounting

import (
	"testing"

	testingpkg "github.com/ryogrid/SamehadaSMJ/testing/testing_assert"
)

func TestAccountant(t *testing.T) {
	acc := NewAccountant()
	acc.AddIO(3)
	acc.AddOutputPage()
	acc.AddOutputPage()
	for ii := 0; ii < 15; ii++ {
		acc.AddTuple()
	}
	testingpkg.Equals(t, Stats{IOCount: 5, PagesCount: 2, TuplesCount: 15}, acc.Stats())
	testingpkg.Equals(t, 5, acc.GetIOCount())
	testingpkg.Equals(t, 2, acc.GetPagesCount())
	testingpkg.Equals(t, 15, acc.GetTuplesCount())

	total := acc.Stats().Add(Stats{IOCount: 10, PagesCount: 1, TuplesCount: 4})
	testingpkg.Equals(t, Stats{IOCount: 15, PagesCount: 3, TuplesCount: 19}, total)
}
