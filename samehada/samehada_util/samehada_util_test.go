package samehada_util

import (
	"testing"

	testingpkg "github.com/ryogrid/SamehadaSMJ/testing/testing_assert"
)

func TestResultFileName(t *testing.T) {
	testingpkg.Equals(t, "vinho_join_uva.csv", ResultFileName("Vinho join Uva"))
	testingpkg.Equals(t, "a__b.csv", ResultFileName("A  B"))
	testingpkg.Equals(t, "plain.csv", ResultFileName("plain"))
}
