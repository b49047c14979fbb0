package tuple

import (
	"errors"
	"testing"

	testingpkg "github.com/ryogrid/SamehadaSMJ/testing/testing_assert"
	"github.com/ryogrid/SamehadaSMJ/types"
)

func TestTuple(t *testing.T) {
	expA, expB, expC, expD, expE := int64(99), "Hello World", 100.5, "áé&@#+\\çç;x=y%41", "blablablablabalbalalabalbalbalablablabalbalaba"
	tuple := NewTupleFromValues([]string{"a", "b", "c", "d", "e"},
		[]types.Value{types.NewInteger(expA), types.NewVarchar(expB), types.NewFloat(expC), types.NewVarchar(expD), types.NewVarchar(expE)})

	line := tuple.Serialize()
	back, err := DeserializeTuple(line)
	testingpkg.Ok(t, err)

	testingpkg.Equals(t, []string{"a", "b", "c", "d", "e"}, back.Columns())
	testingpkg.Equals(t, types.Integer, back.GetValue("a").ValueType())
	testingpkg.Equals(t, expA, back.GetValue("a").ToInteger())
	testingpkg.Equals(t, types.Varchar, back.GetValue("b").ValueType())
	testingpkg.Equals(t, expB, back.GetValue("b").ToVarchar())
	testingpkg.Equals(t, types.Float, back.GetValue("c").ValueType())
	testingpkg.Equals(t, expC, back.GetValue("c").ToFloat())
	testingpkg.Equals(t, expD, back.GetValue("d").ToVarchar())
	testingpkg.Equals(t, expE, back.GetValue("e").ToVarchar())
}

func TestSerializeFormat(t *testing.T) {
	tuple := NewTupleFromValues([]string{"id", "name", "price"},
		[]types.Value{types.NewInteger(1), types.NewVarchar("Malbec"), types.NewFloat(12)})
	testingpkg.Equals(t, "id=1;name=Malbec;price=12.0", tuple.Serialize())
}

func TestNullColumnIsOmitted(t *testing.T) {
	tuple := NewTupleFromValues([]string{"id", "note"}, []types.Value{types.NewInteger(5), types.NewNull()})
	testingpkg.Equals(t, "id=5", tuple.Serialize())

	back, err := DeserializeTuple(tuple.Serialize())
	testingpkg.Ok(t, err)
	testingpkg.AssertFalse(t, back.HasColumn("note"), "null column should not be serialized")
	testingpkg.SimpleAssert(t, back.GetValue("note").IsNull())
}

func TestEmptyVarcharIsNull(t *testing.T) {
	tuple := NewTupleFromValues([]string{"id", "note"}, []types.Value{types.NewInteger(5), types.NewVarchar("")})
	testingpkg.SimpleAssert(t, tuple.GetValue("note").IsNull())
	testingpkg.Equals(t, "id=5", tuple.Serialize())

	readBack, err := DeserializeTuple(tuple.Serialize())
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, readBack.GetValue("note").IsNull())
	testingpkg.SimpleAssert(t, readBack.GetValue("note").CompareEquals(tuple.GetValue("note")))
}

func TestDeserializeMalformed(t *testing.T) {
	_, err := DeserializeTuple("id=1;broken")
	testingpkg.SimpleAssert(t, errors.Is(err, ErrMalformedTupleLine))

	empty, err := DeserializeTuple("")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, empty.ColumnCount())
}

func TestMergeLeftWins(t *testing.T) {
	left := NewTupleFromValues([]string{"id", "a", "shared"},
		[]types.Value{types.NewInteger(1), types.NewVarchar("x"), types.NewVarchar("left")})
	right := NewTupleFromValues([]string{"id", "shared", "b"},
		[]types.Value{types.NewInteger(1), types.NewVarchar("right"), types.NewVarchar("p")})

	merged := left.Merge(right)
	testingpkg.Equals(t, []string{"id", "a", "shared", "b"}, merged.Columns())
	testingpkg.Equals(t, "left", merged.GetValue("shared").ToVarchar())
	testingpkg.Equals(t, "p", merged.GetValue("b").ToVarchar())
	// inputs are untouched
	testingpkg.Equals(t, 3, left.ColumnCount())
	testingpkg.Equals(t, 3, right.ColumnCount())
}
