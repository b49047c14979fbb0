package types

import (
	"errors"
	"math"
	"testing"

	testingpkg "github.com/ryogrid/SamehadaSMJ/testing/testing_assert"
)

func TestNewValueFromString(t *testing.T) {
	testingpkg.Equals(t, Integer, NewValueFromString("42").ValueType())
	testingpkg.Equals(t, int64(-7), NewValueFromString("-7").ToInteger())
	testingpkg.Equals(t, Float, NewValueFromString("3.25").ValueType())
	testingpkg.Equals(t, 3.25, NewValueFromString("3.25").ToFloat())
	testingpkg.Equals(t, Varchar, NewValueFromString("Merlot").ValueType())
	testingpkg.Equals(t, Null, NewValueFromString("").ValueType())
	testingpkg.Equals(t, Null, Value{}.ValueType())
}

func TestToStringKeepsKind(t *testing.T) {
	values := []Value{
		NewInteger(0),
		NewInteger(math.MaxInt64),
		NewFloat(3),
		NewFloat(-0.5),
		NewFloat(1e21),
		NewFloat(math.Inf(1)),
		NewVarchar("Cabernet Sauvignon"),
	}
	for _, val := range values {
		back := NewValueFromString(val.ToString())
		testingpkg.Assert(t, back.ValueType() == val.ValueType(), "kind of %s changed to %s", val, back.ValueType())
		testingpkg.Assert(t, back.CompareEquals(val), "%s was read back as %s", val, back)
	}
	testingpkg.Equals(t, "3.0", NewFloat(3).ToString())
	testingpkg.Equals(t, "", NewNull().ToString())
}

func TestCompare(t *testing.T) {
	cases := []struct {
		lhs Value
		rhs Value
		exp int
	}{
		{NewInteger(1), NewInteger(2), -1},
		{NewInteger(2), NewInteger(2), 0},
		{NewInteger(3), NewInteger(2), 1},
		{NewInteger(2), NewFloat(2.5), -1},
		{NewFloat(2.0), NewInteger(2), 0},
		{NewVarchar("abc"), NewVarchar("abd"), -1},
		{NewVarchar("b"), NewVarchar("a"), 1},
		{NewNull(), NewInteger(-100), -1},
		{NewVarchar(" "), NewNull(), 1},
		{NewVarchar(""), NewNull(), 0},
		{NewNull(), NewNull(), 0},
	}
	for _, c := range cases {
		ret, err := c.lhs.Compare(c.rhs)
		testingpkg.Ok(t, err)
		testingpkg.Assert(t, ret == c.exp, "compare %s and %s: expected %d got %d", c.lhs, c.rhs, c.exp, ret)
	}
}

func TestCompareIncomparable(t *testing.T) {
	_, err := NewInteger(1).Compare(NewVarchar("1x"))
	testingpkg.Nok(t, err)
	testingpkg.SimpleAssert(t, errors.Is(err, ErrIncomparableTypes))

	_, err = NewVarchar("a").Compare(NewFloat(1.5))
	testingpkg.SimpleAssert(t, errors.Is(err, ErrIncomparableTypes))

	testingpkg.AssertFalse(t, NewInteger(1).CompareEquals(NewVarchar("1x")), "incomparable values are never equal")
	testingpkg.AssertFalse(t, NewInteger(1).CompareLessThan(NewVarchar("1x")), "incomparable values are never less")
}
