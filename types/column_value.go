package types

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ryogrid/SamehadaSMJ/errors"
)

const ErrIncomparableTypes = errors.Error("values of incomparable types are compared")

// A Value is a column value of a tuple. Its kind is decided when the value
// is built (from a loaded field or a deserialized run line) and never changes.
type Value struct {
	valueType TypeID
	integer   int64
	float     float64
	varchar   string
}

func NewInteger(value int64) Value {
	return Value{valueType: Integer, integer: value}
}

func NewFloat(value float64) Value {
	return Value{valueType: Float, float: value}
}

// NewVarchar returns NULL for an empty string. empty text and NULL are not
// distinguished anywhere (csv fields, scratch storage, output files).
func NewVarchar(value string) Value {
	if value == "" {
		return NewNull()
	}
	return Value{valueType: Varchar, varchar: value}
}

func NewNull() Value {
	return Value{valueType: Null}
}

// NewValueFromString decides the kind of a textual field.
// integer is tried first, then floating-point, otherwise the field is text.
// an empty field is NULL.
func NewValueFromString(str string) Value {
	if str == "" {
		return NewNull()
	}
	if i, err := strconv.ParseInt(str, 10, 64); err == nil {
		return NewInteger(i)
	}
	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return NewFloat(f)
	}
	return NewVarchar(str)
}

func (v Value) ValueType() TypeID {
	// zero Value is treated as NULL
	if v.valueType == Invalid {
		return Null
	}
	return v.valueType
}

func (v Value) IsNull() bool {
	return v.ValueType() == Null
}

// if you use this to get column value
// kind check is needed in general
func (v Value) ToInteger() int64 {
	return v.integer
}

// if you use this to get column value
// kind check is needed in general
func (v Value) ToFloat() float64 {
	return v.float
}

// if you use this to get column value
// kind check is needed in general
func (v Value) ToVarchar() string {
	return v.varchar
}

func (v Value) asFloat64() float64 {
	if v.valueType == Integer {
		return float64(v.integer)
	}
	return v.float
}

// Compare returns -1, 0 or 1 as v is less than, equal to or greater than right.
// NULL is less than any other value and equal to NULL. Integer and Float are
// compared numerically. Comparing text with a number returns ErrIncomparableTypes.
func (v Value) Compare(right Value) (int, error) {
	lType := v.ValueType()
	rType := right.ValueType()

	switch {
	case lType == Null && rType == Null:
		return 0, nil
	case lType == Null:
		return -1, nil
	case rType == Null:
		return 1, nil
	}

	switch {
	case lType == Varchar && rType == Varchar:
		return strings.Compare(v.varchar, right.varchar), nil
	case lType == Integer && rType == Integer:
		return cmp.Compare(v.integer, right.integer), nil
	case lType.IsNumeric() && rType.IsNumeric():
		return cmp.Compare(v.asFloat64(), right.asFloat64()), nil
	}
	return 0, fmt.Errorf("%w: %s(%s) and %s(%s)", ErrIncomparableTypes, lType, v.ToString(), rType, right.ToString())
}

// CompareEquals is false when the values can not be compared
func (v Value) CompareEquals(right Value) bool {
	ret, err := v.Compare(right)
	return err == nil && ret == 0
}

// CompareLessThan is false when the values can not be compared
func (v Value) CompareLessThan(right Value) bool {
	ret, err := v.Compare(right)
	return err == nil && ret < 0
}

// ToString returns the textual form used by scratch storage and csv output.
// it is parsed back to the same kind by NewValueFromString (text which looks
// like a number is the exception). NULL is an empty string.
func (v Value) ToString() string {
	switch v.ValueType() {
	case Integer:
		return strconv.FormatInt(v.integer, 10)
	case Float:
		str := strconv.FormatFloat(v.float, 'g', -1, 64)
		if !math.IsInf(v.float, 0) && !math.IsNaN(v.float) && !strings.ContainsAny(str, ".e") {
			// keep the float kind on read back
			str += ".0"
		}
		return str
	case Varchar:
		return v.varchar
	}
	return ""
}

func (v Value) String() string {
	if v.IsNull() {
		return "NULL"
	}
	return v.ToString()
}
