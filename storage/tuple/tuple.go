package tuple

import (
	"fmt"
	"strings"

	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/errors"
	"github.com/ryogrid/SamehadaSMJ/types"
)

const ErrMalformedTupleLine = errors.Error("malformed tuple line")

/**
 * Tuple is an ordered mapping from column name to value.
 * A column which the tuple does not have is read as NULL.
 *
 * Serialized format (one line in scratch storage):
 * ---------------------------------------
 * | col1=val1;col2=val2;...;colN=valN |
 * ---------------------------------------
 * NULL columns are omitted. '%', ';', '=', CR and LF in names and values are percent-escaped.
 */
type Tuple struct {
	columns []string
	values  map[string]types.Value
}

var escaper = strings.NewReplacer("%", "%25", ";", "%3B", "=", "%3D", "\n", "%0A", "\r", "%0D")
var unescaper = strings.NewReplacer("%25", "%", "%3B", ";", "%3D", "=", "%0A", "\n", "%0D", "\r")

func NewTuple() *Tuple {
	return &Tuple{make([]string, 0), make(map[string]types.Value)}
}

// NewTupleFromValues creates a tuple which has columns[i] = values[i]
func NewTupleFromValues(columns []string, values []types.Value) *Tuple {
	common.SH_Assert(len(columns) == len(values), "column count and value count differ")
	ret := NewTuple()
	for ii, col := range columns {
		ret.SetValue(col, values[ii])
	}
	return ret
}

// SetValue sets value of the column. a newly added column is placed at the end.
func (t *Tuple) SetValue(colName string, val types.Value) {
	if _, exist := t.values[colName]; !exist {
		t.columns = append(t.columns, colName)
	}
	t.values[colName] = val
}

func (t *Tuple) GetValue(colName string) types.Value {
	if val, exist := t.values[colName]; exist {
		return val
	}
	return types.NewNull()
}

func (t *Tuple) HasColumn(colName string) bool {
	_, exist := t.values[colName]
	return exist
}

func (t *Tuple) Columns() []string {
	ret := make([]string, len(t.columns))
	copy(ret, t.columns)
	return ret
}

func (t *Tuple) ColumnCount() int {
	return len(t.columns)
}

// Merge returns column-wise union of t and right.
// when both have a column, value of t (left side) is used.
func (t *Tuple) Merge(right *Tuple) *Tuple {
	ret := &Tuple{make([]string, 0, len(t.columns)+len(right.columns)), make(map[string]types.Value, len(t.values)+len(right.values))}
	for _, col := range t.columns {
		ret.SetValue(col, t.values[col])
	}
	for _, col := range right.columns {
		if !ret.HasColumn(col) {
			ret.SetValue(col, right.values[col])
		}
	}
	return ret
}

// CompareByColumn compares value of colName of t and other
func (t *Tuple) CompareByColumn(other *Tuple, colName string) (int, error) {
	return t.GetValue(colName).Compare(other.GetValue(colName))
}

// ValuesOf returns textual values of specified columns. NULL and absent columns are empty string.
func (t *Tuple) ValuesOf(columns []string) []string {
	ret := make([]string, len(columns))
	for ii, col := range columns {
		ret[ii] = t.GetValue(col).ToString()
	}
	return ret
}

func (t *Tuple) Serialize() string {
	var sb strings.Builder
	first := true
	for _, col := range t.columns {
		val := t.values[col]
		if val.IsNull() {
			continue
		}
		if !first {
			sb.WriteString(common.TupleFieldSeparator)
		}
		first = false
		sb.WriteString(escaper.Replace(col))
		sb.WriteString(common.TupleKeyValueSeparator)
		sb.WriteString(escaper.Replace(val.ToString()))
	}
	return sb.String()
}

// DeserializeTuple is the reverse of Serialize.
// kind of each value is decided by types.NewValueFromString.
func DeserializeTuple(line string) (*Tuple, error) {
	ret := NewTuple()
	if line == "" {
		return ret, nil
	}
	for _, item := range strings.Split(line, common.TupleFieldSeparator) {
		kv := strings.SplitN(item, common.TupleKeyValueSeparator, 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedTupleLine, line)
		}
		ret.SetValue(unescaper.Replace(kv[0]), types.NewValueFromString(unescaper.Replace(kv[1])))
	}
	return ret, nil
}

func (t *Tuple) String() string {
	items := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		items = append(items, fmt.Sprintf("%s: %s", col, t.values[col]))
	}
	return strings.Join(items, ", ")
}
