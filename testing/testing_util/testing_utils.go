package testing_util

import (
	"github.com/ryogrid/SamehadaSMJ/storage/table"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
	"github.com/ryogrid/SamehadaSMJ/types"
)

func GetValue(data interface{}) (value types.Value) {
	switch v := data.(type) {
	case nil:
		value = types.NewNull()
	case int:
		value = types.NewInteger(int64(v))
	case int32:
		value = types.NewInteger(int64(v))
	case int64:
		value = types.NewInteger(v)
	case float32:
		value = types.NewFloat(float64(v))
	case float64:
		value = types.NewFloat(v)
	case string:
		value = types.NewVarchar(v)
	case types.Value:
		value = v
	case *types.Value:
		return *v
	default:
		panic("not implemented")
	}
	return
}

func GetValueType(data interface{}) (value types.TypeID) {
	return GetValue(data).ValueType()
}

// MakeTuple makes a tuple which has columns with data converted by GetValue
func MakeTuple(columns []string, data ...interface{}) *tuple.Tuple {
	values := make([]types.Value, 0, len(data))
	for _, d := range data {
		values = append(values, GetValue(d))
	}
	return tuple.NewTupleFromValues(columns, values)
}

// MakeTable makes an in-memory relation. each row of rows becomes a tuple.
func MakeTable(name string, columns []string, rows [][]interface{}) *table.Table {
	tuples := make([]*tuple.Tuple, 0, len(rows))
	for _, row := range rows {
		tuples = append(tuples, MakeTuple(columns, row...))
	}
	return table.NewTableFromTuples(name, columns, tuples)
}
