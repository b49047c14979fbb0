package testing_tbl_gen

import (
	"fmt"
	"math/rand"

	"github.com/ryogrid/SamehadaSMJ/storage/table"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
	"github.com/ryogrid/SamehadaSMJ/types"
)

type ColumnInsertMeta struct {
	/**
	 * Name of the column
	 */
	Name_ string
	/**
	 * Type of the column
	 */
	Type_ types.TypeID
	/**
	 * Whether the column is nullable
	 */
	Nullable_ bool
	/**
	 * Distribution of values
	 */
	Dist_ int32
	/**
	 * min value of the column
	 */
	Min_ int64
	/**
	 * max value of the column
	 */
	Max_ int64
	/**
	 * Counter to generate serial data
	 */
	Serial_counter_ int64
}

type TableInsertMeta struct {
	/**
	 * Name of the table
	 */
	Name_ string
	/**
	 * Number of rows
	 */
	Num_rows_ uint32
	/**
	 * Columns
	 */
	Col_meta_ []*ColumnInsertMeta
	/**
	 * Seed of random values (same seed, same table)
	 */
	Seed_ int64
}

const DistSerial int32 = 0
const DistUniform int32 = 1

// Min_, Min_+1, ..., Max_, Min_, ... so every value appears many times
const DistDuplicate int32 = 2

const TEST1_SIZE uint32 = 1000
const TEST2_SIZE uint32 = 100

// one of NULL_RATIO values of a nullable column is NULL
const NULL_RATIO = 10

func genNumericValue(col_meta *ColumnInsertMeta, rnd *rand.Rand, idx uint32) int64 {
	switch col_meta.Dist_ {
	case DistSerial:
		ret := col_meta.Serial_counter_
		col_meta.Serial_counter_ += 1
		return ret
	case DistDuplicate:
		return col_meta.Min_ + int64(idx)%(col_meta.Max_-col_meta.Min_+1)
	default:
		return col_meta.Min_ + rnd.Int63n(col_meta.Max_-col_meta.Min_+1)
	}
}

func MakeValue(col_meta *ColumnInsertMeta, rnd *rand.Rand, idx uint32) types.Value {
	if col_meta.Nullable_ && rnd.Intn(NULL_RATIO) == 0 {
		return types.NewNull()
	}
	num := genNumericValue(col_meta, rnd, idx)
	switch col_meta.Type_ {
	case types.Integer:
		return types.NewInteger(num)
	case types.Float:
		return types.NewFloat(float64(num) + 0.5)
	case types.Varchar:
		return types.NewVarchar(fmt.Sprintf("val%08d", num))
	default:
		panic("Not yet implemented")
	}
}

func makeColumnNames(table_meta *TableInsertMeta) []string {
	ret := make([]string, 0, len(table_meta.Col_meta_))
	for _, col_meta := range table_meta.Col_meta_ {
		ret = append(ret, col_meta.Name_)
	}
	return ret
}

// FillTable appends Num_rows_ generated tuples to tbl
func FillTable(tbl *table.Table, table_meta *TableInsertMeta) {
	rnd := rand.New(rand.NewSource(table_meta.Seed_))
	columns := makeColumnNames(table_meta)
	for ii := uint32(0); ii < table_meta.Num_rows_; ii++ {
		values := make([]types.Value, 0, len(table_meta.Col_meta_))
		for _, col_meta := range table_meta.Col_meta_ {
			values = append(values, MakeValue(col_meta, rnd, ii))
		}
		tbl.InsertTuple(tuple.NewTupleFromValues(columns, values))
	}
}

// GenerateTable makes an in-memory paged relation from table_meta
func GenerateTable(table_meta *TableInsertMeta) *table.Table {
	tbl := table.NewTableFromTuples(table_meta.Name_, makeColumnNames(table_meta), nil)
	FillTable(tbl, table_meta)
	return tbl
}

func GenerateTestTabls() (*table.Table, *table.Table) {
	tableMeta1 := &TableInsertMeta{"test_1",
		TEST1_SIZE,
		[]*ColumnInsertMeta{
			{"colA", types.Integer, false, DistSerial, 0, 0, 0},
			{"colB", types.Integer, false, DistUniform, 0, 9, 0},
			{"colC", types.Integer, false, DistUniform, 0, 9999, 0},
			{"colD", types.Varchar, false, DistUniform, 0, 99999, 0},
		}, 1}
	tableMeta2 := &TableInsertMeta{"test_2",
		TEST2_SIZE,
		[]*ColumnInsertMeta{
			{"col1", types.Integer, false, DistSerial, 0, 0, 0},
			{"col2", types.Integer, false, DistDuplicate, 0, 9, 0},
			{"col3", types.Integer, false, DistUniform, 0, 1024, 0},
			{"col4", types.Float, true, DistUniform, 0, 2048, 0},
		}, 2}

	return GenerateTable(tableMeta1), GenerateTable(tableMeta2)
}
