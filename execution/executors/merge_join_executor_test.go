package executors

import (
	"errors"
	"testing"

	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/execution/plans"
	"github.com/ryogrid/SamehadaSMJ/storage/table"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
	testingpkg "github.com/ryogrid/SamehadaSMJ/testing/testing_assert"
	"github.com/ryogrid/SamehadaSMJ/testing/testing_tbl_gen"
	"github.com/ryogrid/SamehadaSMJ/testing/testing_util"
	"github.com/ryogrid/SamehadaSMJ/types"
)

func executeJoin(t *testing.T, left table.Relation, right table.Relation, leftKey string, rightKey string) ([]*tuple.Tuple, *ExecutorContext, error) {
	ctx, store := newTestContext(t)
	plan := plans.NewSortMergeJoinPlan(left, right, leftKey, rightKey, common.BufferPoolFrames)
	results, err := (&ExecutionEngine{}).Execute(plan, ctx)
	ctx.ReleaseRuns()
	testingpkg.Equals(t, 0, len(store.LiveRuns()))
	return results, ctx, err
}

func TestMergeJoinSimple(t *testing.T) {
	left := testing_util.MakeTable("left", []string{"id", "a"}, [][]interface{}{
		{1, "x"}, {1, "y"}, {2, "z"},
	})
	right := testing_util.MakeTable("right", []string{"id", "b"}, [][]interface{}{
		{1, "p"}, {2, "q"}, {3, "r"},
	})

	results, ctx, err := executeJoin(t, left, right, "id", "id")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 3, len(results))
	testingpkg.Equals(t, "id=1;a=x;b=p", results[0].Serialize())
	testingpkg.Equals(t, "id=1;a=y;b=p", results[1].Serialize())
	testingpkg.Equals(t, "id=2;a=z;b=q", results[2].Serialize())

	stats := ctx.GetAccountant().Stats()
	testingpkg.Equals(t, 3, stats.TuplesCount)
	testingpkg.Equals(t, 1, stats.PagesCount)
	// each side: read 1 + run 1 + load 1. then 1 output page
	testingpkg.Equals(t, 7, stats.IOCount)
}

func TestMergeJoinDuplicateGroups(t *testing.T) {
	left := testing_util.MakeTable("left", []string{"k", "l"}, [][]interface{}{
		{7, 1}, {7, 2}, {5, 0}, {7, 3}, {7, 4},
	})
	right := testing_util.MakeTable("right", []string{"k", "r"}, [][]interface{}{
		{7, 10}, {9, 0}, {7, 20}, {7, 30},
	})

	results, ctx, err := executeJoin(t, left, right, "k", "k")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 12, len(results))
	// left-major order
	testingpkg.Equals(t, int64(1), results[0].GetValue("l").ToInteger())
	testingpkg.Equals(t, int64(10), results[0].GetValue("r").ToInteger())
	testingpkg.Equals(t, int64(1), results[2].GetValue("l").ToInteger())
	testingpkg.Equals(t, int64(30), results[2].GetValue("r").ToInteger())
	testingpkg.Equals(t, int64(2), results[3].GetValue("l").ToInteger())
	testingpkg.Equals(t, 2, ctx.GetAccountant().GetPagesCount())
	testingpkg.Equals(t, 12, ctx.GetAccountant().GetTuplesCount())
}

func TestMergeJoinMatchesNestedLoop(t *testing.T) {
	left := testing_tbl_gen.GenerateTable(&testing_tbl_gen.TableInsertMeta{Name_: "left", Num_rows_: 120,
		Col_meta_: []*testing_tbl_gen.ColumnInsertMeta{
			{Name_: "lkey", Type_: types.Integer, Nullable_: false, Dist_: testing_tbl_gen.DistUniform, Min_: 0, Max_: 20, Serial_counter_: 0},
			{Name_: "lseq", Type_: types.Integer, Nullable_: false, Dist_: testing_tbl_gen.DistSerial, Min_: 0, Max_: 0, Serial_counter_: 0},
		}, Seed_: 7})
	right := testing_tbl_gen.GenerateTable(&testing_tbl_gen.TableInsertMeta{Name_: "right", Num_rows_: 80,
		Col_meta_: []*testing_tbl_gen.ColumnInsertMeta{
			{Name_: "rkey", Type_: types.Integer, Nullable_: false, Dist_: testing_tbl_gen.DistUniform, Min_: 0, Max_: 20, Serial_counter_: 0},
			{Name_: "rseq", Type_: types.Integer, Nullable_: false, Dist_: testing_tbl_gen.DistSerial, Min_: 0, Max_: 0, Serial_counter_: 0},
		}, Seed_: 8})

	expected := 0
	for _, l := range left.GetTuples() {
		for _, r := range right.GetTuples() {
			if l.GetValue("lkey").CompareEquals(r.GetValue("rkey")) {
				expected++
			}
		}
	}

	results, ctx, err := executeJoin(t, left, right, "lkey", "rkey")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, expected, len(results))
	for _, tuple_ := range results {
		testingpkg.Assert(t, tuple_.GetValue("lkey").CompareEquals(tuple_.GetValue("rkey")), "keys differ: %v", tuple_)
	}
	assertNonDecreasing(t, results, "lkey")
	testingpkg.Equals(t, (expected+common.PageCapacity-1)/common.PageCapacity, ctx.GetAccountant().GetPagesCount())
}

func TestMergeJoinLeftColumnWins(t *testing.T) {
	left := testing_util.MakeTable("left", []string{"id", "name"}, [][]interface{}{{1, "L"}})
	right := testing_util.MakeTable("right", []string{"id", "name", "extra"}, [][]interface{}{{1, "R", 2.5}})

	results, _, err := executeJoin(t, left, right, "id", "id")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 1, len(results))
	testingpkg.Equals(t, "L", results[0].GetValue("name").ToVarchar())
	testingpkg.Equals(t, 2.5, results[0].GetValue("extra").ToFloat())
}

func TestMergeJoinNullKeysMatch(t *testing.T) {
	left := testing_util.MakeTable("left", []string{"k", "a"}, [][]interface{}{{nil, 1}, {3, 2}})
	right := testing_util.MakeTable("right", []string{"k", "b"}, [][]interface{}{{nil, 10}, {4, 20}})

	results, _, err := executeJoin(t, left, right, "k", "k")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 1, len(results))
	testingpkg.Equals(t, int64(10), results[0].GetValue("b").ToInteger())
}

func TestMergeJoinIntegerAndFloatKeys(t *testing.T) {
	left := testing_util.MakeTable("left", []string{"k"}, [][]interface{}{{1}, {2}})
	right := testing_util.MakeTable("right", []string{"f", "b"}, [][]interface{}{{2.0, "two"}, {2.5, "x"}})

	results, _, err := executeJoin(t, left, right, "k", "f")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 1, len(results))
	testingpkg.Equals(t, "two", results[0].GetValue("b").ToVarchar())
}

func TestMergeJoinEmptyInput(t *testing.T) {
	left := table.NewTableFromTuples("empty", []string{"id"}, nil)
	right := makeDescendingTable("right", 15)

	results, ctx, err := executeJoin(t, left, right, "id", "id")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, len(results))
	testingpkg.Equals(t, 0, ctx.GetAccountant().GetPagesCount())
	// right side is still sorted: read 2 + run 2 + load 2
	testingpkg.Equals(t, 6, ctx.GetAccountant().GetIOCount())
}

func TestMergeJoinIncomparableKeys(t *testing.T) {
	left := testing_util.MakeTable("left", []string{"k"}, [][]interface{}{{1}, {2}})
	right := testing_util.MakeTable("right", []string{"k"}, [][]interface{}{{"a"}, {"b"}})

	results, _, err := executeJoin(t, left, right, "k", "k")
	testingpkg.Assert(t, errors.Is(err, types.ErrIncomparableTypes), "unexpected error: %v", err)
	testingpkg.Assert(t, results == nil, "no result on error")
}

func TestMergeJoinOutputSchema(t *testing.T) {
	left := testing_util.MakeTable("left", []string{"id", "a"}, nil)
	right := testing_util.MakeTable("right", []string{"b", "id"}, nil)
	plan := plans.NewSortMergeJoinPlan(left, right, "id", "id", common.BufferPoolFrames)

	testingpkg.Equals(t, []string{"id", "a", "b"}, plan.OutputSchema().ColumnNames())
	testingpkg.Equals(t, plans.MergeJoin, plan.GetType())
	testingpkg.Equals(t, plans.ExternalSort, plan.GetLeftPlan().GetType())
	testingpkg.Equals(t, plans.SeqScan, plan.GetLeftPlan().GetChildAt(0).GetType())
}
