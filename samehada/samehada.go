package samehada

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/errors"
	"github.com/ryogrid/SamehadaSMJ/execution/accounting"
	"github.com/ryogrid/SamehadaSMJ/execution/executors"
	"github.com/ryogrid/SamehadaSMJ/execution/plans"
	"github.com/ryogrid/SamehadaSMJ/storage/table"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
	"github.com/ryogrid/SamehadaSMJ/types"
	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/slices"
)

const ErrColumnNotFound = errors.Error("join column is not found")

// JoinResult is what one sort-merge join execution produced
type JoinResult struct {
	Name  string
	Rows  []*tuple.Tuple
	Stats accounting.Stats
	// not nil when the join failed. Rows is empty then
	Err error
}

// Columns returns union of column names of all rows in name order
func (r *JoinResult) Columns() []string {
	cols := mapset.NewThreadUnsafeSet[string]()
	for _, row := range r.Rows {
		for _, col := range row.Columns() {
			cols.Add(col)
		}
	}
	ret := cols.ToSlice()
	slices.Sort(ret)
	return ret
}

// Fingerprint is a digest of rows in emitted order. same rows in same order, same value.
func (r *JoinResult) Fingerprint() uint64 {
	hasher := murmur3.New64()
	for _, row := range r.Rows {
		hasher.Write([]byte(row.Serialize()))
		hasher.Write([]byte{'\n'})
	}
	return hasher.Sum64()
}

/**
 * SortMergeJoin is the operator which joins two relations with equality
 * of leftColumn and rightColumn. both relations are sorted by external merge sort
 * and then merged.
 */
type SortMergeJoin struct {
	left_          table.Relation
	right_         table.Relation
	left_column_   string
	right_column_  string
	buffer_frames_ int
	shi_           *SamehadaInstance
	exec_engine_   *executors.ExecutionEngine
}

func NewSortMergeJoin(shi *SamehadaInstance, left table.Relation, right table.Relation, leftColumn string, rightColumn string) *SortMergeJoin {
	return &SortMergeJoin{left, right, leftColumn, rightColumn, common.BufferPoolFrames, shi, &executors.ExecutionEngine{}}
}

// SetBufferFrames changes page frames which each sort can use
func (j *SortMergeJoin) SetBufferFrames(frames int) {
	j.buffer_frames_ = frames
}

func checkJoinColumn(relation table.Relation, column string) error {
	schema_ := relation.Schema()
	// a relation without header (e.g. missing file) is just empty
	if schema_.GetColumnCount() == 0 {
		return nil
	}
	if schema_.GetColIndex(column) < 0 {
		return fmt.Errorf("%w: %s.%s", ErrColumnNotFound, relation.GetTableName(), column)
	}
	return nil
}

// Execute runs the join. every run created on the way is released before return.
func (j *SortMergeJoin) Execute() (*JoinResult, error) {
	common.ShPrintf(common.INFO, "Executing Sort-Merge Join between %s and %s\n", j.left_.GetTableName(), j.right_.GetTableName())
	common.ShPrintf(common.INFO, "Condition: %s.%s = %s.%s\n", j.left_.GetTableName(), j.left_column_, j.right_.GetTableName(), j.right_column_)

	if err := checkJoinColumn(j.left_, j.left_column_); err != nil {
		return nil, err
	}
	if err := checkJoinColumn(j.right_, j.right_column_); err != nil {
		return nil, err
	}

	context := j.shi_.NewExecutorContext()
	defer context.ReleaseRuns()

	plan := plans.NewSortMergeJoinPlan(j.left_, j.right_, j.left_column_, j.right_column_, j.buffer_frames_)
	if common.ActiveLogKindSetting&common.DEBUG_INFO > 0 {
		plans.PrintPlanTree(plan, 0)
	}
	rows, err := j.exec_engine_.Execute(plan, context)
	if err != nil {
		return nil, fmt.Errorf("sort-merge join of %s and %s: %w", j.left_.GetTableName(), j.right_.GetTableName(), err)
	}

	stats := context.GetAccountant().Stats()
	common.ShPrintf(common.INFO, "Join finished. %d tuples generated, %d pages, %d I/Os\n", stats.TuplesCount, stats.PagesCount, stats.IOCount)
	return &JoinResult{Rows: rows, Stats: stats}, nil
}

func ConvTupleListToValues(columns []string, result []*tuple.Tuple) [][]*types.Value {
	retVals := make([][]*types.Value, 0)
	for _, tuple_ := range result {
		rowVals := make([]*types.Value, 0)
		for _, col := range columns {
			val := tuple_.GetValue(col)
			rowVals = append(rowVals, &val)
		}
		retVals = append(retVals, rowVals)
	}
	return retVals
}

func PrintExecuteResults(results [][]*types.Value) {
	fmt.Println("----")
	for _, valList := range results {
		for _, val := range valList {
			fmt.Printf("%s ", val.ToString())
		}
		fmt.Println("")
	}
}
