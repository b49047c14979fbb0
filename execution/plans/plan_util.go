package plans

import (
	"fmt"

	"github.com/ryogrid/SamehadaSMJ/storage/table"
)

// columns of left schema first, then columns only right schema has
func makeMergedOutputSchema(left_schema *table.Schema, right_schema *table.Schema) *table.Schema {
	columns := make([]string, 0, left_schema.GetColumnCount()+right_schema.GetColumnCount())
	columns = append(columns, left_schema.ColumnNames()...)
	for _, col := range right_schema.ColumnNames() {
		if left_schema.GetColIndex(col) < 0 {
			columns = append(columns, col)
		}
	}
	return table.NewSchema(columns)
}

/**
 * NewSortMergeJoinPlan builds
 *   MergeJoin(ExternalSort(SeqScan(left)), ExternalSort(SeqScan(right)))
 */
func NewSortMergeJoinPlan(left table.Relation, right table.Relation, leftKey string, rightKey string, bufferFrames int) *MergeJoinPlanNode {
	leftSort := NewExternalSortPlanNode(NewSeqScanPlanNode(left), leftKey, bufferFrames)
	rightSort := NewExternalSortPlanNode(NewSeqScanPlanNode(right), rightKey, bufferFrames)
	return NewMergeJoinPlanNode(leftSort, rightSort, leftKey, rightKey)
}

func PrintPlanTree(plan Plan, indent int) {
	for ii := 0; ii < indent; ii++ {
		fmt.Print(" ")
	}
	fmt.Print(plan.GetDebugStr())
	fmt.Println("")

	for _, child := range plan.GetChildren() {
		PrintPlanTree(child, indent+2)
	}
}
