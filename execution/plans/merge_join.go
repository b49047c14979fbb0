package plans

import (
	"fmt"

	pair "github.com/notEpsilon/go-pair"
	"github.com/ryogrid/SamehadaSMJ/common"
)

/**
 * MergeJoinPlanNode joins two inputs sorted on their key columns.
 * Keys are compared with equality only (inner equi-join).
 */
type MergeJoinPlanNode struct {
	*AbstractPlanNode
	// First is the key column of left child, Second is the one of right child
	join_keys_ *pair.Pair[string, string]
}

func NewMergeJoinPlanNode(left Plan, right Plan, leftKey string, rightKey string) *MergeJoinPlanNode {
	output_schema := makeMergedOutputSchema(left.OutputSchema(), right.OutputSchema())
	return &MergeJoinPlanNode{&AbstractPlanNode{output_schema, []Plan{left, right}}, &pair.Pair[string, string]{First: leftKey, Second: rightKey}}
}

func (p *MergeJoinPlanNode) GetType() PlanType { return MergeJoin }

/** @return The left child node of the merge join */
func (p *MergeJoinPlanNode) GetLeftPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 2, "merge joins should have exactly two children plans.")
	return p.GetChildAt(0)
}

/** @return The right child node of the merge join */
func (p *MergeJoinPlanNode) GetRightPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 2, "merge joins should have exactly two children plans.")
	return p.GetChildAt(1)
}

func (p *MergeJoinPlanNode) GetJoinKeys() *pair.Pair[string, string] { return p.join_keys_ }

func (p *MergeJoinPlanNode) GetLeftKey() string { return p.join_keys_.First }

func (p *MergeJoinPlanNode) GetRightKey() string { return p.join_keys_.Second }

func (p *MergeJoinPlanNode) GetDebugStr() string {
	return fmt.Sprintf("MergeJoinPlanNode [ %s = %s ]", p.join_keys_.First, p.join_keys_.Second)
}
