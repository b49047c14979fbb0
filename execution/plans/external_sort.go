package plans

import (
	"fmt"

	"github.com/ryogrid/SamehadaSMJ/common"
)

/**
 * ExternalSortPlanNode sorts the tuples of its child by one key column
 * using a limited number of page frames (two-phase multiway merge sort).
 */
type ExternalSortPlanNode struct {
	*AbstractPlanNode
	sort_key_      string
	buffer_frames_ int
}

/**
 * Creates a new ExternalSortPlanNode.
 * @param child the child plan to sort data over
 * @param sortKey the column name which decides sort order
 * @param bufferFrames page frames available to this sort (common.BufferPoolFrames usually)
 */
func NewExternalSortPlanNode(child Plan, sortKey string, bufferFrames int) *ExternalSortPlanNode {
	return &ExternalSortPlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}, sortKey, bufferFrames}
}

func (p *ExternalSortPlanNode) GetType() PlanType { return ExternalSort }

/** @return the child of this sort plan node */
func (p *ExternalSortPlanNode) GetChildPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 1, "ExternalSort expected to only have one child.")
	return p.GetChildAt(0)
}

func (p *ExternalSortPlanNode) GetSortKey() string { return p.sort_key_ }

func (p *ExternalSortPlanNode) GetBufferFrames() int { return p.buffer_frames_ }

/**
 * @return number of runs merged at once. one frame is kept for output,
 * and at least two runs are merged even when frames are too few.
 */
func (p *ExternalSortPlanNode) GetFanIn() int {
	return max(p.buffer_frames_-common.OutputBuffers, 2)
}

// BuffersNeeded is the frame count a merge step of this plan occupies
func (p *ExternalSortPlanNode) BuffersNeeded() int {
	return p.GetFanIn() + common.OutputBuffers
}

func (p *ExternalSortPlanNode) GetDebugStr() string {
	return fmt.Sprintf("ExternalSortPlanNode [ key = %s, frames = %d, fan-in = %d ]", p.sort_key_, p.buffer_frames_, p.GetFanIn())
}
