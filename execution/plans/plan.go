package plans

import (
	"github.com/ryogrid/SamehadaSMJ/storage/table"
)

type PlanType int

const (
	SeqScan PlanType = iota
	ExternalSort
	MergeJoin
)

func (t PlanType) String() string {
	switch t {
	case SeqScan:
		return "SeqScan"
	case ExternalSort:
		return "ExternalSort"
	case MergeJoin:
		return "MergeJoin"
	}
	return "Unknown"
}

type Plan interface {
	OutputSchema() *table.Schema
	GetChildAt(childIndex uint32) Plan
	GetChildren() []Plan
	GetType() PlanType
	GetDebugStr() string
}

/**
 * AbstractPlanNode represents all the possible types of plan nodes in our system.
 * Plan nodes are modeled as trees, so each plan node can have a variable number of children.
 * Per the Volcano model, the plan node receives the tuples of its children.
 * The ordering of the children may matter.
 */
type AbstractPlanNode struct {
	/**
	 * The schema for the output of this plan node. In the volcano model, every plan node will spit out tuples,
	 * and this tells you what schema this plan node's tuples will have.
	 */
	output_schema *table.Schema
	children      []Plan
}

func (p *AbstractPlanNode) GetChildAt(childIndex uint32) Plan {
	return p.children[childIndex]
}

func (p *AbstractPlanNode) GetChildren() []Plan {
	return p.children
}

func (p *AbstractPlanNode) OutputSchema() *table.Schema {
	return p.output_schema
}
