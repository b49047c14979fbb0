package plans

import (
	"fmt"

	"github.com/ryogrid/SamehadaSMJ/storage/table"
)

/**
 * SeqScanPlanNode identifies a relation that should be scanned page by page.
 */
type SeqScanPlanNode struct {
	*AbstractPlanNode
	relation table.Relation
}

func NewSeqScanPlanNode(relation table.Relation) *SeqScanPlanNode {
	return &SeqScanPlanNode{&AbstractPlanNode{relation.Schema(), nil}, relation}
}

func (p *SeqScanPlanNode) GetRelation() table.Relation {
	return p.relation
}

func (p *SeqScanPlanNode) GetTableName() string {
	return p.relation.GetTableName()
}

func (p *SeqScanPlanNode) GetType() PlanType {
	return SeqScan
}

func (p *SeqScanPlanNode) GetDebugStr() string {
	return fmt.Sprintf("SeqScanPlanNode [ table = %s, pages = %d ]", p.relation.GetTableName(), len(p.relation.Pages()))
}
