package executors

import (
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/execution/plans"
	"github.com/ryogrid/SamehadaSMJ/storage/page"
	"github.com/ryogrid/SamehadaSMJ/storage/table"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
)

/**
 * SeqScanExecutor executes a sequential scan over a relation.
 * Each page handed out costs one read I/O.
 */
type SeqScanExecutor struct {
	context  *ExecutorContext
	plan     *plans.SeqScanPlanNode
	pages    []*page.Page
	page_idx int
	// tuples of the page Next is reading
	cur_tuples []*tuple.Tuple
	tuple_idx  int
}

// NewSeqScanExecutor creates a new sequential executor
func NewSeqScanExecutor(context *ExecutorContext, plan *plans.SeqScanPlanNode) *SeqScanExecutor {
	return &SeqScanExecutor{context, plan, nil, 0, nil, 0}
}

func (e *SeqScanExecutor) GetOutputSchema() *table.Schema { return e.plan.OutputSchema() }

func (e *SeqScanExecutor) Init() error {
	e.pages = e.plan.GetRelation().Pages()
	e.page_idx = 0
	e.cur_tuples = nil
	e.tuple_idx = 0
	common.ShPrintf(common.DEBUG_INFO, "SeqScanExecutor::Init: table=%s pages=%d\n", e.plan.GetTableName(), len(e.pages))
	return nil
}

// NextPage reads the next page of the relation
func (e *SeqScanExecutor) NextPage() (*page.Page, Done, error) {
	if e.page_idx >= len(e.pages) {
		return nil, true, nil
	}
	page_ := e.pages[e.page_idx]
	e.page_idx++
	e.context.GetAccountant().AddIO(1)
	return page_, false, nil
}

// Next implements the next method for the sequential scan operator.
// pages are fetched through NextPage, so I/O is counted the same way.
func (e *SeqScanExecutor) Next() (*tuple.Tuple, Done, error) {
	for e.tuple_idx >= len(e.cur_tuples) {
		page_, done, err := e.NextPage()
		if err != nil || done {
			return nil, done, err
		}
		e.cur_tuples = page_.GetTuples()
		e.tuple_idx = 0
	}
	ret := e.cur_tuples[e.tuple_idx]
	e.tuple_idx++
	return ret, false, nil
}
