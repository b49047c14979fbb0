package executors

import (
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/execution/plans"
	"github.com/ryogrid/SamehadaSMJ/storage/page"
	"github.com/ryogrid/SamehadaSMJ/storage/table"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
)

/**
 * MergeJoinExecutor executes an inner equi-join of two children
 * which emit tuples sorted on their join key.
 * Tuples sharing a key on both sides are joined as a Cartesian product (left-major order).
 */
type MergeJoinExecutor struct {
	context *ExecutorContext
	plan_   *plans.MergeJoinPlanNode
	left_   Executor
	right_  Executor
	// join result and read position of Next
	ret_tuples_ []*tuple.Tuple
	cur_idx_    int
	// output buffer. a full page is counted as written
	output_page_ *page.Page
}

func NewMergeJoinExecutor(exec_ctx *ExecutorContext, plan *plans.MergeJoinPlanNode, left Executor,
	right Executor) *MergeJoinExecutor {
	return &MergeJoinExecutor{exec_ctx, plan, left, right, make([]*tuple.Tuple, 0), 0, page.NewPage()}
}

func (e *MergeJoinExecutor) GetOutputSchema() *table.Schema { return e.plan_.OutputSchema() }

func collectAll(child Executor) ([]*tuple.Tuple, error) {
	ret := make([]*tuple.Tuple, 0)
	for {
		tuple_, done, err := child.Next()
		if err != nil {
			return nil, err
		}
		if done {
			return ret, nil
		}
		ret = append(ret, tuple_)
	}
}

// groupEnd returns the end (exclusive) of the run of tuples which has same key value with tuples[start]
func groupEnd(tuples []*tuple.Tuple, start int, colName string) (int, error) {
	key := tuples[start].GetValue(colName)
	end := start + 1
	for ; end < len(tuples); end++ {
		cmp, err := key.Compare(tuples[end].GetValue(colName))
		if err != nil {
			return end, err
		}
		if cmp != 0 {
			break
		}
	}
	return end, nil
}

// Init sorts (through children) and joins both inputs. results are kept for Next.
func (e *MergeJoinExecutor) Init() error {
	e.ret_tuples_ = e.ret_tuples_[:0]
	e.cur_idx_ = 0
	e.output_page_.Clear()

	if err := e.left_.Init(); err != nil {
		return err
	}
	if err := e.right_.Init(); err != nil {
		return err
	}
	leftTuples, err := collectAll(e.left_)
	if err != nil {
		return err
	}
	rightTuples, err := collectAll(e.right_)
	if err != nil {
		return err
	}

	leftKey := e.plan_.GetLeftKey()
	rightKey := e.plan_.GetRightKey()
	ii, jj := 0, 0
	for ii < len(leftTuples) && jj < len(rightTuples) {
		cmp, err := leftTuples[ii].GetValue(leftKey).Compare(rightTuples[jj].GetValue(rightKey))
		if err != nil {
			return err
		}
		switch {
		case cmp < 0:
			ii++
		case cmp > 0:
			jj++
		default:
			leftEnd, err := groupEnd(leftTuples, ii, leftKey)
			if err != nil {
				return err
			}
			rightEnd, err := groupEnd(rightTuples, jj, rightKey)
			if err != nil {
				return err
			}
			for _, left := range leftTuples[ii:leftEnd] {
				for _, right := range rightTuples[jj:rightEnd] {
					e.emit(left.Merge(right))
				}
			}
			ii, jj = leftEnd, rightEnd
		}
	}
	if !e.output_page_.IsEmpty() {
		e.context.GetAccountant().AddOutputPage()
		e.output_page_.Clear()
	}
	common.ShPrintf(common.DEBUG_INFO, "MergeJoinExecutor::Init: left=%d right=%d joined=%d\n",
		len(leftTuples), len(rightTuples), len(e.ret_tuples_))
	return nil
}

func (e *MergeJoinExecutor) emit(joined *tuple.Tuple) {
	e.ret_tuples_ = append(e.ret_tuples_, joined)
	e.context.GetAccountant().AddTuple()
	e.output_page_.AddTuple(joined)
	if e.output_page_.IsFull() {
		e.context.GetAccountant().AddOutputPage()
		e.output_page_.Clear()
	}
}

func (e *MergeJoinExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.cur_idx_ >= len(e.ret_tuples_) {
		return nil, true, nil
	}
	ret := e.ret_tuples_[e.cur_idx_]
	e.cur_idx_++
	return ret, false, nil
}
