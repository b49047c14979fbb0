package executors

import (
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/execution/plans"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
)

type ExecutionEngine struct {
}

func (e *ExecutionEngine) Execute(plan plans.Plan, context *ExecutorContext) ([]*tuple.Tuple, error) {
	executor := e.CreateExecutor(plan, context)

	if err := executor.Init(); err != nil {
		return nil, err
	}

	tuples := make([]*tuple.Tuple, 0)
	for {
		tuple_, done, err := executor.Next()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		tuples = append(tuples, tuple_)
	}

	return tuples, nil
}

func (e *ExecutionEngine) CreateExecutor(plan plans.Plan, context *ExecutorContext) Executor {
	switch p := plan.(type) {
	case *plans.SeqScanPlanNode:
		return NewSeqScanExecutor(context, p)
	case *plans.ExternalSortPlanNode:
		child, ok := e.CreateExecutor(p.GetChildPlan(), context).(PageExecutor)
		common.SH_Assert(ok, "child of ExternalSort must be able to read pages.")
		return NewExternalSortExecutor(context, p, child)
	case *plans.MergeJoinPlanNode:
		return NewMergeJoinExecutor(context, p, e.CreateExecutor(p.GetLeftPlan(), context), e.CreateExecutor(p.GetRightPlan(), context))
	}
	common.SH_Assert(false, "not supported plan type: "+plan.GetType().String())
	return nil
}
