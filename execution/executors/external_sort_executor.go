package executors

import (
	"fmt"

	"github.com/golang-collections/collections/queue"
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/execution/plans"
	"github.com/ryogrid/SamehadaSMJ/storage/disk"
	"github.com/ryogrid/SamehadaSMJ/storage/page"
	"github.com/ryogrid/SamehadaSMJ/storage/table"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
	"golang.org/x/exp/slices"
)

/**
 * ExternalSortExecutor sorts tuples of a child executor with two-phase multiway merge sort.
 * Phase 1 reads fan-in pages at a time and writes each window as a sorted run.
 * Phase 2 merges up to fan-in runs at a time until one run remains.
 * The last run is loaded into memory and served by Next.
 */
type ExternalSortExecutor struct {
	context *ExecutorContext
	plan_   *plans.ExternalSortPlanNode
	child_  PageExecutor
	// result of the sort
	sort_tuples_ []*tuple.Tuple
	cur_idx_     int // target tuple index on Next method
	// statistics of the last Init
	initial_runs_ int
	merge_passes_ int
}

/**
 * Creates a new external sort executor.
 * @param exec_ctx the context that the sort should be performed in
 * @param plan the sort plan node
 * @param child the child executor which reads the relation page by page
 */
func NewExternalSortExecutor(exec_ctx *ExecutorContext, plan *plans.ExternalSortPlanNode,
	child PageExecutor) *ExternalSortExecutor {
	return &ExternalSortExecutor{exec_ctx, plan, child, make([]*tuple.Tuple, 0), 0, 0, 0}
}

func (e *ExternalSortExecutor) GetOutputSchema() *table.Schema { return e.plan_.OutputSchema() }

func (e *ExternalSortExecutor) Init() error {
	if err := e.child_.Init(); err != nil {
		return err
	}
	e.sort_tuples_ = e.sort_tuples_[:0]
	e.cur_idx_ = 0
	e.merge_passes_ = 0

	if e.plan_.BuffersNeeded() > e.plan_.GetBufferFrames() {
		common.ShPrintf(common.WARN, "Warning: sort needs %d buffers but only %d frames are available.\n",
			e.plan_.BuffersNeeded(), e.plan_.GetBufferFrames())
	}

	runs, err := e.createInitialRuns()
	if err != nil {
		return err
	}
	e.initial_runs_ = len(runs)
	common.ShPrintf(common.DEBUG_INFO, "ExternalSortExecutor::Init: key=%s initial runs=%d\n", e.plan_.GetSortKey(), len(runs))

	lastRun, err := e.mergeRuns(runs)
	if err != nil {
		return err
	}

	e.sort_tuples_, err = e.loadRun(lastRun)
	if err != nil {
		return err
	}
	e.context.DeleteRun(lastRun)
	return nil
}

func (e *ExternalSortExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.cur_idx_ >= len(e.sort_tuples_) {
		return nil, true, nil
	}
	ret := e.sort_tuples_[e.cur_idx_]
	e.cur_idx_++
	return ret, false, nil
}

// GetInitialRunCount returns the number of runs written by run generation at the last Init
func (e *ExternalSortExecutor) GetInitialRunCount() int { return e.initial_runs_ }

// GetMergePassCount returns the number of merge passes done at the last Init
func (e *ExternalSortExecutor) GetMergePassCount() int { return e.merge_passes_ }

func (e *ExternalSortExecutor) compareKey(left *tuple.Tuple, right *tuple.Tuple) (int, error) {
	return left.CompareByColumn(right, e.plan_.GetSortKey())
}

// phase 1: every window of fan-in pages (or fan-in * PageCapacity tuples) becomes a sorted run
func (e *ExternalSortExecutor) createInitialRuns() ([]disk.RunID, error) {
	fanIn := e.plan_.GetFanIn()
	runs := make([]disk.RunID, 0)
	window := make([]*tuple.Tuple, 0, fanIn*common.PageCapacity)
	windowPages := 0

	for {
		page_, done, err := e.child_.NextPage()
		if err != nil {
			return runs, err
		}
		if done {
			break
		}
		window = append(window, page_.GetTuples()...)
		windowPages++
		if windowPages >= fanIn || len(window) >= fanIn*common.PageCapacity {
			runID, err := e.createSortedRun(window)
			if err != nil {
				return runs, err
			}
			runs = append(runs, runID)
			window = window[:0]
			windowPages = 0
		}
	}

	// rest of the relation. an empty relation still produces one (empty) run
	if windowPages > 0 || len(runs) == 0 {
		runID, err := e.createSortedRun(window)
		if err != nil {
			return runs, err
		}
		runs = append(runs, runID)
	}
	return runs, nil
}

func (e *ExternalSortExecutor) createSortedRun(tuples []*tuple.Tuple) (disk.RunID, error) {
	var cmpErr error
	slices.SortStableFunc(tuples, func(a, b *tuple.Tuple) int {
		ret, err := e.compareKey(a, b)
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return ret
	})
	if cmpErr != nil {
		return disk.InvalidRunID, cmpErr
	}

	runID, err := e.context.CreateRun()
	if err != nil {
		return disk.InvalidRunID, fmt.Errorf("create sorted run: %w", err)
	}
	store := e.context.GetRunStore()
	for _, tuple_ := range tuples {
		if err = store.Append(runID, tuple_); err != nil {
			return runID, fmt.Errorf("write sorted run: %w", err)
		}
	}
	if err = store.Finalize(runID); err != nil {
		return runID, fmt.Errorf("write sorted run: %w", err)
	}
	e.context.GetAccountant().AddIO(page.NumPagesFor(len(tuples)))
	common.ShPrintf(common.DEBUG_INFO_DETAIL, "sorted run-%d created with %d tuples\n", runID, len(tuples))
	return runID, nil
}

// phase 2: merge passes until one run remains. returns the last run.
func (e *ExternalSortExecutor) mergeRuns(runs []disk.RunID) (disk.RunID, error) {
	fanIn := e.plan_.GetFanIn()
	for len(runs) > 1 {
		e.merge_passes_++
		nextRuns := make([]disk.RunID, 0, len(runs)/fanIn+1)
		for ii := 0; ii < len(runs); ii += fanIn {
			// a group of one run is also rewritten
			group := runs[ii:min(ii+fanIn, len(runs))]
			merged, err := e.mergeGroup(group)
			if err != nil {
				return disk.InvalidRunID, err
			}
			nextRuns = append(nextRuns, merged)
		}
		for _, runID := range runs {
			e.context.DeleteRun(runID)
		}
		common.ShPrintf(common.DEBUG_INFO, "merge pass %d: %d runs -> %d runs\n", e.merge_passes_, len(runs), len(nextRuns))
		runs = nextRuns
	}
	return runs[0], nil
}

// fills the input buffer of a cursor up to one page
func fillInputBuffer(cursor disk.RunCursor, buffer *queue.Queue) error {
	for buffer.Len() < common.PageCapacity {
		tuple_, done, err := cursor.ReadNext()
		if err != nil {
			return err
		}
		if done {
			break
		}
		buffer.Enqueue(tuple_)
	}
	return nil
}

// k-way merge of runs in group into a new run
func (e *ExternalSortExecutor) mergeGroup(group []disk.RunID) (disk.RunID, error) {
	store := e.context.GetRunStore()
	accountant := e.context.GetAccountant()

	outRun, err := e.context.CreateRun()
	if err != nil {
		return disk.InvalidRunID, fmt.Errorf("create merged run: %w", err)
	}

	cursors := make([]disk.RunCursor, 0, len(group))
	defer func() {
		for _, cursor := range cursors {
			cursor.Close()
		}
	}()
	inputBuffers := make([]*queue.Queue, 0, len(group))
	for _, runID := range group {
		cursor, err := store.OpenForSequentialRead(runID)
		if err != nil {
			return outRun, fmt.Errorf("open run-%d: %w", runID, err)
		}
		accountant.AddIO(1)
		cursors = append(cursors, cursor)
		buffer := queue.New()
		if err = fillInputBuffer(cursor, buffer); err != nil {
			return outRun, fmt.Errorf("read run-%d: %w", runID, err)
		}
		inputBuffers = append(inputBuffers, buffer)
	}

	outputPage := page.NewPage()
	flush := func() error {
		for _, tuple_ := range outputPage.GetTuples() {
			if err := store.Append(outRun, tuple_); err != nil {
				return fmt.Errorf("write merged run: %w", err)
			}
		}
		accountant.AddIO(1)
		outputPage.Clear()
		return nil
	}

	for {
		minIdx := -1
		var minTuple *tuple.Tuple
		for ii, buffer := range inputBuffers {
			if buffer.Len() == 0 {
				continue
			}
			head := buffer.Peek().(*tuple.Tuple)
			if minTuple == nil {
				minIdx, minTuple = ii, head
				continue
			}
			// strict less than. ties go to the former run
			cmp, err := e.compareKey(head, minTuple)
			if err != nil {
				return outRun, err
			}
			if cmp < 0 {
				minIdx, minTuple = ii, head
			}
		}
		if minIdx < 0 {
			break
		}

		inputBuffers[minIdx].Dequeue()
		outputPage.AddTuple(minTuple)
		if outputPage.IsFull() {
			if err = flush(); err != nil {
				return outRun, err
			}
		}
		if inputBuffers[minIdx].Len() == 0 {
			if err = fillInputBuffer(cursors[minIdx], inputBuffers[minIdx]); err != nil {
				return outRun, fmt.Errorf("read run-%d: %w", group[minIdx], err)
			}
		}
	}
	if !outputPage.IsEmpty() {
		if err = flush(); err != nil {
			return outRun, err
		}
	}

	if err = store.Finalize(outRun); err != nil {
		return outRun, fmt.Errorf("write merged run: %w", err)
	}
	return outRun, nil
}

// loads whole run into memory
func (e *ExternalSortExecutor) loadRun(runID disk.RunID) ([]*tuple.Tuple, error) {
	cursor, err := e.context.GetRunStore().OpenForSequentialRead(runID)
	if err != nil {
		return nil, fmt.Errorf("open run-%d: %w", runID, err)
	}
	defer cursor.Close()

	ret := make([]*tuple.Tuple, 0)
	for {
		tuple_, done, err := cursor.ReadNext()
		if err != nil {
			return nil, fmt.Errorf("read run-%d: %w", runID, err)
		}
		if done {
			break
		}
		ret = append(ret, tuple_)
	}
	e.context.GetAccountant().AddIO(page.NumPagesFor(len(ret)))
	return ret, nil
}
