package executors

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/execution/accounting"
	"github.com/ryogrid/SamehadaSMJ/storage/disk"
	"golang.org/x/exp/slices"
)

// ExecutorContext stores all the context necessary to run an executor
type ExecutorContext struct {
	runStore   disk.RunStore
	accountant *accounting.Accountant
	// runs created through this context and not deleted yet
	ownedRuns mapset.Set[disk.RunID]
}

func NewExecutorContext(runStore disk.RunStore, accountant *accounting.Accountant) *ExecutorContext {
	return &ExecutorContext{runStore, accountant, mapset.NewThreadUnsafeSet[disk.RunID]()}
}

func (e *ExecutorContext) GetRunStore() disk.RunStore {
	return e.runStore
}

func (e *ExecutorContext) GetAccountant() *accounting.Accountant {
	return e.accountant
}

// CreateRun creates a run and registers it to be released by ReleaseRuns
func (e *ExecutorContext) CreateRun() (disk.RunID, error) {
	runID, err := e.runStore.CreateRun()
	if err != nil {
		return disk.InvalidRunID, err
	}
	e.ownedRuns.Add(runID)
	return runID, nil
}

// DeleteRun deletes a run which is no longer referenced.
// a failure is only logged and execution goes on.
func (e *ExecutorContext) DeleteRun(runID disk.RunID) {
	e.ownedRuns.Remove(runID)
	if err := e.runStore.Delete(runID); err != nil {
		common.ShPrintf(common.WARN, "Warning: Could not delete temporary run run-%d: %v\n", runID, err)
	}
}

// OwnedRuns returns runs not released yet in creation order
func (e *ExecutorContext) OwnedRuns() []disk.RunID {
	ret := e.ownedRuns.ToSlice()
	slices.Sort(ret)
	return ret
}

// ReleaseRuns deletes all runs still alive. called at the end of every execution.
func (e *ExecutorContext) ReleaseRuns() {
	for _, runID := range e.OwnedRuns() {
		e.DeleteRun(runID)
	}
}
