package disk

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/errors"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
	"golang.org/x/exp/slices"
)

// RunID identifies a sorted run in scratch storage
type RunID int64

const InvalidRunID = RunID(-1)

const ErrRunNotFound = errors.Error("run is not found")
const ErrRunFinalized = errors.Error("run is already finalized")
const ErrRunNotFinalized = errors.Error("run is not finalized yet")

/**
 * RunStore manages scratch storage of sorted runs.
 * A run is write once (CreateRun, Append..., Finalize), then read only
 * (OpenForSequentialRead), then deleted. Delete failures are returned but callers
 * treat them as warnings.
 */
type RunStore interface {
	CreateRun() (RunID, error)
	Append(RunID, *tuple.Tuple) error
	Finalize(RunID) error
	OpenForSequentialRead(RunID) (RunCursor, error)
	Delete(RunID) error
	// runs which are created and not deleted yet
	LiveRuns() []RunID
	// deletes all live runs and releases resources of the store
	ShutDown()
}

// RunCursor reads a finalized run from the head
type RunCursor interface {
	// done is true when all tuples have been read
	ReadNext() (tuple_ *tuple.Tuple, done bool, err error)
	Close() error
}

// bookkeeping shared by RunStore implementations
type runRegistry struct {
	nextRunID RunID
	live      mapset.Set[RunID]
	finalized mapset.Set[RunID]
}

func newRunRegistry() *runRegistry {
	return &runRegistry{0, mapset.NewSet[RunID](), mapset.NewSet[RunID]()}
}

func (r *runRegistry) allocate() RunID {
	ret := r.nextRunID
	r.nextRunID++
	r.live.Add(ret)
	return ret
}

func (r *runRegistry) checkWritable(runID RunID) error {
	if !r.live.Contains(runID) {
		return fmt.Errorf("%w: run-%d", ErrRunNotFound, runID)
	}
	if r.finalized.Contains(runID) {
		return fmt.Errorf("%w: run-%d", ErrRunFinalized, runID)
	}
	return nil
}

func (r *runRegistry) checkReadable(runID RunID) error {
	if !r.live.Contains(runID) {
		return fmt.Errorf("%w: run-%d", ErrRunNotFound, runID)
	}
	if !r.finalized.Contains(runID) {
		return fmt.Errorf("%w: run-%d", ErrRunNotFinalized, runID)
	}
	return nil
}

func (r *runRegistry) markFinalized(runID RunID) {
	r.finalized.Add(runID)
}

func (r *runRegistry) remove(runID RunID) error {
	if !r.live.Contains(runID) {
		return fmt.Errorf("%w: run-%d", ErrRunNotFound, runID)
	}
	r.live.Remove(runID)
	r.finalized.Remove(runID)
	return nil
}

func (r *runRegistry) LiveRuns() []RunID {
	ret := r.live.ToSlice()
	slices.Sort(ret)
	return ret
}

// deleteAll is used at ShutDown of each store
func deleteAll(store RunStore) {
	for _, runID := range store.LiveRuns() {
		if err := store.Delete(runID); err != nil {
			common.ShPrintf(common.WARN, "Warning: Could not delete run-%d: %v\n", runID, err)
		}
	}
}

// NewRunStore returns a RunStore of specified kind.
// dir is the directory for scratch data ("" means a new temporary directory or on memory).
func NewRunStore(kind common.RunStoreKindID, dir string) (RunStore, error) {
	switch kind {
	case common.RUN_STORE_FILE:
		return NewFileRunStore(dir)
	case common.RUN_STORE_ON_MEMORY:
		return NewVirtualRunStore(), nil
	case common.RUN_STORE_PEBBLE:
		return NewPebbleRunStore(dir)
	}
	return nil, fmt.Errorf("unknown run store kind: %d", kind)
}
