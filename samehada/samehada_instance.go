package samehada

import (
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/execution/accounting"
	"github.com/ryogrid/SamehadaSMJ/execution/executors"
	"github.com/ryogrid/SamehadaSMJ/storage/disk"
)

// SamehadaInstance holds resources of one join execution.
// each join has its own scratch store and counters.
type SamehadaInstance struct {
	run_store  disk.RunStore
	accountant *accounting.Accountant
}

func NewSamehadaInstanceForTesting() *SamehadaInstance {
	return &SamehadaInstance{disk.NewRunStoreTest(), accounting.NewAccountant()}
}

// NewSamehadaInstance creates an instance whose runs are kept in a store of kind
// under dir ("" means a temporary place)
func NewSamehadaInstance(kind common.RunStoreKindID, dir string) (*SamehadaInstance, error) {
	store, err := disk.NewRunStore(kind, dir)
	if err != nil {
		return nil, err
	}
	return &SamehadaInstance{store, accounting.NewAccountant()}, nil
}

func (si *SamehadaInstance) GetRunStore() disk.RunStore {
	return si.run_store
}

// GetAccountant returns counters of the last execution
func (si *SamehadaInstance) GetAccountant() *accounting.Accountant {
	return si.accountant
}

// NewExecutorContext starts counting from zero
func (si *SamehadaInstance) NewExecutorContext() *executors.ExecutorContext {
	si.accountant = accounting.NewAccountant()
	return executors.NewExecutorContext(si.run_store, si.accountant)
}

// Finalize releases scratch storage of the instance
func (si *SamehadaInstance) Finalize() {
	si.run_store.ShutDown()
}
