package disk

import (
	"os"

	"github.com/ryogrid/SamehadaSMJ/common"
)

// RunStoreTest is the RunStore implementation for testing purposes
type RunStoreTest struct {
	dir string
	RunStore
}

// NewRunStoreTest returns a RunStore instance for testing purposes
func NewRunStoreTest() RunStore {
	if common.EnableOnMemStorage && !common.TempSuppressOnMemStorage {
		return &RunStoreTest{"", NewVirtualRunStore()}
	}

	dir, err := os.MkdirTemp("", "samehada-smj.")
	if err != nil {
		panic(err)
	}
	store, err := NewFileRunStore(dir)
	if err != nil {
		panic(err)
	}
	return &RunStoreTest{dir, store}
}

// ShutDown deletes all runs and the scratch directory
func (s *RunStoreTest) ShutDown() {
	s.RunStore.ShutDown()
	if s.dir != "" {
		os.RemoveAll(s.dir)
	}
}
