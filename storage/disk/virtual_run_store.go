package disk

import (
	"bufio"
	"io"

	"github.com/dsnet/golib/memfile"
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
)

// VirtualRunStore keeps each run in a on memory file
type VirtualRunStore struct {
	*runRegistry
	runs map[RunID]*memfile.File
}

func NewVirtualRunStore() *VirtualRunStore {
	return &VirtualRunStore{newRunRegistry(), make(map[RunID]*memfile.File)}
}

func (s *VirtualRunStore) CreateRun() (RunID, error) {
	runID := s.allocate()
	s.runs[runID] = memfile.New(make([]byte, 0))
	return runID, nil
}

func (s *VirtualRunStore) Append(runID RunID, tuple_ *tuple.Tuple) error {
	if err := s.checkWritable(runID); err != nil {
		return err
	}
	_, err := s.runs[runID].Write([]byte(tuple_.Serialize() + "\n"))
	return err
}

func (s *VirtualRunStore) Finalize(runID RunID) error {
	if err := s.checkWritable(runID); err != nil {
		return err
	}
	s.markFinalized(runID)
	return nil
}

func (s *VirtualRunStore) OpenForSequentialRead(runID RunID) (RunCursor, error) {
	if err := s.checkReadable(runID); err != nil {
		return nil, err
	}
	file := s.runs[runID]
	scanner := bufio.NewScanner(io.NewSectionReader(file, 0, int64(len(file.Bytes()))))
	scanner.Buffer(make([]byte, 0, 64*1024), common.MaxTupleLineLen)
	return &virtualRunCursor{scanner}, nil
}

func (s *VirtualRunStore) Delete(runID RunID) error {
	if err := s.remove(runID); err != nil {
		return err
	}
	delete(s.runs, runID)
	return nil
}

func (s *VirtualRunStore) ShutDown() {
	deleteAll(s)
}

type virtualRunCursor struct {
	scanner *bufio.Scanner
}

func (c *virtualRunCursor) ReadNext() (*tuple.Tuple, bool, error) {
	if !c.scanner.Scan() {
		return nil, true, c.scanner.Err()
	}
	tuple_, err := tuple.DeserializeTuple(c.scanner.Text())
	if err != nil {
		return nil, true, err
	}
	return tuple_, false, nil
}

func (c *virtualRunCursor) Close() error { return nil }
