package disk

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
)

type fileRun struct {
	path   string
	file   *os.File
	writer *bufio.Writer
}

// FileRunStore keeps each run in its own temporary file
type FileRunStore struct {
	*runRegistry
	dir  string
	runs map[RunID]*fileRun
}

// NewFileRunStore returns a FileRunStore which creates run files in dir.
// when dir is empty, os.TempDir() is used.
func NewFileRunStore(dir string) (*FileRunStore, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("can't create scratch dir %s: %w", dir, err)
		}
	}
	return &FileRunStore{newRunRegistry(), dir, make(map[RunID]*fileRun)}, nil
}

func (s *FileRunStore) CreateRun() (RunID, error) {
	file, err := os.CreateTemp(s.dir, "smj-run-*.tmp")
	if err != nil {
		return InvalidRunID, fmt.Errorf("can't create run file: %w", err)
	}
	runID := s.allocate()
	s.runs[runID] = &fileRun{file.Name(), file, bufio.NewWriter(file)}
	common.ShPrintf(common.DEBUG_INFO, "FileRunStore: run-%d created at %s\n", runID, file.Name())
	return runID, nil
}

func (s *FileRunStore) Append(runID RunID, tuple_ *tuple.Tuple) error {
	if err := s.checkWritable(runID); err != nil {
		return err
	}
	run := s.runs[runID]
	if _, err := run.writer.WriteString(tuple_.Serialize()); err != nil {
		return fmt.Errorf("write to %s: %w", run.path, err)
	}
	if err := run.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write to %s: %w", run.path, err)
	}
	return nil
}

func (s *FileRunStore) Finalize(runID RunID) error {
	if err := s.checkWritable(runID); err != nil {
		return err
	}
	run := s.runs[runID]
	if err := run.writer.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", run.path, err)
	}
	if err := run.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", run.path, err)
	}
	run.file = nil
	run.writer = nil
	s.markFinalized(runID)
	return nil
}

func (s *FileRunStore) OpenForSequentialRead(runID RunID) (RunCursor, error) {
	if err := s.checkReadable(runID); err != nil {
		return nil, err
	}
	path := s.runs[runID].path
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), common.MaxTupleLineLen)
	return &fileRunCursor{file, scanner}, nil
}

func (s *FileRunStore) Delete(runID RunID) error {
	run, exist := s.runs[runID]
	if err := s.remove(runID); err != nil {
		return err
	}
	delete(s.runs, runID)
	if !exist {
		return nil
	}
	if run.file != nil {
		// not finalized
		run.file.Close()
	}
	if err := os.Remove(run.path); err != nil {
		return fmt.Errorf("remove %s: %w", run.path, err)
	}
	return nil
}

// PathOf returns the file path of the run ("" if not exists)
func (s *FileRunStore) PathOf(runID RunID) string {
	if run, exist := s.runs[runID]; exist {
		return run.path
	}
	return ""
}

func (s *FileRunStore) ShutDown() {
	deleteAll(s)
}

type fileRunCursor struct {
	file    *os.File
	scanner *bufio.Scanner
}

func (c *fileRunCursor) ReadNext() (*tuple.Tuple, bool, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return nil, true, fmt.Errorf("read %s: %w", c.file.Name(), err)
		}
		return nil, true, nil
	}
	tuple_, err := tuple.DeserializeTuple(c.scanner.Text())
	if err != nil {
		return nil, true, err
	}
	return tuple_, false, nil
}

func (c *fileRunCursor) Close() error {
	return c.file.Close()
}
