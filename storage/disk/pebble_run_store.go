package disk

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
)

type pebbleRunWriter struct {
	batch    *pebble.Batch
	seq      uint64
	buffered int
}

/**
 * PebbleRunStore keeps all runs in one pebble instance.
 * key of a tuple is | runID (8, big endian) | sequence number (8, big endian) |
 * so that a run is a contiguous key range and is read back in append order.
 * appended tuples are committed per page.
 */
type PebbleRunStore struct {
	*runRegistry
	db      *pebble.DB
	dir     string
	onMem   bool
	writers map[RunID]*pebbleRunWriter
}

// NewPebbleRunStore opens a pebble instance in a new directory under dir.
// when dir is empty, pebble works on memory. the directory is removed at ShutDown.
func NewPebbleRunStore(dir string) (*PebbleRunStore, error) {
	opts := &pebble.Options{}
	onMem := dir == ""
	if onMem {
		opts.FS = vfs.NewMem()
		dir = "smj-runs"
	} else {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("can't create scratch dir %s: %w", dir, err)
		}
		dbDir, err := os.MkdirTemp(dir, "smj-pebble-*")
		if err != nil {
			return nil, fmt.Errorf("pebble: %w", err)
		}
		dir = dbDir
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		if !onMem {
			os.RemoveAll(dir)
		}
		return nil, fmt.Errorf("pebble: open: %w", err)
	}
	return &PebbleRunStore{newRunRegistry(), db, dir, onMem, make(map[RunID]*pebbleRunWriter)}, nil
}

func encodeRunKey(runID RunID, seq uint64) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[:8], uint64(runID))
	binary.BigEndian.PutUint64(b[8:], seq)
	return b
}

func (s *PebbleRunStore) CreateRun() (RunID, error) {
	runID := s.allocate()
	s.writers[runID] = &pebbleRunWriter{s.db.NewBatch(), 0, 0}
	return runID, nil
}

func (s *PebbleRunStore) Append(runID RunID, tuple_ *tuple.Tuple) error {
	if err := s.checkWritable(runID); err != nil {
		return err
	}
	w := s.writers[runID]
	if err := w.batch.Set(encodeRunKey(runID, w.seq), []byte(tuple_.Serialize()), nil); err != nil {
		return fmt.Errorf("pebble: set: %w", err)
	}
	w.seq++
	w.buffered++
	if w.buffered >= common.PageCapacity {
		return s.commit(w)
	}
	return nil
}

func (s *PebbleRunStore) commit(w *pebbleRunWriter) error {
	if err := w.batch.Commit(pebble.NoSync); err != nil {
		return fmt.Errorf("pebble: commit: %w", err)
	}
	w.batch.Close()
	w.batch = s.db.NewBatch()
	w.buffered = 0
	return nil
}

func (s *PebbleRunStore) Finalize(runID RunID) error {
	if err := s.checkWritable(runID); err != nil {
		return err
	}
	w := s.writers[runID]
	if w.buffered > 0 {
		if err := s.commit(w); err != nil {
			return err
		}
	}
	w.batch.Close()
	delete(s.writers, runID)
	s.markFinalized(runID)
	return nil
}

func (s *PebbleRunStore) OpenForSequentialRead(runID RunID) (RunCursor, error) {
	if err := s.checkReadable(runID); err != nil {
		return nil, err
	}
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: encodeRunKey(runID, 0),
		UpperBound: encodeRunKey(runID+1, 0),
	})
	if err != nil {
		return nil, fmt.Errorf("pebble: iter: %w", err)
	}
	iter.First()
	return &pebbleRunCursor{iter, true}, nil
}

func (s *PebbleRunStore) Delete(runID RunID) error {
	if err := s.remove(runID); err != nil {
		return err
	}
	if w, exist := s.writers[runID]; exist {
		w.batch.Close()
		delete(s.writers, runID)
	}
	if err := s.db.DeleteRange(encodeRunKey(runID, 0), encodeRunKey(runID+1, 0), pebble.NoSync); err != nil {
		return fmt.Errorf("pebble: delete range: %w", err)
	}
	return nil
}

// CountStored returns the number of tuples of the run which are committed to pebble
func (s *PebbleRunStore) CountStored(runID RunID) (int, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: encodeRunKey(runID, 0),
		UpperBound: encodeRunKey(runID+1, 0),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()
	cnt := 0
	for valid := iter.First(); valid; valid = iter.Next() {
		cnt++
	}
	return cnt, iter.Error()
}

// DBDir returns the directory of pebble files ("" when on memory)
func (s *PebbleRunStore) DBDir() string {
	if s.onMem {
		return ""
	}
	return s.dir
}

func (s *PebbleRunStore) ShutDown() {
	deleteAll(s)
	if err := s.db.Close(); err != nil {
		common.ShPrintf(common.WARN, "Warning: pebble close failed: %v\n", err)
	}
	if s.onMem {
		return
	}
	if err := os.RemoveAll(s.dir); err != nil {
		common.ShPrintf(common.WARN, "Warning: Could not remove %s: %v\n", s.dir, err)
	}
}

type pebbleRunCursor struct {
	iter  *pebble.Iterator
	first bool
}

func (c *pebbleRunCursor) ReadNext() (*tuple.Tuple, bool, error) {
	var valid bool
	if c.first {
		// First() was already called at open
		c.first = false
		valid = c.iter.Valid()
	} else {
		valid = c.iter.Next()
	}
	if !valid {
		return nil, true, c.iter.Error()
	}
	// value is only valid until next positioning call
	tuple_, err := tuple.DeserializeTuple(string(c.iter.Value()))
	if err != nil {
		return nil, true, err
	}
	return tuple_, false, nil
}

func (c *pebbleRunCursor) Close() error {
	return c.iter.Close()
}
