// Package kvs implements the default log-structured storage engine: a
// directory of numbered segment files, an in-memory key→pointer index, and
// the compaction procedure that reclaims space once stale bytes accumulate.
package kvs

import (
	stdErrors "errors"
	"io"
	"sync/atomic"

	"github.com/iamNilotpal/ignite/internal/diskcodec"
	"github.com/iamNilotpal/ignite/internal/index"
	"github.com/iamNilotpal/ignite/internal/storage"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"go.uber.org/zap"
)

// ErrEngineClosed is returned by Close when the engine has already been
// closed. Set, Get and Remove do not check for it.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

// ErrKeyNotFound is the canonical error Remove returns when the key is
// absent from the index. Its text is intentionally exactly "Key not found";
// client and CLI code match on this message verbatim.
var ErrKeyNotFound = stdErrors.New("Key not found")

// Engine is the log-structured key/value store. It satisfies
// internal/engine.Engine.
type Engine struct {
	log                 *zap.SugaredLogger
	storage             *storage.Storage
	index               *index.Index
	compactionThreshold int64
	closed              atomic.Bool
}

// Open opens (or creates) dataDir as a kvs data directory, replaying every
// segment's records into a fresh in-memory index before returning.
func Open(dataDir string, log *zap.SugaredLogger, compactionThreshold int64) (*Engine, error) {
	st, err := storage.Open(dataDir, log)
	if err != nil {
		return nil, err
	}

	idx, err := index.New(&index.Config{DataDir: dataDir, Logger: log})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	e := &Engine{log: log, storage: st, index: idx, compactionThreshold: compactionThreshold}
	if err := e.replay(); err != nil {
		_ = idx.Close()
		_ = st.Close()
		return nil, err
	}

	log.Infow("kvs engine opened", "dataDir", dataDir, "liveKeys", idx.Len())
	return e, nil
}

// replay scans every segment in ascending id order, rebuilding the index
// and the uncompacted-byte counter from scratch.
//
// When a Remove record retires a prior Set, both the superseded Set's bytes
// and the tombstone's own bytes are charged to the uncompacted counter
// immediately during replay, not deferred to the next runtime write, so
// compaction triggers promptly after a restart.
func (e *Engine) replay() error {
	for _, id := range e.storage.Segments() {
		if err := e.replaySegment(id); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) replaySegment(id uint64) error {
	r, err := e.storage.OpenSegmentForScan(id)
	if err != nil {
		return err
	}
	defer r.Close()

	dec := diskcodec.NewDecoder(r)
	var offset int64
	for {
		cmd, n, err := dec.Next()
		if err != nil {
			if stdErrors.Is(err, io.EOF) {
				break
			}
			return err
		}

		ptr := &index.RecordPointer{SegmentID: id, Offset: offset, Length: n}
		switch cmd.Op {
		case diskcodec.OpSet:
			old, hadOld := e.index.Put(cmd.Key, ptr)
			if hadOld {
				e.index.AddUncompacted(old.Length)
			}
		case diskcodec.OpRemove:
			old, hadOld := e.index.Delete(cmd.Key)
			if hadOld {
				e.index.AddUncompacted(old.Length)
			}
			e.index.AddUncompacted(n)
		}

		offset += n
	}
	return nil
}

// Set encodes and appends a Set record, updates the index, and triggers
// compaction once the uncompacted byte counter crosses the threshold.
func (e *Engine) Set(key, value string) error {
	data := diskcodec.EncodeSet(key, value)
	offset, err := e.storage.Append(data)
	if err != nil {
		return err
	}

	ptr := &index.RecordPointer{SegmentID: e.storage.CurrentID(), Offset: offset, Length: int64(len(data))}
	old, hadOld := e.index.Put(key, ptr)
	if hadOld {
		e.index.AddUncompacted(old.Length)
	}

	return e.maybeCompact()
}

// Get looks up key and, if present, re-reads and decodes its record,
// verifying it is a Set (a Remove at a live pointer indicates corruption).
func (e *Engine) Get(key string) (string, bool, error) {
	ptr, ok := e.index.Get(key)
	if !ok {
		return "", false, nil
	}

	buf, err := e.storage.ReadAt(ptr.SegmentID, ptr.Offset, ptr.Length)
	if err != nil {
		return "", false, err
	}

	cmd, err := diskcodec.DecodeOne(buf)
	if err != nil {
		return "", false, err
	}
	if cmd.Op != diskcodec.OpSet {
		return "", false, errors.NewIndexError(
			nil, errors.ErrorCodeUnexpectedCommandType, "index pointer resolved to a non-Set record",
		).WithKey(key).WithOperation("Get").WithSegmentID(uint16(ptr.SegmentID))
	}

	return cmd.Value, true, nil
}

// Remove tombstones key. It returns ErrKeyNotFound if key was absent from
// the index before the call, without writing anything to the log.
func (e *Engine) Remove(key string) error {
	old, hadOld := e.index.Get(key)
	if !hadOld {
		return ErrKeyNotFound
	}

	data := diskcodec.EncodeRemove(key)
	_, err := e.storage.Append(data)
	if err != nil {
		return err
	}

	e.index.Delete(key)
	e.index.AddUncompacted(old.Length)
	e.index.AddUncompacted(int64(len(data)))

	return e.maybeCompact()
}

func (e *Engine) maybeCompact() error {
	if e.index.UncompactedBytes() < e.compactionThreshold {
		return nil
	}
	return e.compact()
}

// compact rewrites every live record into a fresh segment c, then promotes a
// second fresh segment n to current and deletes everything older than c.
// Reserving two ids keeps bytes written by compaction separate from bytes
// written by normal traffic: c is append-only and never a write target.
func (e *Engine) compact() error {
	c := e.storage.CurrentID() + 1
	n := e.storage.CurrentID() + 2

	w, err := e.storage.OpenCompactionWriter(c)
	if err != nil {
		return err
	}

	for _, key := range e.index.Keys() {
		ptr, ok := e.index.Get(key)
		if !ok {
			continue
		}

		raw, err := e.storage.ReadAt(ptr.SegmentID, ptr.Offset, ptr.Length)
		if err != nil {
			return err
		}

		newOffset, err := w.AppendNoFlush(raw)
		if err != nil {
			return err
		}

		e.index.Replace(key, &index.RecordPointer{SegmentID: c, Offset: newOffset, Length: ptr.Length})
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	if err := e.storage.PromoteCompaction(c, n); err != nil {
		return err
	}

	e.index.ResetUncompacted()
	e.log.Infow("compaction complete", "compactedInto", c, "newCurrent", n, "liveKeys", e.index.Len())
	return nil
}

// Close shuts down the index and storage subsystems.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}
	if err := e.index.Close(); err != nil {
		return err
	}
	return e.storage.Close()
}
