// Package index provides the in-memory hash table that maps every live key
// to the location of its most recent write. It is rebuilt from the segment
// files on disk at open time and never persisted directly.
package index

import (
	stdErrors "errors"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

var ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")

// New creates and initializes a new Index instance configured according to the
// provided parameters.
func New(config *Config) (*Index, error) {
	if config == nil {
		return nil, errors.NewRequiredFieldError("config")
	}
	if config.DataDir == "" {
		return nil, errors.NewRequiredFieldError("config.DataDir")
	}
	if config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config.Logger")
	}

	return &Index{
		log:           config.Logger,
		dataDir:       config.DataDir,
		recordPointer: make(map[string]*RecordPointer, 2046),
	}, nil
}

// Get returns the pointer for key and whether it was present.
func (idx *Index) Get(key string) (*RecordPointer, bool) {
	ptr, ok := idx.recordPointer[key]
	return ptr, ok
}

// Put installs ptr for key, returning the previous pointer if one existed.
// Callers are responsible for crediting the previous pointer's length to the
// uncompacted counter; Put itself only performs the map mutation.
func (idx *Index) Put(key string, ptr *RecordPointer) (*RecordPointer, bool) {
	old, hadOld := idx.recordPointer[key]
	idx.recordPointer[key] = ptr
	return old, hadOld
}

// Delete removes key from the index, returning the pointer it held, if any.
func (idx *Index) Delete(key string) (*RecordPointer, bool) {
	old, hadOld := idx.recordPointer[key]
	if hadOld {
		delete(idx.recordPointer, key)
	}
	return old, hadOld
}

// Replace swaps the pointer for an already-live key without affecting the
// uncompacted counter. Compaction uses this to retarget a key at its new,
// copied-forward location.
func (idx *Index) Replace(key string, ptr *RecordPointer) {
	idx.recordPointer[key] = ptr
}

// Keys returns a snapshot of every live key currently in the index. Order is
// unspecified.
func (idx *Index) Keys() []string {
	keys := make([]string, 0, len(idx.recordPointer))
	for k := range idx.recordPointer {
		keys = append(keys, k)
	}
	return keys
}

// Len reports the number of live keys.
func (idx *Index) Len() int {
	return len(idx.recordPointer)
}

// AddUncompacted adds n bytes to the running uncompacted byte counter.
func (idx *Index) AddUncompacted(n int64) {
	idx.uncompacted += n
}

// UncompactedBytes returns the current uncompacted byte counter.
func (idx *Index) UncompactedBytes() int64 {
	return idx.uncompacted
}

// ResetUncompacted zeroes the uncompacted byte counter, called once
// compaction has finished copying every live record forward.
func (idx *Index) ResetUncompacted() {
	idx.uncompacted = 0
}

// Close gracefully shuts down the Index, releasing the map it holds.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.log.Infow("closing index", "dataDir", idx.dataDir, "liveKeys", len(idx.recordPointer))
	clear(idx.recordPointer)
	idx.recordPointer = nil
	return nil
}
