package index

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// RecordPointer locates a single command record on disk: which segment holds
// it, the byte offset it starts at, and how many bytes it occupies. It is the
// only piece of information the index needs to re-read a record without
// scanning its neighbors.
//
// Compaction updates a pointer in place once the record it names has been
// copied into the compacted segment; the index never holds two pointers for
// the same key.
type RecordPointer struct {
	SegmentID uint64 // Segment file the record lives in.
	Offset    int64  // Byte offset within the segment where the record begins.
	Length    int64  // Total byte length of the record, header included.
}

// Index is the in-memory hash table mapping live keys to their most recent
// on-disk record. It also tracks the running total of bytes written that no
// longer correspond to a live key, the signal that drives compaction.
//
// The index is owned exclusively by a single engine handle. Nothing else
// mutates it concurrently, so it carries no mutex.
type Index struct {
	dataDir       string
	log           *zap.SugaredLogger
	recordPointer map[string]*RecordPointer
	uncompacted   int64
	closed        atomic.Bool
}

// Config encapsulates the configuration parameters required to initialize an Index.
type Config struct {
	DataDir string
	Logger  *zap.SugaredLogger
}
