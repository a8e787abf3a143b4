// Package storage manages the directory of numbered segment files that back
// the log-structured engine: the single growing current segment, the
// per-segment random-access readers, and the compaction file-lifecycle
// (reserving fresh ids, promoting a new current segment, deleting retired
// ones).
//
// Segments are never rotated by size. Exactly one segment is current at any
// moment, and new segments are only ever created by compaction.
package storage

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/filesys"
	"github.com/iamNilotpal/ignite/pkg/seginfo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Storage owns every segment file in a data directory: the writer for the
// current segment and a lazily populated cache of readers for any segment
// that has been read from.
type Storage struct {
	dataDir   string
	log       *zap.SugaredLogger
	currentID uint64
	ids       []uint64 // all known segment ids, ascending, including current
	writer    *segmentWriter
	readers   map[uint64]*segmentReader
}

// Open discovers the segments already present in dataDir (creating the
// directory and a fresh "0.log" if none exist) and opens the current
// segment for appending.
func Open(dataDir string, log *zap.SugaredLogger) (*Storage, error) {
	if err := filesys.CreateDir(dataDir, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, dataDir)
	}

	ids, err := seginfo.DiscoverSegmentIDs(dataDir)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to discover segments").
			WithPath(dataDir)
	}

	var currentID uint64
	if len(ids) > 0 {
		currentID = ids[len(ids)-1]
	} else {
		currentID = 0
		ids = []uint64{0}
	}

	writer, err := openSegmentWriter(seginfo.SegmentFilePath(dataDir, currentID), currentID)
	if err != nil {
		return nil, err
	}

	log.Infow("storage opened", "dataDir", dataDir, "currentSegment", currentID, "segments", ids)

	return &Storage{
		dataDir:   dataDir,
		log:       log,
		currentID: currentID,
		ids:       ids,
		writer:    writer,
		readers:   make(map[uint64]*segmentReader),
	}, nil
}

// Segments returns every known segment id, ascending.
func (s *Storage) Segments() []uint64 {
	out := make([]uint64, len(s.ids))
	copy(out, s.ids)
	return out
}

// CurrentID returns the id of the segment currently being written to.
func (s *Storage) CurrentID() uint64 {
	return s.currentID
}

// Append writes data to the current segment, flushing before returning, and
// reports the offset the record started at.
func (s *Storage) Append(data []byte) (int64, error) {
	return s.writer.Append(data)
}

// OpenSegmentForScan opens a segment for sequential replay at startup. The
// caller is responsible for closing it.
func (s *Storage) OpenSegmentForScan(id uint64) (io.ReadCloser, error) {
	f, err := os.Open(seginfo.SegmentFilePath(s.dataDir, id))
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open segment for scan").
			WithSegmentID(int(id))
	}
	return f, nil
}

// ReadAt returns the length bytes starting at offset within segmentID,
// opening and caching a reader for that segment on first use.
func (s *Storage) ReadAt(segmentID uint64, offset, length int64) ([]byte, error) {
	reader, err := s.readerFor(segmentID)
	if err != nil {
		return nil, err
	}
	return reader.ReadAt(offset, length)
}

func (s *Storage) readerFor(segmentID uint64) (*segmentReader, error) {
	if r, ok := s.readers[segmentID]; ok {
		return r, nil
	}

	mmap := segmentID != s.currentID
	r, err := openSegmentReader(seginfo.SegmentFilePath(s.dataDir, segmentID), segmentID, mmap)
	if err != nil {
		return nil, err
	}
	s.readers[segmentID] = r
	return r, nil
}

// OpenCompactionWriter opens a fresh writer for compaction target id c. The
// caller appends live records with AppendNoFlush and must Flush it before
// calling PromoteCompaction.
func (s *Storage) OpenCompactionWriter(c uint64) (*segmentWriter, error) {
	return openSegmentWriter(seginfo.SegmentFilePath(s.dataDir, c), c)
}

// PromoteCompaction finishes a compaction pass: it closes the old current
// segment, opens a fresh writer for n and makes it current, then deletes
// every segment with id < c. The compaction writer for c must already be
// flushed and closed by the caller before this is invoked.
func (s *Storage) PromoteCompaction(c, n uint64) error {
	if err := s.writer.Close(); err != nil {
		return err
	}

	writer, err := openSegmentWriter(seginfo.SegmentFilePath(s.dataDir, n), n)
	if err != nil {
		return err
	}

	retired := make([]uint64, 0, len(s.ids))
	kept := make([]uint64, 0, len(s.ids)+2)
	for _, id := range s.ids {
		if id < c {
			retired = append(retired, id)
		} else {
			kept = append(kept, id)
		}
	}
	kept = append(kept, c, n)
	sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })

	var delErr error
	for _, id := range retired {
		if r, ok := s.readers[id]; ok {
			delErr = multierr.Append(delErr, r.Close())
			delete(s.readers, id)
		}
		if err := filesys.DeleteFile(seginfo.SegmentFilePath(s.dataDir, id)); err != nil && !os.IsNotExist(err) {
			delErr = multierr.Append(delErr, errors.NewStorageError(
				err, errors.ErrorCodeIO, "failed to delete retired segment",
			).WithSegmentID(int(id)))
		}
	}

	s.writer = writer
	s.currentID = n
	s.ids = kept

	s.log.Infow("compaction promoted", "compactedInto", c, "newCurrent", n, "retired", retired)
	return delErr
}

// Close flushes and closes the writer and every cached reader, aggregating
// any errors encountered along the way.
func (s *Storage) Close() error {
	var err error
	if e := s.writer.Close(); e != nil {
		err = multierr.Append(err, e)
	}
	for id, r := range s.readers {
		if e := r.Close(); e != nil {
			err = multierr.Append(err, fmt.Errorf("segment %d: %w", id, e))
		}
	}
	return err
}
