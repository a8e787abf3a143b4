package storage

import (
	"bufio"
	"os"

	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/seginfo"
)

// segmentWriter owns the single file a segment is appended to. Every normal
// write is flushed before Append returns, so a record is durable to the
// file before the operation that wrote it reports success. Compaction uses
// the same type but defers flushing until the whole pass is done, via
// AppendNoFlush and an explicit Flush.
type segmentWriter struct {
	id       uint64
	path     string
	fileName string
	file     *os.File
	bw       *bufio.Writer
	offset   int64
}

func openSegmentWriter(path string, id uint64) (*segmentWriter, error) {
	fileName := seginfo.SegmentFileName(id)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		wrapped := errors.ClassifyFileOpenError(err, path, fileName)
		if se, ok := errors.AsStorageError(wrapped); ok {
			se.WithSegmentID(int(id))
		}
		return nil, wrapped
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat segment file").
			WithSegmentID(int(id)).
			WithFileName(fileName).
			WithPath(path)
	}

	return &segmentWriter{
		id: id, path: path, fileName: fileName,
		file: file, bw: bufio.NewWriter(file), offset: info.Size(),
	}, nil
}

// Append writes p at the current end of the segment and flushes immediately,
// returning the offset the record started at.
func (w *segmentWriter) Append(p []byte) (int64, error) {
	start := w.offset
	n, err := w.bw.Write(p)
	w.offset += int64(n)
	if err != nil {
		return start, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to append record").
			WithSegmentID(int(w.id)).
			WithOffset(int(start))
	}
	if err := w.bw.Flush(); err != nil {
		wrapped := errors.ClassifySyncError(err, w.fileName, w.path, int(start))
		if se, ok := errors.AsStorageError(wrapped); ok {
			se.WithSegmentID(int(w.id))
		}
		return start, wrapped
	}
	return start, nil
}

// AppendNoFlush writes p without flushing, for use during compaction where
// only one flush at the very end is required.
func (w *segmentWriter) AppendNoFlush(p []byte) (int64, error) {
	start := w.offset
	n, err := w.bw.Write(p)
	w.offset += int64(n)
	if err != nil {
		return start, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to append record").
			WithSegmentID(int(w.id)).
			WithOffset(int(start))
	}
	return start, nil
}

// Flush pushes any buffered bytes to the underlying file.
func (w *segmentWriter) Flush() error {
	if err := w.bw.Flush(); err != nil {
		wrapped := errors.ClassifySyncError(err, w.fileName, w.path, int(w.offset))
		if se, ok := errors.AsStorageError(wrapped); ok {
			se.WithSegmentID(int(w.id))
		}
		return wrapped
	}
	return nil
}

// Offset reports the current end-of-segment byte offset.
func (w *segmentWriter) Offset() int64 {
	return w.offset
}

// Close flushes and closes the underlying file.
func (w *segmentWriter) Close() error {
	if err := w.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	if err := w.file.Close(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to close segment writer").
			WithSegmentID(int(w.id))
	}
	return nil
}
