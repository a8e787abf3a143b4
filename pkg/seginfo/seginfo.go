// Package seginfo provides naming and discovery utilities for segment files.
//
// Filename format: "<id>.log", where id is a non-negative integer with no
// padding or timestamp component. Only sort order matters, not contiguity.
//
// Example filenames:
//
//	0.log
//	1.log
//	42.log
package seginfo

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/iamNilotpal/ignite/pkg/filesys"
)

const extension = ".log"

// SegmentFileName returns the on-disk filename for segment id.
func SegmentFileName(id uint64) string {
	return fmt.Sprintf("%d%s", id, extension)
}

// SegmentFilePath joins dataDir with the filename for segment id.
func SegmentFilePath(dataDir string, id uint64) string {
	return filepath.Join(dataDir, SegmentFileName(id))
}

// ParseSegmentID extracts the numeric id from a segment filename. filename
// may be a bare name ("3.log") or a full path; only the base name is
// considered. ok is false if the name does not match the "<id>.log" shape.
func ParseSegmentID(filename string) (id uint64, ok bool) {
	_, name := filepath.Split(filename)
	if !strings.HasSuffix(name, extension) {
		return 0, false
	}

	idStr := strings.TrimSuffix(name, extension)
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// DiscoverSegmentIDs scans dataDir for files matching "<id>.log" and returns
// their ids sorted ascending. Entries that don't match the naming scheme are
// ignored; they are not this package's concern.
func DiscoverSegmentIDs(dataDir string) ([]uint64, error) {
	pattern := filepath.Join(dataDir, "*"+extension)
	matches, err := filesys.ReadDir(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to read segment directory %s: %w", dataDir, err)
	}

	ids := make([]uint64, 0, len(matches))
	for _, path := range matches {
		if id, ok := ParseSegmentID(path); ok {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)
	return ids, nil
}
