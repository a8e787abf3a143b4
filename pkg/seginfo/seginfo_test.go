package seginfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentFileNameAndPath(t *testing.T) {
	require.Equal(t, "42.log", SegmentFileName(42))
	require.Equal(t, filepath.Join("/data", "42.log"), SegmentFilePath("/data", 42))
}

func TestParseSegmentID(t *testing.T) {
	id, ok := ParseSegmentID("7.log")
	require.True(t, ok)
	require.Equal(t, uint64(7), id)

	id, ok = ParseSegmentID("/data/dir/100.log")
	require.True(t, ok)
	require.Equal(t, uint64(100), id)

	_, ok = ParseSegmentID("not-a-segment.txt")
	require.False(t, ok)

	_, ok = ParseSegmentID("abc.log")
	require.False(t, ok)
}

func TestDiscoverSegmentIDsSortsAscending(t *testing.T) {
	dir := t.TempDir()
	for _, id := range []uint64{3, 1, 2} {
		require.NoError(t, os.WriteFile(SegmentFilePath(dir, id), nil, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "engine_config"), []byte("kvs"), 0644))

	ids, err := DiscoverSegmentIDs(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3}, ids)
}
