package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenCreatesInitialSegment(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, uint64(0), s.CurrentID())
	require.Equal(t, []uint64{0}, s.Segments())
}

func TestAppendAndReadAt(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer s.Close()

	offset, err := s.Append([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, int64(0), offset)

	offset2, err := s.Append([]byte("world!"))
	require.NoError(t, err)
	require.Equal(t, int64(5), offset2)

	got, err := s.ReadAt(s.CurrentID(), offset, 5)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))

	got2, err := s.ReadAt(s.CurrentID(), offset2, 6)
	require.NoError(t, err)
	require.Equal(t, "world!", string(got2))
}

func TestReopenDiscoversExistingSegments(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop().Sugar())
	require.NoError(t, err)
	_, err = s.Append([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(dir, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, uint64(0), reopened.CurrentID())
	got, err := reopened.ReadAt(0, 0, 4)
	require.NoError(t, err)
	require.Equal(t, "data", string(got))
}

func TestPromoteCompactionRetiresOldSegments(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Append([]byte("live-record"))
	require.NoError(t, err)

	c := s.CurrentID() + 1
	n := s.CurrentID() + 2

	w, err := s.OpenCompactionWriter(c)
	require.NoError(t, err)
	_, err = w.AppendNoFlush([]byte("live-record"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	require.NoError(t, s.PromoteCompaction(c, n))

	require.Equal(t, n, s.CurrentID())
	require.Equal(t, []uint64{c, n}, s.Segments())

	got, err := s.ReadAt(c, 0, int64(len("live-record")))
	require.NoError(t, err)
	require.Equal(t, "live-record", string(got))
}
