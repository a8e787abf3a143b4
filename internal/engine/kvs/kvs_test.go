package kvs

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/iamNilotpal/ignite/internal/diskcodec"
	"github.com/iamNilotpal/ignite/internal/index"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCompactionThreshold = 256 * 1024

func openTestEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := Open(dir, zap.NewNop().Sugar(), testCompactionThreshold)
	require.NoError(t, err)
	return e
}

func TestSetThenGet(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("key", "value1"))

	value, found, err := e.Get("key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "value1", value)
}

func TestOverwriteReturnsLatestValue(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("key", "value1"))
	require.NoError(t, e.Set("key", "value2"))

	value, found, err := e.Get("key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "value2", value)
}

func TestSetThenRemoveHidesKey(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("key", "value"))
	require.NoError(t, e.Remove("key"))

	_, found, err := e.Get("key")
	require.NoError(t, err)
	require.False(t, found)
}

func TestGetMissingKeyIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	_, found, err := e.Get("never-set")
	require.NoError(t, err)
	require.False(t, found)
}

func TestRemoveMissingKeyFailsWithoutWritingToLog(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	sizeBefore := segmentBytes(t, dir)

	err := e.Remove("missing")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.Equal(t, sizeBefore, segmentBytes(t, dir))
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)

	require.NoError(t, e.Set("a", "1"))
	require.NoError(t, e.Set("b", "2"))
	require.NoError(t, e.Remove("a"))
	require.NoError(t, e.Close())

	reopened := openTestEngine(t, dir)
	defer reopened.Close()

	_, found, err := reopened.Get("a")
	require.NoError(t, err)
	require.False(t, found)

	value, found, err := reopened.Get("b")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2", value)
}

func TestReopeningTwiceYieldsIdenticalIndex(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	require.NoError(t, e.Set("a", "1"))
	require.NoError(t, e.Set("b", "2"))
	require.NoError(t, e.Close())

	e1 := openTestEngine(t, dir)
	keys1 := append([]string(nil), e1.index.Keys()...)
	require.NoError(t, e1.Close())

	e2 := openTestEngine(t, dir)
	defer e2.Close()
	keys2 := append([]string(nil), e2.index.Keys()...)

	require.ElementsMatch(t, keys1, keys2)
}

func TestCompactionPreservesObservableState(t *testing.T) {
	dir := t.TempDir()
	// A tiny threshold forces compaction to run as part of normal traffic.
	e, err := Open(dir, zap.NewNop().Sugar(), 64)
	require.NoError(t, err)
	defer e.Close()

	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("key-%d", i%5)
		require.NoError(t, e.Set(key, fmt.Sprintf("value-%d", i)))
	}
	require.NoError(t, e.Remove("key-0"))

	_, found, err := e.Get("key-0")
	require.NoError(t, err)
	require.False(t, found)

	for i := 1; i < 5; i++ {
		key := fmt.Sprintf("key-%d", i)
		_, found, err := e.Get(key)
		require.NoError(t, err)
		require.True(t, found)
	}
}

func TestCompactionReclaimsSpace(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(dir, zap.NewNop().Sugar(), testCompactionThreshold)
	require.NoError(t, err)
	defer e.Close()

	bigValue := strings.Repeat("x", 100*1024)
	for i := 0; i < 100; i++ {
		require.NoError(t, e.Set("hot-key", bigValue))
	}

	value, found, err := e.Get("hot-key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, bigValue, value)

	// 100 writes of a 100 KiB value would occupy ~10 MiB uncompacted; after
	// compaction only the single live record's bytes should remain on disk.
	require.Less(t, segmentBytes(t, dir), int64(2*1024*1024))
}

func TestReplayChargesTombstoneAndSupersededBytes(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(dir, zap.NewNop().Sugar(), testCompactionThreshold)
	require.NoError(t, err)

	require.NoError(t, e.Set("key", "value1"))
	require.NoError(t, e.Set("key", "value2"))
	require.NoError(t, e.Remove("key"))
	require.NoError(t, e.Close())

	reopened, err := Open(dir, zap.NewNop().Sugar(), testCompactionThreshold)
	require.NoError(t, err)
	defer reopened.Close()

	// Replay must charge both the superseded Set and its tombstone to the
	// uncompacted counter immediately, not defer to the next runtime write.
	require.Greater(t, reopened.index.UncompactedBytes(), int64(0))
}

func TestGetOnPointerToRemoveRecordIsCorruption(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("victim", "value"))

	// Append a Remove record and point "victim" directly at it, simulating
	// an index corrupted to reference a tombstone instead of the Set it
	// actually wrote.
	tombstone := diskcodec.EncodeRemove("ghost")
	offset, err := e.storage.Append(tombstone)
	require.NoError(t, err)
	e.index.Replace("victim", &index.RecordPointer{
		SegmentID: e.storage.CurrentID(),
		Offset:    offset,
		Length:    int64(len(tombstone)),
	})

	_, _, err = e.Get("victim")
	require.Error(t, err)

	require.True(t, errors.IsIndexError(err))

	indexErr, ok := errors.AsIndexError(err)
	require.True(t, ok)
	require.Equal(t, errors.ErrorCodeUnexpectedCommandType, indexErr.Code())
	require.Equal(t, "victim", indexErr.Key())
	require.Equal(t, "Get", indexErr.Operation())
}

func TestManyKeysPersistAcrossReopenWithCompaction(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)

	value := strings.Repeat("v", 1024)
	const keys = 2000
	for i := 0; i < keys; i++ {
		require.NoError(t, e.Set(fmt.Sprintf("key-%d", i), value))
	}
	// Overwrite every key once so compaction has stale bytes to reclaim.
	for i := 0; i < keys; i++ {
		require.NoError(t, e.Set(fmt.Sprintf("key-%d", i), value))
	}
	require.NoError(t, e.Close())

	reopened := openTestEngine(t, dir)
	defer reopened.Close()

	for i := 0; i < keys; i++ {
		got, found, err := reopened.Get(fmt.Sprintf("key-%d", i))
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, value, got)
	}
}

func BenchmarkSet(b *testing.B) {
	e, err := Open(b.TempDir(), zap.NewNop().Sugar(), testCompactionThreshold)
	if err != nil {
		b.Fatal(err)
	}
	defer e.Close()

	value := strings.Repeat("v", 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := e.Set(fmt.Sprintf("key-%d", i%1000), value); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGet(b *testing.B) {
	e, err := Open(b.TempDir(), zap.NewNop().Sugar(), testCompactionThreshold)
	if err != nil {
		b.Fatal(err)
	}
	defer e.Close()

	value := strings.Repeat("v", 256)
	for i := 0; i < 1000; i++ {
		if err := e.Set(fmt.Sprintf("key-%d", i), value); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := e.Get(fmt.Sprintf("key-%d", i%1000)); err != nil {
			b.Fatal(err)
		}
	}
}

func segmentBytes(t *testing.T, dir string) int64 {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		require.NoError(t, err)
		total += info.Size()
	}
	return total
}
