package ignite

import (
	"context"
	"testing"

	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/require"
)

func TestInstanceSetGetDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	inst, err := NewInstance(ctx, "test", options.WithDataDir(dir))
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.NoError(t, inst.Set(ctx, "key", "value"))

	value, found, err := inst.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "value", value)

	require.NoError(t, inst.Delete(ctx, "key"))

	_, found, err = inst.Get(ctx, "key")
	require.NoError(t, err)
	require.False(t, found)
}

func TestInstanceBoltEngine(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	inst, err := NewInstance(ctx, "test", options.WithDataDir(dir), options.WithEngine("sled"))
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.NoError(t, inst.Set(ctx, "key", "value"))
	value, found, err := inst.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "value", value)
}

func TestInstanceReopenWithWrongEngineFails(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	inst, err := NewInstance(ctx, "test", options.WithDataDir(dir), options.WithEngine("kvs"))
	require.NoError(t, err)
	require.NoError(t, inst.Close(ctx))

	_, err = NewInstance(ctx, "test", options.WithDataDir(dir), options.WithEngine("sled"))
	require.Error(t, err)
}
