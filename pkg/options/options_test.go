package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := NewDefaultOptions()
	require.Equal(t, DefaultDataDir, o.DataDir)
	require.Equal(t, DefaultBindAddr, o.BindAddr)
	require.Equal(t, DefaultEngine, o.Engine)
	require.Equal(t, DefaultCompactionThreshold, o.CompactionThreshold)
}

func TestWithDataDirIgnoresBlank(t *testing.T) {
	o := NewDefaultOptions()
	WithDataDir("  ")(&o)
	require.Equal(t, DefaultDataDir, o.DataDir)

	WithDataDir("/tmp/store")(&o)
	require.Equal(t, "/tmp/store", o.DataDir)
}

func TestWithEngineOverride(t *testing.T) {
	o := NewDefaultOptions()
	WithEngine("sled")(&o)
	require.Equal(t, "sled", o.Engine)
}

func TestWithCompactionThresholdIgnoresNonPositive(t *testing.T) {
	o := NewDefaultOptions()
	WithCompactionThreshold(0)(&o)
	require.Equal(t, DefaultCompactionThreshold, o.CompactionThreshold)

	WithCompactionThreshold(-5)(&o)
	require.Equal(t, DefaultCompactionThreshold, o.CompactionThreshold)

	WithCompactionThreshold(1024)(&o)
	require.Equal(t, int64(1024), o.CompactionThreshold)
}

func TestWithDefaultOptionsResetsOverrides(t *testing.T) {
	o := NewDefaultOptions()
	WithDataDir("/elsewhere")(&o)
	WithBindAddr("0.0.0.0:9000")(&o)

	WithDefaultOptions()(&o)
	require.Equal(t, DefaultDataDir, o.DataDir)
	require.Equal(t, DefaultBindAddr, o.BindAddr)
}
