package guard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestResolveWritesChoiceOnFirstOpen(t *testing.T) {
	dir := t.TempDir()

	chosen, err := Resolve(dir, "")
	require.NoError(t, err)
	require.Equal(t, EngineKVS, chosen)

	raw, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	require.Equal(t, "kvs\n", string(raw))
}

func TestResolveHonorsExplicitRequestOnFirstOpen(t *testing.T) {
	dir := t.TempDir()

	chosen, err := Resolve(dir, EngineBolt)
	require.NoError(t, err)
	require.Equal(t, EngineBolt, chosen)
}

func TestResolveAdoptsPersistedChoiceWithNoRequest(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolve(dir, EngineBolt)
	require.NoError(t, err)

	chosen, err := Resolve(dir, "")
	require.NoError(t, err)
	require.Equal(t, EngineBolt, chosen)
}

func TestResolveRejectsMismatch(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolve(dir, EngineKVS)
	require.NoError(t, err)

	_, err = Resolve(dir, EngineBolt)
	require.Error(t, err)

	storageErr, ok := errors.AsStorageError(err)
	require.True(t, ok)
	require.Equal(t, errors.ErrorCodeWrongEngineType, storageErr.Code())
}

func TestResolveRejectsUnknownEngineName(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolve(dir, "rocksdb")
	require.Error(t, err)

	validationErr, ok := errors.AsValidationError(err)
	require.True(t, ok)
	require.Equal(t, "engine", validationErr.Field())

	_, statErr := os.Stat(filepath.Join(dir, FileName))
	require.True(t, os.IsNotExist(statErr))
}

func TestResolveMismatchDoesNotModifyDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolve(dir, EngineKVS)
	require.NoError(t, err)

	before, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	_, err = Resolve(dir, EngineBolt)
	require.Error(t, err)

	after, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	require.Equal(t, before, after)
}
