// Package guard implements the engine-selection guard: the data directory
// carries a single small file recording which engine first created it, and
// every later open must agree with that choice. Log files written by one
// engine must never be interpreted by the other.
package guard

import (
	"path/filepath"
	"strings"

	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/filesys"
)

const (
	// FileName is the engine-choice file's name inside the data directory.
	FileName = "engine_config"

	// EngineKVS is the default log-structured engine name.
	EngineKVS = "kvs"

	// EngineBolt is the alternate bbolt-backed engine name. The name on the
	// wire and in the engine-choice file is "sled", matching the original
	// embedded-database collaborator this engine stands in for.
	EngineBolt = "sled"
)

// Resolve reconciles a caller's requested engine (possibly empty, meaning
// "no preference") against any engine already persisted in dataDir. If the
// file is absent, it is created with the resolved choice. A mismatch
// between a non-empty request and a persisted choice fails with
// WrongEngineType and never touches the directory.
func Resolve(dataDir, requested string) (string, error) {
	if requested != "" && requested != EngineKVS && requested != EngineBolt {
		return "", errors.NewFieldFormatError("engine", requested, `"kvs" or "sled"`)
	}

	configPath := filepath.Join(dataDir, FileName)

	exists, err := filesys.Exists(configPath)
	if err != nil {
		return "", errors.NewStorageError(err, errors.ErrorCodeIO, "failed to check engine-choice file").
			WithPath(configPath)
	}

	if exists {
		raw, err := filesys.ReadFile(configPath)
		if err != nil {
			return "", errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read engine-choice file").
				WithPath(configPath)
		}
		persisted := strings.TrimSpace(string(raw))

		if requested != "" && requested != persisted {
			return "", errors.NewStorageError(
				nil, errors.ErrorCodeWrongEngineType, "requested engine does not match the persisted engine choice",
			).WithPath(configPath).
				WithDetail("requested", requested).
				WithDetail("persisted", persisted)
		}

		return persisted, nil
	}

	chosen := requested
	if chosen == "" {
		chosen = EngineKVS
	}

	if err := filesys.WriteFile(configPath, 0644, []byte(chosen+"\n")); err != nil {
		return "", errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write engine-choice file").
			WithPath(configPath)
	}

	return chosen, nil
}
