// Package ignite is the embeddable library facade over the storage engine:
// the same Set/Get/Remove contract kvs-server and kvs-client expose over
// TCP, usable directly by a Go program that wants the store in-process.
package ignite

import (
	"context"

	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/internal/engine/boltengine"
	"github.com/iamNilotpal/ignite/internal/engine/kvs"
	"github.com/iamNilotpal/ignite/internal/guard"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
)

// Instance is the primary entry point for interacting with the Ignite
// store in-process, providing methods for setting, getting, and deleting
// key-value pairs without going through the network protocol.
type Instance struct {
	engine  engine.Engine
	options *options.Options
}

// NewInstance opens (or creates) a data directory as an Ignite store,
// resolving the requested engine against any choice already persisted
// there (internal/guard) and replaying its segments into memory.
func NewInstance(_ context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	resolved := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&resolved)
	}

	chosen, err := guard.Resolve(resolved.DataDir, resolved.Engine)
	if err != nil {
		return nil, err
	}

	var eng engine.Engine
	switch chosen {
	case guard.EngineBolt:
		eng, err = boltengine.Open(resolved.DataDir, log)
	default:
		eng, err = kvs.Open(resolved.DataDir, log, resolved.CompactionThreshold)
	}
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &resolved}, nil
}

// Set stores a key-value pair in the database. If the key already exists,
// its value is overwritten. The write is durable to the engine's buffer
// before Set returns.
func (i *Instance) Set(_ context.Context, key, value string) error {
	return i.engine.Set(key, value)
}

// Get retrieves the value associated with key. found is false both when
// the key was never set and when it was set then removed.
func (i *Instance) Get(_ context.Context, key string) (value string, found bool, err error) {
	return i.engine.Get(key)
}

// Delete removes a key-value pair from the database. It returns an error
// if key was absent from the index before the call.
func (i *Instance) Delete(_ context.Context, key string) error {
	return i.engine.Remove(key)
}

// Close gracefully shuts down the Ignite instance, flushing buffers and
// releasing every file handle the engine holds.
func (i *Instance) Close(_ context.Context) error {
	return i.engine.Close()
}
