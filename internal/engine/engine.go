// Package engine defines the uniform storage contract the server and CLI
// depend on. Two concrete implementations satisfy it: the default
// log-structured engine in internal/engine/kvs, and the bbolt-backed
// collaborator in internal/engine/boltengine.
package engine

// Engine is the single-threaded set/get/remove contract every storage
// backend implements. Implementations hold mutable state and are not safe
// for concurrent use from multiple goroutines; one engine handle is owned
// exclusively by one caller.
type Engine interface {
	// Set inserts or overwrites key with value. The write must be durable to
	// the engine's buffer before Set returns.
	Set(key, value string) error

	// Get returns the current value for key and whether it was found. It
	// must not distinguish "never set" from "set then removed"; both
	// report found=false.
	Get(key string) (value string, found bool, err error)

	// Remove deletes key. It returns an error whose message is exactly
	// "Key not found" if key is absent from the index before the call;
	// any other error indicates an underlying storage failure.
	Remove(key string) error

	// Close releases every resource the engine holds (file handles,
	// in-memory index). The engine must not be used afterward.
	Close() error
}
