// Package options provides the functional-options configuration surface
// shared by pkg/ignite, kvs-server, and kvs-client: which data directory to
// use, which address to bind or dial, which storage engine to select, and
// the compaction threshold that drives the log-structured engine.
package options

import "strings"

// Options holds every tunable a caller can set before opening a store or
// starting the server.
type Options struct {
	// DataDir is the directory a store's segments and engine-choice file
	// live under. The in-memory index is not persisted there.
	//
	// Default: "./ignite-data"
	DataDir string `json:"dataDir"`

	// BindAddr is the TCP address kvs-server listens on, or kvs-client
	// dials.
	//
	// Default: "127.0.0.1:4000"
	BindAddr string `json:"bindAddr"`

	// Engine names the storage backend: "kvs" (the default log-structured
	// engine) or "sled" (the bbolt-backed collaborator). Once a data
	// directory has been opened with one engine, reopening it with the
	// other fails with WrongEngineType; see internal/guard.
	//
	// Default: "kvs"
	Engine string `json:"engine"`

	// CompactionThreshold is the number of uncompacted bytes the
	// log-structured engine tolerates before it runs compaction.
	//
	// Default: 262144 (256 KiB)
	CompactionThreshold int64 `json:"compactionThreshold"`
}

// OptionFunc is a function type that modifies the Ignite system's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions resets every field to its documented default.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir sets the primary data directory for Ignite.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithBindAddr sets the TCP address the server listens on or the client
// dials.
func WithBindAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.BindAddr = addr
		}
	}
}

// WithEngine requests a specific storage engine ("kvs" or "sled"). It is
// only a request: internal/guard still reconciles it against whatever is
// already persisted in the data directory.
func WithEngine(engine string) OptionFunc {
	return func(o *Options) {
		engine = strings.TrimSpace(engine)
		if engine != "" {
			o.Engine = engine
		}
	}
}

// WithCompactionThreshold overrides the uncompacted-bytes trigger for the
// log-structured engine. Values less than or equal to zero are ignored.
func WithCompactionThreshold(bytes int64) OptionFunc {
	return func(o *Options) {
		if bytes > 0 {
			o.CompactionThreshold = bytes
		}
	}
}
