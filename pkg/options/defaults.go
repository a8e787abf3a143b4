package options

const (
	// DefaultDataDir is used when the caller never specifies WithDataDir.
	DefaultDataDir = "./ignite-data"

	// DefaultBindAddr matches the CLI's documented default address.
	DefaultBindAddr = "127.0.0.1:4000"

	// DefaultEngine is adopted at first open when the caller never specifies
	// WithEngine and the data directory has no engine-choice file yet.
	DefaultEngine = "kvs"

	// DefaultCompactionThreshold is the uncompacted-bytes trigger: once this
	// many stale bytes accumulate, compaction runs.
	DefaultCompactionThreshold int64 = 256 * 1024
)

// defaultOptions holds the baseline configuration applied before any
// functional option overrides it.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	BindAddr:            DefaultBindAddr,
	Engine:              DefaultEngine,
	CompactionThreshold: DefaultCompactionThreshold,
}

// NewDefaultOptions returns a fresh copy of the baseline configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
