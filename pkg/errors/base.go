package errors

// baseError is the foundation every domain error type in this package embeds.
// It carries the wrapped cause, a display message, a machine-readable code,
// and an optional bag of structured details, so the domain types only need to
// add their own context fields.
type baseError struct {
	cause   error          // The underlying error this one wraps, if any.
	message string         // Display text returned by Error().
	code    ErrorCode      // Machine-readable category for programmatic handling.
	details map[string]any // Extra structured context for logging and diagnostics.
}

// NewBaseError creates a baseError wrapping err with the given code and message.
func NewBaseError(err error, code ErrorCode, msg string) *baseError {
	return &baseError{cause: err, code: code, message: msg}
}

// WithMessage replaces the display message, for errors built in several steps.
func (be *baseError) WithMessage(msg string) *baseError {
	be.message = msg
	return be
}

// WithCode replaces the error code.
func (be *baseError) WithCode(code ErrorCode) *baseError {
	be.code = code
	return be
}

// WithDetail attaches one key/value of structured context. The details map is
// allocated lazily so errors without details stay cheap.
func (be *baseError) WithDetail(key string, value any) *baseError {
	if be.details == nil {
		be.details = make(map[string]any)
	}
	be.details[key] = value
	return be
}

// Error returns the display message, implementing the error interface.
func (b *baseError) Error() string {
	return b.message
}

// Unwrap exposes the wrapped cause so errors.Is and errors.As can walk the
// chain.
func (b *baseError) Unwrap() error {
	return b.cause
}

// Code returns the machine-readable error category.
func (b *baseError) Code() ErrorCode {
	return b.code
}

// Details returns the structured context attached to this error. The returned
// map is the internal one, not a copy.
func (b *baseError) Details() map[string]any {
	return b.details
}
