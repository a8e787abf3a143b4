package errors

// ProtocolError is a specialized error type for failures encoding or decoding
// the length-prefixed wire messages exchanged between kvs-client and
// kvs-server. It embeds baseError to inherit chaining and structured details,
// then adds context about which side of the wire and which framing stage
// the failure occurred at.
type ProtocolError struct {
	*baseError
	operation string // "encode" or "decode", plus the message kind involved.
	addr      string // Remote address associated with the connection, if known.
}

// NewProtocolError creates a new wire-protocol error.
func NewProtocolError(err error, code ErrorCode, msg string) *ProtocolError {
	return &ProtocolError{baseError: NewBaseError(err, code, msg)}
}

// WithDetail adds contextual information while maintaining the ProtocolError type.
func (pe *ProtocolError) WithDetail(key string, value any) *ProtocolError {
	pe.baseError.WithDetail(key, value)
	return pe
}

// WithOperation records which framing stage was in progress when the error
// occurred, e.g. "encode_request", "decode_request", "decode_response".
func (pe *ProtocolError) WithOperation(operation string) *ProtocolError {
	pe.operation = operation
	return pe
}

// WithAddr records the remote address associated with the failing connection.
func (pe *ProtocolError) WithAddr(addr string) *ProtocolError {
	pe.addr = addr
	return pe
}

// Operation returns the framing stage that was in progress when the error occurred.
func (pe *ProtocolError) Operation() string {
	return pe.operation
}

// Addr returns the remote address associated with the failing connection.
func (pe *ProtocolError) Addr() string {
	return pe.addr
}
