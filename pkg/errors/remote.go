package errors

// RemoteError carries an error message reported by the remote side of a
// kvs-client/kvs-server exchange back into the client's own error chain.
// The server never sends structured error context over the wire, only a
// message string, so RemoteError's only domain-specific field is that
// message.
type RemoteError struct {
	*baseError
	remoteMessage string
}

// NewRemoteError wraps a message received from the server's Response.Err
// field into a RemoteError. The message becomes both the error's display
// text and its remote-message context, so RemoteError.Error() reproduces
// the server's message verbatim (e.g. "Key not found").
func NewRemoteError(message string) *RemoteError {
	return &RemoteError{
		baseError:     NewBaseError(nil, ErrorCodeRemote, message),
		remoteMessage: message,
	}
}

// WithDetail adds contextual information while maintaining the RemoteError type.
func (re *RemoteError) WithDetail(key string, value any) *RemoteError {
	re.baseError.WithDetail(key, value)
	return re
}

// Message returns the raw message reported by the remote server.
func (re *RemoteError) Message() string {
	return re.remoteMessage
}
