// Package protocol implements the wire framing exchanged between
// kvs-client and kvs-server: a length-prefixed msgpack encoding of the
// request and response variants. Exactly one request and one response are
// exchanged per connection.
//
// This framing is independent of internal/diskcodec's on-disk text
// records: the two encode the same logical Set/Get/Remove shapes but
// neither implies anything about the other.
package protocol

import (
	"encoding/binary"
	"io"

	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/iamNilotpal/ignite/pkg/errors"
)

// Op identifies which request variant a message carries.
type Op uint8

const (
	OpSet Op = iota
	OpGet
	OpRemove
)

// maxMessageSize bounds the length prefix so a corrupt or hostile peer can't
// make the server allocate an unbounded buffer.
const maxMessageSize = 64 << 20

// Request is the client→server message. Value is only meaningful for OpSet.
type Request struct {
	Op    Op     `codec:"op"`
	Key   string `codec:"key"`
	Value string `codec:"value"`
}

// Response is the server→client message. Value is set only for a successful
// Get that found the key; Err is set only on failure.
type Response struct {
	OK    bool    `codec:"ok"`
	Value *string `codec:"value"`
	Err   string  `codec:"err"`
}

var handle = &codec.MsgpackHandle{}

// WriteRequest msgpack-encodes req and writes it to w behind a 4-byte
// big-endian length prefix.
func WriteRequest(w io.Writer, req *Request) error {
	return writeFramed(w, req, "encode_request")
}

// ReadRequest reads one length-prefixed msgpack Request from r.
func ReadRequest(r io.Reader) (*Request, error) {
	var req Request
	if err := readFramed(r, &req, "decode_request"); err != nil {
		return nil, err
	}
	return &req, nil
}

// WriteResponse msgpack-encodes resp and writes it to w behind a 4-byte
// big-endian length prefix.
func WriteResponse(w io.Writer, resp *Response) error {
	return writeFramed(w, resp, "encode_response")
}

// ReadResponse reads one length-prefixed msgpack Response from r.
func ReadResponse(r io.Reader) (*Response, error) {
	var resp Response
	if err := readFramed(r, &resp, "decode_response"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func writeFramed(w io.Writer, v any, op string) error {
	var payload []byte
	enc := codec.NewEncoderBytes(&payload, handle)
	if err := enc.Encode(v); err != nil {
		return errors.NewProtocolError(err, errors.ErrorCodeProtocol, "failed to encode message").
			WithOperation(op)
	}

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(payload)))

	if _, err := w.Write(lenPrefix[:]); err != nil {
		return errors.NewProtocolError(err, errors.ErrorCodeProtocol, "failed to write length prefix").
			WithOperation(op)
	}
	if _, err := w.Write(payload); err != nil {
		return errors.NewProtocolError(err, errors.ErrorCodeProtocol, "failed to write message body").
			WithOperation(op)
	}
	return nil
}

func readFramed(r io.Reader, v any, op string) error {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		return errors.NewProtocolError(err, errors.ErrorCodeProtocol, "failed to read length prefix").
			WithOperation(op)
	}

	n := binary.BigEndian.Uint32(lenPrefix[:])
	if n > maxMessageSize {
		return errors.NewProtocolError(
			nil, errors.ErrorCodeProtocol, "message exceeds maximum allowed size",
		).WithOperation(op).WithDetail("size", n)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return errors.NewProtocolError(err, errors.ErrorCodeProtocol, "failed to read message body").
			WithOperation(op)
	}

	dec := codec.NewDecoderBytes(payload, handle)
	if err := dec.Decode(v); err != nil {
		return errors.NewProtocolError(err, errors.ErrorCodeProtocol, "failed to decode message").
			WithOperation(op)
	}
	return nil
}
