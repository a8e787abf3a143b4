// Package client implements the dialing side of the wire protocol: dial
// once, send one request, read one response, lift a server-reported
// failure into the local error taxonomy as a RemoteError.
package client

import (
	"net"

	"github.com/iamNilotpal/ignite/internal/protocol"
	"github.com/iamNilotpal/ignite/pkg/errors"
)

// Client holds one TCP connection good for exactly one request/response
// exchange; there are no persistent sessions.
type Client struct {
	conn net.Conn
}

// Dial connects to addr and returns a Client ready to send one request.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.NewProtocolError(err, errors.ErrorCodeIO, "failed to connect to server").
			WithAddr(addr)
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Set sends a Set request and waits for the server's acknowledgement.
func (c *Client) Set(key, value string) error {
	_, err := c.roundTrip(&protocol.Request{Op: protocol.OpSet, Key: key, Value: value})
	return err
}

// Get sends a Get request. found is false both when the key was never set
// and when it was set then removed; the caller cannot and need not
// distinguish the two.
func (c *Client) Get(key string) (value string, found bool, err error) {
	resp, err := c.roundTrip(&protocol.Request{Op: protocol.OpGet, Key: key})
	if err != nil {
		return "", false, err
	}
	if resp.Value == nil {
		return "", false, nil
	}
	return *resp.Value, true, nil
}

// Remove sends a Remove request. A server-reported "Key not found" (or any
// other failure) surfaces as a *errors.RemoteError carrying that message.
func (c *Client) Remove(key string) error {
	_, err := c.roundTrip(&protocol.Request{Op: protocol.OpRemove, Key: key})
	return err
}

// roundTrip writes req and reads back exactly one Response, lifting a
// server-side Err into a RemoteError.
func (c *Client) roundTrip(req *protocol.Request) (*protocol.Response, error) {
	if err := protocol.WriteRequest(c.conn, req); err != nil {
		return nil, err
	}

	resp, err := protocol.ReadResponse(c.conn)
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, errors.NewRemoteError(resp.Err)
	}
	return resp, nil
}
