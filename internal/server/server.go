// Package server implements the TCP front end of the store: a listener that
// accepts connections serially, decodes exactly one request per connection,
// dispatches it to an engine, and encodes exactly one response before the
// connection closes.
package server

import (
	"errors"
	"net"

	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/internal/protocol"
	"go.uber.org/zap"
)

// Server accepts TCP connections and dispatches decoded requests to an
// Engine. It never multiplexes: one connection is fully handled before the
// next is accepted.
type Server struct {
	addr   string
	engine engine.Engine
	log    *zap.SugaredLogger
}

// New constructs a Server bound to addr, backed by eng.
func New(addr string, eng engine.Engine, log *zap.SugaredLogger) *Server {
	return &Server{addr: addr, engine: eng, log: log}
}

// Start binds a TCP listener on the server's address and serves connections
// until the listener is closed. Accept errors other than a closed listener
// are logged at warning level and do not stop the loop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	defer listener.Close()

	s.log.Infow("server listening", "addr", s.addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warnw("accept failed", "error", err)
			continue
		}
		s.handleConn(conn)
	}
}

// handleConn processes exactly one request/response exchange, then closes
// the connection.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	req, err := protocol.ReadRequest(conn)
	if err != nil {
		s.log.Warnw("failed to decode request", "remote", conn.RemoteAddr(), "error", err)
		_ = protocol.WriteResponse(conn, errResponse(err))
		return
	}

	resp := s.dispatch(req)
	if err := protocol.WriteResponse(conn, resp); err != nil {
		s.log.Warnw("failed to write response", "remote", conn.RemoteAddr(), "error", err)
	}
}

// dispatch routes a decoded request to the engine and translates its
// outcome into a wire Response. Engine errors are stringified, never
// panicking the server.
func (s *Server) dispatch(req *protocol.Request) *protocol.Response {
	switch req.Op {
	case protocol.OpSet:
		if err := s.engine.Set(req.Key, req.Value); err != nil {
			return errResponse(err)
		}
		return okResponse(nil)

	case protocol.OpGet:
		value, found, err := s.engine.Get(req.Key)
		if err != nil {
			return errResponse(err)
		}
		if !found {
			return okResponse(nil)
		}
		return okResponse(&value)

	case protocol.OpRemove:
		if err := s.engine.Remove(req.Key); err != nil {
			return errResponse(err)
		}
		return okResponse(nil)

	default:
		return &protocol.Response{OK: false, Err: "unrecognized request operation"}
	}
}

func okResponse(value *string) *protocol.Response {
	return &protocol.Response{OK: true, Value: value}
}

func errResponse(err error) *protocol.Response {
	return &protocol.Response{OK: false, Err: err.Error()}
}
