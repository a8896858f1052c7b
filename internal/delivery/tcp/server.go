package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/vaishvijs13/kv-rs/pkg/logger"
	"github.com/vaishvijs13/kv-rs/pkg/sync"
	"github.com/vaishvijs13/kv-rs/pkg/unsafeconv"
	"go.uber.org/zap"
)

// Handler answers one request line with one response line (no trailing
// newline — the connection handler appends it).
type Handler func(query string) string

// Server is a line-oriented TCP server: it reads one request per line,
// dispatches it to Handler, and writes back one response per line.
type Server struct {
	handler        Handler
	idleTimeout    time.Duration
	bufferSize     uint
	maxConnections uint
	semaphore      *sync.Semaphore

	activeConnections int32
}

// NewServer creates a new instance of the TCP server.
func NewServer(handler Handler, opts ...ServerOption) *Server {
	server := &Server{
		handler:    handler,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(server)
	}

	if mcons := server.maxConnections; mcons > 0 {
		server.semaphore = sync.NewSemaphore(mcons)
	}

	return server
}

// Start listens on address and serves connections until ctx is canceled.
func (s *Server) Start(ctx context.Context, address string) error {
	if address == "" {
		return errors.New("empty address")
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to start TCP server: %w", err)
	}

	logger.Info("start server listening", zap.String("addr", address))

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server...")
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				logger.Info("server stopped accepting new connections")
				return nil
			}

			logger.Warn("failed to accept connection", zap.Error(err))
			continue
		}
		logger.Debug("accept connection", zap.Stringer("remote_addr", conn.RemoteAddr()))

		s.semaphore.Acquire()
		atomic.AddInt32(&s.activeConnections, 1)
		go func() {
			defer func() {
				s.semaphore.Release()
				atomic.AddInt32(&s.activeConnections, -1)
			}()
			s.handleConnection(ctx, conn)
		}()
	}
}

// handleConnection serves one connection until it errors, the peer
// disconnects, QUIT is issued, or ctx is canceled. No command is ever
// interrupted mid-flight.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer func() {
		if v := recover(); v != nil {
			logger.Error("captured panic", zap.Any("panic", v), zap.String("stack", string(debug.Stack())))
		}

		if err := conn.Close(); err != nil {
			logger.Warn("failed to close connection", zap.Error(err))
		}

		logger.Debug("client disconnected", zap.Stringer("address", conn.RemoteAddr()))
	}()

	reader := bufio.NewReaderSize(conn, int(s.bufferSize))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.readLine(conn, reader)
		if err != nil {
			return
		}

		response := s.handler(line)

		if response == "BYE" {
			if _, err := conn.Write(unsafeconv.StringToBytes("Bye!!!\n")); err != nil {
				logger.Warn("failed to write data", zap.Stringer("address", conn.RemoteAddr()), zap.Error(err))
			}
			return
		}

		// response+"\n" is freshly allocated and never touched again, so
		// handing conn.Write the string's own backing array skips the
		// extra []byte copy on this hot path.
		if _, err := conn.Write(unsafeconv.StringToBytes(response + "\n")); err != nil {
			logger.Warn("failed to write data", zap.Stringer("address", conn.RemoteAddr()), zap.Error(err))
			return
		}
	}
}

// readLine reads one newline-terminated request, honoring the idle
// timeout and translating EOF/oversize into a terminal error.
func (s *Server) readLine(conn net.Conn, reader *bufio.Reader) (string, error) {
	if s.idleTimeout != 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
			logger.Warn("failed to set read deadline", zap.Error(err))
			return "", err
		}
	}

	line, err := reader.ReadBytes('\n')
	if err == nil && uint(len(line)) > s.bufferSize {
		err = bufio.ErrBufferFull
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			logger.Warn("connection timed out", zap.Stringer("remote_addr", conn.RemoteAddr()))
			return "", err
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			logger.Warn("buffer overflow", zap.Int("buffer_size_bytes", int(s.bufferSize)))
			return "", err
		}

		logger.Error("error reading from connection", zap.Error(err))
		return "", err
	}

	// ReadBytes already copies out of the reader's internal buffer, so this
	// slice is ours alone; reinterpreting it as a string skips a second copy.
	return unsafeconv.BytesToString(line), nil
}

// ActiveConnections returns the current number of active connections.
func (s *Server) ActiveConnections() int32 {
	return atomic.LoadInt32(&s.activeConnections)
}
