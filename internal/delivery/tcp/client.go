package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

var (
	ErrTimeout          = errors.New("connection timed out")
	ErrConnectionClosed = errors.New("connection closed")
)

func isTimeout(err error) bool {
	netErr, ok := err.(net.Error)
	return ok && netErr.Timeout()
}

// Client is a line-oriented TCP client: one request line out, one
// response line back.
type Client struct {
	address         string
	idleTimeout     time.Duration
	bufferSize      int
	keepAlivePeriod time.Duration

	mu         sync.Mutex
	connection net.Conn
	reader     *bufio.Reader
}

// NewClient creates a new client connected to address.
func NewClient(address string, options ...ClientOption) (*Client, error) {
	client := &Client{
		address:    address,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range options {
		opt(client)
	}

	if client.keepAlivePeriod == 0 {
		client.keepAlivePeriod = time.Second
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("init connection failed: %w", err)
	}

	return client, nil
}

// Connect establishes a new connection to the server.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := net.Dial("tcp", c.address)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	c.connection = conn
	c.reader = bufio.NewReaderSize(conn, c.bufferSize)

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return fmt.Errorf("setting keep alive failed: %w", err)
		}
		if err := tcpConn.SetKeepAlivePeriod(c.keepAlivePeriod); err != nil {
			return fmt.Errorf("setting keep alive period failed: %w", err)
		}
	}

	return nil
}

// Send writes request as one line (appending "\n" if absent) and returns
// the server's one-line response, with the trailing newline stripped.
func (c *Client) Send(ctx context.Context, request string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connection == nil {
		return "", ErrConnectionClosed
	}

	if c.idleTimeout > 0 {
		deadline := time.Now().Add(c.idleTimeout)
		if err := c.connection.SetDeadline(deadline); err != nil {
			return "", fmt.Errorf("failed to set deadline: %w", err)
		}
	}

	if !strings.HasSuffix(request, "\n") {
		request += "\n"
	}

	if _, err := c.connection.Write([]byte(request)); err != nil {
		if isTimeout(err) {
			return "", errors.Join(ErrTimeout, err)
		}
		return "", fmt.Errorf("error writing to connection: %w", err)
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			if isTimeout(err) {
				done <- result{err: errors.Join(ErrTimeout, err)}
				return
			}
			done <- result{err: fmt.Errorf("error reading from connection: %w", err)}
			return
		}
		done <- result{line: strings.TrimSuffix(line, "\n")}
	}()

	select {
	case r := <-done:
		return r.line, r.err
	case <-ctx.Done():
		if err := c.connection.Close(); err != nil {
			return "", fmt.Errorf("failed to close connection on cancel: %w", err)
		}
		c.connection = nil
		return "", fmt.Errorf("operation canceled: %w", ctx.Err())
	}
}

// Close closes the client connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			return fmt.Errorf("error closing connection: %w", err)
		}
		c.connection = nil
	}

	return nil
}
