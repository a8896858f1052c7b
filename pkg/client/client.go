// Package client implements the high-level KV client: connection
// lifecycle, reconnect-with-backoff, and one typed method per command.
package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vaishvijs13/kv-rs/internal/delivery/tcp"
	"github.com/vaishvijs13/kv-rs/pkg/compression"
	"github.com/vaishvijs13/kv-rs/pkg/sizeutil"
)

var (
	ErrMaxReconnects         = errors.New("maximum reconnection attempts reached")
	ErrInvalidResponseFormat = errors.New("invalid response format")
	ErrKeyNotFound           = errors.New("key not found")
)

type (
	// NetClientFactory creates a NetClient bound to an address.
	NetClientFactory interface {
		Make(address string, opts ...tcp.ClientOption) (NetClient, error)
	}

	// NetClient is the line-oriented transport a Client drives.
	NetClient interface {
		Close() error
		Send(ctx context.Context, request string) (string, error)
	}
)

func buildCommandString(cmd string, args ...string) string {
	parts := append([]string{cmd}, args...)
	return strings.Join(parts, " ")
}

// Config holds the configuration settings for the client.
type Config struct {
	Address              string        `json:"address"`
	MaxMessageSize       string        `json:"maxMessageSize"`
	Compression          string        `json:"compression"`
	MaxReconnectAttempts int           `json:"maxReconnectAttempts"`
	IdleTimeout          time.Duration `json:"idleTimeout"`
	ReconnectBaseDelay   time.Duration `json:"reconnectBaseDelay"`
	KeepAliveInterval    time.Duration `json:"keepAliveInterval"`
}

// Client is a client for the keyspace server.
type Client struct {
	cfg           *Config
	compressor    compression.Compressor
	clientFactory NetClientFactory
	mu            sync.Mutex
	client        NetClient
}

// New creates and returns a new Client with the provided configuration.
func New(ctx context.Context, cfg *Config, clientFactory NetClientFactory) (*Client, error) {
	if cfg.Address == "" {
		return nil, errors.New("empty address")
	}

	if cfg.MaxReconnectAttempts == 0 {
		cfg.MaxReconnectAttempts = 1
	}

	client := &Client{
		cfg:           cfg,
		clientFactory: clientFactory,
	}

	if cfg.Compression != "" {
		compressor, err := compression.New(compression.CompressionType(cfg.Compression))
		if err != nil {
			return nil, err
		}
		client.compressor = compressor
	}

	if err := client.connect(); err != nil {
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}

	return client, nil
}

func (k *Client) connect() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.client != nil {
		_ = k.client.Close()
	}

	tcpClientOpts := make([]tcp.ClientOption, 0)
	if k.cfg.IdleTimeout > 0 {
		tcpClientOpts = append(tcpClientOpts, tcp.WithClientIdleTimeout(k.cfg.IdleTimeout))
	}
	if k.cfg.KeepAliveInterval > 0 {
		tcpClientOpts = append(tcpClientOpts, tcp.WithKeepAlivePeriod(k.cfg.KeepAliveInterval))
	}

	if k.cfg.MaxMessageSize != "" {
		size, err := sizeutil.ParseSize(k.cfg.MaxMessageSize)
		if err != nil {
			return fmt.Errorf("parse max message size '%s' failed: %w", k.cfg.MaxMessageSize, err)
		}
		tcpClientOpts = append(tcpClientOpts, tcp.WithClientBufferSize(uint(size)))
	}

	client, err := k.clientFactory.Make(k.cfg.Address, tcpClientOpts...)
	if err != nil {
		return err
	}
	k.client = client

	return nil
}

// sendWithRetries sends a request to the server, reconnecting with linear
// backoff on transport failure.
func (k *Client) sendWithRetries(ctx context.Context, request string) (string, error) {
	attempt := 0

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		attempt++
		if attempt > k.cfg.MaxReconnectAttempts {
			return "", ErrMaxReconnects
		}

		resp, err := k.client.Send(ctx, request)
		if err == nil {
			return resp, nil
		}

		if errors.Is(err, tcp.ErrTimeout) {
			continue
		}

		if errors.Is(err, context.Canceled) {
			return "", ctx.Err()
		}

		if err := k.reconnect(ctx, attempt); err != nil {
			return "", fmt.Errorf("reconnect failed: %w", err)
		}
	}
}

// reconnect attempts to reconnect with linear backoff.
func (k *Client) reconnect(ctx context.Context, attempt int) error {
	delay := k.cfg.ReconnectBaseDelay * time.Duration(attempt)

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	return k.connect()
}

// Raw sends a request line verbatim and returns the server's response
// line verbatim.
func (k *Client) Raw(ctx context.Context, query string) (string, error) {
	return k.sendWithRetries(ctx, query)
}

func isErrLine(line string) bool {
	return strings.HasPrefix(line, "ERR ")
}

// Ping sends PING.
func (k *Client) Ping(ctx context.Context) (string, error) {
	return k.sendWithRetries(ctx, buildCommandString("PING"))
}

// Set stores value for key, optionally with a TTL and/or compression.
func (k *Client) Set(ctx context.Context, key, value string, opts ...Option) error {
	options := applyOptions(opts)
	processedValue := value

	compressor := options.compressor
	if compressor == nil {
		compressor = k.compressor
	}
	if compressor != nil {
		compressed, err := compressor.Compress([]byte(value))
		if err != nil {
			return fmt.Errorf("failed to compress value for key '%s': %w", key, err)
		}
		processedValue = base64.StdEncoding.EncodeToString(compressed)
	}

	args := []string{key, processedValue}
	if options.ttl != nil {
		args = append(args, "EX", strconv.FormatInt(int64(options.ttl.Seconds()), 10))
	}

	resp, err := k.sendWithRetries(ctx, buildCommandString("SET", args...))
	if err != nil {
		return fmt.Errorf("failed to set key '%s': %w", key, err)
	}
	if isErrLine(resp) {
		return fmt.Errorf("failed to set key '%s': %s", key, resp)
	}

	return nil
}

// Get retrieves the value at key, or ErrKeyNotFound if it is absent.
func (k *Client) Get(ctx context.Context, key string, opts ...Option) (string, error) {
	options := applyOptions(opts)

	resp, err := k.sendWithRetries(ctx, buildCommandString("GET", key))
	if err != nil {
		return "", fmt.Errorf("failed to get key '%s': %w", key, err)
	}
	if resp == "(nil)" {
		return "", ErrKeyNotFound
	}
	if isErrLine(resp) {
		return "", fmt.Errorf("failed to get key '%s': %s", key, resp)
	}

	compressor := options.compressor
	if compressor == nil {
		compressor = k.compressor
	}
	if compressor != nil {
		raw, err := base64.StdEncoding.DecodeString(resp)
		if err != nil {
			return "", fmt.Errorf("failed to decode base64 for key '%s': %w", key, err)
		}
		decompressed, err := compressor.Decompress(raw)
		if err != nil {
			return "", fmt.Errorf("failed to decompress value for key '%s': %w", key, err)
		}
		return string(decompressed), nil
	}

	return resp, nil
}

// Del removes key, returning the number of keys actually removed (0 or 1).
func (k *Client) Del(ctx context.Context, key string) (int64, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("DEL", key))
	if err != nil {
		return 0, fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return parseInteger(resp)
}

// Exists reports whether key is present and live.
func (k *Client) Exists(ctx context.Context, key string) (int64, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("EXISTS", key))
	if err != nil {
		return 0, err
	}
	return parseInteger(resp)
}

// TTL returns the remaining seconds until key's expiration.
func (k *Client) TTL(ctx context.Context, key string) (int64, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("TTL", key))
	if err != nil {
		return 0, err
	}
	return parseInteger(resp)
}

// Keys returns every live key with the given prefix.
func (k *Client) Keys(ctx context.Context, prefix string) ([]string, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("KEYS", prefix))
	if err != nil {
		return nil, err
	}
	if resp == "(empty)" {
		return nil, nil
	}
	return strings.Split(resp, " "), nil
}

// Incr increments the integer stored at key by one and returns the new
// value.
func (k *Client) Incr(ctx context.Context, key string) (int64, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("INCR", key))
	if err != nil {
		return 0, err
	}
	return parseInteger(resp)
}

// LPush pushes values onto the front of the list at key.
func (k *Client) LPush(ctx context.Context, key string, values ...string) (int64, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("LPUSH", append([]string{key}, values...)...))
	if err != nil {
		return 0, err
	}
	return parseInteger(resp)
}

// LPop removes and returns the front element of the list at key.
func (k *Client) LPop(ctx context.Context, key string) (string, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("LPOP", key))
	if err != nil {
		return "", err
	}
	if resp == "(nil)" {
		return "", ErrKeyNotFound
	}
	return resp, nil
}

// LLen returns the length of the list at key.
func (k *Client) LLen(ctx context.Context, key string) (int64, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("LLEN", key))
	if err != nil {
		return 0, err
	}
	return parseInteger(resp)
}

// SAdd adds members to the set at key.
func (k *Client) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("SADD", append([]string{key}, members...)...))
	if err != nil {
		return 0, err
	}
	return parseInteger(resp)
}

// SRem removes members from the set at key.
func (k *Client) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("SREM", append([]string{key}, members...)...))
	if err != nil {
		return 0, err
	}
	return parseInteger(resp)
}

// SCard returns the cardinality of the set at key.
func (k *Client) SCard(ctx context.Context, key string) (int64, error) {
	resp, err := k.sendWithRetries(ctx, buildCommandString("SCARD", key))
	if err != nil {
		return 0, err
	}
	return parseInteger(resp)
}

func parseInteger(resp string) (int64, error) {
	if isErrLine(resp) {
		return 0, errors.New(resp)
	}
	n, err := strconv.ParseInt(resp, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidResponseFormat, resp)
	}
	return n, nil
}

// Close closes the underlying connection.
func (k *Client) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.client != nil {
		if err := k.client.Close(); err != nil {
			return fmt.Errorf("error closing connection: %w", err)
		}
		k.client = nil
	}

	return nil
}
