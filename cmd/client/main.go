package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/vaishvijs13/kv-rs/pkg/client"
	"github.com/vaishvijs13/kv-rs/pkg/compression"
	"github.com/vaishvijs13/kv-rs/pkg/logger"
	"go.uber.org/zap"
)

var ErrWriteLineFailed = errors.New("write line failed")

func main() {
	var (
		address                 string
		idleTimeout             time.Duration
		maxMessageSize          string
		maxReconnectionAttempts int
	)

	root := &cobra.Command{
		Use:   "kvclient",
		Short: "Interactive REPL client for the kv server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			kv, err := client.New(ctx,
				&client.Config{
					Address:              address,
					IdleTimeout:          idleTimeout,
					MaxMessageSize:       maxMessageSize,
					MaxReconnectAttempts: maxReconnectionAttempts,
					Compression:          string(compression.Zstd),
				}, new(client.TCPClientFactory))
			if err != nil {
				return err
			}

			rl, err := readline.New("$ ")
			if err != nil {
				return fmt.Errorf("failed to create readline instance: %w", err)
			}

			return CLI(ctx, rl, kv)
		},
	}

	root.Flags().StringVar(&address, "address", "localhost:6379", "address of the server")
	root.Flags().DurationVar(&idleTimeout, "idle-timeout", time.Second*10, "idle timeout for the connection")
	root.Flags().StringVar(&maxMessageSize, "max-message-size", "4KB", "max message size for the connection")
	root.Flags().IntVar(&maxReconnectionAttempts, "max-reconnection-attempts", 10, "max reconnection attempts")

	if err := root.Execute(); err != nil {
		logger.Warn("client exited with error", zap.Error(err))
	}
}

// CLI runs a command-line REPL for interacting with the kv server over
// the raw line protocol.
func CLI(ctx context.Context, rl *readline.Instance, kv *client.Client) error {
	defer func() {
		if err := rl.Close(); err != nil {
			logger.Warn("failed to close readline", zap.Error(err))
		}

		if err := kv.Close(); err != nil {
			if _, err = rl.Write(fmt.Appendf(nil, "failed to close client connection: %s", err)); err != nil {
				return
			}
		}
	}()

	for {
		query, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				return nil
			}

			if _, err = rl.Write(fmt.Appendf(nil, "failed to read stdin: %s", err)); err != nil {
				return errors.Join(ErrWriteLineFailed, err)
			}
			continue
		}

		if query == "exit" {
			return nil
		}

		if len(query) == 0 {
			continue
		}

		res, err := kv.Raw(ctx, query)
		if err != nil {
			if _, err = rl.Write(fmt.Appendf(nil, "error: %s\n", err.Error())); err != nil {
				return errors.Join(ErrWriteLineFailed, err)
			}
			continue
		}

		if _, err = rl.Write(append([]byte(res), '\n')); err != nil {
			return errors.Join(ErrWriteLineFailed, err)
		}
	}
}
