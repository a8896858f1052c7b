// Package application wires together configuration, logging, the
// keyspace engine, the append-only log, and the TCP server, and runs
// them until shutdown.
package application

import (
	"context"
	"time"

	"github.com/vaishvijs13/kv-rs/internal/config"
	"github.com/vaishvijs13/kv-rs/internal/database/aol"
	"github.com/vaishvijs13/kv-rs/internal/database/compute"
	"github.com/vaishvijs13/kv-rs/internal/database/engine"
	"github.com/vaishvijs13/kv-rs/internal/delivery/tcp"
	"github.com/vaishvijs13/kv-rs/pkg/logger"
	"github.com/vaishvijs13/kv-rs/pkg/sizeutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Application owns the process lifecycle: init, run, shutdown.
type Application struct {
	cfg *config.Config
}

// New returns an Application bound to cfg.
func New(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// Start initializes every component and runs the accept loop, the
// sweeper, and the log writer concurrently until ctx is canceled or one
// of them returns a fatal error.
func (a *Application) Start(ctx context.Context) error {
	logger.InitLogger(a.cfg.Logging.Level, a.cfg.Logging.Output)

	log, err := initAOL(a.cfg.AOFPath)
	if err != nil {
		return err
	}

	kv, err := initEngine(a.cfg.Engine, log)
	if err != nil {
		return err
	}

	if err := replayAOL(a.cfg.AOFPath, kv); err != nil {
		logger.Warn("aol replay reported an error, continuing with partial state", zap.Error(err))
	}

	tcpServerOpts := make([]tcp.ServerOption, 0)
	if timeout := a.cfg.Network.IdleTimeout; timeout != 0 {
		logger.Debug("set tcp idle timeout", zap.Stringer("idle_timeout", timeout))
		tcpServerOpts = append(tcpServerOpts, tcp.WithServerIdleTimeout(timeout))
	}
	if mcons := a.cfg.Network.MaxConnections; mcons != 0 {
		logger.Debug("set tcp max connections", zap.Int("max_connections", int(mcons)))
		tcpServerOpts = append(tcpServerOpts, tcp.WithServerMaxConnectionsNumber(mcons))
	}
	if msize := a.cfg.Network.MaxMessageSize; msize != "" {
		size, err := sizeutil.ParseSize(msize)
		if err != nil {
			logger.Error("parse max message size failed", zap.Error(err))
			return err
		}
		logger.Debug("set max_message_size bytes", zap.Int("max_message_size", size))
		tcpServerOpts = append(tcpServerOpts, tcp.WithServerBufferSize(uint(size)))
	}

	handler := func(line string) string {
		return compute.Dispatch(kv, line).Render()
	}
	server := tcp.NewServer(handler, tcpServerOpts...)

	sweepInterval := time.Duration(a.cfg.Sweeper.IntervalSeconds) * time.Second
	if sweepInterval <= 0 {
		sweepInterval = 2 * time.Second
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return kv.Start(gctx, sweepInterval)
	})

	if log != nil {
		log.Start(gctx)
	}

	group.Go(func() error {
		return server.Start(gctx, a.cfg.Addr)
	})

	err = group.Wait()

	if log != nil {
		if cerr := log.Close(); cerr != nil {
			logger.Debug("failed to close aol", zap.Error(cerr))
		}
	}

	return err
}

func initEngine(cfg config.EngineConfig, log *aol.AOL) (*engine.Engine, error) {
	opts := []engine.Option{}
	if cfg.Partitions > 0 {
		opts = append(opts, engine.WithPartitionNum(cfg.Partitions))
	}
	if log != nil {
		opts = append(opts, engine.WithLogger(log))
	}
	return engine.New(opts...), nil
}

func initAOL(path string) (*aol.AOL, error) {
	return aol.New(path)
}

func replayAOL(path string, kv *engine.Engine) error {
	entries, err := aol.Replay(path)
	if err != nil {
		return err
	}

	for _, e := range entries {
		switch e.Op {
		case "set":
			if e.Value == nil {
				continue
			}
			var expiresAtMs int64
			if e.ExpiresAtMs != nil {
				expiresAtMs = *e.ExpiresAtMs
			}
			kv.ReplaySet(e.Key, *e.Value, expiresAtMs)
		case "del":
			kv.ReplayDel(e.Key)
		default:
			logger.Debug("ignoring unknown aol operation during replay", zap.String("op", e.Op))
		}
	}

	logger.Info("aol replay complete", zap.Int("records", len(entries)))
	return nil
}
