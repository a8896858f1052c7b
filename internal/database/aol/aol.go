// Package aol implements the append-only log: a fire-and-forget durability
// sidecar for the keyspace engine. Mutating operations hand a record to an
// unbounded in-memory queue; a single background writer goroutine drains
// the queue and appends each record as one JSON line to a file. Replay is
// synchronous and happens once, at startup, before the writer goroutine is
// started.
package aol

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/vaishvijs13/kv-rs/pkg/logger"
	pkgsync "github.com/vaishvijs13/kv-rs/pkg/sync"
	"go.uber.org/zap"
)

// AOL owns the log file and the background writer goroutine.
type AOL struct {
	path string

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []LogEntry
	closing bool
	closed  bool
	done    chan struct{}
}

// New binds the log to path, creating an empty file if one is not already
// present. It does not start the writer goroutine; call Start for that.
func New(path string) (*AOL, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	a := &AOL{path: path, done: make(chan struct{})}
	a.cond = sync.NewCond(&a.mu)
	return a, nil
}

// Submit hands a record to the writer. It never blocks on I/O and never
// reports failure to the caller; if the writer has already terminated
// (because of a prior write error, or because Close was called) the
// record is silently dropped.
func (a *AOL) Submit(e LogEntry) {
	dropped := false
	pkgsync.WithLock(&a.mu, func() {
		if a.closing || a.closed {
			dropped = true
			return
		}
		a.queue = append(a.queue, e)
	})
	if !dropped {
		a.cond.Signal()
	}
}

// LogSet implements engine.Logger.
func (a *AOL) LogSet(key, value string, expiresAtMs int64) {
	a.Submit(NewSetEntry(key, value, expiresAtMs))
}

// LogDel implements engine.Logger.
func (a *AOL) LogDel(key string) {
	a.Submit(NewDelEntry(key))
}

// Start launches the background writer goroutine. It returns immediately;
// the goroutine runs until ctx is canceled or a write fails, whichever
// comes first, then closes a.done.
func (a *AOL) Start(ctx context.Context) {
	go a.run(ctx)
}

func (a *AOL) run(ctx context.Context) {
	defer close(a.done)

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Error("aol: failed to open log file for append", zap.String("path", a.path), zap.Error(err))
		a.markClosed()
		return
	}
	defer f.Close()

	go func() {
		<-ctx.Done()
		pkgsync.WithLock(&a.mu, func() { a.closing = true })
		a.cond.Broadcast()
	}()

	for {
		var batch []LogEntry
		var draining bool
		pkgsync.WithLock(&a.mu, func() {
			for len(a.queue) == 0 && !a.closing {
				a.cond.Wait()
			}
			batch = a.queue
			a.queue = nil
			draining = a.closing
		})

		for _, e := range batch {
			line, err := json.Marshal(e)
			if err != nil {
				logger.Error("aol: failed to encode record", zap.Error(err))
				continue
			}
			line = append(line, '\n')
			if _, err := f.Write(line); err != nil {
				logger.Error("aol: write failed, log writer terminating", zap.Error(err))
				a.markClosed()
				return
			}
		}

		if draining && len(batch) == 0 {
			a.markClosed()
			return
		}
	}
}

func (a *AOL) markClosed() {
	pkgsync.WithLock(&a.mu, func() { a.closed = true })
}

// Close signals the writer goroutine to drain and stop, then waits for it
// to exit.
func (a *AOL) Close() error {
	pkgsync.WithLock(&a.mu, func() { a.closing = true })
	a.cond.Broadcast()

	<-a.done
	return nil
}

// Replay opens path read-only (a missing file is treated as an empty log)
// and parses every line into a LogEntry in file order. Lines that are
// blank or fail to parse are logged and skipped; replay never aborts.
func Replay(path string) ([]LogEntry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var e LogEntry
		if err := json.Unmarshal(line, &e); err != nil {
			logger.Warn("aol: skipping malformed record during replay", zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}
