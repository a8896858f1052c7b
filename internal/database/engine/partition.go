package engine

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vaishvijs13/kv-rs/internal/database/value"
)

// partition is one shard of the keyspace: a single exclusive lock guarding
// a plain map. Every method below is a non-suspending critical section:
// it acquires the lock, does its work including the lazy-expire check,
// and releases before any log record is dispatched by the caller.
type partition struct {
	mu   sync.Mutex
	data map[string]value.Entry
}

func newPartition() *partition {
	return &partition{data: make(map[string]value.Entry)}
}

// liveLocked reports whether the entry at key is live; if it has
// expired it is removed and false is returned. Must be called with mu held.
func (p *partition) liveLocked(key string, now time.Time) (value.Entry, bool) {
	e, ok := p.data[key]
	if !ok {
		return value.Entry{}, false
	}
	if e.Expired(now) {
		delete(p.data, key)
		return value.Entry{}, false
	}
	return e, true
}

func (p *partition) set(key string, v value.Value, expiresAtMs int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.data[key] = value.Entry{Value: v, ExpiresAtMs: expiresAtMs}
}

func (p *partition) get(key string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.liveLocked(key, time.Now())
	if !ok {
		return "", false, nil
	}

	s, err := e.Value.Scalar()
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func (p *partition) del(key string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.data[key]
	if !ok {
		return 0
	}
	delete(p.data, key)
	if e.Expired(time.Now()) {
		return 0
	}
	return 1
}

func (p *partition) exists(key string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.liveLocked(key, time.Now()); ok {
		return 1
	}
	return 0
}

func (p *partition) ttl(key string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	e, ok := p.liveLocked(key, now)
	if !ok {
		return -2
	}
	if !e.HasTTL() {
		return -1
	}

	remMs := e.ExpiresAtMs - now.UnixMilli()
	if remMs < 0 {
		return 0
	}
	return remMs / 1000
}

func (p *partition) keys(prefix string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sweepLocked(time.Now())

	var out []string
	for k := range p.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

func (p *partition) incr(key string) (int64, int64, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	e, ok := p.liveLocked(key, now)
	if !ok {
		p.data[key] = value.NewEntry(value.NewScalar("1"))
		return 1, 0, "1", nil
	}

	cur, err := e.Value.Scalar()
	if err != nil {
		return 0, 0, "", err
	}

	n, perr := strconv.ParseInt(cur, 10, 64)
	if perr != nil {
		return 0, 0, "", &NotIntegerError{Value: cur}
	}
	if n == 9223372036854775807 {
		return 0, 0, "", &NotIntegerError{Value: cur}
	}

	next := n + 1
	nextStr := strconv.FormatInt(next, 10)
	p.data[key] = value.Entry{Value: value.NewScalar(nextStr), ExpiresAtMs: e.ExpiresAtMs}
	return next, e.ExpiresAtMs, nextStr, nil
}

func (p *partition) lpush(key string, values []string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.liveLocked(key, time.Now())
	if !ok {
		e = value.NewEntry(value.NewQueue())
	}

	q, err := e.Value.Queue()
	if err != nil {
		return 0, err
	}

	for _, v := range values {
		q.PushFront(v)
	}

	p.data[key] = e
	return int64(q.Len()), nil
}

func (p *partition) lpop(key string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.liveLocked(key, time.Now())
	if !ok {
		return "", false, nil
	}

	q, err := e.Value.Queue()
	if err != nil {
		return "", false, err
	}

	front := q.Front()
	if front == nil {
		return "", false, nil
	}
	q.Remove(front)

	if q.Len() == 0 {
		delete(p.data, key)
	}

	return front.Value.(string), true, nil
}

func (p *partition) llen(key string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.liveLocked(key, time.Now())
	if !ok {
		return 0, nil
	}

	q, err := e.Value.Queue()
	if err != nil {
		return 0, err
	}
	return int64(q.Len()), nil
}

func (p *partition) sadd(key string, members []string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.liveLocked(key, time.Now())
	if !ok {
		e = value.NewEntry(value.NewMemberSet())
	}

	s, err := e.Value.MemberSet()
	if err != nil {
		return 0, err
	}

	var added int64
	for _, m := range members {
		if _, present := s[m]; !present {
			s[m] = struct{}{}
			added++
		}
	}

	p.data[key] = e
	return added, nil
}

func (p *partition) srem(key string, members []string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.liveLocked(key, time.Now())
	if !ok {
		return 0, nil
	}

	s, err := e.Value.MemberSet()
	if err != nil {
		return 0, err
	}

	var removed int64
	for _, m := range members {
		if _, present := s[m]; present {
			delete(s, m)
			removed++
		}
	}

	if len(s) == 0 {
		delete(p.data, key)
	}

	return removed, nil
}

func (p *partition) scard(key string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.liveLocked(key, time.Now())
	if !ok {
		return 0, nil
	}

	s, err := e.Value.MemberSet()
	if err != nil {
		return 0, err
	}
	return int64(len(s)), nil
}

// sweepLocked removes every expired entry. Must be called with mu held.
func (p *partition) sweepLocked(now time.Time) {
	for k, e := range p.data {
		if e.Expired(now) {
			delete(p.data, k)
		}
	}
}

// sweep acquires the lock and removes every expired entry.
func (p *partition) sweep() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sweepLocked(time.Now())
}

// replaySet applies a replayed set record unconditionally.
func (p *partition) replaySet(key string, v value.Value, expiresAtMs int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[key] = value.Entry{Value: v, ExpiresAtMs: expiresAtMs}
}

// replayDel applies a replayed del record unconditionally.
func (p *partition) replayDel(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, key)
}
