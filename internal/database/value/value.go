// Package value implements the tagged value variants stored in the keyspace.
package value

import (
	"container/list"
	"errors"
)

// ErrWrongType is returned when an operation's required kind does not
// match the kind of the value already stored under a key.
var ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

// Kind identifies the variant held by a Value.
type Kind string

const (
	KindString Kind = "string"
	KindList   Kind = "list"
	KindSet    Kind = "set"
	KindHash   Kind = "hash"
)

// Value is a closed tagged sum: exactly one of Scalar, Queue, MemberSet or
// Map is populated, selected by Kind.
type Value struct {
	kind   Kind
	scalar string
	queue  *list.List
	set    map[string]struct{}
	hash   map[string]string
}

// NewScalar builds a Scalar value from a byte string.
func NewScalar(s string) Value {
	return Value{kind: KindString, scalar: s}
}

// NewQueue builds an empty, ordered Queue value.
func NewQueue() Value {
	return Value{kind: KindList, queue: list.New()}
}

// NewMemberSet builds an empty MemberSet value.
func NewMemberSet() Value {
	return Value{kind: KindSet, set: make(map[string]struct{})}
}

// NewMap builds an empty Map value. Reserved: no dispatched command
// currently produces or consumes a Map; it exists so the variant is
// representable.
func NewMap() Value {
	return Value{kind: KindHash, hash: make(map[string]string)}
}

// Kind reports which variant is held, for diagnostics and WRONGTYPE checks.
func (v Value) Kind() Kind { return v.kind }

// Len reports the element count: byte length for Scalar, item count
// otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.scalar)
	case KindList:
		return v.queue.Len()
	case KindSet:
		return len(v.set)
	case KindHash:
		return len(v.hash)
	default:
		return 0
	}
}

// Scalar borrows the value as a read-only byte string. Fails with
// ErrWrongType unless Kind() == KindString.
func (v Value) Scalar() (string, error) {
	if v.kind != KindString {
		return "", ErrWrongType
	}
	return v.scalar, nil
}

// Queue borrows the value as a mutable ordered sequence. Fails with
// ErrWrongType unless Kind() == KindList.
func (v Value) Queue() (*list.List, error) {
	if v.kind != KindList {
		return nil, ErrWrongType
	}
	return v.queue, nil
}

// MemberSet borrows the value as a mutable unordered set. Fails with
// ErrWrongType unless Kind() == KindSet.
func (v Value) MemberSet() (map[string]struct{}, error) {
	if v.kind != KindSet {
		return nil, ErrWrongType
	}
	return v.set, nil
}

// Map borrows the value as a mutable field map. Fails with ErrWrongType
// unless Kind() == KindHash.
func (v Value) Map() (map[string]string, error) {
	if v.kind != KindHash {
		return nil, ErrWrongType
	}
	return v.hash, nil
}
