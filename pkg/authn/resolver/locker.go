package resolver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// Locker serializes the lookup, prompt and lookup-again sequence of a
// resolution. Lock blocks until the sequence for host may run and returns the
// function releasing it.
type Locker interface {
	Lock(host string) (unlock func())
}

// LockScope selects a built-in Locker.
type LockScope string

const (
	// LockScopeGlobal runs one sequence at a time across all hosts, so at most
	// one prompt is in flight. A resolution for one host waits behind a
	// pending prompt for another.
	LockScopeGlobal LockScope = "global"
	// LockScopeHost runs one sequence at a time per host. Prompts for
	// different hosts may be pending concurrently.
	LockScopeHost LockScope = "host"
)

// ParseLockScope parses a scope name, case-insensitively.
func ParseLockScope(s string) (LockScope, error) {
	switch scope := LockScope(strings.ToLower(s)); scope {
	case LockScopeGlobal, LockScopeHost:
		return scope, nil
	default:
		return "", fmt.Errorf("unknown lock scope %q, oneof [%q, %q]", s, LockScopeGlobal, LockScopeHost)
	}
}

// NewLocker returns the Locker implementing scope. Unknown scopes fall back
// to LockScopeGlobal.
func NewLocker(scope LockScope) Locker {
	if scope == LockScopeHost {
		return &hostLocker{locks: xsync.NewMapOf[string, *sync.Mutex]()}
	}
	return &globalLocker{}
}

type globalLocker struct {
	mu sync.Mutex
}

func (l *globalLocker) Lock(_ string) func() {
	l.mu.Lock()
	return l.mu.Unlock
}

// hostLocker keeps one mutex per host ever resolved.
type hostLocker struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

func (l *hostLocker) Lock(host string) func() {
	mu, _ := l.locks.LoadOrCompute(host, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	mu.Lock()
	return mu.Unlock
}
