// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     precision
// Description: Context store: global and per-thread active contexts
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package precision

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/msto63/mpnum/foundation/core/errors"
	"github.com/msto63/mpnum/foundation/core/log"
	"github.com/msto63/mpnum/pkg/kernel"
)

// ThreadID identifies a logical thread of execution within a Store
type ThreadID = uuid.UUID

// MainThread addresses the global context. It never holds an override.
var MainThread = uuid.Nil

// Store keeps exactly one active context per logical thread. Threads without
// an override see the global context.
//
// Activation pushes the context's exponent range into the kernel. The kernel
// range is process-wide, so activating a context on one thread changes the
// range seen by arithmetic running on every other thread.
type Store struct {
	mu      sync.RWMutex
	kernel  kernel.Kernel
	global  *Context
	threads map[ThreadID]*Context
	logger  *log.Logger

	// gen invalidates the lookup cache on every change
	gen   atomic.Uint64
	cache atomic.Pointer[cacheEntry]
}

type cacheEntry struct {
	id  ThreadID
	ctx *Context
	gen uint64
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLogger sets the logger for activation and scope events
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGlobal installs ctx (copied when read-only) as the global context
func WithGlobal(ctx *Context) StoreOption {
	return func(s *Store) {
		if ctx == nil {
			return
		}
		if ctx.ReadOnly() {
			ctx = ctx.Copy()
		}
		s.global = ctx
	}
}

// NewStore creates a Store whose global context has the default settings.
// A nil kernel selects kernel.Default().
func NewStore(k kernel.Kernel, opts ...StoreOption) *Store {
	if k == nil {
		k = kernel.Default()
	}
	s := &Store{
		kernel:  k,
		threads: make(map[ThreadID]*Context),
		logger:  log.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.global == nil {
		s.global = defaults()
	}
	if err := k.SetExponentRange(s.global.Emin(), s.global.Emax()); err != nil {
		s.logger.ErrorWithErr("Failed to apply global exponent range", err)
	}
	return s
}

// Kernel returns the kernel the store pushes exponent ranges into
func (s *Store) Kernel() kernel.Kernel { return s.kernel }

// Current returns the active context of id by reference. It never fails:
// a thread without an override gets the global context.
func (s *Store) Current(id ThreadID) *Context {
	gen := s.gen.Load()
	if e := s.cache.Load(); e != nil && e.gen == gen && e.id == id {
		return e.ctx
	}

	s.mu.RLock()
	gen = s.gen.Load()
	ctx := s.lookup(id)
	s.mu.RUnlock()

	s.cache.Store(&cacheEntry{id: id, ctx: ctx, gen: gen})
	return ctx
}

func (s *Store) lookup(id ThreadID) *Context {
	if id != MainThread {
		if ctx, ok := s.threads[id]; ok {
			return ctx
		}
	}
	return s.global
}

// Global returns the global context by reference
func (s *Store) Global() *Context {
	return s.Current(MainThread)
}

// Activate installs ctx as the active context of id. Read-only contexts are
// copied first. On error the previous activation stays in place.
func (s *Store) Activate(id ThreadID, ctx *Context) error {
	if ctx == nil {
		return errors.InvalidContext("context", nil, "non-nil context")
	}
	if ctx.ReadOnly() {
		ctx = ctx.Copy()
	}
	emin, emax := ctx.Emin(), ctx.Emax()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kernel.SetExponentRange(emin, emax); err != nil {
		return err
	}
	if id == MainThread {
		s.global = ctx
	} else {
		s.threads[id] = ctx
	}
	s.gen.Add(1)

	s.logger.Debug("Context activated", log.Fields{
		"thread_id": id.String(),
		"precision": ctx.Precision(),
		"emin":      emin,
		"emax":      emax,
	})
	return nil
}

// ActivateGlobal replaces the global context
func (s *Store) ActivateGlobal(ctx *Context) error {
	return s.Activate(MainThread, ctx)
}

// Local opens a scope on id. The new context starts from base (copied) or,
// when base is nil, from a copy of the current one; opts are applied and
// validated before anything is activated. Exit restores the previous
// configuration.
func (s *Store) Local(id ThreadID, base *Context, opts ...Option) (*Scope, error) {
	if base == nil {
		base = s.Current(id)
	}
	next := base.Copy()
	if err := next.apply(opts...); err != nil {
		return nil, err
	}

	s.mu.RLock()
	_, hadOwn := s.threads[id]
	prev := s.lookup(id)
	s.mu.RUnlock()

	scope := &Scope{
		store:    s,
		id:       id,
		previous: prev.Copy(),
		hadOwn:   hadOwn || id == MainThread,
		next:     next,
	}
	if err := s.Activate(id, next); err != nil {
		return nil, err
	}
	s.logger.Debug("Scope entered", log.Fields{"thread_id": id.String(), "precision": next.Precision()})
	return scope, nil
}

// NewThread registers a logical thread. It has no override until a context
// is activated on it.
func (s *Store) NewThread() *Thread {
	return &Thread{store: s, id: uuid.New()}
}

// Thread returns a handle for an existing id
func (s *Store) Thread(id ThreadID) *Thread {
	return &Thread{store: s, id: id}
}

// Release drops the override of id so it falls back to the global context.
// Releasing MainThread is a no-op.
func (s *Store) Release(id ThreadID) {
	if id == MainThread {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.threads[id]; !ok {
		return
	}
	delete(s.threads, id)
	s.gen.Add(1)
	if err := s.kernel.SetExponentRange(s.global.Emin(), s.global.Emax()); err != nil {
		s.logger.ErrorWithErr("Failed to restore global exponent range", err)
	}
	s.logger.Debug("Thread released", log.Fields{"thread_id": id.String()})
}

// Threads returns the number of threads holding an override
func (s *Store) Threads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.threads)
}
