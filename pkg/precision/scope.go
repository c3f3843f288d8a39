// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     precision
// Description: Logical threads and scoped context activation
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package precision

import (
	"sync"

	"github.com/msto63/mpnum/foundation/core/log"
)

// Thread is a handle on one logical thread of a Store. A goroutine that
// needs its own context configuration creates a Thread and uses it for all
// of its arithmetic.
type Thread struct {
	store *Store
	id    ThreadID
}

func (t *Thread) ID() ThreadID { return t.id }

func (t *Thread) Store() *Store { return t.store }

// Current returns the thread's active context
func (t *Thread) Current() *Context { return t.store.Current(t.id) }

// Activate installs ctx as the thread's override
func (t *Thread) Activate(ctx *Context) error { return t.store.Activate(t.id, ctx) }

// Local opens a scope on the thread, see Store.Local
func (t *Thread) Local(base *Context, opts ...Option) (*Scope, error) {
	return t.store.Local(t.id, base, opts...)
}

// WithLocal runs fn inside a scope and exits it afterwards, also when fn
// returns an error or panics.
func (t *Thread) WithLocal(base *Context, fn func(*Context) error, opts ...Option) (err error) {
	scope, err := t.Local(base, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if exitErr := scope.Exit(); err == nil {
			err = exitErr
		}
	}()
	return fn(scope.Context())
}

// Release drops the thread's override
func (t *Thread) Release() { t.store.Release(t.id) }

// Scope is an entered local context. Exit restores the configuration that
// was active when the scope was entered.
type Scope struct {
	store    *Store
	id       ThreadID
	previous *Context
	hadOwn   bool
	next     *Context

	once    sync.Once
	exitErr error
}

// Context returns the scope's context by reference
func (s *Scope) Context() *Context { return s.next }

// Exit restores the previous context. Calling it again does nothing.
func (s *Scope) Exit() error {
	s.once.Do(func() {
		if !s.hadOwn {
			s.store.Release(s.id)
		} else {
			s.exitErr = s.store.Activate(s.id, s.previous)
		}
		s.store.logger.Debug("Scope exited", log.Fields{
			"thread_id": s.id.String(),
			"precision": s.store.Current(s.id).Precision(),
		})
	})
	return s.exitErr
}
