// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     calc
// Description: Calculator session bound to one logical thread
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package calc evaluates mpcalc expressions and commands. A Session owns a
// logical thread of a context store, so its settings never leak into other
// sessions.
package calc

import (
	"fmt"
	"strings"

	"github.com/msto63/mpnum/foundation/core/errors"
	mdwlog "github.com/msto63/mpnum/foundation/core/log"
	"github.com/msto63/mpnum/pkg/coerce"
	"github.com/msto63/mpnum/pkg/core/config"
	"github.com/msto63/mpnum/pkg/dispatch"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/numeric"
	"github.com/msto63/mpnum/pkg/precision"
)

// Session evaluates expressions against its own active context
type Session struct {
	thread   *precision.Thread
	kernel   kernel.Kernel
	ops      *dispatch.Dispatcher
	promoter *coerce.Promoter
	cfg      *config.Config
	logger   *mdwlog.Logger
	last     numeric.Value
}

// NewSession registers a thread on store and activates the named profile of
// cfg on it. An empty profile selects the configured default.
func NewSession(store *precision.Store, cfg *config.Config, profile string, logger *mdwlog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = mdwlog.Nop()
	}
	ctx, err := cfg.Context(profile)
	if err != nil {
		return nil, err
	}

	th := store.NewThread()
	if err := th.Activate(ctx); err != nil {
		th.Release()
		return nil, err
	}

	s := &Session{
		thread:   th,
		kernel:   store.Kernel(),
		ops:      dispatch.New(th, store.Kernel(), dispatch.WithLogger(logger)),
		promoter: coerce.NewPromoter(store.Kernel()),
		cfg:      cfg,
		logger:   logger,
	}
	logger.Debug("Session started", mdwlog.Fields{
		"thread_id": th.ID().String(),
		"profile":   profile,
	})
	return s, nil
}

// Context returns the active context of the session
func (s *Session) Context() *precision.Context { return s.thread.Current() }

// Last returns the most recent result, or nil
func (s *Session) Last() numeric.Value { return s.last }

// Close releases the session thread
func (s *Session) Close() {
	s.thread.Release()
}

// Result is the outcome of one evaluated expression
type Result struct {
	Values []numeric.Value
	Order  int
	IsCmp  bool
}

func (r Result) String() string {
	if r.IsCmp {
		return fmt.Sprint(r.Order)
	}
	parts := make([]string, len(r.Values))
	for i, v := range r.Values {
		parts[i] = v.String()
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Kind names the kinds of the result values
func (r Result) Kind() string {
	if r.IsCmp {
		return numeric.KindInteger.String()
	}
	kinds := make([]string, len(r.Values))
	for i, v := range r.Values {
		kinds[i] = v.Kind().String()
	}
	return strings.Join(kinds, ", ")
}

// Eval evaluates one expression. "_" stands for the previous result.
func (s *Session) Eval(line string) (Result, error) {
	timer := s.logger.StartTimer("eval").WithField("expression", line)
	res, err := s.eval(line)
	if err != nil {
		// user input errors stay at debug level
		timer.WithField("success", false).WithField("error", err.Error()).Stop()
		return Result{}, err
	}
	timer.WithField("kind", res.Kind()).Stop()

	if len(res.Values) > 0 {
		s.last = res.Values[0]
	}
	return res, nil
}

func (s *Session) eval(line string) (Result, error) {
	e, err := parseExpr(line)
	if err != nil {
		return Result{}, err
	}
	args := make([]any, len(e.args))
	for i, tok := range e.args {
		if args[i], err = s.operand(tok); err != nil {
			return Result{}, err
		}
	}
	return s.apply(e.op, args)
}

func (s *Session) operand(tok string) (any, error) {
	if tok == "_" {
		if s.last == nil {
			return nil, errors.InvalidInput(errors.ModuleCalc, "eval", tok, "a previous result")
		}
		return s.last, nil
	}
	return parseLiteral(tok, s.Context(), s.kernel)
}

func (s *Session) apply(op string, args []any) (Result, error) {
	one := func(v numeric.Value, err error) (Result, error) {
		if err != nil {
			return Result{}, err
		}
		return Result{Values: []numeric.Value{v}}, nil
	}

	switch op {
	case "":
		// a bare operand is rounded into its own kind
		v := args[0]
		return one(s.promoter.Promote(v, s.promoter.Classify(v), s.Context()))
	case "add":
		return one(s.ops.Add(args[0], args[1]))
	case "sub":
		return one(s.ops.Sub(args[0], args[1]))
	case "mul":
		return one(s.ops.Mul(args[0], args[1]))
	case "truediv":
		return one(s.ops.TrueDiv(args[0], args[1]))
	case "floordiv":
		return one(s.ops.FloorDiv(args[0], args[1]))
	case "mod":
		return one(s.ops.Mod(args[0], args[1]))
	case "pow":
		return one(s.ops.Pow(args[0], args[1]))
	case "powmod":
		return one(s.ops.PowMod(args[0], args[1], args[2]))
	case "divmod":
		q, r, err := s.ops.DivMod(args[0], args[1])
		if err != nil {
			return Result{}, err
		}
		return Result{Values: []numeric.Value{q, r}}, nil
	case "cmp":
		c, err := s.ops.Cmp(args[0], args[1])
		if err != nil {
			return Result{}, err
		}
		return Result{Order: c, IsCmp: true}, nil
	}
	return Result{}, errors.NotSupported(errors.ModuleCalc, op)
}
