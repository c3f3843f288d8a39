// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     calc
// Description: Session commands for inspecting and changing the context
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package calc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/mpnum/foundation/core/errors"
	mdwlog "github.com/msto63/mpnum/foundation/core/log"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/precision"
)

// Help lists the session commands
const Help = `Expressions:
  x OP y            OP is one of + - * / // % ** ^ <=>
  NAME x y          add sub mul truediv floordiv mod pow divmod cmp
  powmod x y m      modular power of integers
  _                 the previous result
  0.1d              an exact decimal operand

Commands:
  :context          show the active context
  :set FIELD VALUE  change a context field
  :with F=V[,F=V] EXPR
                    evaluate EXPR in a local context
  :profile NAME     activate a configured profile
  :profiles         list configured profiles
  :ieee BITS        activate an IEEE 754 context (32, 64 or 128)
  :flags            show the sticky flags
  :clear            clear the sticky flags
  :trap COND on|off enable or disable a trap
  :help             show this help
  :quit             leave the REPL`

// Commands lists the command prefixes offered for completion
var Commands = []string{
	":context", ":set ", ":with ", ":profile ", ":profiles", ":ieee ",
	":flags", ":clear", ":trap ", ":help", ":quit",
}

// Complete returns the commands starting with line
func Complete(line string) []string {
	if !strings.HasPrefix(line, ":") {
		return nil
	}
	var out []string
	for _, c := range Commands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

// IsQuit reports whether line asks to leave the REPL
func IsQuit(line string) bool {
	switch strings.TrimSpace(line) {
	case ":quit", ":q", ":exit":
		return true
	}
	return false
}

// Exec runs a command or evaluates an expression and returns the text to
// print
func (s *Session) Exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	if !strings.HasPrefix(line, ":") {
		res, err := s.Eval(line)
		if err != nil {
			return "", err
		}
		return res.String(), nil
	}

	name, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch name {
	case "help", "h", "?":
		return Help, nil
	case "context", "ctx":
		return s.Context().String(), nil
	case "set":
		if len(args) != 2 {
			return "", usage("set FIELD VALUE")
		}
		opt, err := Option(args[0], args[1])
		if err != nil {
			return "", err
		}
		if err := s.Context().Update(opt); err != nil {
			return "", err
		}
		return "", nil
	case "with":
		return s.with(rest)
	case "profile":
		if len(args) != 1 {
			return "", usage("profile NAME")
		}
		return "", s.UseProfile(args[0])
	case "profiles":
		return strings.Join(s.cfg.ProfileNames(), "\n"), nil
	case "ieee":
		if len(args) != 1 {
			return "", usage("ieee BITS")
		}
		bits, err := strconv.Atoi(args[0])
		if err != nil {
			return "", errors.InvalidInput(errors.ModuleCalc, "ieee", args[0], "32, 64 or 128")
		}
		ctx, err := precision.IEEE(bits)
		if err != nil {
			return "", err
		}
		return "", s.thread.Activate(ctx)
	case "flags":
		return s.Context().Flags().String(), nil
	case "clear":
		return "", s.Context().ClearFlags()
	case "trap":
		if len(args) != 2 {
			return "", usage("trap COND on|off")
		}
		cond, ok := kernel.ParseCondition(args[0])
		if !ok {
			return "", errors.InvalidInput(errors.ModuleCalc, "trap", args[0], "a condition name")
		}
		on, err := parseSwitch(args[1])
		if err != nil {
			return "", err
		}
		return "", s.Context().SetTrap(cond, on)
	}
	return "", errors.InvalidInput(errors.ModuleCalc, "command", name, "a command listed by :help")
}

// UseProfile activates the named profile for the session
func (s *Session) UseProfile(name string) error {
	ctx, err := s.cfg.Context(name)
	if err != nil {
		return err
	}
	if err := s.thread.Activate(ctx); err != nil {
		return err
	}
	s.logger.Debug("Profile activated", mdwlog.Fields{"profile": name})
	return nil
}

// with evaluates "F=V[,F=V] EXPR" in a local scope
func (s *Session) with(rest string) (string, error) {
	assigns, expr, ok := strings.Cut(rest, " ")
	if !ok || strings.TrimSpace(expr) == "" {
		return "", usage("with F=V[,F=V] EXPR")
	}
	var opts []precision.Option
	for _, kv := range strings.Split(assigns, ",") {
		field, value, ok := strings.Cut(kv, "=")
		if !ok {
			return "", usage("with F=V[,F=V] EXPR")
		}
		opt, err := Option(field, value)
		if err != nil {
			return "", err
		}
		opts = append(opts, opt)
	}

	var out string
	err := s.thread.WithLocal(nil, func(*precision.Context) error {
		res, err := s.Eval(expr)
		if err != nil {
			return err
		}
		out = res.String()
		return nil
	}, opts...)
	return out, err
}

// Option converts a field name and its textual value into a context option
func Option(field, value string) (precision.Option, error) {
	switch field {
	case "precision", "prec", "real_prec", "imag_prec":
		p, err := parsePrec(value)
		if err != nil {
			return nil, err
		}
		switch field {
		case "real_prec":
			return precision.WithRealPrecision(p), nil
		case "imag_prec":
			return precision.WithImagPrecision(p), nil
		}
		return precision.WithPrecision(p), nil

	case "round", "real_round", "imag_round":
		mode, ok := kernel.ParseRounding(value)
		if !ok {
			return nil, errors.InvalidInput(errors.ModuleCalc, "set", value, "a rounding mode")
		}
		switch field {
		case "real_round":
			return precision.WithRealRound(mode), nil
		case "imag_round":
			return precision.WithImagRound(mode), nil
		}
		return precision.WithRound(mode), nil

	case "emin", "emax":
		e, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.InvalidInput(errors.ModuleCalc, "set", value, "an integer exponent")
		}
		if field == "emin" {
			return precision.WithEmin(e), nil
		}
		return precision.WithEmax(e), nil

	case "subnormalize", "allow_complex", "rational_division":
		on, err := parseSwitch(value)
		if err != nil {
			return nil, err
		}
		switch field {
		case "subnormalize":
			return precision.WithSubnormalize(on), nil
		case "allow_complex":
			return precision.WithAllowComplex(on), nil
		}
		return precision.WithRationalDivision(on), nil

	case "traps":
		var traps precision.Condition
		if value != "none" {
			for _, name := range strings.Split(value, "|") {
				cond, ok := kernel.ParseCondition(name)
				if !ok {
					return nil, errors.InvalidInput(errors.ModuleCalc, "set", name, "a condition name")
				}
				traps |= cond
			}
		}
		return precision.WithTraps(traps), nil
	}
	return nil, errors.InvalidInput(errors.ModuleCalc, "set", field, "a context field")
}

func parsePrec(value string) (int, error) {
	if strings.EqualFold(value, "default") {
		return precision.Default, nil
	}
	p, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.InvalidInput(errors.ModuleCalc, "set", value, "a precision in bits or default")
	}
	return p, nil
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.InvalidInput(errors.ModuleCalc, "set", value, "on or off")
	}
	return b, nil
}

func usage(form string) error {
	return errors.InvalidFormat(errors.ModuleCalc, form, fmt.Sprintf("usage: :%s", form))
}
