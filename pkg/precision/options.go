// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     precision
// Description: Functional options for building and overriding contexts
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package precision

// Option modifies a draft Context. Options run in order; the combined result
// is validated once after all of them have been applied.
type Option func(*Context) error

func WithPrecision(p int) Option {
	return func(c *Context) error {
		c.precision = p
		return nil
	}
}

// WithRealPrecision sets the real-part precision of complex results. Pass
// Default to inherit from the context precision.
func WithRealPrecision(p int) Option {
	return func(c *Context) error {
		c.realPrec = p
		return nil
	}
}

// WithImagPrecision sets the imaginary-part precision. Default inherits from
// the real-part precision.
func WithImagPrecision(p int) Option {
	return func(c *Context) error {
		c.imagPrec = p
		return nil
	}
}

func WithRound(r Rounding) Option {
	return func(c *Context) error {
		c.round = r
		return nil
	}
}

func WithRealRound(r Rounding) Option {
	return func(c *Context) error {
		c.realRound = r
		return nil
	}
}

func WithImagRound(r Rounding) Option {
	return func(c *Context) error {
		c.imagRound = r
		return nil
	}
}

func WithEmax(e int) Option {
	return func(c *Context) error {
		c.emax = e
		return nil
	}
}

func WithEmin(e int) Option {
	return func(c *Context) error {
		c.emin = e
		return nil
	}
}

func WithSubnormalize(v bool) Option {
	return func(c *Context) error {
		c.subnormalize = v
		return nil
	}
}

func WithAllowComplex(v bool) Option {
	return func(c *Context) error {
		c.allowComplex = v
		return nil
	}
}

func WithRationalDivision(v bool) Option {
	return func(c *Context) error {
		c.rationalDivision = v
		return nil
	}
}

// WithTraps replaces the trap mask
func WithTraps(traps Condition) Option {
	return func(c *Context) error {
		c.traps = traps
		return nil
	}
}

// WithTrap enables or disables the traps in cond
func WithTrap(cond Condition, on bool) Option {
	return func(c *Context) error {
		if on {
			c.traps |= cond
		} else {
			c.traps &^= cond
		}
		return nil
	}
}

// WithFlags replaces the sticky flags
func WithFlags(flags Condition) Option {
	return func(c *Context) error {
		c.flags = flags & stickyConditions
		return nil
	}
}

// WithContext copies the configuration, flags and traps of src as they are
// when the option is created. src is not locked while the option runs, so
// c.Update(WithContext(c)) is safe.
func WithContext(src *Context) Option {
	snap := src.Copy()
	return func(c *Context) error {
		c.commit(snap)
		return nil
	}
}
