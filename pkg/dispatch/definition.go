// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"fmt"

	"github.com/veercli/veer/pkg/convert"
)

// Definition describes one command: its identity in the tree, its declared
// options and positional arguments, and the opaque handle the host's Factory
// resolves to executable behavior. Definitions are created during
// configuration and never mutated once registered.
type Definition struct {
	// Name is the command's primary name, unique across the registry
	// (case-insensitive).
	Name        string
	Description string
	// Aliases are alternative names; each must be globally unique too.
	Aliases []string
	// Parent is the dotted path of the parent command ("git.remote" for a
	// grandchild of git). Empty for root commands. Not validated eagerly;
	// resolved at routing time.
	Parent string
	// Handle is the opaque command handle passed to the Factory.
	Handle any
	// Options are the command's named options, in declaration order.
	Options []Option
	// Args are the positional arguments; Position defines binding order.
	Args []Argument
	// DisableHelp suppresses automatic help rendering so the command can
	// handle the help flag itself.
	DisableHelp bool
}

// Path returns the command's full dotted path.
func (d *Definition) Path() string {
	if d.Parent == "" {
		return d.Name
	}
	return d.Parent + "." + d.Name
}

// Option declares a named option on a command.
type Option struct {
	// Name is the long spelling, without dashes.
	Name string
	// Short is an optional single-character spelling.
	Short       string
	Description string
	Type        convert.Kind
	Required    bool
	// Default is the declared default, kept as its raw string form and
	// converted on demand.
	Default string
	// TakesValue forces value consumption for boolean options, which are
	// flag-only by default. Non-boolean options always carry a value.
	TakesValue bool
	// Repeatable marks an option that may be supplied more than once.
	Repeatable bool
	// Enum restricts string values to these members (matched
	// case-insensitively).
	Enum []string
}

// CarriesValue reports whether the option carries a value in help output and
// value lookups. Boolean options are flags unless TakesValue is set.
func (o *Option) CarriesValue() bool {
	return o.Type != convert.Bool || o.TakesValue
}

// Argument declares one positional argument on a command.
type Argument struct {
	Name        string
	Description string
	Type        convert.Kind
	Required    bool
	Default     string
	// Position is the zero-based binding index.
	Position int
}

// Runner is the single capability a command implementation provides.
type Runner interface {
	Run(ctx context.Context, inv *Invocation) (int, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, inv *Invocation) (int, error)

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, inv *Invocation) (int, error) {
	return f(ctx, inv)
}

// Factory resolves a Definition's opaque handle to an executable instance.
// Hosts typically back this with a dependency-injection container.
type Factory interface {
	New(handle any) (Runner, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(handle any) (Runner, error)

// New implements Factory.
func (f FactoryFunc) New(handle any) (Runner, error) {
	return f(handle)
}

// DefaultFactory resolves handles that are already executable: a Runner, a
// RunnerFunc-shaped function, or a zero-argument constructor returning a
// Runner. Anything else needs a host-supplied Factory.
func DefaultFactory() Factory {
	return FactoryFunc(func(handle any) (Runner, error) {
		switch h := handle.(type) {
		case Runner:
			return h, nil
		case func(ctx context.Context, inv *Invocation) (int, error):
			return RunnerFunc(h), nil
		case func() Runner:
			return h(), nil
		case nil:
			return nil, fmt.Errorf("command has no handle")
		default:
			return nil, fmt.Errorf("cannot instantiate command handle of type %T", handle)
		}
	})
}
