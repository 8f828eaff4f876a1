// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"sort"
	"strings"

	"github.com/veercli/veer/pkg/argv"
	"github.com/veercli/veer/pkg/convert"
	"github.com/veercli/veer/pkg/termio"
)

// Invocation carries everything one command run needs: the resolved route,
// the scanned arguments, and the output sink. One Invocation is built per
// process run and discarded afterwards.
type Invocation struct {
	Route Route
	Args  *argv.Parsed
	Out   termio.Sink
}

// NewInvocation binds a scanned argument vector to the routed command. Two
// remaps happen here: every supplied short option is copied onto its long
// name so both spellings resolve identically, and positional tokens are bound
// to declared argument names in ascending position order.
func NewInvocation(route Route, parsed *argv.Parsed, out termio.Sink) *Invocation {
	inv := &Invocation{Route: route, Args: parsed, Out: out}
	def := route.Command
	if def == nil {
		return inv
	}

	for i := range def.Options {
		opt := &def.Options[i]
		if opt.Short != "" && parsed.HasOption(opt.Short) {
			parsed.CopyOption(opt.Short, opt.Name)
		}
	}

	ordered := make([]*Argument, 0, len(def.Args))
	for i := range def.Args {
		ordered = append(ordered, &def.Args[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	pos := parsed.Positionals()
	for i, arg := range ordered {
		if i >= len(pos) {
			break
		}
		parsed.BindArg(arg.Name, pos[i])
	}

	return inv
}

// Command returns the routed definition, which is nil on a routing miss.
func (inv *Invocation) Command() *Definition {
	return inv.Route.Command
}

func (inv *Invocation) optionDef(name string) *Option {
	def := inv.Route.Command
	if def == nil {
		return nil
	}
	for i := range def.Options {
		if strings.EqualFold(def.Options[i].Name, name) {
			return &def.Options[i]
		}
	}
	return nil
}

func (inv *Invocation) argDef(name string) *Argument {
	def := inv.Route.Command
	if def == nil {
		return nil
	}
	for i := range def.Args {
		if strings.EqualFold(def.Args[i].Name, name) {
			return &def.Args[i]
		}
	}
	return nil
}

func isBool[T any]() bool {
	var zero T
	_, ok := any(zero).(bool)
	return ok
}

// OptionValue returns the option's value as T, composing four fallback
// layers: an explicitly supplied value, presence-means-true for booleans, the
// declared default, and finally T's zero value. Conversion failures degrade
// to the next layer instead of surfacing.
func OptionValue[T any](inv *Invocation, name string) T {
	if v, ok := TryOption[T](inv, name); ok {
		return v
	}
	var zero T
	opt := inv.optionDef(name)
	if opt == nil || opt.Default == "" {
		return zero
	}
	v, err := convert.To[T](opt.Default)
	if err != nil {
		return zero
	}
	return v
}

// TryOption is the strict accessor: it reports true only when a supplied
// value converted cleanly (after enum canonicalization) or when a boolean
// option was present as a bare flag. Absent options and conversion failures
// report false.
func TryOption[T any](inv *Invocation, name string) (T, bool) {
	var zero T
	if !inv.Args.HasOption(name) {
		return zero, false
	}
	raw, hasRaw := inv.Args.Option(name)
	if !hasRaw {
		if isBool[T]() {
			return any(true).(T), true
		}
		return zero, false
	}
	if opt := inv.optionDef(name); opt != nil && len(opt.Enum) > 0 {
		canonical, err := convert.Enum(raw, opt.Enum)
		if err != nil {
			return zero, false
		}
		raw = canonical
	}
	v, err := convert.To[T](raw)
	if err != nil {
		return zero, false
	}
	return v, true
}

// OptionValueAll converts every supplied value for a repeatable option.
func OptionValueAll[T any](inv *Invocation, name string) ([]T, error) {
	raws := inv.Args.OptionValues(name)
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := convert.To[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ArgValue returns a named positional argument as T, with the same fallback
// layering as OptionValue.
func ArgValue[T any](inv *Invocation, name string) T {
	if v, ok := TryArg[T](inv, name); ok {
		return v
	}
	var zero T
	arg := inv.argDef(name)
	if arg == nil || arg.Default == "" {
		return zero
	}
	v, err := convert.To[T](arg.Default)
	if err != nil {
		return zero
	}
	return v
}

// TryArg is the strict accessor for positional arguments.
func TryArg[T any](inv *Invocation, name string) (T, bool) {
	var zero T
	raw, ok := inv.Args.Arg(name)
	if !ok {
		return zero, false
	}
	v, err := convert.To[T](raw)
	if err != nil {
		return zero, false
	}
	return v, true
}
