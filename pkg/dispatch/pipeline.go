// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"fmt"
)

// Handler runs one step of a command invocation and yields an exit code.
type Handler func(ctx context.Context, inv *Invocation) (int, error)

// Middleware wraps a Handler. It may mutate or inspect the invocation before
// calling next, act on the result afterwards, or short-circuit by returning
// without calling next at all.
type Middleware func(ctx context.Context, inv *Invocation, next Handler) (int, error)

// Pipeline composes middleware around a final handler, onion style: the first
// middleware registered is outermost, running first on the way in and last on
// the way out.
type Pipeline struct {
	mws   []Middleware
	built bool
}

// Use appends middleware. It panics once the pipeline has been built;
// registration is a configuration-time activity.
func (p *Pipeline) Use(mws ...Middleware) {
	if p.built {
		panic("dispatch: middleware registered after pipeline was built")
	}
	p.mws = append(p.mws, mws...)
}

// Build wraps final in the registered middleware, innermost last. After the
// first Build no further middleware may be registered.
func (p *Pipeline) Build(final Handler) Handler {
	p.built = true
	h := final
	for i := len(p.mws) - 1; i >= 0; i-- {
		mw := p.mws[i]
		next := h
		h = func(ctx context.Context, inv *Invocation) (int, error) {
			return mw(ctx, inv, next)
		}
	}
	return h
}

// ValidationError is one validation failure, optionally tied to the option or
// argument that caused it.
type ValidationError struct {
	Message string
	Param   string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationResult collects validation failures in the order they were found.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid reports whether no failures were recorded.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Add records a failure.
func (r *ValidationResult) Add(message, param string) {
	r.Errors = append(r.Errors, ValidationError{Message: message, Param: param})
}

// Validate checks that every required option and argument of the routed
// command was supplied.
func Validate(inv *Invocation) ValidationResult {
	var res ValidationResult
	def := inv.Route.Command
	if def == nil {
		return res
	}
	for _, opt := range def.Options {
		if opt.Required && !inv.Args.HasOption(opt.Name) {
			res.Add(fmt.Sprintf("required option --%s is missing", opt.Name), opt.Name)
		}
	}
	for _, arg := range def.Args {
		if _, ok := inv.Args.Arg(arg.Name); arg.Required && !ok {
			res.Add(fmt.Sprintf("required argument <%s> is missing", arg.Name), arg.Name)
		}
	}
	return res
}

// RequireDefined is the validation middleware: it reports every missing
// required option or argument to the error sink and short-circuits with exit
// code 1, so the command handler never runs on invalid input.
func RequireDefined() Middleware {
	return func(ctx context.Context, inv *Invocation, next Handler) (int, error) {
		res := Validate(inv)
		if !res.Valid() {
			for _, e := range res.Errors {
				inv.Out.WriteError(e.Message)
			}
			return 1, nil
		}
		return next(ctx, inv)
	}
}

// Recover converts a panicking inner handler into an ordinary error result so
// the top-level reporting path applies.
func Recover() Middleware {
	return func(ctx context.Context, inv *Invocation, next Handler) (code int, err error) {
		defer func() {
			if r := recover(); r != nil {
				code = 1
				err = fmt.Errorf("command panicked: %v", r)
			}
		}()
		return next(ctx, inv)
	}
}
