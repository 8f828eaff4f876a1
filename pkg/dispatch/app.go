// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"fmt"

	"github.com/veercli/veer/pkg/argv"
	"github.com/veercli/veer/pkg/termio"
)

// App ties routing, scanning, help and the pipeline together for one process.
// Configure it fully before the first Run; the registry and pipeline are
// sealed once routing begins.
type App struct {
	// Name is the program name, used in error hints.
	Name string
	// Version is the host application version, checked against manifest
	// requirements.
	Version  string
	Registry *Registry
	Style    argv.Style
	// Factory instantiates command handles. Defaults to DefaultFactory.
	Factory Factory
	// Out is the output sink. Defaults to the console.
	Out termio.Sink

	pipeline Pipeline
}

// NewApp returns an App with the validation middleware installed.
func NewApp(name string, reg *Registry) *App {
	a := &App{Name: name, Registry: reg}
	a.pipeline.Use(RequireDefined())
	return a
}

// Use registers middleware. The first middleware registered is outermost.
// Use panics once the pipeline has been built by the first Run.
func (a *App) Use(mws ...Middleware) {
	a.pipeline.Use(mws...)
}

// Run resolves and executes one argument vector and returns the process exit
// code: 0 for success or rendered help, 1 for a routing miss, validation
// failure or any error, and otherwise whatever the handler returned. Errors
// escaping routing, parsing or the pipeline are caught here, reported to the
// error sink, and never propagate.
func (a *App) Run(ctx context.Context, args []string) (code int) {
	out := a.sink()
	defer func() {
		if r := recover(); r != nil {
			out.WriteError(fmt.Sprintf("%s: %v", a.Name, r))
			code = 1
		}
	}()

	router := Router{Registry: a.Registry, Style: a.Style}
	route := router.Route(args)

	if route.Command == nil {
		if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
			WriteGlobalHelp(a.Registry, out)
			return 0
		}
		out.WriteError("no command specified")
		out.WriteError(fmt.Sprintf("run '%s --help' for usage", a.Name))
		return 1
	}

	parser := argv.Parser{Style: a.Style}
	parsed := parser.Parse(route.Rest)
	inv := NewInvocation(route, parsed, out)

	if (parsed.HasOption("help") || parsed.HasOption("h")) && !route.Command.DisableHelp {
		WriteCommandHelp(a.Registry, route.Command, out)
		return 0
	}

	runner, err := a.factory().New(route.Command.Handle)
	if err != nil {
		out.WriteError(fmt.Sprintf("%s: %v", a.Name, err))
		return 1
	}

	handler := a.pipeline.Build(func(ctx context.Context, inv *Invocation) (int, error) {
		return runner.Run(ctx, inv)
	})
	code, err = handler(ctx, inv)
	if err != nil {
		out.WriteError(fmt.Sprintf("%s: %v", a.Name, err))
		if code == 0 {
			code = 1
		}
	}
	return code
}

func (a *App) factory() Factory {
	if a.Factory != nil {
		return a.Factory
	}
	return DefaultFactory()
}

func (a *App) sink() termio.Sink {
	if a.Out != nil {
		return a.Out
	}
	return termio.NewConsole()
}
