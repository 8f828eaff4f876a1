// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command greet is a small demo of the dispatch core: a code-registered
// command tree, a manifest-registered command, logging middleware, and a
// factory resolving manifest handles.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	_ "embed"

	"github.com/sirupsen/logrus"

	"github.com/veercli/veer/pkg/convert"
	"github.com/veercli/veer/pkg/dispatch"
)

//go:embed manifest.toml
var manifest []byte

const version = "1.0.0"

func main() {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if os.Getenv("GREET_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}

	reg := dispatch.NewRegistry()
	reg.MustRegister(
		&dispatch.Definition{
			Name:        "hello",
			Description: "Print a greeting",
			Aliases:     []string{"hi"},
			Options: []dispatch.Option{
				{Name: "greeting", Short: "g", Description: "Greeting word", Default: "Hello"},
				{Name: "shout", Short: "s", Type: convert.Bool, Description: "Uppercase the output"},
				{Name: "repeat", Short: "r", Type: convert.Int, Description: "Times to repeat", Default: "1"},
			},
			Args: []dispatch.Argument{
				{Name: "name", Position: 0, Required: true, Description: "Who to greet"},
			},
			Handle: dispatch.RunnerFunc(runHello),
		},
	)
	if err := reg.RegisterManifestTOML(manifest, version); err != nil {
		log.WithError(err).Fatal("loading manifest")
	}

	app := dispatch.NewApp("greet", reg)
	app.Version = version
	app.Factory = manifestFactory()
	app.Use(
		dispatch.Recover(),
		func(ctx context.Context, inv *dispatch.Invocation, next dispatch.Handler) (int, error) {
			start := time.Now()
			code, err := next(ctx, inv)
			log.WithFields(logrus.Fields{
				"command":  strings.Join(inv.Route.Path, " "),
				"code":     code,
				"duration": time.Since(start),
			}).Debug("command finished")
			return code, err
		},
	)

	os.Exit(app.Run(context.Background(), os.Args[1:]))
}

func runHello(ctx context.Context, inv *dispatch.Invocation) (int, error) {
	greeting := dispatch.OptionValue[string](inv, "greeting")
	name := dispatch.ArgValue[string](inv, "name")
	line := fmt.Sprintf("%s, %s!", greeting, name)
	if dispatch.OptionValue[bool](inv, "shout") {
		line = strings.ToUpper(line)
	}
	for i := 0; i < dispatch.OptionValue[int](inv, "repeat"); i++ {
		inv.Out.WriteLine(line)
	}
	return 0, nil
}

// manifestFactory resolves manifest command handles (the command names) and
// falls back to the default factory for code-registered commands.
func manifestFactory() dispatch.Factory {
	fallback := dispatch.DefaultFactory()
	return dispatch.FactoryFunc(func(handle any) (dispatch.Runner, error) {
		name, ok := handle.(string)
		if !ok {
			return fallback.New(handle)
		}
		switch name {
		case "version":
			return dispatch.RunnerFunc(func(ctx context.Context, inv *dispatch.Invocation) (int, error) {
				inv.Out.WriteLine("greet " + version)
				return 0, nil
			}), nil
		case "wave":
			return dispatch.RunnerFunc(func(ctx context.Context, inv *dispatch.Invocation) (int, error) {
				n := dispatch.OptionValue[int](inv, "count")
				inv.Out.WriteLine(strings.Repeat("o/ ", n))
				return 0, nil
			}), nil
		default:
			return nil, fmt.Errorf("unknown manifest command %q", name)
		}
	})
}
