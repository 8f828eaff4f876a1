// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/veercli/veer/pkg/convert"
	"github.com/veercli/veer/pkg/termio"
)

func appFixture(out *termio.Buffer) (*App, *[]string) {
	var ran []string
	record := func(name string) RunnerFunc {
		return func(ctx context.Context, inv *Invocation) (int, error) {
			ran = append(ran, name)
			return 0, nil
		}
	}

	reg := NewRegistry()
	reg.MustRegister(
		&Definition{Name: "greet", Handle: record("greet"),
			Options: []Option{
				{Name: "greeting", Short: "g", Default: "Hello"},
			},
			Args: []Argument{
				{Name: "name", Position: 0, Required: true},
			},
		},
		&Definition{Name: "fail", Handle: RunnerFunc(func(ctx context.Context, inv *Invocation) (int, error) {
			return 0, errors.New("it broke")
		})},
		&Definition{Name: "exit7", Handle: RunnerFunc(func(ctx context.Context, inv *Invocation) (int, error) {
			return 7, errors.New("partial failure")
		})},
	)

	app := NewApp("veer", reg)
	app.Out = out
	return app, &ran
}

func TestAppRun(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns zero", func(t *testing.T) {
		out := &termio.Buffer{}
		app, ran := appFixture(out)
		if code := app.Run(ctx, []string{"greet", "world"}); code != 0 {
			t.Fatalf("Run = %d, want 0; errors: %v", code, out.Errors)
		}
		if len(*ran) != 1 || (*ran)[0] != "greet" {
			t.Errorf("ran = %v, want [greet]", *ran)
		}
	})

	t.Run("global help returns zero", func(t *testing.T) {
		out := &termio.Buffer{}
		app, ran := appFixture(out)
		if code := app.Run(ctx, []string{"--help"}); code != 0 {
			t.Fatalf("Run = %d, want 0", code)
		}
		if len(*ran) != 0 {
			t.Errorf("ran = %v, want no handlers", *ran)
		}
		if len(out.Lines) == 0 || !strings.Contains(out.Lines[0], "Commands:") {
			t.Errorf("help output missing, got %v", out.Lines)
		}
	})

	t.Run("command help returns zero without running handler", func(t *testing.T) {
		out := &termio.Buffer{}
		app, ran := appFixture(out)
		if code := app.Run(ctx, []string{"greet", "--help"}); code != 0 {
			t.Fatalf("Run = %d, want 0", code)
		}
		if len(*ran) != 0 {
			t.Errorf("ran = %v, want no handlers", *ran)
		}
		if len(out.Lines) == 0 || !strings.Contains(out.Lines[0], "Usage: greet") {
			t.Errorf("command help missing, got %v", out.Lines)
		}
	})

	t.Run("routing miss returns one", func(t *testing.T) {
		out := &termio.Buffer{}
		app, _ := appFixture(out)
		if code := app.Run(ctx, []string{"unknown"}); code != 1 {
			t.Fatalf("Run = %d, want 1", code)
		}
		if len(out.Errors) == 0 || !strings.Contains(out.Errors[0], "no command specified") {
			t.Errorf("miss diagnostics missing, got %v", out.Errors)
		}
	})

	t.Run("empty vector returns one", func(t *testing.T) {
		out := &termio.Buffer{}
		app, _ := appFixture(out)
		if code := app.Run(ctx, nil); code != 1 {
			t.Fatalf("Run = %d, want 1", code)
		}
	})

	t.Run("validation failure returns one and skips handler", func(t *testing.T) {
		out := &termio.Buffer{}
		app, ran := appFixture(out)
		if code := app.Run(ctx, []string{"greet"}); code != 1 {
			t.Fatalf("Run = %d, want 1", code)
		}
		if len(*ran) != 0 {
			t.Errorf("ran = %v, want no handlers", *ran)
		}
		if len(out.Errors) == 0 || !strings.Contains(out.Errors[0], "required argument <name> is missing") {
			t.Errorf("validation diagnostics missing, got %v", out.Errors)
		}
	})

	t.Run("handler error returns one", func(t *testing.T) {
		out := &termio.Buffer{}
		app, _ := appFixture(out)
		if code := app.Run(ctx, []string{"fail"}); code != 1 {
			t.Fatalf("Run = %d, want 1", code)
		}
		if len(out.Errors) == 0 || !strings.Contains(out.Errors[0], "it broke") {
			t.Errorf("error diagnostics missing, got %v", out.Errors)
		}
	})

	t.Run("handler exit code is preserved", func(t *testing.T) {
		out := &termio.Buffer{}
		app, _ := appFixture(out)
		if code := app.Run(ctx, []string{"exit7"}); code != 7 {
			t.Fatalf("Run = %d, want 7", code)
		}
	})
}

func TestAppMiddlewareOrder(t *testing.T) {
	out := &termio.Buffer{}
	app, _ := appFixture(out)

	var trace []string
	app.Use(func(ctx context.Context, inv *Invocation, next Handler) (int, error) {
		trace = append(trace, "audit in")
		code, err := next(ctx, inv)
		trace = append(trace, "audit out")
		return code, err
	})

	if code := app.Run(context.Background(), []string{"greet", "world"}); code != 0 {
		t.Fatalf("Run = %d, want 0; errors: %v", code, out.Errors)
	}
	if len(trace) != 2 || trace[0] != "audit in" || trace[1] != "audit out" {
		t.Errorf("trace = %v, want [audit in, audit out]", trace)
	}
}

func TestAppDisableHelp(t *testing.T) {
	reg := NewRegistry()
	var sawHelp bool
	reg.MustRegister(&Definition{
		Name:        "raw",
		DisableHelp: true,
		Options:     []Option{{Name: "help", Type: convert.Bool}},
		Handle: RunnerFunc(func(ctx context.Context, inv *Invocation) (int, error) {
			sawHelp = OptionValue[bool](inv, "help")
			return 0, nil
		}),
	})

	out := &termio.Buffer{}
	app := NewApp("veer", reg)
	app.Out = out

	if code := app.Run(context.Background(), []string{"raw", "--help"}); code != 0 {
		t.Fatalf("Run = %d, want 0; errors: %v", code, out.Errors)
	}
	if !sawHelp {
		t.Error("handler did not observe the help flag")
	}
	if len(out.Lines) != 0 {
		t.Errorf("automatic help rendered despite DisableHelp: %v", out.Lines)
	}
}

func TestAppRecoversPanic(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(&Definition{
		Name: "boom",
		Handle: RunnerFunc(func(ctx context.Context, inv *Invocation) (int, error) {
			panic("kaboom")
		}),
	})

	out := &termio.Buffer{}
	app := NewApp("veer", reg)
	app.Out = out

	if code := app.Run(context.Background(), []string{"boom"}); code != 1 {
		t.Fatalf("Run = %d, want 1", code)
	}
	if len(out.Errors) == 0 || !strings.Contains(out.Errors[0], "kaboom") {
		t.Errorf("panic diagnostics missing, got %v", out.Errors)
	}
}
