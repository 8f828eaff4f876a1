// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"strings"
	"testing"

	"github.com/veercli/veer/pkg/convert"
)

func helpFixture(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	reg.MustRegister(
		&Definition{Name: "git", Description: "Version control"},
		&Definition{Name: "remote", Parent: "git", Description: "Manage remotes"},
		&Definition{Name: "add", Parent: "git.remote", Description: "Add a remote",
			Args: []Argument{
				{Name: "name", Position: 0, Required: true, Description: "Remote name"},
				{Name: "url", Position: 1, Description: "Remote URL", Default: "origin-url"},
			},
			Options: []Option{
				{Name: "fetch", Short: "f", Type: convert.Bool, Description: "Fetch after adding"},
				{Name: "depth", Type: convert.Int, Description: "Shallow clone depth", Default: "0"},
			},
		},
		&Definition{Name: "status"},
	)
	return reg
}

func TestGlobalHelp(t *testing.T) {
	reg := helpFixture(t)
	help := GlobalHelp(reg)

	for _, want := range []string{
		"Commands:",
		"git",
		"Version control",
		"remote",
		"add",
		"(no description)",
		"-h, --help",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("GlobalHelp missing %q:\n%s", want, help)
		}
	}

	// Children are indented beneath their parents.
	gitLine := lineContaining(t, help, "git")
	remoteLine := lineContaining(t, help, "remote")
	addLine := lineContaining(t, help, "add")
	if indent(remoteLine) <= indent(gitLine) {
		t.Errorf("remote not indented under git:\n%s", help)
	}
	if indent(addLine) <= indent(remoteLine) {
		t.Errorf("add not indented under remote:\n%s", help)
	}
}

func TestCommandHelpParent(t *testing.T) {
	reg := helpFixture(t)
	def, _ := reg.Lookup("remote")
	help := CommandHelp(reg, def)

	if !strings.HasPrefix(help, "Usage: git remote <command> [options]") {
		t.Errorf("parent usage line wrong:\n%s", help)
	}
	for _, want := range []string{"Manage remotes", "Commands:", "add", "-h, --help"} {
		if !strings.Contains(help, want) {
			t.Errorf("CommandHelp missing %q:\n%s", want, help)
		}
	}
	if strings.Contains(help, "Options:") {
		t.Errorf("parent help should not list options:\n%s", help)
	}
}

func TestCommandHelpLeaf(t *testing.T) {
	reg := helpFixture(t)
	def, _ := reg.Lookup("add")
	help := CommandHelp(reg, def)

	if !strings.HasPrefix(help, "Usage: git remote add <name> [url] [options]") {
		t.Errorf("leaf usage line wrong:\n%s", help)
	}
	for _, want := range []string{
		"Arguments:",
		"Remote name (required)",
		"(default: origin-url)",
		"Options:",
		"-f, --fetch",
		"    --depth [int]",
		"(default: 0)",
		"-h, --help",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("CommandHelp missing %q:\n%s", want, help)
		}
	}
	if strings.Contains(help, "--fetch [") {
		t.Errorf("flag-only option should carry no value tag:\n%s", help)
	}
}

func lineContaining(t *testing.T, s, substr string) string {
	t.Helper()
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line contains %q:\n%s", substr, s)
	return ""
}

func indent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
