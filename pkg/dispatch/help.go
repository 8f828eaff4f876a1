// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veercli/veer/pkg/convert"
	"github.com/veercli/veer/pkg/termio"
)

const (
	helpNameWidth   = 24
	helpPlaceholder = "(no description)"
	helpOptionLine  = "-h, --help"
	helpOptionDesc  = "Show command help"
)

// GlobalHelp renders the whole command tree: root commands first, children
// indented beneath their parents, recursively.
func GlobalHelp(reg *Registry) string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, def := range reg.Roots() {
		writeTree(&b, reg, def, 1)
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-*s %s\n", helpNameWidth, helpOptionLine, helpOptionDesc))
	return b.String()
}

func writeTree(b *strings.Builder, reg *Registry, def *Definition, depth int) {
	desc := def.Description
	if desc == "" {
		desc = helpPlaceholder
	}
	name := strings.Repeat("  ", depth) + def.Name
	b.WriteString(fmt.Sprintf("%-*s %s\n", helpNameWidth+2, name, desc))
	for _, child := range reg.Subcommands(def.Path()) {
		writeTree(b, reg, child, depth+1)
	}
}

// CommandHelp renders help for one command: a usage line, the description, a
// Commands section when the command has children, and Arguments/Options
// sections when it is a leaf.
func CommandHelp(reg *Registry, def *Definition) string {
	var b strings.Builder
	path := strings.ReplaceAll(def.Path(), ".", " ")
	children := reg.Subcommands(def.Path())

	if len(children) > 0 {
		b.WriteString(fmt.Sprintf("Usage: %s <command> [options]\n", path))
		if def.Description != "" {
			b.WriteString("\n" + def.Description + "\n")
		}
		b.WriteString("\nCommands:\n")
		for _, child := range children {
			desc := child.Description
			if desc == "" {
				desc = helpPlaceholder
			}
			b.WriteString(fmt.Sprintf("  %-*s %s\n", helpNameWidth, child.Name, desc))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %-*s %s\n", helpNameWidth, helpOptionLine, helpOptionDesc))
		return b.String()
	}

	usage := "Usage: " + path
	for _, arg := range orderedArgs(def) {
		if arg.Required {
			usage += fmt.Sprintf(" <%s>", arg.Name)
		} else {
			usage += fmt.Sprintf(" [%s]", arg.Name)
		}
	}
	usage += " [options]"
	b.WriteString(usage + "\n")
	if def.Description != "" {
		b.WriteString("\n" + def.Description + "\n")
	}

	if len(def.Args) > 0 {
		b.WriteString("\nArguments:\n")
		for _, arg := range orderedArgs(def) {
			label := arg.Name
			if arg.Type != convert.String {
				label += fmt.Sprintf(" [%s]", arg.Type)
			}
			desc := arg.Description
			if arg.Required {
				desc += " (required)"
			}
			if arg.Default != "" {
				desc += fmt.Sprintf(" (default: %s)", arg.Default)
			}
			b.WriteString(fmt.Sprintf("  %-*s %s\n", helpNameWidth, label, strings.TrimSpace(desc)))
		}
	}

	b.WriteString("\nOptions:\n")
	for i := range def.Options {
		opt := &def.Options[i]
		var label string
		if opt.Short != "" {
			label = fmt.Sprintf("-%s, --%s", opt.Short, opt.Name)
		} else {
			label = fmt.Sprintf("    --%s", opt.Name)
		}
		if opt.CarriesValue() {
			label += fmt.Sprintf(" [%s]", opt.Type)
		}
		desc := opt.Description
		if opt.Required {
			desc += " (required)"
		}
		if opt.Default != "" {
			desc += fmt.Sprintf(" (default: %s)", opt.Default)
		}
		b.WriteString(fmt.Sprintf("  %-*s %s\n", helpNameWidth, label, strings.TrimSpace(desc)))
	}
	b.WriteString(fmt.Sprintf("  %-*s %s\n", helpNameWidth, helpOptionLine, helpOptionDesc))
	return b.String()
}

func orderedArgs(def *Definition) []Argument {
	out := make([]Argument, len(def.Args))
	copy(out, def.Args)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// WriteGlobalHelp renders the global help to the sink, one line at a time.
func WriteGlobalHelp(reg *Registry, out termio.Sink) {
	writeLines(out, GlobalHelp(reg))
}

// WriteCommandHelp renders one command's help to the sink.
func WriteCommandHelp(reg *Registry, def *Definition, out termio.Sink) {
	writeLines(out, CommandHelp(reg, def))
}

func writeLines(out termio.Sink, s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		out.WriteLine(line)
	}
}
