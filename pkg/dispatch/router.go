// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"strings"

	"github.com/veercli/veer/pkg/argv"
)

// Route is the result of resolving an argument vector against the registry.
type Route struct {
	// Command is the deepest matched definition, or nil when no command
	// matched at all.
	Command *Definition
	// Path holds the canonical command names consumed, root first.
	Path []string
	// Rest holds the unconsumed tail of the argument vector.
	Rest []string
}

// Router resolves argument vectors against a registry. Style must match the
// scanner's so option-like tokens stop the walk consistently.
type Router struct {
	Registry *Registry
	Style    argv.Style
}

// Route walks args greedily from the root: each token is matched by name or
// alias against commands whose parent equals the path consumed so far, in
// registration order. The walk stops at the first option-like token, the
// first unmatched token, or the end of the vector. Command is nil only when
// nothing matched; Rest is then the whole input.
func (ro *Router) Route(args []string) Route {
	ro.Registry.seal()

	var path []string
	var matched *Definition
	i := 0
	for i < len(args) {
		tok := args[i]
		if ro.optionLike(tok) {
			break
		}
		def := ro.match(tok, strings.Join(path, "."))
		if def == nil {
			break
		}
		matched = def
		path = append(path, def.Name)
		i++
	}

	if matched == nil {
		return Route{Rest: args}
	}
	return Route{Command: matched, Path: path, Rest: args[i:]}
}

// match scans definitions in registration order for a name or alias equal to
// tok under the given parent path. Registration order makes the tie-break
// deterministic; the registry's uniqueness invariants mean ties should not
// exist in practice.
func (ro *Router) match(tok, parent string) *Definition {
	for _, def := range ro.Registry.defs {
		if !strings.EqualFold(def.Parent, parent) {
			continue
		}
		if strings.EqualFold(def.Name, tok) {
			return def
		}
		for _, alias := range def.Aliases {
			if strings.EqualFold(alias, tok) {
				return def
			}
		}
	}
	return nil
}

func (ro *Router) optionLike(tok string) bool {
	if strings.HasPrefix(tok, "-") {
		return true
	}
	return ro.Style.WindowsSlash && strings.HasPrefix(tok, "/")
}
