// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"strings"
)

// DuplicateNameError reports a command name or alias that collides with an
// already registered one.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("command name or alias already registered: %s", e.Name)
}

// Registry is the catalogue of command definitions, keyed by name and alias.
// It is populated during configuration and sealed by the first Route call;
// from then on it is read-only and safe for concurrent lookups.
type Registry struct {
	defs   []*Definition
	byName map[string]*Definition
	sealed bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Definition)}
}

// Register adds def to the catalogue. The primary name and every alias are
// checked for uniqueness, against the catalogue and against each other,
// before anything is inserted: a collision leaves the registry untouched.
// Options sharing a short name on the same command are a configuration error.
// Register panics if called after routing has begun.
func (r *Registry) Register(def *Definition) error {
	if r.sealed {
		panic("dispatch: Register called after routing began")
	}
	if def.Name == "" {
		return fmt.Errorf("command name must not be empty")
	}

	keys := make([]string, 0, 1+len(def.Aliases))
	keys = append(keys, strings.ToLower(def.Name))
	for _, alias := range def.Aliases {
		if alias == "" {
			continue
		}
		keys = append(keys, strings.ToLower(alias))
	}
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			return &DuplicateNameError{Name: key}
		}
		seen[key] = true
		if _, exists := r.byName[key]; exists {
			return &DuplicateNameError{Name: key}
		}
	}

	shorts := make(map[string]string, len(def.Options))
	for _, opt := range def.Options {
		if opt.Short == "" {
			continue
		}
		if prev, ok := shorts[opt.Short]; ok {
			return fmt.Errorf("command %q: options %q and %q share short name %q",
				def.Name, prev, opt.Name, opt.Short)
		}
		shorts[opt.Short] = opt.Name
	}

	for _, key := range keys {
		r.byName[key] = def
	}
	r.defs = append(r.defs, def)
	return nil
}

// MustRegister registers each definition and panics on error. Registration
// happens at configuration time, so a collision is a programming error.
func (r *Registry) MustRegister(defs ...*Definition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(fmt.Sprintf("dispatch: %v", err))
		}
	}
}

// Lookup resolves a command by exact name or alias, case-insensitive.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	def, ok := r.byName[strings.ToLower(name)]
	return def, ok
}

// Get is Lookup returning an error for unknown names.
func (r *Registry) Get(name string) (*Definition, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", name)
	}
	return def, nil
}

// Roots returns the commands with no parent, in registration order.
func (r *Registry) Roots() []*Definition {
	var out []*Definition
	for _, def := range r.defs {
		if def.Parent == "" {
			out = append(out, def)
		}
	}
	return out
}

// Subcommands returns the commands whose parent path equals parent
// (case-insensitive), in registration order. Each definition appears once
// regardless of how many aliases reach it.
func (r *Registry) Subcommands(parent string) []*Definition {
	var out []*Definition
	for _, def := range r.defs {
		if def.Parent != "" && strings.EqualFold(def.Parent, parent) {
			out = append(out, def)
		}
	}
	return out
}

// Definitions returns every registered definition in registration order.
func (r *Registry) Definitions() []*Definition {
	return r.defs
}

// seal marks the registry read-only. Called by the router on first use.
func (r *Registry) seal() {
	r.sealed = true
}
