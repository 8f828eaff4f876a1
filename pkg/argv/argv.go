// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"sort"
	"strings"
)

// Style controls which option syntaxes the scanner recognizes.
type Style struct {
	// CombineShortFlags expands -abc into the independent flags a, b and c.
	// When false the whole suffix after the dash is one option name.
	CombineShortFlags bool
	// WindowsSlash recognizes /name and /name value tokens as options.
	WindowsSlash bool
}

// Parser scans an argument vector according to its Style.
// The zero value is a plain POSIX/GNU parser.
type Parser struct {
	Style Style
}

// Parsed is the result of scanning one argument vector: an ordered option
// multimap, the positional tokens, and a name/value map populated later when
// the router binds positionals to declared argument names.
type Parsed struct {
	opts  map[string][]string
	seqs  map[string][]int
	seq   int
	order []string
	pos   []string
	named map[string]string
}

func newParsed() *Parsed {
	return &Parsed{
		opts:  make(map[string][]string),
		seqs:  make(map[string][]int),
		named: make(map[string]string),
	}
}

// Parse scans args left to right. It never fails; unrecognized tokens become
// positional arguments.
func (p *Parser) Parse(args []string) *Parsed {
	res := newParsed()
	positionalOnly := false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if positionalOnly {
			res.pos = append(res.pos, arg)
			continue
		}

		if arg == "--" {
			positionalOnly = true
			continue
		}

		// Long option: --name or --name=value. Never consumes the next token.
		if len(arg) > 2 && strings.HasPrefix(arg, "--") {
			name := arg[2:]
			if idx := strings.Index(name, "="); idx != -1 {
				res.addValue(name[:idx], name[idx+1:])
			} else {
				res.addFlag(name)
			}
			continue
		}

		// Short option(s): -n, -n value, -abc.
		if len(arg) > 1 && arg[0] == '-' && arg[1] != '-' {
			suffix := arg[1:]
			if len(suffix) > 1 && p.Style.CombineShortFlags {
				for _, c := range suffix {
					res.addFlag(string(c))
				}
				continue
			}
			if i+1 < len(args) && !p.optionLike(args[i+1]) {
				res.addValue(suffix, args[i+1])
				i++
			} else {
				res.addFlag(suffix)
			}
			continue
		}

		// Windows-style option: /name, /name value.
		if p.Style.WindowsSlash && len(arg) > 1 && arg[0] == '/' {
			name := arg[1:]
			if i+1 < len(args) && !p.optionLike(args[i+1]) {
				res.addValue(name, args[i+1])
				i++
			} else {
				res.addFlag(name)
			}
			continue
		}

		res.pos = append(res.pos, arg)
	}

	return res
}

// optionLike reports whether a token would be treated as an option, used for
// the value-consumption lookahead.
func (p *Parser) optionLike(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return true
	}
	return p.Style.WindowsSlash && strings.HasPrefix(arg, "/")
}

func (r *Parsed) addFlag(name string) {
	if _, ok := r.opts[name]; !ok {
		r.opts[name] = nil
		r.order = append(r.order, name)
	}
}

func (r *Parsed) addValue(name, value string) {
	if _, ok := r.opts[name]; !ok {
		r.order = append(r.order, name)
	}
	r.opts[name] = append(r.opts[name], value)
	r.seqs[name] = append(r.seqs[name], r.seq)
	r.seq++
}

// HasOption reports whether the option was supplied, with or without a value.
func (r *Parsed) HasOption(name string) bool {
	_, ok := r.opts[name]
	return ok
}

// Option returns the first value supplied for name. The second result is
// false when the option is absent or was supplied as a bare flag.
func (r *Parsed) Option(name string) (string, bool) {
	vals, ok := r.opts[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// OptionValues returns every value supplied for name, in order.
func (r *Parsed) OptionValues(name string) []string {
	return r.opts[name]
}

// Options returns the supplied option names in first-seen order.
func (r *Parsed) Options() []string {
	return r.order
}

// Positionals returns the positional tokens in order.
func (r *Parsed) Positionals() []string {
	return r.pos
}

// CopyOption copies the values (or bare presence) of from onto to, so both
// spellings resolve identically. Used by the router's short-name remap. When
// both spellings carried values, the merged list keeps the order the values
// were supplied in, not one spelling's values before the other's.
func (r *Parsed) CopyOption(from, to string) {
	fromVals, ok := r.opts[from]
	if !ok {
		return
	}
	if len(fromVals) == 0 {
		r.addFlag(to)
		return
	}
	if _, ok := r.opts[to]; !ok {
		r.order = append(r.order, to)
	}

	type supplied struct {
		value string
		seq   int
	}
	merged := make([]supplied, 0, len(r.opts[to])+len(fromVals))
	for i, v := range r.opts[to] {
		merged = append(merged, supplied{v, r.seqs[to][i]})
	}
	for i, v := range fromVals {
		merged = append(merged, supplied{v, r.seqs[from][i]})
	}
	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].seq < merged[b].seq
	})

	vals := make([]string, len(merged))
	seqs := make([]int, len(merged))
	for i, m := range merged {
		vals[i] = m.value
		seqs[i] = m.seq
	}
	r.opts[to] = vals
	r.seqs[to] = seqs
}

// BindArg records the value of a positional argument under its declared name.
func (r *Parsed) BindArg(name, value string) {
	r.named[name] = value
}

// Arg returns the value bound to a declared argument name.
func (r *Parsed) Arg(name string) (string, bool) {
	v, ok := r.named[name]
	return v, ok
}
