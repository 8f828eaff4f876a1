// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argv tokenizes a flat argument vector into options and positional
// arguments.
//
// The scanner walks the vector left to right and never fails: tokens it does
// not recognize as options degrade to positional arguments. Three option
// styles are understood, controlled by Style:
//
//   - Long options: --name, --name=value. A long option never consumes the
//     following token as its value.
//   - Short options: -n, -n value. The next token is consumed as the value
//     only if it does not itself look like an option. With
//     Style.CombineShortFlags set, -abc expands to the flags a, b and c.
//   - Windows-style options (opt-in): /name, /name value, with the same
//     value-consumption rule as short options.
//
// A bare "--" switches the scanner into positional-only mode; every later
// token, including further "--" tokens, is positional.
//
// The result is an ordered option multimap (repeated options keep every
// value) plus the positional list. Binding positionals to declared argument
// names is the router's job, not the scanner's; Parsed carries a named-value
// map for that later step.
package argv
