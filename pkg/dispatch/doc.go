// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch resolves an argument vector against a registered command
// tree and runs the matched command through a middleware pipeline.
//
// A host registers Definitions (commands with options, positional arguments
// and parent links) into a Registry during configuration. The Registry is
// sealed by the first Route call and is read-only from then on. Routing walks
// the vector greedily, consuming the deepest matching command path; the
// remaining tokens are handed to the argv scanner, and the scanned result is
// bound into an Invocation (short names remapped onto long names, positionals
// bound to declared argument names).
//
// Execution is an onion of Middleware around the command's Runner: the first
// middleware registered is outermost. Any middleware may short-circuit by
// returning an exit code without calling next. Typed access to option and
// argument values goes through OptionValue, TryOption, ArgValue and TryArg,
// which fall back to declared defaults and zero values instead of failing.
//
// The App type ties the pieces together for a process: route, scan, render
// help when asked, instantiate the command through a Factory, run the
// pipeline, and map every failure to a non-zero exit code.
package dispatch
