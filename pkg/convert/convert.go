// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert turns raw string tokens into the closed family of value
// types the dispatch layer understands: strings, integers, floats, booleans,
// durations, their pointer (nullable) forms, and enumerations.
//
// Numeric parsing is locale independent: strconv always uses '.' as the
// decimal point regardless of the host's regional settings.
//
// Booleans are special. Bool("") reports true because a flag supplied without
// a value means presence, and presence means true; unrecognized boolean text
// reports false rather than failing. Every other conversion failure surfaces
// as *Error.
package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Error reports that a raw token could not be converted to the target type.
type Error struct {
	Value  string
	Target string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot convert %q to %s", e.Value, e.Target)
}

func (e *Error) Unwrap() error { return e.Err }

// Kind identifies a declared value type on an option or argument definition.
// It is the closed set of conversion cases the help generator and the typed
// getters dispatch on.
type Kind int

const (
	String Kind = iota
	Bool
	Int
	Int64
	Uint
	Uint64
	Float
	Duration
)

var kindNames = map[Kind]string{
	String:   "string",
	Bool:     "bool",
	Int:      "int",
	Int64:    "int64",
	Uint:     "uint",
	Uint64:   "uint64",
	Float:    "float",
	Duration: "duration",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "string"
}

// KindOf parses a kind name as it appears in a command manifest.
func KindOf(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(name, n) {
			return k, nil
		}
	}
	return String, fmt.Errorf("unknown value type %q", name)
}

// To converts raw into T. T must belong to the supported family; pointer
// types unwrap to their element type, so a present-but-unparsable value still
// fails while absence stays the caller's concern.
func To[T any](raw string) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *bool:
		*p = FlagBool(raw)
	case *int:
		v, err := strconv.ParseInt(raw, 10, 0)
		if err != nil {
			return out, &Error{Value: raw, Target: "int", Err: err}
		}
		*p = int(v)
	case *int8:
		v, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return out, &Error{Value: raw, Target: "int8", Err: err}
		}
		*p = int8(v)
	case *int16:
		v, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return out, &Error{Value: raw, Target: "int16", Err: err}
		}
		*p = int16(v)
	case *int32:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return out, &Error{Value: raw, Target: "int32", Err: err}
		}
		*p = int32(v)
	case *int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return out, &Error{Value: raw, Target: "int64", Err: err}
		}
		*p = v
	case *uint:
		v, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			return out, &Error{Value: raw, Target: "uint", Err: err}
		}
		*p = uint(v)
	case *uint8:
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return out, &Error{Value: raw, Target: "uint8", Err: err}
		}
		*p = uint8(v)
	case *uint16:
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return out, &Error{Value: raw, Target: "uint16", Err: err}
		}
		*p = uint16(v)
	case *uint32:
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return out, &Error{Value: raw, Target: "uint32", Err: err}
		}
		*p = uint32(v)
	case *uint64:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return out, &Error{Value: raw, Target: "uint64", Err: err}
		}
		*p = v
	case *float32:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return out, &Error{Value: raw, Target: "float32", Err: err}
		}
		*p = float32(v)
	case *float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, &Error{Value: raw, Target: "float64", Err: err}
		}
		*p = v
	case *time.Duration:
		v, err := time.ParseDuration(raw)
		if err != nil {
			return out, &Error{Value: raw, Target: "duration", Err: err}
		}
		*p = v
	case **string:
		return ptrTo[string, T](raw)
	case **bool:
		return ptrTo[bool, T](raw)
	case **int:
		return ptrTo[int, T](raw)
	case **int64:
		return ptrTo[int64, T](raw)
	case **uint:
		return ptrTo[uint, T](raw)
	case **uint64:
		return ptrTo[uint64, T](raw)
	case **float64:
		return ptrTo[float64, T](raw)
	case **time.Duration:
		return ptrTo[time.Duration, T](raw)
	default:
		return out, &Error{Value: raw, Target: fmt.Sprintf("%T", out)}
	}
	return out, nil
}

// ptrTo converts raw to E and returns it as the pointer type T (= *E).
func ptrTo[E, T any](raw string) (T, error) {
	var out T
	v, err := To[E](raw)
	if err != nil {
		return out, err
	}
	out = any(&v).(T)
	return out, nil
}

// FlagBool interprets a raw boolean token. A strict true/false parse wins;
// otherwise "", "1", "yes" and "on" (case-insensitive) mean the flag is set
// and anything else means it is not. It never fails.
func FlagBool(raw string) bool {
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	switch strings.ToLower(raw) {
	case "", "1", "yes", "on":
		return true
	}
	return false
}

// Enum matches raw against members case-insensitively and returns the
// canonical member spelling. An unmatched name is an error.
func Enum(raw string, members []string) (string, error) {
	for _, m := range members {
		if strings.EqualFold(raw, m) {
			return m, nil
		}
	}
	return "", &Error{
		Value:  raw,
		Target: "enum",
		Err:    fmt.Errorf("must be one of: %s", strings.Join(members, ", ")),
	}
}
