// Package aerr provide application errors with user messages, tags and metadata.
package aerr

//
// apperror.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// AppError is immutable; every With* call return modified copy.
type AppError struct {
	cause   error
	msg     string
	userMsg string
	tags    []string
	meta    map[string]any
	stack   []string
}

// New create error without stack; used for sentinel errors.
func New(msg string, args ...any) AppError {
	return AppError{msg: sprintf(msg, args)}
}

func Wrap(err error) AppError {
	return AppError{cause: err, stack: callers()}
}

func Wrapf(err error, msg string, args ...any) AppError {
	return AppError{cause: err, msg: sprintf(msg, args), stack: callers()}
}

// ApplyFor bind `err` as cause of copy of `base` and record current location.
// Optional `msg` replace message and user message when not empty.
func ApplyFor(base AppError, err error, msg ...string) AppError {
	if err == nil {
		panic("aerr: ApplyFor called with nil error")
	}

	res := base.copy()
	res.cause = err
	res.stack = callers()

	if len(msg) > 0 && msg[0] != "" {
		res.msg = msg[0]
	}

	if len(msg) > 1 && msg[1] != "" {
		res.userMsg = msg[1]
	}

	return res
}

func (a AppError) WithMsg(msg string, args ...any) AppError {
	res := a.copy()
	res.msg = sprintf(msg, args)

	return res
}

func (a AppError) WithUserMsg(msg string, args ...any) AppError {
	res := a.copy()
	res.userMsg = sprintf(msg, args)

	return res
}

func (a AppError) WithTag(tag string) AppError {
	if slices.Contains(a.tags, tag) {
		return a
	}

	res := a.copy()
	res.tags = append(res.tags, tag)

	return res
}

// WithMeta add key-value pairs to error metadata. Non-string keys are formatted with %v.
func (a AppError) WithMeta(keyval ...any) AppError {
	if len(keyval)%2 == 1 {
		panic("aerr: WithMeta require even number of arguments")
	}

	res := a.copy()
	if res.meta == nil {
		res.meta = make(map[string]any, len(keyval)/2) //nolint:mnd
	}

	for idx := 0; idx < len(keyval); idx += 2 {
		key, ok := keyval[idx].(string)
		if !ok {
			key = fmt.Sprint(keyval[idx])
		}

		res.meta[key] = keyval[idx+1]
	}

	return res
}

func (a AppError) Error() string {
	switch {
	case a.cause == nil:
		return a.msg
	case a.msg == "":
		return a.cause.Error()
	default:
		return a.msg + ": " + a.cause.Error()
	}
}

func (a AppError) Unwrap() error {
	return a.cause
}

// String return message for user when defined.
func (a AppError) String() string {
	if a.userMsg != "" {
		return a.userMsg
	}

	if a.msg != "" || a.cause == nil {
		return a.msg
	}

	return a.cause.Error()
}

// Is match errors with the same content; location is ignored so errors
// derived from sentinel by WithMsg/WithTag... still match when unchanged.
func (a AppError) Is(target error) bool {
	other, ok := target.(AppError)
	if !ok {
		return false
	}

	return a.msg == other.msg &&
		a.userMsg == other.userMsg &&
		slices.Equal(a.tags, other.tags) &&
		maps.Equal(a.meta, other.meta) &&
		sameCause(a.cause, other.cause)
}

func (a AppError) Format(state fmt.State, verb rune) {
	if verb == 'v' && state.Flag('+') {
		io.WriteString(state, strings.Join(describeChain(a), "\n")) //nolint:errcheck

		return
	}

	io.WriteString(state, a.Error()) //nolint:errcheck
}

func (a AppError) copy() AppError {
	a.tags = slices.Clone(a.tags)
	a.meta = maps.Clone(a.meta)

	return a
}

func sameCause(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ae, ok := a.(AppError); ok { //nolint:errorlint
		return ae.Is(b)
	}

	return reflect.TypeOf(a).Comparable() && a == b
}

func sprintf(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}

	return fmt.Sprintf(msg, args...)
}
