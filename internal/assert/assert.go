// Package assert contain minimal test assertions.
package assert

//
// assert.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

// Equal report error when got != want. Types with Equal method (time.Time,
// net.IP) are compared with it; nil-like values are equal to each other.
func Equal[T any](tb testing.TB, got, want T) bool {
	tb.Helper()

	if equal(got, want) {
		return true
	}

	tb.Errorf("got: %#v; want: %#v", got, want)

	return false
}

// True report error when condition is false.
func True(tb testing.TB, cond bool) bool {
	tb.Helper()

	if !cond {
		tb.Error("got: false; want: true")
	}

	return cond
}

// Contains report error when `s` not contains `substr`.
func Contains(tb testing.TB, s, substr string) bool {
	tb.Helper()

	if strings.Contains(s, substr) {
		return true
	}

	tb.Errorf("got: %q; want substring: %q", s, substr)

	return false
}

//-------------------------------------------------------------

func equal[T any](got, want T) bool {
	if nilish(got) && nilish(want) {
		return true
	}

	if eq, ok := any(got).(interface{ Equal(T) bool }); ok {
		return eq.Equal(want)
	}

	if gb, ok := any(got).([]byte); ok {
		return bytes.Equal(gb, any(want).([]byte)) //nolint:forcetypeassert
	}

	return reflect.DeepEqual(got, want)
}

func nilish(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() { //nolint:exhaustive
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer,
		reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// NotEqual report error when got == want.
func NotEqual[T any](tb testing.TB, got, want T) bool {
	tb.Helper()

	if !equal(got, want) {
		return true
	}

	tb.Errorf("got: %#v; want different value", got)

	return false
}
