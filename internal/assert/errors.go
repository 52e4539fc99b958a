package assert

//
// errors.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func NoErr(tb testing.TB, err error) bool {
	tb.Helper()

	if err == nil {
		return true
	}

	tb.Errorf("unexpected error: %+v", err)

	return false
}

func Err(tb testing.TB, err error) bool {
	tb.Helper()

	if err != nil {
		return true
	}

	tb.Error("got: <nil>; want: error")

	return false
}

// ErrSpec check that err match `want`: substring of message (string),
// errors.Is target (error) or errors.As target type (reflect.Type).
func ErrSpec(tb testing.TB, err error, want any) bool {
	tb.Helper()

	if err == nil {
		tb.Errorf("got: <nil>; want: %v", want)

		return false
	}

	var ok bool

	switch w := want.(type) {
	case string:
		ok = strings.Contains(err.Error(), w)
	case error:
		ok = errors.Is(err, w)
	case reflect.Type:
		ok = errors.As(err, reflect.New(w).Interface())
	default:
		tb.Fatalf("ErrSpec: unsupported want type %T", want)
	}

	if !ok {
		tb.Errorf("got: %T(%v); want: %v", err, err, want)
	}

	return ok
}
