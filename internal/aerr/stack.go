package aerr

//
// stack.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"path"
	"runtime"
	"strconv"
	"strings"
)

const stackDepth = 10

// callers return locations of caller of aerr function and its parents,
// formatted as `file:line:func`.
func callers() []string {
	var pcs [32]uintptr

	// skip runtime.Callers, callers and aerr constructor
	cnt := runtime.Callers(3, pcs[:]) //nolint:mnd
	if cnt == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:cnt])
	res := make([]string, 0, stackDepth)

	for len(res) < stackDepth {
		frame, more := frames.Next()

		if !skipFrame(frame.Function) {
			res = append(res, frame.File+":"+strconv.Itoa(frame.Line)+":"+shortFuncName(frame.Function))
		}

		if !more {
			break
		}
	}

	return res
}

func skipFrame(fun string) bool {
	return fun == "runtime.goexit" || strings.HasPrefix(fun, "net/http.")
}

// shortFuncName strip package path: gitlab.com/x/pkg.(*T).M -> (*T).M.
func shortFuncName(fun string) string {
	fun = path.Base(fun)
	if idx := strings.IndexByte(fun, '.'); idx >= 0 {
		return fun[idx+1:]
	}

	return fun
}
