package aerr

//
// chain.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"fmt"
	"slices"
)

// appErrors return AppErrors from error chain, innermost first.
func appErrors(err error) []AppError {
	var res []AppError

	for ; err != nil; err = errors.Unwrap(err) {
		if ae, ok := err.(AppError); ok { //nolint:errorlint
			res = append(res, ae)
		}
	}

	slices.Reverse(res)

	return res
}

func HasTag(err error, tag string) bool {
	for _, ae := range appErrors(err) {
		if slices.Contains(ae.tags, tag) {
			return true
		}
	}

	return false
}

// Tags return unique tags from whole error chain.
func Tags(err error) []string {
	var res []string

	for _, ae := range appErrors(err) {
		res = appendUnique(res, ae.tags...)
	}

	return res
}

// GetUserMessage return the innermost user message in chain or empty string.
func GetUserMessage(err error) string {
	for _, ae := range appErrors(err) {
		if ae.userMsg != "" {
			return ae.userMsg
		}
	}

	return ""
}

func GetUserMessageOr(err error, defaultmsg string) string {
	if msg := GetUserMessage(err); msg != "" {
		return msg
	}

	return defaultmsg
}

// Stack return location recorded by the innermost error that has one.
func Stack(err error) []string {
	for _, ae := range appErrors(err) {
		if len(ae.stack) > 0 {
			return ae.stack
		}
	}

	return nil
}

// describeChain format each error in chain in one line, innermost first.
func describeChain(err error) []string {
	var lines []string

	for ; err != nil; err = errors.Unwrap(err) {
		ae, ok := err.(AppError) //nolint:errorlint
		if !ok {
			lines = append(lines, err.Error())

			continue
		}

		line := ae.msg
		if line == "" && ae.cause == nil {
			line = "<empty>"
		}

		if len(ae.stack) > 0 {
			line += " at " + ae.stack[0]
		}

		if len(ae.tags) > 0 || len(ae.meta) > 0 {
			line += fmt.Sprintf(" tags=%v meta=%v", ae.tags, ae.meta)
		}

		lines = append(lines, line)
	}

	slices.Reverse(lines)

	return lines
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}

	return list
}
