package aerr

//
// apperror_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
)

func TestAppendUnique(t *testing.T) {
	var list []string

	list = appendUnique(list, "a")
	assert.Equal(t, list, []string{"a"})

	list = appendUnique(list, "b", "a", "c")
	assert.Equal(t, list, []string{"a", "b", "c"})
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")

	err := Wrap(cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, errors.Unwrap(err), cause)
	assert.True(t, len(err.stack) > 0)
	assert.True(t, strings.Contains(err.stack[0], "TestWrap"))
	assert.Equal(t, err.Error(), "disk full")
	assert.Equal(t, err.String(), "disk full")

	err = Wrapf(cause, "save %s failed", "profile")
	assert.Equal(t, err.Error(), "save profile failed: disk full")
}

func TestMessages(t *testing.T) {
	cause := errors.New("disk full")

	base := Wrap(cause)
	withMsg := base.WithMsg("write log %d", 1)
	assert.Equal(t, withMsg.stack, base.stack)
	assert.Equal(t, withMsg.msg, "write log 1")
	assert.Equal(t, base.msg, "")
	assert.Equal(t, GetUserMessage(withMsg), "")
	assert.Equal(t, GetUserMessageOr(withMsg, "--"), "--")

	withUser := withMsg.WithUserMsg("try again in %d minutes", 5)
	assert.True(t, errors.Is(withUser, cause))
	assert.Equal(t, withUser.String(), "try again in 5 minutes")
	assert.Equal(t, withMsg.userMsg, "")
	assert.Equal(t, GetUserMessageOr(withUser, "--"), "try again in 5 minutes")

	// innermost user message win
	outer := Wrapf(withUser, "handler failed").WithUserMsg("generic")
	assert.Equal(t, GetUserMessage(outer), "try again in 5 minutes")
}

func TestMeta(t *testing.T) {
	err := Wrap(errors.New("x")).WithMeta("profile", "p1", "tabs", 2)
	assert.Equal(t, len(err.meta), 2)
	assert.Equal(t, err.meta["tabs"], any(2))

	err2 := err.WithMeta("tabs", 3, 7, "seven")
	assert.Equal(t, err2.meta["tabs"], any(3))
	assert.Equal(t, err2.meta["7"], any("seven"))
	// source not changed
	assert.Equal(t, err.meta["tabs"], any(2))
}

func TestTags(t *testing.T) {
	err := New("bad input").WithTag("a").WithTag("b").WithTag("a")
	assert.Equal(t, Tags(err), []string{"a", "b"})

	wrapped := Wrapf(err, "outer").WithTag("c")
	assert.Equal(t, Tags(wrapped), []string{"a", "b", "c"})
	assert.True(t, HasTag(wrapped, "a"))
	assert.True(t, !HasTag(wrapped, "d"))
}

func TestIsSentinel(t *testing.T) {
	sentinel := New("missing profile").WithTag(ValidationError)

	assert.True(t, errors.Is(sentinel, sentinel))
	assert.True(t, errors.Is(Wrapf(sentinel, "open tab failed"), sentinel))
	assert.True(t, errors.Is(fmt.Errorf("ctx: %w", sentinel), sentinel))
	assert.True(t, !errors.Is(sentinel.WithTag("other"), sentinel))
	assert.True(t, !errors.Is(New("other"), sentinel))
}

func TestApplyFor(t *testing.T) {
	cause := errors.New("connection refused")

	err := ApplyFor(ErrStorage, cause, "set key failed")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, HasTag(err, StorageError))
	assert.True(t, HasTag(err, InternalError))
	assert.Equal(t, err.msg, "set key failed")
	assert.Equal(t, GetUserMessage(err), "session storage unavailable")
	assert.Equal(t, Stack(err), err.stack)

	err = ApplyFor(ErrValidation, cause, "", "invalid value")
	assert.Equal(t, err.msg, "validation error")
	assert.Equal(t, GetUserMessage(err), "invalid value")
}

func TestFormat(t *testing.T) {
	err := Wrapf(errors.New("eof"), "read").WithTag("t1")

	assert.Equal(t, fmt.Sprintf("%v", err), "read: eof")

	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	assert.Equal(t, len(lines), 2)
	assert.Equal(t, lines[0], "eof")
	assert.True(t, strings.HasPrefix(lines[1], "read at "))
}

func TestLogLevelForError(t *testing.T) {
	assert.Equal(t, LogLevelForError(ErrValidation), zerolog.WarnLevel)
	assert.Equal(t, LogLevelForError(ErrStorage), zerolog.ErrorLevel)
	assert.Equal(t, LogLevelForError(errors.New("plain")), zerolog.ErrorLevel)
}
