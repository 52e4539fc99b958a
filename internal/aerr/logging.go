package aerr

//
// logging.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"slices"

	"github.com/rs/zerolog"
)

// ErrorMarshalFunc is zerolog.ErrorMarshalFunc that log all details of AppError.
func ErrorMarshalFunc(err error) any {
	if err == nil {
		return nil
	}

	return errorObject{err}
}

// LogLevelForError report validation and data errors as warnings.
func LogLevelForError(err error) zerolog.Level {
	if HasTag(err, ValidationError) || HasTag(err, DataError) {
		return zerolog.WarnLevel
	}

	return zerolog.ErrorLevel
}

type errorObject struct {
	err error
}

func (o errorObject) MarshalZerologObject(event *zerolog.Event) {
	var (
		messages, userMsgs, tags []string
		meta                     map[string]any
	)

	for err := o.err; err != nil; err = errors.Unwrap(err) {
		ae, ok := err.(AppError) //nolint:errorlint
		if !ok {
			messages = append(messages, err.Error())

			continue
		}

		if ae.msg != "" {
			messages = append(messages, ae.msg)
		}

		if ae.userMsg != "" {
			userMsgs = appendUnique(userMsgs, ae.userMsg)
		}

		tags = appendUnique(tags, ae.tags...)

		if len(ae.meta) > 0 {
			if meta == nil {
				meta = make(map[string]any)
			}

			// outer errors win
			for k, v := range ae.meta {
				if _, ok := meta[k]; !ok {
					meta[k] = v
				}
			}
		}
	}

	slices.Reverse(messages)
	event.Strs("errors", messages)

	if len(userMsgs) > 0 {
		slices.Reverse(userMsgs)
		event.Strs("user_msg", userMsgs)
	}

	if len(tags) > 0 {
		event.Strs("tags", tags)
	}

	if meta != nil {
		event.Any("meta", meta)
	}

	if stack := Stack(o.err); stack != nil {
		event.Strs("stack", stack)
	}
}
