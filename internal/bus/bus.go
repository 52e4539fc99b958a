// Package bus propagate changes of profile storage between tabs.
//
// Every message carry origin of writer; subscribers skip messages they
// published themselves.
package bus

//
// bus.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"

	"github.com/rs/zerolog"
)

// Message describe one change of storage key.
type Message struct {
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Removed bool   `json:"removed,omitempty"`
	Origin  string `json:"origin"`
}

func (m *Message) MarshalZerologObject(event *zerolog.Event) {
	event.Str("key", m.Key).
		Bool("removed", m.Removed).
		Str("origin", m.Origin)
}

// Handler process message. Handler must not block.
type Handler func(ctx context.Context, msg Message)

type Subscription interface {
	// Unsubscribe stop delivering messages. Can be called many times.
	Unsubscribe()
}

type Bus interface {
	Publish(ctx context.Context, channel string, msg Message) error
	Subscribe(ctx context.Context, channel string, handler Handler) (Subscription, error)
}
