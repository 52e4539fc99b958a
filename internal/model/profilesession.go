package model

//
// profilesession.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"time"

	"github.com/rs/zerolog"
)

// ProfileSession is browser profile identified by `profile` cookie. All tabs
// of one browser share the profile.
type ProfileSession struct {
	ID        string
	Data      map[any]any
	CreatedAt time.Time
	LastSeen  time.Time
}

func NewProfileSession(id string) *ProfileSession {
	now := time.Now().UTC()

	return &ProfileSession{
		ID:        id,
		Data:      make(map[any]any),
		CreatedAt: now,
		LastSeen:  now,
	}
}

// Idle return true when profile was not seen for longer than maxIdle.
func (p *ProfileSession) Idle(now time.Time, maxIdle time.Duration) bool {
	return now.Sub(p.LastSeen) > maxIdle
}

func (p *ProfileSession) MarshalZerologObject(event *zerolog.Event) {
	event.Str("id", p.ID).
		Int("values", len(p.Data)).
		Time("created_at", p.CreatedAt).
		Time("last_seen", p.LastSeen)
}
