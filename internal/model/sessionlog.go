package model

//
// sessionlog.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

// SessionAction is kind of session lifecycle event.
type SessionAction string

const (
	ActionLogin            SessionAction = "login"
	ActionLogout           SessionAction = "logout"
	ActionSessionExpired   SessionAction = "session_expired"
	ActionActivityDetected SessionAction = "activity_detected"
)

func (a SessionAction) Valid() bool {
	switch a {
	case ActionLogin, ActionLogout, ActionSessionExpired, ActionActivityDetected:
		return true
	}

	return false
}

// SessionLog is one entry in session audit trail.
type SessionLog struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Action    SessionAction `json:"action"`
	Timestamp time.Time     `json:"timestamp"`
	UserAgent string        `json:"userAgent"`
	IP        string        `json:"ip,omitempty"`
}

func (s *SessionLog) MarshalZerologObject(event *zerolog.Event) {
	event.Str("id", s.ID).
		Str("user_id", s.UserID).
		Str("action", string(s.Action)).
		Time("timestamp", s.Timestamp).
		Str("user_agent", s.UserAgent).
		Str("ip", s.IP)
}

// EncodeSessionLogs serialize list of logs (newest first) to persisted form.
func EncodeSessionLogs(logs []SessionLog) (string, error) {
	if logs == nil {
		logs = []SessionLog{}
	}

	data, err := json.Marshal(logs)
	if err != nil {
		return "", aerr.ApplyFor(ErrInvalidLogs, err, "encode session logs failed")
	}

	return string(data), nil
}

// DecodeSessionLogs parse persisted list of logs.
func DecodeSessionLogs(data string) ([]SessionLog, error) {
	var logs []SessionLog

	if err := json.Unmarshal([]byte(data), &logs); err != nil {
		return nil, aerr.ApplyFor(ErrInvalidLogs, err, "decode session logs failed")
	}

	return logs, nil
}
