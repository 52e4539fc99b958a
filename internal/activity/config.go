package activity

//
// config.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

const (
	DefaultMaxInactiveTime = 30 * time.Minute
	DefaultWarningTime     = 5 * time.Minute
	DefaultCheckInterval   = 60 * time.Second
)

// Config of inactivity monitor.
type Config struct {
	MaxInactiveTime time.Duration `validate:"gt=0"`
	// WarningTime is time before expiry when warning is issued.
	WarningTime   time.Duration `validate:"gte=0,ltfield=MaxInactiveTime"`
	CheckInterval time.Duration `validate:"gt=0"`
}

func DefaultConfig() Config {
	return Config{
		MaxInactiveTime: DefaultMaxInactiveTime,
		WarningTime:     DefaultWarningTime,
		CheckInterval:   DefaultCheckInterval,
	}
}

func (c Config) Validate() error {
	return config.ValidateStruct("activity configuration", c)
}

func (c Config) MarshalZerologObject(event *zerolog.Event) {
	event.Dur("max_inactive", c.MaxInactiveTime).
		Dur("warning", c.WarningTime).
		Dur("check_interval", c.CheckInterval)
}
