package config

//
// session.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	StorageMemory = "memory"
	StorageDB     = "db"
	StorageRedis  = "redis"

	BusLocal = "local"
	BusRedis = "redis"

	VerifierStatic = "static"
	VerifierDB     = "db"
)

// SessionConf configure session lifecycle: where per-profile state is kept, how
// changes are propagated between replicas, how users are verified and inactivity timeouts.
type SessionConf struct {
	Storage string `validate:"oneof=memory db redis"`
	Bus     string `validate:"oneof=local redis"`

	RedisAddr     string `validate:"required_if=Storage redis,required_if=Bus redis"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	Verifier       string `validate:"oneof=static db"`
	StaticEmail    string `validate:"required_if=Verifier static"`
	StaticPassword string `validate:"required_if=Verifier static"`

	TokenSecret string        `validate:"required,min=16"`
	TokenTTL    time.Duration `validate:"gt=0"`

	MaxInactiveTime time.Duration `validate:"gt=0"`
	WarningTime     time.Duration `validate:"gte=0,ltfield=MaxInactiveTime"`
	CheckInterval   time.Duration `validate:"gt=0"`

	// LoginRate is number of allowed login attempts per second for one client address.
	LoginRate  float64 `validate:"gt=0"`
	LoginBurst int     `validate:"gt=0"`
}

func (s *SessionConf) Validate() error {
	return ValidateStruct("session configuration", s)
}

func (s *SessionConf) MarshalZerologObject(event *zerolog.Event) {
	event.Str("storage", s.Storage).
		Str("bus", s.Bus).
		Str("redis_addr", s.RedisAddr).
		Int("redis_db", s.RedisDB).
		Str("verifier", s.Verifier).
		Dur("token_ttl", s.TokenTTL).
		Dur("max_inactive", s.MaxInactiveTime).
		Dur("warning", s.WarningTime).
		Dur("check_interval", s.CheckInterval).
		Float64("login_rate", s.LoginRate).
		Int("login_burst", s.LoginBurst)
}
