package config

//
// session_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"testing"
	"time"

	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
)

func validSessionConf() SessionConf {
	return SessionConf{
		Storage:         StorageMemory,
		Bus:             BusLocal,
		Verifier:        VerifierStatic,
		StaticEmail:     "admin@tienda.com",
		StaticPassword:  "admin123",
		TokenSecret:     "0123456789abcdef0123",
		TokenTTL:        24 * time.Hour,
		MaxInactiveTime: 30 * time.Minute,
		WarningTime:     5 * time.Minute,
		CheckInterval:   time.Minute,
		LoginRate:       1,
		LoginBurst:      5,
	}
}

func TestSessionConfValidate(t *testing.T) {
	conf := validSessionConf()
	assert.NoErr(t, conf.Validate())

	conf = validSessionConf()
	conf.Storage = "file"
	err := conf.Validate()
	assert.Err(t, err)
	assert.True(t, aerr.HasTag(err, aerr.ValidationError))
	assert.Contains(t, aerr.GetUserMessage(err), "Storage")

	// redis requires address
	conf = validSessionConf()
	conf.Bus = BusRedis
	assert.Err(t, conf.Validate())

	conf.RedisAddr = "localhost:6379"
	assert.NoErr(t, conf.Validate())

	// warning must be shorter than max inactive time
	conf = validSessionConf()
	conf.WarningTime = conf.MaxInactiveTime
	assert.Err(t, conf.Validate())

	conf = validSessionConf()
	conf.TokenSecret = "short"
	assert.Err(t, conf.Validate())

	// db verifier do not need static credentials
	conf = validSessionConf()
	conf.Verifier = VerifierDB
	conf.StaticEmail = ""
	conf.StaticPassword = ""
	assert.NoErr(t, conf.Validate())
}
