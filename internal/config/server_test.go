package config

//
// server_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net/http/httptest"
	"net/netip"
	"testing"

	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
)

func TestParseAccessList(t *testing.T) {
	access, err := ParseAccessList("10.1.0.0/16, 192.168.1.10,,::ffff:172.16.0.1")
	assert.NoErr(t, err)

	assert.True(t, access.Allowed(netip.MustParseAddr("10.1.200.3")))
	assert.True(t, access.Allowed(netip.MustParseAddr("192.168.1.10")))
	assert.True(t, access.Allowed(netip.MustParseAddr("172.16.0.1")))
	assert.True(t, !access.Allowed(netip.MustParseAddr("192.168.1.11")))
	assert.True(t, !access.Allowed(netip.MustParseAddr("10.2.0.1")))

	_, err = ParseAccessList("10.1.0.0/33")
	assert.Err(t, err)
	assert.True(t, aerr.HasTag(err, aerr.ValidationError))

	_, err = ParseAccessList(" , ")
	assert.Err(t, err)
}

func TestServerConfValidate(t *testing.T) {
	conf := ServerConf{MainServer: ListenConf{Address: ":8080"}}
	assert.NoErr(t, conf.Validate())
	assert.Equal(t, conf.ProfileStore, ProfileStoreDB)

	conf = ServerConf{MainServer: ListenConf{Address: ":8080", TLSKey: "key.pem"}}
	assert.Err(t, conf.Validate())

	conf = ServerConf{}
	assert.Err(t, conf.Validate())

	conf = ServerConf{MainServer: ListenConf{Address: ":8080"}, ProfileStore: "file"}
	assert.Err(t, conf.Validate())

	conf = ServerConf{
		MainServer: ListenConf{Address: ":8080"},
		MgmtServer: ListenConf{Address: ":9090", TLSCert: "cert.pem"},
	}
	assert.Err(t, conf.Validate())
}

func TestAuthMgmtRequest(t *testing.T) {
	check := func(conf *ServerConf, remote string) (bool, bool) {
		req := httptest.NewRequest("GET", "/health", nil)
		req.RemoteAddr = remote

		return conf.AuthMgmtRequest(req)
	}

	conf := &ServerConf{MainServer: ListenConf{Address: ":8080"}}
	assert.NoErr(t, conf.Validate())

	access, sensitive := check(conf, "127.0.0.1:5555")
	assert.True(t, access && sensitive)

	access, sensitive = check(conf, "192.168.1.5:5555")
	assert.True(t, access && !sensitive)

	access, _ = check(conf, "8.8.8.8:5555")
	assert.True(t, !access)

	access, _ = check(conf, "garbage")
	assert.True(t, !access)

	conf.MgmtAccessList = "8.8.8.0/24"
	assert.NoErr(t, conf.Validate())

	access, sensitive = check(conf, "8.8.8.8:5555")
	assert.True(t, access && sensitive)

	access, _ = check(conf, "192.168.1.5:5555")
	assert.True(t, !access)
}
