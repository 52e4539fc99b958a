package config

//
// server.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net"
	"net/http"
	"net/netip"

	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

const (
	ProfileStoreDB     = "db"
	ProfileStoreMemory = "memory"
)

// ListenConf describe one listening http server.
type ListenConf struct {
	Address string `validate:"required"`
	WebRoot string
	TLSKey  string `validate:"required_with=TLSCert"`
	TLSCert string `validate:"required_with=TLSKey"`
	// CookieSecure force Secure flag on cookies when tls is terminated by proxy.
	CookieSecure bool
}

func (c *ListenConf) TLSEnabled() bool {
	return c.TLSKey != ""
}

func (c *ListenConf) UseSecureCookie() bool {
	return c.CookieSecure || c.TLSEnabled()
}

//-------------------------------------------------------------

// ServerConf configure main (web, api) and management servers.
type ServerConf struct {
	MainServer ListenConf
	// MgmtServer is optional; validated only when address is set.
	MgmtServer ListenConf `validate:"-"`

	DebugFlags         DebugFlags
	EnableMetrics      bool
	SetSecurityHeaders bool
	MgmtAccessList     string
	// ProfileStore define where go-chi/session keep browser profiles.
	ProfileStore string `validate:"omitempty,oneof=db memory"`

	mgmtAccess *AccessList
}

func (c *ServerConf) Validate() error {
	if err := ValidateStruct("server configuration", c); err != nil {
		return err
	}

	if c.MgmtServer.Address != "" {
		if err := ValidateStruct("mgmt server configuration", &c.MgmtServer); err != nil {
			return err
		}
	}

	if c.ProfileStore == "" {
		c.ProfileStore = ProfileStoreDB
	}

	if c.MgmtAccessList == "" {
		return nil
	}

	access, err := ParseAccessList(c.MgmtAccessList)
	if err != nil {
		return aerr.Wrapf(err, "parse mgmt access list failed")
	}

	c.mgmtAccess = access

	log.Logger.Debug().Object("mgmt_access", access).Msg("ServerConf: mgmt access list configured")

	return nil
}

// SeparateMgmtEnabled is true when management endpoints listen on own address.
func (c *ServerConf) SeparateMgmtEnabled() bool {
	return c.MgmtServer.Address != "" && c.MgmtServer.Address != c.MainServer.Address
}

func (c *ServerConf) MgmtEnabledOnMainServer() bool {
	return c.MgmtServer.Address != "" && c.MgmtServer.Address == c.MainServer.Address
}

// AuthMgmtRequest decide if client may access management endpoints (first
// value) and see sensitive details there (second value). Loopback is always
// trusted; other clients are checked against access list or, without one,
// allowed from private networks without sensitive data.
func (c *ServerConf) AuthMgmtRequest(req *http.Request) (bool, bool) {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	if host == "localhost" {
		return true, true
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false, false
	}

	addr = addr.Unmap()

	switch {
	case addr.IsLoopback():
		return true, true
	case c.mgmtAccess != nil:
		return c.mgmtAccess.Allowed(addr), true
	default:
		return addr.IsPrivate(), false
	}
}
