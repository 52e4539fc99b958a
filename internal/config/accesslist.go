package config

//
// accesslist.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net/netip"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

// AccessList is list of networks; single addresses are kept as full-length prefixes.
type AccessList struct {
	prefixes []netip.Prefix
}

// ParseAccessList parse comma separated list of addresses and CIDR networks.
func ParseAccessList(list string) (*AccessList, error) {
	access := &AccessList{}

	for entry := range strings.SplitSeq(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		prefix, err := parseAccessEntry(entry)
		if err != nil {
			return nil, aerr.ApplyFor(aerr.ErrValidation, err, "",
				"invalid entry "+entry+" in access list")
		}

		access.prefixes = append(access.prefixes, prefix)
	}

	if len(access.prefixes) == 0 {
		return nil, aerr.ErrValidation.WithUserMsg("access list is empty")
	}

	return access, nil
}

func parseAccessEntry(entry string) (netip.Prefix, error) {
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, err //nolint:wrapcheck
		}

		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err //nolint:wrapcheck
	}

	addr = addr.Unmap()

	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func (a *AccessList) Allowed(addr netip.Addr) bool {
	addr = addr.Unmap()

	for _, p := range a.prefixes {
		if p.Contains(addr) {
			return true
		}
	}

	return false
}

func (a *AccessList) MarshalZerologObject(event *zerolog.Event) {
	arr := zerolog.Arr()
	for _, p := range a.prefixes {
		arr.Str(p.String())
	}

	event.Array("allowed", arr)
}
