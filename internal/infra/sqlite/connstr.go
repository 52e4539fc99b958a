package sqlite

//
// connstr.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net/url"

	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

const memoryConnstr = ":memory:?_fk=ON"

// connDefaults are go-sqlite3 dsn options added when user not set any of aliases.
//
//nolint:gochecknoglobals
var connDefaults = []struct {
	aliases []string
	value   string
}{
	{[]string{"_fk", "_foreign_keys"}, "ON"},
	{[]string{"_journal_mode", "_journal"}, "WAL"},
	{[]string{"_synchronous", "_sync"}, "NORMAL"},
	{[]string{"_busy_timeout", "_timeout"}, "1000"},
}

func prepareSqliteConnstr(connstr string) (string, error) {
	switch connstr {
	case "":
		return "", aerr.ErrInvalidConf.WithUserMsg("database connection string can't be empty")
	case ":memory:":
		return memoryConnstr, nil
	}

	dsn, err := url.Parse(connstr)
	if err != nil {
		return "", aerr.ApplyFor(aerr.ErrInvalidConf, err, "", "can't parse database connection string")
	}

	if dsn.Path == "" {
		return "", aerr.ErrInvalidConf.WithUserMsg("database connection string has no file path")
	}

	opts := dsn.Query()

	for _, def := range connDefaults {
		if !hasAnyKey(opts, def.aliases) {
			opts.Set(def.aliases[0], def.value)
		}
	}

	dsn.RawQuery = opts.Encode()

	return dsn.String(), nil
}

func hasAnyKey(values url.Values, keys []string) bool {
	for _, k := range keys {
		if values.Has(k) {
			return true
		}
	}

	return false
}
