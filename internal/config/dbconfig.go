package config

//
// dbconfig.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

// DBConfig point to sqlite database with users, browser profiles and (optional) profile values.
type DBConfig struct {
	Driver  string `validate:"eq=sqlite3"`
	Connstr string `validate:"required"`
}

func NewDBConfig(driver, connstr string) DBConfig {
	switch driver {
	case "", "sqlite":
		driver = "sqlite3"
	}

	return DBConfig{Driver: driver, Connstr: connstr}
}

func (d *DBConfig) Validate() error {
	return ValidateStruct("database configuration", d)
}
