package config

//
// debugflags_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"testing"

	"gitlab.com/kabes/go-shopadmin/internal/assert"
)

func TestParseDebugFlags(t *testing.T) {
	tests := []struct {
		input    string
		enabled  []DebugFlags
		disabled []DebugFlags
		str      string
	}{
		{"", nil, []DebugFlags{DebugMsgBody, DebugDo, DebugRouter}, ""},
		{"xxx", nil, []DebugFlags{DebugMsgBody, DebugDo, DebugRouter}, ""},
		{"do, GO", []DebugFlags{DebugDo, DebugGo}, []DebugFlags{DebugMsgBody, DebugRouter}, "do,go"},
		{"router,logbody,xxx", []DebugFlags{DebugRouter, DebugMsgBody}, []DebugFlags{DebugDo}, "logbody,router"},
		{
			"all,do",
			[]DebugFlags{DebugMsgBody, DebugDo, DebugGo, DebugRouter, DebugDBQueryMetrics, DebugTrace},
			nil,
			"logbody,do,go,router,querymetrics,flightrecorder,trace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			df := ParseDebugFlags(tt.input)

			for _, e := range tt.enabled {
				assert.True(t, df.HasFlag(e))
			}

			for _, e := range tt.disabled {
				assert.True(t, !df.HasFlag(e))
			}

			assert.Equal(t, df.String(), tt.str)
		})
	}
}

func TestDebugNoneNeverMatch(t *testing.T) {
	assert.True(t, !DebugAll.HasFlag(DebugNone))
	assert.True(t, DebugAll.HasAny(DebugTrace|DebugGo))
	assert.True(t, !DebugNone.HasAny(DebugAll))
}
