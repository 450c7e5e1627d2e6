package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_AppliesLevel(t *testing.T) {
	testCases := []struct {
		name    string
		devMode bool
		level   zerolog.Level
	}{
		{name: "dev console", devMode: true, level: zerolog.DebugLevel},
		{name: "json warn", devMode: false, level: zerolog.WarnLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := New(tc.devMode, tc.level)
			assert.Equal(t, tc.level, l.GetLevel())
		})
	}
}
