package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "COUNTDOWN", EventCountdown.String())
	assert.Equal(t, "QUIT", EventQuit.String())
	assert.Equal(t, "EventType(42)", EventType(42).String())
}

func TestParseEventType(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    EventType
		wantErr bool
	}{
		{name: "upper", in: "START", want: EventStart},
		{name: "lower with spaces", in: "  stop ", want: EventStop},
		{name: "restart", in: "Restart", want: EventRestart},
		{name: "unknown", in: "JUMP", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseEventType(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidEventType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEventTypes_ClosedSet(t *testing.T) {
	types := EventTypes()
	require.Len(t, types, 7)
	for _, et := range types {
		assert.True(t, et.Valid())
		parsed, err := ParseEventType(et.String())
		require.NoError(t, err)
		assert.Equal(t, et, parsed)
	}
	assert.False(t, EventType(-1).Valid())
	assert.False(t, EventType(len(types)).Valid())
}
