package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireTime_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "миллисекунды присутствуют всегда",
			in:   time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
			want: `"2026-10-01T19:00:00.000Z"`,
		},
		{
			name: "наносекунды усечены до миллисекунд",
			in:   time.Date(2026, 10, 1, 19, 0, 0, 123456789, time.UTC),
			want: `"2026-10-01T19:00:00.123Z"`,
		},
		{
			name: "время переводится в UTC",
			in:   time.Date(2026, 10, 1, 22, 0, 0, 0, time.FixedZone("MSK", 3*60*60)),
			want: `"2026-10-01T19:00:00.000Z"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(WireTime(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestWireTime_UnmarshalJSON(t *testing.T) {
	var wt WireTime
	err := json.Unmarshal([]byte(`"2026-10-01T19:00:00.000Z"`), &wt)
	require.NoError(t, err)
	assert.True(t, wt.Time().Equal(time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC)))

	err = json.Unmarshal([]byte(`"not a date"`), &wt)
	assert.Error(t, err)
}

func TestWireTime_RoundTripInStruct(t *testing.T) {
	event := Event{
		ID:        1,
		Title:     "Джазовый вечер",
		EventDate: WireTime(time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC)),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event_date":"2026-10-01T19:00:00.000Z"`)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.EventDate.Time().Equal(event.EventDate.Time()))
}
