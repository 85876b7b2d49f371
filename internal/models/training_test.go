package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurringKeyFor(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// 15:00 UTC on a Tuesday is 18:00 in Moscow
	slot := &TrainingSlot{
		ID:      500,
		GroupID: 12,
		Start:   time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 3, 4, 16, 30, 0, 0, time.UTC),
	}

	key := RecurringKeyFor(slot, loc)
	assert.Equal(t, RecurringKey{GroupID: 12, Weekday: time.Tuesday, Start: "18:00", End: "19:30"}, key)
	assert.Equal(t, "12/2/18:00-19:30", key.String())
	assert.Equal(t, "Tuesday 18:00-19:30", key.Describe())
}

func TestParseRecurringKeyRoundTrip(t *testing.T) {
	key := RecurringKey{GroupID: 7, Weekday: time.Sunday, Start: "09:00", End: "10:30"}

	parsed, err := ParseRecurringKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestParseRecurringKeyErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"12/2",
		"x/2/18:00-19:30",
		"12/9/18:00-19:30",
		"12/2/18:00",
		"12/2/18:00-25:99",
	} {
		_, err := ParseRecurringKey(s)
		assert.Error(t, err, s)
	}
}

func TestFreeSeats(t *testing.T) {
	assert.Equal(t, 0, (&TrainingSlot{Capacity: 10, Load: 10}).FreeSeats())
	assert.Equal(t, 1, (&TrainingSlot{Capacity: 10, Load: 9}).FreeSeats())
	assert.Equal(t, 0, (&TrainingSlot{Capacity: 10, Load: 12}).FreeSeats())
}

func TestHasEnded(t *testing.T) {
	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	assert.True(t, (&TrainingSlot{End: now}).HasEnded(now))
	assert.True(t, (&TrainingSlot{End: now.Add(-time.Minute)}).HasEnded(now))
	assert.False(t, (&TrainingSlot{End: now.Add(time.Minute)}).HasEnded(now))
}

func TestSessionIsOffline(t *testing.T) {
	assert.True(t, (&Session{UserID: "1"}).IsOffline())
	assert.False(t, (&Session{UserID: "1", SessionID: "abc"}).IsOffline())
}
