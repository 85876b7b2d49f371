package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/sportbot/internal/models"
)

var testLocation = time.FixedZone("MSK", 3*60*60)

func testSlot(id int64, hour, load int) *models.TrainingSlot {
	start := time.Date(2025, 3, 4, hour, 0, 0, 0, testLocation)
	return &models.TrainingSlot{
		ID:         id,
		GroupID:    12,
		GroupName:  "Volleyball",
		Start:      start,
		End:        start.Add(90 * time.Minute),
		Capacity:   10,
		Load:       load,
		CanCheckIn: true,
	}
}

func buttonIDs(t *testing.T, components []discordgo.MessageComponent) []string {
	t.Helper()
	var ids []string
	for _, component := range components {
		row, ok := component.(discordgo.ActionsRow)
		require.True(t, ok)
		for _, inner := range row.Components {
			if button, ok := inner.(discordgo.Button); ok {
				ids = append(ids, button.CustomID)
			}
		}
	}
	return ids
}

func TestRenderDay(t *testing.T) {
	day := time.Date(2025, 3, 4, 0, 0, 0, 0, testLocation)
	checked := testSlot(2, 20, 10)
	checked.CheckedIn = true

	embed, components := renderDay(day, []*models.TrainingSlot{testSlot(1, 18, 9), checked}, testLocation)

	assert.Equal(t, "Trainings on Tuesday, 04/03", embed.Title)
	assert.Contains(t, embed.Description, "`18:00-19:30` Volleyball (9/10)")
	assert.Contains(t, embed.Description, "`20:00-21:30` Volleyball (10/10) ✅")

	require.Len(t, components, 2)
	picker := components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Equal(t, SelectTraining, picker.CustomID)
	require.Len(t, picker.Options, 2)
	assert.Equal(t, "1", picker.Options[0].Value)

	assert.Equal(t, []string{"day/2025-03-03", "day/2025-03-05"}, buttonIDs(t, components[1:]))
}

func TestRenderEmptyDayHasNoPicker(t *testing.T) {
	embed, components := renderDay(time.Date(2025, 3, 8, 0, 0, 0, 0, testLocation), nil, testLocation)

	assert.Equal(t, "No trainings on this day.", embed.Description)
	require.Len(t, components, 1)
	assert.Equal(t, []string{"day/2025-03-07", "day/2025-03-09"}, buttonIDs(t, components))
}

func TestRenderDetailActions(t *testing.T) {
	tests := []struct {
		name      string
		slot      func() *models.TrainingSlot
		notifying bool
		want      []string
	}{
		{
			name: "free seat",
			slot: func() *models.TrainingSlot { return testSlot(500, 18, 9) },
			want: []string{"tid/500", "auto/500", "day/2025-03-04"},
		},
		{
			name: "full",
			slot: func() *models.TrainingSlot { return testSlot(500, 18, 10) },
			want: []string{"ntid/500", "auto/500", "day/2025-03-04"},
		},
		{
			name:      "free seat while notifying",
			slot:      func() *models.TrainingSlot { return testSlot(500, 18, 5) },
			notifying: true,
			want:      []string{"tid/500", "ntid/500", "auto/500", "day/2025-03-04"},
		},
		{
			name: "checked in",
			slot: func() *models.TrainingSlot {
				slot := testSlot(500, 18, 10)
				slot.CheckedIn = true
				return slot
			},
			want: []string{"tid/500", "auto/500", "day/2025-03-04"},
		},
		{
			name: "not open yet",
			slot: func() *models.TrainingSlot {
				slot := testSlot(500, 18, 0)
				slot.CanCheckIn = false
				return slot
			},
			want: []string{"auto/500", "day/2025-03-04"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed, components := renderDetail(tt.slot(), tt.notifying, testLocation)
			assert.Equal(t, "Volleyball", embed.Title)
			assert.Equal(t, tt.want, buttonIDs(t, components))
		})
	}
}

func TestRenderAutoList(t *testing.T) {
	key := models.RecurringKey{GroupID: 12, Weekday: time.Tuesday, Start: "18:00", End: "19:30"}
	other := models.RecurringKey{GroupID: 13, Weekday: time.Friday, Start: "09:00", End: "10:30"}
	next := testSlot(500, 18, 0)

	embed, components := renderAutoList(map[models.RecurringKey][]models.TrainingRef{
		key:   {{ID: next.ID, Start: next.Start, End: next.End}},
		other: nil,
	}, testLocation)

	assert.Contains(t, embed.Description, "1. Tuesday 18:00-19:30 (next 04/03)")
	assert.Contains(t, embed.Description, "2. Friday 09:00-10:30 (no upcoming trainings)")
	assert.Equal(t, []string{"autodel/" + key.String(), "autodel/" + other.String()}, buttonIDs(t, components))

	parsed, ok := parseAutoRemoveCustomID("autodel/" + key.String())
	require.True(t, ok)
	assert.Equal(t, key, parsed)
}

func TestRenderEmptyAutoList(t *testing.T) {
	embed, components := renderAutoList(nil, testLocation)
	assert.Contains(t, embed.Description, "no automatic check-ins")
	assert.Nil(t, components)
}

func TestRenderAutoListCapsButtons(t *testing.T) {
	subs := make(map[models.RecurringKey][]models.TrainingRef)
	for n := 0; n < 30; n++ {
		subs[models.RecurringKey{GroupID: int64(100 + n), Weekday: time.Monday, Start: "10:00", End: "11:00"}] = nil
	}

	_, components := renderAutoList(subs, testLocation)
	assert.Len(t, components, maxRows)
	assert.Len(t, buttonIDs(t, components), maxRows*maxButtonsPerRow)
}

func TestParseDayCustomID(t *testing.T) {
	day, ok := parseDayCustomID("day/2025-03-04", testLocation)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, testLocation), day)

	_, ok = parseDayCustomID("day/tomorrow", testLocation)
	assert.False(t, ok)
	_, ok = parseDayCustomID("tid/500", testLocation)
	assert.False(t, ok)
}

func TestParseDayOption(t *testing.T) {
	now := time.Date(2025, 12, 30, 23, 30, 0, 0, testLocation)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"", time.Date(2025, 12, 30, 0, 0, 0, 0, testLocation)},
		{"Today", time.Date(2025, 12, 30, 0, 0, 0, 0, testLocation)},
		{"tomorrow", time.Date(2025, 12, 31, 0, 0, 0, 0, testLocation)},
		{"2026-01-15", time.Date(2026, 1, 15, 0, 0, 0, 0, testLocation)},
		{"31.12", time.Date(2025, 12, 31, 0, 0, 0, 0, testLocation)},
		{"02.01", time.Date(2026, 1, 2, 0, 0, 0, 0, testLocation)},
	}

	for _, tt := range tests {
		got, err := parseDayOption(tt.raw, now, testLocation)
		require.NoError(t, err, tt.raw)
		assert.True(t, tt.want.Equal(got), "%q: got %s", tt.raw, got)
	}

	_, err := parseDayOption("someday", now, testLocation)
	assert.Error(t, err)
}

func TestRenderBroadcastPreview(t *testing.T) {
	embed, components := renderBroadcastPreview("Gym closed on Friday", 42)

	assert.Equal(t, "Send to 42 users?", embed.Title)
	assert.Equal(t, "Gym closed on Friday", embed.Description)
	assert.Equal(t, []string{confirmBroadcastSend, confirmBroadcastCancel}, buttonIDs(t, components))
}
