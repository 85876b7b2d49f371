package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TrainingSlot is one concrete scheduled occurrence of a sport group.
// CheckedIn and CanCheckIn are relative to the session that fetched the slot.
type TrainingSlot struct {
	ID        int64
	GroupID   int64
	GroupName string
	Start     time.Time
	End       time.Time

	// Capacity and Load are only known after a detail fetch
	Capacity int
	Load     int

	CheckedIn  bool
	CanCheckIn bool
}

// FreeSeats returns the number of seats still open
func (t *TrainingSlot) FreeSeats() int {
	if free := t.Capacity - t.Load; free > 0 {
		return free
	}
	return 0
}

// HasEnded reports whether the slot is over at now
func (t *TrainingSlot) HasEnded(now time.Time) bool {
	return !t.End.After(now)
}

// TrainingRef is one semester occurrence of a recurring slot
type TrainingRef struct {
	ID    int64     `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Statistics is the attendance summary of a student
type Statistics struct {
	// Hours is the number of sport hours counted this semester
	Hours float64

	// BetterThan is the percentage of students with fewer hours
	BetterThan float64
}

const clockLayout = "15:04"

// RecurringKey identifies a weekly slot of a group independently of the
// semester week it falls in.
type RecurringKey struct {
	GroupID int64
	Weekday time.Weekday
	Start   string // HH:MM in the portal timezone
	End     string // HH:MM in the portal timezone
}

// RecurringKeyFor derives the key of a slot, reading wall-clock times in loc
func RecurringKeyFor(slot *TrainingSlot, loc *time.Location) RecurringKey {
	start := slot.Start.In(loc)
	return RecurringKey{
		GroupID: slot.GroupID,
		Weekday: start.Weekday(),
		Start:   start.Format(clockLayout),
		End:     slot.End.In(loc).Format(clockLayout),
	}
}

// String renders the key as "<groupId>/<weekday>/<HH:MM>-<HH:MM>". This is
// the only serialisation used for storage keys and chat component ids.
func (k RecurringKey) String() string {
	return fmt.Sprintf("%d/%d/%s-%s", k.GroupID, int(k.Weekday), k.Start, k.End)
}

// Describe renders the key for people, e.g. "Tuesday 18:00-19:30"
func (k RecurringKey) Describe() string {
	return fmt.Sprintf("%s %s-%s", k.Weekday, k.Start, k.End)
}

// ParseRecurringKey is the inverse of RecurringKey.String
func ParseRecurringKey(s string) (RecurringKey, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return RecurringKey{}, fmt.Errorf("recurring key %q: expected 3 parts", s)
	}

	groupID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return RecurringKey{}, fmt.Errorf("recurring key %q: group id: %w", s, err)
	}

	weekday, err := strconv.Atoi(parts[1])
	if err != nil || weekday < 0 || weekday > 6 {
		return RecurringKey{}, fmt.Errorf("recurring key %q: invalid weekday", s)
	}

	start, end, ok := strings.Cut(parts[2], "-")
	if !ok {
		return RecurringKey{}, fmt.Errorf("recurring key %q: expected time range", s)
	}
	for _, t := range []string{start, end} {
		if _, err := time.Parse(clockLayout, t); err != nil {
			return RecurringKey{}, fmt.Errorf("recurring key %q: time %q: %w", s, t, err)
		}
	}

	return RecurringKey{
		GroupID: groupID,
		Weekday: time.Weekday(weekday),
		Start:   start,
		End:     end,
	}, nil
}
