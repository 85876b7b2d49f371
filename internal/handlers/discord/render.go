package discord

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/sportbot/internal/models"
	"github.com/KirkDiggler/sportbot/internal/notify"
)

const (
	colorOK    = 0x00ff00
	colorError = 0xff0000
	colorInfo  = 0x3498db

	dayLayout   = "2006-01-02"
	timeLayout  = "15:04"
	shortLayout = "02/01"

	// Discord caps a message at five rows of five buttons, and a select menu
	// at 25 options
	maxButtonsPerRow = 5
	maxRows          = 5
	maxSelectOptions = 25
)

// renderDay renders one day's schedule with a training picker and
// previous/next day navigation
func renderDay(day time.Time, slots []*models.TrainingSlot, loc *time.Location) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	day = day.In(loc)

	var lines []string
	for _, slot := range slots {
		lines = append(lines, slotLine(slot, loc))
	}

	description := "No trainings on this day."
	if len(lines) > 0 {
		description = strings.Join(lines, "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Trainings on %s, %s", day.Weekday(), day.Format(shortLayout)),
		Description: description,
		Color:       colorInfo,
	}

	var components []discordgo.MessageComponent
	if len(slots) > 0 {
		options := make([]discordgo.SelectMenuOption, 0, len(slots))
		for _, slot := range slots {
			if len(options) == maxSelectOptions {
				break
			}
			options = append(options, discordgo.SelectMenuOption{
				Label: fmt.Sprintf("%s %s", slot.Start.In(loc).Format(timeLayout), slot.GroupName),
				Value: strconv.FormatInt(slot.ID, 10),
			})
		}

		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    SelectTraining,
					Placeholder: "Choose a training",
					Options:     options,
				},
			},
		})
	}

	components = append(components, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Previous day",
				Style:    discordgo.SecondaryButton,
				CustomID: dayCustomID(day.AddDate(0, 0, -1)),
			},
			discordgo.Button{
				Label:    "Next day",
				Style:    discordgo.SecondaryButton,
				CustomID: dayCustomID(day.AddDate(0, 0, 1)),
			},
		},
	})

	return embed, components
}

// renderDetail renders one training with the actions available on it
func renderDetail(slot *models.TrainingSlot, notifying bool, loc *time.Location) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	start := slot.Start.In(loc)

	checkedIn := "No"
	if slot.CheckedIn {
		checkedIn = "Yes"
	}

	embed := &discordgo.MessageEmbed{
		Title: slot.GroupName,
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "When",
				Value:  fmt.Sprintf("%s %s, %s-%s", start.Weekday(), start.Format(shortLayout), start.Format(timeLayout), slot.End.In(loc).Format(timeLayout)),
				Inline: true,
			},
			{
				Name:   "Seats",
				Value:  fmt.Sprintf("%d/%d", slot.Load, slot.Capacity),
				Inline: true,
			},
			{
				Name:   "Checked in",
				Value:  checkedIn,
				Inline: true,
			},
		},
	}

	var buttons []discordgo.MessageComponent
	switch {
	case slot.CheckedIn:
		buttons = append(buttons, discordgo.Button{
			Label:    "Cancel check-in",
			Style:    discordgo.DangerButton,
			CustomID: notify.ActionPrefixCheckIn + strconv.FormatInt(slot.ID, 10),
		})
	case slot.CanCheckIn && slot.FreeSeats() > 0:
		buttons = append(buttons, discordgo.Button{
			Label:    "Check in",
			Style:    discordgo.SuccessButton,
			CustomID: notify.ActionPrefixCheckIn + strconv.FormatInt(slot.ID, 10),
		})
	}

	if !slot.CheckedIn && (notifying || slot.FreeSeats() <= 0) {
		label := "Notify me"
		if notifying {
			label = "Stop notifying"
		}
		buttons = append(buttons, discordgo.Button{
			Label:    label,
			Style:    discordgo.PrimaryButton,
			CustomID: notify.ActionPrefixNotify + strconv.FormatInt(slot.ID, 10),
		})
	}

	buttons = append(buttons,
		discordgo.Button{
			Label:    "Every week",
			Style:    discordgo.PrimaryButton,
			CustomID: notify.ActionPrefixAutoCheckin + strconv.FormatInt(slot.ID, 10),
		},
		discordgo.Button{
			Label:    "Back",
			Style:    discordgo.SecondaryButton,
			CustomID: dayCustomID(start),
		},
	)

	return embed, []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

// renderMyWeek lists the trainings the user is checked in to
func renderMyWeek(slots []*models.TrainingSlot, loc *time.Location) *discordgo.MessageEmbed {
	description := "You are not checked in to any training this week."
	if len(slots) > 0 {
		lines := make([]string, 0, len(slots))
		for _, slot := range slots {
			start := slot.Start.In(loc)
			lines = append(lines, fmt.Sprintf("**%s %s** `%s-%s` %s",
				start.Weekday(), start.Format(shortLayout),
				start.Format(timeLayout), slot.End.In(loc).Format(timeLayout), slot.GroupName))
		}
		description = strings.Join(lines, "\n")
	}

	return &discordgo.MessageEmbed{
		Title:       "My trainings",
		Description: description,
		Color:       colorInfo,
	}
}

// renderAutoList lists recurring subscriptions with one remove button each
func renderAutoList(subs map[models.RecurringKey][]models.TrainingRef, loc *time.Location) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	keys := make([]models.RecurringKey, 0, len(subs))
	for key := range subs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	embed := &discordgo.MessageEmbed{
		Title:       "Automatic check-ins",
		Description: "You have no automatic check-ins. Open a training and press \"Every week\".",
		Color:       colorInfo,
	}
	if len(keys) == 0 {
		return embed, nil
	}

	lines := make([]string, 0, len(keys))
	for n, key := range keys {
		next := "no upcoming trainings"
		if refs := subs[key]; len(refs) > 0 {
			next = "next " + refs[0].Start.In(loc).Format(shortLayout)
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", n+1, key.Describe(), next))
	}
	embed.Description = strings.Join(lines, "\n")

	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for n, key := range keys {
		if len(rows) == maxRows {
			break
		}
		row = append(row, discordgo.Button{
			Label:    fmt.Sprintf("Remove %d", n+1),
			Style:    discordgo.DangerButton,
			CustomID: notify.ActionPrefixAutoRemove + key.String(),
		})
		if len(row) == maxButtonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 && len(rows) < maxRows {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}

	return embed, rows
}

// renderNotification turns an outbound notification into a DM
func renderNotification(msg *notify.Message) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       msg.Title,
				Description: msg.Text,
				Color:       colorOK,
			},
		},
	}
	if msg.Title == "" {
		send.Embeds = nil
		send.Content = msg.Text
	}

	if len(msg.Actions) > 0 {
		buttons := make([]discordgo.MessageComponent, 0, len(msg.Actions))
		for _, action := range msg.Actions {
			if len(buttons) == maxButtonsPerRow {
				break
			}
			buttons = append(buttons, discordgo.Button{
				Label:    action.Label,
				Style:    discordgo.SuccessButton,
				CustomID: action.CustomID,
			})
		}
		send.Components = []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
	}

	return send
}

// renderBroadcastPreview asks the sender to confirm a broadcast
func renderBroadcastPreview(text string, recipients int) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Send to %d users?", recipients),
		Description: text,
		Color:       colorInfo,
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Send",
					Style:    discordgo.SuccessButton,
					CustomID: confirmBroadcastSend,
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.DangerButton,
					CustomID: confirmBroadcastCancel,
				},
			},
		},
	}

	return embed, components
}

func slotLine(slot *models.TrainingSlot, loc *time.Location) string {
	line := fmt.Sprintf("`%s-%s` %s (%d/%d)",
		slot.Start.In(loc).Format(timeLayout), slot.End.In(loc).Format(timeLayout),
		slot.GroupName, slot.Load, slot.Capacity)
	if slot.CheckedIn {
		line += " ✅"
	}
	return line
}

func dayCustomID(day time.Time) string {
	return notify.ActionPrefixDay + day.Format(dayLayout)
}

// parseDayCustomID reads the date of a day/<date> component in loc
func parseDayCustomID(customID string, loc *time.Location) (time.Time, bool) {
	raw, ok := strings.CutPrefix(customID, notify.ActionPrefixDay)
	if !ok {
		return time.Time{}, false
	}

	day, err := time.ParseInLocation(dayLayout, raw, loc)
	if err != nil {
		return time.Time{}, false
	}

	return day, true
}

// parseAutoRemoveCustomID reads the recurring key of an autodel/<key> component
func parseAutoRemoveCustomID(customID string) (models.RecurringKey, bool) {
	raw, ok := strings.CutPrefix(customID, notify.ActionPrefixAutoRemove)
	if !ok {
		return models.RecurringKey{}, false
	}

	key, err := models.ParseRecurringKey(raw)
	if err != nil {
		return models.RecurringKey{}, false
	}

	return key, true
}
