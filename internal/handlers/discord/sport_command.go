package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/sportbot/internal/common/clock"
	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	"github.com/KirkDiggler/sportbot/internal/services/training"
)

// SportCommand handles the /sport command
type SportCommand struct {
	BaseCommand
	*handler
}

// NewSportCommand creates a new sport command handler
func NewSportCommand(h *handler) *SportCommand {
	return &SportCommand{
		BaseCommand: BaseCommand{
			Name:        "sport",
			Description: "University sport attendance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "What this bot can do",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "login",
					Description: "Log in with your university account",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "logout",
					Description: "Forget your login",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "day",
					Description: "Show the trainings of a day",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "date",
							Description: "today, tomorrow, YYYY-MM-DD or DD.MM",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "my",
					Description: "Trainings you are checked in to this week",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "auto",
					Description: "Your automatic weekly check-ins",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Your sport hours this semester",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "broadcast",
					Description: "Message every user (admin only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "text",
							Description: "Message text",
							Required:    true,
						},
					},
				},
			},
		},
		handler: h,
	}
}

// Handle processes a Discord interaction for the sport command
func (c *SportCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]

	// The login form is the response itself and cannot follow a deferral
	if sub.Name == "login" {
		if err := s.InteractionRespond(i.Interaction, loginModal()); err != nil {
			return fmt.Errorf("failed to open login form: %w", err)
		}
		return nil
	}

	if err := DeferReply(s, i); err != nil {
		return fmt.Errorf("failed to acknowledge command: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	userID := interactionUserID(i)
	options := optionMap(sub.Options)

	if needsPortal(sub.Name) {
		if err := c.checkPortal(ctx); err != nil {
			return c.replyError(ctx, s, i, err)
		}
	}

	var err error
	switch sub.Name {
	case "start":
		err = c.handleStart(ctx, s, i, userID)
	case "logout":
		err = c.handleLogout(ctx, s, i, userID)
	case "day":
		err = c.handleDay(ctx, s, i, userID, options["date"])
	case "my":
		err = c.handleMy(ctx, s, i, userID)
	case "auto":
		err = c.showAutoList(ctx, s, i, userID)
	case "stats":
		err = c.handleStats(ctx, s, i, userID)
	case "broadcast":
		err = c.handleBroadcast(ctx, s, i, userID, options["text"])
	default:
		err = ErrUnknownCommand
	}

	if err != nil {
		return c.replyError(ctx, s, i, err)
	}
	return nil
}

func (c *SportCommand) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	out, err := c.messaging.GetWelcomeMessage(ctx, &messaging.GetWelcomeMessageInput{
		Registered: c.registry.EnsureUsable(ctx, userID),
	})
	if err != nil {
		return err
	}

	return EditWithMessage(s, i, out.Title, out.Message)
}

func (c *SportCommand) handleLogout(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	if err := c.registry.Logout(ctx, userID); err != nil {
		return err
	}

	return EditWithMessage(s, i, "Logged out", "Your login has been forgotten. Automatic check-ins are paused until you log in again.")
}

func (c *SportCommand) handleDay(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, raw string) error {
	day, err := parseDayOption(raw, c.clock.Now(), c.location)
	if err != nil {
		return err
	}

	return c.showDay(ctx, s, i, userID, day)
}

func (c *SportCommand) handleMy(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	out, err := c.training.GetMyWeek(ctx, &training.GetMyWeekInput{UserID: userID})
	if err != nil {
		return err
	}

	return EditWithEmbed(s, i, renderMyWeek(out.Slots, c.location), nil)
}

func (c *SportCommand) handleStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	stats, err := c.training.GetStatistics(ctx, &training.GetStatisticsInput{UserID: userID})
	if err != nil {
		return err
	}

	out, err := c.messaging.GetStatisticsMessage(ctx, &messaging.GetStatisticsMessageInput{Statistics: stats})
	if err != nil {
		return err
	}

	return EditWithMessage(s, i, out.Title, out.Message)
}

func (c *SportCommand) handleBroadcast(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, text string) error {
	out, err := c.training.PrepareBroadcast(ctx, &training.PrepareBroadcastInput{SenderID: userID, Text: text})
	if err != nil {
		return err
	}

	embed, components := renderBroadcastPreview(out.Text, out.Recipients)
	return EditWithEmbed(s, i, embed, components)
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	values := make(map[string]string, len(options))
	for _, option := range options {
		if option.Type == discordgo.ApplicationCommandOptionString {
			values[option.Name] = option.StringValue()
		}
	}
	return values
}

// parseDayOption reads the day argument of /sport day. Empty means today.
func parseDayOption(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	today := clock.StartOfDay(now, loc)

	switch raw = strings.ToLower(strings.TrimSpace(raw)); raw {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if day, err := time.ParseInLocation(dayLayout, raw, loc); err == nil {
		return day, nil
	}

	// DD.MM picks the nearest such date that is not in the past
	if day, err := time.ParseInLocation("02.01", raw, loc); err == nil {
		day = time.Date(today.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		if day.Before(today) {
			day = day.AddDate(1, 0, 0)
		}
		return day, nil
	}

	return time.Time{}, fmt.Errorf("%w: date %q", training.ErrInvalidInput, raw)
}
