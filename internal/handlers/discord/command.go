package discord

import (
	"github.com/bwmarrin/discordgo"
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// DeferReply acknowledges a slash command with an ephemeral "thinking" state.
// Portal calls routinely outlive Discord's three second response window.
func DeferReply(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

// DeferUpdate acknowledges a component interaction; the message it belongs
// to is edited afterwards
func DeferUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// EditWithEmbed replaces the deferred response with an embed and components
func EditWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	embeds := []*discordgo.MessageEmbed{embed}
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	empty := ""

	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &empty,
		Embeds:     &embeds,
		Components: &components,
	})
	return err
}

// EditWithMessage replaces the deferred response with a titled message
func EditWithMessage(s *discordgo.Session, i *discordgo.InteractionCreate, title, message string) error {
	return EditWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       colorOK,
	}, nil)
}

// EditWithError replaces the deferred response with an error embed
func EditWithError(s *discordgo.Session, i *discordgo.InteractionCreate, title, message string) error {
	return EditWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       colorError,
	}, nil)
}

// FollowupEphemeral posts an extra private message after the deferred
// response. Component handlers use it so the original message stays intact.
func FollowupEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, title, message string, color int) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: message,
				Color:       color,
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	})
	return err
}

// interactionUserID returns the id of the user behind an interaction. Guild
// interactions carry a Member, DMs carry a User.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
