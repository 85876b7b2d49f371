package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/sportbot/internal/notify"
)

// messageSender is the part of *discordgo.Session the notifier needs
type messageSender interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NotifierConfig holds the configuration for the direct-message notifier
type NotifierConfig struct {
	Sender messageSender
}

// Notifier delivers notifications as direct messages
type Notifier struct {
	sender messageSender
}

var _ notify.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier backed by a Discord session
func NewNotifier(cfg *NotifierConfig) (*Notifier, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Sender == nil {
		return nil, ErrNilSender
	}

	return &Notifier{sender: cfg.Sender}, nil
}

// Notify opens (or reuses) the DM channel with the user and posts the message
func (n *Notifier) Notify(ctx context.Context, userID string, msg *notify.Message) error {
	if msg == nil {
		return fmt.Errorf("message cannot be nil")
	}

	channel, err := n.sender.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	if _, err := n.sender.ChannelMessageSendComplex(channel.ID, renderNotification(msg), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}

	return nil
}
