package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	"github.com/KirkDiggler/sportbot/internal/services/training"
)

// Custom ids of the login form and its fields
const (
	loginModalID    = "login"
	loginEmailID    = "email"
	loginPasswordID = "password"
)

// loginModal asks for the university login in a private form, so the
// password never shows up in the channel or the command history
func loginModal() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: loginModalID,
			Title:    "University login",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    loginEmailID,
							Label:       "University email",
							Style:       discordgo.TextInputShort,
							Placeholder: "name@university.ru",
							Required:    true,
							MaxLength:   254,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    loginPasswordID,
							Label:       "Password",
							Style:       discordgo.TextInputShort,
							Placeholder: "Only the bot sees this form",
							Required:    true,
							MaxLength:   128,
						},
					},
				},
			},
		},
	}
}

// modalValues collects the text inputs of a submitted form by custom id
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)

	collect := func(component discordgo.MessageComponent) {
		switch input := component.(type) {
		case *discordgo.TextInput:
			values[input.CustomID] = input.Value
		case discordgo.TextInput:
			values[input.CustomID] = input.Value
		}
	}

	for _, component := range data.Components {
		switch row := component.(type) {
		case *discordgo.ActionsRow:
			for _, inner := range row.Components {
				collect(inner)
			}
		case discordgo.ActionsRow:
			for _, inner := range row.Components {
				collect(inner)
			}
		}
	}

	return values
}

// needsPortal reports whether a subcommand talks to the portal
func needsPortal(sub string) bool {
	switch sub {
	case "day", "my", "auto", "stats":
		return true
	default:
		return false
	}
}

// checkPortal fails fast with a portal-down error before work that cannot
// succeed without the portal
func (h *handler) checkPortal(ctx context.Context) error {
	if err := h.portal.Ping(ctx); err != nil {
		h.log.Warn("Portal is not answering", map[string]interface{}{"error": err.Error()})
		return err
	}
	return nil
}

// handleModalSubmit handles the login form
func (b *Bot) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	if data.CustomID != loginModalID {
		return fmt.Errorf("%w: %s", ErrInvalidComponent, data.CustomID)
	}

	if err := DeferReply(s, i); err != nil {
		return fmt.Errorf("failed to acknowledge login: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	values := modalValues(data)
	if err := b.login(ctx, s, i, interactionUserID(i), values[loginEmailID], values[loginPasswordID]); err != nil {
		return b.replyError(ctx, s, i, err)
	}
	return nil
}

func (h *handler) login(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return training.ErrInvalidInput
	}

	if err := h.checkPortal(ctx); err != nil {
		return err
	}

	if _, err := h.registry.Login(ctx, userID, email, password); err != nil {
		return err
	}

	h.log.Info("User logged in", map[string]interface{}{"user_id": userID})

	out, err := h.messaging.GetWelcomeMessage(ctx, &messaging.GetWelcomeMessageInput{Registered: true})
	if err != nil {
		return err
	}

	return EditWithMessage(s, i, out.Title, out.Message)
}
