package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/sportbot/internal/common/clock"
	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/notify"
	"github.com/KirkDiggler/sportbot/internal/portal"
	"github.com/KirkDiggler/sportbot/internal/services/autocheckin"
	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	"github.com/KirkDiggler/sportbot/internal/services/notification"
	"github.com/KirkDiggler/sportbot/internal/services/session"
	"github.com/KirkDiggler/sportbot/internal/services/training"
)

const defaultRequestTimeout = 30 * time.Second

// SelectTraining is the custom id of the day view's training picker
const SelectTraining = "training"

// Custom ids of the broadcast confirmation buttons
const (
	confirmBroadcastPrefix = "conf/"
	confirmBroadcastSend   = confirmBroadcastPrefix + "yes"
	confirmBroadcastCancel = confirmBroadcastPrefix + "no"
)

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Session is an already created Discord session. When nil one is
	// created from Token.
	Session *discordgo.Session

	Registry            session.Registry
	TrainingService     training.Service
	NotificationService notification.Service
	AutoCheckinService  autocheckin.Service
	MessagingService    messaging.Service
	PortalClient        portal.Client

	// Location is the portal timezone used for rendering and day parsing
	Location *time.Location

	// Optional
	RequestTimeout time.Duration
	Clock          clock.Clock
	Logger         logger.Logger
}

// handler holds what slash commands and components share
type handler struct {
	registry     session.Registry
	training     training.Service
	notification notification.Service
	autoCheckin  autocheckin.Service
	messaging    messaging.Service
	portal       portal.Client
	location     *time.Location
	timeout      time.Duration
	clock        clock.Clock
	log          logger.Logger
}

// Bot represents the Discord bot instance
type Bot struct {
	*handler
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Token == "" && cfg.Session == nil {
		return nil, ErrEmptyToken
	}

	if cfg.Registry == nil || cfg.TrainingService == nil || cfg.NotificationService == nil ||
		cfg.AutoCheckinService == nil || cfg.MessagingService == nil || cfg.PortalClient == nil {
		return nil, ErrNilService
	}

	if cfg.Location == nil {
		return nil, ErrNilLocation
	}

	dg := cfg.Session
	if dg == nil {
		var err error
		dg, err = discordgo.New("Bot " + cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
	}

	h := &handler{
		registry:     cfg.Registry,
		training:     cfg.TrainingService,
		notification: cfg.NotificationService,
		autoCheckin:  cfg.AutoCheckinService,
		messaging:    cfg.MessagingService,
		portal:       cfg.PortalClient,
		location:     cfg.Location,
		timeout:      cfg.RequestTimeout,
		clock:        cfg.Clock,
		log:          cfg.Logger,
	}
	if h.timeout <= 0 {
		h.timeout = defaultRequestTimeout
	}
	if h.clock == nil {
		h.clock = &clock.DefaultClock{}
	}
	if h.log == nil {
		h.log = logger.NewNoOpLogger()
	}
	h.log = h.log.WithFields(map[string]interface{}{"component": "discord"})

	bot := &Bot{
		handler:    h,
		session:    dg,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
	}

	// Register the interaction handler
	dg.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Session exposes the Discord session for the direct-message notifier
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(NewSportCommand(b.handler)); err != nil {
		return fmt.Errorf("failed to register sport command: %w", err)
	}

	b.log.Info("Bot is running", nil)
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.log.Warn("Failed to delete command", map[string]interface{}{
				"command": cmdName,
				"id":      cmdID,
				"error":   err.Error(),
			})
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// Without a guild ID the command is registered globally
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.log.Info("Registered command", map[string]interface{}{
		"command": cmd.GetName(),
		"id":      createdCmd.ID,
		"guild":   b.config.GuildID,
	})

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.log.Error("Error handling command", map[string]interface{}{
					"command": name,
					"error":   err.Error(),
				})
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.log.Error("Error handling component interaction", map[string]interface{}{
				"custom_id": i.MessageComponentData().CustomID,
				"error":     err.Error(),
			})
		}
	case discordgo.InteractionModalSubmit:
		if err := b.handleModalSubmit(s, i); err != nil {
			b.log.Error("Error handling form", map[string]interface{}{
				"custom_id": i.ModalSubmitData().CustomID,
				"error":     err.Error(),
			})
		}
	}
}

// handleComponentInteraction routes buttons and select menus by custom id
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.MessageComponentData()
	userID := interactionUserID(i)

	if err := DeferUpdate(s, i); err != nil {
		return fmt.Errorf("failed to acknowledge component: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	var err error
	switch {
	case data.CustomID == SelectTraining:
		err = b.handleSelectTraining(ctx, s, i, userID, data.Values)
	case strings.HasPrefix(data.CustomID, notify.ActionPrefixCheckIn):
		err = b.handleCheckInButton(ctx, s, i, userID, data.CustomID)
	case strings.HasPrefix(data.CustomID, notify.ActionPrefixNotify):
		err = b.handleNotifyButton(ctx, s, i, userID, data.CustomID)
	case strings.HasPrefix(data.CustomID, notify.ActionPrefixAutoCheckin):
		err = b.handleAutoCheckinButton(ctx, s, i, userID, data.CustomID)
	case strings.HasPrefix(data.CustomID, notify.ActionPrefixAutoRemove):
		err = b.handleAutoRemoveButton(ctx, s, i, userID, data.CustomID)
	case strings.HasPrefix(data.CustomID, notify.ActionPrefixDay):
		err = b.handleDayButton(ctx, s, i, userID, data.CustomID)
	case strings.HasPrefix(data.CustomID, confirmBroadcastPrefix):
		err = b.handleConfirmBroadcast(ctx, s, i, userID, data.CustomID)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidComponent, data.CustomID)
	}

	if err != nil {
		return b.followupError(ctx, s, i, err)
	}
	return nil
}

func (b *Bot) handleSelectTraining(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string, values []string) error {
	if len(values) != 1 {
		return ErrInvalidComponent
	}

	trainingID, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil || trainingID <= 0 {
		return ErrInvalidComponent
	}

	return b.showDetail(ctx, s, i, userID, trainingID)
}

func (b *Bot) handleCheckInButton(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, customID string) error {
	trainingID, ok := notify.ParseTrainingAction(customID, notify.ActionPrefixCheckIn)
	if !ok {
		return ErrInvalidComponent
	}

	out, err := b.training.ToggleCheckIn(ctx, &training.ToggleCheckInInput{
		UserID:     userID,
		TrainingID: trainingID,
	})
	if err != nil {
		return err
	}

	if out.CheckedIn {
		confirmation, err := b.messaging.GetCheckedInMessage(ctx, &messaging.GetCheckedInMessageInput{Slot: out.Slot})
		if err == nil {
			if err := FollowupEphemeral(s, i, confirmation.Title, confirmation.Message, colorOK); err != nil {
				b.log.Warn("Failed to send check-in confirmation", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return b.showDetail(ctx, s, i, userID, trainingID)
}

func (b *Bot) handleNotifyButton(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, customID string) error {
	trainingID, ok := notify.ParseTrainingAction(customID, notify.ActionPrefixNotify)
	if !ok {
		return ErrInvalidComponent
	}

	if _, err := b.notification.Toggle(ctx, &notification.ToggleInput{
		UserID:     userID,
		TrainingID: trainingID,
	}); err != nil {
		return err
	}

	return b.showDetail(ctx, s, i, userID, trainingID)
}

func (b *Bot) handleAutoCheckinButton(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, customID string) error {
	trainingID, ok := notify.ParseTrainingAction(customID, notify.ActionPrefixAutoCheckin)
	if !ok {
		return ErrInvalidComponent
	}

	// Automatic check-ins act on the user's own portal login
	if err := b.requireOnline(ctx, userID); err != nil {
		return err
	}

	out, err := b.autoCheckin.SubscribeTraining(ctx, &autocheckin.SubscribeTrainingInput{
		UserID:     userID,
		TrainingID: trainingID,
	})
	if err != nil {
		return err
	}

	return FollowupEphemeral(s, i, "Automatic check-in",
		fmt.Sprintf("I will check you in every %s (%d upcoming trainings).", out.Key.Describe(), len(out.Refs)),
		colorOK)
}

func (b *Bot) handleAutoRemoveButton(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, customID string) error {
	key, ok := parseAutoRemoveCustomID(customID)
	if !ok {
		return ErrInvalidComponent
	}

	if err := b.autoCheckin.Unsubscribe(ctx, &autocheckin.UnsubscribeInput{UserID: userID, Key: key}); err != nil {
		return err
	}

	return b.showAutoList(ctx, s, i, userID)
}

func (b *Bot) handleDayButton(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, customID string) error {
	day, ok := parseDayCustomID(customID, b.location)
	if !ok {
		return ErrInvalidComponent
	}

	return b.showDay(ctx, s, i, userID, day)
}

func (b *Bot) handleConfirmBroadcast(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, customID string) error {
	var send bool
	switch customID {
	case confirmBroadcastSend:
		send = true
	case confirmBroadcastCancel:
	default:
		return ErrInvalidComponent
	}

	result, err := b.training.ConfirmBroadcast(ctx, &training.ConfirmBroadcastInput{SenderID: userID, Send: send})
	if err != nil {
		return err
	}

	if result.Cancelled {
		return EditWithMessage(s, i, "Broadcast cancelled", "Nothing was sent.")
	}

	out, err := b.messaging.GetBroadcastSummaryMessage(ctx, &messaging.GetBroadcastSummaryMessageInput{
		Attempted: result.Attempted,
		Failed:    result.Failed,
	})
	if err != nil {
		return err
	}

	return EditWithMessage(s, i, "Broadcast sent", out.Message)
}

func (h *handler) showDay(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string, day time.Time) error {
	out, err := h.training.GetDay(ctx, &training.GetDayInput{UserID: userID, Day: day})
	if err != nil {
		return err
	}

	embed, components := renderDay(out.Day, out.Slots, h.location)
	return EditWithEmbed(s, i, embed, components)
}

func (h *handler) showDetail(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string, trainingID int64) error {
	out, err := h.training.GetDetail(ctx, &training.GetDetailInput{UserID: userID, TrainingID: trainingID})
	if err != nil {
		return err
	}

	embed, components := renderDetail(out.Slot, out.Notifying, h.location)
	return EditWithEmbed(s, i, embed, components)
}

func (h *handler) showAutoList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	out, err := h.autoCheckin.List(ctx, &autocheckin.ListInput{UserID: userID})
	if err != nil {
		return err
	}

	embed, components := renderAutoList(out.Subscriptions, h.location)
	return EditWithEmbed(s, i, embed, components)
}

// requireOnline fails unless the user has a usable, logged-in session
func (h *handler) requireOnline(ctx context.Context, userID string) error {
	if !h.registry.EnsureUsable(ctx, userID) {
		if h.registry.Has(userID) {
			return training.ErrSessionExpired
		}
		return training.ErrNotRegistered
	}

	if current := h.registry.Get(userID); current == nil || current.IsOffline() {
		return portal.ErrOfflineSession
	}

	return nil
}

// errorMessage renders err into the text of its failure category
func (h *handler) errorMessage(ctx context.Context, err error) (string, string) {
	errorType := errorTypeFor(err)
	if errorType == messaging.ErrorTypeUnexpected {
		h.log.Error("Unexpected handler error", map[string]interface{}{"error": err.Error()})
	}

	out, msgErr := h.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{ErrorType: errorType})
	if msgErr != nil {
		return "Error", "Something went wrong, please try again later."
	}

	return out.Title, out.Message
}

// replyError replaces a deferred slash command response with the error
func (h *handler) replyError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	title, message := h.errorMessage(ctx, err)
	return EditWithError(s, i, title, message)
}

// followupError reports a component failure without touching the message
func (h *handler) followupError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	title, message := h.errorMessage(ctx, err)
	return FollowupEphemeral(s, i, title, message, colorError)
}
