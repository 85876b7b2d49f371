package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/common/metrics"
)

// Kind labels outbound messages for logs and metrics
type Kind string

const (
	KindSeatAvailable   Kind = "seat_available"
	KindExpired         Kind = "expired"
	KindCheckedIn       Kind = "checked_in"
	KindSlotVanished    Kind = "slot_vanished"
	KindReloginRequired Kind = "relogin_required"
	KindBroadcast       Kind = "broadcast"
)

// Action is a one-tap button attached to a message
type Action struct {
	Label    string
	CustomID string
}

// Custom id prefixes of one-tap actions. The chat transport routes on them.
const (
	ActionPrefixCheckIn     = "tid/"
	ActionPrefixNotify      = "ntid/"
	ActionPrefixAutoCheckin = "auto/"
	ActionPrefixAutoRemove  = "autodel/"
	ActionPrefixDay         = "day/"
)

// CheckInAction is the one-tap check-in button for a training
func CheckInAction(trainingID int64) Action {
	return Action{Label: "Check in", CustomID: ActionPrefixCheckIn + strconv.FormatInt(trainingID, 10)}
}

// ParseTrainingAction extracts the training id of a custom id with prefix
func ParseTrainingAction(customID, prefix string) (int64, bool) {
	raw, ok := strings.CutPrefix(customID, prefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Message is a chat message addressed to one user
type Message struct {
	Kind    Kind
	Title   string
	Text    string
	Actions []Action
}

// Notifier delivers a message to a user over the chat transport
//
//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/sportbot/internal/notify Notifier
type Notifier interface {
	Notify(ctx context.Context, userID string, msg *Message) error
}

// Result is the delivery outcome for one recipient
type Result struct {
	UserID string
	Err    error
}

// FanoutResult aggregates the outcome of one fan-out
type FanoutResult struct {
	Attempted int
	Delivered int
	Failed    int
	Results   []Result
}

// Fanout sends msg to every user. Each recipient is isolated: a failed or
// panicking send is recorded and the next recipient is still attempted.
func Fanout(ctx context.Context, n Notifier, log logger.Logger, userIDs []string, msg *Message) *FanoutResult {
	out := &FanoutResult{
		Results: make([]Result, 0, len(userIDs)),
	}

	for _, userID := range userIDs {
		err := send(ctx, n, userID, msg)

		out.Attempted++
		out.Results = append(out.Results, Result{UserID: userID, Err: err})
		if err != nil {
			out.Failed++
			metrics.NotificationsSent.WithLabelValues(string(msg.Kind), "failed").Inc()
			log.Warn("Notification delivery failed", map[string]interface{}{
				"user_id": userID,
				"kind":    string(msg.Kind),
				"error":   err.Error(),
			})
			continue
		}

		out.Delivered++
		metrics.NotificationsSent.WithLabelValues(string(msg.Kind), "delivered").Inc()
	}

	return out
}

// Send delivers one message with the same isolation as Fanout
func Send(ctx context.Context, n Notifier, log logger.Logger, userID string, msg *Message) bool {
	return Fanout(ctx, n, log, []string{userID}, msg).Delivered == 1
}

func send(ctx context.Context, n Notifier, userID string, msg *Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panicked: %v", r)
		}
	}()
	return n.Notify(ctx, userID, msg)
}
