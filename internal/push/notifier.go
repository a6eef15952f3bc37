package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/duetapp/duet/internal/store"
)

// Notifier fans out event notifications to a couple's devices. Sends are
// fire-and-forget from the caller's perspective; failures are logged and
// expired subscriptions are pruned.
type Notifier struct {
	service *Service
	subs    *store.PushStore
	logger  *slog.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(service *Service, subs *store.PushStore, logger *slog.Logger) *Notifier {
	return &Notifier{
		service: service,
		subs:    subs,
		logger:  logger,
	}
}

// NotifyPartner sends a notification to every device of the couple except
// the acting user's own devices.
func (n *Notifier) NotifyPartner(ctx context.Context, coupleID, actorID int64, payload Payload) {
	subs, err := n.subs.ListByCouple(coupleID)
	if err != nil {
		n.logger.Error("list couple subscriptions", "error", err, "couple_id", coupleID)
		return
	}

	for i := range subs {
		sub := &subs[i]
		if sub.UserID == actorID {
			continue
		}
		if err := n.service.Send(ctx, sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if err := n.subs.DeleteByEndpoint(sub.Endpoint); err != nil {
					n.logger.Error("prune expired subscription", "error", err)
				}
				continue
			}
			n.logger.Error("send push", "error", err, "user_id", sub.UserID)
		}
	}
}

// TaskCompleted builds the payload for a task completion.
func TaskCompleted(actorName, taskName string, points int) Payload {
	return Payload{
		Title: "Task completed",
		Body:  fmt.Sprintf("%s completed %s (+%d points)", actorName, taskName, points),
		URL:   "/calendar",
		Tag:   "task-completed",
	}
}

// RewardRedeemed builds the payload for a reward redemption.
func RewardRedeemed(actorName, rewardName string, cost int) Payload {
	return Payload{
		Title: "Reward redeemed",
		Body:  fmt.Sprintf("%s redeemed %s (-%d points)", actorName, rewardName, cost),
		URL:   "/rewards",
		Tag:   "reward-redeemed",
	}
}
