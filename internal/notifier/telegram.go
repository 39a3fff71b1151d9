package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/config"
	"github.com/pfrederiksen/bcmc-trips/internal/logger"
	"github.com/pfrederiksen/bcmc-trips/internal/telegram"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// TelegramNotifier posts trips to a Telegram chat, either one message per
// trip or a single digest message
type TelegramNotifier struct {
	client   *telegram.Client
	digest   bool
	interval time.Duration
	sleep    func(time.Duration)
}

// NewTelegramNotifier creates a Telegram notifier from bot credentials
func NewTelegramNotifier(creds config.TelegramConfig, digest bool) (*TelegramNotifier, error) {
	client, err := telegram.NewClient(creds.BotToken, creds.ChatID)
	if err != nil {
		return nil, fmt.Errorf("missing required Telegram credentials: %w", err)
	}
	return newTelegramNotifier(client, digest), nil
}

func newTelegramNotifier(client *telegram.Client, digest bool) *TelegramNotifier {
	return &TelegramNotifier{
		client:   client,
		digest:   digest,
		interval: time.Second,
		sleep:    time.Sleep,
	}
}

// Notify sends the trips, stopping at the first failure
func (n *TelegramNotifier) Notify(trips []*trip.Trip) error {
	ctx := context.Background()

	if n.digest {
		if err := n.client.SendMessage(ctx, telegram.FormatDigest(trips)); err != nil {
			logger.IncrCounter("notifier.errors")
			return fmt.Errorf("failed to send digest: %w", err)
		}
		logger.IncrCounter("notifier.posts")
		logger.Info("Sent digest", logger.Fields{"trips": len(trips)})
		return nil
	}

	for i, t := range trips {
		if err := n.client.SendMessage(ctx, telegram.FormatTrip(t)); err != nil {
			logger.IncrCounter("notifier.errors")
			return fmt.Errorf("failed to send message for trip %q: %w", t.Name, err)
		}
		logger.IncrCounter("notifier.posts")
		logger.Info("Sent trip", logger.Fields{"trip": t.Name})

		if i < len(trips)-1 {
			n.sleep(n.interval)
		}
	}
	return nil
}
