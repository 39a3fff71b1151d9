package notifier

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/bcmc-trips/internal/config"
	"github.com/pfrederiksen/bcmc-trips/internal/logger"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// ErrMissingCredentials is returned when any of the four OAuth1 values is empty
var ErrMissingCredentials = errors.New("missing required Twitter credentials")

// DefaultPostInterval is the pause between consecutive posts
const DefaultPostInterval = 2 * time.Second

// TwitterNotifier posts trips to Twitter
type TwitterNotifier struct {
	client   *twitter.Client
	interval time.Duration
	sleep    func(time.Duration)
}

// NewTwitterNotifier creates a Twitter notifier from OAuth1 credentials
func NewTwitterNotifier(creds config.TwitterConfig) (*TwitterNotifier, error) {
	if !creds.Complete() {
		return nil, ErrMissingCredentials
	}

	cfg := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	return newTwitterNotifier(cfg.Client(oauth1.NoContext, token)), nil
}

func newTwitterNotifier(httpClient *http.Client) *TwitterNotifier {
	return &TwitterNotifier{
		client:   twitter.NewClient(httpClient),
		interval: DefaultPostInterval,
		sleep:    time.Sleep,
	}
}

// Notify posts one tweet per trip, stopping at the first failure
func (n *TwitterNotifier) Notify(trips []*trip.Trip) error {
	for i, t := range trips {
		tweet, _, err := n.client.Statuses.Update(formatPost(t), nil)
		if err != nil {
			logger.IncrCounter("notifier.errors")
			return fmt.Errorf("failed to post tweet for trip %q: %w", t.Name, err)
		}

		logger.IncrCounter("notifier.posts")
		logger.Info("Posted trip", logger.Fields{
			"trip":     t.Name,
			"tweet_id": tweet.IDStr,
		})

		// Rate limiting: wait between tweets
		if i < len(trips)-1 {
			n.sleep(n.interval)
		}
	}

	return nil
}
