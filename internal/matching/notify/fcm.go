package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/google/uuid"

	"khidmaBack/internal/matching/repo"
)

// TokenSource resolves the push token for a provider.
type TokenSource interface {
	TokenFor(ctx context.Context, providerID int64) (string, error)
}

// FCMPublisher delivers assignment notices through Firebase Cloud Messaging.
type FCMPublisher struct {
	client  *messaging.Client
	tokens  TokenSource
	logger  Logger
	timeout time.Duration
}

// NewFCMPublisher constructs an FCMPublisher.
func NewFCMPublisher(client *messaging.Client, tokens TokenSource, logger Logger, timeout time.Duration) *FCMPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &FCMPublisher{client: client, tokens: tokens, logger: logger, timeout: timeout}
}

// NotifyAssignment sends the push. Delivery is best-effort: every failure is
// logged and swallowed, the assignment itself is already committed.
func (p *FCMPublisher) NotifyAssignment(providerID int64, a Assignment) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	token, err := p.tokens.TokenFor(ctx, providerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			p.logger.Infof("notify: provider %d has no device token, skipping push", providerID)
			return
		}
		p.logger.Errorf("notify: token lookup for provider %d failed: %v", providerID, err)
		return
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "Nouvelle mission",
			Body:  fmt.Sprintf("Demande #%d à %.1f km", a.RequestID, a.DistanceKm),
		},
		Data: map[string]string{
			"type":            "assignment",
			"notification_id": uuid.New().String(),
			"request_id":      strconv.FormatInt(a.RequestID, 10),
			"price":           strconv.FormatFloat(a.Price, 'f', 2, 64),
			"address":         a.Address,
			"distance_km":     strconv.FormatFloat(a.DistanceKm, 'f', 2, 64),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "assignments",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	if _, err := p.client.Send(ctx, message); err != nil {
		p.logger.Errorf("notify: push to provider %d failed: %v", providerID, err)
		return
	}
	p.logger.Infof("notify: pushed assignment of request %d to provider %d", a.RequestID, providerID)
}
