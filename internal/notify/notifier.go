package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type Type string

const (
	TypeConfirmation Type = "confirmation"
	TypeCancellation Type = "cancellation"
)

// Notifier delivers booking notifications. Delivery is best-effort:
// callers must never let a failure roll back the transition that
// triggered it.
type Notifier interface {
	Notify(ctx context.Context, booking *entity.Booking, notificationType Type) error
}

// New returns the webhook notifier when a webhook URL is configured,
// otherwise a notifier that only logs.
func New(config utils.NotificationConfig, log *zap.Logger) Notifier {
	if config.WebhookURL == "" {
		return &logNotifier{log: log.With(zap.String("notifier", "log"))}
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &webhookNotifier{
		url:    config.WebhookURL,
		client: &http.Client{Timeout: timeout},
		log:    log.With(zap.String("notifier", "webhook")),
	}
}

// Dispatch fires the notification in the background. The HTTP request
// carries its own timeout so an unresponsive receiver cannot delay the
// booking flow; errors are logged and dropped.
func Dispatch(notifier Notifier, booking *entity.Booking, notificationType Type, log *zap.Logger) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := notifier.Notify(ctx, booking, notificationType); err != nil {
			log.Warn("Notification delivery failed",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("type", string(notificationType)),
			)
		}
	}()
}

type webhookNotifier struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

type webhookPayload struct {
	BookingID     string `json:"booking_id"`
	ReferenceCode string `json:"reference_code"`
	Type          string `json:"type"`
}

func (n *webhookNotifier) Notify(ctx context.Context, booking *entity.Booking, notificationType Type) error {
	payload := webhookPayload{
		BookingID:     booking.ID.String(),
		ReferenceCode: booking.ReferenceCode,
		Type:          string(notificationType),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned %d", resp.StatusCode)
	}

	n.log.Info("Notification delivered",
		zap.String("booking_id", booking.ID.String()),
		zap.String("type", string(notificationType)),
	)

	return nil
}

type logNotifier struct {
	log *zap.Logger
}

func (n *logNotifier) Notify(_ context.Context, booking *entity.Booking, notificationType Type) error {
	n.log.Info("Notification (no webhook configured)",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference_code", booking.ReferenceCode),
		zap.String("type", string(notificationType)),
	)
	return nil
}
