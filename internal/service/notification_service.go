package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/events"
)

// NotificationService reacts to domain events with log lines and an
// optional webhook call. It is intentionally fire-and-forget.
type NotificationService struct {
	dispatcher events.Dispatcher
	cfg        config.NotificationConfig
	logger     *zap.Logger
	client     *http.Client
}

// NewNotificationService builds the service.
func NewNotificationService(dispatcher events.Dispatcher, cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// RegisterHandlers subscribes to the order and feedback events.
func (s *NotificationService) RegisterHandlers() {
	for _, eventType := range []events.EventType{
		events.EventOrderSubmitted,
		events.EventOrderStatusChanged,
		events.EventOrderPaid,
		events.EventFeedbackSubmitted,
	} {
		s.dispatcher.Subscribe(eventType, s.handle)
	}
}

func (s *NotificationService) handle(ctx context.Context, event events.Event) error {
	s.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.String("order_id", event.OrderID),
		zap.String("actor_id", event.Actor.UserID),
	)

	if s.cfg.WebhookURL == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("webhook delivery failed", zap.Error(err))
		return err
	}
	_ = resp.Body.Close()
	return nil
}
