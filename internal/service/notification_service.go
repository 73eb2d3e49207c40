package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/Singh-Prajwal/rental/internal/config"
	"github.com/Singh-Prajwal/rental/internal/events"
	"github.com/Singh-Prajwal/rental/internal/persistence"
)

// NotificationGateway delivers guest-facing messages. It may fail or be
// slow; failures never affect committed entity state.
type NotificationGateway interface {
	SendVisitScheduled(ctx context.Context, payload events.VisitScheduledPayload) error
}

// NotificationService listens for domain events and drives the gateway.
// Failed deliveries are pushed onto a Redis list for retry.
type NotificationService struct {
	dispatcher events.Dispatcher
	gateway    NotificationGateway
	queue      *persistence.Redis
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, gateway NotificationGateway, queue *persistence.Redis, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		gateway:    gateway,
		queue:      queue,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventVisitScheduled, n.handleVisitScheduled)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventBookingStatusChanged, n.handleBookingStatusChanged)
}

func (n *NotificationService) handleVisitScheduled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.VisitScheduledPayload)
	if !ok {
		n.logger.Warn("visit_scheduled event with unexpected payload", zap.String("event_id", event.ID))
		return nil
	}
	if err := n.gateway.SendVisitScheduled(ctx, payload); err != nil {
		n.logger.Warn("guest notification failed; queued for retry",
			zap.String("visit_id", payload.VisitID),
			zap.String("ticket_id", payload.TicketID),
			zap.Error(err))
		n.enqueueRetry(ctx, payload)
	}
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged", zap.String("ticket_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBookingStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("BookingStatusChanged", zap.String("booking_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) enqueueRetry(ctx context.Context, payload events.VisitScheduledPayload) {
	if n.queue == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("marshal retry payload", zap.Error(err))
		return
	}
	if err := n.queue.Enqueue(ctx, n.cfg.RetryQueueKey, string(raw)); err != nil {
		n.logger.Error("enqueue retry payload", zap.Error(err))
	}
}

// RetryPending drains the retry queue once, re-attempting delivery for each
// entry and re-queueing entries that fail again. Returns the number of
// successful deliveries.
func (n *NotificationService) RetryPending(ctx context.Context) int {
	if n.queue == nil {
		return 0
	}
	delivered := 0
	for {
		raw, err := n.queue.DequeueTail(ctx, n.cfg.RetryQueueKey)
		if err != nil {
			if err != persistence.ErrQueueEmpty {
				n.logger.Warn("dequeue retry payload", zap.Error(err))
			}
			return delivered
		}
		var payload events.VisitScheduledPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			n.logger.Error("discarding malformed retry payload", zap.Error(err))
			continue
		}
		if err := n.gateway.SendVisitScheduled(ctx, payload); err != nil {
			n.enqueueRetry(ctx, payload)
			return delivered
		}
		delivered++
	}
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}

// LogGateway is the default gateway; it records the delivery in the log
// stream in place of a real email/SMS provider.
type LogGateway struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewLogGateway creates the default gateway.
func NewLogGateway(logger *zap.Logger, cfg config.NotificationConfig) *LogGateway {
	return &LogGateway{logger: logger, cfg: cfg}
}

// SendVisitScheduled logs the guest message.
func (g *LogGateway) SendVisitScheduled(ctx context.Context, payload events.VisitScheduledPayload) error {
	g.logger.Info("guest notification: technician visit scheduled",
		zap.String("from", g.cfg.EmailFrom),
		zap.String("booking_id", payload.BookingID),
		zap.String("ticket_id", payload.TicketID),
		zap.String("technician", payload.TechnicianName),
		zap.Time("scheduled_at", payload.ScheduledAt))
	return nil
}
