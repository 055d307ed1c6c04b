package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/au-connect/internal/config"
	"github.com/spec-kit/au-connect/internal/events"
)

// Publisher forwards serialized activity to an external channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) (int64, error)
}

// ActivityService logs domain events and fans them out to a pub/sub channel.
type ActivityService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	logger     *zap.Logger
	cfg        config.ActivityConfig
}

// NewActivityService creates the service. A nil publisher only logs.
func NewActivityService(dispatcher events.Dispatcher, publisher Publisher, logger *zap.Logger, cfg config.ActivityConfig) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// ActivityTypes lists every event the service subscribes to.
var ActivityTypes = []events.EventType{
	events.EventMembershipJoined,
	events.EventMembershipRemoved,
	events.EventRegistrationCreated,
	events.EventRegistrationRemoved,
	events.EventClubDeleted,
	events.EventEventDeleted,
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range ActivityTypes {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *ActivityService) handle(ctx context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	a.forward(ctx, event)
	return nil
}

// forward never returns an error: activity delivery is best effort.
func (a *ActivityService) forward(ctx context.Context, event events.Event) {
	if !a.cfg.Enabled || a.publisher == nil || a.cfg.Channel == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		a.logger.Warn("encode activity", zap.String("event_type", string(event.Type)), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.PublishTimeout())
	defer cancel()
	receivers, err := a.publisher.Publish(ctx, a.cfg.Channel, body)
	if err != nil {
		a.logger.Warn("forward activity",
			zap.String("channel", a.cfg.Channel),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return
	}
	a.logger.Debug("activity forwarded",
		zap.String("channel", a.cfg.Channel),
		zap.String("event_type", string(event.Type)),
		zap.Int64("receivers", receivers))
}
