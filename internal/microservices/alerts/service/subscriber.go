package service

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/connections/rabbitmq"
	"supply-pulse/internal/domain"
)

const consumerTag = "alert-subscriber"

// Subscriber drains the alerts queue and feeds scored events to the alert
// service. Malformed payloads go to the dead-letter queue; transient
// failures are requeued.
type Subscriber struct {
	svc AlertServiceInterface
	rmq *rabbitmq.Client
	lg  *logger.Logger
}

func NewSubscriber(svc AlertServiceInterface, rmq *rabbitmq.Client, lg *logger.Logger) *Subscriber {
	return &Subscriber{svc: svc, rmq: rmq, lg: lg}
}

func (s *Subscriber) Run(ctx context.Context) error {
	if err := s.rmq.DeclareAll(); err != nil {
		return err
	}

	msgs, err := s.rmq.Consume(rabbitmq.AlertsQueue, consumerTag, 1)
	if err != nil {
		return err
	}
	s.lg.Info("subscriber_started", map[string]any{"queue": rabbitmq.AlertsQueue})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range msgs {
			s.handleDelivery(ctx, d)
		}
	}()

	<-ctx.Done()
	s.lg.Info("graceful_shutdown", nil)
	_ = s.rmq.Channel().Cancel(consumerTag, false)
	<-done
	return nil
}

func (s *Subscriber) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var ev domain.PredictionScoredEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		s.lg.Error("event_decode_failed", err, nil)
		_ = d.Nack(false, false) // unparseable, dead-letter it
		return
	}

	created, err := s.svc.HandleScoredEvent(ctx, ev)
	if err != nil {
		s.lg.Error("event_handling_failed", err, map[string]any{"po_id": ev.POID})
		_ = d.Nack(false, true)
		return
	}
	if created {
		s.lg.Debug("event_processed", map[string]any{"po_id": ev.POID})
	}
	_ = d.Ack(false)
}
