package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/domain"
	"supply-pulse/internal/microservices/alerts/repository"
)

var (
	ErrAlertNotFound     = errors.New("alert not found")
	ErrInvalidTransition = errors.New("invalid alert status transition")
	ErrUnknownAction     = errors.New("unknown alert action")
)

type AlertServiceInterface interface {
	HandleScoredEvent(ctx context.Context, ev domain.PredictionScoredEvent) (created bool, err error)
	ListAlerts(ctx context.Context, f domain.AlertFilter) ([]domain.DeliveryAlert, error)
	Apply(ctx context.Context, req domain.AlertActionRequest) (domain.DeliveryAlert, error)
}

type AlertService struct {
	db        repository.AlertRepositoryInterface
	threshold float64
	lg        *logger.Logger
}

func NewAlertService(db repository.AlertRepositoryInterface, threshold float64, lg *logger.Logger) AlertServiceInterface {
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.7
	}
	return &AlertService{db: db, threshold: threshold, lg: lg}
}

// SeverityForProbability maps a delay probability to an alert severity tier.
func SeverityForProbability(p float64) domain.AlertSeverity {
	switch {
	case p >= 0.9:
		return domain.SeverityCritical
	case p > 0.7:
		return domain.SeverityHigh
	case p > 0.5:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// HandleScoredEvent derives a DELAY_RISK alert from one prediction event.
// Events at or below the threshold are dropped; an order with an ACTIVE alert
// of the same type is not alerted again.
func (s *AlertService) HandleScoredEvent(ctx context.Context, ev domain.PredictionScoredEvent) (bool, error) {
	if ev.POID == "" {
		return false, fmt.Errorf("scored event without po_id")
	}
	if ev.DelayProbability <= s.threshold {
		return false, nil
	}

	exists, err := s.db.HasActiveAlert(ctx, ev.POID, domain.AlertDelayRisk)
	if err != nil {
		return false, fmt.Errorf("check active alert: %w", err)
	}
	if exists {
		s.lg.Debug("alert_suppressed", map[string]any{"po_id": ev.POID, "reason": "active alert exists"})
		return false, nil
	}

	alert := domain.DeliveryAlert{
		ID:        uuid.NewString(),
		POID:      ev.POID,
		AlertType: domain.AlertDelayRisk,
		Severity:  SeverityForProbability(ev.DelayProbability),
		Message: fmt.Sprintf(
			"High risk of delivery delay detected for PO %s: probability %.0f%%, estimated delay %.1f days.",
			ev.PONumber, ev.DelayProbability*100, ev.EstimatedDelayDays),
		RecommendedActions: ev.MitigationActions,
		Status:             domain.AlertActive,
	}
	if err := s.db.InsertAlert(ctx, alert); err != nil {
		return false, fmt.Errorf("insert alert: %w", err)
	}

	s.lg.Info("alert_created", map[string]any{
		"alert_id": alert.ID,
		"po_id":    alert.POID,
		"severity": alert.Severity,
	})
	return true, nil
}

func (s *AlertService) ListAlerts(ctx context.Context, f domain.AlertFilter) ([]domain.DeliveryAlert, error) {
	return s.db.ListAlerts(ctx, f)
}

// Apply performs an acknowledge or resolve action. Transitions only move
// forward: ACTIVE -> ACKNOWLEDGED -> RESOLVED (resolving straight from
// ACTIVE is allowed, going back never is).
func (s *AlertService) Apply(ctx context.Context, req domain.AlertActionRequest) (domain.DeliveryAlert, error) {
	var from []domain.AlertStatus
	var to domain.AlertStatus

	switch req.Action {
	case "acknowledge":
		from, to = []domain.AlertStatus{domain.AlertActive}, domain.AlertAcknowledged
	case "resolve":
		from, to = []domain.AlertStatus{domain.AlertActive, domain.AlertAcknowledged}, domain.AlertResolved
	default:
		return domain.DeliveryAlert{}, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}

	alert, ok, err := s.db.Transition(ctx, req.AlertID, from, to)
	if err != nil {
		return domain.DeliveryAlert{}, err
	}
	if ok {
		return alert, nil
	}

	// Nothing matched: distinguish a missing alert from a backwards move.
	if _, exists, err := s.db.GetAlert(ctx, req.AlertID); err != nil {
		return domain.DeliveryAlert{}, err
	} else if !exists {
		return domain.DeliveryAlert{}, ErrAlertNotFound
	}
	return domain.DeliveryAlert{}, ErrInvalidTransition
}
