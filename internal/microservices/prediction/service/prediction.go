package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/connections/rabbitmq"
	"supply-pulse/internal/domain"
	"supply-pulse/internal/microservices/prediction/repository"
)

// ModelVersion tags every newly created prediction with the scoring ruleset
// version. Re-scoring an order keeps the version it was created with.
const ModelVersion = "1.0.0"

var (
	ErrValidation = errors.New("invalid prediction request")
	ErrNotFound   = errors.New("purchase order not found")
)

// Publisher is the broker-facing slice of the rabbitmq client the service
// needs; nil disables event publishing.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte) error
}

type PredictionServiceInterface interface {
	Predict(ctx context.Context, poID string) (domain.ETAPrediction, error)
	ListPredictions(ctx context.Context, poID string, limit int) ([]domain.ETAPrediction, error)
}

type PredictionService struct {
	db  repository.PredictionRepositoryInterface
	pub Publisher
	lg  *logger.Logger
}

func NewPredictionService(db repository.PredictionRepositoryInterface, pub Publisher, lg *logger.Logger) PredictionServiceInterface {
	return &PredictionService{db: db, pub: pub, lg: lg}
}

// Predict runs the scoring pipeline for one purchase order: match patterns,
// aggregate risk, derive mitigation actions, upsert the single live
// prediction, publish the scored event. Nothing is persisted if any step
// before the upsert fails.
func (s *PredictionService) Predict(ctx context.Context, poID string) (domain.ETAPrediction, error) {
	if strings.TrimSpace(poID) == "" {
		return domain.ETAPrediction{}, fmt.Errorf("%w: po_id is required", ErrValidation)
	}
	if _, err := uuid.Parse(poID); err != nil {
		return domain.ETAPrediction{}, fmt.Errorf("%w: po_id must be a UUID", ErrValidation)
	}

	po, ok, err := s.db.GetPurchaseOrder(ctx, poID)
	if err != nil {
		return domain.ETAPrediction{}, fmt.Errorf("load purchase order: %w", err)
	}
	if !ok {
		return domain.ETAPrediction{}, ErrNotFound
	}

	patterns, err := s.db.ListDelayPatterns(ctx, po.SupplierID, po.CategoryID)
	if err != nil {
		return domain.ETAPrediction{}, fmt.Errorf("load delay patterns: %w", err)
	}

	matched := MatchPatterns(po, patterns)
	risk := AggregateRisk(po, matched)
	actions := MitigationActions(risk.DelayProbability, po)

	prediction := domain.ETAPrediction{
		ID:                    uuid.NewString(),
		POID:                  po.ID,
		PredictedDeliveryDate: po.PromisedDeliveryDate.Add(delayDuration(risk.EstimatedDelayDays)),
		ConfidenceScore:       risk.ConfidenceScore,
		DelayProbability:      risk.DelayProbability,
		EstimatedDelayDays:    risk.EstimatedDelayDays,
		RiskFactors:           risk.RiskFactors,
		MitigationActions:     actions,
		ModelVersion:          ModelVersion,
	}

	saved, err := s.db.UpsertPrediction(ctx, prediction)
	if errors.Is(err, repository.ErrConflict) {
		// Lost the insert race to a concurrent scoring of the same order;
		// the row exists now, so a single retry resolves to an update.
		saved, err = s.db.UpsertPrediction(ctx, prediction)
	}
	if err != nil {
		return domain.ETAPrediction{}, fmt.Errorf("store prediction: %w", err)
	}

	s.publishScored(ctx, po, saved)
	return saved, nil
}

func (s *PredictionService) ListPredictions(ctx context.Context, poID string, limit int) ([]domain.ETAPrediction, error) {
	if poID != "" {
		if _, err := uuid.Parse(poID); err != nil {
			return nil, fmt.Errorf("%w: po_id must be a UUID", ErrValidation)
		}
	}
	return s.db.ListPredictions(ctx, poID, limit)
}

// publishScored is best-effort: alert derivation must not fail a scoring
// request that already committed its prediction.
func (s *PredictionService) publishScored(ctx context.Context, po domain.PurchaseOrder, p domain.ETAPrediction) {
	if s.pub == nil {
		return
	}

	event := domain.PredictionScoredEvent{
		POID:                  p.POID,
		PONumber:              po.PONumber,
		PredictedDeliveryDate: p.PredictedDeliveryDate,
		DelayProbability:      p.DelayProbability,
		EstimatedDelayDays:    p.EstimatedDelayDays,
		ConfidenceScore:       p.ConfidenceScore,
		RiskFactors:           p.RiskFactors,
		MitigationActions:     p.MitigationActions,
		ModelVersion:          p.ModelVersion,
		ScoredAt:              time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.lg.Error("prediction_event_marshal_failed", err, map[string]any{"po_id": p.POID})
		return
	}
	if err := s.pub.Publish(ctx, rabbitmq.PredictionsExchange, p.POID, body); err != nil {
		s.lg.Error("prediction_event_publish_failed", err, map[string]any{"po_id": p.POID})
		return
	}
	s.lg.Debug("prediction_event_published", map[string]any{"po_id": p.POID, "delay_probability": p.DelayProbability})
}

// delayDuration converts estimated delay days using a fixed 24h day.
func delayDuration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}
