package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/domain"
)

type fakeAlertRepo struct {
	alerts map[string]domain.DeliveryAlert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: map[string]domain.DeliveryAlert{}}
}

func (f *fakeAlertRepo) InsertAlert(_ context.Context, a domain.DeliveryAlert) error {
	f.alerts[a.ID] = a
	return nil
}

func (f *fakeAlertRepo) GetAlert(_ context.Context, id string) (domain.DeliveryAlert, bool, error) {
	a, ok := f.alerts[id]
	return a, ok, nil
}

func (f *fakeAlertRepo) ListAlerts(_ context.Context, _ domain.AlertFilter) ([]domain.DeliveryAlert, error) {
	out := []domain.DeliveryAlert{}
	for _, a := range f.alerts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAlertRepo) HasActiveAlert(_ context.Context, poID string, t domain.AlertType) (bool, error) {
	for _, a := range f.alerts {
		if a.POID == poID && a.AlertType == t && a.Status == domain.AlertActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAlertRepo) Transition(_ context.Context, id string, from []domain.AlertStatus, to domain.AlertStatus) (domain.DeliveryAlert, bool, error) {
	a, ok := f.alerts[id]
	if !ok {
		return domain.DeliveryAlert{}, false, nil
	}
	for _, s := range from {
		if a.Status == s {
			a.Status = to
			f.alerts[id] = a
			return a, true, nil
		}
	}
	return domain.DeliveryAlert{}, false, nil
}

func scoredEvent(probability float64) domain.PredictionScoredEvent {
	return domain.PredictionScoredEvent{
		POID:               uuid.NewString(),
		PONumber:           "PO-2026-00007",
		DelayProbability:   probability,
		EstimatedDelayDays: 12,
		MitigationActions:  []string{"Contact supplier immediately for status update"},
	}
}

func TestSeverityForProbability(t *testing.T) {
	cases := []struct {
		p    float64
		want domain.AlertSeverity
	}{
		{0.95, domain.SeverityCritical},
		{0.9, domain.SeverityCritical},
		{0.89, domain.SeverityHigh},
		{0.71, domain.SeverityHigh},
		{0.7, domain.SeverityMedium},
		{0.51, domain.SeverityMedium},
		{0.5, domain.SeverityLow},
		{0.1, domain.SeverityLow},
	}
	for _, c := range cases {
		if got := SeverityForProbability(c.p); got != c.want {
			t.Fatalf("probability %v: got %s want %s", c.p, got, c.want)
		}
	}
}

func TestHandleScoredEvent_BelowThresholdIsDropped(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewAlertService(repo, 0.7, logger.New("test"))

	created, err := svc.HandleScoredEvent(context.Background(), scoredEvent(0.7))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if created || len(repo.alerts) != 0 {
		t.Fatalf("probability at the threshold must not alert")
	}
}

func TestHandleScoredEvent_CreatesAlertAboveThreshold(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewAlertService(repo, 0.7, logger.New("test"))

	ev := scoredEvent(0.85)
	created, err := svc.HandleScoredEvent(context.Background(), ev)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !created || len(repo.alerts) != 1 {
		t.Fatalf("expected one alert, created=%v alerts=%d", created, len(repo.alerts))
	}

	var alert domain.DeliveryAlert
	for _, a := range repo.alerts {
		alert = a
	}
	if alert.POID != ev.POID || alert.AlertType != domain.AlertDelayRisk {
		t.Fatalf("unexpected alert identity: %+v", alert)
	}
	if alert.Severity != domain.SeverityHigh {
		t.Fatalf("expected HIGH severity for 0.85, got %s", alert.Severity)
	}
	if alert.Status != domain.AlertActive {
		t.Fatalf("new alerts must start ACTIVE, got %s", alert.Status)
	}
	if len(alert.RecommendedActions) != 1 || alert.RecommendedActions[0] != ev.MitigationActions[0] {
		t.Fatalf("recommended actions must carry over verbatim: %v", alert.RecommendedActions)
	}
}

func TestHandleScoredEvent_SuppressesDuplicateActiveAlert(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewAlertService(repo, 0.7, logger.New("test"))

	ev := scoredEvent(0.85)
	if _, err := svc.HandleScoredEvent(context.Background(), ev); err != nil {
		t.Fatalf("first handle: %v", err)
	}
	created, err := svc.HandleScoredEvent(context.Background(), ev)
	if err != nil {
		t.Fatalf("second handle: %v", err)
	}
	if created || len(repo.alerts) != 1 {
		t.Fatalf("re-scoring with an active alert must not duplicate it")
	}
}

func TestHandleScoredEvent_ResolvedAlertAllowsNewOne(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewAlertService(repo, 0.7, logger.New("test"))

	ev := scoredEvent(0.85)
	if _, err := svc.HandleScoredEvent(context.Background(), ev); err != nil {
		t.Fatalf("first handle: %v", err)
	}
	for id, a := range repo.alerts {
		a.Status = domain.AlertResolved
		repo.alerts[id] = a
	}

	created, err := svc.HandleScoredEvent(context.Background(), ev)
	if err != nil {
		t.Fatalf("second handle: %v", err)
	}
	if !created || len(repo.alerts) != 2 {
		t.Fatalf("a resolved alert must not suppress a fresh one")
	}
}

func TestApply_AcknowledgeThenResolve(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewAlertService(repo, 0.7, logger.New("test"))

	id := uuid.NewString()
	repo.alerts[id] = domain.DeliveryAlert{ID: id, Status: domain.AlertActive}

	a, err := svc.Apply(context.Background(), domain.AlertActionRequest{AlertID: id, Action: "acknowledge"})
	if err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if a.Status != domain.AlertAcknowledged {
		t.Fatalf("expected ACKNOWLEDGED, got %s", a.Status)
	}

	a, err = svc.Apply(context.Background(), domain.AlertActionRequest{AlertID: id, Action: "resolve"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if a.Status != domain.AlertResolved {
		t.Fatalf("expected RESOLVED, got %s", a.Status)
	}
}

func TestApply_ResolveStraightFromActive(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewAlertService(repo, 0.7, logger.New("test"))

	id := uuid.NewString()
	repo.alerts[id] = domain.DeliveryAlert{ID: id, Status: domain.AlertActive}

	a, err := svc.Apply(context.Background(), domain.AlertActionRequest{AlertID: id, Action: "resolve"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if a.Status != domain.AlertResolved {
		t.Fatalf("expected RESOLVED, got %s", a.Status)
	}
}

func TestApply_BackwardsTransitionRejected(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewAlertService(repo, 0.7, logger.New("test"))

	id := uuid.NewString()
	repo.alerts[id] = domain.DeliveryAlert{ID: id, Status: domain.AlertResolved}

	_, err := svc.Apply(context.Background(), domain.AlertActionRequest{AlertID: id, Action: "acknowledge"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApply_MissingAlertAndUnknownAction(t *testing.T) {
	svc := NewAlertService(newFakeAlertRepo(), 0.7, logger.New("test"))

	_, err := svc.Apply(context.Background(), domain.AlertActionRequest{AlertID: uuid.NewString(), Action: "resolve"})
	if !errors.Is(err, ErrAlertNotFound) {
		t.Fatalf("expected ErrAlertNotFound, got %v", err)
	}

	_, err = svc.Apply(context.Background(), domain.AlertActionRequest{AlertID: uuid.NewString(), Action: "escalate"})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}
