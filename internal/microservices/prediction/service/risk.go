package service

import (
	"math"

	"supply-pulse/internal/domain"
)

// Risk factor labels surfaced verbatim to the dashboard.
const (
	FactorLowOnTimeRate  = "Low supplier on-time delivery rate"
	FactorHighComplexity = "High product complexity"
	FactorLargeVolume    = "Large order volume"
	FactorLongDistance   = "Long shipment distance"
)

const (
	baselineConfidence = 0.5

	lowOnTimeRateCutoff = 70.0
	largeVolumeCutoff   = 100
	longDistanceKm      = 5000.0

	lowOnTimeRateDelta  = 0.15
	highComplexityDelta = 0.10
	largeVolumeDelta    = 0.10
	longDistanceDelta   = 0.05
)

// RiskAssessment holds the aggregated scalars plus the risk factor labels in
// discovery order.
type RiskAssessment struct {
	EstimatedDelayDays float64
	DelayProbability   float64
	ConfidenceScore    float64
	RiskFactors        []string
}

// AggregateRisk combines matched patterns and static order attributes.
// Patterns contribute by maximum, not by sum: overlapping signals must not
// double-penalize an order. Confidence starts at 0.5 and only max-takes
// upward, so it never drops below the baseline. The four static checks run
// after the patterns, in fixed order, each capping probability at 1.
func AggregateRisk(po domain.PurchaseOrder, matched []domain.DelayPattern) RiskAssessment {
	r := RiskAssessment{
		ConfidenceScore: baselineConfidence,
		RiskFactors:     []string{},
	}

	for _, p := range matched {
		r.EstimatedDelayDays = math.Max(r.EstimatedDelayDays, p.AverageDelayDays)
		r.DelayProbability = math.Max(r.DelayProbability, p.DelayProbability)
		r.ConfidenceScore = math.Max(r.ConfidenceScore, p.Confidence)
		r.RiskFactors = append(r.RiskFactors, p.TriggerCondition)
	}

	if po.Supplier.OnTimeDeliveryRate < lowOnTimeRateCutoff {
		r.bump(FactorLowOnTimeRate, lowOnTimeRateDelta)
	}
	if po.Category.Complexity == domain.ComplexityHigh {
		r.bump(FactorHighComplexity, highComplexityDelta)
	}
	if po.OrderVolume > largeVolumeCutoff {
		r.bump(FactorLargeVolume, largeVolumeDelta)
	}
	if po.ShipmentDistance > longDistanceKm {
		r.bump(FactorLongDistance, longDistanceDelta)
	}

	return r
}

func (r *RiskAssessment) bump(label string, delta float64) {
	r.RiskFactors = append(r.RiskFactors, label)
	r.DelayProbability = math.Min(1, r.DelayProbability+delta)
}
