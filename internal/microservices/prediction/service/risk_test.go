package service

import (
	"math"
	"reflect"
	"testing"

	"supply-pulse/internal/domain"
)

func TestAggregateRisk_BaselineWhenNothingMatches(t *testing.T) {
	po := domain.PurchaseOrder{
		OrderVolume:      10,
		ShipmentDistance: 100,
		ShipmentMode:     domain.ModeAir,
		Supplier:         domain.Supplier{OnTimeDeliveryRate: 95},
		Category:         domain.ProductCategory{Complexity: domain.ComplexityLow},
	}

	r := AggregateRisk(po, nil)
	if r.EstimatedDelayDays != 0 || r.DelayProbability != 0 {
		t.Fatalf("baseline must be zero delay and probability, got %+v", r)
	}
	if r.ConfidenceScore != 0.5 {
		t.Fatalf("baseline confidence must be 0.5, got %v", r.ConfidenceScore)
	}
	if r.RiskFactors == nil || len(r.RiskFactors) != 0 {
		t.Fatalf("risk factors must be empty non-nil, got %v", r.RiskFactors)
	}
}

func TestAggregateRisk_PatternsCombineByMaximumNotSum(t *testing.T) {
	po := domain.PurchaseOrder{
		Supplier: domain.Supplier{OnTimeDeliveryRate: 95},
		Category: domain.ProductCategory{Complexity: domain.ComplexityLow},
	}
	matched := []domain.DelayPattern{
		{TriggerCondition: "A", AverageDelayDays: 7, DelayProbability: 0.65, Confidence: 0.82},
		{TriggerCondition: "B", AverageDelayDays: 12, DelayProbability: 0.78, Confidence: 0.88},
		{TriggerCondition: "C", AverageDelayDays: 3, DelayProbability: 0.40, Confidence: 0.95},
	}

	r := AggregateRisk(po, matched)
	if r.EstimatedDelayDays != 12 {
		t.Fatalf("expected max delay 12, got %v", r.EstimatedDelayDays)
	}
	if r.DelayProbability != 0.78 {
		t.Fatalf("expected max probability 0.78, got %v", r.DelayProbability)
	}
	if r.ConfidenceScore != 0.95 {
		t.Fatalf("expected max confidence 0.95, got %v", r.ConfidenceScore)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(r.RiskFactors, want) {
		t.Fatalf("expected factors %v, got %v", want, r.RiskFactors)
	}
}

func TestAggregateRisk_ConfidenceNeverDropsBelowBaseline(t *testing.T) {
	matched := []domain.DelayPattern{
		{TriggerCondition: "weak", AverageDelayDays: 2, DelayProbability: 0.3, Confidence: 0.2},
	}
	r := AggregateRisk(domain.PurchaseOrder{
		Supplier: domain.Supplier{OnTimeDeliveryRate: 95},
	}, matched)
	if r.ConfidenceScore != 0.5 {
		t.Fatalf("low-confidence pattern must not pull confidence below 0.5, got %v", r.ConfidenceScore)
	}
}

func TestAggregateRisk_StaticAdjustmentsStackInOrder(t *testing.T) {
	po := domain.PurchaseOrder{
		OrderVolume:      150,
		ShipmentDistance: 6000,
		Supplier:         domain.Supplier{OnTimeDeliveryRate: 60},
		Category:         domain.ProductCategory{Complexity: domain.ComplexityHigh},
	}

	r := AggregateRisk(po, nil)
	if math.Abs(r.DelayProbability-0.40) > 1e-9 {
		t.Fatalf("expected probability 0.40 from the four adjustments, got %v", r.DelayProbability)
	}
	want := []string{FactorLowOnTimeRate, FactorHighComplexity, FactorLargeVolume, FactorLongDistance}
	if !reflect.DeepEqual(r.RiskFactors, want) {
		t.Fatalf("expected factors %v, got %v", want, r.RiskFactors)
	}
}

func TestAggregateRisk_PatternPlusAdjustments(t *testing.T) {
	po := domain.PurchaseOrder{
		OrderVolume: 30,
		Supplier:    domain.Supplier{OnTimeDeliveryRate: 55},
		Category:    domain.ProductCategory{Complexity: domain.ComplexityLow},
	}
	matched := []domain.DelayPattern{
		{TriggerCondition: "SHIPMENT_MODE = SEA", AverageDelayDays: 12, DelayProbability: 0.78, Confidence: 0.88},
	}

	r := AggregateRisk(po, matched)
	if math.Abs(r.DelayProbability-0.93) > 1e-9 {
		t.Fatalf("expected 0.78 + 0.15 = 0.93, got %v", r.DelayProbability)
	}
	want := []string{"SHIPMENT_MODE = SEA", FactorLowOnTimeRate}
	if !reflect.DeepEqual(r.RiskFactors, want) {
		t.Fatalf("expected factors %v, got %v", want, r.RiskFactors)
	}
}

func TestAggregateRisk_ProbabilityCappedAtOne(t *testing.T) {
	po := domain.PurchaseOrder{
		OrderVolume:      500,
		ShipmentDistance: 9000,
		Supplier:         domain.Supplier{OnTimeDeliveryRate: 40},
		Category:         domain.ProductCategory{Complexity: domain.ComplexityHigh},
	}
	matched := []domain.DelayPattern{
		{TriggerCondition: "near certain", AverageDelayDays: 20, DelayProbability: 0.95, Confidence: 0.9},
	}

	r := AggregateRisk(po, matched)
	if r.DelayProbability != 1 {
		t.Fatalf("probability must cap at 1, got %v", r.DelayProbability)
	}
	// All factor labels are still recorded even once the cap is reached.
	if len(r.RiskFactors) != 5 {
		t.Fatalf("expected 5 risk factors, got %v", r.RiskFactors)
	}
}
