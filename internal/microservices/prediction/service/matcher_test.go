package service

import (
	"testing"

	"supply-pulse/internal/domain"
)

func intPtr(v int) *int { return &v }

func modePtr(m domain.ShipmentMode) *domain.ShipmentMode { return &m }

func seasonPtr(s domain.Seasonality) *domain.Seasonality { return &s }

func TestPatternMatches_NilConstraintsAlwaysMatch(t *testing.T) {
	po := domain.PurchaseOrder{OrderVolume: 1, ShipmentMode: domain.ModeAir, Seasonality: domain.SeasonLow}
	if !patternMatches(po, domain.DelayPattern{}) {
		t.Fatalf("pattern with no constraints must match any order")
	}
}

func TestPatternMatches_VolumeBounds(t *testing.T) {
	p := domain.DelayPattern{MinOrderVolume: intPtr(50), MaxOrderVolume: intPtr(100)}

	cases := []struct {
		volume int
		want   bool
	}{
		{49, false},
		{50, true},
		{75, true},
		{100, true},
		{101, false},
	}
	for _, c := range cases {
		got := patternMatches(domain.PurchaseOrder{OrderVolume: c.volume}, p)
		if got != c.want {
			t.Fatalf("volume %d: got %v want %v", c.volume, got, c.want)
		}
	}
}

func TestPatternMatches_ModeAndSeasonalityExact(t *testing.T) {
	p := domain.DelayPattern{ShipmentMode: modePtr(domain.ModeSea), Seasonality: seasonPtr(domain.SeasonPeak)}

	po := domain.PurchaseOrder{ShipmentMode: domain.ModeSea, Seasonality: domain.SeasonPeak}
	if !patternMatches(po, p) {
		t.Fatalf("matching mode and seasonality must pass")
	}

	po.ShipmentMode = domain.ModeAir
	if patternMatches(po, p) {
		t.Fatalf("wrong shipment mode must fail")
	}

	po.ShipmentMode = domain.ModeSea
	po.Seasonality = domain.SeasonNormal
	if patternMatches(po, p) {
		t.Fatalf("wrong seasonality must fail")
	}
}

func TestMatchPatterns_FiltersAndPreservesOrder(t *testing.T) {
	po := domain.PurchaseOrder{OrderVolume: 80, ShipmentMode: domain.ModeSea, Seasonality: domain.SeasonPeak}
	patterns := []domain.DelayPattern{
		{TriggerCondition: "ORDER_VOLUME > 50", MinOrderVolume: intPtr(50)},
		{TriggerCondition: "ORDER_VOLUME > 200", MinOrderVolume: intPtr(200)},
		{TriggerCondition: "SHIPMENT_MODE = SEA", ShipmentMode: modePtr(domain.ModeSea)},
	}

	matched := MatchPatterns(po, patterns)
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
	if matched[0].TriggerCondition != "ORDER_VOLUME > 50" || matched[1].TriggerCondition != "SHIPMENT_MODE = SEA" {
		t.Fatalf("match order not preserved: %v", matched)
	}
}

func TestMatchPatterns_EmptyInputYieldsEmptyNonNil(t *testing.T) {
	matched := MatchPatterns(domain.PurchaseOrder{}, nil)
	if matched == nil || len(matched) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", matched)
	}
}
