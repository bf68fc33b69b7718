package service

import (
	"reflect"
	"testing"

	"supply-pulse/internal/domain"
)

func TestMitigationActions_LowRiskSimpleOrder(t *testing.T) {
	po := domain.PurchaseOrder{
		ShipmentMode: domain.ModeAir,
		Category:     domain.ProductCategory{Complexity: domain.ComplexityLow},
	}
	actions := MitigationActions(0.3, po)
	if actions == nil || len(actions) != 0 {
		t.Fatalf("expected empty non-nil action list, got %v", actions)
	}
}

func TestMitigationActions_HighProbabilityAddsEscalationPair(t *testing.T) {
	po := domain.PurchaseOrder{
		ShipmentMode: domain.ModeAir,
		Category:     domain.ProductCategory{Complexity: domain.ComplexityLow},
	}
	want := []string{ActionContactSupplier, ActionContingencyPlan}
	if got := MitigationActions(0.61, po); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMitigationActions_ExactCutoffDoesNotEscalate(t *testing.T) {
	po := domain.PurchaseOrder{ShipmentMode: domain.ModeAir}
	if got := MitigationActions(0.6, po); len(got) != 0 {
		t.Fatalf("0.6 is not above the cutoff, got %v", got)
	}
}

func TestMitigationActions_AllGatesInFixedOrder(t *testing.T) {
	po := domain.PurchaseOrder{
		ShipmentMode: domain.ModeSea,
		Category:     domain.ProductCategory{Complexity: domain.ComplexityHigh},
	}
	want := []string{ActionContactSupplier, ActionContingencyPlan, ActionMonitorPorts, ActionMoreCommunication}
	if got := MitigationActions(0.9, po); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMitigationActions_SeaAndComplexityIndependentOfProbability(t *testing.T) {
	po := domain.PurchaseOrder{
		ShipmentMode: domain.ModeSea,
		Category:     domain.ProductCategory{Complexity: domain.ComplexityHigh},
	}
	want := []string{ActionMonitorPorts, ActionMoreCommunication}
	if got := MitigationActions(0.1, po); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
