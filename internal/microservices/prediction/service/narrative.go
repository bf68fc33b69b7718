package service

import "supply-pulse/internal/domain"

// Mitigation action labels surfaced verbatim to the dashboard.
const (
	ActionContactSupplier   = "Contact supplier immediately for status update"
	ActionContingencyPlan   = "Prepare contingency plan with alternate supplier"
	ActionMonitorPorts      = "Monitor port schedules and shipping delays"
	ActionMoreCommunication = "Increase communication frequency with supplier"
)

const highProbabilityCutoff = 0.6

// MitigationActions returns the applicable actions in fixed order. The gates
// are independent; every one that applies is appended.
func MitigationActions(delayProbability float64, po domain.PurchaseOrder) []string {
	actions := []string{}
	if delayProbability > highProbabilityCutoff {
		actions = append(actions, ActionContactSupplier, ActionContingencyPlan)
	}
	if po.ShipmentMode == domain.ModeSea {
		actions = append(actions, ActionMonitorPorts)
	}
	if po.Category.Complexity == domain.ComplexityHigh {
		actions = append(actions, ActionMoreCommunication)
	}
	return actions
}
