package domain

import "time"

// PredictionScoredEvent is published on the predictions fanout exchange each
// time the engine writes a prediction. The alert subscriber derives
// DeliveryAlerts from it; order of risk factors and mitigation actions is
// preserved verbatim from the prediction.
type PredictionScoredEvent struct {
	POID                  string    `json:"po_id"`
	PONumber              string    `json:"po_number"`
	PredictedDeliveryDate time.Time `json:"predicted_delivery_date"`
	DelayProbability      float64   `json:"delay_probability"`
	EstimatedDelayDays    float64   `json:"estimated_delay_days"`
	ConfidenceScore       float64   `json:"confidence_score"`
	RiskFactors           []string  `json:"risk_factors"`
	MitigationActions     []string  `json:"mitigation_actions"`
	ModelVersion          string    `json:"model_version"`
	ScoredAt              time.Time `json:"scored_at"`
}
