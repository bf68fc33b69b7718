package domain

import "time"

type PredictionRequest struct {
	POID string `json:"po_id"`
}

type PredictionResponse struct {
	POID                  string    `json:"po_id"`
	PredictedDeliveryDate time.Time `json:"predicted_delivery_date"`
	ConfidenceScore       float64   `json:"confidence_score"`
	DelayProbability      float64   `json:"delay_probability"`
	EstimatedDelayDays    float64   `json:"estimated_delay_days"`
	RiskFactors           []string  `json:"risk_factors"`
	MitigationActions     []string  `json:"mitigation_actions"`
	ModelVersion          string    `json:"model_version"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID           string       `json:"supplier_id"`
	CategoryID           string       `json:"category_id"`
	OrderVolume          int          `json:"order_volume"`
	OrderValue           float64      `json:"order_value"`
	ShipmentDistance     float64      `json:"shipment_distance"`
	ShipmentMode         ShipmentMode `json:"shipment_mode"`
	Seasonality          Seasonality  `json:"seasonality"`
	OriginCountry        string       `json:"origin_country"`
	DestinationCountry   string       `json:"destination_country"`
	PromisedDeliveryDate time.Time    `json:"promised_delivery_date"`
}

type CreatePurchaseOrderResponse struct {
	ID       string   `json:"id"`
	PONumber string   `json:"po_number"`
	Status   POStatus `json:"status"`
}

type PurchaseOrderFilter struct {
	Status     POStatus
	IsDelayed  *bool
	SupplierID string
	Page       int
	Limit      int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// PurchaseOrderView is a list row enriched with the latest prediction and the
// number of alerts still active for the order.
type PurchaseOrderView struct {
	PurchaseOrder
	LatestPrediction *ETAPrediction `json:"latest_prediction,omitempty"`
	ActiveAlerts     int            `json:"active_alerts"`
}

type SupplierStats struct {
	TotalOrders      int     `json:"total_orders"`
	DelayedOrders    int     `json:"delayed_orders"`
	AverageDelayDays float64 `json:"average_delay_days"`
	DelayRate        float64 `json:"delay_rate"` // percent
}

type SupplierView struct {
	Supplier
	RecentStats SupplierStats `json:"recent_stats"`
}

type AlertFilter struct {
	Status    AlertStatus
	Severity  AlertSeverity
	AlertType AlertType
	Limit     int
}

type AlertActionRequest struct {
	AlertID string `json:"alert_id"`
	Action  string `json:"action"` // acknowledge | resolve
}

type DashboardSummary struct {
	OpenOrders          int `json:"open_orders"`
	DelayedOrders       int `json:"delayed_orders"`
	ActiveAlerts        int `json:"active_alerts"`
	HighRiskPredictions int `json:"high_risk_predictions"`
}
