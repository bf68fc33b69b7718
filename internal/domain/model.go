package domain

import "time"

type ShipmentMode string

const (
	ModeAir  ShipmentMode = "AIR"
	ModeSea  ShipmentMode = "SEA"
	ModeRoad ShipmentMode = "ROAD"
	ModeRail ShipmentMode = "RAIL"
)

type Seasonality string

const (
	SeasonPeak   Seasonality = "PEAK"
	SeasonNormal Seasonality = "NORMAL"
	SeasonLow    Seasonality = "LOW"
)

type Complexity string

const (
	ComplexityLow    Complexity = "LOW"
	ComplexityMedium Complexity = "MEDIUM"
	ComplexityHigh   Complexity = "HIGH"
)

type POStatus string

const (
	POStatusOpen      POStatus = "OPEN"
	POStatusInTransit POStatus = "IN_TRANSIT"
	POStatusDelivered POStatus = "DELIVERED"
	POStatusDelayed   POStatus = "DELAYED"
	POStatusCancelled POStatus = "CANCELLED"
)

type AlertStatus string

const (
	AlertActive       AlertStatus = "ACTIVE"
	AlertAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertResolved     AlertStatus = "RESOLVED"
)

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

type AlertType string

const (
	AlertDelayRisk     AlertType = "DELAY_RISK"
	AlertCriticalDelay AlertType = "CRITICAL_DELAY"
	AlertSupplierIssue AlertType = "SUPPLIER_ISSUE"
)

type Supplier struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Code                string    `json:"code"`
	Country             string    `json:"country"`
	Region              string    `json:"region"`
	PerformanceScore    float64   `json:"performance_score"`
	AverageDeliveryDays float64   `json:"average_delivery_days"`
	OnTimeDeliveryRate  float64   `json:"on_time_delivery_rate"` // percent, 0-100
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ProductCategory struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Code            string     `json:"code"`
	Complexity      Complexity `json:"complexity"`
	AverageLeadDays int        `json:"average_lead_days"`
	RiskLevel       string     `json:"risk_level"`
}

type PurchaseOrder struct {
	ID                   string          `json:"id"`
	PONumber             string          `json:"po_number"`
	SupplierID           string          `json:"supplier_id"`
	CategoryID           string          `json:"category_id"`
	Supplier             Supplier        `json:"supplier"`
	Category             ProductCategory `json:"category"`
	OrderDate            time.Time       `json:"order_date"`
	PromisedDeliveryDate time.Time       `json:"promised_delivery_date"`
	ActualDeliveryDate   *time.Time      `json:"actual_delivery_date,omitempty"`
	OrderVolume          int             `json:"order_volume"`
	OrderValue           float64         `json:"order_value"`
	ShipmentDistance     float64         `json:"shipment_distance"` // km
	ShipmentMode         ShipmentMode    `json:"shipment_mode"`
	OriginCountry        string          `json:"origin_country"`
	DestinationCountry   string          `json:"destination_country"`
	Status               POStatus        `json:"status"`
	DelayDays            int             `json:"delay_days"`
	IsDelayed            bool            `json:"is_delayed"`
	Seasonality          Seasonality     `json:"seasonality"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// DelayPattern is one historical delay signature scoped to a supplier/category
// pair. A nil constraint field means the pattern applies regardless of the
// order's value on that dimension.
type DelayPattern struct {
	ID               string        `json:"id"`
	SupplierID       string        `json:"supplier_id"`
	CategoryID       string        `json:"category_id"`
	TriggerCondition string        `json:"trigger_condition"`
	MinOrderVolume   *int          `json:"min_order_volume,omitempty"`
	MaxOrderVolume   *int          `json:"max_order_volume,omitempty"`
	ShipmentMode     *ShipmentMode `json:"shipment_mode,omitempty"`
	Seasonality      *Seasonality  `json:"seasonality,omitempty"`
	AverageDelayDays float64       `json:"average_delay_days"`
	DelayProbability float64       `json:"delay_probability"` // 0-1
	Confidence       float64       `json:"confidence"`        // 0-1
	OccurrenceCount  int           `json:"occurrence_count"`
	CreatedAt        time.Time     `json:"created_at"`
}

// ETAPrediction is the single live scoring result for a purchase order.
// po_id carries a unique constraint, so re-scoring replaces the record
// instead of appending a new one.
type ETAPrediction struct {
	ID                    string    `json:"id"`
	POID                  string    `json:"po_id"`
	PredictedDeliveryDate time.Time `json:"predicted_delivery_date"`
	ConfidenceScore       float64   `json:"confidence_score"`
	DelayProbability      float64   `json:"delay_probability"`
	EstimatedDelayDays    float64   `json:"estimated_delay_days"`
	RiskFactors           []string  `json:"risk_factors"`
	MitigationActions     []string  `json:"mitigation_actions"`
	ModelVersion          string    `json:"model_version"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type DeliveryAlert struct {
	ID                 string        `json:"id"`
	POID               string        `json:"po_id"`
	AlertType          AlertType     `json:"alert_type"`
	Severity           AlertSeverity `json:"severity"`
	Message            string        `json:"message"`
	RecommendedActions []string      `json:"recommended_actions"`
	Status             AlertStatus   `json:"status"`
	AcknowledgedAt     *time.Time    `json:"acknowledged_at,omitempty"`
	ResolvedAt         *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
