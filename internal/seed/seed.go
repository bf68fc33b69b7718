package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/config"
	"supply-pulse/internal/connections/database"
	"supply-pulse/internal/domain"
	"supply-pulse/internal/storage"
)

const day = 24 * time.Hour

// Run wipes and repopulates the database with demo data: five suppliers,
// five categories, fifty delivered orders, three delay patterns and two open
// orders ready to be scored.
func Run(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("seed")
	defer lg.Sync()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := storage.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// FK order: children first.
	for _, table := range []string{
		"delivery_alerts", "eta_predictions", "purchase_orders",
		"delay_patterns", "product_categories", "suppliers",
	} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	lg.Info("data_cleared", nil)

	suppliers, err := seedSuppliers(ctx, pool)
	if err != nil {
		return err
	}
	categories, err := seedCategories(ctx, pool)
	if err != nil {
		return err
	}
	if err := seedHistoricalOrders(ctx, pool, suppliers, categories); err != nil {
		return err
	}
	if err := seedDelayPatterns(ctx, pool, suppliers, categories); err != nil {
		return err
	}
	openPOs, err := seedOpenOrders(ctx, pool, suppliers, categories)
	if err != nil {
		return err
	}

	lg.Info("seed_completed", map[string]any{
		"suppliers":  len(suppliers),
		"categories": len(categories),
		"open_pos":   openPOs,
	})
	return nil
}

func seedSuppliers(ctx context.Context, pool *pgxpool.Pool) ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{
		{Name: "TechSupply Global", Code: "SUP001", Country: "China", Region: "Asia", PerformanceScore: 85, AverageDeliveryDays: 12, OnTimeDeliveryRate: 88},
		{Name: "European Components Ltd", Code: "SUP002", Country: "Germany", Region: "Europe", PerformanceScore: 92, AverageDeliveryDays: 8, OnTimeDeliveryRate: 95},
		{Name: "India Manufacturing Co", Code: "SUP003", Country: "India", Region: "Asia", PerformanceScore: 72, AverageDeliveryDays: 18, OnTimeDeliveryRate: 68},
		{Name: "US Industrial Supply", Code: "SUP004", Country: "USA", Region: "North America", PerformanceScore: 88, AverageDeliveryDays: 6, OnTimeDeliveryRate: 92},
		{Name: "Southeast Asia Trading", Code: "SUP005", Country: "Vietnam", Region: "Asia", PerformanceScore: 65, AverageDeliveryDays: 22, OnTimeDeliveryRate: 55},
	}
	for i := range suppliers {
		suppliers[i].ID = uuid.NewString()
		s := suppliers[i]
		_, err := pool.Exec(ctx, `
            INSERT INTO suppliers
                (id, name, code, country, region, performance_score, average_delivery_days, on_time_delivery_rate)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        `, s.ID, s.Name, s.Code, s.Country, s.Region, s.PerformanceScore, s.AverageDeliveryDays, s.OnTimeDeliveryRate)
		if err != nil {
			return nil, fmt.Errorf("insert supplier %s: %w", s.Code, err)
		}
	}
	return suppliers, nil
}

func seedCategories(ctx context.Context, pool *pgxpool.Pool) ([]domain.ProductCategory, error) {
	categories := []domain.ProductCategory{
		{Name: "IT Hardware", Code: "CAT001", Complexity: domain.ComplexityHigh, AverageLeadDays: 14, RiskLevel: "HIGH"},
		{Name: "Raw Materials", Code: "CAT002", Complexity: domain.ComplexityLow, AverageLeadDays: 7, RiskLevel: "LOW"},
		{Name: "Electronic Components", Code: "CAT003", Complexity: domain.ComplexityMedium, AverageLeadDays: 10, RiskLevel: "MEDIUM"},
		{Name: "Machinery & Equipment", Code: "CAT004", Complexity: domain.ComplexityHigh, AverageLeadDays: 21, RiskLevel: "HIGH"},
		{Name: "Packaging Materials", Code: "CAT005", Complexity: domain.ComplexityLow, AverageLeadDays: 5, RiskLevel: "LOW"},
	}
	for i := range categories {
		categories[i].ID = uuid.NewString()
		c := categories[i]
		_, err := pool.Exec(ctx, `
            INSERT INTO product_categories (id, name, code, complexity, average_lead_days, risk_level)
            VALUES ($1, $2, $3, $4, $5, $6)
        `, c.ID, c.Name, c.Code, c.Complexity, c.AverageLeadDays, c.RiskLevel)
		if err != nil {
			return nil, fmt.Errorf("insert category %s: %w", c.Code, err)
		}
	}
	return categories, nil
}

func seedHistoricalOrders(ctx context.Context, pool *pgxpool.Pool, suppliers []domain.Supplier, categories []domain.ProductCategory) error {
	modes := []domain.ShipmentMode{domain.ModeAir, domain.ModeSea, domain.ModeRoad, domain.ModeRail}
	seasons := []domain.Seasonality{domain.SeasonPeak, domain.SeasonNormal, domain.SeasonLow}
	now := time.Now().UTC()

	for i := 0; i < 50; i++ {
		supplier := suppliers[i%len(suppliers)]
		category := categories[i%len(categories)]

		orderDate := now.Add(-time.Duration(rand.Intn(90*24)) * time.Hour)
		promised := orderDate.Add(time.Duration(rand.Intn(30*24)) * time.Hour)

		delayDays := rand.Intn(3)
		if rand.Float64() < 0.35 {
			delayDays = rand.Intn(15) + 2
		}
		actual := promised.Add(time.Duration(delayDays) * day)
		volume := rand.Intn(200) + 10

		_, err := pool.Exec(ctx, `
            INSERT INTO purchase_orders
                (id, po_number, supplier_id, category_id, order_date, promised_delivery_date,
                 actual_delivery_date, order_volume, order_value, shipment_distance,
                 shipment_mode, origin_country, destination_country, status,
                 delay_days, is_delayed, seasonality)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        `,
			uuid.NewString(), fmt.Sprintf("PO-%d-%05d", now.Year(), i+1),
			supplier.ID, category.ID, orderDate, promised,
			actual, volume, float64(rand.Intn(50000)+5000), float64(rand.Intn(8000)+500),
			modes[rand.Intn(len(modes))], supplier.Country, "India", domain.POStatusDelivered,
			delayDays, delayDays > 2, seasons[rand.Intn(len(seasons))])
		if err != nil {
			return fmt.Errorf("insert historical order %d: %w", i+1, err)
		}
	}
	return nil
}

func seedDelayPatterns(ctx context.Context, pool *pgxpool.Pool, suppliers []domain.Supplier, categories []domain.ProductCategory) error {
	minVolume := 50
	seaMode := domain.ModeSea
	peak := domain.SeasonPeak

	patterns := []domain.DelayPattern{
		{SupplierID: suppliers[0].ID, CategoryID: categories[0].ID, TriggerCondition: "ORDER_VOLUME > 50",
			MinOrderVolume: &minVolume, AverageDelayDays: 7, DelayProbability: 0.65, Confidence: 0.82, OccurrenceCount: 12},
		{SupplierID: suppliers[2].ID, CategoryID: categories[3].ID, TriggerCondition: "SHIPMENT_MODE = SEA",
			ShipmentMode: &seaMode, AverageDelayDays: 12, DelayProbability: 0.78, Confidence: 0.88, OccurrenceCount: 18},
		{SupplierID: suppliers[4].ID, CategoryID: categories[0].ID, TriggerCondition: "SEASONALITY = PEAK",
			Seasonality: &peak, AverageDelayDays: 15, DelayProbability: 0.85, Confidence: 0.91, OccurrenceCount: 22},
	}

	for _, p := range patterns {
		_, err := pool.Exec(ctx, `
            INSERT INTO delay_patterns
                (id, supplier_id, category_id, trigger_condition, min_order_volume, max_order_volume,
                 shipment_mode, seasonality, average_delay_days, delay_probability, confidence, occurrence_count)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        `, uuid.NewString(), p.SupplierID, p.CategoryID, p.TriggerCondition, p.MinOrderVolume, p.MaxOrderVolume,
			p.ShipmentMode, p.Seasonality, p.AverageDelayDays, p.DelayProbability, p.Confidence, p.OccurrenceCount)
		if err != nil {
			return fmt.Errorf("insert delay pattern %q: %w", p.TriggerCondition, err)
		}
	}
	return nil
}

func seedOpenOrders(ctx context.Context, pool *pgxpool.Pool, suppliers []domain.Supplier, categories []domain.ProductCategory) (int, error) {
	now := time.Now().UTC()

	open := []domain.PurchaseOrder{
		{PONumber: fmt.Sprintf("PO-%d-OPEN-001", now.Year()), SupplierID: suppliers[0].ID, CategoryID: categories[0].ID,
			PromisedDeliveryDate: now.Add(14 * day), OrderVolume: 75, OrderValue: 45000, ShipmentDistance: 5000,
			ShipmentMode: domain.ModeAir, OriginCountry: "China", Seasonality: domain.SeasonPeak},
		{PONumber: fmt.Sprintf("PO-%d-OPEN-002", now.Year()), SupplierID: suppliers[2].ID, CategoryID: categories[3].ID,
			PromisedDeliveryDate: now.Add(21 * day), OrderVolume: 30, OrderValue: 120000, ShipmentDistance: 3500,
			ShipmentMode: domain.ModeSea, OriginCountry: "India", Seasonality: domain.SeasonNormal},
	}

	for _, po := range open {
		_, err := pool.Exec(ctx, `
            INSERT INTO purchase_orders
                (id, po_number, supplier_id, category_id, order_date, promised_delivery_date,
                 order_volume, order_value, shipment_distance, shipment_mode,
                 origin_country, destination_country, status, seasonality)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        `, uuid.NewString(), po.PONumber, po.SupplierID, po.CategoryID, now, po.PromisedDeliveryDate,
			po.OrderVolume, po.OrderValue, po.ShipmentDistance, po.ShipmentMode,
			po.OriginCountry, "India", domain.POStatusOpen, po.Seasonality)
		if err != nil {
			return 0, fmt.Errorf("insert open order %s: %w", po.PONumber, err)
		}
	}
	return len(open), nil
}
