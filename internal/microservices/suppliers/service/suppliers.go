package service

import (
	"context"
	"math"

	"supply-pulse/internal/domain"
	"supply-pulse/internal/microservices/suppliers/repository"
)

type SupplierServiceInterface interface {
	ListSuppliers(ctx context.Context) ([]domain.SupplierView, error)
}

type SupplierService struct {
	db repository.SupplierRepositoryInterface
}

func NewSupplierService(db repository.SupplierRepositoryInterface) SupplierServiceInterface {
	return &SupplierService{db: db}
}

func (s *SupplierService) ListSuppliers(ctx context.Context) ([]domain.SupplierView, error) {
	suppliers, err := s.db.ListSuppliersWithStats(ctx)
	if err != nil {
		return nil, err
	}
	for i := range suppliers {
		st := &suppliers[i].RecentStats
		st.AverageDelayDays = math.Round(st.AverageDelayDays*10) / 10
		if st.TotalOrders > 0 {
			st.DelayRate = math.Round(float64(st.DelayedOrders) / float64(st.TotalOrders) * 100)
		}
	}
	return suppliers, nil
}
