package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type reportService struct {
	store repository.Store
}

func NewReportService(store repository.Store) ReportService {
	return &reportService{store: store}
}

func (s *reportService) FleetReport(ctx context.Context) (*domain.FleetReport, error) {
	return s.store.Reports().FleetReport(ctx)
}

func (s *reportService) RevenueReport(ctx context.Context) (*domain.RevenueReport, error) {
	return s.store.Reports().RevenueReport(ctx)
}

func (s *reportService) CustomerActivityReport(ctx context.Context) (*domain.CustomerActivityReport, error) {
	return s.store.Reports().CustomerActivityReport(ctx)
}
