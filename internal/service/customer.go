package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type customerService struct {
	store repository.Store
}

func NewCustomerService(store repository.Store) CustomerService {
	return &customerService{store: store}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.store.Customers().List(ctx)
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.store.Customers().GetByID(ctx, id)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.FirstName == "" || customer.LastName == "" {
		return domain.NewValidationError("first name and last name are required")
	}
	return s.store.Customers().Update(ctx, customer)
}

// SetCustomerActive deactivates or reactivates the login behind the profile.
// The customer row itself is never deleted; history stays intact.
func (s *customerService) SetCustomerActive(ctx context.Context, id int32, active bool) error {
	customer, err := s.store.Customers().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Users().SetActive(ctx, customer.UserID, active); err != nil {
		return err
	}
	logger.Info("customer active flag changed", "customer_id", id, "active", active)
	return nil
}
