package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/security"
)

type authService struct {
	store    repository.Store
	tokenMgr security.TokenManager
}

func NewAuthService(store repository.Store, tokenMgr security.TokenManager) AuthService {
	return &authService{store: store, tokenMgr: tokenMgr}
}

// Register creates the user account and the customer profile atomically.
// Either both rows exist afterwards or neither does.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*domain.User, *domain.Customer, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, "", domain.NewValidationError("a valid email address is required")
	}
	if len(req.Password) < 8 {
		return nil, nil, "", domain.NewValidationError("password must be at least 8 characters")
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, nil, "", domain.NewValidationError("first name and last name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, "", domain.WrapInternal("failed to hash password", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.UserRoleCustomer,
		IsActive:     true,
	}
	customer := &domain.Customer{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Address:        req.Address,
		DriversLicense: req.DriversLicense,
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		customer.UserID = user.ID
		return tx.Customers().Create(ctx, customer)
	})
	if err != nil {
		return nil, nil, "", err
	}

	token, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, nil, "", domain.WrapInternal("failed to generate access token", err)
	}

	logger.Info("customer registered", "user_id", user.ID, "customer_id", customer.ID)
	return user, customer, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", domain.NewValidationError("email and password are required")
	}

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		// Same message whether the account exists or the password is wrong.
		if domain.CodeOf(err) == domain.ErrCodeNotFound {
			return nil, "", domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.NewUnauthorizedError("invalid email or password")
	}
	if !user.IsActive {
		return nil, "", domain.NewUnauthorizedError("account is deactivated")
	}

	token, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", domain.WrapInternal("failed to generate access token", err)
	}

	logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return user, token, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.Customer, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	// Staff and manager accounts have no customer profile.
	if user.Role != domain.UserRoleCustomer {
		return user, nil, nil
	}
	customer, err := s.store.Customers().GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, customer, nil
}
