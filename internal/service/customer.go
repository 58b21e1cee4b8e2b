package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maeum-crm/backend/internal/db"
	"github.com/maeum-crm/backend/internal/model"
)

// CustomerService - 로그인 사용자 소유 고객 관리
type CustomerService struct {
	repo   *db.Postgres
	logger *slog.Logger
}

func NewCustomerService(repo *db.Postgres, logger *slog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) List(ctx context.Context, userID int64) ([]model.Customer, error) {
	return s.repo.ListCustomers(ctx, userID)
}

func (s *CustomerService) Create(ctx context.Context, userID int64, req model.CustomerCreateRequest) (*model.Customer, error) {
	customer, err := s.repo.CreateCustomer(ctx, &model.Customer{
		UserID:      userID,
		Name:        req.Name,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("customer created", "user_id", userID, "customer_id", customer.ID)
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, userID, customerID int64) (*model.Customer, error) {
	customer, err := s.repo.GetCustomer(ctx, customerID, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, userID, customerID int64, req model.CustomerUpdateRequest) (*model.Customer, error) {
	customer, err := s.Get(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Gender != nil {
		customer.Gender = *req.Gender
	}
	if req.PhoneNumber != nil {
		customer.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}

	updated, err := s.repo.UpdateCustomer(ctx, customer)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return updated, nil
}

func (s *CustomerService) UpdateSecurity(ctx context.Context, userID, customerID int64, req model.CustomerSecurityUpdateRequest) (*model.Customer, error) {
	customer, err := s.Get(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}

	isKorean := customer.Security.IsKorean
	if req.IsKorean != nil {
		isKorean = *req.IsKorean
	}
	key := customer.Security.Key
	if req.Key != nil {
		key = *req.Key
	}

	updated, err := s.repo.UpdateCustomerSecurity(ctx, customerID, userID, isKorean, key)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update customer security: %w", err)
	}

	s.logger.Info("customer security updated", "user_id", userID, "customer_id", customerID)
	return updated, nil
}

func (s *CustomerService) Delete(ctx context.Context, userID, customerID int64) error {
	if err := s.repo.DeleteCustomer(ctx, customerID, userID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	s.logger.Info("customer deleted", "user_id", userID, "customer_id", customerID)
	return nil
}
