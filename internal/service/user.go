package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/maeum-crm/backend/internal/db"
	"github.com/maeum-crm/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// UserService - 회원가입과 본인 정보 관리
type UserService struct {
	repo   *db.Postgres
	logger *slog.Logger
}

func NewUserService(repo *db.Postgres, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) SignUp(ctx context.Context, req model.SignUpRequest) (*model.User, error) {
	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidInput
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(passwordHash),
		KeyHash:      hashKey(req.Key),
		Name:         req.Name,
		Gender:       req.Gender,
		DateOfBirth:  dateOfBirth,
		Address:      req.Address,
		IsActive:     true,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			s.logger.Warn("signup failed", "reason", "duplicate phone number")
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("signup succeeded", "user_id", user.ID)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies the non-nil fields. Password and key are re-hashed,
// never stored or echoed as given.
func (s *UserService) UpdateUser(ctx context.Context, userID int64, req model.UserUpdateRequest) (*model.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		dateOfBirth, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidInput
		}
		user.DateOfBirth = dateOfBirth
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Password != nil {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(passwordHash)
		s.logger.Info("password updated", "user_id", userID)
	}
	if req.Key != nil {
		user.KeyHash = hashKey(*req.Key)
		s.logger.Info("key updated", "user_id", userID)
	}

	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

// 보조 key는 복원할 필요가 없어 sha256 단방향 해시로 저장한다
func hashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
