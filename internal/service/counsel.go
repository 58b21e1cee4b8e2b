package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maeum-crm/backend/internal/db"
	"github.com/maeum-crm/backend/internal/model"
)

// CounselService - 상담 기록과 상담 문서 관리. 모든 조회/변경은 상담의
// 고객을 소유한 사용자로 범위가 제한된다.
type CounselService struct {
	repo   *db.Postgres
	logger *slog.Logger
}

func NewCounselService(repo *db.Postgres, logger *slog.Logger) *CounselService {
	return &CounselService{repo: repo, logger: logger}
}

func (s *CounselService) List(ctx context.Context, userID int64) ([]model.Counsel, error) {
	return s.repo.ListCounsels(ctx, userID)
}

// Create rejects counsels against customers the user does not own.
func (s *CounselService) Create(ctx context.Context, userID int64, req model.CounselCreateRequest) (*model.Counsel, error) {
	if _, err := s.repo.GetCustomer(ctx, req.Customer, userID); err != nil {
		if db.IsNoRows(err) {
			s.logger.Warn("counsel create rejected", "reason", "customer not owned", "user_id", userID, "customer_id", req.Customer)
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.CounselStatusPending
	}

	counsel, err := s.repo.CreateCounsel(ctx, &model.Counsel{
		CustomerID: req.Customer,
		Summary:    req.Summary,
		Details:    req.Details,
		Emergency:  req.Emergency,
		Status:     status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create counsel: %w", err)
	}

	s.logger.Info("counsel created", "user_id", userID, "customer_id", req.Customer, "counsel_id", counsel.ID)
	return counsel, nil
}

func (s *CounselService) Get(ctx context.Context, userID, counselID int64) (*model.Counsel, error) {
	counsel, err := s.repo.GetCounsel(ctx, counselID, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return counsel, nil
}

func (s *CounselService) Update(ctx context.Context, userID, counselID int64, req model.CounselUpdateRequest) (*model.Counsel, error) {
	counsel, err := s.Get(ctx, userID, counselID)
	if err != nil {
		return nil, err
	}

	if req.Summary != nil {
		counsel.Summary = *req.Summary
	}
	if req.Details != nil {
		counsel.Details = *req.Details
	}
	if req.Emergency != nil {
		counsel.Emergency = *req.Emergency
	}
	if req.Status != nil {
		counsel.Status = *req.Status
	}

	updated, err := s.repo.UpdateCounsel(ctx, counsel, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update counsel: %w", err)
	}
	return updated, nil
}

func (s *CounselService) Delete(ctx context.Context, userID, counselID int64) error {
	if err := s.repo.DeleteCounsel(ctx, counselID, userID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	s.logger.Info("counsel deleted", "user_id", userID, "counsel_id", counselID)
	return nil
}

func (s *CounselService) ListDocuments(ctx context.Context, userID, counselID int64) ([]model.CounselDocument, error) {
	// 상담 자체가 사용자 소유인지 먼저 확인 (빈 문서 목록과 404 구분)
	if _, err := s.Get(ctx, userID, counselID); err != nil {
		return nil, err
	}
	return s.repo.ListCounselDocuments(ctx, counselID, userID)
}

func (s *CounselService) CreateDocument(ctx context.Context, userID, counselID int64, req model.CounselDocumentCreateRequest) (*model.CounselDocument, error) {
	if _, err := s.Get(ctx, userID, counselID); err != nil {
		return nil, err
	}

	doc, err := s.repo.CreateCounselDocument(ctx, &model.CounselDocument{
		CounselID: counselID,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create counsel document: %w", err)
	}

	s.logger.Info("counsel document created", "user_id", userID, "counsel_id", counselID, "document_id", doc.ID)
	return doc, nil
}

func (s *CounselService) GetDocument(ctx context.Context, userID, counselID, docID int64) (*model.CounselDocument, error) {
	doc, err := s.repo.GetCounselDocument(ctx, docID, counselID, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *CounselService) UpdateDocument(ctx context.Context, userID, counselID, docID int64, req model.CounselDocumentUpdateRequest) (*model.CounselDocument, error) {
	doc, err := s.GetDocument(ctx, userID, counselID, docID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}

	updated, err := s.repo.UpdateCounselDocument(ctx, doc, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update counsel document: %w", err)
	}
	return updated, nil
}

func (s *CounselService) DeleteDocument(ctx context.Context, userID, counselID, docID int64) error {
	if err := s.repo.DeleteCounselDocument(ctx, docID, counselID, userID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	s.logger.Info("counsel document deleted", "user_id", userID, "counsel_id", counselID, "document_id", docID)
	return nil
}
