package model

import "time"

const (
	CounselStatusPending    = "Pending"
	CounselStatusInProgress = "In Progress"
	CounselStatusCompleted  = "Completed"
)

type Counsel struct {
	ID         int64
	CustomerID int64
	Summary    string
	Details    string
	Emergency  bool
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CounselDocument struct {
	ID        int64
	CounselID int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CounselCreateRequest struct {
	Customer  int64  `json:"customer" binding:"required"`
	Summary   string `json:"summary" binding:"required"`
	Details   string `json:"details" binding:"required"`
	Emergency bool   `json:"emergency"`
	Status    string `json:"status" binding:"omitempty,oneof=Pending 'In Progress' Completed"`
}

type CounselUpdateRequest struct {
	Summary   *string `json:"summary"`
	Details   *string `json:"details"`
	Emergency *bool   `json:"emergency"`
	Status    *string `json:"status" binding:"omitempty,oneof=Pending 'In Progress' Completed"`
}

type CounselResponse struct {
	ID        int64  `json:"id"`
	Customer  int64  `json:"customer"`
	Summary   string `json:"summary"`
	Details   string `json:"details"`
	Emergency bool   `json:"emergency"`
	Status    string `json:"status"`
}

func (c *Counsel) Response() CounselResponse {
	return CounselResponse{
		ID:        c.ID,
		Customer:  c.CustomerID,
		Summary:   c.Summary,
		Details:   c.Details,
		Emergency: c.Emergency,
		Status:    c.Status,
	}
}

type CounselDocumentCreateRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

type CounselDocumentUpdateRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=255"`
	Content *string `json:"content"`
}

type CounselDocumentResponse struct {
	ID      int64  `json:"id"`
	Counsel int64  `json:"counsel"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (d *CounselDocument) Response() CounselDocumentResponse {
	return CounselDocumentResponse{
		ID:      d.ID,
		Counsel: d.CounselID,
		Title:   d.Title,
		Content: d.Content,
	}
}
