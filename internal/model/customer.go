package model

import "time"

type Customer struct {
	ID          int64
	UserID      int64
	Name        string
	Gender      string
	PhoneNumber string
	Address     string
	Security    CustomerSecurity
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CustomerSecurity - Customer 생성 시 자동으로 함께 생성되는 1:1 보안 정보
type CustomerSecurity struct {
	CustomerID int64
	IsKorean   bool
	Key        string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CustomerCreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Gender      string `json:"gender" binding:"required,oneof=Male Female Other"`
	PhoneNumber string `json:"phone_number" binding:"required,max=100"`
	Address     string `json:"address" binding:"omitempty,max=100"`
}

type CustomerUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=100"`
}

type CustomerSecurityUpdateRequest struct {
	IsKorean *bool   `json:"is_korean"`
	Key      *string `json:"key" binding:"omitempty,len=6"`
}

type CustomerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	IsKorean    bool   `json:"is_korean"`
	Key         string `json:"key"`
}

func (c *Customer) Response() CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Gender:      c.Gender,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		IsKorean:    c.Security.IsKorean,
		Key:         c.Security.Key,
	}
}
