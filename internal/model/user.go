package model

import "time"

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

type User struct {
	ID           int64
	PhoneNumber  string
	PasswordHash string
	KeyHash      string
	Name         string
	Gender       string
	DateOfBirth  time.Time
	Address      string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SignUpRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,phone"`
	Name        string `json:"name" binding:"required,max=25"`
	Gender      string `json:"gender" binding:"required,oneof=Male Female Other"`
	DateOfBirth string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Address     string `json:"address" binding:"required,max=255"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	Key         string `json:"key" binding:"required,min=6,max=64"`
}

// UserUpdateRequest - PUT/PATCH 공용. nil 필드는 변경하지 않는다.
type UserUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=25"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Password    *string `json:"password" binding:"omitempty,min=8,max=128"`
	Key         *string `json:"key" binding:"omitempty,min=6,max=64"`
}

type UserResponse struct {
	ID          int64  `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:          u.ID,
		PhoneNumber: u.PhoneNumber,
		Name:        u.Name,
		Gender:      u.Gender,
		DateOfBirth: u.DateOfBirth.Format("2006-01-02"),
		Address:     u.Address,
	}
}
