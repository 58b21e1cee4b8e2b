package model

import "time"

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,phone"`
	Password    string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Detail      string `json:"detail"`
	AccessToken string `json:"access_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// AuthUser - 인증된 요청의 컨텍스트에 저장되는 사용자 정보
type AuthUser struct {
	ID          int64
	PhoneNumber string
}

// TokenClaims is the verified content of an access or refresh token.
type TokenClaims struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}
