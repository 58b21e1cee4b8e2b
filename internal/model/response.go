package model

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

type SignUpResponse struct {
	Detail string       `json:"detail"`
	Data   UserResponse `json:"data"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
