package dto

// ===== Common responses =====

type APIError struct {
	Error string `json:"error" example:"Nom i clientId són obligatoris"`
}

type APISuccessAny struct {
	Data interface{} `json:"data"`
}

type APISuccessLogin struct {
	Data LoginResponse `json:"data"`
}
