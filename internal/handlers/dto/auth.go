package dto

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	PIN      string `json:"pin" binding:"required,len=6,numeric"`
}

type ChangePinRequest struct {
	CurrentPin string `json:"currentPin" binding:"required,len=6,numeric"`
	NewPin     string `json:"newPin" binding:"required,len=6,numeric"`
}
