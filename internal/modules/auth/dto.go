package auth

type LoginRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
