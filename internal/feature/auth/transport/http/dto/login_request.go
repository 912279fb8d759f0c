package dto

// LoginReq represents the request body for the /api/auth/signin endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
