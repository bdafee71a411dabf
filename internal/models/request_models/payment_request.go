package request_models

type CreateCheckoutRequest struct {
	Slug string `json:"slug" binding:"required"`
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}
