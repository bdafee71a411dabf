package response_models

type CreateCheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type DeleteInvoiceResponse struct {
	Deleted bool `json:"deleted"`
}
