package dto

// Response is the envelope shared by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PaymentUnavailableResponse tells the client to fall back to cash on delivery.
type PaymentUnavailableResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	StripeDisabled bool   `json:"stripeDisabled"`
}
