package create_checkout_session

// CreateCheckoutSessionRequest HTTP request model
type CreateCheckoutSessionRequest struct {
	BookingID string `json:"booking_id"`
	OriginURL string `json:"origin_url"`
}

// CreateCheckoutSessionResponse HTTP response model
type CreateCheckoutSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}
