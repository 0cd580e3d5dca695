package get_checkout_status

import getCheckoutStatus "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_checkout_status"

// CheckoutStatusResponse HTTP response model
type CheckoutStatusResponse struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	BookingID     string `json:"booking_id"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCheckoutStatus.Response) *CheckoutStatusResponse {
	return &CheckoutStatusResponse{
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		AmountTotal:   resp.AmountTotal,
		Currency:      resp.Currency,
		BookingID:     resp.BookingID,
	}
}
