package get_checkout_status

// Request модель запроса статуса checkout-сессии
type Request struct {
	SessionID string
}

// Response состояние оплаты для клиента
type Response struct {
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	BookingID     string
}

// WebhookRequest тело и подпись webhook от провайдера
type WebhookRequest struct {
	Payload   []byte
	Signature string
}
