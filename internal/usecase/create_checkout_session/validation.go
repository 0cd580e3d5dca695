package create_checkout_session

import (
	"fmt"
	"net/url"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: booking_id is required", ErrInvalidInput)
	}

	origin, err := url.Parse(req.OriginURL)
	if err != nil || origin.Host == "" || (origin.Scheme != "http" && origin.Scheme != "https") {
		return fmt.Errorf("%w: origin_url must be an absolute http(s) url", ErrInvalidInput)
	}

	return nil
}

// returnURLs строит адреса возврата после оплаты и после отмены
// {CHECKOUT_SESSION_ID} подставляет провайдер
func returnURLs(origin, bookingID string) (successURL, cancelURL string) {
	sep := "?"
	if strings.Contains(origin, "?") {
		sep = "&"
	}
	successURL = origin + sep + "session_id={CHECKOUT_SESSION_ID}&booking_id=" + url.QueryEscape(bookingID)
	cancelURL = origin + sep + "cancelled=true"
	return successURL, cancelURL
}
