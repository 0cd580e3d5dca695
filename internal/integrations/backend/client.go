package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"

	maxErrorBody = 64 << 10
)

// Client клиент HTTP API сервиса бронирования уборки
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithTokenSource возвращает копию клиента, которая подписывает запросы токеном из ts
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	clone := *c
	clone.tokens = ts
	return &clone
}

// GetServices GET /api/services
func (c *Client) GetServices(ctx context.Context) (map[string]ServiceEntry, error) {
	var resp servicesResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/services", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Services == nil {
		return nil, fmt.Errorf("%w: services field is missing", ErrInvalidResponse)
	}
	return resp.Services, nil
}

// GetCleaners GET /api/cleaners
func (c *Client) GetCleaners(ctx context.Context) ([]Cleaner, error) {
	var resp cleanersResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/cleaners", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Cleaners == nil {
		return nil, fmt.Errorf("%w: cleaners field is missing", ErrInvalidResponse)
	}
	return resp.Cleaners, nil
}

// GetServiceAreas GET /api/service-areas
func (c *Client) GetServiceAreas(ctx context.Context) ([]string, error) {
	var resp areasResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/service-areas", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Areas == nil {
		return nil, fmt.Errorf("%w: areas field is missing", ErrInvalidResponse)
	}
	return resp.Areas, nil
}

// GetTimeSlots GET /api/time-slots?date=YYYY-MM-DD
func (c *Client) GetTimeSlots(ctx context.Context, date string) (*TimeSlots, error) {
	path := "/api/time-slots?" + url.Values{"date": {date}}.Encode()

	var resp TimeSlots
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBooking POST /api/bookings
// requestToken передаётся в заголовке Idempotency-Key; повтор с тем же токеном вернёт то же бронирование
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest, requestToken string) (*CreateBookingResponse, error) {
	headers := http.Header{}
	if requestToken != "" {
		headers.Set(headerIdempotencyKey, requestToken)
	}

	var resp CreateBookingResponse
	respHeaders, err := c.do(ctx, http.MethodPost, "/api/bookings", req, headers, &resp)
	if err != nil {
		return nil, err
	}
	if resp.BookingID == "" {
		return nil, fmt.Errorf("%w: booking_id is empty", ErrInvalidResponse)
	}
	resp.Replayed = respHeaders.Get(headerReplayed) == "true"

	return &resp, nil
}

// GetBooking GET /api/bookings/{id}
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	var resp Booking
	if _, err := c.do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(bookingID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCustomerBookings GET /api/customer/bookings, требует входа
func (c *Client) GetCustomerBookings(ctx context.Context) ([]Booking, error) {
	var resp bookingsResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/customer/bookings", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

// CancelBooking PATCH /api/customer/bookings/{id}/cancel, требует входа
func (c *Client) CancelBooking(ctx context.Context, bookingID string) (*Booking, error) {
	var resp Booking
	path := "/api/customer/bookings/" + url.PathEscape(bookingID) + "/cancel"
	if _, err := c.do(ctx, http.MethodPatch, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateCheckoutSession POST /api/checkout/session
func (c *Client) CreateCheckoutSession(ctx context.Context, bookingID, originURL string) (*CheckoutSession, error) {
	body := checkoutSessionRequest{BookingID: bookingID, OriginURL: originURL}

	var resp CheckoutSession
	if _, err := c.do(ctx, http.MethodPost, "/api/checkout/session", body, nil, &resp); err != nil {
		return nil, err
	}
	if resp.URL == "" {
		return nil, fmt.Errorf("%w: checkout url is empty", ErrInvalidResponse)
	}
	return &resp, nil
}

// GetCheckoutStatus GET /api/checkout/status/{session_id}
func (c *Client) GetCheckoutStatus(ctx context.Context, sessionID string) (*CheckoutStatus, error) {
	var resp CheckoutStatus
	path := "/api/checkout/status/" + url.PathEscape(sessionID)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register POST /api/auth/register
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Token, error) {
	var resp Token
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/register", req, nil, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: access_token is empty", ErrInvalidResponse)
	}
	return &resp, nil
}

// Login POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	var resp Token
	body := loginRequest{Email: email, Password: password}
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, nil, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: access_token is empty", ErrInvalidResponse)
	}
	return &resp, nil
}

// Me GET /api/auth/me с явно переданным токеном
// Используется для проверки токена до того, как он станет токеном сессии
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)

	var resp User
	if _, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, headers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do выполняет запрос и декодирует успешный ответ в out
func (c *Client) do(
	ctx context.Context,
	method, path string,
	body interface{},
	headers http.Header,
	out interface{},
) (http.Header, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request %s %s: %v", ErrInternal, method, path, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := readAPIError(resp)
		if resp.StatusCode >= http.StatusInternalServerError {
			c.log.Error("%s %s - server error: %v", method, path, apiErr)
		} else {
			c.log.Warn("%s %s - request rejected: %v", method, path, apiErr)
		}
		return nil, apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s %s response: %v", ErrInvalidResponse, method, path, err)
		}
	}

	return resp.Header, nil
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(string(raw))
	return apiErr
}

// IsAPIError true, если сервер ответил кодом ошибки (в отличие от сетевой ошибки)
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
