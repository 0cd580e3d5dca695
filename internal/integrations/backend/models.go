package backend

import "time"

// ServiceEntry элемент каталога услуг
type ServiceEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"base_price"`
	Features    []string `json:"features"`
}

type servicesResponse struct {
	Services map[string]ServiceEntry `json:"services"`
}

// Cleaner исполнитель из каталога
type Cleaner struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Rating          float64  `json:"rating"`
	ExperienceYears int      `json:"experience_years"`
	Specialties     []string `json:"specialties"`
	AvatarURL       string   `json:"avatar_url"`
	Available       bool     `json:"available"`
}

type cleanersResponse struct {
	Cleaners []Cleaner `json:"cleaners"`
}

type areasResponse struct {
	Areas []string `json:"areas"`
}

// TimeSlots свободные слоты на дату
type TimeSlots struct {
	Date      string   `json:"date"`
	Available bool     `json:"available"`
	TimeSlots []string `json:"time_slots"`
}

// CreateBookingRequest тело POST /api/bookings
type CreateBookingRequest struct {
	ServiceType         string `json:"service_type"`
	CleanerID           string `json:"cleaner_id"`
	Date                string `json:"date"` // "2025-10-15"
	Time                string `json:"time"` // "10:00 AM"
	Hours               int    `json:"hours"`
	Location            string `json:"location"`
	Address             string `json:"address"`
	CustomerName        string `json:"customer_name"`
	CustomerEmail       string `json:"customer_email"`
	CustomerPhone       string `json:"customer_phone"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// CreateBookingResponse ответ на создание бронирования
type CreateBookingResponse struct {
	BookingID   string  `json:"booking_id"`
	TotalAmount float64 `json:"total_amount"`
	Message     string  `json:"message"`
	// Replayed выставляется по заголовку Idempotent-Replayed
	Replayed bool `json:"-"`
}

// Booking полная запись бронирования
type Booking struct {
	ID                  string    `json:"id"`
	ServiceType         string    `json:"service_type"`
	CleanerID           string    `json:"cleaner_id"`
	CleanerName         string    `json:"cleaner_name"`
	Date                string    `json:"date"`
	Time                string    `json:"time"`
	Hours               int       `json:"hours"`
	Location            string    `json:"location"`
	Address             string    `json:"address"`
	CustomerName        string    `json:"customer_name"`
	CustomerEmail       string    `json:"customer_email"`
	CustomerPhone       string    `json:"customer_phone"`
	SpecialInstructions string    `json:"special_instructions"`
	TotalAmount         float64   `json:"total_amount"`
	Status              string    `json:"status"`
	PaymentStatus       string    `json:"payment_status"`
	CreatedAt           time.Time `json:"created_at"`
	ConfirmedAt         *string   `json:"confirmed_at,omitempty"`
}

type bookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}

type checkoutSessionRequest struct {
	BookingID string `json:"booking_id"`
	OriginURL string `json:"origin_url"`
}

// CheckoutSession сессия оплаты, на которую нужно перенаправить пользователя
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CheckoutStatus состояние сессии оплаты
type CheckoutStatus struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	BookingID     string `json:"booking_id"`
}

// IsPaid оплата прошла
func (s *CheckoutStatus) IsPaid() bool {
	return s.PaymentStatus == "paid"
}

// IsExpired сессия истекла без оплаты
func (s *CheckoutStatus) IsExpired() bool {
	return s.Status == "expired"
}

// RegisterRequest тело POST /api/auth/register
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User данные пользователя
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName имя и фамилия через пробел
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Token ответ на вход и регистрацию
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
