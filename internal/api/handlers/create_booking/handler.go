package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CleaningBooking/internal/usecase/create_booking"
)

const (
	// HeaderIdempotencyKey токен запроса, сгенерированный клиентом
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderReplayed выставляется, когда вернули ранее созданное бронирование
	HeaderReplayed = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
)

const (
	msgInvalidRequestBody    = "Invalid request body"
	msgInvalidDate           = "Invalid date format, expected YYYY-MM-DD"
	msgInvalidIdempotencyKey = "Idempotency-Key is too long"
	msgInvalidServiceType    = "Invalid service type"
	msgCleanerNotFound       = "Cleaner not found"
	msgAreaNotSupported      = "Service area not supported"
	msgInvalidHours          = "Hours must be between 1 and 8"
	msgDateInPast            = "Booking date cannot be in the past"
	msgExcludedWeekday       = "Bookings are not available on Sundays"
	msgInvalidTimeSlot       = "Invalid time slot"
	msgTooLateToBook         = "This time slot has already started"
	msgRequestInProgress     = "A booking with this Idempotency-Key is already being processed"
	msgMissingFields         = "Please fill in all required fields"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
// Header Idempotency-Key (optional), Authorization (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
	if len(token) > maxIdempotencyKeyLength {
		handlers.RespondBadRequest(w, msgInvalidIdempotencyKey)
		return
	}

	var userID *string
	if id, ok := middleware.GetUserID(r.Context()); ok {
		userID = &id
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, token)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidServiceType):
			handlers.RespondBadRequest(w, msgInvalidServiceType)
		case errors.Is(err, createBooking.ErrCleanerNotFound):
			handlers.RespondBadRequest(w, msgCleanerNotFound)
		case errors.Is(err, createBooking.ErrServiceAreaNotSupported):
			handlers.RespondBadRequest(w, msgAreaNotSupported)
		case errors.Is(err, createBooking.ErrInvalidHours):
			handlers.RespondBadRequest(w, msgInvalidHours)
		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)
		case errors.Is(err, createBooking.ErrExcludedWeekday):
			handlers.RespondBadRequest(w, msgExcludedWeekday)
		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)
		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)
		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingFields)
		case errors.Is(err, createBooking.ErrRequestInProgress):
			h.logger.Warn("POST /bookings - Duplicate in-flight request: key=%s", token)
			handlers.RespondConflict(w, msgRequestInProgress)
		default:
			h.logger.Error("POST /bookings - Failed to create booking: service=%s, cleaner=%s, error=%v",
				req.ServiceType, req.CleanerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Replayed {
		w.Header().Set(HeaderReplayed, "true")
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, total=%.2f, replayed=%t",
		result.BookingID, result.TotalAmount, result.Replayed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
