package get_me

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/auth"
)

const msgNotAuthenticated = "Not authenticated"

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/auth/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		switch {
		// токен пережил удаление или блокировку пользователя
		case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInactiveUser):
			h.logger.Warn("GET /auth/me - stale token for user_id=%s: %v", userID, err)
			handlers.RespondUnauthorized(w, msgNotAuthenticated)
		default:
			h.logger.Error("GET /auth/me - Failed to load user_id=%s: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}
