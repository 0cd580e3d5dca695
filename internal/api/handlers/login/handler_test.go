package login

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/auth"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/auth/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type stubService struct{ err error }

func (s stubService) Login(_ context.Context, _ *models.LoginRequest) (*models.TokenResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.TokenResponse{AccessToken: "jwt", TokenType: "bearer", User: models.UserResponse{ID: "u1"}}, nil
}

func TestHandle(t *testing.T) {
	body := `{"email":"jane@example.com","password":"supersecret"}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"wrong password", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"disabled", auth.ErrInactiveUser, http.StatusForbidden},
		{"missing fields", auth.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(stubService{err: tt.err}, logger.NewNop()).Handle(rec,
				httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
