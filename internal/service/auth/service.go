package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/auth/models"
)

const tokenType = "bearer"

// Service сервис регистрации, входа и проверки токенов
type Service struct {
	userRepo     UserRepository
	secret       []byte
	tokenTTL     time.Duration
	bcryptCost   int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(userRepo UserRepository, secret string, tokenTTLHours, bcryptCost int, logger Logger) (*Service, error) {
	if secret == "" {
		return nil, errors.New("auth.service: empty jwt secret")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		userRepo:     userRepo,
		secret:       []byte(secret),
		tokenTTL:     tokenTTLFromHours(tokenTTLHours),
		bcryptCost:   bcryptCost,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// Register создаёт учётную запись и сразу выдаёт токен
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	s.logger.Info("Register: email=%s, role=%s", req.Email, req.Role)

	role, err := validateRegister(req)
	if err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
		CreatedAt:    s.timeProvider.Now(),
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already registered", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user id=%s created", user.ID)
	return s.tokenResponse(user)
}

// Login проверяет пароль и выдаёт токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	s.logger.Info("Login: email=%s", req.Email)

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%s", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("Login: user id=%s is disabled", user.ID)
		return nil, ErrInactiveUser
	}

	return s.tokenResponse(user)
}

// Me возвращает профиль пользователя по id из токена
func (s *Service) Me(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Me: user id=%s not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Me: repository error for user id=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	resp := models.FromDomainUser(user)
	return &resp, nil
}

func (s *Service) tokenResponse(user *domain.User) (*models.TokenResponse, error) {
	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error("issueToken: failed to sign token for user id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
		User:        models.FromDomainUser(user),
	}, nil
}

func validateRegister(req *models.RegisterRequest) (domain.Role, error) {
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < domain.MinPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}
	if len(strings.TrimSpace(req.FirstName)) < domain.MinNameLength || len(strings.TrimSpace(req.LastName)) < domain.MinNameLength {
		return "", fmt.Errorf("%w: first and last name must be at least %d characters", ErrInvalidInput, domain.MinNameLength)
	}

	role := domain.RoleCustomer
	if req.Role != "" {
		role = domain.Role(req.Role)
	}
	if !role.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}
	// администраторов заводят вручную
	if role == domain.RoleAdmin {
		return "", fmt.Errorf("%w: admin accounts cannot self-register", ErrInvalidInput)
	}

	return role, nil
}
