package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// Session состояние входа пользователя на время работы процесса
// Создаётся один раз при старте, Init поднимает сохранённый токен, Logout всё очищает.
// Реализует backend.TokenSource, поэтому передаётся клиенту явно.
type Session struct {
	api   AuthAPI
	store Store
	log   Logger

	mu    sync.RWMutex
	token string
	user  *backend.User
}

// NewSession создает пустую (анонимную) сессию
func NewSession(api AuthAPI, store Store, log Logger) *Session {
	return &Session{
		api:   api,
		store: store,
		log:   log,
	}
}

// Init загружает сохранённый токен и проверяет его через GET /api/auth/me
// Недействительный токен удаляется. Если сервер недоступен, токен остаётся в памяти без профиля.
func (s *Session) Init(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		s.log.Info("Session.Init: no stored token, anonymous session")
		return nil
	}

	user, err := s.api.Me(ctx, token)
	switch {
	case err == nil:
		s.set(token, user)
		s.log.Info("Session.Init: restored session for user_id=%s", user.ID)
		return nil
	case errors.Is(err, backend.ErrUnauthorized), errors.Is(err, backend.ErrNotFound):
		s.log.Warn("Session.Init: stored token rejected, dropping it: %v", err)
		s.clear()
		return s.store.Clear()
	default:
		s.log.Warn("Session.Init: could not validate stored token, keeping it: %v", err)
		s.set(token, nil)
		return nil
	}
}

// Login входит по email и паролю и сохраняет токен
func (s *Session) Login(ctx context.Context, email, password string) (*backend.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("session: login: %w", err)
	}

	if err := s.accept(token); err != nil {
		return nil, err
	}

	s.log.Info("Session.Login: signed in user_id=%s", token.User.ID)
	return &token.User, nil
}

// Register создаёт учётную запись и сразу входит в неё
func (s *Session) Register(ctx context.Context, req backend.RegisterRequest) (*backend.User, error) {
	token, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("session: register: %w", err)
	}

	if err := s.accept(token); err != nil {
		return nil, err
	}

	s.log.Info("Session.Register: registered user_id=%s", token.User.ID)
	return &token.User, nil
}

// Logout очищает состояние в памяти и сохранённый токен
func (s *Session) Logout() error {
	s.clear()
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.log.Info("Session.Logout: session cleared")
	return nil
}

// Token текущий токен или пустая строка
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User профиль вошедшего пользователя; false, если профиль неизвестен
func (s *Session) User() (*backend.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

// IsAuthenticated есть ли у сессии токен
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) accept(token *backend.Token) error {
	if err := s.store.Save(token.AccessToken); err != nil {
		return err
	}
	user := token.User
	s.set(token.AccessToken, &user)
	return nil
}

func (s *Session) set(token string, user *backend.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) clear() {
	s.set("", nil)
}
