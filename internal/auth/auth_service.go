package auth

import (
	"context"
	"errors"
	"strings"

	"go-sweet-storefront/internal/httpclient"
	"go-sweet-storefront/internal/pkg/apperror"
	"go-sweet-storefront/internal/session"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	registerPath = "/api/auth/register"
	loginPath    = "/api/auth/login"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (session.User, error)
	Login(ctx context.Context, req LoginRequest) (session.User, error)
	Logout()
}

type service struct {
	client   *httpclient.Client
	session  *session.Store
	validate *validator.Validate
	logger   *zap.Logger
}

type Deps struct {
	Client  *httpclient.Client
	Session *session.Store
	Logger  *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Client == nil {
		panic("http client cannot be nil")
	}
	if deps.Session == nil {
		panic("session store cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		client:   deps.Client,
		session:  deps.Session,
		validate: validator.New(),
		logger:   deps.Logger,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (session.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return session.User{}, apperror.New(apperror.CodeInvalidInput, err.Error(), 0)
	}

	var resp AuthResponse
	if err := s.client.Post(ctx, registerPath, req, &resp); err != nil {
		return session.User{}, err
	}
	return s.establish(resp)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (session.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return session.User{}, apperror.New(apperror.CodeInvalidInput, err.Error(), 0)
	}

	var resp AuthResponse
	if err := s.client.Post(ctx, loginPath, req, &resp); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeUnauthorized {
			return session.User{}, ErrInvalidCredentials
		}
		return session.User{}, err
	}

	user, err := s.establish(resp)
	if err != nil {
		return session.User{}, err
	}
	s.logger.Info("logged in", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

func (s *service) Logout() {
	s.session.Logout()
}

func (s *service) establish(resp AuthResponse) (session.User, error) {
	if resp.Token == "" {
		return session.User{}, ErrEmptyToken
	}

	user := session.User{
		ID:       resp.ID,
		Username: strings.TrimSpace(resp.Firstname + " " + resp.Lastname),
		Email:    resp.Email,
		Role:     resp.Role,
	}
	if err := s.session.Login(resp.Token, user); err != nil {
		return session.User{}, err
	}
	return user, nil
}
