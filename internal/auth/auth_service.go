package auth

import (
	"context"
	"time"

	"spincraft-tracker/internal/auditlog"
	autherrors "spincraft-tracker/internal/auth/errors"
	"spincraft-tracker/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)
	Me(ctx context.Context, adminID string) (AdminResponse, error)
}

type service struct {
	verifier Verifier
	audit    auditlog.Recorder
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	verifier Verifier,
	audit auditlog.Recorder,
	secret string,
	ttl time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		verifier: verifier,
		audit:    audit,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	admin, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		s.logger.Warn("login rejected", zap.String("request_id", rid), zap.String("username", username))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.ttl)
	token, err := s.generateToken(admin, expiresAt)
	if err != nil {
		s.logger.Error("login token signing failed", zap.String("request_id", rid), zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	// A failed audit write does not block the session.
	if err := s.audit.Record(ctx, auditlog.Entry{
		Action:  auditlog.ActionLogin,
		Details: "Admin " + admin.Username + " signed in",
		AdminID: admin.ID,
	}); err != nil {
		s.logger.Warn("login audit failed", zap.String("request_id", rid), zap.Error(err))
	}

	s.logger.Info("login success", zap.String("request_id", rid), zap.String("admin_id", admin.ID))
	return LoginResponse{
		Admin:       mapToResponse(admin),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *service) Me(ctx context.Context, adminID string) (AdminResponse, error) {
	admin, err := s.verifier.Lookup(ctx, adminID)
	if err != nil {
		return AdminResponse{}, autherrors.ErrAdminNotFound
	}
	return mapToResponse(admin), nil
}

func (s *service) generateToken(admin Admin, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"name":     admin.Name,
		"role":     admin.Role,
		"iat":      s.now().Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func mapToResponse(a Admin) AdminResponse {
	return AdminResponse{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Role:     a.Role,
	}
}
