package service

import (
	"context"

	"bamf/config"
	"bamf/infras/otel"
	"bamf/infras/session"
	"bamf/internal/domains/admin/model/dto"
	"bamf/shared/constant"
	"bamf/shared/failure"
	"bamf/shared/password"
	"bamf/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Admin authenticates the single configured back-office operator. Credentials
// live in configuration, not the database; see the deployment notes.
type Admin interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	ValidateSession(ctx context.Context, token string) (dto.SessionResponse, error)
}

type serviceImpl struct {
	cfg     *config.Config
	session session.Session
	otel    otel.Otel
}

func New(cfg *config.Config, session session.Session, otel otel.Otel) Admin {
	return &serviceImpl{
		cfg:     cfg,
		session: session,
		otel:    otel,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdminLogin")
	defer scope.End()
	defer scope.TraceIfError(err)

	if s.cfg.Admin.Username == constant.Empty || s.cfg.Admin.PasswordHash == constant.Empty {
		log.Error().Msg("admin credentials are not configured")

		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	if req.Username != s.cfg.Admin.Username {
		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, s.cfg.Admin.PasswordHash); err != nil {
		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	token, expiresAt, err := s.session.IssueToken(req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue admin session token")

		return res, err
	}

	res.Token = token
	res.User = req.Username
	res.ExpiresAt = timezone.Format(expiresAt, constant.DateFormat)

	return res, nil
}

func (s *serviceImpl) ValidateSession(ctx context.Context, token string) (res dto.SessionResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidateSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.session.ValidateToken(token)
	if err != nil {
		return res, failure.Unauthorized("session is invalid or expired") // nolint:wrapcheck
	}

	res.User = claims.User

	return res, nil
}
