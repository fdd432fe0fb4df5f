package middleware

import (
	"context"
	"net/http"

	"bamf/infras/otel"
	"bamf/infras/session"
	"bamf/shared/constant"
	"bamf/transport/http/response"

	"github.com/rs/zerolog/log"
)

// AdminAuth guards the back-office routes with the signed session cookie.
type AdminAuth interface {
	Auth(next http.Handler) http.Handler
}

type adminAuthImpl struct {
	session session.Session
	otel    otel.Otel
}

func NewAdminAuthMiddleware(session session.Session, otel otel.Otel) AdminAuth {
	return &adminAuthImpl{
		session: session,
		otel:    otel,
	}
}

func (a *adminAuthImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, otelHTTPScopeName+".AdminAuth")
		defer scope.End()

		cookie, err := r.Cookie(constant.AdminSessionCookie)
		if err != nil || cookie.Value == constant.Empty {
			response.WithMessage(w, http.StatusUnauthorized, "admin session required")

			return
		}

		claims, err := a.session.ValidateToken(cookie.Value)
		if err != nil {
			scope.TraceError(err)
			log.Warn().Err(err).Msg("rejected admin session")

			response.WithMessage(w, http.StatusUnauthorized, "admin session is invalid or expired")

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyAdminUser, claims.User)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
