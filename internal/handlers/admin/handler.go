package admin

import (
	"net/http"
	"time"

	"bamf/config"
	"bamf/infras/otel"
	"bamf/internal/domains/admin/model/dto"
	"bamf/internal/domains/admin/service"
	"bamf/shared/constant"
	"bamf/shared/validator"
	"bamf/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Admin
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Admin, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

// Router registers the unauthenticated session routes. Login must stay
// outside the admin guard or nobody could ever get in.
func (handler *Handler) Router(router chi.Router) {
	router.Post("/login", handler.Login)
	router.Post("/logout", handler.Logout)
}

// AdminRouter registers the guarded session introspection route.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Get("/session", handler.Session)
}

// Login authenticates the back-office operator and sets the session cookie.
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Data[dto.LoginResponse] "Session issued"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/admin/login [post]
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminLogin")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Str("username", req.Username).Msg("rejected admin login")

		response.WithError(writer, err)

		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constant.AdminSessionCookie,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   handler.cfg.Admin.SessionTTLMin * constant.MinutesToSeconds,
		HttpOnly: true,
		Secure:   handler.cfg.Server.Env == constant.ServerEnvProduction,
		SameSite: http.SameSiteLaxMode,
	})

	scope.AddEvent("Admin session issued for " + res.User)

	response.WithJSON(writer, http.StatusOK, res)
}

// Logout clears the session cookie.
// @Summary Admin logout
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Message "Session cleared"
// @Router /v1/admin/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminLogout")
	defer scope.End()

	http.SetCookie(w, &http.Cookie{
		Name:     constant.AdminSessionCookie,
		Value:    constant.Empty,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.WithMessage(w, http.StatusOK, "Session cleared")
}

// Session returns the operator bound to the current session cookie.
// @Summary Inspect the current admin session
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.SessionResponse] "Session details"
// @Failure 401 {object} response.Error
// @Router /v1/admin/session [get]
func (handler *Handler) Session(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminSession")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyAdminUser).(string)

	response.WithJSON(w, http.StatusOK, dto.SessionResponse{User: user})
}
