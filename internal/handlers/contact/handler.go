package contact

import (
	"net/http"

	"bamf/infras/otel"
	"bamf/internal/domains/contact/model"
	"bamf/internal/domains/contact/model/dto"
	"bamf/internal/domains/contact/service"
	"bamf/shared/constant"
	gDto "bamf/shared/dto"
	"bamf/shared/validator"
	"bamf/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/contact", handler.CreateContactMessage)
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Get("/contact", handler.GetContactMessages)
}

// CreateContactMessage stores a message from the public contact form.
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactMessageRequest true "Message details"
// @Success 201 {object} response.Message "Message received"
// @Failure 400 {object} response.Error
// @Router /v1/contact [post]
func (handler *Handler) CreateContactMessage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContactMessage")
	defer scope.End()

	var req dto.CreateContactMessageRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact message")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Message received")
}

// GetContactMessages lists contact messages for the back office.
// @Summary List contact messages
// @Tags Contact
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by sender email"
// @Success 200 {object} response.Data[dto.GetContactMessagesResponse] "List of messages"
// @Failure 500 {object} response.Error
// @Router /v1/admin/contact [get]
func (handler *Handler) GetContactMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if email := r.URL.Query().Get(model.FieldEmail); email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorLike,
			Value:    email,
			Table:    model.TableName,
		})
	}

	messages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, messages)
}
