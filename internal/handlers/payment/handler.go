package payment

import (
	"net/http"

	"bamf/infras/otel"
	"bamf/internal/domains/payment/model/dto"
	"bamf/internal/domains/payment/service"
	"bamf/shared/constant"
	"bamf/shared/validator"
	"bamf/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Query keys providers use when redirecting back to the callback URL.
// Paystack sends "reference", Monnify sends "paymentReference" and sometimes
// "transactionReference".
var referenceQueryKeys = []string{
	constant.RequestParamReference,
	"paymentReference",
	"transactionReference",
}

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/init", handler.InitPayment)
		routerGroup.Get("/verify", handler.VerifyPayment)
	})
}

// InitPayment opens a hosted checkout session for a booking.
// @Summary Initialize an online payment
// @Description Stage a payment attempt and return the provider's checkout URL.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.InitPaymentRequest true "Payment details"
// @Success 200 {object} response.Data[dto.InitPaymentResponse] "Checkout session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/init [post]
func (handler *Handler) InitPayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InitPayment")
	defer scope.End()

	var req dto.InitPaymentRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Initialize(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to initialize payment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Payment initialized with " + res.Provider)

	response.WithJSON(writer, http.StatusOK, res)
}

// VerifyPayment reconciles a payment attempt with its provider.
// @Summary Verify an online payment
// @Description Confirm a payment attempt against the provider and settle the booking. Safe to call repeatedly.
// @Tags Payment
// @Produce json
// @Param bookingId query string true "Booking ID carried back from the callback URL"
// @Param provider query string true "Expected provider"
// @Param reference query string false "Payment reference (Paystack style)"
// @Param paymentReference query string false "Payment reference (Monnify style)"
// @Success 200 {object} response.Data[dto.VerifyPaymentResponse] "Reconciliation result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/verify [get]
func (handler *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyPayment")
	defer scope.End()

	paymentReference := constant.Empty
	for _, key := range referenceQueryKeys {
		if value := r.URL.Query().Get(key); value != constant.Empty {
			paymentReference = value

			break
		}
	}

	bookingID := r.URL.Query().Get(constant.RequestParamBookingID)
	provider := r.URL.Query().Get(constant.RequestParamProvider)

	res, err := handler.service.Verify(ctx, bookingID, provider, paymentReference)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
