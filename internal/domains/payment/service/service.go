package service

import (
	"context"
	"fmt"
	"net/url"

	"bamf/config"
	"bamf/infras/kafka"
	"bamf/infras/otel"
	bookingModel "bamf/internal/domains/booking/model"
	bookingDto "bamf/internal/domains/booking/model/dto"
	bookingRepository "bamf/internal/domains/booking/repository"
	bookingService "bamf/internal/domains/booking/service"
	"bamf/internal/domains/payment/gateway"
	"bamf/internal/domains/payment/model/dto"
	roomModel "bamf/internal/domains/room/model"
	roomRepository "bamf/internal/domains/room/repository"
	"bamf/shared"
	"bamf/shared/cache"
	"bamf/shared/constant"
	gDto "bamf/shared/dto"
	"bamf/shared/failure"
	"bamf/shared/pricing"
	"bamf/shared/reference"
	"bamf/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	Initialize(ctx context.Context, req dto.InitPaymentRequest) (dto.InitPaymentResponse, error)
	Verify(ctx context.Context, bookingID, provider, paymentReference string) (dto.VerifyPaymentResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepository.Booking
	roomRepo    roomRepository.Room
	registry    gateway.Registry
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	kafka       kafka.Client
}

func New(bookingRepo bookingRepository.Booking, roomRepo roomRepository.Room, registry gateway.Registry, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Payment {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		registry:    registry,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		kafka:       kafka,
	}
}

// Initialize opens a hosted checkout session for a booking. The pending
// status, provider, and reference are persisted before the provider is
// called, so an interrupted attempt is always visible in the store.
func (s *serviceImpl) Initialize(ctx context.Context, req dto.InitPaymentRequest) (res dto.InitPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".InitializePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	gw, err := s.registry.Resolve(req.Provider)
	if err != nil {
		return res, err
	}

	booking, err := s.getBooking(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return res, err
	}

	if booking.IsPaid() {
		return res, failure.Conflict("booking is already paid") // nolint:wrapcheck
	}

	amountMinor := booking.AmountMinor
	if amountMinor < constant.MinPlausibleAmountMinor {
		amountMinor, err = s.recomputeAmount(ctx, booking)
		if err != nil {
			return res, err
		}
	}

	paymentReference := reference.Payment(req.Provider, booking.ID)
	now := timezone.Now()

	updatedFields := map[string]any{
		bookingModel.FieldPaymentStatus:    constant.PaymentStatusPending,
		bookingModel.FieldPaymentMethod:    constant.PaymentMethodOnline,
		bookingModel.FieldPaymentProvider:  req.Provider,
		bookingModel.FieldPaymentReference: paymentReference,
		bookingModel.FieldAmountMinor:      amountMinor,
		constant.FieldModifiedAt:           now,
		constant.FieldModifiedBy:           booking.Email,
	}

	if err = s.bookingRepo.Update(ctx, updatedFields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to stage payment attempt")

		return res, fmt.Errorf("failed to stage payment attempt: %w", err)
	}

	s.invalidateBooking(ctx, booking.ID)

	initResult, err := gw.Initialize(ctx, gateway.InitializeRequest{
		Reference:    paymentReference,
		BookingID:    booking.ID,
		Email:        booking.Email,
		CustomerName: booking.FullName,
		AmountMinor:  amountMinor,
		Currency:     booking.Currency,
		CallbackURL:  s.buildCallbackURL(req.Provider, booking.ID),
		Description:  "Booking " + booking.BookingCode,
	})
	if err != nil {
		return res, err
	}

	res.BookingID = booking.ID
	res.Provider = req.Provider
	res.Reference = paymentReference
	res.AuthorizationURL = initResult.AuthorizationURL
	res.PaymentStatus = constant.PaymentStatusPending
	res.AmountMinor = amountMinor
	res.Currency = booking.Currency

	return res, nil
}

// Verify reconciles a payment attempt against the provider. The booking is
// the source of truth: a paid booking short-circuits before any reference or
// provider check, so repeated callbacks, stale redirects, and manual
// re-checks are all safe.
func (s *serviceImpl) Verify(ctx context.Context, bookingID, provider, paymentReference string) (res dto.VerifyPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bookingID == constant.Empty || provider == constant.Empty || paymentReference == constant.Empty {
		return res, failure.BadRequestFromString("provider, bookingId and reference are required")
	}

	booking, err := s.getBooking(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return res, err
	}

	if booking.IsPaid() {
		res.FromModel(booking)

		return res, nil
	}

	if booking.PaymentReference != constant.Empty && booking.PaymentReference != paymentReference {
		return res, failure.BadRequestFromString("reference mismatch")
	}

	if booking.PaymentProvider != constant.Empty && booking.PaymentProvider != provider {
		return res, failure.BadRequestFromString("provider mismatch")
	}

	gw, err := s.registry.Resolve(provider)
	if err != nil {
		return res, err
	}

	verifyResult, err := gw.Verify(ctx, paymentReference)
	if err != nil {
		return res, err
	}

	if verifyResult.Paid {
		return s.settle(ctx, booking, provider, paymentReference, verifyResult)
	}

	return s.fail(ctx, booking, provider, paymentReference, verifyResult)
}

func (s *serviceImpl) settle(ctx context.Context, booking bookingModel.Booking, provider, paymentReference string, verifyResult gateway.VerifyResult) (res dto.VerifyPaymentResponse, err error) {
	if verifyResult.AmountMinor > 0 && verifyResult.AmountMinor != booking.AmountMinor {
		log.Warn().
			Str("bookingID", booking.ID).
			Int64("expected", booking.AmountMinor).
			Int64("settled", verifyResult.AmountMinor).
			Msg("settled amount differs from booking amount")
	}

	now := timezone.Now()

	updatedFields := map[string]any{
		bookingModel.FieldPaymentStatus:    constant.PaymentStatusPaid,
		bookingModel.FieldPaymentProvider:  provider,
		bookingModel.FieldPaymentReference: paymentReference,
		bookingModel.FieldPaidAt:           now,
		constant.FieldModifiedAt:           now,
		constant.FieldModifiedBy:           booking.Email,
	}

	if err = s.bookingRepo.Update(ctx, updatedFields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to mark booking paid")

		return res, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	booking.PaymentStatus = constant.PaymentStatusPaid
	booking.PaymentProvider = provider
	booking.PaymentReference = paymentReference
	booking.PaidAt.Time = now
	booking.PaidAt.Valid = true

	s.publishEvent(ctx, constant.EventPaymentConfirmed, booking)
	s.invalidateBooking(ctx, booking.ID)

	res.FromModel(booking)
	res.ProviderStatus = verifyResult.ProviderStatus

	return res, nil
}

func (s *serviceImpl) fail(ctx context.Context, booking bookingModel.Booking, provider, paymentReference string, verifyResult gateway.VerifyResult) (res dto.VerifyPaymentResponse, err error) {
	now := timezone.Now()

	updatedFields := map[string]any{
		bookingModel.FieldPaymentStatus:    constant.PaymentStatusFailed,
		bookingModel.FieldPaymentProvider:  provider,
		bookingModel.FieldPaymentReference: paymentReference,
		constant.FieldModifiedAt:           now,
		constant.FieldModifiedBy:           booking.Email,
	}

	if err = s.bookingRepo.Update(ctx, updatedFields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to mark payment attempt failed")

		return res, fmt.Errorf("failed to mark payment attempt failed: %w", err)
	}

	booking.PaymentStatus = constant.PaymentStatusFailed
	booking.PaymentProvider = provider
	booking.PaymentReference = paymentReference

	s.publishEvent(ctx, constant.EventPaymentFailed, booking)
	s.invalidateBooking(ctx, booking.ID)

	res.FromModel(booking)
	res.ProviderStatus = verifyResult.ProviderStatus

	return res, nil
}

// buildCallbackURL tags the configured callback URL with the provider and
// booking so the verify endpoint can reconcile the redirect without any
// server-held session state.
func (s *serviceImpl) buildCallbackURL(provider, bookingID string) string {
	base := s.cfg.Payment.CallbackURL
	if base == constant.Empty {
		return constant.Empty
	}

	parsed, err := url.Parse(base)
	if err != nil {
		log.Warn().Err(err).Msg("invalid payment callback URL configured")

		return base
	}

	query := parsed.Query()
	query.Set(constant.RequestParamProvider, provider)
	query.Set(constant.RequestParamBookingID, bookingID)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// recomputeAmount rebuilds the total from the room rate when the stored
// amount is missing or implausibly small.
func (s *serviceImpl) recomputeAmount(ctx context.Context, booking bookingModel.Booking) (int64, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for amount recompute")

		return 0, fmt.Errorf("failed to get room for amount recompute: %w", err)
	}

	if room.ID == constant.Empty {
		return 0, failure.NotFound("room not found") // nolint:wrapcheck
	}

	nights := pricing.Nights(booking.CheckIn, booking.CheckOut)

	amountMinor, err := pricing.ComputeAmountMinor(room.PricePerNight, nights, booking.Rooms)
	if err != nil {
		return 0, err
	}

	log.Info().
		Str("bookingID", booking.ID).
		Int64("amountMinor", amountMinor).
		Msg("recomputed booking amount before payment init")

	return amountMinor, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, filter gDto.FilterGroup) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, booking bookingModel.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	payload := bookingDto.NewBookingEventPayload(event, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.BookingEvents, kafka.Message{
			Key:   booking.ID,
			Value: payload,
		}); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish payment event")
		}
	}()
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(bookingService.CacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, bookingService.CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, bookingService.CacheCountBooking)
	}()
}
