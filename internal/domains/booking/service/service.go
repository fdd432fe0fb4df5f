package service

import (
	"context"
	"fmt"

	"bamf/config"
	"bamf/infras/kafka"
	"bamf/infras/otel"
	"bamf/internal/domains/booking/model"
	"bamf/internal/domains/booking/model/dto"
	"bamf/internal/domains/booking/repository"
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

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Cache key prefixes. Exported because the payment flow mutates bookings
// and has to invalidate the same entries.
const (
	CacheGetBooking    = "booking:get"
	CacheGetAllBooking = "booking:gets"
	CacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Lookup(ctx context.Context, query string) (dto.BookingResponse, error)
	SetPayAtHotel(ctx context.Context, id string) (dto.BookingResponse, error)
	MarkPaidAtHotel(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
}

func New(repo repository.Booking, roomRepo roomRepository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	// Guest input is checked field by field so the first problem is the one
	// reported, not an arbitrary member of a batch.
	if req.RoomID == constant.Empty {
		return res, failure.BadRequestFromString("room_id is required")
	}

	if req.FullName == constant.Empty {
		return res, failure.BadRequestFromString("full_name is required")
	}

	if req.Email == constant.Empty {
		return res, failure.BadRequestFromString("a valid email is required")
	}

	checkIn, err := timezone.Parse(constant.CalendarFormat, req.CheckIn)
	if err != nil {
		return res, failure.BadRequestFromString("check_in must be a valid date (YYYY-MM-DD)")
	}

	checkOut, err := timezone.Parse(constant.CalendarFormat, req.CheckOut)
	if err != nil {
		return res, failure.BadRequestFromString("check_out must be a valid date (YYYY-MM-DD)")
	}

	nights := pricing.Nights(checkIn, checkOut)
	if nights < 1 {
		return res, failure.BadRequestFromString("check_out must be after check_in")
	}

	if nights > s.cfg.Booking.MaxNights {
		return res, failure.BadRequestFromString(fmt.Sprintf("stay cannot exceed %d nights", s.cfg.Booking.MaxNights))
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for booking")

		return res, fmt.Errorf("failed to get room for booking: %w", err)
	}

	if room.ID == constant.Empty || !room.Active {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	amountMinor, err := pricing.ComputeAmountMinor(room.PricePerNight, nights, req.Rooms)
	if err != nil {
		return res, err
	}

	bookingCode := reference.BookingCode(s.cfg.Booking.CodePrefix)
	booking := req.ToModel(bookingCode, room.Currency, checkIn, checkOut, amountMinor, s.cfg.Booking.HoldHours)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to insert booking")

		return res, err
	}

	s.publishEvent(ctx, constant.EventBookingCreated, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, CacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// Lookup resolves a front-desk query. UUIDs are treated as booking IDs;
// anything else matches the most recent booking for that guest email.
func (s *serviceImpl) Lookup(ctx context.Context, query string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Lookup")
	defer scope.End()
	defer scope.TraceIfError(err)

	if query == constant.Empty {
		return res, failure.BadRequestFromString("lookup query is required")
	}

	if _, parseErr := uuid.Parse(query); parseErr == nil {
		booking, err := s.getByID(ctx, query)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		return res, nil
	}

	params := gDto.QueryParams{
		Page:    constant.DefaultValuePage,
		Limit:   1,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Value:    query,
				Operator: gDto.FilterOperatorLike,
				Table:    model.TableName,
			},
		},
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up booking by email")

		return res, fmt.Errorf("failed to look up booking by email: %w", err)
	}

	if len(bookings) == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(bookings[0])

	return res, nil
}

// SetPayAtHotel records the guest's choice to settle at the front desk.
// The booking resets to unpaid so a prior failed online attempt does not
// stick; a receptionist confirms the payment later.
func (s *serviceImpl) SetPayAtHotel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetPayAtHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.IsPaid() {
		return res, failure.Conflict("booking is already paid") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldPaymentMethod: constant.PaymentMethodHotel,
		model.FieldPaymentStatus: constant.PaymentStatusUnpaid,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: booking.Email,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to set pay at hotel")

		return res, fmt.Errorf("failed to set pay at hotel: %w", err)
	}

	booking.PaymentMethod = constant.PaymentMethodHotel
	booking.PaymentStatus = constant.PaymentStatusUnpaid

	s.invalidate(ctx, id)

	res.FromModel(booking)

	return res, nil
}

// MarkPaidAtHotel confirms a cash or POS payment taken at the front desk.
// The front desk is authoritative: it always settles the booking as paid via
// hotel, overwriting whatever provider or reference an online attempt left
// behind. Repeat calls rewrite the same terminal state.
func (s *serviceImpl) MarkPaidAtHotel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPaidAtHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyAdminUser).(string)
	now := timezone.Now()
	paymentReference := reference.Payment(constant.ProviderHotel, booking.ID)

	updatedFields := map[string]any{
		model.FieldPaymentStatus:    constant.PaymentStatusPaid,
		model.FieldPaymentMethod:    constant.PaymentMethodHotel,
		model.FieldPaymentProvider:  constant.ProviderHotel,
		model.FieldPaymentReference: paymentReference,
		model.FieldPaidAt:           now,
		constant.FieldModifiedAt:    now,
		constant.FieldModifiedBy:    user,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to mark booking paid at hotel")

		return res, fmt.Errorf("failed to mark booking paid at hotel: %w", err)
	}

	booking.PaymentStatus = constant.PaymentStatusPaid
	booking.PaymentMethod = constant.PaymentMethodHotel
	booking.PaymentProvider = constant.ProviderHotel
	booking.PaymentReference = paymentReference
	booking.PaidAt.Time = now
	booking.PaidAt.Valid = true

	s.publishEvent(ctx, constant.EventPaymentConfirmed, booking)
	s.invalidate(ctx, id)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	payload := dto.NewBookingEventPayload(event, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.BookingEvents, kafka.Message{
			Key:   booking.ID,
			Value: payload,
		}); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, CacheCountBooking)
	}()
}
