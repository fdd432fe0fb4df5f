package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bamf/config"
	kafkaMocks "bamf/infras/kafka/mocks"
	"bamf/infras/otel/mocks"
	bookingMocks "bamf/internal/domains/booking/mocks"
	"bamf/internal/domains/booking/model"
	"bamf/internal/domains/booking/model/dto"
	"bamf/internal/domains/booking/service"
	roomMocks "bamf/internal/domains/room/mocks"
	roomModel "bamf/internal/domains/room/model"
	cacheMocks "bamf/shared/cache/mocks"
	"bamf/shared/constant"
	"bamf/shared/failure"
	gModel "bamf/shared/model"
	"bamf/shared/timezone"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.CodePrefix = "BAMF"
	cfg.Booking.HoldHours = 24
	cfg.Booking.MaxNights = 30
	cfg.Cache.TTL = 3600

	return cfg
}

func deluxeRoom() roomModel.Room {
	return roomModel.Room{
		ID:            "6f1e08a4-4f6e-4c7d-9ccd-0f2b25d1a111",
		Name:          "Deluxe",
		PricePerNight: 95000,
		Currency:      "NGN",
		Active:        true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := testConfig()

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockKafka)

	validReq := dto.CreateBookingRequest{
		RoomID:   deluxeRoom().ID,
		FullName: "Ada Obi",
		Email:    "  Ada.Obi@Example.com ",
		CheckIn:  "2026-10-10",
		CheckOut: "2026-10-12",
		Rooms:    1,
		Adults:   2,
		Children: 1,
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.BookingResponse)
	}{
		{
			name: "successful creation computes amount and code",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(deluxeRoom(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, int64(19000000), booking.AmountMinor)
						assert.Equal(t, "ada.obi@example.com", booking.Email)
						assert.Equal(t, constant.PaymentStatusUnpaid, booking.PaymentStatus)
						assert.Equal(t, constant.PaymentMethodOnline, booking.PaymentMethod)
						assert.Equal(t, 3, booking.Guests)
						assert.True(t, strings.HasPrefix(booking.BookingCode, "BAMF-"))
						assert.Len(t, booking.BookingCode, 10)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, int64(19000000), res.AmountMinor)
				assert.Equal(t, "NGN", res.Currency)
				assert.Equal(t, "2026-10-10", res.CheckIn)
			},
		},
		{
			name: "missing room_id",
			req: dto.CreateBookingRequest{
				FullName: "Ada Obi",
				Email:    "ada@example.com",
				CheckIn:  "2026-10-10",
				CheckOut: "2026-10-12",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "missing full_name",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				Email:    "ada@example.com",
				CheckIn:  "2026-10-10",
				CheckOut: "2026-10-12",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "check_out before check_in",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				FullName: "Ada Obi",
				Email:    "ada@example.com",
				CheckIn:  "2026-10-12",
				CheckOut: "2026-10-10",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "same-day stay rejected",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				FullName: "Ada Obi",
				Email:    "ada@example.com",
				CheckIn:  "2026-10-10",
				CheckOut: "2026-10-10",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "stay longer than thirty nights",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				FullName: "Ada Obi",
				Email:    "ada@example.com",
				CheckIn:  "2026-10-01",
				CheckOut: "2026-11-05",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "thirty nights is accepted",
			req: dto.CreateBookingRequest{
				RoomID:   deluxeRoom().ID,
				FullName: "Ada Obi",
				Email:    "ada@example.com",
				CheckIn:  "2026-10-01",
				CheckOut: "2026-10-31",
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(deluxeRoom(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "room not found",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "inactive room behaves as missing",
			req:  validReq,
			setupMock: func() {
				room := deluxeRoom()
				room.Active = false

				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "occupancy counts are clamped",
			req: dto.CreateBookingRequest{
				RoomID:   deluxeRoom().ID,
				FullName: "Ada Obi",
				Email:    "ada@example.com",
				CheckIn:  "2026-10-10",
				CheckOut: "2026-10-11",
				Rooms:    0,
				Adults:   99,
				Children: -3,
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(deluxeRoom(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, 1, booking.Rooms)
						assert.Equal(t, 20, booking.Adults)
						assert.Equal(t, 0, booking.Children)
						assert.Equal(t, 20, booking.Guests)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(deluxeRoom(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)

				if tt.check != nil {
					tt.check(t, res)
				}
			}
		})
	}
}

func TestBookingService_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := testConfig()

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockKafka)

	stored := model.Booking{
		ID:            "0bd16b46-3d5e-4cf7-a93e-8e2b7a8d9001",
		BookingCode:   "BAMF-7KQ2M",
		Email:         "ada@example.com",
		PaymentStatus: constant.PaymentStatusUnpaid,
		CheckIn:       time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		query     string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:  "uuid query resolves by id",
			query: stored.ID,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
		},
		{
			name:  "email query returns most recent booking",
			query: "ada@example.com",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{stored}, nil)
			},
		},
		{
			name:  "email with no bookings",
			query: "nobody@example.com",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:      "empty query",
			query:     "",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Lookup(context.Background(), tt.query)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored.ID, res.ID)
			}
		})
	}
}

func TestBookingService_SetPayAtHotel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := testConfig()

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockKafka)

	unpaid := model.Booking{
		ID:            "0bd16b46-3d5e-4cf7-a93e-8e2b7a8d9001",
		Email:         "ada@example.com",
		PaymentStatus: constant.PaymentStatusUnpaid,
		PaymentMethod: constant.PaymentMethodOnline,
	}

	paid := unpaid
	paid.PaymentStatus = constant.PaymentStatusPaid

	t.Run("marks method as hotel", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(unpaid, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, constant.PaymentMethodHotel, fields[model.FieldPaymentMethod])
				assert.Equal(t, constant.PaymentStatusUnpaid, fields[model.FieldPaymentStatus])

				return nil
			})

		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.SetPayAtHotel(context.Background(), unpaid.ID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, constant.PaymentMethodHotel, res.PaymentMethod)
	})

	t.Run("resets a failed attempt back to unpaid", func(t *testing.T) {
		failed := unpaid
		failed.PaymentStatus = constant.PaymentStatusFailed

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(failed, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, constant.PaymentStatusUnpaid, fields[model.FieldPaymentStatus])

				return nil
			})

		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.SetPayAtHotel(context.Background(), failed.ID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, constant.PaymentStatusUnpaid, res.PaymentStatus)
	})

	t.Run("conflict when already paid", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(paid, nil)

		_, err := svc.SetPayAtHotel(context.Background(), paid.ID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.SetPayAtHotel(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_MarkPaidAtHotel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := testConfig()

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockKafka)

	unpaid := model.Booking{
		ID:            "0bd16b46-3d5e-4cf7-a93e-8e2b7a8d9001",
		Email:         "ada@example.com",
		PaymentStatus: constant.PaymentStatusUnpaid,
		PaymentMethod: constant.PaymentMethodOnline,
	}

	t.Run("front desk confirmation settles the booking", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(unpaid, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, constant.PaymentStatusPaid, fields[model.FieldPaymentStatus])
				assert.Equal(t, constant.ProviderHotel, fields[model.FieldPaymentProvider])
				assert.True(t, strings.HasPrefix(fields[model.FieldPaymentReference].(string), "hotel_"+unpaid.ID+"_"))

				return nil
			})

		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.MarkPaidAtHotel(context.Background(), unpaid.ID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, constant.PaymentStatusPaid, res.PaymentStatus)
		assert.Equal(t, constant.ProviderHotel, res.PaymentProvider)
		assert.NotEmpty(t, res.PaidAt)
	})

	t.Run("overwrites an online settlement", func(t *testing.T) {
		paid := unpaid
		paid.PaymentStatus = constant.PaymentStatusPaid
		paid.PaymentProvider = constant.ProviderPaystack
		paid.PaymentReference = "paystack_" + paid.ID + "_1757000000000"

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(paid, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, constant.PaymentStatusPaid, fields[model.FieldPaymentStatus])
				assert.Equal(t, constant.ProviderHotel, fields[model.FieldPaymentProvider])
				assert.True(t, strings.HasPrefix(fields[model.FieldPaymentReference].(string), "hotel_"+paid.ID+"_"))

				return nil
			})

		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.MarkPaidAtHotel(context.Background(), paid.ID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, constant.PaymentStatusPaid, res.PaymentStatus)
		assert.Equal(t, constant.ProviderHotel, res.PaymentProvider)
	})
}
