package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bamf/config"
	"bamf/infras/otel/mocks"
	s3Mocks "bamf/infras/s3/mocks"
	roomMocks "bamf/internal/domains/room/mocks"
	"bamf/internal/domains/room/model"
	"bamf/internal/domains/room/model/dto"
	"bamf/internal/domains/room/service"
	cacheMocks "bamf/shared/cache/mocks"
	"bamf/shared/failure"
	gModel "bamf/shared/model"
	"bamf/shared/timezone"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "bamf-assets"

	return cfg
}

func standardRoom() model.Room {
	return model.Room{
		ID:            "6f1e08a4-4f6e-4c7d-9ccd-0f2b25d1a111",
		Name:          "Standard",
		PricePerNight: 45000,
		Currency:      "NGN",
		Capacity:      2,
		Active:        true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type roomFixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newRoomFixture(t *testing.T) roomFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	return roomFixture{
		repo:  mockRepo,
		cache: mockCache,
		s3:    mockS3,
		svc:   service.New(mockRepo, testConfig(), mockCache, mockOtel, mockS3),
	}
}

func TestRoomService_Create(t *testing.T) {
	t.Run("creates a room without an image", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, "Standard", room.Name)
				assert.Equal(t, 45000.0, room.PricePerNight)
				assert.Equal(t, "NGN", room.Currency)
				assert.True(t, room.Active)
				assert.Empty(t, room.Image)
				assert.NotEmpty(t, room.ID)

				return nil
			})

		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := f.svc.Create(context.Background(), dto.CreateRoomRequest{
			Name:          "Standard",
			PricePerNight: 45000,
			Currency:      "NGN",
			Capacity:      2,
		})

		assert.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		err := f.svc.Create(context.Background(), dto.CreateRoomRequest{
			Name:          "Standard",
			PricePerNight: 45000,
		})

		assert.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f roomFixture)
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.RoomResponse)
	}{
		{
			name: "returns the room on a cache miss",
			setupMock: func(f roomFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(standardRoom(), nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			check: func(t *testing.T, res dto.RoomResponse) {
				assert.Equal(t, standardRoom().ID, res.ID)
				assert.Equal(t, 45000.0, res.PricePerNight)
			},
		},
		{
			name: "returns not found for an unknown id",
			setupMock: func(f roomFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), standardRoom().ID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	t.Run("updates the changed fields", func(t *testing.T) {
		f := newRoomFixture(t)

		newPrice := 52000.0

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(standardRoom(), nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, &newPrice, fields[model.FieldPricePerNight])

				return nil
			})

		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{PricePerNight: &newPrice}, standardRoom().ID)

		assert.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("deletes an existing room", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := f.svc.Delete(context.Background(), standardRoom().ID)

		assert.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		f := newRoomFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
