package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bamf/config"
	"bamf/infras/otel/mocks"
	contactMocks "bamf/internal/domains/contact/mocks"
	"bamf/internal/domains/contact/model"
	"bamf/internal/domains/contact/model/dto"
	"bamf/internal/domains/contact/service"
	cacheMocks "bamf/shared/cache/mocks"
	gDto "bamf/shared/dto"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return cfg
}

func TestContactService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := contactMocks.NewMockContact(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, testConfig(), mockCache, mockOtel)

	t.Run("stores a normalized message", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg model.ContactMessage) error {
				assert.Equal(t, "ada.obi@example.com", msg.Email)
				assert.Equal(t, "Ada Obi", msg.FullName)
				assert.NotEmpty(t, msg.ID)

				return nil
			})

		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Create(context.Background(), dto.CreateContactMessageRequest{
			FullName: "  Ada Obi ",
			Email:    " Ada.Obi@Example.com ",
			Subject:  "Late check-in",
			Message:  "Arriving after midnight, is the front desk open?",
		})

		assert.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		err := svc.Create(context.Background(), dto.CreateContactMessageRequest{
			FullName: "Ada Obi",
			Email:    "ada.obi@example.com",
			Message:  "Hello",
		})

		assert.Error(t, err)
	})
}

func TestContactService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := contactMocks.NewMockContact(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, testConfig(), mockCache, mockOtel)

	query := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	t.Run("lists messages on a cache miss", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.ContactMessage{{ID: "msg-1", FullName: "Ada Obi", Email: "ada.obi@example.com"}}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetAll(context.Background(), query, filter)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Messages, 1)
		assert.Equal(t, "ada.obi@example.com", res.Messages[0].Email)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("count failed"))

		_, err := svc.GetAll(context.Background(), query, filter)

		assert.Error(t, err)
	})
}
