package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"bamf/config"
	"bamf/infras/otel/mocks"
	"bamf/infras/session"
	"bamf/internal/domains/admin/model/dto"
	"bamf/internal/domains/admin/service"
	"bamf/shared/failure"
	"bamf/shared/password"
)

func adminConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := password.Hash("correct horse battery staple")
	assert.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Name = "bamf"
	cfg.Admin.Username = "frontdesk"
	cfg.Admin.PasswordHash = hash
	cfg.Admin.SessionSecret = "test-session-secret"
	cfg.Admin.SessionTTLMin = 60

	return cfg
}

func TestAdminService_Login(t *testing.T) {
	cfg := adminConfig(t)
	svc := service.New(cfg, session.New(cfg), mocks.NewOtel())

	tests := []struct {
		name    string
		req     dto.LoginRequest
		wantErr bool
	}{
		{
			name: "valid credentials issue a session",
			req:  dto.LoginRequest{Username: "frontdesk", Password: "correct horse battery staple"},
		},
		{
			name:    "wrong password",
			req:     dto.LoginRequest{Username: "frontdesk", Password: "nope"},
			wantErr: true,
		},
		{
			name:    "wrong username",
			req:     dto.LoginRequest{Username: "admin", Password: "correct horse battery staple"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.Token)
			assert.Equal(t, "frontdesk", res.User)

			sess, err := svc.ValidateSession(context.Background(), res.Token)
			assert.NoError(t, err)
			assert.Equal(t, "frontdesk", sess.User)
		})
	}
}

func TestAdminService_ValidateSession(t *testing.T) {
	cfg := adminConfig(t)
	svc := service.New(cfg, session.New(cfg), mocks.NewOtel())

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateSession(context.Background(), "not-a-token")

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		otherCfg := adminConfig(t)
		otherCfg.Admin.SessionSecret = "different-secret"

		token, _, err := session.New(otherCfg).IssueToken("frontdesk")
		assert.NoError(t, err)

		_, err = svc.ValidateSession(context.Background(), token)
		assert.Error(t, err)
	})

	t.Run("unconfigured credentials always reject", func(t *testing.T) {
		emptyCfg := &config.Config{}
		emptySvc := service.New(emptyCfg, session.New(emptyCfg), mocks.NewOtel())

		_, err := emptySvc.Login(context.Background(), dto.LoginRequest{Username: "", Password: ""})
		assert.Error(t, err)
	})
}
