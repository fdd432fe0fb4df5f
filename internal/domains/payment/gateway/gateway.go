package gateway

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=../mocks/gateway_mock.go -package=mocks

import (
	"context"
	"net/http"
	"time"

	"bamf/config"
	"bamf/shared/constant"
	"bamf/shared/failure"
)

// InitializeRequest carries everything a provider needs to open a hosted
// checkout session for a booking.
type InitializeRequest struct {
	Reference    string
	BookingID    string
	Email        string
	CustomerName string
	AmountMinor  int64
	Currency     string
	CallbackURL  string
	Description  string
}

type InitializeResult struct {
	AuthorizationURL string
	Reference        string
}

type VerifyResult struct {
	Paid           bool
	ProviderStatus string
	AmountMinor    int64
	Reference      string
}

// Gateway abstracts one hosted-checkout payment provider.
type Gateway interface {
	Name() string
	Initialize(ctx context.Context, req InitializeRequest) (InitializeResult, error)
	Verify(ctx context.Context, reference string) (VerifyResult, error)
}

// Registry resolves a provider name to its gateway.
type Registry interface {
	Resolve(provider string) (Gateway, error)
}

type registryImpl struct {
	gateways map[string]Gateway
}

func NewRegistry(paystack Gateway, monnify Gateway) Registry {
	return &registryImpl{
		gateways: map[string]Gateway{
			constant.ProviderPaystack: paystack,
			constant.ProviderMonnify:  monnify,
		},
	}
}

func (r *registryImpl) Resolve(provider string) (Gateway, error) {
	gw, ok := r.gateways[provider]
	if !ok {
		return nil, failure.BadRequestFromString("unknown payment provider: " + provider) // nolint:wrapcheck
	}

	return gw, nil
}

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{
		Timeout: time.Duration(cfg.Payment.TimeoutSeconds) * time.Second,
	}
}
