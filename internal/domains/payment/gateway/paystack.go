package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"bamf/config"
	"bamf/infras/otel"
	"bamf/shared/constant"
	"bamf/shared/failure"

	"github.com/rs/zerolog/log"
)

const paystackSuccessStatus = "success"

type paystackGateway struct {
	cfg    *config.Config
	client *http.Client
	otel   otel.Otel
}

func NewPaystack(cfg *config.Config, ot otel.Otel) Gateway {
	return &paystackGateway{
		cfg:    cfg,
		client: newHTTPClient(cfg),
		otel:   ot,
	}
}

func (p *paystackGateway) Name() string {
	return constant.ProviderPaystack
}

type paystackInitPayload struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Reference   string            `json:"reference"`
	Currency    string            `json:"currency"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		Reference string `json:"reference"`
	} `json:"data"`
}

func (p *paystackGateway) Initialize(ctx context.Context, req InitializeRequest) (res InitializeResult, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Paystack.Initialize")
	defer scope.End()
	defer scope.TraceIfError(err)

	if p.cfg.Payment.Paystack.SecretKey == constant.Empty {
		return res, failure.BadGateway("paystack secret key is not configured") // nolint:wrapcheck
	}

	payload := paystackInitPayload{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Reference:   req.Reference,
		Currency:    req.Currency,
		CallbackURL: req.CallbackURL,
		Metadata:    map[string]string{"booking_id": req.BookingID},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return res, fmt.Errorf("failed to marshal paystack init payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Payment.Paystack.BaseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return res, fmt.Errorf("failed to build paystack init request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+p.cfg.Payment.Paystack.SecretKey)
	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	httpRes, err := p.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("paystack init request failed")

		return res, failure.BadGateway("paystack is unreachable") // nolint:wrapcheck
	}
	defer func() { _ = httpRes.Body.Close() }()

	var parsed paystackInitResponse
	if err = decodeJSON(httpRes.Body, &parsed); err != nil {
		return res, failure.BadGateway("paystack returned an unreadable response") // nolint:wrapcheck
	}

	if httpRes.StatusCode < http.StatusOK || httpRes.StatusCode >= http.StatusMultipleChoices || !parsed.Status || parsed.Data.AuthorizationURL == constant.Empty {
		log.Error().Int("status", httpRes.StatusCode).Str("message", parsed.Message).Msg("paystack init rejected")

		return res, failure.BadGateway("paystack could not initialize the transaction") // nolint:wrapcheck
	}

	res.AuthorizationURL = parsed.Data.AuthorizationURL
	res.Reference = parsed.Data.Reference

	if res.Reference == constant.Empty {
		res.Reference = req.Reference
	}

	return res, nil
}

func (p *paystackGateway) Verify(ctx context.Context, reference string) (res VerifyResult, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Paystack.Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	if p.cfg.Payment.Paystack.SecretKey == constant.Empty {
		return res, failure.BadGateway("paystack secret key is not configured") // nolint:wrapcheck
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.Payment.Paystack.BaseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return res, fmt.Errorf("failed to build paystack verify request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+p.cfg.Payment.Paystack.SecretKey)

	httpRes, err := p.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("paystack verify request failed")

		return res, failure.BadGateway("paystack is unreachable") // nolint:wrapcheck
	}
	defer func() { _ = httpRes.Body.Close() }()

	var parsed paystackVerifyResponse
	if err = decodeJSON(httpRes.Body, &parsed); err != nil {
		return res, failure.BadGateway("paystack returned an unreadable response") // nolint:wrapcheck
	}

	res.Paid = parsed.Status && parsed.Data.Status == paystackSuccessStatus
	res.ProviderStatus = parsed.Data.Status
	res.AmountMinor = parsed.Data.Amount
	res.Reference = parsed.Data.Reference

	return res, nil
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
