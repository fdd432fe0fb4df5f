package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"bamf/config"
	"bamf/infras/otel"
	"bamf/shared/constant"
	"bamf/shared/failure"

	"github.com/rs/zerolog/log"
)

// Monnify settlement statuses that count as paid.
var monnifyPaidStatuses = map[string]struct{}{
	"PAID":            {},
	"PAID_SUCCESSFUL": {},
}

type monnifyGateway struct {
	cfg    *config.Config
	client *http.Client
	otel   otel.Otel
}

func NewMonnify(cfg *config.Config, ot otel.Otel) Gateway {
	return &monnifyGateway{
		cfg:    cfg,
		client: newHTTPClient(cfg),
		otel:   ot,
	}
}

func (m *monnifyGateway) Name() string {
	return constant.ProviderMonnify
}

type monnifyLoginResponse struct {
	RequestSuccessful bool   `json:"requestSuccessful"`
	ResponseMessage   string `json:"responseMessage"`
	ResponseBody      struct {
		AccessToken string `json:"accessToken"`
	} `json:"responseBody"`
}

type monnifyInitPayload struct {
	Amount             float64  `json:"amount"`
	CustomerName       string   `json:"customerName"`
	CustomerEmail      string   `json:"customerEmail"`
	PaymentReference   string   `json:"paymentReference"`
	PaymentDescription string   `json:"paymentDescription"`
	CurrencyCode       string   `json:"currencyCode"`
	ContractCode       string   `json:"contractCode"`
	RedirectURL        string   `json:"redirectUrl,omitempty"`
	PaymentMethods     []string `json:"paymentMethods"`
}

type monnifyInitResponse struct {
	RequestSuccessful bool   `json:"requestSuccessful"`
	ResponseMessage   string `json:"responseMessage"`
	ResponseBody      struct {
		CheckoutURL          string `json:"checkoutUrl"`
		TransactionReference string `json:"transactionReference"`
	} `json:"responseBody"`
}

type monnifyQueryResponse struct {
	RequestSuccessful bool   `json:"requestSuccessful"`
	ResponseMessage   string `json:"responseMessage"`
	ResponseBody      struct {
		PaymentStatus    string  `json:"paymentStatus"`
		AmountPaid       float64 `json:"amountPaid"`
		PaymentReference string  `json:"paymentReference"`
	} `json:"responseBody"`
}

// login exchanges the API key pair for a short-lived bearer token. Monnify
// requires this before every authenticated call.
func (m *monnifyGateway) login(ctx context.Context) (string, error) {
	if m.cfg.Payment.Monnify.APIKey == constant.Empty || m.cfg.Payment.Monnify.SecretKey == constant.Empty {
		return constant.Empty, failure.BadGateway("monnify credentials are not configured") // nolint:wrapcheck
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Payment.Monnify.BaseURL+"/api/v1/auth/login", nil)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to build monnify login request: %w", err)
	}

	creds := base64.StdEncoding.EncodeToString([]byte(m.cfg.Payment.Monnify.APIKey + ":" + m.cfg.Payment.Monnify.SecretKey))
	httpReq.Header.Set(constant.RequestHeaderAuthorization, "Basic "+creds)

	httpRes, err := m.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("monnify login request failed")

		return constant.Empty, failure.BadGateway("monnify is unreachable") // nolint:wrapcheck
	}
	defer func() { _ = httpRes.Body.Close() }()

	var parsed monnifyLoginResponse
	if err = decodeJSON(httpRes.Body, &parsed); err != nil {
		return constant.Empty, failure.BadGateway("monnify returned an unreadable response") // nolint:wrapcheck
	}

	if !parsed.RequestSuccessful || parsed.ResponseBody.AccessToken == constant.Empty {
		log.Error().Str("message", parsed.ResponseMessage).Msg("monnify login rejected")

		return constant.Empty, failure.BadGateway("monnify authentication failed") // nolint:wrapcheck
	}

	return parsed.ResponseBody.AccessToken, nil
}

func (m *monnifyGateway) Initialize(ctx context.Context, req InitializeRequest) (res InitializeResult, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Monnify.Initialize")
	defer scope.End()
	defer scope.TraceIfError(err)

	token, err := m.login(ctx)
	if err != nil {
		return res, err
	}

	// Monnify expects amounts in major units.
	payload := monnifyInitPayload{
		Amount:             float64(req.AmountMinor) / 100,
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.Email,
		PaymentReference:   req.Reference,
		PaymentDescription: req.Description,
		CurrencyCode:       req.Currency,
		ContractCode:       m.cfg.Payment.Monnify.ContractCode,
		RedirectURL:        req.CallbackURL,
		PaymentMethods:     []string{"CARD", "ACCOUNT_TRANSFER"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return res, fmt.Errorf("failed to marshal monnify init payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Payment.Monnify.BaseURL+"/api/v1/merchant/transactions/init-transaction", bytes.NewReader(body))
	if err != nil {
		return res, fmt.Errorf("failed to build monnify init request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	httpRes, err := m.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("monnify init request failed")

		return res, failure.BadGateway("monnify is unreachable") // nolint:wrapcheck
	}
	defer func() { _ = httpRes.Body.Close() }()

	var parsed monnifyInitResponse
	if err = decodeJSON(httpRes.Body, &parsed); err != nil {
		return res, failure.BadGateway("monnify returned an unreadable response") // nolint:wrapcheck
	}

	if !parsed.RequestSuccessful || parsed.ResponseBody.CheckoutURL == constant.Empty {
		log.Error().Str("message", parsed.ResponseMessage).Msg("monnify init rejected")

		return res, failure.BadGateway("monnify could not initialize the transaction") // nolint:wrapcheck
	}

	res.AuthorizationURL = parsed.ResponseBody.CheckoutURL
	res.Reference = req.Reference

	return res, nil
}

func (m *monnifyGateway) Verify(ctx context.Context, reference string) (res VerifyResult, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Monnify.Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	token, err := m.login(ctx)
	if err != nil {
		return res, err
	}

	endpoint := m.cfg.Payment.Monnify.BaseURL + "/api/v1/merchant/transactions/query?paymentReference=" + url.QueryEscape(reference)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return res, fmt.Errorf("failed to build monnify verify request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)

	httpRes, err := m.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("monnify verify request failed")

		return res, failure.BadGateway("monnify is unreachable") // nolint:wrapcheck
	}
	defer func() { _ = httpRes.Body.Close() }()

	var parsed monnifyQueryResponse
	if err = decodeJSON(httpRes.Body, &parsed); err != nil {
		return res, failure.BadGateway("monnify returned an unreadable response") // nolint:wrapcheck
	}

	status := strings.ToUpper(parsed.ResponseBody.PaymentStatus)
	_, paid := monnifyPaidStatuses[status]

	res.Paid = parsed.RequestSuccessful && paid
	res.ProviderStatus = status
	res.AmountMinor = int64(parsed.ResponseBody.AmountPaid * 100)
	res.Reference = parsed.ResponseBody.PaymentReference

	return res, nil
}
