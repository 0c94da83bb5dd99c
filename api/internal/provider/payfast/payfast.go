package payfast

import (
	"fmt"
	"net/url"
	"strings"

	"payme/api/internal/config"
	"payme/api/internal/domain"
	"payme/api/internal/provider"
)

// PayFastProvider implements the gateway contract for PayFast hosted
// checkout and its ITN (Instant Transaction Notification) webhooks.
type PayFastProvider struct {
	config config.PayFast
	clock  domain.Clock
}

func NewPayFastProvider(config config.PayFast, clock domain.Clock) *PayFastProvider {
	return &PayFastProvider{config: config, clock: clock}
}

func (p *PayFastProvider) Name() string {
	return domain.PROVIDER_PAYFAST
}

// CreateCheckoutSession builds the signed form parameters the browser
// must POST to the PayFast process endpoint. PayFast assigns its own
// payment id only after the fact, so the provider reference is synthesised
// from the invoice id.
func (p *PayFastProvider) CreateCheckoutSession(invoice *domain.Invoices, attemptId string, urls provider.CheckoutUrls) (*provider.CheckoutSession, error) {
	// insertion order is part of the signature contract
	params := []Param{
		{"merchant_id", p.config.MerchantId},
		{"merchant_key", p.config.MerchantKey},
		{"return_url", urls.SuccessUrl},
		{"cancel_url", urls.CancelUrl},
		{"notify_url", p.config.NotifyUrl},
		{"amount", invoice.Amount.StringFixed(2)},
		{"item_name", invoice.Description},
		{"m_payment_id", invoice.InvoiceID},
		{"custom_str1", attemptId},
	}

	signature := GenerateSignature(params, p.config.Passphrase)

	formParams := make(map[string]string, len(params)+1)
	for _, param := range params {
		if strings.TrimSpace(param.Value) == "" {
			continue
		}
		formParams[param.Key] = param.Value
	}
	formParams["signature"] = signature

	return &provider.CheckoutSession{
		CheckoutUrl:       p.config.ProcessUrl(),
		ProviderReference: "payfast_" + invoice.InvoiceID,
		FormParameters:    formParams,
	}, nil
}

func (p *PayFastProvider) VerifyAndParseWebhook(rawBody []byte, headers map[string]string) (*domain.CanonicalPaymentEvent, error) {
	if err := p.checkSourceIp(headers); err != nil {
		return nil, err
	}

	params, err := parseFormBody(string(rawBody))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed payfast ITN body: %s", domain.ErrVerificationFailed, err.Error())
	}

	var providedSignature string
	signedParams := params[:0:0]
	for _, param := range params {
		if param.Key == "signature" {
			providedSignature = param.Value
			continue
		}
		signedParams = append(signedParams, param)
	}

	if providedSignature == "" {
		return nil, fmt.Errorf("%w: no signature in payfast ITN", domain.ErrVerificationFailed)
	}

	if !VerifySignature(signedParams, providedSignature, p.config.Passphrase) {
		return nil, fmt.Errorf("%w: payfast signature mismatch", domain.ErrVerificationFailed)
	}

	fields := make(map[string]string, len(signedParams))
	for _, param := range signedParams {
		fields[param.Key] = param.Value
	}

	status, err := mapPaymentStatus(fields["payment_status"])
	if err != nil {
		return nil, err
	}

	return &domain.CanonicalPaymentEvent{
		Provider:         domain.PROVIDER_PAYFAST,
		EventID:          fields["pf_payment_id"],
		AttemptReference: fields["custom_str1"], // attempt id travels in custom_str1
		InvoiceID:        fields["m_payment_id"],
		Status:           status,
		OccurredAt:       p.clock.Now(),
		RawType:          fields["payment_status"],
	}, nil
}

// ITNs come from a fixed set of PayFast servers. sandbox mode relaxes the
// check so localhost/ngrok deliveries work during testing.
func (p *PayFastProvider) checkSourceIp(headers map[string]string) error {
	if p.config.Sandbox {
		return nil
	}

	ip := headers["Remote-Addr"]
	for _, allowed := range p.config.AllowedIps {
		if ip == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: payfast ITN from unexpected ip '%s'", domain.ErrVerificationFailed, ip)
}

// parseFormBody decodes an application/x-www-form-urlencoded body while
// preserving parameter order, which url.ParseQuery would lose.
func parseFormBody(body string) ([]Param, error) {
	var params []Param

	if body == "" {
		return params, nil
	}

	for _, pair := range strings.Split(body, "&") {
		keyValue := strings.SplitN(pair, "=", 2)
		if len(keyValue) != 2 {
			continue
		}
		key, err := url.QueryUnescape(keyValue[0])
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(keyValue[1])
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Key: key, Value: value})
	}

	return params, nil
}

func mapPaymentStatus(paymentStatus string) (domain.EventStatus, error) {
	switch strings.ToUpper(paymentStatus) {
	case "COMPLETE":
		return domain.EVENT_SUCCEEDED, nil
	case "FAILED":
		return domain.EVENT_FAILED, nil
	case "CANCELLED": // treated as failed
		return domain.EVENT_FAILED, nil
	case "PENDING":
		return domain.EVENT_PENDING, nil
	default:
		return 0, fmt.Errorf("%w: unknown payfast payment status '%s'", domain.ErrVerificationFailed, paymentStatus)
	}
}
