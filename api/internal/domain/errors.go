package domain

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrMsgInternalServerError       = "internal server error"
	ErrMsgParamsInternalServerError = "internal server error: %s"
	ErrMsgBadRequest                = "bad request"
	ErrMsgParamsBadRequest          = "bad request: %s"
	ErrMsgRateLimitExceeded         = "rate limit exceeded"

	ErrMsgMerchantNotFound   = "merchant not found"
	ErrMsgMerchantNameExists = "merchant with that name already exists"
	ErrMsgApiKeyNotFound     = "api key not found"
	ErrMsgInvalidInvoiceId   = "invalid invoice id"
)

var (
	ErrInternalServerError = fmt.Errorf(ErrMsgInternalServerError)

	// input
	ErrValidation       = fmt.Errorf("validation error")
	ErrInvalidInvoiceId = fmt.Errorf("%w: %s", ErrValidation, ErrMsgInvalidInvoiceId)

	// not found
	ErrInvoiceIdNotFound = fmt.Errorf("invoice id not found")
	ErrAttemptNotFound   = fmt.Errorf("payment attempt not found")

	// state machines. all wrap ErrInvalidState so callers can branch on
	// the specific reason and still match the class.
	ErrInvalidState        = fmt.Errorf("invalid state")
	ErrInvoiceExpired      = fmt.Errorf("%w: invoice expired", ErrInvalidState)
	ErrInvoiceAlreadyPaid  = fmt.Errorf("%w: invoice already paid", ErrInvalidState)
	ErrInvoiceNotPayable   = fmt.Errorf("%w: invoice is not payable", ErrInvalidState)
	ErrAttemptAlreadyFinal = fmt.Errorf("%w: attempt already in the opposite terminal state", ErrInvalidState)

	// webhook pipeline
	ErrVerificationFailed  = fmt.Errorf("webhook verification failed")
	ErrWebhookUnresolvable = fmt.Errorf("no payment attempt resolvable for webhook event")
)

const (
	ErrParamEmptyInvoiceId = "invoice id is empty"
)

// ResponseInvoiceInfo is the public invoice projection returned by
// /invoice/info and embedded in checkout responses.
type ResponseInvoiceInfo struct {
	Id          string `json:"id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Status      string `json:"status"`
	IsPaid      bool   `json:"is_paid"`
	ExpiresAt   string `json:"expires_at"`
	CreatedAt   string `json:"created_at"`
}

// ResponseCheckout is what /checkout/start returns. FormParameters is
// only set for gateways that take a browser-posted form (PayFast).
type ResponseCheckout struct {
	AttemptId         string            `json:"attempt_id"`
	Provider          string            `json:"provider"`
	CheckoutUrl       string            `json:"checkout_url"`
	ProviderReference string            `json:"provider_reference"`
	FormParameters    map[string]string `json:"form_parameters,omitempty"`
}

func GetStatusByErr(err error) (status int) {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, ErrVerificationFailed):
		status = http.StatusBadRequest
	case errors.Is(err, ErrInvoiceIdNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, ErrAttemptNotFound), errors.Is(err, ErrWebhookUnresolvable):
		status = http.StatusInternalServerError
	default:
		status = http.StatusInternalServerError
	}
	return status
}
