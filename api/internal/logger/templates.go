package logger

import (
	"github.com/shopspring/decimal"
)

func (l Logger) TemplInvoiceErr(message string, errorId string, invoiceId string, amount decimal.Decimal, currency string, uri string, merchantId string, ip string) string {
	l.Error(message, true, "invoice_id", invoiceId, "amount", amount.String(), "currency", currency, "uri", uri, "error_id", errorId, "ip", ip, "merchant_id", merchantId)
	return errorId
}

func (l Logger) TemplInvoiceInfo(message string, errorId string, invoiceId string, amount decimal.Decimal, currency string, uri string, merchantId string, ip string) string {
	l.Info(message, true, "invoice_id", invoiceId, "amount", amount.String(), "currency", currency, "uri", uri, "error_id", errorId, "ip", ip, "merchant_id", merchantId)
	return errorId
}

func (l Logger) TemplCheckoutErr(message string, errorId string, invoiceId string, attemptId string, provider string) string {
	l.Error(message, true, "invoice_id", invoiceId, "attempt_id", attemptId, "provider", provider, "error_id", errorId)
	return errorId
}

func (l Logger) TemplCheckoutInfo(message string, invoiceId string, attemptId string, provider string) {
	l.Info(message, true, "invoice_id", invoiceId, "attempt_id", attemptId, "provider", provider)
}

func (l Logger) TemplWebhookErr(message string, errorId string, provider string, providerEventId string, payloadHash string) string {
	l.Error(message, true, "provider", provider, "provider_event_id", providerEventId, "payload_hash", payloadHash, "error_id", errorId)
	return errorId
}

func (l Logger) TemplWebhookInfo(message string, provider string, providerEventId string, payloadHash string) {
	l.Info(message, true, "provider", provider, "provider_event_id", providerEventId, "payload_hash", payloadHash)
}

// security-relevant rejection; logged apart from ordinary webhook failures
func (l Logger) TemplVerificationErr(message string, errorId string, provider string, ip string) string {
	l.Error(message, true, "provider", provider, "ip", ip, "error_id", errorId, "security", true)
	return errorId
}

// use only for fatal errors
func (l Logger) TemplHTTPError(message string, ipv4 string, err error) {
	l.Fatal(message, true, "error", err.Error(), "ipv4", ipv4)
}
