package v1

import (
	"payme/api/internal/domain"

	"github.com/gin-gonic/gin"
)

type responseError struct {
	Error   bool   `json:"error"`
	ErrorID string `json:"error_id"`
	Msg     string `json:"msg"`
}

// /invoice/create
type responseInvoiceCreatedInfo struct {
	Id        string `json:"id"`
	QrCode    string `json:"qr_code"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at"`
}

type responseInvoiceCreated struct {
	Error   bool                       `json:"error"`
	Invoice responseInvoiceCreatedInfo `json:"invoice"`
}

// /checkout/start
type responseCheckoutStarted struct {
	Error    bool                    `json:"error"`
	Checkout domain.ResponseCheckout `json:"checkout"`
}

// /webhook/:provider
type responseWebhookAccepted struct {
	Error bool `json:"error"`
}

type responseMerchantCreated struct {
	Error      bool   `json:"error"`
	ApiKey     string `json:"api_key"`
	MerchantId string `json:"merchant_id"`
}

func responseErr(c *gin.Context, statusCode int, msg, errorID string) {
	c.AbortWithStatusJSON(statusCode, responseError{true, errorID, msg})
}
