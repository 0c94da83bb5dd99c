// INVOICE ROUTES

package v1

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"payme/api/internal/domain"
	"payme/api/internal/infra/postgres"
	"payme/api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POST /{version}/invoice/create
func (h *Handler) invoiceCreate(c *gin.Context) {
	var errid = logger.GenErrorId()

	invoiceData, ok := filterInvoiceQuery(c)
	if !ok || invoiceData == nil {
		return
	}

	merchant, err := h.services.Merchants.FindByApiKey(h.db, invoiceData.ApiKey)
	if err != nil {
		if postgres.IsNotFound(err) {
			responseErr(c, http.StatusBadRequest, domain.ErrMsgApiKeyNotFound, "")
		} else {
			responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
			h.log.TemplInvoiceErr("find merchant by api key error: "+err.Error(), errid, logger.NA, invoiceData.Amount, invoiceData.Currency, c.Request.RequestURI, logger.NA, c.ClientIP())
		}
		return
	}

	if invoiceRateLimit(invoiceData.ApiKey, DEFAULT_LIMIT) {
		responseErr(c, http.StatusTooManyRequests, domain.ErrMsgRateLimitExceeded, "")
		return
	}

	invoiceId := uuid.NewString()

	invoice := &domain.Invoices{
		InvoiceID:   invoiceId,
		MerchantID:  merchant.MerchantID,
		Amount:      invoiceData.Amount,
		Currency:    invoiceData.Currency,
		Description: invoiceData.Description,
		Status:      domain.STATUS_CREATED,
		ExpiresAt:   time.Now().Add(time.Duration(invoiceData.Lifetime) * time.Minute),
	}

	if err := h.services.Invoices.Create(h.db, invoice); err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplInvoiceErr("invoice create error: "+err.Error(), errid, invoiceId, invoiceData.Amount, invoiceData.Currency, c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseInvoiceCreated{
		Error: false,
		Invoice: responseInvoiceCreatedInfo{
			Id:        invoiceId,
			QrCode:    fmt.Sprintf("%s://%s/v1/invoice/qr-code/%s", h.config.Api.Proto, h.config.Api.Ipv4, invoiceId),
			Status:    invoice.Status.ToString(),
			ExpiresAt: invoice.ExpiresAt.UTC().Format(time.RFC3339),
		},
	})

	h.log.TemplInvoiceInfo("new invoice created", errid, invoiceId, invoiceData.Amount, invoiceData.Currency, c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
}

// POST /invoice/info
func (h *Handler) invoiceInfo(c *gin.Context) {
	var data struct {
		InvoiceId string `json:"invoice_id"`
	}

	var errid = logger.GenErrorId()

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	if data.InvoiceId == "" {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, domain.ErrParamEmptyInvoiceId), "")
		return
	}

	invoice, err := h.services.Invoices.FindGlobal(h.db, data.InvoiceId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, h.services.Invoices.Info(invoice))
}

// GET /invoice/qr-code/:invoice_id
// renders the hosted payment page url as a png
func (h *Handler) qrCode(c *gin.Context) {
	var errid = logger.GenErrorId()

	invoiceId := c.Param("invoice_id")

	invoice, err := h.services.Invoices.FindGlobal(h.db, invoiceId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	payUrl := fmt.Sprintf("%s://%s/pay/%s", h.config.Api.Proto, h.config.Api.Ipv4, invoice.InvoiceID)

	qrCode, err := h.services.QrCodes.FindOrNew(payUrl)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplInvoiceErr("qr code find or new error: "+err.Error(), errid, invoiceId, decimal.Zero, invoice.Currency, c.Request.RequestURI, invoice.MerchantID, c.ClientIP())
		return
	}

	imageData, err := base64.RawStdEncoding.DecodeString(qrCode)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplInvoiceErr("qr code decode error: "+err.Error(), errid, invoiceId, decimal.Zero, invoice.Currency, c.Request.RequestURI, invoice.MerchantID, c.ClientIP())
		return
	}

	c.Data(http.StatusOK, "image/png", imageData)
}

func (h *Handler) initInvoiceRoutes(g *gin.RouterGroup) {
	g.POST("/invoice/create", h.invoiceCreate)
	g.POST("/invoice/info", h.invoiceInfo)
	g.GET("/invoice/qr-code/:invoice_id", h.qrCode)
}
