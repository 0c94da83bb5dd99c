package v1

import (
	"fmt"
	"net/http"

	"payme/api/internal/domain"
	"payme/api/internal/logger"

	"github.com/gin-gonic/gin"
)

// POST /checkout/start
func (h *Handler) checkoutStart(c *gin.Context) {
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

	checkout, err := h.services.Checkout.Start(data.InvoiceId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseCheckoutStarted{
		Error:    false,
		Checkout: *checkout,
	})
}

func (h *Handler) initCheckoutRoutes(g *gin.RouterGroup) {
	g.POST("/checkout/start", h.checkoutStart)
}
