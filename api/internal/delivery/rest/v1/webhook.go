package v1

import (
	"net/http"

	"payme/api/internal/domain"
	"payme/api/internal/logger"

	"github.com/gin-gonic/gin"
)

// POST /webhook/:provider
// the gateway-facing ingestion endpoint. duplicates are acknowledged with
// 200 like first deliveries, so gateways stop retrying.
func (h *Handler) webhook(c *gin.Context) {
	var errid = logger.GenErrorId()

	providerName := c.Param("provider")

	rawBody, err := c.GetRawData()
	if err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	headers := map[string]string{
		"Remote-Addr":  c.ClientIP(),
		"Content-Type": c.ContentType(),
	}

	if err := h.services.Webhooks.Process(providerName, rawBody, headers); err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWebhookAccepted{Error: false})
}

func (h *Handler) initWebhookRoutes(g *gin.RouterGroup) {
	g.POST("/webhook/:provider", h.webhook)
}
