package v1

import (
	"net/http"

	"payme/api/internal/domain"
	"payme/api/internal/infra/postgres"
	"payme/api/internal/logger"
	"payme/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func (h *Handler) merchantInit(c *gin.Context) {
	var data struct {
		MerchantName string `json:"merchant_name" validate:"required,min=1,max=32,alphanum"`
	}

	errid := logger.GenErrorId()

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, errid)
		h.log.Debug("bind json error: " + err.Error())
		return
	}

	v := validator.New()

	if err := v.Struct(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, errid)
		return
	}

	_, err := h.services.Merchants.FindByName(h.db, data.MerchantName)
	if err == nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgMerchantNameExists, "")
		return
	}
	if !postgres.IsNotFound(err) {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		return
	}

	merchantId := uuid.NewString()
	apiKey := utils.Sha256Hex([]byte(data.MerchantName + merchantId))

	err = h.services.Merchants.Create(h.db, &domain.Merchants{
		MerchantName: data.MerchantName,
		MerchantID:   merchantId,
		ApiKey:       apiKey,
	})
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseMerchantCreated{
		Error:      false,
		ApiKey:     apiKey,
		MerchantId: merchantId,
	})
}

func (h *Handler) initMerchantRoutes(g *gin.RouterGroup) {
	g.POST("/merchant/create", h.adminAccessMiddleware(), h.merchantInit)
}
