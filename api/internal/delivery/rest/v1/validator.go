package v1

import (
	"fmt"
	"net/http"
	"reflect"

	"payme/api/internal/domain"
	"payme/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// lifetime - minutes, max 3 days
// amount - positive, bounded per currency
// api key - sha256 hex, 64 chars

var maxAmount = decimal.NewFromInt(1_000_000)

type NewInvoiceData struct {
	Lifetime    int     `json:"lifetime" validate:"required,gte=1,lte=4320"`
	Currency    string  `json:"currency" validate:"required,oneof=ZAR USD EUR"`
	AmountFloat float64 `json:"amount" validate:"required,amount"`
	Description string  `json:"description" validate:"max=255"`
	ApiKey      string  `json:"api_key" validate:"min=64,max=64"`

	Amount decimal.Decimal `json:"-"` // used after validation
}

// checks the validity of the create-invoice body.
// returns false if there is an error (already written to the response)
func filterInvoiceQuery(c *gin.Context) (*NewInvoiceData, bool) {
	var data NewInvoiceData
	err := c.ShouldBindJSON(&data)
	if err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return nil, false
	}

	v := validator.New()

	v.RegisterValidation("amount", validateAmount)
	err = v.Struct(data)
	if err == nil {
		data.Amount = decimal.NewFromFloat(data.AmountFloat)
		return &data, true
	}

	validationErrs, castErr := utils.SafeCast[validator.ValidationErrors](err)
	if castErr != nil || len(validationErrs) == 0 {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return nil, false
	}

	responseErr(c, http.StatusBadRequest, formatValidationErr(data, validationErrs[0]), "")

	return nil, false
}

func validateAmount(fl validator.FieldLevel) bool {
	amount := decimal.NewFromFloat(fl.Field().Float())
	return amount.IsPositive() && amount.LessThanOrEqual(maxAmount)
}

func formatValidationErr(data any, err validator.FieldError) string {
	jsonTag := getJSONTag(data, err.StructField())

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", jsonTag)
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of '%s'", jsonTag, err.Param())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s characters long", jsonTag, err.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters long", jsonTag, err.Param())
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", jsonTag, err.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", jsonTag, err.Param())
	case "amount":
		return fmt.Sprintf("field '%s' must be greater than 0 and at most %s", jsonTag, maxAmount)
	default:
		return fmt.Sprintf("invalid field '%s'", jsonTag)
	}
}

func getJSONTag(structType any, fieldName string) string {
	typ := reflect.TypeOf(structType)
	field, _ := typ.FieldByName(fieldName)
	tag := field.Tag.Get("json")
	if tag == "" {
		return fieldName
	}
	return tag
}
