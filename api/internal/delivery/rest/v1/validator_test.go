package v1

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func validate(t *testing.T, data NewInvoiceData) error {
	v := validator.New()
	if err := v.RegisterValidation("amount", validateAmount); err != nil {
		t.Fatal(err)
	}
	return v.Struct(data)
}

func validData() NewInvoiceData {
	return NewInvoiceData{
		Lifetime:    60,
		Currency:    "ZAR",
		AmountFloat: 100.50,
		Description: "two coffees",
		ApiKey:      strings.Repeat("a", 64),
	}
}

func TestInvoiceValidation(t *testing.T) {
	if err := validate(t, validData()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*NewInvoiceData)
	}{
		{"zero lifetime", func(d *NewInvoiceData) { d.Lifetime = 0 }},
		{"lifetime over 3 days", func(d *NewInvoiceData) { d.Lifetime = 4321 }},
		{"unknown currency", func(d *NewInvoiceData) { d.Currency = "BTC" }},
		{"zero amount", func(d *NewInvoiceData) { d.AmountFloat = 0 }},
		{"negative amount", func(d *NewInvoiceData) { d.AmountFloat = -5 }},
		{"amount over limit", func(d *NewInvoiceData) { d.AmountFloat = 2_000_000 }},
		{"short api key", func(d *NewInvoiceData) { d.ApiKey = "abc" }},
		{"long description", func(d *NewInvoiceData) { d.Description = strings.Repeat("x", 256) }},
	}

	for _, x := range tests {
		data := validData()
		x.mutate(&data)
		if err := validate(t, data); err == nil {
			t.Fatalf("%s: expected validation error", x.name)
		}
	}
}

func TestFormatValidationErr(t *testing.T) {
	data := validData()
	data.Currency = "BTC"

	err := validate(t, data)
	if err == nil {
		t.Fatal("expected validation error")
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatal("unexpected error type")
	}

	msg := formatValidationErr(data, validationErrs[0])
	if !strings.Contains(msg, "currency") {
		t.Fatalf("message does not name the json field: %s", msg)
	}
}
