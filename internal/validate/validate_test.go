package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddToCart(t *testing.T) {
	in, errs := ParseAddToCart([]byte(`{"productId":"p1"}`))
	assert.Nil(t, errs)
	assert.Equal(t, AddToCart{ProductID: "p1", Quantity: 1}, in)

	in, errs = ParseAddToCart([]byte(`{"productId":"p1","quantity":4}`))
	assert.Nil(t, errs)
	assert.Equal(t, 4, in.Quantity)

	cases := []struct {
		name   string
		body   string
		field  string
		reason string
	}{
		{"zero", `{"productId":"p1","quantity":0}`, "quantity", "must be a positive integer"},
		{"negative", `{"productId":"p1","quantity":-1}`, "quantity", "must be a positive integer"},
		{"over limit", `{"productId":"p1","quantity":10000}`, "quantity", "must be at most 9999"},
		{"max int", `{"productId":"p1","quantity":9223372036854775807}`, "quantity", "must be at most 9999"},
		{"not a number", `{"productId":"p1","quantity":"2"}`, "quantity", "expected an integer"},
		{"fraction", `{"productId":"p1","quantity":1.5}`, "quantity", "expected an integer"},
		{"no product", `{"quantity":1}`, "productId", "required"},
		{"empty", ``, "body", "malformed JSON"},
		{"truncated", `{"productId":`, "body", "malformed JSON"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := ParseAddToCart([]byte(tc.body))
			assert.Equal(t, tc.reason, errs[tc.field], "errors: %v", errs)
		})
	}
}

func TestParseUpdateCart(t *testing.T) {
	in, errs := ParseUpdateCart([]byte(`{"quantity":7}`))
	assert.Nil(t, errs)
	assert.Equal(t, 7, in.Quantity)

	_, errs = ParseUpdateCart([]byte(`{}`))
	assert.Equal(t, FieldErrors{"quantity": "required"}, errs)

	_, errs = ParseUpdateCart([]byte(`{"quantity":0}`))
	assert.Equal(t, FieldErrors{"quantity": "must be a positive integer"}, errs)

	_, errs = ParseUpdateCart([]byte(`{"quantity":10000}`))
	assert.Equal(t, FieldErrors{"quantity": "must be at most 9999"}, errs)
}

func TestParseLogin(t *testing.T) {
	in, errs := ParseLogin([]byte(`{"email":" alice@storefront.test ","password":"x"}`))
	assert.Nil(t, errs)
	assert.Equal(t, "alice@storefront.test", in.Email)

	_, errs = ParseLogin([]byte(`{"email":"alice","password":"x"}`))
	assert.Contains(t, errs, "email")

	_, errs = ParseLogin([]byte(`{"email":"alice@storefront.test"}`))
	assert.Equal(t, "required", errs["password"])
}

func TestID(t *testing.T) {
	for _, ok := range []string{"p1", "gbc-001", "3f1c2a4e-0d7b-4c55-9a3e-8f2b6f1d9c10"} {
		_, valid := ID(ok)
		assert.True(t, valid, ok)
	}
	for _, bad := range []string{"", "  ", "a b", "bad$id", "../etc"} {
		_, valid := ID(bad)
		assert.False(t, valid, bad)
	}
}
