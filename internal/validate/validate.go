package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// report json names so field errors match the request body
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	val.RegisterAlias("cartqty", fmt.Sprintf("gt=0,lte=%d", domain.MaxQuantity))
	return val
}

// FieldErrors maps a request field to the reason it was rejected.
// A nil FieldErrors means the input is valid.
type FieldErrors map[string]string

type AddToCart struct {
	ProductID string
	Quantity  int
}

type addToCartBody struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,cartqty"`
}

// ParseAddToCart decodes {productId, quantity}; quantity defaults to 1.
func ParseAddToCart(body []byte) (AddToCart, FieldErrors) {
	var in addToCartBody
	if errs := decode(body, &in); errs != nil {
		return AddToCart{}, errs
	}
	out := AddToCart{ProductID: in.ProductID, Quantity: 1}
	if in.Quantity != nil {
		out.Quantity = *in.Quantity
	}
	return out, nil
}

type UpdateCart struct {
	Quantity int
}

type updateCartBody struct {
	Quantity *int `json:"quantity" validate:"required,cartqty"`
}

// ParseUpdateCart decodes {quantity}; quantity is required and positive.
func ParseUpdateCart(body []byte) (UpdateCart, FieldErrors) {
	var in updateCartBody
	if errs := decode(body, &in); errs != nil {
		return UpdateCart{}, errs
	}
	return UpdateCart{Quantity: *in.Quantity}, nil
}

type Login struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ParseLogin decodes {email, password} and checks the email format.
func ParseLogin(body []byte) (Login, FieldErrors) {
	var in Login
	if errs := decode(body, &in); errs != nil {
		return Login{}, errs
	}
	email, ok := Email(in.Email)
	if !ok {
		return Login{}, FieldErrors{"email": "invalid format"}
	}
	in.Email = email
	return in, nil
}

func decode(body []byte, dst any) FieldErrors {
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return FieldErrors{typeErr.Field: "expected " + kindName(typeErr.Type)}
		}
		return FieldErrors{"body": "malformed JSON"}
	}
	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return FieldErrors{"body": err.Error()}
		}
		out := FieldErrors{}
		for _, fe := range verrs {
			out[fe.Field()] = reason(fe)
		}
		return out
	}
	return nil
}

func reason(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "required"
	case "gt":
		return "must be a positive integer"
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.ActualTag()
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "an integer"
	case reflect.String:
		return "a string"
	default:
		return t.Kind().String()
	}
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/cart item ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}
