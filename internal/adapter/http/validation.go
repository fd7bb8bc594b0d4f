package http

import (
	"math"
	"reflect"
	"regexp"
	"strings"

	"hdb-financing/internal/domain/financing"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields by their json names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// run id = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	// max 3 decimal places
	_ = v.RegisterValidation("dec3", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*1000)/1000)) < 1e-9
	})
	_ = v.RegisterValidation("salemode", func(fl validator.FieldLevel) bool {
		_, err := financing.ParseSaleMode(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("flattype", func(fl validator.FieldLevel) bool {
		_, err := financing.ParseFlatType(fl.Field().String())
		return err == nil
	})
	// a single lender name, an alias, or "both"
	_ = v.RegisterValidation("lender", func(fl validator.FieldLevel) bool {
		_, err := financing.ParseLenders([]string{fl.Field().String()})
		return err == nil
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// fieldPath drops the root struct name, keeping indexes: "listings[0].price".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := fieldPath(e)
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "dec3":
			out = append(out, FieldError{Field: field, Message: "must have at most 3 decimal places"})
		case "salemode":
			out = append(out, FieldError{Field: field, Message: "must be new-build, bto or resale"})
		case "flattype":
			out = append(out, FieldError{Field: field, Message: "must be one of 2-room, 3-room, 4-room, 5-room, executive"})
		case "lender":
			out = append(out, FieldError{Field: field, Message: "must be government, private, hdb, bank or both"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must have at least " + e.Param() + " item(s)"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must have at most " + e.Param() + " item(s) or characters"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
