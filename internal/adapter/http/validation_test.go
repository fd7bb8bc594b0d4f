package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		RunID string `validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{RunID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{RunID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "RunID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Price float64 `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{400000, 212.5, 0.9, 1.29} {
		if err := cv.Validate(P{Price: v}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{1.234, 2.9999} {
		err := cv.Validate(P{Price: v})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "Price", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestDec3Validation(t *testing.T) {
	type P struct {
		Proximity float64 `json:"proximity" validate:"dec3"`
	}
	cv := NewValidator()

	for _, v := range []float64{0, 4, 1.5, 3.999} {
		if err := cv.Validate(P{Proximity: v}); err != nil {
			t.Fatalf("expected dec3 OK for %v, got %v", v, err)
		}
	}
	err := cv.Validate(P{Proximity: 1.2345})
	if err == nil {
		t.Fatalf("expected dec3 error")
	}
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "proximity", "at most 3 decimal places") {
		t.Fatalf("unexpected field errors: %+v", fe)
	}
}

func TestEnumValidation(t *testing.T) {
	type P struct {
		Mode    string   `json:"sale_mode" validate:"salemode"`
		Type    string   `json:"flat_type" validate:"flattype"`
		Lenders []string `json:"lenders"   validate:"dive,lender"`
	}
	cv := NewValidator()

	ok := []P{
		{Mode: "resale", Type: "4-room", Lenders: []string{"government"}},
		{Mode: "BTO", Type: "Executive", Lenders: []string{"hdb", "bank"}},
		{Mode: "new-build", Type: "2-room", Lenders: []string{"both"}},
	}
	for _, p := range ok {
		if err := cv.Validate(p); err != nil {
			t.Fatalf("expected %+v valid, got %v", p, err)
		}
	}

	err := cv.Validate(P{Mode: "auction", Type: "penthouse", Lenders: []string{"hdb", "shark"}})
	if err == nil {
		t.Fatalf("expected enum errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "sale_mode", "new-build, bto or resale") {
		t.Fatalf("missing sale_mode message: %+v", fe)
	}
	if !containsFieldMsg(fe, "flat_type", "4-room") {
		t.Fatalf("missing flat_type message: %+v", fe)
	}
	if !containsFieldMsg(fe, "lenders[1]", "government, private") {
		t.Fatalf("missing lenders[1] message: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name  string   `validate:"required"`
		Min   int      `validate:"gte=10"`
		Max   int      `validate:"lte=5"`
		Price float64  `validate:"gt=0"`
		Items []string `validate:"min=1"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Name: "", Min: 9, Max: 6, Price: 0, Items: []string{}})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Min", "greater than or equal to 10") {
		t.Fatalf("missing gte message for Min: %+v", fe)
	}
	if !containsFieldMsg(fe, "Max", "less than or equal to 5") {
		t.Fatalf("missing lte message for Max: %+v", fe)
	}
	if !containsFieldMsg(fe, "Price", "greater than 0") {
		t.Fatalf("missing gt message for Price: %+v", fe)
	}
	if !containsFieldMsg(fe, "Items", "at least 1") {
		t.Fatalf("missing min message for Items: %+v", fe)
	}
}

func TestNestedFieldPath(t *testing.T) {
	cv := NewValidator()
	req := createQuoteReq{
		Buyers:   []buyerReq{{MonthlyIncome: 5000}},
		Listings: []listingReq{{SaleMode: "resale", FlatType: "4-room", Price: 0}},
		Lenders:  []string{"hdb"},
	}
	fe := ToFieldErrors(cv.Validate(req))
	if !containsFieldMsg(fe, "listings[0].price", "greater than 0") {
		t.Fatalf("expected listings[0].price error, got %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
