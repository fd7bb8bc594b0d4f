package http

import (
	"net/http"

	"hdb-financing/internal/usecase/financing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	uc  *financing.Usecase
	log *zap.Logger
}

func NewQuoteHandler(uc *financing.Usecase, log *zap.Logger) *QuoteHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuoteHandler{uc: uc, log: log}
}

type buyerReq struct {
	MonthlyIncome  float64 `json:"monthly_income"  validate:"gte=0,dec2"`
	SavingsBalance float64 `json:"savings_balance" validate:"gte=0,dec2"`
}

type listingReq struct {
	SaleMode    string  `json:"sale_mode"    validate:"required,salemode"`
	FlatType    string  `json:"flat_type"    validate:"required,flattype"`
	Price       float64 `json:"price"        validate:"gt=0,dec2"`
	Proximity   float64 `json:"proximity"    validate:"gte=0,dec3"`
	Town        string  `json:"town"         validate:"max=64"`
	ProjectName string  `json:"project_name" validate:"max=128"`
	Block       string  `json:"block"        validate:"max=16"`
	UnitNo      string  `json:"unit_no"      validate:"max=16"`
}

type createQuoteReq struct {
	Buyers   []buyerReq   `json:"buyers"   validate:"required,min=1,max=4,dive"`
	Listings []listingReq `json:"listings" validate:"required,min=1,max=200,dive"`
	Lenders  []string     `json:"lenders"  validate:"required,min=1,dive,lender"`
	// Annual percent
	PrivateAnnualRate *float64 `json:"private_annual_rate" validate:"omitempty,gte=0,lte=100"`
}

func (r createQuoteReq) toInput() financing.QuoteInput {
	in := financing.QuoteInput{
		Buyers:            make([]financing.BuyerInput, len(r.Buyers)),
		Listings:          make([]financing.ListingInput, len(r.Listings)),
		Lenders:           r.Lenders,
		PrivateAnnualRate: r.PrivateAnnualRate,
	}
	for i, b := range r.Buyers {
		in.Buyers[i] = financing.BuyerInput(b)
	}
	for i, l := range r.Listings {
		in.Listings[i] = financing.ListingInput(l)
	}
	return in
}

func (h *QuoteHandler) CreateQuote(c echo.Context) error {
	var req createQuoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Quote(c.Request().Context(), req.toInput())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *QuoteHandler) GetQuote(c echo.Context) error {
	runID := c.Param("run_id")
	if !reHex32.MatchString(runID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "run_id must be 32-char lowercase hex"})
	}
	dto, err := h.uc.GetRun(c.Request().Context(), runID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *QuoteHandler) fail(c echo.Context, err error) error {
	code, body := errorStatus(err)
	if code == http.StatusInternalServerError {
		h.log.Error("financing: request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.JSON(code, body)
}
