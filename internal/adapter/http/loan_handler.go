package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lending-engine/internal/domain/loan"
	"lending-engine/internal/usecase/lifecycle"
)

// LoanHandler serves loan lifecycle endpoints backed by the controller.
type LoanHandler struct{ ctrl *lifecycle.Controller }

func NewLoanHandler(ctrl *lifecycle.Controller) *LoanHandler { return &LoanHandler{ctrl: ctrl} }

// RegisterRoutes wires the loan API onto the echo instance. mws are applied
// to the mutating routes only (e.g. the idempotency middleware).
func (h *LoanHandler) RegisterRoutes(e *echo.Echo, mws ...echo.MiddlewareFunc) {
	e.POST("/loans", h.CreateLoan, mws...)
	e.GET("/loans", h.ListLoans)
	e.GET("/loans/:id", h.GetLoan)
	e.POST("/loans/:id/approve", h.ApproveLoan, mws...)
	e.POST("/loans/:id/reject", h.RejectLoan, mws...)
	e.POST("/loans/:id/invest", h.AddInvestment, mws...)
	e.POST("/loans/:id/disburse", h.DisburseLoan, mws...)
	e.POST("/loans/:id/agreement", h.AttachAgreement, mws...)
	e.GET("/loans/borrower/:borrower_id", h.ListByBorrower)
	e.GET("/loans/state/:state", h.ListByState)
}

type createLoanReq struct {
	BorrowerID string  `json:"borrower_id" validate:"required"`
	Principal  int64   `json:"principal_amount" validate:"required,gt=0"`
	Rate       float64 `json:"rate" validate:"required,gt=0"`
	ROI        float64 `json:"roi" validate:"required,gt=0"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request body", nil, nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusUnprocessableEntity, "Failed to create loan", nil, ToFieldErrors(err))
	}

	dto, err := h.ctrl.Create(c.Request().Context(), lifecycle.CreateLoanInput{
		BorrowerID: req.BorrowerID,
		Principal:  req.Principal,
		Rate:       req.Rate,
		ROI:        req.ROI,
	})
	if err != nil {
		return respondError(c, "Failed to create loan", err)
	}
	return respond(c, http.StatusCreated, "Loan created successfully", dto, nil)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.ctrl.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, "Loan not found", err)
	}
	return respond(c, http.StatusOK, "OK", dto, nil)
}

type approveLoanReq struct {
	ValidatorID string `json:"validator_id" validate:"required"`
	ProofURL    string `json:"proof_url" validate:"required,url"`
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	var req approveLoanReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request body", nil, nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusUnprocessableEntity, "Failed to approve loan", nil, ToFieldErrors(err))
	}

	dto, err := h.ctrl.Approve(c.Request().Context(), lifecycle.ApproveInput{
		LoanID:      c.Param("id"),
		ValidatorID: req.ValidatorID,
		ProofURL:    req.ProofURL,
	})
	if err != nil {
		return respondError(c, "Failed to approve loan", err)
	}
	return respond(c, http.StatusOK, "Loan approved successfully", dto, nil)
}

type rejectLoanReq struct {
	ValidatorID string `json:"validator_id" validate:"required"`
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	var req rejectLoanReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request body", nil, nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusUnprocessableEntity, "Failed to reject loan", nil, ToFieldErrors(err))
	}

	dto, err := h.ctrl.Reject(c.Request().Context(), lifecycle.RejectInput{
		LoanID:      c.Param("id"),
		ValidatorID: req.ValidatorID,
	})
	if err != nil {
		return respondError(c, "Failed to reject loan", err)
	}
	return respond(c, http.StatusOK, "Loan rejected", dto, nil)
}

type addInvestmentReq struct {
	InvestorID string `json:"investor_id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
}

func (h *LoanHandler) AddInvestment(c echo.Context) error {
	var req addInvestmentReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request body", nil, nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusUnprocessableEntity, "Failed to add investment", nil, ToFieldErrors(err))
	}

	dto, err := h.ctrl.Invest(c.Request().Context(), lifecycle.InvestInput{
		LoanID:     c.Param("id"),
		InvestorID: req.InvestorID,
		Email:      req.Email,
		Amount:     req.Amount,
	})
	if err != nil {
		return respondError(c, "Failed to add investment", err)
	}
	return respond(c, http.StatusOK, "Investment accepted", dto, nil)
}

type disburseLoanReq struct {
	FieldOfficerID  string `json:"field_officer_id" validate:"required"`
	SignedAgreement string `json:"signed_agreement" validate:"required,url"`
}

func (h *LoanHandler) DisburseLoan(c echo.Context) error {
	var req disburseLoanReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request body", nil, nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusUnprocessableEntity, "Failed to disburse loan", nil, ToFieldErrors(err))
	}

	dto, err := h.ctrl.Disburse(c.Request().Context(), lifecycle.DisburseInput{
		LoanID:          c.Param("id"),
		FieldOfficerID:  req.FieldOfficerID,
		SignedAgreement: req.SignedAgreement,
	})
	if err != nil {
		return respondError(c, "Failed to disburse loan", err)
	}
	return respond(c, http.StatusOK, "Loan disbursed successfully", dto, nil)
}

type agreementLetterReq struct {
	LetterURL string `json:"letter_url" validate:"required,url"`
}

func (h *LoanHandler) AttachAgreement(c echo.Context) error {
	var req agreementLetterReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request body", nil, nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusUnprocessableEntity, "Failed to attach agreement letter", nil, ToFieldErrors(err))
	}

	if err := h.ctrl.AttachAgreementLetter(c.Request().Context(), c.Param("id"), req.LetterURL); err != nil {
		return respondError(c, "Failed to attach agreement letter", err)
	}
	return respond(c, http.StatusOK, "Agreement letter attached", nil, nil)
}

func (h *LoanHandler) ListByBorrower(c echo.Context) error {
	dtos, err := h.ctrl.ListByBorrower(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return respondError(c, "Failed to list loans", err)
	}
	return respond(c, http.StatusOK, "OK", dtos, nil)
}

func (h *LoanHandler) ListByState(c echo.Context) error {
	dtos, err := h.ctrl.ListByState(c.Request().Context(), loan.State(c.Param("state")))
	if err != nil {
		return respondError(c, "Failed to list loans", err)
	}
	return respond(c, http.StatusOK, "OK", dtos, nil)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	dtos, err := h.ctrl.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondError(c, "Failed to list loans", err)
	}
	return respond(c, http.StatusOK, "OK", dtos, nil)
}
