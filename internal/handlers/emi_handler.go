package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/nirmaanhomes/backend/internal/emi"
	"github.com/nirmaanhomes/backend/internal/services"
)

type EMIHandler struct {
	validator *services.ValidationHelper
}

func NewEMIHandler() *EMIHandler {
	return &EMIHandler{
		validator: services.NewValidationHelper(),
	}
}

// EMIRequest represents the loan quote payload
// @Description Loan quote request structure
type EMIRequest struct {
	LoanAmount   float64 `json:"loanAmount" validate:"required,gt=0" example:"5000000"` // Principal in rupees
	InterestRate float64 `json:"interestRate" validate:"gte=0" example:"9.5"`           // Annual rate, percent
	Tenure       int     `json:"tenure" validate:"required,gt=0" example:"20"`          // Tenure in years
}

// EMIResponse carries the quote plus display-ready rupee strings.
type EMIResponse struct {
	Calculation emi.Calculation   `json:"calculation"`
	Formatted   map[string]string `json:"formatted"`
}

// Calculate computes a loan quote
// @Summary Calculate EMI
// @Description Compute the monthly installment, total payable, and total interest for a home loan
// @Tags emi
// @Accept json
// @Produce json
// @Param request body EMIRequest true "Loan quote request"
// @Success 200 {object} EMIResponse
// @Failure 400 {object} services.ErrorResponse "Invalid input"
// @Router /emi/calculate [post]
func (h *EMIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req EMIRequest
	if err := dec.Decode(&req); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	calc, err := emi.Compute(req.LoanAmount, req.InterestRate, req.Tenure)
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	services.RespondJSON(w, http.StatusOK, EMIResponse{
		Calculation: calc,
		Formatted: map[string]string{
			"emi":           emi.FormatINR(calc.MonthlyEMI),
			"totalAmount":   emi.FormatINR(calc.TotalPayable),
			"totalInterest": emi.FormatINR(calc.TotalInterest),
		},
	})
}
