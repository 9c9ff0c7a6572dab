package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	handler := NewEMIHandler()

	t.Run("standard quote", func(t *testing.T) {
		body := `{"loanAmount":5000000,"interestRate":9.5,"tenure":20}`
		rec := httptest.NewRecorder()
		handler.Calculate(rec, httptest.NewRequest("POST", "/emi/calculate", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp EMIResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(46607), resp.Calculation.MonthlyEMI)
		assert.Equal(t, "₹46,607", resp.Formatted["emi"])
		assert.NotEmpty(t, resp.Formatted["totalAmount"])
		assert.NotEmpty(t, resp.Formatted["totalInterest"])
	})

	t.Run("interest-free offer", func(t *testing.T) {
		body := `{"loanAmount":1000000,"interestRate":0,"tenure":10}`
		rec := httptest.NewRecorder()
		handler.Calculate(rec, httptest.NewRequest("POST", "/emi/calculate", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp EMIResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(8333), resp.Calculation.MonthlyEMI)
		assert.Equal(t, int64(0), resp.Calculation.TotalInterest)
	})

	t.Run("missing loan amount", func(t *testing.T) {
		body := `{"interestRate":9.5,"tenure":20}`
		rec := httptest.NewRecorder()
		handler.Calculate(rec, httptest.NewRequest("POST", "/emi/calculate", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative interest rate", func(t *testing.T) {
		body := `{"loanAmount":5000000,"interestRate":-1,"tenure":20}`
		rec := httptest.NewRecorder()
		handler.Calculate(rec, httptest.NewRequest("POST", "/emi/calculate", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Calculate(rec, httptest.NewRequest("POST", "/emi/calculate", strings.NewReader("not json")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		body := `{"loanAmount":5000000,"interestRate":9.5,"tenure":20,"years":20}`
		rec := httptest.NewRecorder()
		handler.Calculate(rec, httptest.NewRequest("POST", "/emi/calculate", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
