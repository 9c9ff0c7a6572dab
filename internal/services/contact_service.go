package services

import (
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type ContactService struct {
	db        *sql.DB
	validator *ValidationHelper
}

// ContactRequest represents the contact form payload
// @Description Contact form structure
type ContactRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100" example:"Priya Sharma"`
	Email           string `json:"email" validate:"required,email" example:"priya@example.com"`
	Phone           string `json:"phone" validate:"required,min=7,max=16" example:"9812345678"`
	Message         string `json:"message" validate:"required,min=10,max=2000"`
	ProjectInterest string `json:"projectInterest" validate:"omitempty,max=64"`
}

func NewContactService(db *sql.DB) *ContactService {
	return &ContactService{
		db:        db,
		validator: NewValidationHelper(),
	}
}

// SubmitContactForm stores a sales enquiry
// @Summary Submit contact form
// @Description Record a sales enquiry; the team follows up by phone or email
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact form"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /contact [post]
func (s *ContactService) SubmitContactForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req ContactRequest
	if err := dec.Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO contacts (id, name, email, phone, message, project_interest, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'new')`,
		id, req.Name, strings.ToLower(req.Email), req.Phone, req.Message, req.ProjectInterest)
	if err != nil {
		log.Printf("[CONTACT] Failed to store enquiry from %s: %v", req.Email, err)
		SendServiceError(w, ErrStoreUnavailable)
		return
	}

	log.Printf("[CONTACT] Enquiry %s received from %s", id, req.Email)
	RespondJSON(w, http.StatusCreated, map[string]string{
		"id":      id,
		"message": "Thank you for reaching out, our team will contact you shortly",
	})
}

// SubscribeNewsletter adds an email to the newsletter list
// @Summary Subscribe to the newsletter
// @Description Add an email address to the newsletter list; subscribing twice is a no-op
// @Tags contact
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Subscription request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /newsletter/subscribe [post]
func (s *ContactService) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := dec.Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	email := strings.ToLower(req.Email)
	_, err := s.db.Exec(`INSERT INTO newsletter_subscribers (id, email, active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (email) DO UPDATE SET active = TRUE`,
		uuid.NewString(), email)
	if err != nil {
		log.Printf("[CONTACT] Newsletter subscription failed for %s: %v", email, err)
		SendServiceError(w, ErrStoreUnavailable)
		return
	}

	log.Printf("[CONTACT] Newsletter subscription for %s", email)
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Subscribed to the newsletter"})
}
