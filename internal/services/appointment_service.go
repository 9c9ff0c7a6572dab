package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/nirmaanhomes/backend/internal/config"
	"github.com/nirmaanhomes/backend/internal/models"
)

// AppointmentService owns the booking lifecycle: slot-unique creation, the
// cancellation window, admin status transitions, and filtered listings. The
// slot-uniqueness invariant is enforced by the partial unique index
// appointments_slot_active, so creation is a single conditional write rather
// than a check-then-act pair.
type AppointmentService struct {
	db        *sql.DB
	redis     *redis.Client
	cfg       *config.BookingConfig
	validator *ValidationHelper
	now       func() time.Time
}

// BookingRequest represents the appointment booking payload
// @Description Appointment booking request structure
type BookingRequest struct {
	Date          string `json:"date" validate:"required,datetime=2006-01-02" example:"2025-06-01"` // Calendar date
	Time          string `json:"time" validate:"required" example:"10:00 AM"`                       // Booking slot
	Type          string `json:"type" validate:"required,oneof=video office" example:"office"`      // video | office
	ProjectID     string `json:"projectId" validate:"omitempty,max=64"`                             // Project of interest
	CustomerName  string `json:"customerName" validate:"omitempty,min=2,max=100"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone string `json:"customerPhone" validate:"omitempty,min=7,max=16"`
	Notes         string `json:"notes" validate:"omitempty,max=1000"`
}

// AppointmentFilter holds the combinable listing predicates: status equality,
// type equality, and a case-insensitive substring match over the contact
// snapshot. Filtering happens over the already-fetched collection.
type AppointmentFilter struct {
	Status string
	Type   string
	Search string
}

// Matches reports whether appt passes every set predicate.
func (f AppointmentFilter) Matches(appt models.Appointment) bool {
	if f.Status != "" && appt.Status != f.Status {
		return false
	}
	if f.Type != "" && appt.Type != f.Type {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(appt.CustomerName), q) &&
			!strings.Contains(strings.ToLower(appt.CustomerEmail), q) &&
			!strings.Contains(strings.ToLower(appt.CustomerPhone), q) {
			return false
		}
	}
	return true
}

func filterAppointments(appointments []models.Appointment, f AppointmentFilter) []models.Appointment {
	filtered := []models.Appointment{}
	for _, appt := range appointments {
		if f.Matches(appt) {
			filtered = append(filtered, appt)
		}
	}
	return filtered
}

func filterFromQuery(r *http.Request) AppointmentFilter {
	return AppointmentFilter{
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
		Search: r.URL.Query().Get("search"),
	}
}

func NewAppointmentService(db *sql.DB, redisClient *redis.Client, cfg *config.BookingConfig) *AppointmentService {
	return &AppointmentService{
		db:        db,
		redis:     redisClient,
		cfg:       cfg,
		validator: NewValidationHelper(),
		now:       time.Now,
	}
}

// CreateAppointment books a consultation slot
// @Summary Book an appointment
// @Description Book a consultation slot; at most one scheduled appointment may occupy a (date, time) pair
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BookingRequest true "Booking request"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Slot already booked"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /appointments [post]
func (s *AppointmentService) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req BookingRequest
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

	if !config.IsBookableSlot(req.Time) {
		SendErrorResponse(w, "Unknown booking slot", http.StatusBadRequest, nil)
		return
	}

	start, err := config.SlotStart(req.Date, req.Time)
	if err != nil {
		SendErrorResponse(w, "Invalid appointment date", http.StatusBadRequest, nil)
		return
	}
	if start.Before(s.now()) {
		SendErrorResponse(w, "Cannot book a slot in the past", http.StatusBadRequest, nil)
		return
	}

	appt := models.Appointment{
		ID:            uuid.NewString(),
		UserID:        userID,
		Date:          req.Date,
		Time:          req.Time,
		Type:          req.Type,
		Status:        models.AppointmentScheduled,
		ProjectID:     req.ProjectID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	}

	if err := s.createAppointment(&appt); err != nil {
		log.Printf("[APPOINTMENT] Booking failed for slot %s %s: %v", appt.Date, appt.Time, err)
		SendServiceError(w, err)
		return
	}

	log.Printf("[APPOINTMENT] Booked %s for user %s at %s %s", appt.ID, userID, appt.Date, appt.Time)
	RespondJSON(w, http.StatusCreated, appt)
}

// ListAppointments lists the caller's appointments
// @Summary List own appointments
// @Description List the authenticated user's appointments, newest date first, with optional status/type/search filters
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Param search query string false "Case-insensitive contact search"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /appointments [get]
func (s *AppointmentService) ListAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	appointments, err := s.fetchAppointments(userID)
	if err != nil {
		log.Printf("[APPOINTMENT] Failed to fetch appointments for user %s: %v", userID, err)
		SendServiceError(w, ErrStoreUnavailable)
		return
	}

	appointments = filterAppointments(appointments, filterFromQuery(r))
	RespondJSON(w, http.StatusOK, map[string]any{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// CancelAppointment cancels an appointment outside the 24-hour window
// @Summary Cancel an appointment
// @Description Set status to cancelled; rejected within 24 hours of the scheduled start
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Inside the cancellation window"
// @Router /appointments/{id}/cancel [put]
func (s *AppointmentService) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("userID").(string)
	role, _ := r.Context().Value("role").(string)
	apptID := chi.URLParam(r, "id")

	appt, err := s.fetchAppointment(apptID)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	if role != models.RoleAdmin && appt.UserID != userID {
		SendErrorResponse(w, "Forbidden", http.StatusForbidden, nil)
		return
	}

	if err := s.cancelAppointment(appt); err != nil {
		log.Printf("[APPOINTMENT] Cancellation failed for %s: %v", apptID, err)
		SendServiceError(w, err)
		return
	}

	log.Printf("[APPOINTMENT] Cancelled %s", apptID)
	RespondJSON(w, http.StatusOK, appt)
}

// VisitPass renders an office-visit QR pass for an appointment
// @Summary Get visit pass
// @Description Generate a QR pass encoding the appointment reference; admins verify it at the office
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /appointments/{id}/pass [get]
func (s *AppointmentService) VisitPass(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("userID").(string)
	role, _ := r.Context().Value("role").(string)
	apptID := chi.URLParam(r, "id")

	appt, err := s.fetchAppointment(apptID)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	if role != models.RoleAdmin && appt.UserID != userID {
		SendErrorResponse(w, "Forbidden", http.StatusForbidden, nil)
		return
	}

	if appt.Status != models.AppointmentScheduled {
		SendErrorResponse(w, "Visit passes are only issued for scheduled appointments", http.StatusConflict, nil)
		return
	}

	code, image, err := s.generateVisitPass(r.Context(), appt)
	if err != nil {
		log.Printf("[APPOINTMENT] Visit pass generation failed for %s: %v", apptID, err)
		SendErrorResponse(w, "Failed to generate visit pass", http.StatusInternalServerError, nil)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{
		"passCode":  code,
		"passImage": image,
	})
}

// AdminListAppointments lists all appointments for the dashboard
// @Summary List all appointments (admin)
// @Description List every appointment, newest date first, with optional status/type/search filters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Param search query string false "Case-insensitive contact search"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /admin/appointments [get]
func (s *AppointmentService) AdminListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.fetchAppointments("")
	if err != nil {
		log.Printf("[APPOINTMENT] Failed to fetch appointments: %v", err)
		SendServiceError(w, ErrStoreUnavailable)
		return
	}

	appointments = filterAppointments(appointments, filterFromQuery(r))
	RespondJSON(w, http.StatusOK, map[string]any{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// AdminUpdateStatus sets an appointment's status
// @Summary Update appointment status (admin)
// @Description Mark completed or cancelled, or move a cancelled appointment back to scheduled
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body object{status=string} true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Slot re-booked in the meantime"
// @Router /admin/appointments/{id}/status [put]
func (s *AppointmentService) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	apptID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req struct {
		Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
	}
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

	if err := s.updateStatus(apptID, req.Status); err != nil {
		log.Printf("[APPOINTMENT] Status update failed for %s: %v", apptID, err)
		SendServiceError(w, err)
		return
	}

	log.Printf("[APPOINTMENT] Status of %s set to %s", apptID, req.Status)
	RespondJSON(w, http.StatusOK, map[string]string{"id": apptID, "status": req.Status})
}

// AdminDeleteAppointment physically removes an appointment record
// @Summary Delete an appointment (admin)
// @Description Remove the record entirely; distinct from cancellation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /admin/appointments/{id} [delete]
func (s *AppointmentService) AdminDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	apptID := chi.URLParam(r, "id")

	if err := s.deleteAppointment(apptID); err != nil {
		log.Printf("[APPOINTMENT] Delete failed for %s: %v", apptID, err)
		SendServiceError(w, err)
		return
	}

	log.Printf("[APPOINTMENT] Deleted %s", apptID)
	RespondJSON(w, http.StatusOK, map[string]string{"id": apptID, "message": "Appointment deleted"})
}

// AdminVerifyPass redeems a visit pass code at the office desk
// @Summary Verify a visit pass (admin)
// @Description Resolve a scanned pass code to its appointment; a pass is single-use
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{passCode=string} true "Scanned pass code"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse "Invalid or expired pass"
// @Router /admin/passes/verify [post]
func (s *AppointmentService) AdminVerifyPass(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req struct {
		PassCode string `json:"passCode" validate:"required"`
	}
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

	pass, err := s.verifyVisitPass(r.Context(), req.PassCode)
	if err != nil {
		SendErrorResponse(w, "Invalid or expired visit pass", http.StatusUnauthorized, nil)
		return
	}

	RespondJSON(w, http.StatusOK, pass)
}

func (s *AppointmentService) createAppointment(appt *models.Appointment) error {
	now := s.now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	_, err := s.db.Exec(`INSERT INTO appointments
		(id, user_id, date, time, type, status, project_id, customer_name, customer_email, customer_phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		appt.ID, appt.UserID, appt.Date, appt.Time, appt.Type, appt.Status, appt.ProjectID,
		appt.CustomerName, appt.CustomerEmail, appt.CustomerPhone, appt.Notes, appt.CreatedAt, appt.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "appointments_slot_active") {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *AppointmentService) cancelAppointment(appt *models.Appointment) error {
	if start, err := config.SlotStart(appt.Date, appt.Time); err == nil {
		// Inside the window the appointment must stay active. A start already
		// in the past is still cancellable.
		untilStart := start.Sub(s.now())
		if untilStart > 0 && untilStart < s.cfg.CancellationWindow {
			return ErrCancellationWindow
		}
	}

	result, err := s.db.Exec(`UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`,
		models.AppointmentCancelled, s.now(), appt.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}

	appt.Status = models.AppointmentCancelled
	return nil
}

func (s *AppointmentService) updateStatus(apptID, status string) error {
	if !models.ValidAppointmentStatus(status) {
		return fmt.Errorf("unknown appointment status %q", status)
	}

	result, err := s.db.Exec(`UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`,
		status, s.now(), apptID)
	if err != nil {
		// Rescheduling back into an occupied slot trips the partial unique
		// index just like a fresh booking would.
		if isUniqueViolation(err, "appointments_slot_active") {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AppointmentService) deleteAppointment(apptID string) error {
	result, err := s.db.Exec(`DELETE FROM appointments WHERE id = $1`, apptID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AppointmentService) fetchAppointment(apptID string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.QueryRow(`SELECT id, user_id, date, time, type, status, project_id,
			customer_name, customer_email, customer_phone, notes, created_at, updated_at
		FROM appointments WHERE id = $1`, apptID).
		Scan(&appt.ID, &appt.UserID, &appt.Date, &appt.Time, &appt.Type, &appt.Status, &appt.ProjectID,
			&appt.CustomerName, &appt.CustomerEmail, &appt.CustomerPhone, &appt.Notes, &appt.CreatedAt, &appt.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &appt, nil
}

// fetchAppointments returns appointments ordered by date descending. An empty
// userID fetches every appointment (admin view).
func (s *AppointmentService) fetchAppointments(userID string) ([]models.Appointment, error) {
	query := `SELECT id, user_id, date, time, type, status, project_id,
			customer_name, customer_email, customer_phone, notes, created_at, updated_at
		FROM appointments`
	args := []any{}

	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY date DESC, time ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		var appt models.Appointment
		err := rows.Scan(&appt.ID, &appt.UserID, &appt.Date, &appt.Time, &appt.Type, &appt.Status, &appt.ProjectID,
			&appt.CustomerName, &appt.CustomerEmail, &appt.CustomerPhone, &appt.Notes, &appt.CreatedAt, &appt.UpdatedAt)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appt)
	}

	return appointments, rows.Err()
}

func (s *AppointmentService) generateVisitPass(ctx context.Context, appt *models.Appointment) (string, string, error) {
	passData := map[string]any{
		"appointmentId": appt.ID,
		"date":          appt.Date,
		"time":          appt.Time,
		"type":          appt.Type,
		"issuedAt":      s.now().Unix(),
	}

	jsonData, err := json.Marshal(passData)
	if err != nil {
		return "", "", err
	}

	code := base64.URLEncoding.EncodeToString(jsonData)

	if s.redis != nil {
		key := fmt.Sprintf("pass:%s", code)
		if err := s.redis.Set(ctx, key, jsonData, s.cfg.VisitPassTTL).Err(); err != nil {
			return "", "", err
		}
	}

	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return "", "", err
	}

	return code, base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (s *AppointmentService) verifyVisitPass(ctx context.Context, code string) (map[string]any, error) {
	if s.redis == nil {
		return nil, fmt.Errorf("visit pass verification requires redis")
	}

	key := fmt.Sprintf("pass:%s", code)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("invalid or expired visit pass")
	}
	if err != nil {
		return nil, err
	}

	var pass map[string]any
	if err := json.Unmarshal(data, &pass); err != nil {
		return nil, err
	}

	s.redis.Del(ctx, key)

	return pass, nil
}
