package services

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nirmaanhomes/backend/internal/models"
)

// ProgressService tracks construction progress for purchased units in the
// buyer portal. Units are seeded at startup and mutated only by admin
// progress updates, so state lives in memory behind a RWMutex.
type ProgressService struct {
	mu        sync.RWMutex
	units     map[string]*models.OwnedUnit
	order     []string
	validator *ValidationHelper
}

func NewProgressService(seed []models.OwnedUnit) *ProgressService {
	s := &ProgressService{
		units:     make(map[string]*models.OwnedUnit, len(seed)),
		validator: NewValidationHelper(),
	}
	for i := range seed {
		unit := seed[i]
		s.units[unit.ID] = &unit
		s.order = append(s.order, unit.ID)
	}
	return s
}

// ListUnits lists the caller's purchased units
// @Summary List owned units
// @Description List the authenticated buyer's units with milestone progress
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /portal/units [get]
func (s *ProgressService) ListUnits(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	s.mu.RLock()
	units := []models.OwnedUnit{}
	for _, id := range s.order {
		if unit := s.units[id]; unit.UserID == userID {
			units = append(units, snapshotUnit(unit))
		}
	}
	s.mu.RUnlock()

	RespondJSON(w, http.StatusOK, map[string]any{"units": units, "count": len(units)})
}

// GetUnit returns one purchased unit
// @Summary Get owned unit
// @Description Fetch a unit's progress; owners see their own, admins see all
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Param id path string true "Unit ID"
// @Success 200 {object} models.OwnedUnit
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /portal/units/{id} [get]
func (s *ProgressService) GetUnit(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("userID").(string)
	role, _ := r.Context().Value("role").(string)
	unitID := chi.URLParam(r, "id")

	s.mu.RLock()
	unit, exists := s.units[unitID]
	var snapshot models.OwnedUnit
	if exists {
		snapshot = snapshotUnit(unit)
	}
	s.mu.RUnlock()

	if !exists {
		SendServiceError(w, ErrNotFound)
		return
	}
	if role != models.RoleAdmin && snapshot.UserID != userID {
		SendErrorResponse(w, "Forbidden", http.StatusForbidden, nil)
		return
	}

	RespondJSON(w, http.StatusOK, snapshot)
}

// AdminUpdateProgress sets a unit's construction progress
// @Summary Update unit progress (admin)
// @Description Set the completion percentage; milestones auto-complete as their share of the build is passed
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Unit ID"
// @Param request body object{progress=int} true "Progress percent"
// @Success 200 {object} models.OwnedUnit
// @Failure 400 {object} ErrorResponse "Invalid progress"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /admin/units/{id}/progress [put]
func (s *ProgressService) AdminUpdateProgress(w http.ResponseWriter, r *http.Request) {
	unitID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req struct {
		Progress int `json:"progress" validate:"min=0,max=100"`
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

	s.mu.Lock()
	unit, exists := s.units[unitID]
	if exists {
		unit.CurrentProgress = req.Progress
		completeMilestones(unit, time.Now())
	}
	var snapshot models.OwnedUnit
	if exists {
		snapshot = snapshotUnit(unit)
	}
	s.mu.Unlock()

	if !exists {
		SendServiceError(w, ErrNotFound)
		return
	}

	log.Printf("[PROGRESS] Unit %s progress set to %d%%", unitID, req.Progress)
	RespondJSON(w, http.StatusOK, snapshot)
}

// snapshotUnit copies a unit for use outside the lock. The milestones slice
// must be copied too: completeMilestones mutates its elements in place, and a
// shallow copy would still alias the locked backing array while the response
// is being marshalled.
func snapshotUnit(unit *models.OwnedUnit) models.OwnedUnit {
	snapshot := *unit
	snapshot.Milestones = append([]models.ProjectMilestone(nil), unit.Milestones...)
	return snapshot
}

// completeMilestones marks every milestone whose share of the build has been
// passed. Milestone k of n is complete once progress reaches k*100/n.
func completeMilestones(unit *models.OwnedUnit, now time.Time) {
	n := len(unit.Milestones)
	if n == 0 {
		return
	}
	for i := range unit.Milestones {
		m := &unit.Milestones[i]
		threshold := m.Order * 100 / n
		if unit.CurrentProgress >= threshold {
			if !m.IsCompleted {
				m.IsCompleted = true
				m.CompletedDate = now.Format("2006-01-02")
			}
		} else {
			m.IsCompleted = false
			m.CompletedDate = ""
		}
	}
}
