package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/nirmaanhomes/backend/internal/models"
)

func testUnits() []models.OwnedUnit {
	return []models.OwnedUnit{
		{
			ID: "unit-1", UserID: "buyer-1", ProjectID: "skyline-heights", ProjectName: "Skyline Heights",
			UnitType: "2 BHK", UnitNumber: "B-1104", CurrentProgress: 40,
			Milestones: []models.ProjectMilestone{
				{ID: "m1", Title: "Foundation", Order: 1, IsCompleted: true, CompletedDate: "2024-11-02"},
				{ID: "m2", Title: "Structure", Order: 2},
				{ID: "m3", Title: "Interiors", Order: 3},
				{ID: "m4", Title: "Handover", Order: 4},
			},
		},
		{ID: "unit-2", UserID: "buyer-2", ProjectID: "green-meadows", ProjectName: "Green Meadows",
			UnitType: "3 BHK", UnitNumber: "A-302", CurrentProgress: 10},
	}
}

func progressRouter(service *ProgressService) http.Handler {
	r := chi.NewRouter()
	r.Get("/portal/units", service.ListUnits)
	r.Get("/portal/units/{id}", service.GetUnit)
	r.Put("/admin/units/{id}/progress", service.AdminUpdateProgress)
	return r
}

func TestListUnits(t *testing.T) {
	service := NewProgressService(testUnits())
	router := progressRouter(service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/portal/units", "", "buyer-1", models.RoleUser))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Units []models.OwnedUnit `json:"units"`
		Count int                `json:"count"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "unit-1", body.Units[0].ID)
}

func TestGetUnit(t *testing.T) {
	service := NewProgressService(testUnits())
	router := progressRouter(service)

	t.Run("owner sees their unit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/portal/units/unit-1", "", "buyer-1", models.RoleUser))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other buyers are forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/portal/units/unit-1", "", "buyer-2", models.RoleUser))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin sees every unit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/portal/units/unit-2", "", "admin-1", models.RoleAdmin))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown unit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/portal/units/unit-99", "", "buyer-1", models.RoleUser))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminUpdateProgress(t *testing.T) {
	t.Run("milestones complete as progress advances", func(t *testing.T) {
		service := NewProgressService(testUnits())
		router := progressRouter(service)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("PUT", "/admin/units/unit-1/progress",
			`{"progress":75}`, "admin-1", models.RoleAdmin))

		assert.Equal(t, http.StatusOK, rec.Code)

		var unit models.OwnedUnit
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&unit))
		assert.Equal(t, 75, unit.CurrentProgress)
		assert.True(t, unit.Milestones[0].IsCompleted)
		assert.True(t, unit.Milestones[1].IsCompleted)
		assert.True(t, unit.Milestones[2].IsCompleted)
		assert.False(t, unit.Milestones[3].IsCompleted)
		assert.NotEmpty(t, unit.Milestones[2].CompletedDate)
	})

	t.Run("lowering progress reopens milestones", func(t *testing.T) {
		service := NewProgressService(testUnits())
		router := progressRouter(service)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("PUT", "/admin/units/unit-1/progress",
			`{"progress":10}`, "admin-1", models.RoleAdmin))

		var unit models.OwnedUnit
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&unit))
		assert.False(t, unit.Milestones[0].IsCompleted)
		assert.Empty(t, unit.Milestones[0].CompletedDate)
	})

	t.Run("full progress completes everything", func(t *testing.T) {
		service := NewProgressService(testUnits())
		router := progressRouter(service)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("PUT", "/admin/units/unit-1/progress",
			`{"progress":100}`, "admin-1", models.RoleAdmin))

		var unit models.OwnedUnit
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&unit))
		for _, m := range unit.Milestones {
			assert.True(t, m.IsCompleted, m.Title)
		}
	})

	t.Run("progress above 100 rejected", func(t *testing.T) {
		service := NewProgressService(testUnits())
		router := progressRouter(service)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("PUT", "/admin/units/unit-1/progress",
			`{"progress":120}`, "admin-1", models.RoleAdmin))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown unit", func(t *testing.T) {
		service := NewProgressService(testUnits())
		router := progressRouter(service)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("PUT", "/admin/units/unit-99/progress",
			`{"progress":50}`, "admin-1", models.RoleAdmin))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// Buyers poll their units while an admin pushes progress updates; the
// snapshots handed to the JSON encoder must not alias the locked milestone
// state. Run with -race.
func TestConcurrentListAndUpdate(t *testing.T) {
	service := NewProgressService(testUnits())
	router := progressRouter(service)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func(progress int) {
			defer wg.Done()
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest("PUT", "/admin/units/unit-1/progress",
				fmt.Sprintf(`{"progress":%d}`, progress), "admin-1", models.RoleAdmin))
			assert.Equal(t, http.StatusOK, rec.Code)
		}(i * 2 % 101)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest("GET", "/portal/units", "", "buyer-1", models.RoleUser))
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest("GET", "/portal/units/unit-1", "", "buyer-1", models.RoleUser))
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()
}

func TestCompleteMilestones(t *testing.T) {
	unit := &testUnits()[0]
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)

	unit.CurrentProgress = 50
	completeMilestones(unit, now)
	assert.True(t, unit.Milestones[0].IsCompleted)
	assert.True(t, unit.Milestones[1].IsCompleted)
	assert.False(t, unit.Milestones[2].IsCompleted)

	// The pre-seeded completion date survives; newly completed ones get today's.
	assert.Equal(t, "2024-11-02", unit.Milestones[0].CompletedDate)
	assert.Equal(t, "2025-06-01", unit.Milestones[1].CompletedDate)
}
