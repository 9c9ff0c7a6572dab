package data

import "github.com/nirmaanhomes/backend/internal/models"

// OwnedUnits seeds the buyer portal's progress tracker. In production these
// rows come from the sales CRM export.
var OwnedUnits = []models.OwnedUnit{
	{
		ID:                 "unit-sky-b-1104",
		UserID:             "demo-buyer-1",
		ProjectID:          "skyline-heights",
		ProjectName:        "Skyline Heights",
		UnitType:           "3 BHK",
		UnitNumber:         "B-1104",
		FloorNumber:        11,
		PurchaseDate:       "2024-02-17",
		ExpectedCompletion: "2026-12-31",
		CurrentProgress:    55,
		Milestones: []models.ProjectMilestone{
			{ID: "m1", Title: "Foundation complete", Description: "Raft foundation cast and cured", Order: 1, IsCompleted: true, CompletedDate: "2024-05-30"},
			{ID: "m2", Title: "Structure to floor 11", Description: "RCC frame cast up to the unit's floor", Order: 2, IsCompleted: true, CompletedDate: "2025-01-20"},
			{ID: "m3", Title: "Brickwork and plaster", Description: "Internal walls and plaster in the unit", Order: 3, IsCompleted: false},
			{ID: "m4", Title: "Finishes and handover", Description: "Flooring, fittings, snag closure, possession", Order: 4, IsCompleted: false},
		},
	},
	{
		ID:                 "unit-sky-a-0802",
		UserID:             "demo-buyer-2",
		ProjectID:          "skyline-heights",
		ProjectName:        "Skyline Heights",
		UnitType:           "2 BHK",
		UnitNumber:         "A-0802",
		FloorNumber:        8,
		PurchaseDate:       "2023-12-04",
		ExpectedCompletion: "2026-12-31",
		CurrentProgress:    60,
		Milestones: []models.ProjectMilestone{
			{ID: "m1", Title: "Foundation complete", Description: "Raft foundation cast and cured", Order: 1, IsCompleted: true, CompletedDate: "2024-05-30"},
			{ID: "m2", Title: "Structure to floor 8", Description: "RCC frame cast up to the unit's floor", Order: 2, IsCompleted: true, CompletedDate: "2024-10-12"},
			{ID: "m3", Title: "Brickwork and plaster", Description: "Internal walls and plaster in the unit", Order: 3, IsCompleted: false},
			{ID: "m4", Title: "Finishes and handover", Description: "Flooring, fittings, snag closure, possession", Order: 4, IsCompleted: false},
		},
	},
}
