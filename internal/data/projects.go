// Package data holds the seed catalogue served by the public site. Listings
// come from marketing and change a few times a year; they ship with the
// binary rather than living in the database.
package data

import "github.com/nirmaanhomes/backend/internal/models"

var Projects = []models.Project{
	{
		ID:             "skyline-heights",
		Name:           "Skyline Heights",
		Location:       "Baner, Pune",
		Type:           models.ProjectOngoing,
		Image:          "/static/project-images/skyline-heights.jpg",
		Description:    "Twin 18-storey towers with 2 and 3 BHK residences, a clubhouse, and landscaped podium gardens.",
		LaunchDate:     "2023-11-01",
		CompletionDate: "2026-12-31",
		RERANumber:     "P52100031234",
		Amenities:      []string{"Clubhouse", "Swimming pool", "Gymnasium", "Children's play area", "EV charging"},
		UnitTypes: []models.UnitType{
			{Type: "2 BHK", Area: "980 sq ft", Price: "₹62,00,000", FloorPlan: "/static/project-images/skyline-2bhk.jpg"},
			{Type: "3 BHK", Area: "1450 sq ft", Price: "₹89,00,000", FloorPlan: "/static/project-images/skyline-3bhk.jpg"},
		},
		Specifications: []models.Specification{
			{Category: "Flooring", Details: []string{"Vitrified tiles in living areas", "Anti-skid tiles in bathrooms"}},
			{Category: "Structure", Details: []string{"RCC frame designed for seismic zone III"}},
		},
		Status:   "Under construction, tower A slab 14 complete",
		Progress: 55,
		MapURL:   "https://maps.example.com/skyline-heights",
	},
	{
		ID:          "riverside-enclave",
		Name:        "Riverside Enclave",
		Location:    "Aundh, Pune",
		Type:        models.ProjectCompleted,
		Image:       "/static/project-images/riverside-enclave.jpg",
		Description: "A gated community of 120 row houses along the Mula river, handed over in 2022.",
		LaunchDate:  "2019-03-01",
		CompletionDate: "2022-08-15",
		RERANumber:  "P52100022711",
		Amenities:   []string{"Jogging track", "Amphitheatre", "Senior citizens' court"},
		UnitTypes: []models.UnitType{
			{Type: "4 BHK Row House", Area: "2200 sq ft", Price: "₹1,85,00,000", FloorPlan: "/static/project-images/riverside-rowhouse.jpg"},
		},
		Status: "Completed and fully occupied",
		MapURL: "https://maps.example.com/riverside-enclave",
	},
	{
		ID:          "green-meadows",
		Name:        "Green Meadows",
		Location:    "Wakad, Pune",
		Type:        models.ProjectUpcoming,
		Image:       "/static/project-images/green-meadows.jpg",
		Description: "Upcoming low-rise community of 1 and 2 BHK homes around a central two-acre meadow.",
		LaunchDate:  "2026-01-15",
		Amenities:   []string{"Central meadow", "Cycling track", "Co-working lounge"},
		UnitTypes: []models.UnitType{
			{Type: "1 BHK", Area: "650 sq ft", Price: "₹38,00,000", FloorPlan: "/static/project-images/meadows-1bhk.jpg"},
			{Type: "2 BHK", Area: "950 sq ft", Price: "₹54,00,000", FloorPlan: "/static/project-images/meadows-2bhk.jpg"},
		},
		Status: "Pre-launch, RERA registration in progress",
		MapURL: "https://maps.example.com/green-meadows",
	},
}
