package models

// Project lifecycle phases as shown in the public catalogue.
const (
	ProjectCompleted = "completed"
	ProjectOngoing   = "ongoing"
	ProjectUpcoming  = "upcoming"
)

type UnitType struct {
	Type      string `json:"type" example:"3 BHK"`
	Area      string `json:"area" example:"1450 sq ft"`
	Price     string `json:"price" example:"₹82,00,000"`
	FloorPlan string `json:"floorPlan"`
}

type Specification struct {
	Category string   `json:"category" example:"Flooring"`
	Details  []string `json:"details"`
}

type Project struct {
	ID             string          `json:"id" example:"skyline-heights"`
	Name           string          `json:"name" example:"Skyline Heights"`
	Location       string          `json:"location" example:"Baner, Pune"`
	Type           string          `json:"type" example:"ongoing"` // completed | ongoing | upcoming
	Image          string          `json:"image"`
	Images         []string        `json:"images,omitempty"`
	Description    string          `json:"description"`
	LaunchDate     string          `json:"launchDate,omitempty"`
	CompletionDate string          `json:"completionDate,omitempty"`
	RERANumber     string          `json:"reraNumber,omitempty"`
	Amenities      []string        `json:"amenities,omitempty"`
	UnitTypes      []UnitType      `json:"unitTypes,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	Price          string          `json:"price,omitempty"`
	Status         string          `json:"status"`
	Progress       int             `json:"progress,omitempty"` // percent, ongoing projects only
	MapURL         string          `json:"mapUrl,omitempty"`
}

type ProjectMilestone struct {
	ID            string `json:"id"`
	Title         string `json:"title" example:"Structure complete"`
	Description   string `json:"description"`
	CompletedDate string `json:"completedDate,omitempty"`
	IsCompleted   bool   `json:"isCompleted"`
	Order         int    `json:"order"`
}

// OwnedUnit is a purchased unit tracked in the buyer portal.
type OwnedUnit struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	ProjectID          string             `json:"projectId"`
	ProjectName        string             `json:"projectName"`
	UnitType           string             `json:"unitType" example:"2 BHK"`
	UnitNumber         string             `json:"unitNumber" example:"B-1104"`
	FloorNumber        int                `json:"floorNumber"`
	PurchaseDate       string             `json:"purchaseDate"`
	ExpectedCompletion string             `json:"expectedCompletion"`
	CurrentProgress    int                `json:"currentProgress"` // percent
	Milestones         []ProjectMilestone `json:"milestones"`
}
