package models

import "time"

// Appointment statuses. An appointment starts out scheduled; completed and
// cancelled are terminal, except that an admin may move a cancelled
// appointment back to scheduled.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment types.
const (
	AppointmentVideo  = "video"
	AppointmentOffice = "office"
)

type Appointment struct {
	ID            string    `json:"id" example:"a7c91d2e-52a8-4b33-b1c4-8f0e2a9d7f10"` // Appointment ID
	UserID        string    `json:"userId"`                                            // Owning account
	Date          string    `json:"date" example:"2025-06-01"`                         // ISO 8601 calendar date
	Time          string    `json:"time" example:"10:00 AM"`                           // Booking slot
	Type          string    `json:"type" example:"office"`                             // video | office
	Status        string    `json:"status" example:"scheduled"`                        // scheduled | completed | cancelled
	ProjectID     string    `json:"projectId,omitempty"`                               // Project of interest
	CustomerName  string    `json:"customerName,omitempty"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ValidAppointmentStatus reports whether s is one of the three known states.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// ValidAppointmentType reports whether t is a known appointment type.
func ValidAppointmentType(t string) bool {
	return t == AppointmentVideo || t == AppointmentOffice
}
