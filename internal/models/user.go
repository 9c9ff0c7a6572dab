package models

import "time"

// Preferences holds a user's notification opt-ins.
type Preferences struct {
	Newsletter     bool `json:"newsletter"`
	Promotions     bool `json:"promotions"`
	ProjectUpdates bool `json:"projectUpdates"`
}

// DefaultPreferences are applied to every newly created profile.
func DefaultPreferences() Preferences {
	return Preferences{
		Newsletter:     true,
		Promotions:     false,
		ProjectUpdates: true,
	}
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID          string      `json:"id" example:"f3b4c6ce-9a42-4f7e-9d2e-1d41f1a3c001"` // User ID
	Name        string      `json:"name" example:"Priya Sharma"`                      // Display name
	Email       string      `json:"email" example:"priya@example.com"`                // Email address
	Phone       string      `json:"phone,omitempty" example:"+919812345678"`          // Phone number
	Role        string      `json:"role" example:"user"`                              // user | admin
	Preferences Preferences `json:"preferences"`                                      // Notification preferences
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
