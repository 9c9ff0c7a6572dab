package models

import "time"

type ContactSubmission struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Message         string    `json:"message"`
	ProjectInterest string    `json:"projectInterest,omitempty"`
	Status          string    `json:"status" example:"new"`
	CreatedAt       time.Time `json:"createdAt"`
}
