package model

import "time"

// Tuition represents a tuition class students can enroll in.
// Membership is not stored here; the student service owns enrollment.
type Tuition struct {
	ID          string    `json:"tuitionId"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	Fee         float64   `json:"fee"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTuitionRequest is the payload for creating a tuition class.
type CreateTuitionRequest struct {
	Name        string  `json:"name" binding:"required,notblank,max=100"`
	Location    string  `json:"location" binding:"max=200"`
	Description string  `json:"description" binding:"max=1000"`
	Schedule    string  `json:"schedule" binding:"max=200"`
	Fee         float64 `json:"fee" binding:"gte=0"`
}

// TuitionList wraps a listing so the envelope's data is always an object.
type TuitionList struct {
	TuitionList []Tuition `json:"tuitionList"`
}
