package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stream is a specialization track under a course.
type Stream struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID       primitive.ObjectID `bson:"courseId" json:"courseId"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Fees           float64            `bson:"fees,omitempty" json:"fees,omitempty"`
	Duration       string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Eligibility    []string           `bson:"eligibility,omitempty" json:"eligibility,omitempty"`
	TotalSeats     int                `bson:"totalSeats,omitempty" json:"totalSeats,omitempty"`
	AvailableSeats int                `bson:"availableSeats,omitempty" json:"availableSeats,omitempty"`
	Specialization string             `bson:"specialization,omitempty" json:"specialization,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type StreamRequest struct {
	CourseID    string  `json:"courseId" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Fees        float64 `json:"fees,omitempty" validate:"omitempty,gte=0"`
	Duration    string  `json:"duration,omitempty"`
	TotalSeats  int     `json:"totalSeats,omitempty" validate:"omitempty,gte=0"`
}
