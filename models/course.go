package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UniversityID primitive.ObjectID `bson:"universityId" json:"universityId"`
	Name         string             `bson:"name" json:"name"`
	Abbreviation string             `bson:"abbreviation,omitempty" json:"abbreviation,omitempty"`
	Code         string             `bson:"code" json:"code"`
	Status       string             `bson:"status" json:"status"` // "draft" or "published"
	Department   string             `bson:"department,omitempty" json:"department,omitempty"`
	DegreeType   string             `bson:"degreeType,omitempty" json:"degreeType,omitempty"` // "UG", "PG", "Diploma", "Certificate", "PhD"
	Duration     string             `bson:"duration,omitempty" json:"duration,omitempty"`
	ModeOfStudy  string             `bson:"modeOfStudy,omitempty" json:"modeOfStudy,omitempty"` // "Regular", "Distance", "Online", "Part-time"
	Level        string             `bson:"level,omitempty" json:"level,omitempty"`

	Fees           float64 `bson:"fees" json:"fees"`
	TotalSeats     int     `bson:"totalSeats,omitempty" json:"totalSeats,omitempty"`
	AvailableSeats int     `bson:"availableSeats,omitempty" json:"availableSeats,omitempty"`

	Description          string   `bson:"description,omitempty" json:"description,omitempty"`
	Eligibility          []string `bson:"eligibility,omitempty" json:"eligibility,omitempty"`
	Specialization       string   `bson:"specialization,omitempty" json:"specialization,omitempty"`
	EntranceExam         string   `bson:"entranceExam,omitempty" json:"entranceExam,omitempty"`
	MediumOfInstruction  string   `bson:"mediumOfInstruction,omitempty" json:"mediumOfInstruction,omitempty"`
	ScholarshipAvailable bool     `bson:"scholarshipAvailable" json:"scholarshipAvailable"`
	PlacementSupport     bool     `bson:"placementSupport" json:"placementSupport"`

	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CourseRequest struct {
	UniversityID string  `json:"universityId" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Abbreviation string  `json:"abbreviation,omitempty"`
	Code         string  `json:"code" validate:"required"`
	Status       string  `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Department   string  `json:"department,omitempty"`
	DegreeType   string  `json:"degreeType,omitempty" validate:"omitempty,oneof=UG PG Diploma Certificate PhD"`
	Duration     string  `json:"duration,omitempty"`
	ModeOfStudy  string  `json:"modeOfStudy,omitempty" validate:"omitempty,oneof=Regular Distance Online Part-time"`
	Fees         float64 `json:"fees" validate:"gte=0"`
	TotalSeats   int     `json:"totalSeats,omitempty" validate:"omitempty,gte=0"`
	Description  string  `json:"description,omitempty"`
}
