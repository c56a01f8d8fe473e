package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student statuses
const (
	StudentPending   = "Pending"
	StudentApproved  = "Approved"
	StudentRejected  = "Rejected"
	StudentEnrolled  = "Enrolled"
	StudentCompleted = "Completed"
)

type Student struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	CourseID      primitive.ObjectID `bson:"courseId" json:"courseId"`
	ConsultancyID primitive.ObjectID `bson:"consultancyId" json:"consultancyId"`
	UniversityID  primitive.ObjectID `bson:"universityId" json:"universityId"`
	Status        string             `bson:"status" json:"status"`
	AppliedDate   time.Time          `bson:"appliedDate" json:"appliedDate"`
	Documents     []Document         `bson:"documents,omitempty" json:"documents,omitempty"`

	DateOfBirth *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender      string     `bson:"gender,omitempty" json:"gender,omitempty"` // "Male", "Female", "Other"
	Address     string     `bson:"address,omitempty" json:"address,omitempty"`

	// Denormalized for list views
	CourseName      string `bson:"courseName,omitempty" json:"courseName,omitempty"`
	ConsultancyName string `bson:"consultancyName,omitempty" json:"consultancyName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type StudentRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	CourseID      string `json:"courseId" validate:"required"`
	ConsultancyID string `json:"consultancyId" validate:"required"`
	UniversityID  string `json:"universityId" validate:"required"`
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=Pending Approved Rejected Enrolled Completed"`
	Gender        string `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Other"`
	Address       string `json:"address,omitempty"`
}
