package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admission statuses
const (
	AdmissionPending  = "pending"
	AdmissionApproved = "approved"
	AdmissionEnrolled = "enrolled"
	AdmissionRejected = "rejected"
)

// Admission tracks one student's application to a course. Reaching
// "approved" or "enrolled" creates a Pending commission transaction from
// the owning consultancy's commission policy.
type Admission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID     primitive.ObjectID `bson:"studentId" json:"studentId"`
	CourseID      primitive.ObjectID `bson:"courseId" json:"courseId"`
	UniversityID  primitive.ObjectID `bson:"universityId" json:"universityId"`
	ConsultancyID primitive.ObjectID `bson:"consultancyId" json:"consultancyId"`

	ApplicationNumber string    `bson:"applicationNumber" json:"applicationNumber"`
	Status            string    `bson:"status" json:"status"`
	AdmissionDate     time.Time `bson:"admissionDate" json:"admissionDate"`

	ApplicationFee float64    `bson:"applicationFee,omitempty" json:"applicationFee,omitempty"`
	TuitionFee     float64    `bson:"tuitionFee,omitempty" json:"tuitionFee,omitempty"`
	EnrollmentDate *time.Time `bson:"enrollmentDate,omitempty" json:"enrollmentDate,omitempty"`
	CompletionDate *time.Time `bson:"completionDate,omitempty" json:"completionDate,omitempty"`

	DocumentsVerified bool   `bson:"documentsVerified" json:"documentsVerified"`
	Remarks           string `bson:"remarks,omitempty" json:"remarks,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateAdmissionRequest struct {
	StudentID      string     `json:"studentId" validate:"required"`
	CourseID       string     `json:"courseId" validate:"required"`
	UniversityID   string     `json:"universityId" validate:"required"`
	ConsultancyID  string     `json:"consultancyId" validate:"required"`
	AdmissionDate  *time.Time `json:"admissionDate,omitempty"`
	Status         string     `json:"status,omitempty" validate:"omitempty,oneof=pending approved enrolled rejected"`
	ApplicationFee float64    `json:"applicationFee,omitempty" validate:"omitempty,gte=0"`
	TuitionFee     float64    `json:"tuitionFee,omitempty" validate:"omitempty,gte=0"`
	Remarks        string     `json:"remarks,omitempty"`
}

type UpdateAdmissionRequest struct {
	AdmissionDate  *time.Time `json:"admissionDate,omitempty"`
	Status         string     `json:"status,omitempty" validate:"omitempty,oneof=pending approved enrolled rejected"`
	ApplicationFee *float64   `json:"applicationFee,omitempty" validate:"omitempty,gte=0"`
	TuitionFee     *float64   `json:"tuitionFee,omitempty" validate:"omitempty,gte=0"`
	EnrollmentDate *time.Time `json:"enrollmentDate,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	Remarks        *string    `json:"remarks,omitempty"`
}

// AdmissionStatistics is the fold over admissions grouped by status.
type AdmissionStatistics struct {
	TotalAdmissions      int64   `bson:"totalAdmissions" json:"totalAdmissions"`
	PendingAdmissions    int64   `bson:"pendingAdmissions" json:"pendingAdmissions"`
	ApprovedAdmissions   int64   `bson:"approvedAdmissions" json:"approvedAdmissions"`
	EnrolledAdmissions   int64   `bson:"enrolledAdmissions" json:"enrolledAdmissions"`
	RejectedAdmissions   int64   `bson:"rejectedAdmissions" json:"rejectedAdmissions"`
	TotalApplicationFees float64 `bson:"totalApplicationFees" json:"totalApplicationFees"`
	TotalTuitionFees     float64 `bson:"totalTuitionFees" json:"totalTuitionFees"`
}
