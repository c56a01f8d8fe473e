package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commission types
const (
	CommissionPercentage = "percentage"
	CommissionFlat       = "flat"
	CommissionOneTime    = "oneTime"
)

// Commission statuses
const (
	CommissionPending  = "Pending"
	CommissionApproved = "Approved"
	CommissionPaid     = "Paid"
	CommissionRejected = "Rejected"
)

// CommissionTransaction records money owed from a university/consultancy
// relationship for one student's admission. The calculated amount is fixed
// at creation and never recomputed on status changes.
type CommissionTransaction struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConsultancyID primitive.ObjectID `bson:"consultancyId" json:"consultancyId"`
	StudentID     primitive.ObjectID `bson:"studentId" json:"studentId"`
	CourseID      primitive.ObjectID `bson:"courseId" json:"courseId"`
	UniversityID  primitive.ObjectID `bson:"universityId" json:"universityId"`

	CommissionType       string  `bson:"commissionType" json:"commissionType"` // "percentage", "flat", "oneTime"
	CommissionValue      float64 `bson:"commissionValue" json:"commissionValue"`
	CourseFees           float64 `bson:"courseFees" json:"courseFees"`
	CalculatedCommission float64 `bson:"calculatedCommission" json:"calculatedCommission"`

	TransactionDate  time.Time  `bson:"transactionDate" json:"transactionDate"`
	Status           string     `bson:"status" json:"status"` // "Pending", "Approved", "Paid", "Rejected"
	PaymentDate      *time.Time `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	PaymentReference string     `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`
	Remarks          string     `bson:"remarks,omitempty" json:"remarks,omitempty"`

	// Denormalized fields captured at creation time for read efficiency
	StudentName     string `bson:"studentName,omitempty" json:"studentName,omitempty"`
	CourseName      string `bson:"courseName,omitempty" json:"courseName,omitempty"`
	ConsultancyName string `bson:"consultancyName,omitempty" json:"consultancyName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateCommissionRequest struct {
	ConsultancyID   string  `json:"consultancyId" validate:"required"`
	StudentID       string  `json:"studentId" validate:"required"`
	CourseID        string  `json:"courseId" validate:"required"`
	UniversityID    string  `json:"universityId" validate:"required"`
	CommissionType  string  `json:"commissionType" validate:"required,oneof=percentage flat oneTime"`
	CommissionValue float64 `json:"commissionValue" validate:"gte=0"`
	CourseFees      float64 `json:"courseFees" validate:"gte=0"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=Pending Approved Paid Rejected"`
	Remarks         string  `json:"remarks,omitempty"`
}

type UpdateCommissionStatusRequest struct {
	Status           string     `json:"status" validate:"required,oneof=Pending Approved Paid Rejected"`
	PaymentDate      *time.Time `json:"paymentDate,omitempty"`
	PaymentReference string     `json:"paymentReference,omitempty"`
}

// CommissionStatistics is the fold over commission transactions grouped
// by status.
type CommissionStatistics struct {
	TotalCommissions    float64 `bson:"totalCommissions" json:"totalCommissions"`
	PendingCommissions  float64 `bson:"pendingCommissions" json:"pendingCommissions"`
	PaidCommissions     float64 `bson:"paidCommissions" json:"paidCommissions"`
	TotalTransactions   int64   `bson:"totalTransactions" json:"totalTransactions"`
	PendingTransactions int64   `bson:"pendingTransactions" json:"pendingTransactions"`
	PaidTransactions    int64   `bson:"paidTransactions" json:"paidTransactions"`
}
