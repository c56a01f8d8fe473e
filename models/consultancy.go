package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Consultancy statuses
const (
	ConsultancyActive    = "Active"
	ConsultancyInactive  = "Inactive"
	ConsultancySuspended = "Suspended"
)

// Document is an uploaded file attached to an entity.
type Document struct {
	Name       string    `bson:"name" json:"name"`
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Consultancy is a recruitment partner. Its commission type and value are
// the default policy applied when an admission produces a commission.
type Consultancy struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Phone string             `bson:"phone" json:"phone"`

	CommissionType  string  `bson:"commissionType" json:"commissionType"` // "percentage", "flat", "oneTime"
	CommissionValue float64 `bson:"commissionValue" json:"commissionValue"`

	Status          string  `bson:"status" json:"status"` // "Active", "Inactive", "Suspended"
	StudentsCount   int64   `bson:"studentsCount" json:"studentsCount"`
	TotalCommission float64 `bson:"totalCommission" json:"totalCommission"`

	Address string `bson:"address,omitempty" json:"address,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Pincode string `bson:"pincode,omitempty" json:"pincode,omitempty"`

	Documents []Document `bson:"documents,omitempty" json:"documents,omitempty"`
	IsActive  bool       `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type ConsultancyRequest struct {
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone" validate:"required"`
	CommissionType  string  `json:"commissionType" validate:"required,oneof=percentage flat oneTime"`
	CommissionValue float64 `json:"commissionValue" validate:"gte=0"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive Suspended"`
	Address         string  `json:"address,omitempty"`
	City            string  `json:"city,omitempty"`
	State           string  `json:"state,omitempty"`
	Pincode         string  `json:"pincode,omitempty"`
}

// ConsultancyStats summarises a consultancy's pipeline and earnings.
type ConsultancyStats struct {
	StudentsCount     int64   `json:"studentsCount"`
	PendingCommission float64 `json:"pendingCommission"`
	PaidCommission    float64 `json:"paidCommission"`
}
