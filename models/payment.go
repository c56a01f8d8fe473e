package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Payment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Admission   primitive.ObjectID `bson:"admission" json:"admission"`
	StudentName string             `bson:"studentName" json:"studentName"`
	Amount      float64            `bson:"amount" json:"amount"`
	Method      string             `bson:"method" json:"method"` // "UPI", "Bank Transfer", "Cheque", "NEFT", "Cash"
	Status      string             `bson:"status" json:"status"`
	Date        time.Time          `bson:"date" json:"date"`
	Reference   string             `bson:"reference,omitempty" json:"reference,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ProofURL    string             `bson:"proofUrl,omitempty" json:"proofUrl,omitempty"`

	ApprovedBy *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type PaymentRequest struct {
	Admission string  `json:"admission" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required,oneof=UPI 'Bank Transfer' Cheque NEFT Cash"`
	Status    string  `json:"status,omitempty" validate:"omitempty,oneof=pending completed failed"`
	Reference string  `json:"reference,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}
