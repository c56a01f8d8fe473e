package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wallet owner types
const (
	OwnerTypeUniversity  = "university"
	OwnerTypeConsultancy = "consultancy"
	OwnerTypeAgent       = "agent"
)

// Wallet transaction types
const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// WalletTransaction is one immutable entry in a wallet's ledger.
// Entries are appended in insertion order and never rewritten.
type WalletTransaction struct {
	Type      string    `bson:"type" json:"type"` // "credit" or "debit"
	Amount    float64   `bson:"amount" json:"amount"`
	Reason    string    `bson:"reason" json:"reason"`
	Reference string    `bson:"reference,omitempty" json:"reference,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Date      time.Time `bson:"date" json:"date"`
}

// Wallet holds the running balance and embedded transaction log for one
// owning entity. Exactly one wallet exists per (ownerType, owner) pair,
// enforced by a unique compound index.
type Wallet struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerType    string              `bson:"ownerType" json:"ownerType"` // "university", "consultancy", "agent"
	Owner        primitive.ObjectID  `bson:"owner" json:"owner"`
	Balance      float64             `bson:"balance" json:"balance"`
	Transactions []WalletTransaction `bson:"transactions" json:"transactions"`
	IsActive     bool                `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type WalletAdjustRequest struct {
	Type      string  `json:"type" validate:"required,oneof=credit debit"`
	Amount    float64 `json:"amount" validate:"required"`
	Reason    string  `json:"reason" validate:"required"`
	Reference string  `json:"reference,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

type WalletTransferRequest struct {
	FromType string  `json:"fromType" validate:"required,oneof=university consultancy agent"`
	FromID   string  `json:"fromId" validate:"required"`
	ToType   string  `json:"toType" validate:"required,oneof=university consultancy agent"`
	ToID     string  `json:"toId" validate:"required"`
	Amount   float64 `json:"amount" validate:"required"`
	Reason   string  `json:"reason" validate:"required"`
	Notes    string  `json:"notes,omitempty"`
}

// IsValidOwnerType reports whether s is one of the wallet owner kinds.
func IsValidOwnerType(s string) bool {
	switch s {
	case OwnerTypeUniversity, OwnerTypeConsultancy, OwnerTypeAgent:
		return true
	}
	return false
}
