package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense statuses
const (
	ExpensePending  = "pending"
	ExpenseVerified = "verified"
	ExpenseRejected = "rejected"
)

// ExpenseCategories is the closed set of accepted expense categories.
var ExpenseCategories = []string{
	"Office Rent", "Utilities", "Marketing", "Software", "Travel",
	"Training", "Legal", "Insurance", "Equipment", "Miscellaneous",
	"Salaries", "Commissions",
}

type Expense struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category    string             `bson:"category" json:"category"`
	Amount      float64            `bson:"amount" json:"amount"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	Status      string             `bson:"status" json:"status"`
	ReceiptURL  string             `bson:"receiptUrl,omitempty" json:"receiptUrl,omitempty"`

	VerifiedBy *primitive.ObjectID `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time          `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type ExpenseRequest struct {
	Category    string     `json:"category" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Description string     `json:"description" validate:"required"`
	Date        *time.Time `json:"date,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=pending verified rejected"`
	ReceiptURL  string     `json:"receiptUrl,omitempty"`
}

// IsValidExpenseCategory reports whether c is an accepted category.
func IsValidExpenseCategory(c string) bool {
	for _, cat := range ExpenseCategories {
		if c == cat {
			return true
		}
	}
	return false
}
