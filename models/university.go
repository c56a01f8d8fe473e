package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type University struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Abbreviation    string             `bson:"abbreviation" json:"abbreviation"`
	EstablishedYear int                `bson:"establishedYear,omitempty" json:"establishedYear,omitempty"`
	Type            string             `bson:"type,omitempty" json:"type,omitempty"` // "Government", "Private", "Deemed", "Autonomous"
	Facilities      []string           `bson:"facilities,omitempty" json:"facilities,omitempty"`
	Documents       []string           `bson:"documents,omitempty" json:"documents,omitempty"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	ContactEmail    string             `bson:"contactEmail" json:"contactEmail"`
	ContactPhone    string             `bson:"contactPhone" json:"contactPhone"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`

	// Bank details for fee settlement
	BankName      string `bson:"bankName,omitempty" json:"bankName,omitempty"`
	AccountNumber string `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
	IFSCCode      string `bson:"ifscCode,omitempty" json:"ifscCode,omitempty"`
	Branch        string `bson:"branch,omitempty" json:"branch,omitempty"`

	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type UniversityRequest struct {
	Name            string   `json:"name" validate:"required"`
	Abbreviation    string   `json:"abbreviation" validate:"required"`
	EstablishedYear int      `json:"establishedYear,omitempty"`
	Type            string   `json:"type,omitempty" validate:"omitempty,oneof=Government Private Deemed Autonomous"`
	Facilities      []string `json:"facilities,omitempty"`
	Description     string   `json:"description,omitempty"`
	ContactEmail    string   `json:"contactEmail" validate:"required,email"`
	ContactPhone    string   `json:"contactPhone" validate:"required"`
	Address         string   `json:"address,omitempty"`
	BankName        string   `json:"bankName,omitempty"`
	AccountNumber   string   `json:"accountNumber,omitempty"`
	IFSCCode        string   `json:"ifscCode,omitempty"`
	Branch          string   `json:"branch,omitempty"`
}
