package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Agent statuses
const (
	AgentActive   = "active"
	AgentInactive = "inactive"
)

// Agent is a consultancy's field agent. WalletBalance and
// TotalCommissionEarned are mutated only by the agent service: both grow
// by commission distribution; withdrawals decrease WalletBalance but never
// TotalCommissionEarned.
type Agent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Consultancy primitive.ObjectID `bson:"consultancy" json:"consultancy"`

	// CommissionRate is informational for agent-level reporting; the
	// distributor splits payouts equally regardless of it.
	CommissionRate float64 `bson:"commissionRate" json:"commissionRate"`

	Status                string  `bson:"status" json:"status"` // "active" or "inactive"
	WalletBalance         float64 `bson:"walletBalance" json:"walletBalance"`
	TotalCommissionEarned float64 `bson:"totalCommissionEarned" json:"totalCommissionEarned"`
	IsActive              bool    `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateAgentRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required"`
	Consultancy    string  `json:"consultancy" validate:"required"`
	CommissionRate float64 `json:"commissionRate" validate:"gte=0,lte=100"`
	Status         string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// DistributionShare is one agent's slice of a distributed commission.
type DistributionShare struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Amount float64            `json:"amount"`
}

// DistributionResult reports how a commission payout was fanned out
// across a consultancy's active agents.
type DistributionResult struct {
	TotalCommission    float64             `json:"totalCommission"`
	AgentsCount        int                 `json:"agentsCount"`
	CommissionPerAgent float64             `json:"commissionPerAgent"`
	DistributedTo      []DistributionShare `json:"distributedTo"`
}

// WithdrawalResult reports a processed agent wallet withdrawal.
type WithdrawalResult struct {
	AgentID          primitive.ObjectID `json:"agentId"`
	AgentName        string             `json:"agentName"`
	WithdrawnAmount  float64            `json:"withdrawnAmount"`
	RemainingBalance float64            `json:"remainingBalance"`
}

// AgentCommissionStats is the per-agent earnings snapshot.
type AgentCommissionStats struct {
	AgentID               primitive.ObjectID `json:"agentId"`
	AgentName             string             `json:"agentName"`
	WalletBalance         float64            `json:"walletBalance"`
	TotalCommissionEarned float64            `json:"totalCommissionEarned"`
	CommissionRate        float64            `json:"commissionRate"`
	Status                string             `json:"status"`
	IsActive              bool               `json:"isActive"`
}
