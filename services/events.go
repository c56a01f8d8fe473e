package services

// EventSink receives finance events for fan-out to connected dashboard
// clients. Implementations must be safe for concurrent use.
type EventSink interface {
	Publish(eventType, message string, data interface{})
}

// Event types published by the service layer.
const (
	EventCommissionPaid   = "commission_paid"
	EventDistribution     = "commission_distributed"
	EventWalletAdjusted   = "wallet_adjusted"
	EventWalletTransfer   = "wallet_transfer"
	EventAgentWithdrawal  = "agent_withdrawal"
)
