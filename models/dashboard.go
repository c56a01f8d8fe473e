package models

// WalletSummary totals wallet balances per owner kind.
type WalletSummary struct {
	UniversityTotal  float64 `json:"university_total"`
	ConsultancyTotal float64 `json:"consultancy_total"`
	AgentTotal       float64 `json:"agent_total"`
	SuperAdminTotal  float64 `json:"super_admin_total"`
}

// PendingFees reports what each party is still owed relative to the
// fixed-ratio profit split.
type PendingFees struct {
	PendingUniversityPayments  float64 `json:"pending_university_payments"`
	PendingAgentCommissions    float64 `json:"pending_agent_commissions"`
	PendingConsultancyEarnings float64 `json:"pending_consultancy_earnings"`
}

// DashboardStats is the read-only aggregation backing the admin dashboard.
type DashboardStats struct {
	TotalUniversities  int64 `json:"total_universities"`
	TotalConsultancies int64 `json:"total_consultancies"`
	TotalAgents        int64 `json:"total_agents"`
	TotalStudents      int64 `json:"total_students"`
	TotalCourses       int64 `json:"total_courses"`
	TotalAdmissions    int64 `json:"total_admissions"`
	PendingAdmissions  int64 `json:"pending_admissions"`
	ApprovedAdmissions int64 `json:"approved_admissions"`
	RejectedAdmissions int64 `json:"rejected_admissions"`

	TotalFeesCollected      float64       `json:"total_fees_collected"`
	FeesPaidToUniversities  float64       `json:"fees_paid_to_universities"`
	AgentCommissionsPaid    float64       `json:"agent_commissions_paid"`
	ConsultancyProfit       float64       `json:"consultancy_profit"`
	SystemProfit            float64       `json:"system_profit"`
	WalletSummary           WalletSummary `json:"wallet_summary"`
	PendingFees             PendingFees   `json:"pending_fees"`
	DailyExpenses           float64       `json:"daily_expenses"`
}
