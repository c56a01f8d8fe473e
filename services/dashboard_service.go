package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusbridge/admissions_backend/models"
)

// Fixed profit-split ratios applied to collected fees.
const (
	universityShare  = 0.70
	agentShare       = 0.15
	consultancyShare = 0.10
	systemShare      = 0.05
)

// DashboardService is a read-only aggregation layer over the whole store.
type DashboardService struct {
	db *mongo.Database
}

func NewDashboardService(db *mongo.Database) *DashboardService {
	return &DashboardService{db: db}
}

func (s *DashboardService) count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx, filter)
}

func (s *DashboardService) sum(ctx context.Context, collection string, match bson.M, field string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": field}}}},
	}

	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// walletTotals sums wallet balances grouped by owner kind.
func (s *DashboardService) walletTotals(ctx context.Context) (models.WalletSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$ownerType", "totalBalance": bson.M{"$sum": "$balance"}}}},
	}

	cursor, err := s.db.Collection("wallets").Aggregate(ctx, pipeline)
	if err != nil {
		return models.WalletSummary{}, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		OwnerType    string  `bson:"_id"`
		TotalBalance float64 `bson:"totalBalance"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return models.WalletSummary{}, err
	}

	var summary models.WalletSummary
	for _, row := range rows {
		switch row.OwnerType {
		case models.OwnerTypeUniversity:
			summary.UniversityTotal = row.TotalBalance
		case models.OwnerTypeConsultancy:
			summary.ConsultancyTotal = row.TotalBalance
		case models.OwnerTypeAgent:
			summary.AgentTotal = row.TotalBalance
		}
	}
	return summary, nil
}

// Stats assembles the admin dashboard aggregation.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	counts := []struct {
		dest       *int64
		collection string
		filter     bson.M
	}{
		{&stats.TotalUniversities, "universities", bson.M{"isActive": true}},
		{&stats.TotalConsultancies, "consultancies", bson.M{"isActive": true}},
		{&stats.TotalAgents, "agents", bson.M{"isActive": true}},
		{&stats.TotalStudents, "students", bson.M{}},
		{&stats.TotalCourses, "courses", bson.M{}},
		{&stats.TotalAdmissions, "admissions", bson.M{}},
		{&stats.PendingAdmissions, "admissions", bson.M{"status": models.AdmissionPending}},
		{&stats.ApprovedAdmissions, "admissions", bson.M{"status": models.AdmissionApproved}},
		{&stats.RejectedAdmissions, "admissions", bson.M{"status": models.AdmissionRejected}},
	}
	for _, c := range counts {
		n, err := s.count(ctx, c.collection, c.filter)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	collected, err := s.sum(ctx, "payments", bson.M{"status": models.PaymentCompleted}, "$amount")
	if err != nil {
		return nil, err
	}
	stats.TotalFeesCollected = collected
	stats.FeesPaidToUniversities = collected * universityShare
	stats.AgentCommissionsPaid = collected * agentShare
	stats.ConsultancyProfit = collected * consultancyShare
	stats.SystemProfit = collected * systemShare

	summary, err := s.walletTotals(ctx)
	if err != nil {
		return nil, err
	}
	stats.WalletSummary = summary
	stats.PendingFees = models.PendingFees{
		PendingUniversityPayments:  stats.FeesPaidToUniversities - summary.UniversityTotal,
		PendingAgentCommissions:    stats.AgentCommissionsPaid - summary.AgentTotal,
		PendingConsultancyEarnings: stats.ConsultancyProfit - summary.ConsultancyTotal,
	}

	today := time.Now().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)
	daily, err := s.sum(ctx, "expenses", bson.M{
		"date":   bson.M{"$gte": today, "$lt": tomorrow},
		"status": models.ExpenseVerified,
	}, "$amount")
	if err != nil {
		return nil, err
	}
	stats.DailyExpenses = daily

	return stats, nil
}
