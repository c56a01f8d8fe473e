package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusbridge/admissions_backend/models"
)

// AgentService owns agent records and the commission distribution fan-out.
type AgentService struct {
	db  *mongo.Database
	log *logrus.Logger
}

func NewAgentService(db *mongo.Database, log *logrus.Logger) *AgentService {
	return &AgentService{db: db, log: log}
}

func (s *AgentService) collection() *mongo.Collection {
	return s.db.Collection("agents")
}

// AgentListFilter narrows the agent listing.
type AgentListFilter struct {
	Page        int
	Limit       int
	Search      string
	Consultancy string
	Status      string
	IsActive    *bool
}

func (s *AgentService) List(ctx context.Context, f AgentListFilter) ([]models.Agent, models.Pagination, error) {
	page, limit := normalizePage(f.Page, f.Limit)

	query := bson.M{}
	if f.Search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": f.Search, "$options": "i"}},
			{"email": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.Consultancy != "" {
		consultancyID, err := primitive.ObjectIDFromHex(f.Consultancy)
		if err == nil {
			query["consultancy"] = consultancyID
		}
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.IsActive != nil {
		query["isActive"] = *f.IsActive
	}

	total, err := s.collection().CountDocuments(ctx, query)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	defer cursor.Close(ctx)

	agents := []models.Agent{}
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, models.Pagination{}, err
	}

	return agents, paginationFor(total, page, limit), nil
}

func (s *AgentService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Agent, error) {
	var agent models.Agent
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&agent)
	if err == mongo.ErrNoDocuments {
		return nil, ErrAgentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (s *AgentService) Create(ctx context.Context, req models.CreateAgentRequest) (*models.Agent, error) {
	consultancyID, err := primitive.ObjectIDFromHex(req.Consultancy)
	if err != nil {
		return nil, ErrConsultancyNotFound
	}

	count, err := s.db.Collection("consultancies").CountDocuments(ctx, bson.M{"_id": consultancyID})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrConsultancyNotFound
	}

	status := req.Status
	if status == "" {
		status = models.AgentActive
	}

	now := time.Now()
	agent := models.Agent{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Consultancy:    consultancyID,
		CommissionRate: req.CommissionRate,
		Status:         status,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res, err := s.collection().InsertOne(ctx, agent)
	if err != nil {
		return nil, err
	}
	agent.ID = res.InsertedID.(primitive.ObjectID)
	return &agent, nil
}

// Update applies the given field set to an agent. Balance fields are not
// updatable here; they belong to Distribute and Withdraw.
func (s *AgentService) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Agent, error) {
	delete(fields, "walletBalance")
	delete(fields, "totalCommissionEarned")
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var agent models.Agent
	err := s.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&agent)
	if err == mongo.ErrNoDocuments {
		return nil, ErrAgentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (s *AgentService) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAgentNotFound
	}
	return nil
}

// ByConsultancy returns a consultancy's active agents sorted by name.
func (s *AgentService) ByConsultancy(ctx context.Context, consultancyID primitive.ObjectID) ([]models.Agent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.collection().Find(ctx, bson.M{"consultancy": consultancyID, "isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	agents := []models.Agent{}
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// Distribute splits totalCommission equally across the consultancy's
// agents with status "active" and the active flag set. The individual
// commissionRate field is deliberately ignored; the equal split is
// load-bearing behavior. Zero eligible agents is a no-op, not an error.
// Per-agent updates are independent: one failing does not roll back the
// others.
func (s *AgentService) Distribute(ctx context.Context, consultancyID primitive.ObjectID, totalCommission float64) (*models.DistributionResult, error) {
	cursor, err := s.collection().Find(ctx, bson.M{
		"consultancy": consultancyID,
		"status":      models.AgentActive,
		"isActive":    true,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	agents := []models.Agent{}
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, err
	}

	result := buildDistribution(agents, totalCommission)
	if result.AgentsCount == 0 {
		s.log.WithField("consultancy", consultancyID.Hex()).
			Info("no active agents found for commission distribution")
		return result, nil
	}

	for _, share := range result.DistributedTo {
		_, err := s.collection().UpdateByID(ctx, share.ID, bson.M{
			"$inc": bson.M{
				"walletBalance":         share.Amount,
				"totalCommissionEarned": share.Amount,
			},
			"$set": bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"agent":  share.ID.Hex(),
				"amount": share.Amount,
			}).WithError(err).Error("failed to credit agent share")
		}
	}

	s.log.WithFields(logrus.Fields{
		"consultancy": consultancyID.Hex(),
		"total":       totalCommission,
		"agents":      result.AgentsCount,
		"perAgent":    result.CommissionPerAgent,
	}).Info("commission distributed to agents")

	return result, nil
}

// Withdraw deducts amount from an agent's wallet balance. The lifetime
// earned counter is untouched. The decrement is conditional on the
// balance covering the amount, so concurrent withdrawals cannot overdraw.
func (s *AgentService) Withdraw(ctx context.Context, agentID primitive.ObjectID, amount float64) (*models.WithdrawalResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	agent, err := s.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	res, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": agentID, "walletBalance": bson.M{"$gte": amount}},
		bson.M{
			"$inc": bson.M{"walletBalance": -amount},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return nil, err
	}
	if res.ModifiedCount == 0 {
		return nil, ErrInsufficientFunds
	}

	updated, err := s.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	return &models.WithdrawalResult{
		AgentID:          agent.ID,
		AgentName:        agent.Name,
		WithdrawnAmount:  amount,
		RemainingBalance: updated.WalletBalance,
	}, nil
}

// Stats returns one agent's earnings snapshot.
func (s *AgentService) Stats(ctx context.Context, agentID primitive.ObjectID) (*models.AgentCommissionStats, error) {
	agent, err := s.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return &models.AgentCommissionStats{
		AgentID:               agent.ID,
		AgentName:             agent.Name,
		WalletBalance:         agent.WalletBalance,
		TotalCommissionEarned: agent.TotalCommissionEarned,
		CommissionRate:        agent.CommissionRate,
		Status:                agent.Status,
		IsActive:              agent.IsActive,
	}, nil
}

// ConsultancyAgentStats aggregates earnings across a consultancy's agents.
type ConsultancyAgentStats struct {
	TotalAgents           int                           `json:"totalAgents"`
	ActiveAgents          int                           `json:"activeAgents"`
	TotalWalletBalance    float64                       `json:"totalWalletBalance"`
	TotalCommissionEarned float64                       `json:"totalCommissionEarned"`
	Agents                []models.AgentCommissionStats `json:"agents"`
}

func (s *AgentService) StatsByConsultancy(ctx context.Context, consultancyID primitive.ObjectID) (*ConsultancyAgentStats, error) {
	agents, err := s.ByConsultancy(ctx, consultancyID)
	if err != nil {
		return nil, err
	}

	stats := &ConsultancyAgentStats{
		TotalAgents: len(agents),
		Agents:      make([]models.AgentCommissionStats, 0, len(agents)),
	}
	for _, agent := range agents {
		if agent.Status == models.AgentActive {
			stats.ActiveAgents++
		}
		stats.TotalWalletBalance += agent.WalletBalance
		stats.TotalCommissionEarned += agent.TotalCommissionEarned
		stats.Agents = append(stats.Agents, models.AgentCommissionStats{
			AgentID:               agent.ID,
			AgentName:             agent.Name,
			WalletBalance:         agent.WalletBalance,
			TotalCommissionEarned: agent.TotalCommissionEarned,
			CommissionRate:        agent.CommissionRate,
			Status:                agent.Status,
			IsActive:              agent.IsActive,
		})
	}
	return stats, nil
}

// buildDistribution computes the equal split of totalCommission across
// the given agents.
func buildDistribution(agents []models.Agent, totalCommission float64) *models.DistributionResult {
	result := &models.DistributionResult{
		TotalCommission: totalCommission,
		AgentsCount:     len(agents),
		DistributedTo:   []models.DistributionShare{},
	}
	if len(agents) == 0 {
		return result
	}

	perAgent := totalCommission / float64(len(agents))
	result.CommissionPerAgent = perAgent
	for _, agent := range agents {
		result.DistributedTo = append(result.DistributedTo, models.DistributionShare{
			ID:     agent.ID,
			Name:   agent.Name,
			Amount: perAgent,
		})
	}
	return result
}
