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

// CalculateCommission maps (courseFees, commissionType, commissionValue)
// to the commission amount. Percentage is a rate over the fees; flat and
// oneTime are fee amounts irrespective of course fees. Unknown types
// yield 0 rather than an error.
func CalculateCommission(courseFees float64, commissionType string, commissionValue float64) float64 {
	switch commissionType {
	case models.CommissionPercentage:
		return courseFees * commissionValue / 100
	case models.CommissionFlat, models.CommissionOneTime:
		return commissionValue
	default:
		return 0
	}
}

// shouldDistribute reports whether a status change is the one transition
// that fans out funds to agents: landing on Paid from any non-Paid state.
// Re-submitting Paid is idempotent.
func shouldDistribute(prevStatus, newStatus string) bool {
	return newStatus == models.CommissionPaid && prevStatus != models.CommissionPaid
}

// CommissionService owns commission transactions. The calculated amount
// is fixed at creation; status advances toward Paid or Rejected, and the
// transition into Paid triggers agent distribution exactly once.
type CommissionService struct {
	db     *mongo.Database
	agents *AgentService
	events EventSink
	log    *logrus.Logger
}

func NewCommissionService(db *mongo.Database, agents *AgentService, events EventSink, log *logrus.Logger) *CommissionService {
	return &CommissionService{db: db, agents: agents, events: events, log: log}
}

func (s *CommissionService) collection() *mongo.Collection {
	return s.db.Collection("commissionTransactions")
}

// lookupName fetches an entity's display name for denormalization,
// erroring with notFound when the entity does not exist.
func (s *CommissionService) lookupName(ctx context.Context, collection string, id primitive.ObjectID, notFound error) (string, error) {
	var doc struct {
		Name string `bson:"name"`
	}
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"name": 1})).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", notFound
	}
	if err != nil {
		return "", err
	}
	return doc.Name, nil
}

// Create validates every referenced entity, computes the commission
// amount, denormalizes display names, and persists the transaction. An
// initial Paid status distributes immediately.
func (s *CommissionService) Create(ctx context.Context, req models.CreateCommissionRequest) (*models.CommissionTransaction, error) {
	consultancyID, err := primitive.ObjectIDFromHex(req.ConsultancyID)
	if err != nil {
		return nil, ErrConsultancyNotFound
	}
	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		return nil, ErrCourseNotFound
	}
	universityID, err := primitive.ObjectIDFromHex(req.UniversityID)
	if err != nil {
		return nil, ErrUniversityNotFound
	}

	consultancyName, err := s.lookupName(ctx, "consultancies", consultancyID, ErrConsultancyNotFound)
	if err != nil {
		return nil, err
	}
	studentName, err := s.lookupName(ctx, "students", studentID, ErrStudentNotFound)
	if err != nil {
		return nil, err
	}
	courseName, err := s.lookupName(ctx, "courses", courseID, ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	if count, err := s.db.Collection("universities").CountDocuments(ctx, bson.M{"_id": universityID}); err != nil {
		return nil, err
	} else if count == 0 {
		return nil, ErrUniversityNotFound
	}

	status := req.Status
	if status == "" {
		status = models.CommissionPending
	}

	now := time.Now()
	tx := models.CommissionTransaction{
		ConsultancyID:        consultancyID,
		StudentID:            studentID,
		CourseID:             courseID,
		UniversityID:         universityID,
		CommissionType:       req.CommissionType,
		CommissionValue:      req.CommissionValue,
		CourseFees:           req.CourseFees,
		CalculatedCommission: CalculateCommission(req.CourseFees, req.CommissionType, req.CommissionValue),
		TransactionDate:      now,
		Status:               status,
		Remarks:              req.Remarks,
		StudentName:          studentName,
		CourseName:           courseName,
		ConsultancyName:      consultancyName,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	res, err := s.collection().InsertOne(ctx, tx)
	if err != nil {
		return nil, err
	}
	tx.ID = res.InsertedID.(primitive.ObjectID)

	if status == models.CommissionPaid {
		s.distribute(ctx, &tx)
	}

	return &tx, nil
}

// UpdateStatus advances a transaction's status. The previous status is
// read before the write so distribution runs exactly once per transition
// into Paid; distribution failures are logged but do not fail the status
// update.
func (s *CommissionService) UpdateStatus(ctx context.Context, id primitive.ObjectID, req models.UpdateCommissionStatusRequest) (*models.CommissionTransaction, error) {
	var previous models.CommissionTransaction
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&previous)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCommissionNotFound
	}
	if err != nil {
		return nil, err
	}

	fields := bson.M{
		"status":    req.Status,
		"updatedAt": time.Now(),
	}
	if req.Status == models.CommissionPaid {
		if req.PaymentDate != nil {
			fields["paymentDate"] = *req.PaymentDate
		}
		if req.PaymentReference != "" {
			fields["paymentReference"] = req.PaymentReference
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.CommissionTransaction
	if err := s.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCommissionNotFound
		}
		return nil, err
	}

	if shouldDistribute(previous.Status, req.Status) {
		s.distribute(ctx, &updated)
	}

	return &updated, nil
}

// distribute fans the calculated commission out to the consultancy's
// agents. Best effort: failures are logged, never propagated.
func (s *CommissionService) distribute(ctx context.Context, tx *models.CommissionTransaction) {
	result, err := s.agents.Distribute(ctx, tx.ConsultancyID, tx.CalculatedCommission)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"commission":  tx.ID.Hex(),
			"consultancy": tx.ConsultancyID.Hex(),
			"amount":      tx.CalculatedCommission,
		}).WithError(err).Error("commission distribution failed")
		return
	}

	if s.events != nil {
		s.events.Publish(EventCommissionPaid, "Commission marked as paid", tx)
		if result.AgentsCount > 0 {
			s.events.Publish(EventDistribution, "Commission distributed to agents", result)
		}
	}
}

// Update applies non-status field edits to a transaction.
func (s *CommissionService) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.CommissionTransaction, error) {
	delete(fields, "status")
	delete(fields, "calculatedCommission")
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.CommissionTransaction
	err := s.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCommissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CommissionService) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCommissionNotFound
	}
	return nil
}

func (s *CommissionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CommissionTransaction, error) {
	var tx models.CommissionTransaction
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCommissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// List returns transactions matching query, newest first. Role scoping is
// the caller's responsibility: controllers fold the caller's consultancy
// or university into query before calling.
func (s *CommissionService) List(ctx context.Context, query bson.M, page, limit int) ([]models.CommissionTransaction, models.Pagination, error) {
	page, limit = normalizePage(page, limit)

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

	txs := []models.CommissionTransaction{}
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, models.Pagination{}, err
	}

	return txs, paginationFor(total, page, limit), nil
}

// Statistics folds matching transactions into per-status sums and counts.
func (s *CommissionService) Statistics(ctx context.Context, match bson.M) (*models.CommissionStatistics, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":              nil,
			"totalCommissions": bson.M{"$sum": "$calculatedCommission"},
			"pendingCommissions": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.CommissionPending}}, "$calculatedCommission", 0},
			}},
			"paidCommissions": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.CommissionPaid}}, "$calculatedCommission", 0},
			}},
			"totalTransactions": bson.M{"$sum": 1},
			"pendingTransactions": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.CommissionPending}}, 1, 0},
			}},
			"paidTransactions": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.CommissionPaid}}, 1, 0},
			}},
		}}},
	}

	cursor, err := s.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.CommissionStatistics
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &models.CommissionStatistics{}, nil
	}
	return &results[0], nil
}
