package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusbridge/admissions_backend/models"
)

// AdmissionService owns admission records and the admission-to-commission
// trigger: reaching approved or enrolled creates a Pending commission
// from the consultancy's commission policy.
type AdmissionService struct {
	db          *mongo.Database
	commissions *CommissionService
	log         *logrus.Logger
}

func NewAdmissionService(db *mongo.Database, commissions *CommissionService, log *logrus.Logger) *AdmissionService {
	return &AdmissionService{db: db, commissions: commissions, log: log}
}

func (s *AdmissionService) collection() *mongo.Collection {
	return s.db.Collection("admissions")
}

// triggersCommission reports whether a status change crosses into the
// commission-earning states for the first time.
func triggersCommission(prevStatus, newStatus string) bool {
	earning := func(st string) bool {
		return st == models.AdmissionApproved || st == models.AdmissionEnrolled
	}
	return earning(newStatus) && !earning(prevStatus)
}

// commissionBasis picks the fee the commission is computed from: the
// admission's agreed tuition fee when present, the course's listed fees
// otherwise.
func commissionBasis(tuitionFee, courseFees float64) float64 {
	if tuitionFee > 0 {
		return tuitionFee
	}
	return courseFees
}

// newApplicationNumber generates an ADM-prefixed application number.
func newApplicationNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ADM%d%s", now.UnixMilli(), suffix)
}

func (s *AdmissionService) List(ctx context.Context, query bson.M, page, limit int) ([]models.Admission, models.Pagination, error) {
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

	admissions := []models.Admission{}
	if err := cursor.All(ctx, &admissions); err != nil {
		return nil, models.Pagination{}, err
	}

	return admissions, paginationFor(total, page, limit), nil
}

func (s *AdmissionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admission, error) {
	var admission models.Admission
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&admission)
	if err == mongo.ErrNoDocuments {
		return nil, ErrAdmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admission, nil
}

func (s *AdmissionService) exists(ctx context.Context, collection string, id primitive.ObjectID) (bool, error) {
	count, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{"_id": id})
	return count > 0, err
}

// Create validates every referenced entity, rejects duplicate admissions
// for the same student/course/university, and persists the record. An
// initial approved or enrolled status creates the commission immediately.
func (s *AdmissionService) Create(ctx context.Context, req models.CreateAdmissionRequest) (*models.Admission, error) {
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
	consultancyID, err := primitive.ObjectIDFromHex(req.ConsultancyID)
	if err != nil {
		return nil, ErrConsultancyNotFound
	}

	checks := []struct {
		collection string
		id         primitive.ObjectID
		missing    error
	}{
		{"students", studentID, ErrStudentNotFound},
		{"courses", courseID, ErrCourseNotFound},
		{"universities", universityID, ErrUniversityNotFound},
		{"consultancies", consultancyID, ErrConsultancyNotFound},
	}
	for _, check := range checks {
		ok, err := s.exists(ctx, check.collection, check.id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, check.missing
		}
	}

	duplicate, err := s.collection().CountDocuments(ctx, bson.M{
		"studentId":    studentID,
		"courseId":     courseID,
		"universityId": universityID,
		"status":       bson.M{"$in": []string{models.AdmissionApproved, models.AdmissionEnrolled}},
	})
	if err != nil {
		return nil, err
	}
	if duplicate > 0 {
		return nil, ErrDuplicateAdmission
	}

	status := req.Status
	if status == "" {
		status = models.AdmissionPending
	}

	now := time.Now()
	admissionDate := now
	if req.AdmissionDate != nil {
		admissionDate = *req.AdmissionDate
	}

	admission := models.Admission{
		StudentID:         studentID,
		CourseID:          courseID,
		UniversityID:      universityID,
		ConsultancyID:     consultancyID,
		ApplicationNumber: newApplicationNumber(now),
		Status:            status,
		AdmissionDate:     admissionDate,
		ApplicationFee:    req.ApplicationFee,
		TuitionFee:        req.TuitionFee,
		Remarks:           req.Remarks,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	res, err := s.collection().InsertOne(ctx, admission)
	if err != nil {
		return nil, err
	}
	admission.ID = res.InsertedID.(primitive.ObjectID)

	if triggersCommission("", status) {
		s.createCommission(ctx, &admission)
	}

	return &admission, nil
}

// createCommission derives a Pending commission from the consultancy's
// commission policy. Best effort: failures are logged, never propagated.
func (s *AdmissionService) createCommission(ctx context.Context, admission *models.Admission) {
	var course models.Course
	if err := s.db.Collection("courses").FindOne(ctx, bson.M{"_id": admission.CourseID}).Decode(&course); err != nil {
		s.log.WithField("admission", admission.ID.Hex()).WithError(err).
			Error("failed to load course for commission creation")
		return
	}

	var consultancy models.Consultancy
	if err := s.db.Collection("consultancies").FindOne(ctx, bson.M{"_id": admission.ConsultancyID}).Decode(&consultancy); err != nil {
		s.log.WithField("admission", admission.ID.Hex()).WithError(err).
			Error("failed to load consultancy for commission creation")
		return
	}

	commissionType := consultancy.CommissionType
	if commissionType == "" {
		commissionType = models.CommissionPercentage
	}

	_, err := s.commissions.Create(ctx, models.CreateCommissionRequest{
		ConsultancyID:   admission.ConsultancyID.Hex(),
		StudentID:       admission.StudentID.Hex(),
		CourseID:        admission.CourseID.Hex(),
		UniversityID:    admission.UniversityID.Hex(),
		CommissionType:  commissionType,
		CommissionValue: consultancy.CommissionValue,
		CourseFees:      commissionBasis(admission.TuitionFee, course.Fees),
		Status:          models.CommissionPending,
	})
	if err != nil {
		s.log.WithField("admission", admission.ID.Hex()).WithError(err).
			Error("failed to create commission for admission")
	}
}

// Update edits an admission. Crossing into approved or enrolled from a
// non-earning state creates the commission.
func (s *AdmissionService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateAdmissionRequest) (*models.Admission, error) {
	previous, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{"updatedAt": time.Now()}
	if req.AdmissionDate != nil {
		fields["admissionDate"] = *req.AdmissionDate
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}
	if req.ApplicationFee != nil {
		fields["applicationFee"] = *req.ApplicationFee
	}
	if req.TuitionFee != nil {
		fields["tuitionFee"] = *req.TuitionFee
	}
	if req.EnrollmentDate != nil {
		fields["enrollmentDate"] = *req.EnrollmentDate
	}
	if req.CompletionDate != nil {
		fields["completionDate"] = *req.CompletionDate
	}
	if req.Remarks != nil {
		fields["remarks"] = *req.Remarks
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Admission
	if err := s.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAdmissionNotFound
		}
		return nil, err
	}

	if req.Status != "" && triggersCommission(previous.Status, req.Status) {
		s.createCommission(ctx, &updated)
	}

	return &updated, nil
}

func (s *AdmissionService) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAdmissionNotFound
	}
	return nil
}

// Statistics folds matching admissions into per-status counts and fee
// totals.
func (s *AdmissionService) Statistics(ctx context.Context, match bson.M) (*models.AdmissionStatistics, error) {
	countByStatus := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", status}}, 1, 0}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":                  nil,
			"totalAdmissions":      bson.M{"$sum": 1},
			"pendingAdmissions":    countByStatus(models.AdmissionPending),
			"approvedAdmissions":   countByStatus(models.AdmissionApproved),
			"enrolledAdmissions":   countByStatus(models.AdmissionEnrolled),
			"rejectedAdmissions":   countByStatus(models.AdmissionRejected),
			"totalApplicationFees": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$applicationFee", 0}}},
			"totalTuitionFees":     bson.M{"$sum": bson.M{"$ifNull": bson.A{"$tuitionFee", 0}}},
		}}},
	}

	cursor, err := s.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.AdmissionStatistics
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &models.AdmissionStatistics{}, nil
	}
	return &results[0], nil
}
