package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusbridge/admissions_backend/models"
)

// WalletService owns every write to wallet documents. Balance always
// equals the signed sum of the embedded transaction log: every mutation
// pairs a balance change with exactly one appended entry, in a single
// document update.
type WalletService struct {
	db  *mongo.Database
	log *logrus.Logger
}

func NewWalletService(db *mongo.Database, log *logrus.Logger) *WalletService {
	return &WalletService{db: db, log: log}
}

func (s *WalletService) collection() *mongo.Collection {
	return s.db.Collection("wallets")
}

// GetOrCreate returns the wallet for (ownerType, ownerID), creating an
// empty one if absent. The upsert keeps it idempotent under concurrent
// first access; the unique (ownerType, owner) index backs it up.
func (s *WalletService) GetOrCreate(ctx context.Context, ownerType string, ownerID primitive.ObjectID) (*models.Wallet, error) {
	if !models.IsValidOwnerType(ownerType) {
		return nil, ErrInvalidOwnerType
	}

	now := time.Now()
	filter := bson.M{"ownerType": ownerType, "owner": ownerID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"ownerType":    ownerType,
			"owner":        ownerID,
			"balance":      float64(0),
			"transactions": []models.WalletTransaction{},
			"isActive":     true,
			"createdAt":    now,
			"updatedAt":    now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var wallet models.Wallet
	if err := s.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// WalletListFilter narrows the admin wallet listing.
type WalletListFilter struct {
	Page      int
	Limit     int
	OwnerType string
	Owner     string
}

// List returns wallets matching the filter, newest first.
func (s *WalletService) List(ctx context.Context, f WalletListFilter) ([]models.Wallet, models.Pagination, error) {
	page, limit := normalizePage(f.Page, f.Limit)

	query := bson.M{}
	if f.OwnerType != "" {
		query["ownerType"] = f.OwnerType
	}
	if f.Owner != "" {
		ownerID, err := primitive.ObjectIDFromHex(f.Owner)
		if err != nil {
			return nil, models.Pagination{}, fmt.Errorf("invalid owner id: %w", err)
		}
		query["owner"] = ownerID
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

	wallets := []models.Wallet{}
	if err := cursor.All(ctx, &wallets); err != nil {
		return nil, models.Pagination{}, err
	}

	return wallets, paginationFor(total, page, limit), nil
}

// Adjust applies a single credit or debit to a wallet. Credits are a
// plain atomic increment; debits are conditional on the balance covering
// the amount, so the non-negativity check and the decrement happen in one
// server-side update and concurrent debits cannot overdraw.
func (s *WalletService) Adjust(ctx context.Context, ownerType string, ownerID primitive.ObjectID, req models.WalletAdjustRequest) (*models.Wallet, error) {
	if err := validateAdjustment(req.Type, req.Amount); err != nil {
		return nil, err
	}

	wallet, err := s.GetOrCreate(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}

	entry := models.WalletTransaction{
		Type:      req.Type,
		Amount:    req.Amount,
		Reason:    req.Reason,
		Reference: req.Reference,
		Notes:     req.Notes,
		Date:      time.Now(),
	}

	if err := s.applyEntry(ctx, wallet.ID, entry); err != nil {
		return nil, err
	}

	return s.GetOrCreate(ctx, ownerType, ownerID)
}

// applyEntry persists one ledger entry plus its balance delta atomically.
func (s *WalletService) applyEntry(ctx context.Context, walletID primitive.ObjectID, entry models.WalletTransaction) error {
	delta := entry.Amount
	filter := bson.M{"_id": walletID}
	if entry.Type == models.TransactionDebit {
		delta = -entry.Amount
		filter["balance"] = bson.M{"$gte": entry.Amount}
	}

	update := bson.M{
		"$inc":  bson.M{"balance": delta},
		"$push": bson.M{"transactions": entry},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := s.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// Balance is a convenience read over GetOrCreate.
func (s *WalletService) Balance(ctx context.Context, ownerType string, ownerID primitive.ObjectID) (float64, error) {
	wallet, err := s.GetOrCreate(ctx, ownerType, ownerID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// Transactions returns the wallet's ledger newest-first, paginated
// in memory over the embedded list. A missing wallet yields an empty page
// rather than an error.
func (s *WalletService) Transactions(ctx context.Context, ownerType string, ownerID primitive.ObjectID, page, limit int) ([]models.WalletTransaction, models.Pagination, error) {
	if !models.IsValidOwnerType(ownerType) {
		return nil, models.Pagination{}, ErrInvalidOwnerType
	}

	var wallet models.Wallet
	err := s.collection().FindOne(ctx, bson.M{"ownerType": ownerType, "owner": ownerID}).Decode(&wallet)
	if err == mongo.ErrNoDocuments {
		return []models.WalletTransaction{}, models.Pagination{Page: 1}, nil
	}
	if err != nil {
		return nil, models.Pagination{}, err
	}

	txs, pagination := paginateTransactions(wallet.Transactions, page, limit)
	return txs, pagination, nil
}

// Transfer debits the sender and credits the receiver as two
// single-document writes with mirrored reason text. The debit side is
// conditional so the sender cannot overdraw; there is no multi-document
// transaction, so a failure after the debit leaves a partial effect that
// is surfaced to the caller and logged.
func (s *WalletService) Transfer(ctx context.Context, req models.WalletTransferRequest) (*models.Wallet, *models.Wallet, error) {
	if req.Amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	if !models.IsValidOwnerType(req.FromType) || !models.IsValidOwnerType(req.ToType) {
		return nil, nil, ErrInvalidOwnerType
	}

	fromID, err := primitive.ObjectIDFromHex(req.FromID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sender id: %w", err)
	}
	toID, err := primitive.ObjectIDFromHex(req.ToID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid receiver id: %w", err)
	}

	fromWallet, err := s.GetOrCreate(ctx, req.FromType, fromID)
	if err != nil {
		return nil, nil, err
	}
	toWallet, err := s.GetOrCreate(ctx, req.ToType, toID)
	if err != nil {
		return nil, nil, err
	}

	if fromWallet.Balance < req.Amount {
		return nil, nil, ErrInsufficientFunds
	}

	debitEntry, creditEntry := transferEntries(req.FromType, req.ToType, req.Amount, req.Reason, req.Notes, time.Now())

	if err := s.applyEntry(ctx, fromWallet.ID, debitEntry); err != nil {
		return nil, nil, err
	}
	if err := s.applyEntry(ctx, toWallet.ID, creditEntry); err != nil {
		s.log.WithFields(logrus.Fields{
			"fromWallet": fromWallet.ID.Hex(),
			"toWallet":   toWallet.ID.Hex(),
			"amount":     req.Amount,
		}).WithError(err).Error("transfer credit failed after debit was applied; ledgers are inconsistent")
		return nil, nil, fmt.Errorf("transfer credit failed after debit: %w", err)
	}

	fromWallet, err = s.GetOrCreate(ctx, req.FromType, fromID)
	if err != nil {
		return nil, nil, err
	}
	toWallet, err = s.GetOrCreate(ctx, req.ToType, toID)
	if err != nil {
		return nil, nil, err
	}

	return fromWallet, toWallet, nil
}

func validateAdjustment(txType string, amount float64) error {
	if txType != models.TransactionCredit && txType != models.TransactionDebit {
		return ErrInvalidTransactionType
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// transferEntries builds the mirrored debit/credit pair for a transfer.
func transferEntries(fromType, toType string, amount float64, reason, notes string, now time.Time) (models.WalletTransaction, models.WalletTransaction) {
	debit := models.WalletTransaction{
		Type:   models.TransactionDebit,
		Amount: amount,
		Reason: fmt.Sprintf("Transfer to %s: %s", toType, reason),
		Notes:  notes,
		Date:   now,
	}
	credit := models.WalletTransaction{
		Type:   models.TransactionCredit,
		Amount: amount,
		Reason: fmt.Sprintf("Transfer from %s: %s", fromType, reason),
		Notes:  notes,
		Date:   now,
	}
	return debit, credit
}

// paginateTransactions windows a wallet's ledger newest-first.
func paginateTransactions(txs []models.WalletTransaction, page, limit int) ([]models.WalletTransaction, models.Pagination) {
	page, limit = normalizePage(page, limit)

	sorted := make([]models.WalletTransaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	start := (page - 1) * limit
	if start > len(sorted) {
		start = len(sorted)
	}
	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}

	return sorted[start:end], paginationFor(int64(len(txs)), page, limit)
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func paginationFor(total int64, page, limit int) models.Pagination {
	return models.Pagination{
		Total: total,
		Page:  page,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
