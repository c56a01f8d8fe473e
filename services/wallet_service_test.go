package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campusbridge/admissions_backend/models"
)

func TestValidateAdjustment(t *testing.T) {
	assert.NoError(t, validateAdjustment(models.TransactionCredit, 100))
	assert.NoError(t, validateAdjustment(models.TransactionDebit, 0.01))

	assert.ErrorIs(t, validateAdjustment(models.TransactionCredit, 0), ErrInvalidAmount)
	assert.ErrorIs(t, validateAdjustment(models.TransactionDebit, -50), ErrInvalidAmount)
	assert.ErrorIs(t, validateAdjustment("refund", 100), ErrInvalidTransactionType)
	assert.ErrorIs(t, validateAdjustment("", 100), ErrInvalidTransactionType)
}

func TestTransferEntriesMirrored(t *testing.T) {
	now := time.Now()
	debit, credit := transferEntries(
		models.OwnerTypeConsultancy, models.OwnerTypeAgent,
		1500, "commission payout", "monthly settlement", now,
	)

	assert.Equal(t, models.TransactionDebit, debit.Type)
	assert.Equal(t, models.TransactionCredit, credit.Type)
	assert.Equal(t, debit.Amount, credit.Amount)
	assert.Equal(t, "Transfer to agent: commission payout", debit.Reason)
	assert.Equal(t, "Transfer from consultancy: commission payout", credit.Reason)
	assert.Equal(t, now, debit.Date)
	assert.Equal(t, now, credit.Date)
	assert.Equal(t, "monthly settlement", debit.Notes)
}

func ledgerOf(n int) []models.WalletTransaction {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	txs := make([]models.WalletTransaction, n)
	for i := range txs {
		txs[i] = models.WalletTransaction{
			Type:   models.TransactionCredit,
			Amount: float64(i + 1),
			Date:   base.Add(time.Duration(i) * time.Hour),
		}
	}
	return txs
}

func TestPaginateTransactionsNewestFirst(t *testing.T) {
	txs := ledgerOf(25)

	page, pagination := paginateTransactions(txs, 1, 10)

	assert.Len(t, page, 10)
	// Newest entry (amount 25) comes first
	assert.Equal(t, float64(25), page[0].Amount)
	assert.Equal(t, float64(16), page[9].Amount)
	assert.Equal(t, int64(25), pagination.Total)
	assert.Equal(t, 3, pagination.Pages)
}

func TestPaginateTransactionsMiddlePage(t *testing.T) {
	txs := ledgerOf(25)

	page, pagination := paginateTransactions(txs, 2, 10)

	assert.Len(t, page, 10)
	assert.Equal(t, float64(15), page[0].Amount)
	assert.Equal(t, float64(6), page[9].Amount)
	assert.Equal(t, 2, pagination.Page)
}

func TestPaginateTransactionsBeyondEnd(t *testing.T) {
	txs := ledgerOf(5)

	page, pagination := paginateTransactions(txs, 4, 10)

	assert.Empty(t, page)
	assert.Equal(t, int64(5), pagination.Total)
}

func TestPaginateTransactionsDoesNotMutateInput(t *testing.T) {
	txs := ledgerOf(3)
	first := txs[0].Amount

	paginateTransactions(txs, 1, 10)

	assert.Equal(t, first, txs[0].Amount)
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = normalizePage(-3, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = normalizePage(2, 50)
	assert.Equal(t, 2, page)
	assert.Equal(t, 50, limit)
}

func TestPaginationFor(t *testing.T) {
	p := paginationFor(21, 1, 10)
	assert.Equal(t, int64(21), p.Total)
	assert.Equal(t, 3, p.Pages)

	p = paginationFor(0, 1, 10)
	assert.Equal(t, 0, p.Pages)
}
