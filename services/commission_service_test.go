package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusbridge/admissions_backend/models"
)

func TestCalculateCommission(t *testing.T) {
	cases := []struct {
		name           string
		courseFees     float64
		commissionType string
		value          float64
		want           float64
	}{
		{"percentage", 100000, models.CommissionPercentage, 10, 10000},
		{"percentage zero fees", 0, models.CommissionPercentage, 10, 0},
		{"percentage zero rate", 100000, models.CommissionPercentage, 0, 0},
		{"flat", 100000, models.CommissionFlat, 5000, 5000},
		{"flat ignores fees", 0, models.CommissionFlat, 5000, 5000},
		{"oneTime", 250000, models.CommissionOneTime, 15000, 15000},
		{"unknown type", 100000, "referral", 10, 0},
		{"empty type", 100000, "", 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateCommission(tc.courseFees, tc.commissionType, tc.value)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestShouldDistribute(t *testing.T) {
	cases := []struct {
		prev string
		next string
		want bool
	}{
		{models.CommissionPending, models.CommissionPaid, true},
		{models.CommissionApproved, models.CommissionPaid, true},
		{models.CommissionRejected, models.CommissionPaid, true},
		{models.CommissionPaid, models.CommissionPaid, false},
		{models.CommissionPending, models.CommissionApproved, false},
		{models.CommissionPaid, models.CommissionPending, false},
		{models.CommissionPaid, models.CommissionRejected, false},
	}

	for _, tc := range cases {
		got := shouldDistribute(tc.prev, tc.next)
		assert.Equal(t, tc.want, got, "prev=%s next=%s", tc.prev, tc.next)
	}
}
