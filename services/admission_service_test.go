package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campusbridge/admissions_backend/models"
)

func TestTriggersCommission(t *testing.T) {
	cases := []struct {
		prev string
		next string
		want bool
	}{
		{models.AdmissionPending, models.AdmissionApproved, true},
		{models.AdmissionPending, models.AdmissionEnrolled, true},
		{models.AdmissionRejected, models.AdmissionApproved, true},
		// Already earning: moving between earning states must not
		// create a second commission
		{models.AdmissionApproved, models.AdmissionEnrolled, false},
		{models.AdmissionEnrolled, models.AdmissionApproved, false},
		{models.AdmissionPending, models.AdmissionRejected, false},
		{models.AdmissionApproved, models.AdmissionRejected, false},
		{models.AdmissionPending, models.AdmissionPending, false},
	}

	for _, tc := range cases {
		got := triggersCommission(tc.prev, tc.next)
		assert.Equal(t, tc.want, got, "prev=%s next=%s", tc.prev, tc.next)
	}
}

func TestCommissionBasis(t *testing.T) {
	// Tuition fee wins when set
	assert.Equal(t, float64(80000), commissionBasis(80000, 100000))
	// Fall back to course fees
	assert.Equal(t, float64(100000), commissionBasis(0, 100000))
	assert.Equal(t, float64(0), commissionBasis(0, 0))
}

func TestNewApplicationNumber(t *testing.T) {
	now := time.Now()

	a := newApplicationNumber(now)
	b := newApplicationNumber(now)

	assert.True(t, strings.HasPrefix(a, "ADM"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, strings.ToUpper(a), a)
}
