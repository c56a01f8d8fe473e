package services

import "errors"

// Domain errors raised by the service layer. Controllers translate these
// to 400/404-class JSON responses.
var (
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInsufficientFunds      = errors.New("insufficient wallet balance")
	ErrInvalidOwnerType       = errors.New("invalid wallet owner type")
	ErrInvalidTransactionType = errors.New("transaction type must be credit or debit")

	ErrUniversityNotFound  = errors.New("university not found")
	ErrConsultancyNotFound = errors.New("consultancy not found")
	ErrAgentNotFound       = errors.New("agent not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrStreamNotFound      = errors.New("stream not found")
	ErrAdmissionNotFound   = errors.New("admission not found")
	ErrCommissionNotFound  = errors.New("commission transaction not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrExpenseNotFound     = errors.New("expense not found")

	ErrDuplicateAdmission = errors.New("student is already admitted to this course at this university")
)

// IsNotFound reports whether err is one of the entity-missing errors.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrUniversityNotFound),
		errors.Is(err, ErrConsultancyNotFound),
		errors.Is(err, ErrAgentNotFound),
		errors.Is(err, ErrStudentNotFound),
		errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrStreamNotFound),
		errors.Is(err, ErrAdmissionNotFound),
		errors.Is(err, ErrCommissionNotFound),
		errors.Is(err, ErrPaymentNotFound),
		errors.Is(err, ErrExpenseNotFound):
		return true
	}
	return false
}
