package payslip

import "errors"

var (
	ErrInvalidPeriod    = errors.New("month must be between 1 and 12")
	ErrNegativeHours    = errors.New("hours must not be negative")
	ErrUnknownHoursKind = errors.New("unknown overtime or absence kind")
	ErrPayslipNotFound  = errors.New("payslip not found")
	ErrPayslipConfirmed = errors.New("payslip is confirmed; recomputation requires explicit override")
	ErrAlreadyConfirmed = errors.New("payslip is already confirmed")
)
