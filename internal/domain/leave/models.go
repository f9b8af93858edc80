package leave

import "github.com/shopspring/decimal"

// Balance is one employee's pool for a (year, leave type) pair.
type Balance struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	Year           int             `json:"year"`
	LeaveType      string          `json:"leaveType"`
	AccruedHours   decimal.Decimal `json:"accruedHours"`
	CarryoverHours decimal.Decimal `json:"carryoverHours"`
	ConsumedHours  decimal.Decimal `json:"consumedHours"`
}

// Residual is what remains: accrued + prior-year carryover − consumed.
func (b Balance) Residual() decimal.Decimal {
	return b.AccruedHours.Add(b.CarryoverHours).Sub(b.ConsumedHours)
}

// AccrualSummary reports one monthly accrual run.
type AccrualSummary struct {
	Year             int  `json:"year"`
	Month            int  `json:"month"`
	EmployeesAccrued int  `json:"employeesAccrued"`
	AlreadyApplied   bool `json:"alreadyApplied"`
}
