package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	weeksPerYear   = decimal.NewFromInt(52)
	monthsPerYear  = decimal.NewFromInt(12)
	daysPerYearAvg = decimal.NewFromFloat(365.25)
)

// Validate reports whether the snapshot carries everything a payroll
// computation needs. Missing agreement or level is a configuration error.
func (s Snapshot) Validate() error {
	if s.Agreement.ID == "" {
		return ErrAgreementNotSet
	}
	if s.Level.ID == "" {
		return ErrLevelNotSet
	}
	if !s.WeeklyHours.IsPositive() {
		return ErrZeroContractHours
	}
	return nil
}

// SenioritySteps returns the number of seniority increments (scatti di
// anzianità) matured at the given date, capped by the agreement.
func (s Snapshot) SenioritySteps(at time.Time) int {
	if s.Agreement.YearsPerSeniorityStep <= 0 || s.Agreement.SeniorityStepAmount.IsZero() {
		return 0
	}
	if s.HireDate.IsZero() || at.Before(s.HireDate) {
		return 0
	}

	days := decimal.NewFromInt(int64(at.Sub(s.HireDate).Hours() / 24))
	years := days.Div(daysPerYearAvg)
	steps := int(years.Div(decimal.NewFromInt(int64(s.Agreement.YearsPerSeniorityStep))).IntPart())
	if steps > s.Agreement.MaxSenioritySteps {
		steps = s.Agreement.MaxSenioritySteps
	}
	return steps
}

// MonthlyPay is the contractual monthly amount: level base pay plus matured
// seniority increments plus the personal superminimo.
func (s Snapshot) MonthlyPay(at time.Time) decimal.Decimal {
	steps := decimal.NewFromInt(int64(s.SenioritySteps(at)))
	increments := s.Agreement.SeniorityStepAmount.Mul(steps)
	return s.Level.MonthlyBasePay.Add(increments).Add(s.Superminimo)
}

// MonthlyHours converts the contract weekly hours to their monthly
// equivalent (weekly × 52 / 12).
func (s Snapshot) MonthlyHours() decimal.Decimal {
	return s.WeeklyHours.Mul(weeksPerYear).Div(monthsPerYear)
}

// HourlyRate is the base hourly rate used for ordinary and overtime pay.
func (s Snapshot) HourlyRate(at time.Time) (decimal.Decimal, error) {
	hours := s.MonthlyHours()
	if !hours.IsPositive() {
		return decimal.Zero, ErrZeroContractHours
	}
	return s.MonthlyPay(at).Div(hours), nil
}
