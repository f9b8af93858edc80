package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Hours is the raw period input: ordinary hours plus overtime and absence
// hours keyed by kind. Missing kinds count as zero.
type Hours struct {
	Ordinary decimal.Decimal
	Overtime map[string]decimal.Decimal
	Absences map[string]decimal.Decimal
}

func (h Hours) overtime(kind string) decimal.Decimal {
	return h.Overtime[kind]
}

func (h Hours) absence(kind string) decimal.Decimal {
	return h.Absences[kind]
}

// Payslip is the monthly header: one row per (employee, year, month).
// All money amounts carry exactly two decimals.
type Payslip struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	OrdinaryHours        decimal.Decimal `json:"ordinaryHours"`
	OvertimeWeekdayHours decimal.Decimal `json:"overtimeWeekdayHours"`
	OvertimeHolidayHours decimal.Decimal `json:"overtimeHolidayHours"`
	OvertimeNightHours   decimal.Decimal `json:"overtimeNightHours"`
	VacationHours        decimal.Decimal `json:"vacationHours"`
	ROLHours             decimal.Decimal `json:"rolHours"`
	PermitHours          decimal.Decimal `json:"permitHours"`
	SickHours            decimal.Decimal `json:"sickHours"`

	FiscalBase        decimal.Decimal `json:"fiscalBase"`
	ContributionBase  decimal.Decimal `json:"contributionBase"`
	TaxableNet        decimal.Decimal `json:"taxableNet"`
	SocialSecurity    decimal.Decimal `json:"socialSecurity"`
	IncomeTax         decimal.Decimal `json:"incomeTax"`
	RegionalSurtax    decimal.Decimal `json:"regionalSurtax"`
	MunicipalSurtax   decimal.Decimal `json:"municipalSurtax"`
	TaxCredits        decimal.Decimal `json:"taxCredits"`
	OtherWithholdings decimal.Decimal `json:"otherWithholdings"`
	NetPay            decimal.Decimal `json:"netPay"`
	SeveranceAccrued  decimal.Decimal `json:"severanceAccrued"`

	Warnings   []string  `json:"warnings"`
	Confirmed  bool      `json:"confirmed"`
	ComputedAt time.Time `json:"computedAt"`
}

// LineItem is one payslip row. Line items are regenerated wholesale on every
// computation, never patched in place.
type LineItem struct {
	ID                  string              `json:"id"`
	PayslipID           string              `json:"payslipId"`
	Position            int                 `json:"position"`
	Kind                string              `json:"kind"`
	Description         string              `json:"description"`
	Quantity            decimal.NullDecimal `json:"quantity"`
	UnitAmount          decimal.NullDecimal `json:"unitAmount"`
	Total               decimal.Decimal     `json:"total"`
	TaxableFiscal       bool                `json:"taxableFiscal"`
	TaxableContribution bool                `json:"taxableContribution"`
}

// Result is a fully computed payslip with its line items, built in one pass
// and persisted in one transaction.
type Result struct {
	Payslip Payslip    `json:"payslip"`
	Lines   []LineItem `json:"lines"`

	// Created reports whether the computation made the period's first payslip
	// rather than recomputing an existing draft.
	Created bool `json:"-"`
}

// PriorPeriod is the year-to-date input the progressive tax walk needs from
// each earlier confirmed payslip of the same year.
type PriorPeriod struct {
	Month      int
	TaxableNet decimal.Decimal
	IncomeTax  decimal.Decimal
}

// AnnualSummary aggregates one employee's payslips for a year.
type AnnualSummary struct {
	EmployeeID       string          `json:"employeeId"`
	Year             int             `json:"year"`
	PayslipCount     int             `json:"payslipCount"`
	OrdinaryHours    decimal.Decimal `json:"ordinaryHours"`
	OvertimeHours    decimal.Decimal `json:"overtimeHours"`
	FiscalBase       decimal.Decimal `json:"fiscalBase"`
	ContributionBase decimal.Decimal `json:"contributionBase"`
	SocialSecurity   decimal.Decimal `json:"socialSecurity"`
	IncomeTax        decimal.Decimal `json:"incomeTax"`
	NetPay           decimal.Decimal `json:"netPay"`
	SeveranceAccrued decimal.Decimal `json:"severanceAccrued"`
}
