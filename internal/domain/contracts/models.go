package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agreement is a collective labor agreement (CCNL): the immutable pay-scale
// catalog referenced by contracts. The payroll engine only reads it.
type Agreement struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Category              string          `json:"category"`
	ValidFrom             time.Time       `json:"validFrom"`
	ValidTo               *time.Time      `json:"validTo,omitempty"`
	VacationDaysPerYear   int             `json:"vacationDaysPerYear"`
	ROLHoursPerYear       decimal.Decimal `json:"rolHoursPerYear"`
	PermitHoursPerYear    decimal.Decimal `json:"permitHoursPerYear"`
	OvertimeWeekdayPct    decimal.Decimal `json:"overtimeWeekdayPct"`
	OvertimeHolidayPct    decimal.Decimal `json:"overtimeHolidayPct"`
	OvertimeNightPct      decimal.Decimal `json:"overtimeNightPct"`
	HasThirteenth         bool            `json:"hasThirteenth"`
	HasFourteenth         bool            `json:"hasFourteenth"`
	YearsPerSeniorityStep int             `json:"yearsPerSeniorityStep"`
	SeniorityStepAmount   decimal.Decimal `json:"seniorityStepAmount"`
	MaxSenioritySteps     int             `json:"maxSenioritySteps"`
	Elements              []PayElement    `json:"elements,omitempty"`
	Levels                []Level         `json:"levels,omitempty"`
}

// Level is an inquadramento level within an agreement.
type Level struct {
	ID             string          `json:"id"`
	AgreementID    string          `json:"agreementId"`
	Code           string          `json:"code"`
	Description    string          `json:"description"`
	MonthlyBasePay decimal.Decimal `json:"monthlyBasePay"`
	WeeklyHours    decimal.Decimal `json:"weeklyHours"`
}

// PayElement is a configurable recurring pay component (contingenza, EDR,
// indennità) defined on the agreement. Its nature drives the two taxable
// flags on the line items it produces.
type PayElement struct {
	ID                  string          `json:"id"`
	AgreementID         string          `json:"agreementId"`
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	CalcKind            string          `json:"calcKind"`
	Value               decimal.Decimal `json:"value"`
	Nature              string          `json:"nature"`
	IncludeInSeverance  bool            `json:"includeInSeverance"`
	IncludeInThirteenth bool            `json:"includeInThirteenth"`
	Active              bool            `json:"active"`
}

// Snapshot is the fully resolved contract for one employee: the contract row
// joined with its agreement, level and element catalog. It is read-only input
// to every payroll computation.
type Snapshot struct {
	EmployeeID         string
	FirstName          string
	LastName           string
	Email              string
	HireDate           time.Time
	ContractType       string
	WeeklyHours        decimal.Decimal
	PartTimePct        decimal.Decimal
	Superminimo        decimal.Decimal
	RegionalSurtaxPct  decimal.Decimal
	MunicipalSurtaxPct decimal.Decimal
	EmploymentCredit   bool
	DependentChildren  int
	IBAN               string
	Agreement          Agreement
	Level              Level
}

// ActiveContract is the slim projection the monthly leave accrual run needs.
type ActiveContract struct {
	EmployeeID          string
	WeeklyHours         decimal.Decimal
	VacationDaysPerYear int
	ROLHoursPerYear     decimal.Decimal
	PermitHoursPerYear  decimal.Decimal
}
