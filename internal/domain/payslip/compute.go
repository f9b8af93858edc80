package payslip

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"paghe/internal/domain/contracts"
)

// ComputeInput is everything one payslip computation reads. Prior periods
// come from an injected query, never from a live lookup, so the computation
// is a pure function of its input.
type ComputeInput struct {
	Contract contracts.Snapshot
	Year     int
	Month    int
	Hours    Hours
	Priors   []PriorPeriod
	Tax      TaxConfig
}

// Compute derives a full payslip for one period: earning lines, taxable
// bases, withholdings under cumulative progressive taxation, tax credits,
// severance accrual and net pay. It performs no I/O and does not mutate its
// input; recomputing with identical input yields an identical result.
func Compute(in ComputeInput) (Result, error) {
	if in.Month < 1 || in.Month > 12 {
		return Result{}, ErrInvalidPeriod
	}
	if err := in.Contract.Validate(); err != nil {
		return Result{}, err
	}
	if err := validateHours(in.Hours); err != nil {
		return Result{}, err
	}

	at := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)

	earned, err := buildEarnings(in.Contract, in.Hours, at)
	if err != nil {
		return Result{}, err
	}

	fiscalBase, contributionBase := aggregateBases(earned.lines)

	inps := socialSecurity(in.Tax, contributionBase)
	taxableNet := fiscalBase.Sub(inps)

	incomeTax, clamped := incrementalTax(in.Tax.Brackets, in.Priors, taxableNet)
	regional := surtax(taxableNet, in.Contract.RegionalSurtaxPct)
	municipal := surtax(taxableNet, in.Contract.MunicipalSurtaxPct)

	credits := decimal.Zero
	if in.Contract.EmploymentCredit {
		credits = employmentCredit(fiscalBase)
	}

	slip := Payslip{
		EmployeeID:           in.Contract.EmployeeID,
		Year:                 in.Year,
		Month:                in.Month,
		OrdinaryHours:        in.Hours.Ordinary,
		OvertimeWeekdayHours: in.Hours.overtime(OvertimeWeekday),
		OvertimeHolidayHours: in.Hours.overtime(OvertimeHoliday),
		OvertimeNightHours:   in.Hours.overtime(OvertimeNight),
		VacationHours:        in.Hours.absence(AbsenceVacation),
		ROLHours:             in.Hours.absence(AbsenceROL),
		PermitHours:          in.Hours.absence(AbsencePermit),
		SickHours:            in.Hours.absence(AbsenceSick),
		FiscalBase:           fiscalBase,
		ContributionBase:     contributionBase,
		TaxableNet:           taxableNet,
		SocialSecurity:       inps,
		IncomeTax:            incomeTax,
		RegionalSurtax:       regional,
		MunicipalSurtax:      municipal,
		TaxCredits:           credits,
		OtherWithholdings:    decimal.Zero,
		SeveranceAccrued:     severanceAccrual(earned.severanceBase),
	}
	if clamped {
		slip.Warnings = append(slip.Warnings, WarningTaxReconciliation)
	}

	slip.NetPay = fiscalBase.
		Sub(inps).
		Sub(incomeTax).
		Sub(regional).
		Sub(municipal).
		Add(credits).
		Sub(slip.OtherWithholdings)

	lines := earned.lines
	lines = append(lines, LineItem{
		Kind:        LineKindWithholding,
		Description: fmt.Sprintf("Contributi INPS (%s%%)", in.Tax.EmployeeContributionRate),
		Total:       inps,
	})
	lines = append(lines, LineItem{
		Kind:        LineKindWithholding,
		Description: "IRPEF",
		Total:       incomeTax,
	})
	if regional.IsPositive() {
		lines = append(lines, LineItem{
			Kind:        LineKindWithholding,
			Description: fmt.Sprintf("Addizionale regionale (%s%%)", in.Contract.RegionalSurtaxPct),
			Total:       regional,
		})
	}
	if municipal.IsPositive() {
		lines = append(lines, LineItem{
			Kind:        LineKindWithholding,
			Description: fmt.Sprintf("Addizionale comunale (%s%%)", in.Contract.MunicipalSurtaxPct),
			Total:       municipal,
		})
	}
	if credits.IsPositive() {
		lines = append(lines, LineItem{
			Kind:        LineKindDeduction,
			Description: "Detrazione lavoro dipendente",
			Total:       credits,
		})
	}

	for i := range lines {
		lines[i].Position = i
	}

	return Result{Payslip: slip, Lines: lines}, nil
}

func validateHours(hours Hours) error {
	if hours.Ordinary.IsNegative() {
		return fmt.Errorf("ordinary: %w", ErrNegativeHours)
	}
	for kind, value := range hours.Overtime {
		if !isOvertimeKind(kind) {
			return fmt.Errorf("overtime %q: %w", kind, ErrUnknownHoursKind)
		}
		if value.IsNegative() {
			return fmt.Errorf("overtime %s: %w", kind, ErrNegativeHours)
		}
	}
	for kind, value := range hours.Absences {
		if !isAbsenceKind(kind) {
			return fmt.Errorf("absence %q: %w", kind, ErrUnknownHoursKind)
		}
		if value.IsNegative() {
			return fmt.Errorf("absence %s: %w", kind, ErrNegativeHours)
		}
	}
	return nil
}

func isOvertimeKind(kind string) bool {
	for _, known := range overtimeKinds {
		if kind == known {
			return true
		}
	}
	return false
}

func isAbsenceKind(kind string) bool {
	for _, known := range AbsenceKinds {
		if kind == known {
			return true
		}
	}
	return false
}
