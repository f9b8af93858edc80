package payslip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Service struct {
	store     StoreAPI
	contracts ContractSource
	leave     LeaveLedger
	tax       TaxConfig
	now       func() time.Time
}

func NewService(store StoreAPI, contractSource ContractSource, leaveLedger LeaveLedger, tax TaxConfig) *Service {
	return &Service{
		store:     store,
		contracts: contractSource,
		leave:     leaveLedger,
		tax:       tax,
		now:       time.Now,
	}
}

// ComputeRequest triggers one period computation. Force overrides the
// confirmed-payslip gate; AllowNegativeLeave sanctions overdrawing a pool.
type ComputeRequest struct {
	EmployeeID         string
	Year               int
	Month              int
	Hours              Hours
	Force              bool
	AllowNegativeLeave bool
}

// ComputePayslip computes and persists the payslip for one employee/period.
//
// The whole operation runs in a single transaction under a per-employee/year
// advisory lock: line items are deleted and regenerated, the header row is
// upserted, and absence hours are re-posted to the leave ledger as a delta
// against what the previous draft had recorded. A confirmed payslip is never
// recomputed unless Force is set.
func (s *Service) ComputePayslip(ctx context.Context, req ComputeRequest) (Result, error) {
	if req.Month < 1 || req.Month > 12 {
		return Result{}, ErrInvalidPeriod
	}

	snap, err := s.contracts.ContractSnapshot(ctx, req.EmployeeID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve contract: %w", err)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("payslip compute rollback failed", "err", rbErr)
		}
	}()

	if err := s.store.LockEmployeeYearTx(ctx, tx, req.EmployeeID, req.Year); err != nil {
		return Result{}, err
	}

	var previous *Payslip
	existing, err := s.store.GetPayslipForPeriodTx(ctx, tx, req.EmployeeID, req.Year, req.Month)
	switch {
	case err == nil:
		if existing.Confirmed && !req.Force {
			return Result{}, ErrPayslipConfirmed
		}
		previous = &existing
	case errors.Is(err, ErrPayslipNotFound):
	default:
		return Result{}, err
	}

	priors, err := s.store.ConfirmedPriorsTx(ctx, tx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return Result{}, err
	}

	result, err := Compute(ComputeInput{
		Contract: snap,
		Year:     req.Year,
		Month:    req.Month,
		Hours:    req.Hours,
		Priors:   priors,
		Tax:      s.tax,
	})
	if err != nil {
		return Result{}, err
	}

	if previous != nil {
		result.Payslip.ID = previous.ID
		result.Payslip.Confirmed = previous.Confirmed
		if err := s.reverseAbsencesTx(ctx, tx, *previous); err != nil {
			return Result{}, err
		}
	} else {
		result.Payslip.ID = uuid.NewString()
		result.Created = true
	}

	overdrawn, err := s.postAbsencesTx(ctx, tx, req)
	if err != nil {
		return Result{}, err
	}
	if overdrawn {
		result.Payslip.Warnings = appendWarning(result.Payslip.Warnings, WarningLeaveOverdrawn)
	}

	result.Payslip.ComputedAt = s.now().UTC()

	for i := range result.Lines {
		result.Lines[i].ID = uuid.NewString()
		result.Lines[i].PayslipID = result.Payslip.ID
	}

	if err := s.store.UpsertPayslipTx(ctx, tx, result.Payslip); err != nil {
		return Result{}, err
	}
	if err := s.store.ReplaceLinesTx(ctx, tx, result.Payslip.ID, result.Lines); err != nil {
		return Result{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Result{}, err
	}

	slog.Info("payslip computed",
		"employeeId", req.EmployeeID,
		"period", fmt.Sprintf("%04d-%02d", req.Year, req.Month),
		"net", result.Payslip.NetPay,
		"warnings", len(result.Payslip.Warnings))
	return result, nil
}

// reverseAbsencesTx backs out the absence hours a previous draft of the same
// period already posted, so recomputation never double-counts leave.
func (s *Service) reverseAbsencesTx(ctx context.Context, tx pgx.Tx, previous Payslip) error {
	for _, stored := range []struct {
		kind  string
		hours decimal.Decimal
	}{
		{AbsenceVacation, previous.VacationHours},
		{AbsenceROL, previous.ROLHours},
		{AbsencePermit, previous.PermitHours},
		{AbsenceSick, previous.SickHours},
	} {
		if !stored.hours.IsPositive() {
			continue
		}
		if _, err := s.leave.ConsumeTx(ctx, tx, previous.EmployeeID, previous.Year, stored.kind, stored.hours.Neg(), true); err != nil {
			return fmt.Errorf("reverse %s absence: %w", stored.kind, err)
		}
	}
	return nil
}

func (s *Service) postAbsencesTx(ctx context.Context, tx pgx.Tx, req ComputeRequest) (bool, error) {
	overdrawn := false
	for _, kind := range AbsenceKinds {
		hours := req.Hours.Absences[kind]
		if !hours.IsPositive() {
			continue
		}
		over, err := s.leave.ConsumeTx(ctx, tx, req.EmployeeID, req.Year, kind, hours, req.AllowNegativeLeave)
		if err != nil {
			return false, fmt.Errorf("post %s absence: %w", kind, err)
		}
		overdrawn = overdrawn || over
	}
	return overdrawn, nil
}

func (s *Service) GetPayslip(ctx context.Context, payslipID string) (Result, error) {
	slip, err := s.store.GetPayslip(ctx, payslipID)
	if err != nil {
		return Result{}, err
	}
	lines, err := s.store.ListLines(ctx, payslipID)
	if err != nil {
		return Result{}, err
	}
	return Result{Payslip: slip, Lines: lines}, nil
}

func (s *Service) ListPayslips(ctx context.Context, employeeID string, year int) ([]Payslip, error) {
	return s.store.ListPayslips(ctx, employeeID, year)
}

// Confirm marks a payslip confirmed. The transition is one-way: from then on
// the period participates in every later month's cumulative tax base.
func (s *Service) Confirm(ctx context.Context, payslipID string) error {
	return s.store.ConfirmPayslip(ctx, payslipID)
}

func (s *Service) AnnualSummary(ctx context.Context, employeeID string, year int) (AnnualSummary, error) {
	return s.store.AnnualSummary(ctx, employeeID, year)
}

func appendWarning(warnings []string, warning string) []string {
	for _, existing := range warnings {
		if existing == warning {
			return warnings
		}
	}
	return append(warnings, warning)
}
